package metrics

import (
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "xdapps"

	SubsystemContract   = "contract"
	SubsystemMiddleware = "middleware"
	SubsystemHTTP       = "http"
	SubsystemFetch      = "fetch"
	SubsystemRPC        = "rpc"

	LabelTarget       = "target"
	LabelResult       = "result"
	LabelKind         = "kind"
	LabelRoute        = "route"
	LabelCallMethod   = "method"
	LabelCode         = "code"

	ResultOK     = "ok"
	ResultFailed = "failed"

	// 合约调用只区分registrar和其他合约，避免按地址产生无界的序列
	TargetRegistrar = "registrar"
	TargetOther     = "other"
)

// contract
var (
	ContractCallCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemContract,
			Name:      "call_total",
			Help:      "Total number of read-only contract calls.",
		},
		[]string{LabelTarget, LabelResult})
	ContractCallHistogram = prom.NewHistogramVec(
		prom.HistogramOpts{
			Namespace: Namespace,
			Subsystem: SubsystemContract,
			Name:      "call_seconds",
			Help:      "Histogram of read-only contract call latency.",
			Buckets:   prom.DefBuckets,
		},
		[]string{LabelTarget, LabelResult})
)

// middleware
var (
	MiddlewareBuildCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemMiddleware,
			Name:      "build_total",
			Help:      "Total number of middleware builds.",
		},
		[]string{LabelKind, LabelResult})
	HTTPRequestCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemHTTP,
			Name:      "request_total",
			Help:      "Total number of requests handled by the dapps middleware.",
		},
		[]string{LabelRoute, LabelCode})
)

// fetch
var (
	FetchCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemFetch,
			Name:      "request_total",
			Help:      "Total number of content fetches.",
		},
		[]string{LabelResult})
	FetchBytesCounter = prom.NewCounter(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemFetch,
			Name:      "bytes_total",
			Help:      "Total size of fetched content.",
		})
)

// rpc
var (
	CallMethodCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemRPC,
			Name:      "call_total",
			Help:      "Total number of control plane calls.",
		},
		[]string{LabelCallMethod, LabelCode})
	CallMethodHistogram = prom.NewHistogramVec(
		prom.HistogramOpts{
			Namespace: Namespace,
			Subsystem: SubsystemRPC,
			Name:      "cost_seconds",
			Help:      "Histogram of control plane call latency.",
			Buckets:   prom.DefBuckets,
		},
		[]string{LabelCallMethod})
)

var registerOnce sync.Once

// RegisterMetrics registers every collector with the default registry, safe to call twice
func RegisterMetrics() {
	registerOnce.Do(func() {
		// contract
		prom.MustRegister(ContractCallCounter)
		prom.MustRegister(ContractCallHistogram)
		// middleware
		prom.MustRegister(MiddlewareBuildCounter)
		prom.MustRegister(HTTPRequestCounter)
		// fetch
		prom.MustRegister(FetchCounter)
		prom.MustRegister(FetchBytesCounter)
		// rpc
		prom.MustRegister(CallMethodCounter)
		prom.MustRegister(CallMethodHistogram)
	})
}

// Result maps an error to the result label
func Result(err error) string {
	if err != nil {
		return ResultFailed
	}
	return ResultOK
}
