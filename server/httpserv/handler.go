package httpserv

import (
	"net/http"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/xuperchain/xdapps/kernel/dapps"
	"github.com/xuperchain/xdapps/server/service"
)

type HandlerOptions struct {
	CorsOrigins []string
	Metrics     bool
	// 按顺序包裹，第一个最先处理请求
	Middlewares []dapps.Middleware
}

// Handler is cors, then the dapps middlewares, then json-rpc and metrics
type Handler struct {
	rpcSrv  *rpc.Server
	handler http.Handler
}

func NewHandler(svc *service.Service, opts HandlerOptions) (*Handler, error) {
	rpcSrv := rpc.NewServer()
	if err := rpcSrv.RegisterName("dapps", &DappsAPI{svc: svc}); err != nil {
		return nil, err
	}
	if err := rpcSrv.RegisterName("registrar", &RegistrarAPI{svc: svc}); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	if opts.Metrics {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", rpcSrv)

	var h http.Handler = mux
	for i := len(opts.Middlewares) - 1; i >= 0; i-- {
		if opts.Middlewares[i] == nil {
			continue
		}
		h = opts.Middlewares[i].Handler(h)
	}
	if len(opts.CorsOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins: opts.CorsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"*"},
			MaxAge:         600,
		})
		h = c.Handler(h)
	}

	return &Handler{rpcSrv: rpcSrv, handler: h}, nil
}

func (t *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t.handler.ServeHTTP(w, r)
}

// Close stops the json-rpc server
func (t *Handler) Close() {
	t.rpcSrv.Stop()
}
