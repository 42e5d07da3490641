package dapps

import (
	xcom "github.com/xuperchain/xdapps/kernel/common"
	"github.com/xuperchain/xdapps/lib/logs"
	"github.com/xuperchain/xdapps/lib/metrics"
)

const (
	SubModName = "dapps"

	kindDapps = "dapps"
	kindUI    = "ui"
)

// Factory builds the dapps and ui middleware from the selected backend
type Factory struct {
	backend string
	log     logs.Logger
}

func NewFactory(backend string) *Factory {
	if backend == "" {
		backend = DefaultBackend
	}
	log, _ := logs.NewLogger("", SubModName)

	return &Factory{
		backend: backend,
		log:     log,
	}
}

// New returns (nil, nil) when cfg is disabled, whatever else it holds
func (t *Factory) New(cfg *Configuration, deps *Dependencies) (Middleware, error) {
	if cfg == nil || !cfg.Enabled {
		t.log.Info("dapps middleware disabled")
		return nil, nil
	}
	if deps == nil {
		return nil, xcom.ErrBuildFailed.More("dependencies not set")
	}

	if cfg.RequireRegistrar {
		if deps.ContractClient == nil {
			return nil, xcom.ErrBuildFailed.More("contract client not set")
		}
		if _, err := deps.ContractClient.Registrar(); err != nil {
			metrics.MiddlewareBuildCounter.WithLabelValues(kindDapps, metrics.ResultFailed).Inc()
			return nil, xcom.ErrBuildFailed.More("registrar unavailable: %v", err)
		}
	}

	params := &DappsParams{
		Remote:         deps.Remote,
		UIAddress:      deps.UIAddress,
		DappsPath:      cfg.DappsPath,
		ExtraDapps:     append([]string(nil), cfg.ExtraDapps...),
		ContractClient: deps.ContractClient,
		SyncStatus:     deps.SyncStatus,
		TokenValidator: NewAccessTokenValidator(deps.Signer),
		Fetch:          deps.Fetch,
	}
	m, err := newBackend(t.backend).Dapps(params)
	metrics.MiddlewareBuildCounter.WithLabelValues(kindDapps, metrics.Result(err)).Inc()
	if err != nil {
		t.log.Warn("build dapps middleware failed", "backend", t.backend, "err", err)
		return nil, buildFailed(err)
	}

	t.log.Info("build dapps middleware", "backend", t.backend, "dapps_path", cfg.DappsPath,
		"extra_dapps", len(cfg.ExtraDapps), "endpoints", len(m.Endpoints()))
	return m, nil
}

// NewUI builds the ui middleware. It only gets remote, contract client, sync status
// and fetch.
func (t *Factory) NewUI(enabled bool, deps *Dependencies) (Middleware, error) {
	if !enabled {
		t.log.Info("ui middleware disabled")
		return nil, nil
	}
	if deps == nil {
		return nil, xcom.ErrBuildFailed.More("dependencies not set")
	}

	params := &UIParams{
		Remote:         deps.Remote,
		ContractClient: deps.ContractClient,
		SyncStatus:     deps.SyncStatus,
		Fetch:          deps.Fetch,
	}
	m, err := newBackend(t.backend).UI(params)
	metrics.MiddlewareBuildCounter.WithLabelValues(kindUI, metrics.Result(err)).Inc()
	if err != nil {
		t.log.Warn("build ui middleware failed", "backend", t.backend, "err", err)
		return nil, buildFailed(err)
	}

	t.log.Info("build ui middleware", "backend", t.backend)
	return m, nil
}

func buildFailed(err error) error {
	if xcom.ErrBuildFailed.Is(err) {
		return err
	}
	return xcom.ErrBuildFailed.More("%v", err)
}
