package server

import (
	xcom "github.com/xuperchain/xdapps/kernel/common"
	"github.com/xuperchain/xdapps/kernel/dapps"
	"github.com/xuperchain/xdapps/kernel/urlhint"
	"github.com/xuperchain/xdapps/lib/logs"
)

const (
	BackendName = "builtin"
	SubModName  = "dapps_server"
)

func init() {
	dapps.Register(BackendName, NewBackend)
}

type backend struct{}

func NewBackend() dapps.Backend {
	return &backend{}
}

func (b *backend) Dapps(p *dapps.DappsParams) (dapps.Middleware, error) {
	if p == nil || p.Remote == nil || p.ContractClient == nil || p.SyncStatus == nil ||
		p.TokenValidator == nil || p.Fetch == nil {
		return nil, xcom.ErrBuildFailed.More("dapps server param missing")
	}

	log, _ := logs.NewLogger("", SubModName)
	catalog := LoadCatalog(p.DappsPath, p.ExtraDapps, log)
	log.Info("load dapps catalog", "dapps_path", p.DappsPath, "extra", len(p.ExtraDapps),
		"apps", catalog.Len())

	return &Middleware{
		catalog:   catalog,
		hint:      urlhint.NewURLHint(p.ContractClient),
		client:    p.ContractClient,
		remote:    p.Remote,
		sync:      p.SyncStatus,
		validator: p.TokenValidator,
		fetch:     p.Fetch,
		uiAddr:    p.UIAddress,
		log:       log,
	}, nil
}

func (b *backend) UI(p *dapps.UIParams) (dapps.Middleware, error) {
	if p == nil || p.Remote == nil || p.ContractClient == nil || p.SyncStatus == nil ||
		p.Fetch == nil {
		return nil, xcom.ErrBuildFailed.More("ui server param missing")
	}

	log, _ := logs.NewLogger("", SubModName)
	return &UIMiddleware{
		hint:   urlhint.NewURLHint(p.ContractClient),
		client: p.ContractClient,
		remote: p.Remote,
		sync:   p.SyncStatus,
		fetch:  p.Fetch,
		log:    log,
	}, nil
}
