package node

import (
	"fmt"
	"sync"

	"github.com/xuperchain/xdapps/kernel/chain"
	"github.com/xuperchain/xdapps/kernel/common/xconfig"
	"github.com/xuperchain/xdapps/kernel/dapps"
	"github.com/xuperchain/xdapps/kernel/fetch"
	"github.com/xuperchain/xdapps/kernel/registrar"
	"github.com/xuperchain/xdapps/kernel/signer"
	"github.com/xuperchain/xdapps/lib/logs"
	"github.com/xuperchain/xdapps/lib/metrics"
	"github.com/xuperchain/xdapps/lib/remote"
	"github.com/xuperchain/xdapps/lib/utils"
	"github.com/xuperchain/xdapps/server"
	sconf "github.com/xuperchain/xdapps/server/config"
	"github.com/xuperchain/xdapps/server/service"
)

const SubModName = "node"

// Config gathers every config the node is assembled from
type Config struct {
	Env   *xconfig.EnvConf
	Serv  *sconf.ServConf
	Dapps *dapps.DappsConf
	Chain *chain.ChainConf
	Fetch *fetch.FetchConf
}

// LoadConfig loads env.yaml and the files it names. Missing optional files fall back
// to defaults.
func LoadConfig(envCfgPath string) (*Config, error) {
	envConf, err := xconfig.LoadEnvConf(envCfgPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:   envConf,
		Serv:  sconf.GetDefServConf(),
		Dapps: dapps.GetDefDappsConf(),
		Chain: chain.GetDefChainConf(),
		Fetch: fetch.GetDefFetchConf(),
	}
	if path := envConf.GenConfFilePath(envConf.ServConf); utils.FileIsExist(path) {
		if cfg.Serv, err = sconf.LoadServConf(path); err != nil {
			return nil, err
		}
	}
	if path := envConf.GenConfFilePath(envConf.DappsConf); utils.FileIsExist(path) {
		if cfg.Dapps, err = dapps.LoadDappsConf(path); err != nil {
			return nil, err
		}
	}
	if path := envConf.GenConfFilePath(envConf.ChainConf); utils.FileIsExist(path) {
		if cfg.Chain, err = chain.LoadChainConf(path); err != nil {
			return nil, err
		}
	}
	if path := envConf.GenConfFilePath(envConf.FetchConf); utils.FileIsExist(path) {
		if cfg.Fetch, err = fetch.LoadFetchConf(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Node wires the chain, the registrar bridge, the dapps middleware and the servers
type Node struct {
	cfg       *Config
	log       logs.Logger
	chain     *chain.LocalChain
	sync      *chain.SyncState
	registrar *registrar.FullRegistrar
	signer    *signer.TokenStore
	fetch     *fetch.Client
	remote    *remote.Remote
	dapps     dapps.Middleware
	ui        dapps.Middleware
	service   *service.Service
	servMG    *server.ServMG
	exitOnce  *sync.Once
}

func NewNode(cfg *Config) (*Node, error) {
	if cfg == nil || cfg.Env == nil || cfg.Serv == nil || cfg.Dapps == nil ||
		cfg.Chain == nil || cfg.Fetch == nil {
		return nil, fmt.Errorf("new node failed because some config unset")
	}

	log, _ := logs.NewLogger("", SubModName)
	n := &Node{
		cfg:      cfg,
		log:      log,
		sync:     chain.NewSyncState(false),
		signer:   signer.NewTokenStore(signer.DefaultTokenTTL),
		remote:   remote.NewRemote(remote.DefaultConcurrency),
		exitOnce: &sync.Once{},
	}

	var err error
	n.chain, err = chain.NewLocalChain(cfg.Chain, cfg.Env.GenDataAbsPath("chain"))
	if err != nil {
		n.remote.Close()
		return nil, err
	}
	n.registrar = registrar.NewFullRegistrar(n.chain)

	n.fetch, err = fetch.NewClient(cfg.Fetch)
	if err != nil {
		n.release()
		return nil, err
	}

	if cfg.Env.MetricSwitch {
		metrics.RegisterMetrics()
	}
	n.buildMiddlewares()
	n.service = service.NewService(dapps.NewService(n.dapps), n.registrar)

	n.servMG, err = server.NewServMG(cfg.Serv, n.service, server.ServOptions{
		Dapps:   n.dapps,
		UI:      n.ui,
		Metrics: cfg.Env.MetricSwitch,
	})
	if err != nil {
		n.release()
		return nil, err
	}

	return n, nil
}

// 中间件构建失败不影响节点运行，只是不提供对应的http服务
func (t *Node) buildMiddlewares() {
	deps := &dapps.Dependencies{
		SyncStatus:     t.sync,
		ContractClient: t.registrar,
		Remote:         t.remote,
		Fetch:          t.fetch,
		Signer:         t.signer,
	}
	dataDir := t.cfg.Env.GenDirAbsPath(t.cfg.Env.DataDir)
	dappsCfg := t.cfg.Dapps.Configuration(dataDir)
	deps.UIAddress = dappsCfg.Address(&dapps.HostPort{Host: t.cfg.Serv.UIHost, Port: t.cfg.Serv.UIPort})

	factory := dapps.NewFactory(t.cfg.Dapps.Backend)
	m, err := factory.New(dappsCfg, deps)
	if err != nil {
		t.log.Error("dapps middleware unavailable", "err", err)
	}
	t.dapps = m

	ui, err := factory.NewUI(t.cfg.Dapps.UIEnabled, deps)
	if err != nil {
		t.log.Error("ui middleware unavailable", "err", err)
	}
	t.ui = ui
}

// Run blocks until the servers exit
func (t *Node) Run() error {
	t.log.Info("node start", "http", t.cfg.Serv.HttpAddr(), "rpc", t.cfg.Serv.RpcAddr(),
		"dapps", t.dapps != nil, "ui", t.ui != nil, "backends", dapps.Backends())
	defer t.release()

	return t.servMG.Run()
}

// Exit stops the servers, idempotent
func (t *Node) Exit() {
	t.servMG.Exit()
}

func (t *Node) release() {
	t.exitOnce.Do(func() {
		t.remote.Close()
		if t.chain != nil {
			if err := t.chain.Close(); err != nil {
				t.log.Warn("close chain failed", "err", err)
			}
		}
		t.log.Info("node released")
	})
}

// Service is the control plane api of the node
func (t *Node) Service() *service.Service {
	return t.service
}

// Chain exposes the local chain for state imports
func (t *Node) Chain() *chain.LocalChain {
	return t.chain
}

// Signer issues web proxy tokens
func (t *Node) Signer() *signer.TokenStore {
	return t.signer
}

// SyncState lets the sync driver flip the syncing flag
func (t *Node) SyncState() *chain.SyncState {
	return t.sync
}
