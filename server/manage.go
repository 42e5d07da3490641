package server

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/xuperchain/xdapps/kernel/dapps"
	"github.com/xuperchain/xdapps/lib/logs"
	sconf "github.com/xuperchain/xdapps/server/config"
	"github.com/xuperchain/xdapps/server/httpserv"
	"github.com/xuperchain/xdapps/server/rpc"
	"github.com/xuperchain/xdapps/server/service"
)

const SubModName = "server"

// 由于需要同时启动多个服务组件，采用注册机制管理
type ServCom interface {
	Run() error
	Exit()
}

// ServOptions carries what the servers expose besides the control plane service
type ServOptions struct {
	Dapps   dapps.Middleware
	UI      dapps.Middleware
	Metrics bool
}

// 各server组件运行控制
type ServMG struct {
	scfg    *sconf.ServConf
	log     logs.Logger
	servers []ServCom
}

func NewServMG(scfg *sconf.ServConf, svc *service.Service, opts ServOptions) (*ServMG, error) {
	if scfg == nil || svc == nil {
		return nil, fmt.Errorf("param error")
	}

	log, _ := logs.NewLogger("", SubModName)
	obj := &ServMG{
		scfg:    scfg,
		log:     log,
		servers: make([]ServCom, 0),
	}

	// 实例化rpc服务
	rpcServ, err := rpc.NewRpcServMG(scfg, svc)
	if err != nil {
		return nil, err
	}
	obj.servers = append(obj.servers, rpcServ)

	// ui单独监听时不挂在主http服务上
	middlewares := []dapps.Middleware{opts.Dapps}
	uiStandalone := opts.UI != nil && scfg.UIPort > 0
	if opts.UI != nil && !uiStandalone {
		middlewares = append(middlewares, opts.UI)
	}

	// 实例化http服务
	handler, err := httpserv.NewHandler(svc, httpserv.HandlerOptions{
		CorsOrigins: scfg.CorsOrigins,
		Metrics:     opts.Metrics,
		Middlewares: middlewares,
	})
	if err != nil {
		return nil, err
	}
	httpServ, err := httpserv.NewHttpServMG("http", scfg.HttpAddr(), handler, scfg.ShutdownTimeout)
	if err != nil {
		return nil, err
	}
	obj.servers = append(obj.servers, httpServ.OnExit(handler.Close))

	if uiStandalone {
		uiServ, err := httpserv.NewHttpServMG("ui", scfg.UIAddr(), opts.UI.Handler(http.NotFoundHandler()),
			scfg.ShutdownTimeout)
		if err != nil {
			return nil, err
		}
		obj.servers = append(obj.servers, uiServ)
	}

	return obj, nil
}

// 启动各服务，任一服务异常退出时退出全部服务
func (t *ServMG) Run() error {
	g, ctx := errgroup.WithContext(context.Background())
	for _, serv := range t.servers {
		s := serv
		g.Go(s.Run)
	}

	go func() {
		<-ctx.Done()
		t.Exit()
	}()

	err := g.Wait()
	if err != nil {
		t.log.Error("server exit abnormally", "err", err)
	}
	return err
}

// 退出各服务，释放相关资源，需要幂等
func (t *ServMG) Exit() {
	for _, serv := range t.servers {
		serv.Exit()
	}
}
