package rpc

import (
	"errors"
	"fmt"
	"net"
	"sync"

	middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"google.golang.org/grpc"

	"github.com/xuperchain/xdapps/lib/logs"
	sconf "github.com/xuperchain/xdapps/server/config"
	"github.com/xuperchain/xdapps/server/pb"
	"github.com/xuperchain/xdapps/server/service"
)

// rpc server启停控制管理
type RpcServMG struct {
	scfg     *sconf.ServConf
	log      logs.Logger
	rpcServ  *RpcServ
	servHD   *grpc.Server
	lis      net.Listener
	isInit   bool
	exitOnce *sync.Once
}

func NewRpcServMG(scfg *sconf.ServConf, svc *service.Service) (*RpcServMG, error) {
	if scfg == nil || svc == nil {
		return nil, fmt.Errorf("param error")
	}

	log, _ := logs.NewLogger("", SubModName)
	obj := &RpcServMG{
		scfg:     scfg,
		log:      log,
		rpcServ:  NewRpcServ(svc, log),
		isInit:   true,
		exitOnce: &sync.Once{},
	}
	obj.servHD = obj.newGrpcServer()

	return obj, nil
}

// WithListener serves on lis instead of the configured port
func (t *RpcServMG) WithListener(lis net.Listener) *RpcServMG {
	t.lis = lis
	return t
}

// 启动rpc服务
func (t *RpcServMG) Run() error {
	if !t.isInit {
		return errors.New("RpcServMG not init")
	}

	t.log.Trace("run grpc server")

	// 启动rpc server，阻塞直到退出
	err := t.runRpcServ()
	if err != nil {
		t.log.Error("grpc server abnormal exit", "err", err)
		return err
	}

	t.log.Trace("grpc server exit")
	return nil
}

// 退出rpc服务，释放相关资源，需要幂等
func (t *RpcServMG) Exit() {
	if !t.isInit {
		return
	}

	t.exitOnce.Do(func() {
		t.stopRpcServ()
	})
}

func (t *RpcServMG) newGrpcServer() *grpc.Server {
	unaryInterceptors := make([]grpc.UnaryServerInterceptor, 0)
	unaryInterceptors = append(unaryInterceptors,
		grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandler(t.recoveryHandler)),
		t.rpcServ.UnaryInterceptor(),
	)
	rpcOptions := []grpc.ServerOption{
		middleware.WithUnaryServerChain(unaryInterceptors...),
		grpc.MaxRecvMsgSize(t.scfg.MaxRecvMsgSize),
		grpc.ReadBufferSize(t.scfg.ReadBufSize),
		grpc.InitialWindowSize(t.scfg.InitWindowSize),
		grpc.InitialConnWindowSize(t.scfg.InitConnWindowSize),
		grpc.WriteBufferSize(t.scfg.WriteBufSize),
	}

	servHD := grpc.NewServer(rpcOptions...)
	pb.RegisterDappsControlServer(servHD, t.rpcServ)
	return servHD
}

func (t *RpcServMG) recoveryHandler(p interface{}) error {
	t.log.Error("Rpc server happen panic.", "error", p)
	return fmt.Errorf("rpc server panic: %v", p)
}

// 启动rpc服务，阻塞直到退出
func (t *RpcServMG) runRpcServ() error {
	lis := t.lis
	if lis == nil {
		var err error
		lis, err = net.Listen("tcp", t.scfg.RpcAddr())
		if err != nil {
			t.log.Error("failed to listen", "err", err.Error())
			return fmt.Errorf("failed to listen")
		}
	}

	if err := t.servHD.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		t.log.Error("failed to serve", "err", err.Error())
		return err
	}

	t.log.Trace("rpc server exit")
	return nil
}

// 需要幂等
func (t *RpcServMG) stopRpcServ() {
	if t.servHD != nil {
		// 优雅关闭grpc server
		t.servHD.GracefulStop()
	}
}
