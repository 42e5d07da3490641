package httpserv

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/xuperchain/xdapps/lib/logs"
)

const SubModName = "http"

// http server启停控制管理
type HttpServMG struct {
	name     string
	addr     string
	handler  http.Handler
	timeout  time.Duration
	log      logs.Logger
	servHD   *http.Server
	lis      net.Listener
	closers  []func()
	exitOnce *sync.Once
}

func NewHttpServMG(name, addr string, handler http.Handler, timeout time.Duration) (*HttpServMG, error) {
	if handler == nil || addr == "" {
		return nil, fmt.Errorf("param error")
	}

	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	log, _ := logs.NewLogger("", SubModName)
	log.SetCommField("server", name)
	return &HttpServMG{
		name:     name,
		addr:     addr,
		handler:  handler,
		timeout:  timeout,
		log:      log,
		servHD:   &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second},
		exitOnce: &sync.Once{},
	}, nil
}

// WithListener serves on lis instead of addr
func (t *HttpServMG) WithListener(lis net.Listener) *HttpServMG {
	t.lis = lis
	return t
}

// OnExit registers a func called after the server shut down
func (t *HttpServMG) OnExit(f func()) *HttpServMG {
	t.closers = append(t.closers, f)
	return t
}

// 启动http服务，阻塞直到退出
func (t *HttpServMG) Run() error {
	t.log.Info("run http server", "addr", t.addr)

	var err error
	if t.lis != nil {
		err = t.servHD.Serve(t.lis)
	} else {
		err = t.servHD.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		t.log.Error("http server abnormal exit", "err", err)
		return err
	}

	t.log.Trace("http server exit")
	return nil
}

// 退出http服务，需要幂等
func (t *HttpServMG) Exit() {
	t.exitOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		if err := t.servHD.Shutdown(ctx); err != nil {
			t.log.Warn("http server shutdown failed", "err", err)
		}
		for _, f := range t.closers {
			f()
		}
	})
}
