package server

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xuperchain/xdapps/lib/logs"
	sconf "github.com/xuperchain/xdapps/server/config"
	"github.com/xuperchain/xdapps/server/service"
)

type mockServ struct {
	err   error
	exit  chan struct{}
	exits int32
}

func newMockServ(err error) *mockServ {
	return &mockServ{err: err, exit: make(chan struct{})}
}

func (s *mockServ) Run() error {
	if s.err != nil {
		return s.err
	}
	<-s.exit
	return nil
}

func (s *mockServ) Exit() {
	if atomic.AddInt32(&s.exits, 1) == 1 {
		close(s.exit)
	}
}

func TestServMGExitAllOnFailure(t *testing.T) {
	ok := newMockServ(nil)
	bad := newMockServ(errors.New("listen failed"))
	mg := &ServMG{servers: []ServCom{ok, bad}}
	mg.log, _ = newTestLogger()

	done := make(chan error, 1)
	go func() { done <- mg.Run() }()
	select {
	case err := <-done:
		if err == nil || err.Error() != "listen failed" {
			t.Errorf("unexpected err.got:%v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serv mg not exit")
	}
	if atomic.LoadInt32(&ok.exits) == 0 {
		t.Errorf("healthy server not exited")
	}
}

func TestServMGExit(t *testing.T) {
	a, b := newMockServ(nil), newMockServ(nil)
	mg := &ServMG{servers: []ServCom{a, b}}
	mg.log, _ = newTestLogger()

	done := make(chan error, 1)
	go func() { done <- mg.Run() }()
	mg.Exit()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected err.got:%v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serv mg not exit")
	}
}

func TestNewServMG(t *testing.T) {
	if _, err := NewServMG(nil, nil, ServOptions{}); err == nil {
		t.Errorf("expect param error")
	}

	scfg := sconf.GetDefServConf()
	mg, err := NewServMG(scfg, service.NewService(nil, nil), ServOptions{})
	if err != nil {
		t.Fatalf("new serv mg failed.err:%v", err)
	}
	if len(mg.servers) != 2 {
		t.Errorf("expect rpc and http servers.got:%d", len(mg.servers))
	}
	mg.Exit()
}

func newTestLogger() (logs.Logger, error) {
	return logs.NewLogger("", SubModName)
}
