package dapps

import (
	"net/http"
	"sort"
	"sync"

	xcom "github.com/xuperchain/xdapps/kernel/common"
	"github.com/xuperchain/xdapps/kernel/fetch"
	"github.com/xuperchain/xdapps/lib/remote"
)

const (
	ErrMsgNoWebApps = "node has been compiled without WebApps support"
	ErrMsgNoUI      = "node has been compiled without UI support"
)

// Endpoint describes one installed web application
type Endpoint struct {
	ID          string
	Name        string
	Description string
	Version     string
	Author      string
	IconURL     string
}

// Middleware serves the dapps http surface. Requests it does not own go to next.
// Implementations must be safe for concurrent use.
type Middleware interface {
	Endpoints() []Endpoint
	Handler(next http.Handler) http.Handler
}

// TokenValidator decides if a web proxy token is valid right now
type TokenValidator interface {
	IsValid(token string) bool
}

type DappsParams struct {
	Remote         *remote.Remote
	UIAddress      *HostPort
	DappsPath      string
	ExtraDapps     []string
	ContractClient ContractClient
	SyncStatus     SyncStatus
	TokenValidator TokenValidator
	Fetch          fetch.Fetcher
}

type UIParams struct {
	Remote         *remote.Remote
	ContractClient ContractClient
	SyncStatus     SyncStatus
	Fetch          fetch.Fetcher
}

// Backend builds the concrete middleware
type Backend interface {
	Dapps(params *DappsParams) (Middleware, error)
	UI(params *UIParams) (Middleware, error)
}

// 创建backend实例方法
type NewBackendFunc func() Backend

var (
	backendMu sync.RWMutex
	backends  = make(map[string]NewBackendFunc)
)

// Register makes a backend available under name. Backends register in init, so a
// binary built without one falls back to the disabled backend.
func Register(name string, f NewBackendFunc) {
	backendMu.Lock()
	defer backendMu.Unlock()

	if f == nil {
		panic("dapps: Register new func is nil")
	}
	if _, dup := backends[name]; dup {
		panic("dapps: Register called twice for backend " + name)
	}
	backends[name] = f
}

func Backends() []string {
	backendMu.RLock()
	defer backendMu.RUnlock()
	list := make([]string, 0, len(backends))
	for name := range backends {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

func newBackend(name string) Backend {
	backendMu.RLock()
	defer backendMu.RUnlock()

	if f, ok := backends[name]; ok {
		return f()
	}

	return disabledBackend{}
}

// disabledBackend stands in when no backend was compiled in
type disabledBackend struct{}

func (disabledBackend) Dapps(*DappsParams) (Middleware, error) {
	return nil, xcom.ErrBuildFailed.More(ErrMsgNoWebApps)
}

func (disabledBackend) UI(*UIParams) (Middleware, error) {
	return nil, xcom.ErrBuildFailed.More(ErrMsgNoUI)
}
