package dapps

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xcom "github.com/xuperchain/xdapps/kernel/common"
	"github.com/xuperchain/xdapps/lib/remote"
)

const mockBackendName = "mock"

type mockMiddleware struct {
	endpoints []Endpoint
}

func (m *mockMiddleware) Endpoints() []Endpoint {
	return m.endpoints
}

func (m *mockMiddleware) Handler(next http.Handler) http.Handler {
	return next
}

type mockBackend struct {
	mu        sync.Mutex
	dapps     *DappsParams
	ui        *UIParams
	endpoints []Endpoint
	err       error
}

var backendUnderTest = &mockBackend{}

func init() {
	Register(mockBackendName, func() Backend { return backendUnderTest })
}

func (b *mockBackend) Dapps(p *DappsParams) (Middleware, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dapps = p
	if b.err != nil {
		return nil, b.err
	}
	return &mockMiddleware{endpoints: b.endpoints}, nil
}

func (b *mockBackend) UI(p *UIParams) (Middleware, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ui = p
	if b.err != nil {
		return nil, b.err
	}
	return &mockMiddleware{}, nil
}

func (b *mockBackend) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dapps, b.ui, b.endpoints, b.err = nil, nil, nil, nil
}

type mockClient struct {
	err error
}

func (m *mockClient) Registrar() (common.Address, error) {
	return common.HexToAddress("0x01"), m.err
}

func (m *mockClient) Call(common.Address, []byte) ([]byte, error) {
	return nil, nil
}

type mockSync bool

func (s mockSync) IsSyncing() bool { return bool(s) }

// mockSigner 每次查询返回当前设置的结果
type mockSigner struct {
	mu    sync.Mutex
	valid map[string]bool
	calls int
}

func (s *mockSigner) IsValidWebProxyAccessToken(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.valid[token]
}

func (s *mockSigner) set(token string, valid bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.valid[token] = valid
}

func newDeps() *Dependencies {
	return &Dependencies{
		SyncStatus:     mockSync(false),
		ContractClient: &mockClient{},
		Remote:         remote.NewRemote(1),
		Signer:         &mockSigner{valid: map[string]bool{}},
		UIAddress:      &HostPort{Host: "127.0.0.1", Port: 8180},
	}
}

func TestDisabledBuildsNothing(t *testing.T) {
	backendUnderTest.reset()
	cfgs := []*Configuration{
		nil,
		{Enabled: false},
		{Enabled: false, DappsPath: "/data/dapps", ExtraDapps: []string{"/x", "/y"}, RequireRegistrar: true},
	}

	for _, backend := range []string{mockBackendName, "none"} {
		f := NewFactory(backend)
		for i, cfg := range cfgs {
			m, err := f.New(cfg, nil)
			assert.NoError(t, err, "case %d", i)
			assert.Nil(t, m, "case %d", i)
		}
		m, err := f.NewUI(false, newDeps())
		assert.NoError(t, err)
		assert.Nil(t, m)
	}
	assert.Nil(t, backendUnderTest.dapps)
	assert.Nil(t, backendUnderTest.ui)
}

func TestMissingBackend(t *testing.T) {
	f := NewFactory("none")

	_, err := f.New(&Configuration{Enabled: true}, newDeps())
	require.True(t, errors.Is(err, xcom.ErrBuildFailed), "got %v", err)
	assert.Contains(t, err.Error(), ErrMsgNoWebApps)

	_, err = f.NewUI(true, newDeps())
	require.True(t, errors.Is(err, xcom.ErrBuildFailed), "got %v", err)
	assert.Contains(t, err.Error(), ErrMsgNoUI)
}

func TestBuildWiresDependencies(t *testing.T) {
	backendUnderTest.reset()
	deps := newDeps()
	cfg := &Configuration{Enabled: true, DappsPath: "/data/dapps", ExtraDapps: []string{"/extra/a"}}

	m, err := NewFactory(mockBackendName).New(cfg, deps)
	require.NoError(t, err)
	require.NotNil(t, m)

	p := backendUnderTest.dapps
	require.NotNil(t, p)
	assert.Equal(t, deps.Remote, p.Remote)
	assert.Equal(t, deps.UIAddress, p.UIAddress)
	assert.Equal(t, "/data/dapps", p.DappsPath)
	assert.Equal(t, []string{"/extra/a"}, p.ExtraDapps)
	assert.Equal(t, deps.ContractClient, p.ContractClient)
	assert.Equal(t, deps.SyncStatus, p.SyncStatus)
	assert.NotNil(t, p.TokenValidator)

	// 修改配置不影响已构建的参数
	cfg.ExtraDapps[0] = "/changed"
	assert.Equal(t, "/extra/a", p.ExtraDapps[0])

	ui, err := NewFactory(mockBackendName).NewUI(true, deps)
	require.NoError(t, err)
	require.NotNil(t, ui)
	assert.Equal(t, deps.Remote, backendUnderTest.ui.Remote)
	assert.Equal(t, deps.ContractClient, backendUnderTest.ui.ContractClient)
}

func TestBuildRequiresRegistrar(t *testing.T) {
	backendUnderTest.reset()
	deps := newDeps()
	deps.ContractClient = &mockClient{err: xcom.ErrNotConfigured}
	cfg := &Configuration{Enabled: true, RequireRegistrar: true}

	_, err := NewFactory(mockBackendName).New(cfg, deps)
	require.True(t, errors.Is(err, xcom.ErrBuildFailed), "got %v", err)
	assert.Contains(t, err.Error(), xcom.ErrNotConfigured.Msg)
	assert.Nil(t, backendUnderTest.dapps)

	deps.ContractClient = &mockClient{}
	m, err := NewFactory(mockBackendName).New(cfg, deps)
	assert.NoError(t, err)
	assert.NotNil(t, m)
}

func TestBackendErrorIsBuildFailed(t *testing.T) {
	backendUnderTest.reset()
	backendUnderTest.err = errors.New("dapps path unreadable")

	_, err := NewFactory(mockBackendName).New(&Configuration{Enabled: true}, newDeps())
	require.True(t, errors.Is(err, xcom.ErrBuildFailed), "got %v", err)
	assert.Contains(t, err.Error(), "dapps path unreadable")
	backendUnderTest.reset()
}

func TestAccessTokenValidatorNoCache(t *testing.T) {
	s := &mockSigner{valid: map[string]bool{}}
	v := NewAccessTokenValidator(s)

	assert.False(t, v.IsValid("tk"))
	s.set("tk", true)
	assert.True(t, v.IsValid("tk"))
	s.set("tk", false)
	assert.False(t, v.IsValid("tk"))
	assert.Equal(t, 3, s.calls)

	assert.False(t, NewAccessTokenValidator(nil).IsValid("tk"))
}

func TestServiceListDapps(t *testing.T) {
	list := NewService(nil).ListDapps()
	assert.NotNil(t, list)
	assert.Empty(t, list)

	endpoints := []Endpoint{
		{ID: "b", Name: "B", Description: "second", Version: "1.0", Author: "x", IconURL: "/b/icon.png"},
		{ID: "a", Name: "A", Description: "first", Version: "0.1", Author: "y", IconURL: ""},
	}
	list = NewService(&mockMiddleware{endpoints: endpoints}).ListDapps()
	require.Len(t, list, len(endpoints))
	for i, e := range endpoints {
		assert.Equal(t, LocalDapp{e.ID, e.Name, e.Description, e.Version, e.Author, e.IconURL}, list[i])
	}
}

func TestBackends(t *testing.T) {
	found := false
	for _, name := range Backends() {
		if name == mockBackendName {
			found = true
		}
	}
	assert.True(t, found)
	assert.Panics(t, func() { Register(mockBackendName, func() Backend { return nil }) })
	assert.Panics(t, func() { Register("nil", nil) })
}

func TestDappsConfConfiguration(t *testing.T) {
	conf := GetDefDappsConf()
	conf.ExtraDapps = []string{"$BASE/extra", "", "/abs/dapp"}

	cfg := conf.Configuration("/data")
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "/data/dapps", cfg.DappsPath)
	assert.Equal(t, []string{"/data/extra", "/abs/dapp"}, cfg.ExtraDapps)
	assert.False(t, strings.Contains(cfg.DappsPath, "$"))
}

func TestConfigurationAddress(t *testing.T) {
	hp := &HostPort{Host: "127.0.0.1", Port: 8180}

	cfg := &Configuration{Enabled: true, UIEnabled: true}
	assert.Equal(t, hp, cfg.Address(hp))
	assert.Nil(t, cfg.Address(&HostPort{Host: "127.0.0.1"}))
	assert.Nil(t, cfg.Address(nil))

	for _, c := range []*Configuration{nil, {UIEnabled: true}, {Enabled: true}} {
		assert.Nil(t, c.Address(hp), "%+v", c)
	}

	conf := GetDefDappsConf()
	conf.UIEnabled = true
	assert.Equal(t, hp, conf.Configuration("/data").Address(hp))
}

func TestParseHostPort(t *testing.T) {
	hp, err := ParseHostPort("127.0.0.1:8180")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8180", hp.String())

	for _, s := range []string{"", "localhost", "localhost:0", "localhost:70000", "localhost:x"} {
		_, err := ParseHostPort(s)
		assert.Error(t, err, s)
	}
}
