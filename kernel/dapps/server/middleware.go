package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	xcom "github.com/xuperchain/xdapps/kernel/common"
	"github.com/xuperchain/xdapps/kernel/dapps"
	"github.com/xuperchain/xdapps/kernel/fetch"
	"github.com/xuperchain/xdapps/kernel/urlhint"
	"github.com/xuperchain/xdapps/lib/logs"
	"github.com/xuperchain/xdapps/lib/metrics"
	"github.com/xuperchain/xdapps/lib/remote"
)

const (
	routeAPI    = "api"
	routeWeb    = "web"
	routeApp    = "app"
	routeUI     = "ui"
	routeOthers = "next"
)

// Middleware serves installed dapps, the dapps api and the web proxy
type Middleware struct {
	catalog   *Catalog
	hint      *urlhint.URLHint
	client    dapps.ContractClient
	remote    *remote.Remote
	sync      dapps.SyncStatus
	validator dapps.TokenValidator
	fetch     fetch.Fetcher
	uiAddr    *dapps.HostPort
	log       logs.Logger
}

func (t *Middleware) Endpoints() []dapps.Endpoint {
	apps := t.catalog.Apps()
	list := make([]dapps.Endpoint, 0, len(apps))
	for _, app := range apps {
		list = append(list, app.Endpoint())
	}
	return list
}

// Handler routes owned paths and hands everything else to next
func (t *Middleware) Handler(next http.Handler) http.Handler {
	r := chi.NewRouter()
	r.NotFound(countRoute(routeOthers, next).ServeHTTP)
	r.MethodNotAllowed(countRoute(routeOthers, next).ServeHTTP)

	api := r.With(t.apiCors(), routeCounter(routeAPI))
	api.Get("/api/ping", handlePing)
	api.Get("/api/apps", t.handleApps)
	api.Get("/api/content/{hash}", contentHandler(t.hint, t.remote, t.sync, t.log))
	api.Options("/api/*", func(w http.ResponseWriter, r *http.Request) {})

	web := r.With(routeCounter(routeWeb))
	web.Get("/web/{token}/*", t.handleWebProxy)

	for _, app := range t.catalog.Apps() {
		prefix := "/" + app.ID
		root := app.ContentRoot()
		files := http.StripPrefix(prefix, dirGuard(root, http.FileServer(http.Dir(root))))
		static := r.With(routeCounter(routeApp))
		static.Get(prefix, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
		})
		static.Get(prefix+"/*", files.ServeHTTP)
	}

	return r
}

// cors只对ui地址开放，未配置ui时不下发cors头
func (t *Middleware) apiCors() func(http.Handler) http.Handler {
	if t.uiAddr == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"http://" + t.uiAddr.String()},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxAge:         600,
	})
	return c.Handler
}

func (t *Middleware) handleApps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dapps.NewService(t).ListDapps())
}

// /web/{token}/{scheme}/{host}/{path...}
func (t *Middleware) handleWebProxy(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if !t.validator.IsValid(token) {
		writeError(w, http.StatusForbidden, "invalid web proxy token")
		return
	}

	target, err := proxyTarget(chi.URLParam(r, "*"), r.URL.RawQuery)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := fetchRemote(r.Context(), t.remote, t.fetch, target)
	if err != nil {
		t.log.Warn("web proxy fetch failed", "target", target, "err", err)
		writeError(w, fetchStatus(err), err.Error())
		return
	}

	writeFetched(w, resp)
}

// dirGuard answers 404 for directories without an index page instead of listing them
func dirGuard(root string, files http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(root, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if _, err := os.Stat(filepath.Join(name, "index.html")); err != nil {
				http.NotFound(w, r)
				return
			}
		}
		files.ServeHTTP(w, r)
	}
}

// fetchRemote downloads target on the remote pool
func fetchRemote(ctx context.Context, rmt *remote.Remote, f fetch.Fetcher,
	target string) (*fetch.Response, error) {
	var resp *fetch.Response
	var fetchErr error
	err := rmt.Exec(ctx, func(ctx context.Context) {
		resp, fetchErr = f.Fetch(ctx, target)
	})
	if err == nil {
		err = fetchErr
	}
	if err == nil && resp == nil {
		err = xcom.ErrFetchFailed.More("no response")
	}
	return resp, err
}

func writeFetched(w http.ResponseWriter, resp *fetch.Response) {
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.WriteHeader(resp.StatusCode)
	w.Write(resp.Body)
}

func proxyTarget(rest, rawQuery string) (string, error) {
	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 2 || parts[1] == "" {
		return "", errors.New("web proxy path must be /web/<token>/<scheme>/<host>/<path>")
	}
	scheme := parts[0]
	if scheme != "http" && scheme != "https" {
		return "", errors.New("unsupported scheme: " + scheme)
	}

	u := &url.URL{Scheme: scheme, Host: parts[1], Path: "/", RawQuery: rawQuery}
	if len(parts) == 3 {
		u.Path += parts[2]
	}
	return u.String(), nil
}

func fetchStatus(err error) int {
	switch {
	case errors.Is(err, xcom.ErrFetchTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, xcom.ErrParameter):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, remote.ErrRemoteClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("pong"))
}

// contentHandler resolves a content hash through the url hint contract
func contentHandler(hint *urlhint.URLHint, rmt *remote.Remote, sync dapps.SyncStatus,
	log logs.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if content := resolveContent(w, r, hint, rmt, sync, log); content != nil {
			writeJSON(w, http.StatusOK, content)
		}
	}
}

// rawContentHandler resolves a content hash and downloads what the hint points to
func rawContentHandler(hint *urlhint.URLHint, rmt *remote.Remote, sync dapps.SyncStatus,
	f fetch.Fetcher, log logs.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content := resolveContent(w, r, hint, rmt, sync, log)
		if content == nil {
			return
		}

		resp, err := fetchRemote(r.Context(), rmt, f, content.URL)
		if err != nil {
			log.Warn("fetch content failed", "url", content.URL, "err", err)
			writeError(w, fetchStatus(err), err.Error())
			return
		}
		writeFetched(w, resp)
	}
}

// resolveContent writes the error response itself and returns nil when resolution fails
func resolveContent(w http.ResponseWriter, r *http.Request, hint *urlhint.URLHint, rmt *remote.Remote,
	sync dapps.SyncStatus, log logs.Logger) *urlhint.Content {
	if sync.IsSyncing() {
		writeError(w, http.StatusServiceUnavailable, "node is syncing")
		return nil
	}

	raw := chi.URLParam(r, "hash")
	if !strings.HasPrefix(raw, "0x") {
		raw = "0x" + raw
	}
	b, err := hexutil.Decode(raw)
	if err != nil || len(b) != common.HashLength {
		writeError(w, http.StatusBadRequest, "invalid content hash")
		return nil
	}

	var content *urlhint.Content
	var resolveErr error
	err = rmt.Exec(r.Context(), func(ctx context.Context) {
		content, resolveErr = hint.Resolve(common.BytesToHash(b))
	})
	if err == nil {
		err = resolveErr
	}
	if err != nil {
		log.Debug("resolve content failed", "hash", raw, "err", err)
		writeError(w, resolveStatus(err), err.Error())
		return nil
	}

	return content
}

func resolveStatus(err error) int {
	switch {
	case errors.Is(err, xcom.ErrHintNotFound), errors.Is(err, xcom.ErrNotConfigured):
		return http.StatusNotFound
	case errors.Is(err, remote.ErrRemoteClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func routeCounter(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return countRoute(route, next)
	}
}

func countRoute(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		metrics.HTTPRequestCounter.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
	})
}
