package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xuperchain/xdapps/kernel/dapps"
	"github.com/xuperchain/xdapps/kernel/fetch"
	"github.com/xuperchain/xdapps/kernel/urlhint"
	"github.com/xuperchain/xdapps/lib/logs"
	"github.com/xuperchain/xdapps/lib/remote"
)

const UIEndpointID = "ui"

//go:embed assets/index.html
var assets embed.FS

var indexTmpl = template.Must(template.ParseFS(assets, "assets/index.html"))

type uiStatus struct {
	Syncing      bool
	Registrar    string
	RegistrarErr string
}

// UIMiddleware serves the node status page and the content api
type UIMiddleware struct {
	hint   *urlhint.URLHint
	client dapps.ContractClient
	remote *remote.Remote
	sync   dapps.SyncStatus
	fetch  fetch.Fetcher
	log    logs.Logger
}

func (t *UIMiddleware) Endpoints() []dapps.Endpoint {
	return []dapps.Endpoint{{
		ID:          UIEndpointID,
		Name:        "Node UI",
		Description: "Node status, content resolution and download",
		Version:     "1.0",
		Author:      "xdapps",
	}}
}

func (t *UIMiddleware) Handler(next http.Handler) http.Handler {
	r := chi.NewRouter()
	r.NotFound(countRoute(routeOthers, next).ServeHTTP)
	r.MethodNotAllowed(countRoute(routeOthers, next).ServeHTTP)

	api := r.With(routeCounter(routeAPI))
	api.Get("/api/ping", handlePing)
	api.Get("/api/content/{hash}", contentHandler(t.hint, t.remote, t.sync, t.log))
	api.Get("/api/content/{hash}/raw", rawContentHandler(t.hint, t.remote, t.sync, t.fetch, t.log))

	ui := r.With(routeCounter(routeUI))
	ui.Get("/ui", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusMovedPermanently)
	})
	ui.Get("/ui/", t.handleIndex)

	return r
}

func (t *UIMiddleware) handleIndex(w http.ResponseWriter, r *http.Request) {
	status := uiStatus{Syncing: t.sync.IsSyncing()}
	if addr, err := t.client.Registrar(); err != nil {
		status.RegistrarErr = err.Error()
	} else {
		status.Registrar = addr.Hex()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, status); err != nil {
		t.log.Warn("render ui index failed", "err", err)
	}
}
