package server

import (
	"os"
	"path/filepath"

	"github.com/emirpasic/gods/maps/treemap"

	"github.com/xuperchain/xdapps/kernel/dapps"
	"github.com/xuperchain/xdapps/lib/logs"
)

// App is an installed dapp
type App struct {
	Manifest
	Dir string
}

func (a *App) Endpoint() dapps.Endpoint {
	return dapps.Endpoint{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Version:     a.Version,
		Author:      a.Author,
		IconURL:     a.IconURL,
	}
}

// ContentRoot is the directory static files are served from
func (a *App) ContentRoot() string {
	if a.ContentDir == "" {
		return a.Dir
	}
	return filepath.Join(a.Dir, filepath.Clean("/"+a.ContentDir))
}

// Catalog holds the dapps found at build time, ordered by id. It is read only after
// LoadCatalog returns.
type Catalog struct {
	apps *treemap.Map
}

// LoadCatalog scans every sub directory of dappsPath, then each extra dapp dir. The
// first dapp seen with an id wins. Broken manifests are logged and skipped.
func LoadCatalog(dappsPath string, extraDapps []string, log logs.Logger) *Catalog {
	c := &Catalog{apps: treemap.NewWithStringComparator()}

	if dappsPath != "" {
		entries, err := os.ReadDir(dappsPath)
		if err != nil && !os.IsNotExist(err) {
			log.Warn("read dapps path failed", "path", dappsPath, "err", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				c.add(filepath.Join(dappsPath, e.Name()), log)
			}
		}
	}
	for _, dir := range extraDapps {
		c.add(dir, log)
	}

	return c
}

func (c *Catalog) add(dir string, log logs.Logger) {
	m, err := LoadManifest(dir)
	if err != nil {
		log.Warn("load dapp manifest failed", "dir", dir, "err", err)
		return
	}
	if m == nil {
		log.Debug("skip dir without manifest", "dir", dir)
		return
	}
	if _, found := c.apps.Get(m.ID); found {
		log.Warn("duplicate dapp id ignored", "id", m.ID, "dir", dir)
		return
	}

	c.apps.Put(m.ID, &App{Manifest: *m, Dir: dir})
}

func (c *Catalog) Get(id string) (*App, bool) {
	v, found := c.apps.Get(id)
	if !found {
		return nil, false
	}
	return v.(*App), true
}

// Apps returns the dapps sorted by id
func (c *Catalog) Apps() []*App {
	list := make([]*App, 0, c.apps.Size())
	it := c.apps.Iterator()
	for it.Next() {
		list = append(list, it.Value().(*App))
	}
	return list
}

func (c *Catalog) Len() int {
	return c.apps.Size()
}
