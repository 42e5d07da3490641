package server

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// 按顺序查找的manifest文件名，yaml解析器同时兼容json
var manifestFiles = []string{"manifest.json", "manifest.yaml", "manifest.yml"}

// Manifest describes a dapp directory
type Manifest struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	Author      string `yaml:"author"`
	IconURL     string `yaml:"iconUrl"`
	// 静态文件所在子目录，默认为dapp目录本身
	ContentDir string `yaml:"contentDir"`
}

// LoadManifest reads the manifest of dir. A dir without manifest returns (nil, nil).
func LoadManifest(dir string) (*Manifest, error) {
	for _, name := range manifestFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}

		m := &Manifest{}
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, errors.Wrapf(err, "parse manifest failed.path:%s", path)
		}
		if m.ID == "" {
			m.ID = filepath.Base(dir)
		}
		if m.Name == "" {
			m.Name = m.ID
		}
		if !validID(m.ID) {
			return nil, errors.Errorf("invalid dapp id.id:%q,path:%s", m.ID, path)
		}
		return m, nil
	}

	return nil, nil
}

// id会作为url的第一段
func validID(id string) bool {
	if id == "" || id == "api" || id == "web" || id == "ui" {
		return false
	}
	return !strings.ContainsAny(id, "/\\?#% ")
}
