package dapps

import (
	"github.com/pkg/errors"

	"github.com/xuperchain/xdapps/kernel/common/xconfig"
	"github.com/xuperchain/xdapps/lib/utils"
)

const DefaultBackend = "builtin"

// dapps配置
type DappsConf struct {
	Enabled bool `yaml:"enabled,omitempty"`
	// 支持$BASE(数据目录)和$HOME占位符
	DappsPath  string   `yaml:"dappsPath,omitempty"`
	ExtraDapps []string `yaml:"extraDapps,omitempty"`
	UIEnabled  bool     `yaml:"uiEnabled,omitempty"`
	// 后端驱动名
	Backend string `yaml:"backend,omitempty"`
	// 构建时校验registrar可用
	RequireRegistrar bool `yaml:"requireRegistrar,omitempty"`
}

func LoadDappsConf(cfgFile string) (*DappsConf, error) {
	cfg := GetDefDappsConf()
	err := xconfig.LoadYamlConf(cfgFile, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "load dapps config failed")
	}

	return cfg, nil
}

func GetDefDappsConf() *DappsConf {
	return &DappsConf{
		Enabled:          true,
		DappsPath:        utils.BaseDirPlaceholder + "/dapps",
		ExtraDapps:       []string{},
		UIEnabled:        false,
		Backend:          DefaultBackend,
		RequireRegistrar: false,
	}
}

// Configuration resolves the placeholders against dataDir
func (t *DappsConf) Configuration(dataDir string) *Configuration {
	cfg := &Configuration{
		Enabled:          t.Enabled,
		UIEnabled:        t.UIEnabled,
		ExtraDapps:       make([]string, 0, len(t.ExtraDapps)),
		RequireRegistrar: t.RequireRegistrar,
	}
	if t.DappsPath != "" {
		cfg.DappsPath = utils.ReplaceHome(dataDir, t.DappsPath)
	}
	for _, p := range t.ExtraDapps {
		if p == "" {
			continue
		}
		cfg.ExtraDapps = append(cfg.ExtraDapps, utils.ReplaceHome(dataDir, p))
	}

	return cfg
}

// Configuration is the immutable input of Factory.New
type Configuration struct {
	Enabled    bool
	DappsPath  string
	ExtraDapps []string
	// 为true时registrar不可用则构建失败
	RequireRegistrar bool
	UIEnabled        bool
}

// Address returns hp as the ui origin trusted by the dapps api, or nil when dapps or
// the ui are off or hp carries no port.
func (t *Configuration) Address(hp *HostPort) *HostPort {
	if t == nil || !t.Enabled || !t.UIEnabled || hp == nil || hp.Port <= 0 {
		return nil
	}

	return hp
}
