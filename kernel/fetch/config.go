package fetch

import (
	"time"

	units "github.com/docker/go-units"
	"github.com/pkg/errors"

	"github.com/xuperchain/xdapps/kernel/common/xconfig"
)

type FetchConf struct {
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// 人类可读的大小，如"16MB"
	MaxSize string `yaml:"maxSize,omitempty"`
	// 每秒请求数，0表示不限速
	RateLimit float64 `yaml:"rateLimit,omitempty"`
	Burst     int     `yaml:"burst,omitempty"`
	CacheSize int     `yaml:"cacheSize,omitempty"`
	UserAgent string  `yaml:"userAgent,omitempty"`
}

func LoadFetchConf(cfgFile string) (*FetchConf, error) {
	cfg := GetDefFetchConf()
	err := xconfig.LoadYamlConf(cfgFile, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "load fetch config failed")
	}

	return cfg, nil
}

func GetDefFetchConf() *FetchConf {
	return &FetchConf{
		Timeout:   30 * time.Second,
		MaxSize:   "16MB",
		RateLimit: 10,
		Burst:     20,
		CacheSize: 128,
		UserAgent: "xdapps-fetch",
	}
}

// MaxBytes parses MaxSize
func (t *FetchConf) MaxBytes() (int64, error) {
	if t.MaxSize == "" {
		return 0, errors.New("maxSize not set")
	}
	return units.RAMInBytes(t.MaxSize)
}
