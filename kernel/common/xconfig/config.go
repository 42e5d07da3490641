package xconfig

import (
	"os"
	"path/filepath"

	"github.com/xuperchain/xdapps/lib/utils"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type EnvConf struct {
	// Program running root directory
	RootPath string `yaml:"rootPath,omitempty"`
	// config file directory
	ConfDir string `yaml:"confDir,omitempty"`
	// data file directory
	DataDir string `yaml:"dataDir,omitempty"`
	// log file directory
	LogDir string `yaml:"logDir,omitempty"`
	// log config file name
	LogConf string `yaml:"logConf,omitempty"`
	// server config file name
	ServConf string `yaml:"servConf,omitempty"`
	// dapps config file name
	DappsConf string `yaml:"dappsConf,omitempty"`
	// chain genesis config file name
	ChainConf string `yaml:"chainConf,omitempty"`
	// fetch config file name
	FetchConf string `yaml:"fetchConf,omitempty"`
	// metric switch
	MetricSwitch bool `yaml:"metricSwitch,omitempty"`
}

func LoadEnvConf(cfgFile string) (*EnvConf, error) {
	cfg := GetDefEnvConf()
	err := LoadYamlConf(cfgFile, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "load env config failed")
	}

	// 修改根目录。优先级：1:XDAPPS_ROOT_PATH 2:配置文件设置 3:当前bin文件上级目录
	if rt := os.Getenv(utils.XEnvVarRootPath); rt != "" && utils.FileIsExist(rt) {
		cfg.RootPath = rt
	} else if cfg.RootPath == "" {
		cfg.RootPath = utils.GetRootPath()
	}

	return cfg, nil
}

func GetDefEnvConf() *EnvConf {
	return &EnvConf{
		ConfDir:      "conf",
		DataDir:      "data",
		LogDir:       "logs",
		LogConf:      "log.yaml",
		ServConf:     "server.yaml",
		DappsConf:    "dapps.yaml",
		ChainConf:    "chain.yaml",
		FetchConf:    "fetch.yaml",
		MetricSwitch: false,
	}
}

func (t *EnvConf) GenDirAbsPath(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(t.RootPath, dir)
}

func (t *EnvConf) GenDataAbsPath(dir string) string {
	return filepath.Join(t.GenDirAbsPath(t.DataDir), dir)
}

func (t *EnvConf) GenConfFilePath(fName string) string {
	return filepath.Join(t.GenDirAbsPath(t.ConfDir), fName)
}

// LoadYamlConf reads cfgFile with viper and decodes it over out, so fields missing from
// the file keep the defaults already set in out.
func LoadYamlConf(cfgFile string, out interface{}) error {
	if cfgFile == "" || !utils.FileIsExist(cfgFile) {
		return errors.Errorf("config file set error.path:%s", cfgFile)
	}

	viperObj := viper.New()
	viperObj.SetConfigFile(cfgFile)
	err := viperObj.ReadInConfig()
	if err != nil {
		return errors.Wrapf(err, "read config failed.path:%s", cfgFile)
	}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err = viperObj.Unmarshal(out, hook); err != nil {
		return errors.Wrapf(err, "unmatshal config failed.path:%s", cfgFile)
	}

	return nil
}
