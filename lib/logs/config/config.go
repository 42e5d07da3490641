package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	log "github.com/xuperchain/log15"

	"github.com/xuperchain/xdapps/lib/utils"
)

// LogConf is the log config of the dapps node
type LogConf struct {
	Module   string `yaml:"module,omitempty"`
	Filename string `yaml:"filename,omitempty"`
	// logfmt或json
	Fmt string `yaml:"fmt,omitempty"`
	// 全局输出级别：debug、trace、info、warn、error
	Level string `yaml:"level,omitempty"`
	// 按子模块覆盖输出级别，如registrar: debug，只能比全局级别更严格
	SubModLevels map[string]string `yaml:"subModLevels,omitempty"`
	// 分割周期，不足一分钟时不分割
	RotateInterval time.Duration `yaml:"rotateInterval,omitempty"`
	// 保留时长，保留文件数为Retention/RotateInterval
	Retention time.Duration `yaml:"retention,omitempty"`
	Console   bool          `yaml:"console,omitempty"`
	Async     bool          `yaml:"async,omitempty"`
	// 异步模式下缓冲的记录数
	BufSize int `yaml:"bufSize,omitempty"`
}

func LoadLogConf(cfgFile string) (*LogConf, error) {
	cfg := GetDefLogConf()
	if err := cfg.loadConf(cfgFile); err != nil {
		return nil, errors.Wrap(err, "load log config failed")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func GetDefLogConf() *LogConf {
	return &LogConf{
		Module:         "xdapps",
		Filename:       "xdapps",
		Fmt:            "logfmt",
		Level:          "debug",
		SubModLevels:   map[string]string{},
		RotateInterval: time.Hour,
		Retention:      7 * 24 * time.Hour,
		Console:        true,
		Async:          false,
		BufSize:        102400,
	}
}

// Validate checks every level name
func (t *LogConf) Validate() error {
	if _, err := log.LvlFromString(t.Level); err != nil {
		return errors.Wrapf(err, "invalid log level.level:%s", t.Level)
	}
	for mod, lv := range t.SubModLevels {
		if _, err := log.LvlFromString(lv); err != nil {
			return errors.Wrapf(err, "invalid sub module log level.mod:%s,level:%s", mod, lv)
		}
	}
	return nil
}

// RotateMinutes returns the rotate interval and the number of kept files, zero when
// rotation is off.
func (t *LogConf) RotateMinutes() (int, int) {
	interval := int(t.RotateInterval / time.Minute)
	if interval <= 0 || t.Retention < t.RotateInterval {
		return 0, 0
	}
	return interval, int(t.Retention / t.RotateInterval)
}

// SubModLevel returns the level of subMod, falling back to the global level.
// Sub module keys are lower-cased by the loader.
func (t *LogConf) SubModLevel(subMod string) string {
	if lv, ok := t.SubModLevels[strings.ToLower(subMod)]; ok {
		return lv
	}
	return t.Level
}

func (t *LogConf) loadConf(cfgFile string) error {
	if cfgFile == "" || !utils.FileIsExist(cfgFile) {
		return errors.Errorf("config file set error.path:%s", cfgFile)
	}

	viperObj := viper.New()
	viperObj.SetConfigFile(cfgFile)
	if err := viperObj.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read config failed.path:%s", cfgFile)
	}

	if err := viperObj.Unmarshal(t); err != nil {
		return errors.Wrapf(err, "unmatshal config failed.path:%s", cfgFile)
	}

	return nil
}
