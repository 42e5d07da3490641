package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuperchain/xdapps/lib/utils"
)

func TestGetDefLogConf(t *testing.T) {
	cfg := GetDefLogConf()
	if cfg.Module != "xdapps" || cfg.Fmt != "logfmt" || !cfg.Console {
		t.Errorf("unexpected default log config.cfg:%+v", cfg)
	}
	interval, backups := cfg.RotateMinutes()
	if interval != 60 || backups != 168 {
		t.Errorf("unexpected default rotate.interval:%d,backups:%d", interval, backups)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid.err:%v", err)
	}
}

func TestLoadLogConf(t *testing.T) {
	cfg, err := LoadLogConf(getConfFile())
	if err != nil {
		t.Fatalf("load log config failed.err:%v", err)
	}

	if cfg.Fmt != "json" || cfg.Level != "info" || cfg.Console || !cfg.Async || cfg.BufSize != 1024 {
		t.Errorf("log config not loaded.cfg:%+v", cfg)
	}
	if cfg.RotateInterval != 30*time.Minute || cfg.Retention != 12*time.Hour {
		t.Errorf("log rotate config not loaded.cfg:%+v", cfg)
	}
	if interval, backups := cfg.RotateMinutes(); interval != 30 || backups != 24 {
		t.Errorf("unexpected rotate.interval:%d,backups:%d", interval, backups)
	}

	testCases := map[string]string{
		"registrar": "warn",
		"RPC":       "error",
		"dapps":     "info",
	}
	for mod, want := range testCases {
		if got := cfg.SubModLevel(mod); got != want {
			t.Errorf("sub module level mismatch.mod:%s,want:%s,got:%s", mod, want, got)
		}
	}
}

func TestRotateOff(t *testing.T) {
	cfg := GetDefLogConf()
	cfg.RotateInterval = 30 * time.Second
	if interval, backups := cfg.RotateMinutes(); interval != 0 || backups != 0 {
		t.Errorf("sub minute interval should disable rotate.got:%d,%d", interval, backups)
	}

	cfg.RotateInterval = time.Hour
	cfg.Retention = time.Minute
	if interval, _ := cfg.RotateMinutes(); interval != 0 {
		t.Errorf("retention shorter than interval should disable rotate")
	}
}

func TestLoadLogConfInvalid(t *testing.T) {
	if _, err := LoadLogConf(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Errorf("missing config file should fail")
	}

	file := filepath.Join(t.TempDir(), "log.yaml")
	data := "level: info\nsubModLevels:\n  rpc: loud\n"
	if err := os.WriteFile(file, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLogConf(file); err == nil {
		t.Errorf("invalid sub module level should fail")
	}
}

func getConfFile() string {
	dir := utils.GetCurFileDir()
	return filepath.Join(dir, "conf/log.yaml")
}
