package xconfig

import (
	"os"
	"path/filepath"
	"testing"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/xuperchain/xdapps/lib/utils"
)

func TestLoadEnvConf(t *testing.T) {
	t.Setenv(utils.XEnvVarRootPath, "")
	envCfg, err := LoadEnvConf(getConfFile())
	if err != nil {
		t.Fatal(err)
	}

	if envCfg.RootPath != "/tmp/xdapps" || !envCfg.MetricSwitch {
		t.Errorf("env config not loaded.cfg:%+v", envCfg)
	}
	// 未配置的字段保持默认值
	if envCfg.ServConf != "server.yaml" || envCfg.LogConf != "log.yaml" {
		t.Errorf("default value lost.cfg:%+v", envCfg)
	}
	if envCfg.GenConfFilePath(envCfg.DappsConf) != "/tmp/xdapps/conf/dapps.yaml" {
		t.Errorf("conf file path error.got:%s", envCfg.GenConfFilePath(envCfg.DappsConf))
	}
	if envCfg.GenDataAbsPath("chaindata") != "/tmp/xdapps/data/chaindata" {
		t.Errorf("data path error.got:%s", envCfg.GenDataAbsPath("chaindata"))
	}
	if envCfg.GenDirAbsPath("/var/log") != "/var/log" {
		t.Errorf("abs dir should be kept")
	}
}

func TestLoadEnvConfRootEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(utils.XEnvVarRootPath, dir)

	envCfg, err := LoadEnvConf(getConfFile())
	if err != nil {
		t.Fatal(err)
	}
	if envCfg.RootPath != dir {
		t.Errorf("root path env not honored.got:%s", envCfg.RootPath)
	}
}

func TestLoadYamlConfHooks(t *testing.T) {
	type sample struct {
		Origins []string      `yaml:"origins"`
		Timeout time.Duration `yaml:"timeout"`
		Name    string        `yaml:"name"`
	}

	file := filepath.Join(t.TempDir(), "sample.yaml")
	data := "origins: a.com,b.com\ntimeout: 3s\n"
	if err := os.WriteFile(file, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	out := &sample{Name: "keep"}
	if err := LoadYamlConf(file, out); err != nil {
		t.Fatalf("load yaml failed.err:%v", err)
	}
	if len(out.Origins) != 2 || out.Origins[1] != "b.com" {
		t.Errorf("slice hook failed.got:%v", out.Origins)
	}
	if out.Timeout != 3*time.Second || out.Name != "keep" {
		t.Errorf("decode failed.got:%+v", out)
	}

	if err := LoadYamlConf("", out); err == nil {
		t.Errorf("empty path should fail")
	}
}

func TestLoadYamlConfWrapsCause(t *testing.T) {
	file := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(file, []byte("origins: [a.com\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := LoadYamlConf(file, &struct{}{})
	if err == nil {
		t.Fatal("broken yaml should fail")
	}
	if !strings.Contains(err.Error(), file) {
		t.Errorf("path missing from error.err:%v", err)
	}
	if _, ok := errors.Cause(err).(viper.ConfigParseError); !ok {
		t.Errorf("parse error not kept as cause.cause:%T", errors.Cause(err))
	}
}

func getConfFile() string {
	dir := utils.GetCurFileDir()
	return filepath.Join(dir, "conf/env.yaml")
}
