package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadServConf(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	content := "httpPort: 9545\ncorsOrigins: http://a.com,http://b.com\nuiPort: 8180\nshutdownTimeout: 2s\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadServConf(path)
	if err != nil {
		t.Fatalf("load server conf failed.err:%v", err)
	}
	if cfg.HttpAddr() != "127.0.0.1:9545" {
		t.Errorf("unexpected http addr.got:%s", cfg.HttpAddr())
	}
	if len(cfg.CorsOrigins) != 2 || cfg.CorsOrigins[1] != "http://b.com" {
		t.Errorf("unexpected cors origins.got:%v", cfg.CorsOrigins)
	}
	if cfg.UIAddr() != "127.0.0.1:8180" {
		t.Errorf("unexpected ui addr.got:%s", cfg.UIAddr())
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Errorf("unexpected shutdown timeout.got:%v", cfg.ShutdownTimeout)
	}
	if cfg.RpcPort != 38101 {
		t.Errorf("default rpc port lost.got:%d", cfg.RpcPort)
	}

	if _, err := LoadServConf(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("expect error for missing file")
	}
}
