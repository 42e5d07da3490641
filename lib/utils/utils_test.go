package utils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestFileIsExist(t *testing.T) {
	dir := t.TempDir()
	if !FileIsExist(dir) {
		t.Errorf("temp dir should exist.dir:%s", dir)
	}
	if FileIsExist(filepath.Join(dir, "missing")) {
		t.Errorf("missing file reported as exist")
	}
	if !IsDir(dir) {
		t.Errorf("temp dir is not a dir")
	}
}

// 并发生成log_id，冲突率需要足够低
func TestGenLogId(t *testing.T) {
	var (
		lock  sync.Mutex
		ids   = make(map[string]struct{})
		wg    sync.WaitGroup
		total = 2000
	)
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := GenLogId()
			lock.Lock()
			ids[id] = struct{}{}
			lock.Unlock()
		}()
	}
	wg.Wait()

	if len(ids) < total*99/100 {
		t.Errorf("too many repeated log id.total:%d uniq:%d", total, len(ids))
	}
}

func TestGetFuncCall(t *testing.T) {
	file, fc := GetFuncCall(1)
	if !strings.HasPrefix(file, "utils_test.go:") {
		t.Errorf("unexpected file line.got:%s", file)
	}
	if !strings.Contains(fc, "TestGetFuncCall") {
		t.Errorf("unexpected function.got:%s", fc)
	}
}

func TestReplaceHome(t *testing.T) {
	got := ReplaceHome("/data/node", "$BASE/dapps")
	if got != "/data/node/dapps" {
		t.Errorf("replace base failed.got:%s", got)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	got = ReplaceHome("/data/node", "$HOME/apps/")
	if got != filepath.Join(home, "apps") {
		t.Errorf("replace home failed.got:%s", got)
	}
}

func TestGetRootPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(XEnvVarRootPath, dir)
	if GetRootPath() != dir {
		t.Errorf("root path env not honored.got:%s", GetRootPath())
	}
}
