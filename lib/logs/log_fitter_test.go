package logs

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	log "github.com/xuperchain/log15"
)

type recordDriver struct {
	mu      sync.Mutex
	records [][]interface{}
}

func (d *recordDriver) add(msg string, ctx []interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, append([]interface{}{msg}, ctx...))
}

func (d *recordDriver) Error(msg string, ctx ...interface{}) { d.add(msg, ctx) }
func (d *recordDriver) Warn(msg string, ctx ...interface{})  { d.add(msg, ctx) }
func (d *recordDriver) Info(msg string, ctx ...interface{})  { d.add(msg, ctx) }
func (d *recordDriver) Trace(msg string, ctx ...interface{}) { d.add(msg, ctx) }
func (d *recordDriver) Debug(msg string, ctx ...interface{}) { d.add(msg, ctx) }

func TestInfo(t *testing.T) {
	log, err := NewLogger("", "test")
	if err != nil {
		t.Fatalf("new logger fail.err:%v", err)
	}

	wg := &sync.WaitGroup{}
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(num int) {
			defer wg.Done()
			log.Info("info1", "a", 1, "b", 2, "c", 3, "num", num)
			log.Debug("test", "a", 1, "b", 2, "c", 3, "num", num)
			log.SetInfoField("key1", num)
			log.Info("info3", "a", true, "b", 1, "num", num)
		}(i)
	}
	wg.Wait()

	log.Warn("test warn", 1)
	log.Trace("msg")
}

func TestFitterFields(t *testing.T) {
	drv := &recordDriver{}
	lf, err := newLogFitter(drv, "log123", "registrar", log.LvlDebug)
	if err != nil {
		t.Fatalf("new log fitter failed.err:%v", err)
	}

	lf.SetCommField("chain", "local")
	lf.SetInfoField("cost", 3)
	lf.Info("call done", "to", "0x01")
	lf.Info("second")
	lf.Warn("odd", 1)
	lf.Debug("override", "log_id", "other")

	if len(drv.records) != 4 {
		t.Fatalf("record count mismatch.got:%d", len(drv.records))
	}

	first := fmt.Sprint(drv.records[0])
	for _, want := range []string{"log123", "registrar", "chain local", "to 0x01", "cost 3"} {
		if !strings.Contains(first, want) {
			t.Errorf("info record miss field.want:%s got:%s", want, first)
		}
	}
	// info字段只输出一次
	if strings.Contains(fmt.Sprint(drv.records[1]), "cost") {
		t.Errorf("info field not cleared.got:%v", drv.records[1])
	}
	if !strings.Contains(fmt.Sprint(drv.records[2]), "unknow 1") {
		t.Errorf("odd ctx not padded.got:%v", drv.records[2])
	}
	if drv.records[3][2] != "other" {
		t.Errorf("log_id not overridden.got:%v", drv.records[3])
	}
}

func fieldOf(record []interface{}, key string) interface{} {
	// record[0]是msg
	for i := 1; i+1 < len(record); i += 2 {
		if record[i] == key {
			return record[i+1]
		}
	}
	return nil
}

// 各级别日志的call字段都指向调用方
func TestCallField(t *testing.T) {
	drv := &recordDriver{}
	lf, err := newLogFitter(drv, "", "test", log.LvlDebug)
	if err != nil {
		t.Fatalf("new log fitter failed.err:%v", err)
	}

	lf.Info("info")
	lf.Warn("warn")
	lf.Error("error")
	lf.Trace("trace")
	lf.Debug("debug")

	for _, rec := range drv.records {
		call, _ := fieldOf(rec, CommFieldCall).(string)
		if !strings.HasPrefix(call, "log_fitter_test.go:") {
			t.Errorf("call field should be the caller.msg:%v,call:%s", rec[0], call)
		}
	}
}

func TestNilFitter(t *testing.T) {
	var lf *LogFitter
	lf.Info("should not panic")
	if _, err := newLogFitter(nil, "", "", log.LvlDebug); err == nil {
		t.Errorf("nil driver should fail")
	}
}

func TestSubModLevel(t *testing.T) {
	drv := &recordDriver{}
	lf, err := newLogFitter(drv, "", "rpc", log.LvlWarn)
	if err != nil {
		t.Fatalf("new log fitter failed.err:%v", err)
	}

	lf.Debug("debug")
	lf.Trace("trace")
	lf.Info("info")
	lf.Warn("warn")
	lf.Error("error")

	if len(drv.records) != 2 || drv.records[0][0] != "warn" || drv.records[1][0] != "error" {
		t.Errorf("records below warn should be dropped.got:%v", drv.records)
	}
}
