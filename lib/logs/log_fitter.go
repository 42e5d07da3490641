package logs

import (
	"fmt"
	"os"
	"sync"

	log "github.com/xuperchain/log15"

	"github.com/xuperchain/xdapps/lib/utils"
)

// Reserve common key
const (
	CommFieldLogId  = "log_id"
	CommFieldSubMod = "s_mod"
	CommFieldPid    = "pid"
	CommFieldCall   = "call"
)

const (
	DefaultCallDepth = 4
)

// 在日志库之上做一层轻量级封装，方便日志字段组装和日志库替换
type Logger interface {
	GetLogId() string
	SetCommField(key string, value interface{})
	SetInfoField(key string, value interface{})
	Error(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
}

// LogFitter attaches log_id, sub module, call site and pid to every record
type LogFitter struct {
	logger       LogDriver
	logId        string
	subMod       string
	pid          int
	commFields   []interface{}
	commFieldLck *sync.RWMutex
	infoFields   []interface{}
	infoFieldLck *sync.RWMutex
	callDepth    int
	// 子模块输出级别，低于该级别的日志直接丢弃
	lvl log.Lvl
}

// NewLogger returns a fitter over the process log; an empty logId gets a generated one
func NewLogger(logId, subMod string) (*LogFitter, error) {
	return newLogFitter(getLogHandle(), logId, subMod, subModLevel(subMod))
}

func newLogFitter(logger LogDriver, logId, subMod string, lvl log.Lvl) (*LogFitter, error) {
	if logger == nil {
		return nil, fmt.Errorf("new logger param error")
	}
	if logId == "" {
		logId = utils.GenLogId()
	}
	if subMod == "" {
		subMod = "unknow"
	}

	lf := &LogFitter{
		logger:       logger,
		logId:        logId,
		subMod:       subMod,
		pid:          os.Getpid(),
		commFields:   make([]interface{}, 0),
		commFieldLck: &sync.RWMutex{},
		infoFields:   make([]interface{}, 0),
		infoFieldLck: &sync.RWMutex{},
		callDepth:    DefaultCallDepth,
		lvl:          lvl,
	}

	return lf, nil
}

func (t *LogFitter) GetLogId() string {
	return t.logId
}

func (t *LogFitter) SetCommField(key string, value interface{}) {
	if !t.isInit() || key == "" || value == nil {
		return
	}

	t.commFieldLck.Lock()
	defer t.commFieldLck.Unlock()

	t.commFields = append(t.commFields, key, value)
}

func (t *LogFitter) SetInfoField(key string, value interface{}) {
	if !t.isInit() || key == "" || value == nil {
		return
	}

	t.infoFieldLck.Lock()
	defer t.infoFieldLck.Unlock()

	t.infoFields = append(t.infoFields, key, value)
}

func (t *LogFitter) Error(msg string, ctx ...interface{}) {
	if !t.isInit() || t.lvl < log.LvlError {
		return
	}
	t.logger.Error(msg, t.fmtCommLogger(ctx...)...)
}

func (t *LogFitter) Warn(msg string, ctx ...interface{}) {
	if !t.isInit() || t.lvl < log.LvlWarn {
		return
	}
	t.logger.Warn(msg, t.fmtCommLogger(ctx...)...)
}

func (t *LogFitter) Info(msg string, ctx ...interface{}) {
	if !t.isInit() || t.lvl < log.LvlInfo {
		return
	}
	t.logger.Info(msg, t.fmtInfoLogger(ctx...)...)
}

func (t *LogFitter) Trace(msg string, ctx ...interface{}) {
	if !t.isInit() || t.lvl < log.LvlTrace {
		return
	}
	t.logger.Trace(msg, t.fmtCommLogger(ctx...)...)
}

func (t *LogFitter) Debug(msg string, ctx ...interface{}) {
	if !t.isInit() || t.lvl < log.LvlDebug {
		return
	}
	t.logger.Debug(msg, t.fmtCommLogger(ctx...)...)
}

func (t *LogFitter) genBaseField() []interface{} {
	fileLine, _ := utils.GetFuncCall(t.callDepth)

	// 保持log_id是第一个写入，方便替换
	comCtx := make([]interface{}, 0, 8)
	comCtx = append(comCtx, CommFieldLogId, t.logId)
	comCtx = append(comCtx, CommFieldSubMod, t.subMod)
	comCtx = append(comCtx, CommFieldCall, fileLine)
	comCtx = append(comCtx, CommFieldPid, t.pid)

	return comCtx
}

// genBaseField需要被fmtXxxLogger直接调用，保证调用栈深度一致
func (t *LogFitter) fmtCommLogger(ctx ...interface{}) []interface{} {
	return t.joinFields(t.genBaseField(), padCtx(ctx))
}

// info日志额外输出info字段，输出后清空
func (t *LogFitter) fmtInfoLogger(ctx ...interface{}) []interface{} {
	comCtx := t.joinFields(t.genBaseField(), padCtx(ctx))

	t.infoFieldLck.Lock()
	defer t.infoFieldLck.Unlock()
	comCtx = append(comCtx, t.infoFields...)
	t.infoFields = t.infoFields[:0]

	return comCtx
}

func (t *LogFitter) joinFields(comCtx, ctx []interface{}) []interface{} {
	// 如果设置了log_id，用设置的log_id替换公共字段
	if len(ctx) > 1 && fmt.Sprintf("%v", ctx[0]) == CommFieldLogId {
		comCtx[1] = ctx[1]
		ctx = ctx[2:]
	}

	t.commFieldLck.RLock()
	comCtx = append(comCtx, t.commFields...)
	t.commFieldLck.RUnlock()

	return append(comCtx, ctx...)
}

// 奇数个字段时补齐key
func padCtx(ctx []interface{}) []interface{} {
	if len(ctx)%2 == 0 {
		return ctx
	}

	last := ctx[len(ctx)-1]
	padded := make([]interface{}, 0, len(ctx)+1)
	padded = append(padded, ctx[:len(ctx)-1]...)
	return append(padded, "unknow", last)
}

func (t *LogFitter) isInit() bool {
	if t == nil || t.logger == nil || t.commFields == nil || t.infoFields == nil ||
		t.commFieldLck == nil || t.infoFieldLck == nil {
		return false
	}

	return true
}
