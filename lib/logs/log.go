package logs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuperchain/xdapps/lib/logs/config"

	log "github.com/xuperchain/log15"
)

// 底层日志库约束接口
type LogDriver interface {
	Error(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
}

var (
	logHandle LogDriver
	logConf   *config.LogConf
	logOnce   sync.Once
	logMu     sync.RWMutex
)

// InitLog opens the process log once. A missing or broken config file falls back to
// the default config so that the node can still report why it failed to start.
func InitLog(cfgFile, logDir string) {
	logOnce.Do(func() {
		lc, err := config.LoadLogConf(cfgFile)
		if err != nil {
			lc = config.GetDefLogConf()
		}

		lg, err := OpenLog(lc, logDir)
		if err != nil {
			panic(fmt.Sprintf("open log failed.err:%v", err))
		}
		setLogHandle(lg, lc)
	})
}

// OpenLog create and open log stream using LogConf
func OpenLog(lc *config.LogConf, logDir string) (LogDriver, error) {
	if lc == nil {
		return nil, fmt.Errorf("log config is nil")
	}

	lfmt := log.LogfmtFormat()
	switch lc.Fmt {
	case "json":
		lfmt = log.JsonFormat()
	}

	xlog := log.New("module", lc.Module)
	lvLevel, err := log.LvlFromString(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("log level error.err:%v", err)
	}
	// set lowest level as level limit, this may improve performance
	xlog.SetLevelLimit(lvLevel)

	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create log dir failed.dir:%s,err:%v", logDir, err)
	}
	infoFile := filepath.Join(logDir, lc.Filename+".log")
	wfFile := filepath.Join(logDir, lc.Filename+".log.wf")

	// 未配置分割周期时写单个文件
	var (
		nmHandler log.Handler
		wfHandler log.Handler
	)
	if interval, backups := lc.RotateMinutes(); interval > 0 {
		nmHandler = log.Must.RotateFileHandler(infoFile, lfmt, interval, backups)
		wfHandler = log.Must.RotateFileHandler(wfFile, lfmt, interval, backups)
	} else {
		nmHandler = log.Must.FileHandler(infoFile, lfmt)
		wfHandler = log.Must.FileHandler(wfFile, lfmt)
	}

	if lc.Async {
		nmHandler = log.BufferedHandler(lc.BufSize, nmHandler)
		wfHandler = log.BufferedHandler(lc.BufSize, wfHandler)
	}

	// prints log level between `lvLevel` to Info to common log
	nmfileh := log.BoundLvlFilterHandler(lvLevel, log.LvlError, nmHandler)
	// prints log level greater or equal to Warn to wf log
	wffileh := log.LvlFilterHandler(log.LvlWarn, wfHandler)

	var lhd log.Handler
	if lc.Console {
		hstd := log.StreamHandler(os.Stderr, lfmt)
		lhd = log.SyncHandler(log.MultiHandler(hstd, nmfileh, wffileh))
	} else {
		lhd = log.SyncHandler(log.MultiHandler(nmfileh, wffileh))
	}
	xlog.SetHandler(lhd)

	return xlog, nil
}

func setLogHandle(lg LogDriver, lc *config.LogConf) {
	logMu.Lock()
	defer logMu.Unlock()
	logHandle = lg
	logConf = lc
}

// 子模块的输出级别，未初始化日志时不过滤
func subModLevel(subMod string) log.Lvl {
	logMu.RLock()
	lc := logConf
	logMu.RUnlock()
	if lc == nil {
		return log.LvlDebug
	}

	lvl, err := log.LvlFromString(lc.SubModLevel(subMod))
	if err != nil {
		return log.LvlDebug
	}
	return lvl
}

// 未初始化日志时（例如单测）输出到标准错误
func getLogHandle() LogDriver {
	logMu.RLock()
	lg := logHandle
	logMu.RUnlock()
	if lg != nil {
		return lg
	}

	logMu.Lock()
	defer logMu.Unlock()
	if logHandle == nil {
		xlog := log.New("module", config.GetDefLogConf().Module)
		xlog.SetHandler(log.LvlFilterHandler(log.LvlInfo,
			log.StreamHandler(os.Stderr, log.LogfmtFormat())))
		logHandle = xlog
	}
	return logHandle
}
