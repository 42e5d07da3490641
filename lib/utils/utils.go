package utils

import (
	"fmt"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const (
	// XEnvVarRootPath overrides the node root directory
	XEnvVarRootPath = "XDAPPS_ROOT_PATH"
	// BaseDirPlaceholder is replaced by the data directory in configured paths
	BaseDirPlaceholder = "$BASE"
	// HomeDirPlaceholder is replaced by the user home directory in configured paths
	HomeDirPlaceholder = "$HOME"
)

// FileIsExist reports whether the named file or directory exists.
func FileIsExist(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}

	return true
}

// IsDir reports whether the named path exists and is a directory.
func IsDir(name string) bool {
	info, err := os.Stat(name)
	if err != nil {
		return false
	}

	return info.IsDir()
}

// Generate unique id, Not strictly unique
// But the probability of repetition is very low
func GenPseudoUniqId() uint64 {
	nano := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(nano))

	randNum1 := rnd.Int63()
	randNum2 := rnd.Int63()
	shift1 := rnd.Intn(16) + 2
	shift2 := rnd.Intn(8) + 1

	uId := ((randNum1 >> uint(shift1)) + (randNum2 >> uint(shift2)) + (nano >> 1)) &
		0x1FFFFFFFFFFFFF
	return uint64(uId)
}

// Generate log id, Not strictly unique
func GenLogId() string {
	return fmt.Sprintf("%d_%d", time.Now().Unix(), GenPseudoUniqId())
}

// Get call method by runtime.Caller
func GetFuncCall(callDepth int) (string, string) {
	pc, file, line, ok := runtime.Caller(callDepth)
	if !ok {
		return "???:0", "???"
	}

	f := runtime.FuncForPC(pc)
	_, function := path.Split(f.Name())
	_, filename := path.Split(file)

	fline := filename + ":" + strconv.Itoa(line)
	return fline, function
}

// 获取当前源文件目录
func GetCurFileDir() string {
	_, filename, _, _ := runtime.Caller(1)
	return path.Dir(filename)
}

// 获取当前执行目录
func GetCurExecDir() string {
	curDir, _ := filepath.Abs(filepath.Dir(os.Args[0]))
	return curDir
}

// GetRootPath returns XDAPPS_ROOT_PATH when set and existing, otherwise the parent
// directory of the running binary.
func GetRootPath() string {
	rtPath := os.Getenv(XEnvVarRootPath)
	if rtPath != "" && FileIsExist(rtPath) {
		return rtPath
	}

	return filepath.Dir(GetCurExecDir())
}

func GetHostName() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "127.0.0.1"
	}

	return hostname
}

// ReplaceHome expands $BASE with baseDir and $HOME with the user home directory.
func ReplaceHome(baseDir, p string) string {
	p = strings.ReplaceAll(p, BaseDirPlaceholder, baseDir)
	if strings.Contains(p, HomeDirPlaceholder) {
		home, err := os.UserHomeDir()
		if err == nil {
			p = strings.ReplaceAll(p, HomeDirPlaceholder, home)
		}
	}

	return filepath.Clean(p)
}
