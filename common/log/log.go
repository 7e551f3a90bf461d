package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// 未调用 InitLog 时使用默认 logger，库代码和测试里可以直接打日志
var logger = newLogger(os.Stdout, "yakuchecker", "info")

func newLogger(w io.Writer, appName string, logLevel string) *log.Logger {
	// 使用 os.Stdout 而不是 os.Stderr，避免控制台把所有日志都显示为红色
	l := log.New(w)
	l.SetPrefix(appName)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	// 显示文件名和行号
	l.SetReportCaller(true)
	// 跳过本包的封装函数
	l.SetCallerOffset(1)
	l.SetLevel(ParseLevel(logLevel))
	return l
}

// ParseLevel 默认为 info 级别
func ParseLevel(logLevel string) log.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func InitLog(appName string, logLevel string) {
	logger = newLogger(os.Stdout, appName, logLevel)
}

// SetOutput 重定向输出，测试和 REPL 使用
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel 配置热更新时调整级别
func SetLevel(logLevel string) {
	logger.SetLevel(ParseLevel(logLevel))
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		logger.Fatal(format)
	} else {
		logger.Fatalf(format, args...)
	}
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		logger.Info(format)
	} else {
		logger.Infof(format, args...)
	}
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		logger.Warn(format)
	} else {
		logger.Warnf(format, args...)
	}
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		logger.Error(format)
	} else {
		logger.Errorf(format, args...)
	}
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		logger.Debug(format)
	} else {
		logger.Debugf(format, args...)
	}
}
