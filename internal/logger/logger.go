package logger

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

var daemonLogger atomic.Pointer[DaemonLogger]

func init() {
	daemonLogger.Store(NewDaemonLogger())
}

type DaemonLogger struct {
	slogger *slog.Logger
}

func NewDaemonLogger() *DaemonLogger {
	return &DaemonLogger{
		slogger: slog.Default(),
	}
}

func Default() *DaemonLogger {
	return daemonLogger.Load()
}

func SetLogLevel(level slog.Level) {
	slog.SetLogLoggerLevel(level)
}

// slog wrapper

func Debug(msg string, args ...any) {
	daemonLogger.Load().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	daemonLogger.Load().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	daemonLogger.Load().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	daemonLogger.Load().Error(msg, args...)
}

func (l *DaemonLogger) Debug(msg string, args ...any) {
	l.slogger.Debug(msg, args...)
}

func (l *DaemonLogger) Info(msg string, args ...any) {
	l.slogger.Info(msg, args...)
}

func (l *DaemonLogger) Warn(msg string, args ...any) {
	l.slogger.Warn(msg, args...)
}

func (l *DaemonLogger) Error(msg string, args ...any) {
	l.slogger.Error(msg, args...)
}

// badger.Logger

func (l *DaemonLogger) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.slogger.Error(msg)
}

func (l *DaemonLogger) Warningf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.slogger.Warn(msg)
}

func (l *DaemonLogger) Infof(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.slogger.Info(msg)
}

func (l *DaemonLogger) Debugf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.slogger.Debug(msg)
}
