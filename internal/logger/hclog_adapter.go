package logger

import (
	"io"
	"log"

	"github.com/hashicorp/go-hclog"
)

// HCLogAdapter adapts DaemonLogger to the hashicorp/go-hclog.Logger interface
// so go-plugin internals log through the daemon's logger.
type HCLogAdapter struct {
	logger *DaemonLogger
	name   string
}

// NewHCLogAdapter creates a new HCLog adapter wrapping the default logger.
func NewHCLogAdapter() hclog.Logger {
	return &HCLogAdapter{
		logger: Default(),
		name:   "plugin",
	}
}

func (h *HCLogAdapter) Log(level hclog.Level, msg string, args ...interface{}) {
	switch level {
	case hclog.Trace, hclog.Debug:
		h.logger.Debug(msg, args...)
	case hclog.Info:
		h.logger.Info(msg, args...)
	case hclog.Warn:
		h.logger.Warn(msg, args...)
	case hclog.Error:
		h.logger.Error(msg, args...)
	}
}

func (h *HCLogAdapter) Trace(msg string, args ...interface{}) {
	h.logger.Debug(msg, args...)
}

func (h *HCLogAdapter) Debug(msg string, args ...interface{}) {
	h.logger.Debug(msg, args...)
}

func (h *HCLogAdapter) Info(msg string, args ...interface{}) {
	h.logger.Info(msg, args...)
}

func (h *HCLogAdapter) Warn(msg string, args ...interface{}) {
	h.logger.Warn(msg, args...)
}

func (h *HCLogAdapter) Error(msg string, args ...interface{}) {
	h.logger.Error(msg, args...)
}

func (h *HCLogAdapter) IsTrace() bool { return false }
func (h *HCLogAdapter) IsDebug() bool { return true }
func (h *HCLogAdapter) IsInfo() bool  { return true }
func (h *HCLogAdapter) IsWarn() bool  { return true }
func (h *HCLogAdapter) IsError() bool { return true }

func (h *HCLogAdapter) ImpliedArgs() []interface{} {
	return nil
}

func (h *HCLogAdapter) With(args ...interface{}) hclog.Logger {
	return &HCLogAdapter{
		logger: h.logger,
		name:   h.name,
	}
}

func (h *HCLogAdapter) Name() string {
	return h.name
}

func (h *HCLogAdapter) Named(name string) hclog.Logger {
	return &HCLogAdapter{
		logger: h.logger,
		name:   h.name + "." + name,
	}
}

func (h *HCLogAdapter) ResetNamed(name string) hclog.Logger {
	return &HCLogAdapter{
		logger: h.logger,
		name:   name,
	}
}

func (h *HCLogAdapter) SetLevel(level hclog.Level) {}

func (h *HCLogAdapter) GetLevel() hclog.Level {
	return hclog.Info
}

func (h *HCLogAdapter) StandardLogger(opts *hclog.StandardLoggerOptions) *log.Logger {
	return log.Default()
}

func (h *HCLogAdapter) StandardWriter(opts *hclog.StandardLoggerOptions) io.Writer {
	return io.Discard
}
