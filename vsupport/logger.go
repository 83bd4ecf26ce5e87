package vsupport

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

// SetLogger configures the logger for vsupport and its provider packages.
// By default nothing is logged. Pass nil to restore silence.
//
// Log levels used by vsupport:
//   - [slog.LevelDebug]: dispatch level detection, per-provider kernel counts
//   - [slog.LevelInfo]: recognition table frozen by Register
//   - [slog.LevelWarn]: providers added after Register, invalid env settings
//
// Operations themselves never log.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Provider packages use it to share the
// same configuration.
func Logger() *slog.Logger {
	if l := loggerPtr.Load(); l != nil {
		return l
	}
	// Package init order may call Logger before SetLogger ever ran.
	l := newNopLogger()
	loggerPtr.CompareAndSwap(nil, l)
	return loggerPtr.Load()
}
