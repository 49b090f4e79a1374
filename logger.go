package plotgpu

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so slog skips
// building the record at all.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var nopLogger = slog.New(nopHandler{})

var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(nopLogger)
}

// SetLogger sets the package logger. plotgpu is silent until it is
// called, and nil makes it silent again. A Canvas takes the package
// logger when it is created without WithLogger and hands it to its
// buffers and backend.
//
// Levels:
//   - [slog.LevelDebug]: buffer reallocation, uploads, flushed draws, resizes
//   - [slog.LevelInfo]: backend selection
//
// SetLogger is safe for concurrent use.
//
//	plotgpu.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = nopLogger
	}
	pkgLogger.Store(l)
}

// Logger returns the package logger. It is never nil.
func Logger() *slog.Logger {
	return pkgLogger.Load()
}

// loggerSetter is implemented by buffers and backends that log.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

func propagateLogger(v any, l *slog.Logger) {
	if ls, ok := v.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
