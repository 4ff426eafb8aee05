// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for present and its backends.
// By default nothing is logged. Pass nil to restore the silent default.
//
// The logger is also handed to gg, so diagnostics from the 2D
// accelerator that draws into presented frames end up in the same sink.
//
// Log levels used by present:
//   - [slog.LevelDebug]: per-frame conditions (stale swapchain, skipped frames)
//   - [slog.LevelInfo]: lifecycle events (GPU selected, swapchain recreated)
//   - [slog.LevelWarn]: non-fatal failures (interop setup, submit errors)
//
// Example:
//
//	present.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger returns the current logger. Backend packages call this to share
// the configuration set through SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
