package softrender

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so callers skip
// building attributes for a silent logger.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var (
	silent = slog.New(discard{})
	active atomic.Pointer[slog.Logger]
)

func init() {
	active.Store(silent)
}

// SetLogger routes the diagnostics of the renderer packages to l. The
// packages are silent until it is called; nil makes them silent again.
// It may be called while frames are being drawn.
//
// Records emitted:
//   - Debug: texture.Load finished; raster skipped a degenerate triangle.
//   - Info: the commands rendered a frame or wrote a file.
//   - Warn: an I420 file had trailing bytes; yuvgen rounded an odd size up.
//
// The commands install a text handler tagged with a per-run ID:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("run", id)
//	softrender.SetLogger(logger)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	active.Store(l)
}

// Logger returns the logger installed by [SetLogger].
func Logger() *slog.Logger {
	return active.Load()
}
