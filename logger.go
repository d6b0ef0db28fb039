package compositor

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled is false, so no attributes are
// built for disabled calls.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger returns the silent default logger.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the logger read by every frame. The host may swap it
// while DrawFrame runs.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the logger used by [State]. The compositor is silent until
// it is called, and a nil logger makes it silent again.
//
// Levels:
//   - [slog.LevelDebug]: per-frame decisions (viewport, rendering mode, inval rect)
//   - [slog.LevelInfo]: GPU resource re-initialization
//   - [slog.LevelWarn]: suspicious scale before a frame update
//   - [slog.LevelError]: corrupted scale right before the fault handler runs
//
// Collaborators handed to [New] that implement SetLogger(*slog.Logger)
// receive the logger that is current at construction time.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set by [SetLogger].
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by collaborators that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to every collaborator that implements
// loggerSetter. Nil interface values are skipped.
func propagateLogger(l *slog.Logger, collaborators ...any) {
	for _, c := range collaborators {
		if ls, ok := c.(loggerSetter); ok {
			ls.SetLogger(l)
		}
	}
}
