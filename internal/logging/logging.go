// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"

	"github.com/ggoodman/zendesk-mcp-server-go/internal/logctx"
	"github.com/lmittmann/tint"
)

// Options select the handler and level.
type Options struct {
	Level slog.Level
	// Pretty selects colored human output instead of JSON.
	Pretty bool
}

// New returns a logger writing to w. Records are decorated with the request,
// session and tool data carried in their context.
func New(w io.Writer, opts Options) *slog.Logger {
	var h slog.Handler
	if opts.Pretty {
		h = tint.NewHandler(w, &tint.Options{
			Level:      opts.Level,
			TimeFormat: "[15:04:05.000]",
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opts.Level})
	}
	return slog.New(logctx.Wrap(h))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
