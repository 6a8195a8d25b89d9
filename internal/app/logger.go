package app

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/heartmarshall/forum-backend/internal/config"
	"github.com/heartmarshall/forum-backend/pkg/ctxutil"
)

// NewLogger creates a *slog.Logger writing to w and sets it as the default.
//
// Format "json" produces structured output; "text" is human-readable and
// includes source locations. Records logged with a *Context method carry
// request_id and user_id when the context has them.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(contextHandler{Handler: handler})
	slog.SetDefault(logger)

	return logger
}

// contextHandler enriches records with request-scoped identifiers.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := ctxutil.RequestIDFromCtx(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if uid, ok := ctxutil.UserIDFromCtx(ctx); ok {
		r.AddAttrs(slog.String("user_id", uid.String()))
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{Handler: h.Handler.WithGroup(name)}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
