// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns the request-scoped logger injected by the logging
// middleware, so every line written from a handler or service carries the
// request ID:
//
//	log := logger.WithCtx(ctx)
//	log.Info("product created", "product_id", p.ID)
//	// → time=... level=INFO msg="product created" request_id=3f0c... product_id=12
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/sheshine/backoffice/config"
)

var L *slog.Logger

func init() {
	L = slog.New(consoleHandler())
	slog.SetDefault(L)
}

// consoleHandler writes JSON in production and text everywhere else.
func consoleHandler() slog.Handler {
	if config.IsProduction() {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// Boot attaches optional sinks named in config. When LOG_MONGO_URI is set,
// records are also shipped to MongoDB. The returned func flushes and
// closes those sinks; it is always safe to call.
func Boot() func() {
	uri := config.Get("LOG_MONGO_URI", "")
	if uri == "" {
		return func() {}
	}

	mh, err := NewMongoHandler(uri, config.Get("LOG_MONGO_DB", "backoffice"), "logs")
	if err != nil {
		L.Warn("logger: mongo sink disabled", "error", err)
		return func() {}
	}

	L = slog.New(NewMultiHandler(consoleHandler(), mh))
	slog.SetDefault(L)
	return mh.Close
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the logger stored in ctx by InjectLogger, or the base
// logger when the request carries none.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a request-scoped *slog.Logger into ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
