package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sheshine/backoffice/pkg/logger"
)

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, logger.L, logger.WithCtx(context.Background()))
}

func TestInjectLogger(t *testing.T) {
	var buf bytes.Buffer
	reqLog := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc123")

	ctx := logger.InjectLogger(context.Background(), reqLog)
	logger.WithCtx(ctx).Info("product created", "product_id", 4)

	out := buf.String()
	assert.Contains(t, out, "request_id=abc123")
	assert.Contains(t, out, "product_id=4")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := logger.NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	log := slog.New(h).With("component", "catalog")

	log.Info("listed")
	log.Warn("slow query")

	assert.Equal(t, 2, strings.Count(a.String(), "component=catalog"))
	assert.NotContains(t, b.String(), "listed")
	assert.Contains(t, b.String(), `"msg":"slow query"`)
}

func TestBootWithoutMongoIsNoop(t *testing.T) {
	closeFn := logger.Boot()
	assert.NotNil(t, closeFn)
	closeFn()
}
