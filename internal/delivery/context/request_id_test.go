package context

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDOrNew(t *testing.T) {
	ctx := context.Background()

	generated := RequestIDOrNew(ctx)
	assert.NotEmpty(t, generated)
	assert.NotEqual(t, generated, RequestIDOrNew(ctx))

	ctx = WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", RequestIDOrNew(ctx))
}

func TestScoped(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx, id := Scoped(context.Background(), base, "", slog.String("command", "cart add"))
	assert.NotEmpty(t, id)
	assert.Equal(t, id, RequestID(ctx))

	GetLoggerOrDefault(ctx, nil).Info("hello")
	assert.Contains(t, buf.String(), "request_id="+id)
	assert.Contains(t, buf.String(), `command="cart add"`)
}

func TestGetLoggerOrDefault_Fallback(t *testing.T) {
	fallback := slog.Default()
	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
}
