//go:build !integration

package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_KeyValues(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })

	Info("roi calculated", "payback_period", 3.75)
	Error("save failed", errors.New("boom"))
	Debug("single value", 42)

	entries := logs.All()
	assert.Len(t, entries, 3)
	assert.Equal(t, "roi calculated", entries[0].Message)
	assert.Equal(t, 3.75, entries[0].ContextMap()["payback_period"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.EqualValues(t, 42, entries[2].ContextMap()["detail"])
}

func TestInit_DoesNotPanic(t *testing.T) {
	t.Cleanup(func() { Set(zap.NewNop()) })
	assert.NotPanics(t, func() {
		Init("development")
		Info("hello")
		Init("production")
		Warn("hello")
	})
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", TraceIDFromContext(ctx))

	ctx = WithTraceID(ctx, "abc")
	assert.Equal(t, "abc", TraceIDFromContext(ctx))
}
