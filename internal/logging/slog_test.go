package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "a=1",
		"level=INFO", "msg=inf", "b=2",
		"level=WARN", "msg=wrn", "c=3",
		"level=ERROR", "msg=err", "d=4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("module", "inventory").Info(context.Background(), "hello", "k", "v")

	out := buf.String()
	for _, want := range []string{"level=INFO", "msg=hello", "module=inventory", "k=v"} {
		assert.Contains(t, out, want)
	}
}

func TestNew_Formats(t *testing.T) {
	ctx := context.Background()

	var jsonBuf bytes.Buffer
	l, err := New("json", "info", &jsonBuf)
	require.NoError(t, err)
	l.Debug(ctx, "hidden")
	l.Info(ctx, "shown", "server_id", "SRV-2024-001")
	assert.NotContains(t, jsonBuf.String(), "hidden")
	assert.Contains(t, jsonBuf.String(), `"server_id":"SRV-2024-001"`)

	var textBuf bytes.Buffer
	l, err = New("text", "debug", &textBuf)
	require.NoError(t, err)
	l.Debug(ctx, "visible")
	assert.Contains(t, textBuf.String(), "msg=visible")

	var zapBuf bytes.Buffer
	l, err = New("zap", "warn", &zapBuf)
	require.NoError(t, err)
	l.Info(ctx, "quiet")
	l.With("module", "http").Warn(ctx, "loud", "status", 503)
	out := zapBuf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, "warn")
	assert.True(t, strings.Contains(out, `"module"`) && strings.Contains(out, `"http"`))
}

func TestNew_Errors(t *testing.T) {
	_, err := New("xml", "info", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New("json", "verbose", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info(context.TODO(), "ignored")
	l.With("a", 1).Error(context.TODO(), "ignored")
}

func TestSlogLogger_SetLevel(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	l, err := New("text", "warn", &buf)
	require.NoError(t, err)
	child := l.With("module", "inventory")

	child.Info(ctx, "before")
	assert.NotContains(t, buf.String(), "before")

	l.(*SlogLogger).SetLevel(slog.LevelDebug)
	child.Debug(ctx, "after")
	assert.Contains(t, buf.String(), "msg=after")
	assert.Contains(t, buf.String(), "module=inventory")

	// wrapped loggers keep their handler's level
	log, wbuf := newTestLogger(t)
	log.SetLevel(slog.LevelError)
	log.Debug(ctx, "still shown")
	assert.Contains(t, wbuf.String(), "still shown")
}
