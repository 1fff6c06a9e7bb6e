package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	ts := time.Date(2026, 1, 15, 10, 30, 45, 123000000, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "server started", 0)
	r.AddAttrs(slog.String("port", "8080"))
	require.NoError(t, h.Handle(context.Background(), r))

	output := buf.String()
	assert.Contains(t, output, "10:30:45.123")
	assert.Contains(t, output, "INF")
	assert.Contains(t, output, "server started")
	assert.Contains(t, output, "port=")
	assert.Contains(t, output, "8080")
	assert.True(t, strings.HasSuffix(output, "\n"))
}

func TestTerminalHandler_Levels(t *testing.T) {
	tests := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			var buf bytes.Buffer
			h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

			require.NoError(t, h.Handle(context.Background(), slog.NewRecord(time.Now(), tt.level, "msg", 0)))

			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}

func TestTerminalHandler_Enabled(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestTerminalHandler_DefaultLevel(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, nil)

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestTerminalHandler_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestTerminalHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "api")})
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "request", 0)
	r.AddAttrs(slog.Int("status", 200))
	require.NoError(t, h2.Handle(context.Background(), r))

	output := buf.String()
	assert.Contains(t, output, "component=")
	assert.Contains(t, output, "api")
	assert.Contains(t, output, "status=")
	assert.Contains(t, output, "200")
}

func TestTerminalHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "request", 0)
	r.AddAttrs(slog.String("method", "GET"))
	require.NoError(t, h.WithGroup("http").Handle(context.Background(), r))

	assert.Contains(t, buf.String(), "http.method=")
}

func TestTerminalHandler_EmptyGroup(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, nil)

	assert.Same(t, h, h.WithGroup(""))
}

func TestTerminalHandler_GroupAttr(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	r.AddAttrs(slog.Group("request",
		slog.String("method", "POST"),
		slog.Int("status", 201),
	))
	require.NoError(t, h.Handle(context.Background(), r))

	output := buf.String()
	assert.Contains(t, output, "request.method=")
	assert.Contains(t, output, "request.status=")
}

func TestTerminalHandler_QuotesStringsWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	r.AddAttrs(slog.String("reason", "connection refused"))
	require.NoError(t, h.Handle(context.Background(), r))

	assert.Contains(t, buf.String(), `"connection refused"`)
}

func TestTerminalHandler_ErrorsAndDurations(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	r := slog.NewRecord(time.Now(), slog.LevelError, "query failed", 0)
	r.AddAttrs(
		slog.Any("error", errors.New("disk full")),
		slog.Duration("elapsed", 1500*time.Millisecond),
		slog.Any("ids", []int64{1, 2}),
	)
	require.NoError(t, h.Handle(context.Background(), r))

	output := buf.String()
	assert.Contains(t, output, "disk full")
	assert.Contains(t, output, "1.5s")
	assert.Contains(t, output, "[1,2]")
}
