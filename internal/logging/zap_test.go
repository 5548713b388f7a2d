package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dmitrijs2005/savelinks/internal/config"
)

func TestZapLogger_LevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLogger(zap.New(core))
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	want := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		assert.Equal(t, want[i], e.Level)
	}
	assert.EqualValues(t, 3, entries[2].ContextMap()["c"])
}

func TestZapLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewZapLogger(zap.New(core)).With("session", "abc")

	log.Info(context.Background(), "hello", "k", "v")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "abc", fields["session"])
	assert.Equal(t, "v", fields["k"])
}

func TestNop_DoesNotPanic(t *testing.T) {
	log := NewNop()
	ctx := context.TODO()
	log.Debug(ctx, "x")
	log.Info(ctx, "x")
	log.Warn(ctx, "x")
	log.Error(ctx, "x")
	log.With("a", 1).Info(ctx, "x")
}

func TestNew_FileAndConsoleCores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	var stderr bytes.Buffer

	log, closeFn, err := New(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 5}, &stderr)
	require.NoError(t, err)

	ctx := context.Background()
	log.Debug(ctx, "hidden debug")
	log.Info(ctx, "user registered", "username", "alice")
	log.Warn(ctx, "failed login attempt", "username", "bob")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	file := string(data)

	assert.Contains(t, file, `"msg":"user registered"`)
	assert.Contains(t, file, `"msg":"failed login attempt"`)
	assert.NotContains(t, file, "hidden debug")

	console := stderr.String()
	assert.Contains(t, console, "failed login attempt")
	assert.False(t, strings.Contains(console, "user registered"), "info must stay out of the console")
}

func TestNew_StderrOnly(t *testing.T) {
	var stderr bytes.Buffer

	log, closeFn, err := New(config.LogConfig{Level: "error"}, &stderr)
	require.NoError(t, err)

	log.Warn(context.Background(), "quiet warning")
	log.Error(context.Background(), "loud error")
	require.NoError(t, closeFn())

	assert.NotContains(t, stderr.String(), "quiet warning")
	assert.Contains(t, stderr.String(), "loud error")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "chatty"}, &bytes.Buffer{})
	require.Error(t, err)
}
