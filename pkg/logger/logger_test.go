package logger

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("unknown"))
}

func TestNewWithConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := NewWithConfig(Config{
		Level:          "info",
		Format:         "json",
		OutputPath:     path,
		ServiceName:    "user-management-service",
		ServiceVersion: "test",
		Environment:    "production",
	})
	require.NoError(t, err)

	l.Info("hello")
	assert.FileExists(t, path)
}

func TestWithContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	ctx := NewRequestContext(context.Background(), "console", "req-1")
	WithContext(ctx, base).Info("with fields")
	WithContext(context.Background(), base).Info("without fields")

	entries := logs.All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "console", fields["front_end"])
	assert.Empty(t, entries[1].ContextMap())
}

func TestNewRequestContext_GeneratesID(t *testing.T) {
	ctx := NewRequestContext(context.Background(), "http", "")

	assert.NotEmpty(t, GetRequestID(ctx))
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), 0.1, "warn")
	ctx := context.Background()
	sql := func() (string, int64) { return "SELECT * FROM users", 1 }

	gl.Trace(ctx, time.Now(), sql, nil)
	assert.Equal(t, 0, logs.Len(), "fast queries are not logged at warn level")

	gl.Trace(ctx, time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len(), "record not found is not an error")

	gl.Trace(ctx, time.Now(), sql, errors.New("syntax error"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "gorm query error", logs.All()[0].Message)

	gl.Trace(ctx, time.Now().Add(-time.Second), sql, nil)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "gorm slow query", logs.All()[1].Message)

	silent := gl.LogMode(gormlogger.Silent)
	silent.Trace(ctx, time.Now(), sql, errors.New("ignored"))
	assert.Equal(t, 2, logs.Len())
}

func TestGormLogger_Printf(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), 0, "warn")
	ctx := NewRequestContext(context.Background(), "console", "req-1")

	gl.Info(ctx, "opened %s", "users")
	assert.Equal(t, 0, logs.Len(), "info is below the warn threshold")

	gl.Warn(ctx, "retrying %d", 2)
	gl.Error(ctx, "failed %s", "boom")
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "retrying 2", logs.All()[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[1].Level)
	assert.Equal(t, "req-1", logs.All()[1].ContextMap()["request_id"])
}

func TestGormLogger_TruncatesLongSQL(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), 0, "info")

	long := strings.Repeat("x", 2000)
	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return long, 0 }, nil)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, true, fields["sql_truncated"])
	assert.Len(t, fields["sql"], 1003)
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, gormLevel("silent"))
	assert.Equal(t, gormlogger.Error, gormLevel("error"))
	assert.Equal(t, gormlogger.Info, gormLevel("DEBUG"))
	assert.Equal(t, gormlogger.Warn, gormLevel("warn"))
	assert.Equal(t, gormlogger.Warn, gormLevel("bogus"))
}
