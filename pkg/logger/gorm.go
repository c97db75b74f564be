package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// maxSQLLength caps the statement text written per query.
const maxSQLLength = 1000

// GormLogger routes GORM statements and messages to zap, tagged with the
// request fields carried by the statement context.
type GormLogger struct {
	log           *zap.Logger
	slowThreshold time.Duration
	level         gormlogger.LogLevel
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// NewGormLogger creates a GORM logger writing to log.
// Queries slower than slowQuerySeconds are reported as warnings.
func NewGormLogger(log *zap.Logger, slowQuerySeconds float64, logLevel string) *GormLogger {
	return &GormLogger{
		log:           log,
		slowThreshold: time.Duration(slowQuerySeconds * float64(time.Second)),
		level:         gormLevel(logLevel),
	}
}

// gormLevel maps an application log level onto GORM's coarser scale.
// Unknown levels fall back to warn.
func gormLevel(logLevel string) gormlogger.LogLevel {
	switch strings.ToLower(logLevel) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data...)
}

func (l *GormLogger) printf(ctx context.Context, enabled gormlogger.LogLevel, lvl zapcore.Level, msg string, data ...interface{}) {
	if l.level < enabled {
		return
	}
	WithContext(ctx, l.log).Sugar().Logf(lvl, msg, data...)
}

// Trace logs one executed statement. A missing row is not treated as an error.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []zap.Field{
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if len(sql) > maxSQLLength {
		sql = sql[:maxSQLLength] + "..."
		fields = append(fields, zap.Bool("sql_truncated", true))
	}
	fields = append(fields, zap.String("sql", sql))

	log := WithContext(ctx, l.log)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		log.Error("gorm query error", append(fields, zap.Error(err))...)
	case l.slowThreshold != 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		log.Warn("gorm slow query", append(fields, zap.Duration("threshold", l.slowThreshold))...)
	case l.level >= gormlogger.Info:
		log.Info("gorm query", fields...)
	}
}
