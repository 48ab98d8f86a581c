package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// GormZapLogger bridges gorm's logger interface onto zap so query traces
// land in the same stream as the rest of the application logs.
type GormZapLogger struct {
	base          *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	skipNotFound  bool
}

// GormOption configures a GormZapLogger.
type GormOption func(*GormZapLogger)

// GormSlowThreshold overrides the duration above which a query is
// reported as slow. Zero disables slow query reporting.
func GormSlowThreshold(d time.Duration) GormOption {
	return func(l *GormZapLogger) {
		l.slowThreshold = d
	}
}

// GormLogNotFound controls whether gorm.ErrRecordNotFound is reported
// as a query failure. Lookups that legitimately miss are common, so the
// default is to stay quiet about them.
func GormLogNotFound(log bool) GormOption {
	return func(l *GormZapLogger) {
		l.skipNotFound = !log
	}
}

// NewGormZapLogger builds a gorm logger writing through zap.
func NewGormZapLogger(base *zap.Logger, level gormlogger.LogLevel, opts ...GormOption) *GormZapLogger {
	l := &GormZapLogger{
		base:          base.Named("gorm"),
		level:         level,
		slowThreshold: defaultSlowQueryThreshold,
		skipNotFound:  true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LogMode returns a copy of the logger at the given level.
func (l *GormZapLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormZapLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.base.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormZapLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.base.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormZapLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.base.Error(fmt.Sprintf(msg, args...))
	}
}

// Trace reports a finished query with its duration and row count. The
// request id travels on the context and is attached when present.
func (l *GormZapLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	took := time.Since(begin)
	query, rows := fc()

	fields := []zap.Field{
		zap.Duration("took", took),
		zap.Int64("rows", rows),
		zap.String("query", query),
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	switch {
	case err != nil && l.level >= gormlogger.Error:
		if l.skipNotFound && errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		l.base.Error("query failed", append(fields, zap.Error(err))...)

	case l.slowThreshold > 0 && took > l.slowThreshold && l.level >= gormlogger.Warn:
		l.base.Warn("slow query", append(fields, zap.Duration("threshold", l.slowThreshold))...)

	case l.level >= gormlogger.Info:
		l.base.Debug("query", fields...)
	}
}

// GormLevel translates the application log level into the closest gorm
// log level. Unknown values fall back to warn.
func GormLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
