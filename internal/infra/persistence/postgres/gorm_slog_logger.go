package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"careerconnect/config"
	deliverycontext "careerconnect/internal/delivery/context"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultGormSlowThreshold = 200 * time.Millisecond

// gormSlogLogger bridges GORM's logging interface onto slog. Queries pick
// up the request-scoped logger from the context so they carry request ids.
type gormSlogLogger struct {
	logger        *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormSlogLogger(baseLogger *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &gormSlogLogger{
		logger:        baseLogger,
		level:         level,
		slowThreshold: defaultGormSlowThreshold,
	}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, logger.Info, slog.LevelInfo, "GORM info", msg, args...)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, logger.Warn, slog.LevelWarn, "GORM warn", msg, args...)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, logger.Error, slog.LevelError, "GORM error", msg, args...)
}

func (l *gormSlogLogger) log(ctx context.Context, min logger.LogLevel, level slog.Level, title, msg string, args ...any) {
	if l.level < min || l.logger == nil {
		return
	}

	deliverycontext.GetLoggerOrDefault(ctx, l.logger).LogAttrs(ctx, level, title,
		slog.String("message", fmt.Sprintf(msg, args...)),
	)
}

func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.logger == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	// Misses are a normal outcome, not query failures.
	logError := err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error

	switch {
	case logError:
		sql, rows := sqlAndRowsFn()
		l.queryLog(ctx, slog.LevelError, "GORM query failed", sql, rows, elapsed,
			slog.String("error", err.Error()))
	case slow && l.level >= logger.Warn:
		sql, rows := sqlAndRowsFn()
		l.queryLog(ctx, slog.LevelWarn, "GORM slow query", sql, rows, elapsed,
			slog.Duration("slowThreshold", l.slowThreshold))
	case l.level >= logger.Info:
		sql, rows := sqlAndRowsFn()
		l.queryLog(ctx, slog.LevelInfo, "GORM query", sql, rows, elapsed)
	}
}

func (l *gormSlogLogger) queryLog(ctx context.Context, level slog.Level, title, sql string, rows int64, elapsed time.Duration, extra ...slog.Attr) {
	attrs := append([]slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}, extra...)

	deliverycontext.GetLoggerOrDefault(ctx, l.logger).LogAttrs(ctx, level, title, attrs...)
}
