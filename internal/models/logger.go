package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// logger routes gorm diagnostics to zerolog. Queries are logged at debug
// level, failed ones at error level. Record-not-found is an expected
// outcome of lookups and is not treated as a query error.
type logger struct {
	Logger zerolog.Logger
}

func (l *logger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *logger) Info(_ context.Context, s string, args ...interface{}) {
	l.Logger.Info().Msgf(s, args...)
}

func (l *logger) Warn(_ context.Context, s string, args ...interface{}) {
	l.Logger.Warn().Msgf(s, args...)
}

func (l *logger) Error(_ context.Context, s string, args ...interface{}) {
	l.Logger.Error().Msgf(s, args...)
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, rows := fc()

	event := l.Logger.Debug()
	if err != nil && !errors.Is(err, ErrResourceNotFound) {
		event = l.Logger.Error().Err(err)
	}

	event.Str("sql", sql).Int64("rows", rows).Dur("duration", time.Since(begin)).Msg("database query")
}
