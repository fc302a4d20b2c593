package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/config"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// DefaultSlowQuery is used when the database config leaves slow_query unset.
const DefaultSlowQuery = 200 * time.Millisecond

// GormZapLogger sends gorm's statement traces and driver messages to zap.
type GormZapLogger struct {
	ZapLogger *zap.Logger
	LogLevel  logger.LogLevel
	SlowQuery time.Duration
}

// NewGormZapLogger builds the gorm logger from the database section of the config.
func NewGormZapLogger(zapLogger *zap.Logger, conf config.DatabaseConfig) *GormZapLogger {
	slow := conf.SlowQuery
	if slow <= 0 {
		slow = DefaultSlowQuery
	}
	return &GormZapLogger{
		ZapLogger: zapLogger.Named("gorm"),
		LogLevel:  ParseGormLevel(conf.LogLevel),
		SlowQuery: slow,
	}
}

// ParseGormLevel maps silent, error, warn and info to gorm levels. Anything
// else is warn.
func ParseGormLevel(s string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func (l *GormZapLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *GormZapLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= logger.Info {
		l.ZapLogger.Sugar().With("source", utils.FileWithLineNum()).Infof(msg, data...)
	}
}

func (l *GormZapLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= logger.Warn {
		l.ZapLogger.Sugar().With("source", utils.FileWithLineNum()).Warnf(msg, data...)
	}
}

func (l *GormZapLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= logger.Error {
		l.ZapLogger.Sugar().With("source", utils.FileWithLineNum()).Errorf(msg, data...)
	}
}

// Trace reports a finished statement. Failures come first, then slow
// statements; the rest only show at info level, and then as debug entries.
func (l *GormZapLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.SlowQuery > 0 && elapsed > l.SlowQuery

	var (
		level = l.LogLevel
		log   func(string, ...zap.Field)
		msg   string
	)
	switch {
	case failed && level >= logger.Error:
		log, msg = l.ZapLogger.Error, "Query failed"
	case slow && level >= logger.Warn:
		log, msg = l.ZapLogger.Warn, "Slow query"
	case level >= logger.Info:
		log, msg = l.ZapLogger.Debug, "Query"
	default:
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.String("sql", sql),
		zap.String("source", utils.FileWithLineNum()),
	}
	// gorm reports -1 when the driver does not know the row count.
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows", rows))
	}
	if failed {
		fields = append(fields, zap.Error(err))
	}
	if slow {
		fields = append(fields, zap.Duration("threshold", l.SlowQuery))
	}
	log(msg, fields...)
}
