package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/payment-simulator/internal/domain/ports"
)

// ZapLogger adapts a zap.Logger to the ports.Logger interface
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps an existing zap logger
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

// NewDevelopment builds a development-mode logger at the given level
func NewDevelopment(level string) (*ZapLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	if err := applyLevel(&cfg, level); err != nil {
		return nil, err
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{logger: logger}, nil
}

// NewProduction builds a production JSON logger at the given level
func NewProduction(level string) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	if err := applyLevel(&cfg, level); err != nil {
		return nil, err
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{logger: logger}, nil
}

func applyLevel(cfg *zap.Config, level string) error {
	if level == "" {
		return nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return nil
}

// Sync flushes buffered log entries
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

func (l *ZapLogger) Info(msg string, fields ...ports.Field) {
	l.logger.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, fields ...ports.Field) {
	l.logger.Error(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields ...ports.Field) {
	l.logger.Warn(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Debug(msg string, fields ...ports.Field) {
	l.logger.Debug(msg, toZapFields(fields)...)
}

func toZapFields(fields []ports.Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			zapFields = append(zapFields, zap.String(f.Key, v))
		case int:
			zapFields = append(zapFields, zap.Int(f.Key, v))
		case bool:
			zapFields = append(zapFields, zap.Bool(f.Key, v))
		case error:
			zapFields = append(zapFields, zap.NamedError(f.Key, v))
		default:
			zapFields = append(zapFields, zap.Any(f.Key, v))
		}
	}
	return zapFields
}
