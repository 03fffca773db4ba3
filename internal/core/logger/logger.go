package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.Logger

// Init builds the global logger.
// "production" emits JSON at the given level, anything else emits colored console output.
// An unparsable level keeps the preset default.
func Init(environment string, level string) error {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if environment == "production" {
		config = zap.NewProductionConfig()
	}

	if l, err := zapcore.ParseLevel(level); err == nil {
		config.Level = zap.NewAtomicLevelAt(l)
	}

	built, err := config.Build(zap.Fields(zap.String("service", "shipping-calculator")))
	if err != nil {
		return err
	}

	globalLogger = built
	return nil
}

// Get returns the global logger instance, or a no-op logger before Init.
func Get() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

// ForStore returns a child logger tagged with the merchant store id.
func ForStore(storeID string) *zap.Logger {
	return Get().With(zap.String("store_id", storeID))
}

// Sync flushes any buffered log entries.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}
