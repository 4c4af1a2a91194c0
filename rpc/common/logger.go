// Package common provides logging utilities for the application
package common

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

var (
	// logLevel is shared by all named loggers so InitLoggers can adjust
	// verbosity globally
	logLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	rootLog  = newRootLogger()
)

// newRootLogger builds the shared zap core with console formatting
func newRootLogger() *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stdout),
		logLevel,
	)
	return zap.New(core)
}

// GetLogger returns a named logger sharing the global level and format.
// Every package obtains its logger through this factory.
func GetLogger(pkgName string) *zap.SugaredLogger {
	return rootLog.Named(pkgName).Sugar()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// parseLogLevel converts a string level to a zap level
func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warning", "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		panic(fmt.Sprintf("invalid log level: %s. must be one of debug, info, warn, error", level))
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// InitLoggers sets the global log level from the client configuration
func InitLoggers(config ClientConfig) {
	logLevel.SetLevel(parseLogLevel(config.LogLevel))
}
