// Package logging provides a logging abstraction layer that decouples the
// pipeline packages from the underlying logging framework.
package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger defines the interface for structured logging throughout the application.
// Implementations should provide structured logging with support for fields and
// error context.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging.
// Fields provide context to log messages without cluttering the message text.
type Field struct {
	Key   string
	Value interface{}
}

var (
	defaultLogger     *logrus.Logger
	defaultLoggerOnce sync.Once
)

// GetLogger returns the shared logrus instance used by packages that do not
// receive an injected Logger.
func GetLogger() *logrus.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = logrus.New()
		defaultLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	return defaultLogger
}

// SetAllLogLevels sets the level on the global logrus logger and on the shared
// default instance so loggers created before configuration pick it up.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
	GetLogger().SetLevel(level)
}
