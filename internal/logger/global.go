package logger

import (
	"os"
	"strings"
)

var (
	// Global logger instance
	globalLogger *Logger
)

func init() {
	globalLogger = NewDefault()
	configureFromEnv()
}

// configureFromEnv configures the global logger from environment variables
func configureFromEnv() {
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level := ParseLogLevel(levelStr); level != -1 {
			globalLogger.SetLevel(level)
		}
	}

	if formatStr := os.Getenv("LOG_FORMAT"); formatStr != "" {
		if format := ParseLogFormat(formatStr); format != -1 {
			globalLogger.SetFormat(format)
		}
	}
}

// ParseLogLevel parses a log level string, returning -1 if unrecognized
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return -1
	}
}

// ParseLogFormat parses a log format string, returning -1 if unrecognized
func ParseLogFormat(format string) LogFormat {
	switch strings.ToLower(format) {
	case "json":
		return JSONFormat
	case "text":
		return TextFormat
	default:
		return -1
	}
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	return globalLogger
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalLogger = logger
}

// WithComponent returns a component-tagged logger derived from the global logger
func WithComponent(component string) *Logger {
	return globalLogger.WithComponent(component)
}

// Debug logs a debug message using the global logger
func Debug(message string) {
	globalLogger.Debug(message)
}

// Debugf logs a formatted debug message using the global logger
func Debugf(format string, args ...interface{}) {
	globalLogger.Debugf(format, args...)
}

// Info logs an info message using the global logger
func Info(message string) {
	globalLogger.Info(message)
}

// Infof logs a formatted info message using the global logger
func Infof(format string, args ...interface{}) {
	globalLogger.Infof(format, args...)
}

// Warn logs a warning message using the global logger
func Warn(message string) {
	globalLogger.Warn(message)
}

// Warnf logs a formatted warning message using the global logger
func Warnf(format string, args ...interface{}) {
	globalLogger.Warnf(format, args...)
}

// Error logs an error message using the global logger
func Error(message string, err error) {
	globalLogger.Error(message, err)
}

// Errorf logs a formatted error message using the global logger
func Errorf(format string, args ...interface{}) {
	globalLogger.Errorf(format, args...)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error) {
	globalLogger.Fatal(message, err)
}

// Fatalf logs a formatted fatal message using the global logger and exits
func Fatalf(format string, args ...interface{}) {
	globalLogger.Fatalf(format, args...)
}
