package logger

import (
	"os"
	"strings"
	"sync"
)

var (
	globalMu sync.RWMutex

	// Global logger instance
	globalLogger *Logger

	// globalCaller reports the caller of the package-level functions
	globalCaller *Logger
)

func init() {
	configureFromEnv()
}

// configureFromEnv configures the global logger from LOG_LEVEL and LOG_FORMAT
func configureFromEnv() {
	cfg := Config{Level: INFO, Format: TextFormat}
	if level := ParseLevel(os.Getenv("LOG_LEVEL")); level != -1 {
		cfg.Level = level
	}
	if format := ParseFormat(os.Getenv("LOG_FORMAT")); format != -1 {
		cfg.Format = format
	}
	SetGlobalLogger(New(cfg))
}

// ParseLevel parses a log level string, returning -1 when it is not recognised
func ParseLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
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

// ParseFormat parses a log format string, returning -1 when it is not recognised
func ParseFormat(format string) LogFormat {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat
	case "text", "console":
		return TextFormat
	default:
		return -1
	}
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	caller := logger.withCallerSkip(1)

	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
	globalCaller = caller
}

func global() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalCaller
}

// Debug logs a debug message using the global logger
func Debug(message string, fields ...map[string]interface{}) {
	global().Debug(message, fields...)
}

// Info logs an info message using the global logger
func Info(message string, fields ...map[string]interface{}) {
	global().Info(message, fields...)
}
