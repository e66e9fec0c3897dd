package logger

import "sync"

var (
	globalLogger Logger = NewNullLogger()
	globalMu     sync.RWMutex
)

// SetGlobalLogger replaces the process-wide logger. Passing nil installs a
// null logger.
func SetGlobalLogger(logger Logger) {
	if logger == nil {
		logger = NewNullLogger()
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the process-wide logger
func GetGlobalLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

func Debug(format string, args ...any) {
	GetGlobalLogger().Debug(format, args...)
}

func Info(format string, args ...any) {
	GetGlobalLogger().Info(format, args...)
}

func Warn(format string, args ...any) {
	GetGlobalLogger().Warn(format, args...)
}

func Error(format string, args ...any) {
	GetGlobalLogger().Error(format, args...)
}

// Deprecated emits a deprecation notice on l at warn level.
func Deprecated(l Logger, format string, args ...any) {
	if l == nil {
		l = GetGlobalLogger()
	}
	l.Warn("DEPRECATION: "+format, args...)
}
