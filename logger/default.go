package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultLogger writes human-readable leveled lines through zerolog.
type DefaultLogger struct {
	mu     sync.RWMutex
	level  LogLevel
	out    io.Writer
	prefix string
	zl     zerolog.Logger
}

// NewDefaultLogger creates a logger writing to stdout. A non-empty prefix is
// attached to every line as the component field.
func NewDefaultLogger(prefix string) *DefaultLogger {
	l := &DefaultLogger{
		level:  LogLevelInfo,
		out:    os.Stdout,
		prefix: prefix,
	}
	l.rebuild()
	return l
}

// rebuild must be called with mu held for writing (or before publication).
func (l *DefaultLogger) rebuild() {
	writer := zerolog.ConsoleWriter{
		Out:        l.out,
		TimeFormat: "15:04:05.000",
		NoColor:    !isTerminal(l.out),
		FormatLevel: func(i any) string {
			if s, ok := i.(string); ok {
				return strings.ToUpper(s)
			}
			return ""
		},
	}
	ctx := zerolog.New(writer).Level(toZerologLevel(l.level)).With().Timestamp()
	if l.prefix != "" {
		ctx = ctx.Str("component", l.prefix)
	}
	l.zl = ctx.Logger()
}

// SetLevel sets the logging level
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.zl = l.zl.Level(toZerologLevel(level))
}

// GetLevel returns the current logging level
func (l *DefaultLogger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetOutput sets the output writer
func (l *DefaultLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.rebuild()
}

func (l *DefaultLogger) event(level LogLevel) *zerolog.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level < level {
		return nil
	}
	switch level {
	case LogLevelDebug:
		return l.zl.Debug()
	case LogLevelInfo:
		return l.zl.Info()
	case LogLevelWarn:
		return l.zl.Warn()
	default:
		return l.zl.Error()
	}
}

// Debug logs a debug message
func (l *DefaultLogger) Debug(format string, args ...any) {
	if e := l.event(LogLevelDebug); e != nil {
		e.Msgf(format, args...)
	}
}

// Info logs an info message
func (l *DefaultLogger) Info(format string, args ...any) {
	if e := l.event(LogLevelInfo); e != nil {
		e.Msgf(format, args...)
	}
}

// Warn logs a warning message
func (l *DefaultLogger) Warn(format string, args ...any) {
	if e := l.event(LogLevelWarn); e != nil {
		e.Msgf(format, args...)
	}
}

// Error logs an error message
func (l *DefaultLogger) Error(format string, args ...any) {
	if e := l.event(LogLevelError); e != nil {
		e.Msgf(format, args...)
	}
}

func toZerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
