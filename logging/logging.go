package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel accepts debug, info, warn/warning and error, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}

// Logger gates a standard library logger by level. The zero value is not
// usable; a nil *Logger discards everything.
type Logger struct {
	out   *log.Logger
	level Level
}

func New(w io.Writer, level Level) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags), level: level}
}

// Default writes to stderr like the log package.
func Default(level Level) *Logger {
	return New(os.Stderr, level)
}

// Discard returns a logger that never writes.
func Discard() *Logger {
	return New(io.Discard, LevelError+1)
}

func (l *Logger) Level() Level {
	if l == nil {
		return LevelError + 1
	}
	return l.level
}

func (l *Logger) Enabled(level Level) bool {
	return l != nil && level >= l.level
}

func (l *Logger) logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.out.Printf("["+level.String()+"] "+format, args...)
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }
