// Package log is the leveled console logger used by every pass.
//
// Calls are printf-style. Output goes through a zap console core that prints
// a prefix and level label, and no timestamps or callers.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the severity of a log message
type Level int

const (
	// LevelDebug is for verbose debugging information
	LevelDebug Level = iota
	// LevelInfo is for important operational events
	LevelInfo
	// LevelWarn is for warnings that don't prevent operation
	LevelWarn
	// LevelError is for errors that may affect functionality
	LevelError
)

const name = "CSSC"

var (
	mu       sync.Mutex
	minLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger   = build(os.Stderr)
)

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l Level) String() string {
	return strings.ToLower(l.zap().String())
}

// ParseLevel reads a level name: debug, info, warn or error
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func build(w io.Writer) *zap.SugaredLogger {
	if w == nil {
		return zap.NewNop().Sugar()
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = zapcore.OmitKey
	ec.CallerKey = zapcore.OmitKey
	ec.StacktraceKey = zapcore.OmitKey
	ec.ConsoleSeparator = " "
	ec.EncodeName = func(n string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + n + "]")
	}
	ec.EncodeLevel = func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(l.CapitalString() + ":")
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.AddSync(w), minLevel)
	return zap.New(core).Named(name).Sugar()
}

// SetOutput sets the output destination (primarily for testing).
// A nil writer discards everything.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = build(w)
}

// SetLevel sets the minimum log level to display
func SetLevel(level Level) {
	minLevel.SetLevel(level.zap())
}

// GetLevel returns the current minimum log level
func GetLevel() Level {
	switch minLevel.Level() {
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.WarnLevel:
		return LevelWarn
	case zapcore.InfoLevel:
		return LevelInfo
	default:
		return LevelError
	}
}

// Enabled reports whether messages at level would be printed
func Enabled(level Level) bool {
	return minLevel.Enabled(level.zap())
}

// Debug logs a debug message (verbose debugging information)
func Debug(format string, args ...any) {
	current().Debugf(format, args...)
}

// Info logs an info message (important operational events)
func Info(format string, args ...any) {
	current().Infof(format, args...)
}

// Warn logs a warning message (warnings that don't prevent operation)
func Warn(format string, args ...any) {
	current().Warnf(format, args...)
}

// Error logs an error message (errors that may affect functionality)
func Error(format string, args ...any) {
	current().Errorf(format, args...)
}

// Sync flushes buffered output
func Sync() {
	_ = current().Sync()
}

func current() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}
