package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rig-tools/cli/internal/domain"
)

// Level is the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a case-insensitive level name to a Level.
// Unrecognized names fall back to LevelWarn.
func ParseLevel(s string) Level {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i)
		}
	}
	return LevelWarn
}

// Logger writes timestamped, leveled lines to a single file. All methods
// are safe for concurrent use and tolerate a nil receiver.
type Logger struct {
	mu       sync.Mutex
	out      io.WriteCloser
	minLevel Level
	enabled  bool
}

// New opens the log file at path, creating it and its directory if
// missing, and returns a logger that appends to it. The file and its
// directory stay private to the owning user.
func New(path string, minLevel Level) (*Logger, error) {
	out, err := openLogFile(path)
	if err != nil {
		return nil, err
	}
	return &Logger{out: out, minLevel: minLevel, enabled: true}, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if info, err := os.Stat(path); err == nil && info.Mode().Perm() != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return nil, fmt.Errorf("chmod existing log file: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

// Close closes the underlying file. Further messages are dropped.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil {
		return nil
	}
	err := l.out.Close()
	l.out = nil
	return err
}

// SetEnabled turns logging on or off.
func (l *Logger) SetEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *Logger) emit(level Level, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel || l.out == nil {
		return
	}

	message := fmt.Sprintf(format, args...)
	stamp := time.Now().Format("2006-01-02 15:04:05")
	if _, err := fmt.Fprintf(l.out, "[%s] %s: %s\n", stamp, level, message); err != nil {
		// The file is gone or full. Only errors are worth relaying.
		if level >= LevelError {
			fmt.Fprintf(os.Stderr, "logger: write failed: %v (message: %s)\n", err, message)
		}
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) { l.emit(LevelDebug, format, args...) }

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) { l.emit(LevelInfo, format, args...) }

// Warn logs a warning.
func (l *Logger) Warn(format string, args ...any) { l.emit(LevelWarn, format, args...) }

// Error logs an error.
func (l *Logger) Error(format string, args ...any) { l.emit(LevelError, format, args...) }

// Writer returns an io.Writer that logs every write at the given level.
func (l *Logger) Writer(level Level) io.Writer {
	return &logWriter{logger: l, level: level}
}

type logWriter struct {
	logger *Logger
	level  Level
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.logger.emit(w.level, "%s", string(p))
	return len(p), nil
}

var global atomic.Pointer[Logger]

// Init installs the process-wide logger. The first successful call wins;
// later calls are no-ops.
func Init(path string, minLevel Level) error {
	if global.Load() != nil {
		return nil
	}
	logger, err := New(path, minLevel)
	if err != nil {
		return err
	}
	if !global.CompareAndSwap(nil, logger) {
		return logger.Close()
	}
	return nil
}

// GetLogger returns the process-wide logger, or nil before Init.
func GetLogger() *Logger { return global.Load() }

// Debug logs a debug message to the process-wide logger.
func Debug(format string, args ...any) { global.Load().emit(LevelDebug, format, args...) }

// Info logs an informational message to the process-wide logger.
func Info(format string, args ...any) { global.Load().emit(LevelInfo, format, args...) }

// Warn logs a warning to the process-wide logger.
func Warn(format string, args ...any) { global.Load().emit(LevelWarn, format, args...) }

// Error logs an error to the process-wide logger.
func Error(format string, args ...any) { global.Load().emit(LevelError, format, args...) }

// Close closes the process-wide logger.
func Close() error { return global.Load().Close() }

// NopLogger discards all messages.
type NopLogger struct{}

func (NopLogger) Debug(_ string, _ ...any) {}
func (NopLogger) Info(_ string, _ ...any)  {}
func (NopLogger) Warn(_ string, _ ...any)  {}
func (NopLogger) Error(_ string, _ ...any) {}
func (NopLogger) Close() error             { return nil }

var (
	_ domain.Logger = (*Logger)(nil)
	_ domain.Logger = NopLogger{}
)
