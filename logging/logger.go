// Package logging implements the process-wide leveled message sink shared by
// every simulator subsystem. Emission is serialised by a mutex so concurrent
// callers never interleave lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/viant/kernsim/internal/clock"
)

const timeLayout = "2006-01-02 15:04:05"

// Logger writes "[timestamp] [LEVEL] message" lines to a single sink.
type Logger struct {
	mu  sync.Mutex
	out io.Writer
	min atomic.Int32
}

// New creates a logger writing to out; a nil out falls back to stdout.
func New(out io.Writer, min Level) *Logger {
	if out == nil {
		out = os.Stdout
	}
	l := &Logger{out: out}
	l.min.Store(int32(min))
	return l
}

var (
	defaultOnce   sync.Once
	defaultLogger *Logger
)

// Default returns the process-wide logger, lazily initialised to stdout at
// info level.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(os.Stdout, LevelInfo)
	})
	return defaultLogger
}

// SetMinLevel sets the threshold below which messages are dropped.
func (l *Logger) SetMinLevel(level Level) {
	l.min.Store(int32(level))
}

// MinLevel returns the current threshold.
func (l *Logger) MinLevel() Level {
	return Level(l.min.Load())
}

// SetOutput redirects the sink; existing in-flight lines finish first.
func (l *Logger) SetOutput(out io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = out
}

// Log emits message at the given level unless filtered out.
func (l *Logger) Log(level Level, message string) {
	if level < l.MinLevel() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] [%s] %s\n", clock.Now().Format(timeLayout), level, message)
}

// Logf formats and emits a message at the given level.
func (l *Logger) Logf(level Level, format string, args ...interface{}) {
	if level < l.MinLevel() {
		return
	}
	l.Log(level, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(message string) { l.Log(LevelDebug, message) }

func (l *Logger) Info(message string) { l.Log(LevelInfo, message) }

func (l *Logger) Warning(message string) { l.Log(LevelWarning, message) }

func (l *Logger) Error(message string) { l.Log(LevelError, message) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logf(LevelDebug, format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Logf(LevelInfo, format, args...)
}

func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Logf(LevelWarning, format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logf(LevelError, format, args...)
}
