// Package facade wraps the core eventq.Queue with the conveniences the
// bare scheduler deliberately leaves out: a dedicated dispatch
// goroutine, argument-binding call helpers, and structured logging.
// eventq itself never imports a logging package, so every log line a
// facade.Worker produces is opt-in and lives entirely in this package.
package facade

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// LogLevel mirrors the severities the teacher's own event-loop logging
// package defines, trimmed to what an embedded scheduler actually emits.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// LogEntry is one structured log record, grounded directly on the
// teacher's LogEntry type, with the JS-specific TaskID/LoopID fields
// replaced by fields meaningful to a posted-event scheduler.
type LogEntry struct {
	Level     LogLevel
	Category  string // "post", "dispatch", "cancel", "alloc", "worker"
	EventID   uint64
	Message   string
	Err       error
	Context   map[string]any
	Timestamp time.Time
}

// Logger is the structured logging interface a facade.Worker writes to.
type Logger interface {
	Log(entry LogEntry)
	IsEnabled(level LogLevel) bool
}

// NoOpLogger discards everything; it is the default when no Logger is
// configured.
type NoOpLogger struct{}

func (NoOpLogger) Log(LogEntry)          {}
func (NoOpLogger) IsEnabled(LogLevel) bool { return false }

// WriterLogger writes plain-text log lines to an *os.File (a terminal,
// a pipe or a regular file), suitable for CLI programs and tests.
type WriterLogger struct {
	level atomic.Int32
	mu    sync.Mutex
	out   *os.File
}

// NewWriterLogger returns a WriterLogger writing to out at or above level.
func NewWriterLogger(level LogLevel, out *os.File) *WriterLogger {
	l := &WriterLogger{out: out}
	l.level.Store(int32(level))
	return l
}

func (l *WriterLogger) IsEnabled(level LogLevel) bool {
	return int32(level) >= l.level.Load()
}

func (l *WriterLogger) Log(entry LogEntry) {
	if !l.IsEnabled(entry.Level) {
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] %s [%-8s]", entry.Level, entry.Timestamp.Format("15:04:05.000"), entry.Category)
	if entry.EventID != 0 {
		fmt.Fprintf(l.out, " event=%d", entry.EventID)
	}
	for k, v := range entry.Context {
		fmt.Fprintf(l.out, " %s=%v", k, v)
	}
	fmt.Fprintf(l.out, " %s", entry.Message)
	if entry.Err != nil {
		fmt.Fprintf(l.out, ": %v", entry.Err)
	}
	fmt.Fprintln(l.out)
}
