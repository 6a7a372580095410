package facade

import (
	"github.com/joeycumines/logiface"
)

// LogifaceLogger adapts a github.com/joeycumines/logiface.Logger into
// the facade Logger interface, so callers that already standardized on
// logiface (wired in turn to zerolog, logrus, slog, or any other
// logiface backend) can point a facade.Worker straight at it instead of
// configuring a second logging stack. It is generic over the backend's
// Event type so it works with any concrete logiface backend, not just
// one whose event type happens to be the bare logiface.Event interface.
type LogifaceLogger[E logiface.Event] struct {
	logger *logiface.Logger[E]
}

// NewLogifaceLogger wraps logger for use as a facade.Logger.
func NewLogifaceLogger[E logiface.Event](logger *logiface.Logger[E]) *LogifaceLogger[E] {
	return &LogifaceLogger[E]{logger: logger}
}

func (l *LogifaceLogger[E]) IsEnabled(level LogLevel) bool {
	b := l.logger.Build(logifaceLevel(level))
	enabled := b.Enabled()
	if enabled {
		b.Release()
	}
	return enabled
}

func (l *LogifaceLogger[E]) Log(entry LogEntry) {
	b := l.logger.Build(logifaceLevel(entry.Level))
	if b == nil {
		return
	}
	b = b.Str("category", entry.Category)
	if entry.EventID != 0 {
		b = b.Int64("event_id", int64(entry.EventID))
	}
	for k, v := range entry.Context {
		if s, ok := v.(string); ok {
			b = b.Str(k, s)
			continue
		}
		if n, ok := v.(int); ok {
			b = b.Int(k, n)
			continue
		}
	}
	if entry.Err != nil {
		b = b.Err(entry.Err)
	}
	b.Log(entry.Message)
}

func logifaceLevel(level LogLevel) logiface.Level {
	switch level {
	case LevelDebug:
		return logiface.LevelDebug
	case LevelInfo:
		return logiface.LevelInformational
	case LevelWarn:
		return logiface.LevelWarning
	case LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}
