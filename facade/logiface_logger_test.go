package facade

import (
	"fmt"
	"strings"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEvent and recordingWriter are a minimal logiface.Event/Writer
// pair, grounded on the mockSimpleEvent/mockSimpleWriter pattern the
// logiface module itself uses to test against, so LogifaceLogger can be
// exercised against the real logiface package without depending on any
// particular third-party backend.
type recordingEvent struct {
	logiface.UnimplementedEvent
	level  logiface.Level
	fields []string
	msg    string
}

func (e *recordingEvent) Level() logiface.Level { return e.level }

func (e *recordingEvent) AddField(key string, val any) {
	e.fields = append(e.fields, fmt.Sprintf("%s=%v", key, val))
}

func (e *recordingEvent) AddMessage(msg string) bool {
	e.msg = msg
	return true
}

func (e *recordingEvent) AddError(err error) bool {
	e.fields = append(e.fields, fmt.Sprintf("err=%v", err))
	return true
}

type recordingWriter struct {
	lines []string
}

func (w *recordingWriter) Write(event *recordingEvent) error {
	line := event.msg
	if len(event.fields) > 0 {
		line += " " + strings.Join(event.fields, " ")
	}
	w.lines = append(w.lines, line)
	return nil
}

func newRecordingBackend(level logiface.Level) (*logiface.Logger[*recordingEvent], *recordingWriter) {
	w := &recordingWriter{}
	logger := logiface.New[*recordingEvent](
		logiface.WithEventFactory[*recordingEvent](logiface.NewEventFactoryFunc(func(lvl logiface.Level) *recordingEvent {
			return &recordingEvent{level: lvl}
		})),
		logiface.WithWriter[*recordingEvent](w),
		logiface.WithLevel[*recordingEvent](level),
	)
	return logger, w
}

func TestLogifaceLogger_IsEnabledRespectsBackendLevel(t *testing.T) {
	logger, _ := newRecordingBackend(logiface.LevelWarning)
	l := NewLogifaceLogger(logger)

	assert.False(t, l.IsEnabled(LevelDebug))
	assert.False(t, l.IsEnabled(LevelInfo))
	assert.True(t, l.IsEnabled(LevelWarn))
	assert.True(t, l.IsEnabled(LevelError))
}

func TestLogifaceLogger_LogWritesThroughToBackend(t *testing.T) {
	logger, w := newRecordingBackend(logiface.LevelTrace)
	l := NewLogifaceLogger(logger)

	l.Log(LogEntry{
		Level:    LevelError,
		Category: "dispatch",
		EventID:  9,
		Message:  "callback panicked",
		Context:  map[string]any{"attempt": 2},
	})

	require.Len(t, w.lines, 1)
	line := w.lines[0]
	assert.Contains(t, line, "callback panicked")
	assert.Contains(t, line, "category=dispatch")
	assert.Contains(t, line, "event_id=9")
	assert.Contains(t, line, "attempt=2")
}

func TestLogifaceLogger_DisabledLevelWritesNothing(t *testing.T) {
	logger, w := newRecordingBackend(logiface.LevelError)
	l := NewLogifaceLogger(logger)

	l.Log(LogEntry{Level: LevelDebug, Category: "post", Message: "should be dropped"})

	assert.Empty(t, w.lines)
}
