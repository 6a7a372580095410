package facade

import (
	"bufio"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpLogger_NeverEnabled(t *testing.T) {
	var l NoOpLogger
	assert.False(t, l.IsEnabled(LevelDebug))
	assert.False(t, l.IsEnabled(LevelError))
	assert.NotPanics(t, func() { l.Log(LogEntry{Level: LevelError, Message: "ignored"}) })
}

func TestWriterLogger_FiltersByLevel(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	l := NewWriterLogger(LevelWarn, w)
	assert.False(t, l.IsEnabled(LevelDebug))
	assert.False(t, l.IsEnabled(LevelInfo))
	assert.True(t, l.IsEnabled(LevelWarn))
	assert.True(t, l.IsEnabled(LevelError))

	l.Log(LogEntry{Level: LevelInfo, Category: "post", Message: "should not appear"})
	l.Log(LogEntry{Level: LevelError, Category: "dispatch", EventID: 7, Message: "boom"})

	w.Close()
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "ERROR")
	assert.Contains(t, lines[0], "dispatch")
	assert.Contains(t, lines[0], "event=7")
	assert.Contains(t, lines[0], "boom")
}

func TestWriterLogger_IncludesContextAndError(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	l := NewWriterLogger(LevelDebug, w)
	l.Log(LogEntry{
		Level:    LevelWarn,
		Category: "alloc",
		Message:  "exhausted",
		Err:      assertErr("no space"),
		Context:  map[string]any{"requested": 64},
	})

	done := make(chan string, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		scanner.Scan()
		done <- scanner.Text()
	}()

	select {
	case line := <-done:
		assert.Contains(t, line, "requested=64")
		assert.Contains(t, line, "no space")
	case <-time.After(time.Second):
		t.Fatal("no log line written")
	}
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
