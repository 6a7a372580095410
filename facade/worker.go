package facade

import (
	"context"
	"sync"
	"sync/atomic"

	eventq "github.com/ARMmbed/mbed-events"
)

// Worker owns a dedicated goroutine that runs a Queue's Dispatch loop
// until Shutdown or ctx cancellation, the out-of-core "thread wrapper"
// collaborator the core package documents but deliberately does not
// provide itself. Grounded on the teacher's Loop.Run/Shutdown/
// shutdownImpl triad: a sync.Once guarding shutdown, and a done channel
// closed when the dispatch goroutine actually exits, so Shutdown blocks
// on a channel rather than polling.
type Worker struct {
	queue  *eventq.Queue
	logger Logger

	mu       sync.Mutex
	started  bool
	done     chan struct{}
	stopOnce sync.Once
	stopping atomic.Bool
}

// NewWorker returns a Worker around queue. logger may be nil, in which
// case a NoOpLogger is used.
func NewWorker(queue *eventq.Queue, logger Logger) *Worker {
	if logger == nil {
		logger = NoOpLogger{}
	}
	return &Worker{queue: queue, logger: logger, done: make(chan struct{})}
}

// Run starts the dispatch loop and blocks until ctx is canceled or
// Shutdown is called. It must not be called more than once; use
// `go worker.Run(ctx)` to run it in the background.
func (w *Worker) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return eventq.ErrDispatchRunning
	}
	w.started = true
	w.mu.Unlock()

	defer close(w.done)

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			w.queue.BreakDispatch()
		case <-stop:
		}
	}()
	defer close(stop)

	w.logger.Log(LogEntry{Level: LevelInfo, Category: "worker", Message: "dispatch loop starting"})
	for ctx.Err() == nil && !w.stopping.Load() {
		w.queue.Dispatch(-1)
	}
	w.logger.Log(LogEntry{Level: LevelInfo, Category: "worker", Message: "dispatch loop stopped"})
	return ctx.Err()
}

// Shutdown requests the dispatch loop stop and blocks until it does, or
// ctx expires first. Safe to call more than once and from any goroutine.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.stopOnce.Do(func() {
		w.stopping.Store(true)
		w.queue.BreakDispatch()
	})
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
