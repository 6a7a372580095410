package eventq

import "sync/atomic"

// Queue is a fixed-memory, non-blocking-post event scheduler: callbacks
// are allocated and posted from any goroutine, including one standing in
// for an interrupt handler, and fire only when some goroutine calls
// Dispatch. It is the Go realization of struct equeue from the mbed
// equeue library, generalized per the accompanying specification.
//
// The zero value is not usable; construct with NewQueue.
type Queue struct {
	cfg   queueConfig
	alloc *allocator
	pend  pendingList
	state fastState

	breakRequested atomic.Bool
	dispatchDepth  atomic.Int32 // number of Dispatch calls in flight, counting nested ones

	lastAllocErr atomic.Pointer[AllocError]

	background atomic.Pointer[func(ms int)] // set via Background; nil means no external timer hook
}

// NewQueue constructs a Queue with a single fixed backing buffer sized
// per WithBufferSize (default 4KiB). No option allocates past
// construction; the returned Queue never grows or shrinks its buffer.
func NewQueue(opts ...Option) (*Queue, error) {
	cfg := resolveOptions(opts)
	if cfg.clock == nil || cfg.critical == nil || cfg.waiter == nil {
		return nil, ErrPlatformInit
	}

	q := &Queue{
		cfg:   cfg,
		alloc: newAllocator(make([]byte, cfg.bufferSize), cfg.minAllocShift),
	}
	q.pend.slots = q.alloc.slots
	q.pend.head = -1
	return q, nil
}

func (q *Queue) assertOpen(op string) error {
	if q.state.isClosed() {
		if q.cfg.debugAssert {
			panic(&ProgrammerError{Op: op, Detail: "queue is closed"})
		}
		return ErrQueueClosed
	}
	return nil
}

// Close tears the queue down: every currently posted record has its
// destructor (if any) invoked, then the queue is marked closed. Close
// refuses to run while a Dispatch call is in flight on this queue,
// matching the mbed original's documented equeue_destroy precondition
// that no dispatch loop may be running.
func (q *Queue) Close() error {
	if q.state.load() == stateDispatching {
		return ErrDispatchRunning
	}
	if !q.state.tryTransition(stateOpen, stateClosed) {
		return nil // already closed
	}

	q.cfg.critical.Lock()
	cur := q.pend.head
	q.pend.head = -1
	q.cfg.critical.Unlock()

	for cur >= 0 {
		s := &q.alloc.slots[cur]
		next := s.next
		if s.dtor != nil {
			s.dtor(s.payload)
		}
		s.generation = 0
		s.reset()
		cur = next
	}

	q.cfg.waiter.Close()
	return nil
}

// Alloc reserves a chunk of at least size payload bytes and returns a
// handle to it plus the slice to populate before posting. The event is
// not yet scheduled; call PostRaw to arm it, or Dealloc to abandon it.
//
// Alloc never blocks. On exhaustion it returns ok == false and records
// the reason, retrievable via LastAllocError.
func (q *Queue) Alloc(size int) (payload []byte, id EventID, ok bool) {
	level, fits := q.alloc.levelFor(size)
	if !fits {
		q.lastAllocErr.Store(&AllocError{Requested: size, Reason: "too-large"})
		return nil, 0, false
	}

	q.cfg.critical.Lock()
	slotIdx, got := q.alloc.allocChunk(level)
	if !got {
		q.cfg.critical.Unlock()
		q.lastAllocErr.Store(&AllocError{Requested: size, Reason: "exhausted"})
		return nil, 0, false
	}
	s := &q.alloc.slots[slotIdx]
	s.reset()
	s.generation = nextGeneration(s.generation)
	s.payload = q.alloc.payload(slotIdx, level)
	gen := s.generation
	q.cfg.critical.Unlock()

	return s.payload, q.alloc.encodeID(slotIdx, gen), true
}

// LastAllocError returns the reason the most recent failed Alloc could
// not be satisfied, or nil if none has failed yet.
func (q *Queue) LastAllocError() *AllocError {
	return q.lastAllocErr.Load()
}

// Dealloc releases a handle returned by Alloc without posting it. Valid
// only before PostRaw; canceling a posted event uses Cancel instead.
func (q *Queue) Dealloc(id EventID) {
	slotIdx, gen := q.alloc.decodeID(id)
	q.cfg.critical.Lock()
	defer q.cfg.critical.Unlock()
	s := &q.alloc.slots[slotIdx]
	if s.generation != gen || s.pending {
		if q.cfg.debugAssert {
			panic(&ProgrammerError{Op: "Dealloc", Detail: "stale or posted id"})
		}
		return
	}
	s.reset()
	q.alloc.deallocChunk(slotIdx)
}

// SetDelay arms the one-shot or initial delay, in milliseconds from the
// moment PostRaw runs, for a handle returned by Alloc. Must be called
// before PostRaw.
func (q *Queue) SetDelay(id EventID, ms int) {
	slotIdx, gen := q.alloc.decodeID(id)
	s := &q.alloc.slots[slotIdx]
	if s.generation != gen {
		return
	}
	s.deadline = uint32(ms) // interpreted relative to post time in PostRaw
}

// SetPeriod arms periodic re-firing every ms milliseconds after the
// first fire. A negative value (the default) marks the event one-shot.
func (q *Queue) SetPeriod(id EventID, ms int) {
	slotIdx, gen := q.alloc.decodeID(id)
	s := &q.alloc.slots[slotIdx]
	if s.generation != gen {
		return
	}
	s.period = int32(ms)
}

// SetDtor registers a destructor invoked exactly once: either after the
// event's final (or canceled) dispatch, or by Close for events still
// pending at teardown. Never invoked for an event deallocated before
// posting.
func (q *Queue) SetDtor(id EventID, dtor func(payload []byte)) {
	slotIdx, gen := q.alloc.decodeID(id)
	s := &q.alloc.slots[slotIdx]
	if s.generation != gen {
		return
	}
	s.dtor = dtor
}

// PostRaw arms the handle's callback and splices it into the pending
// list at delay-relative-to-now ticks, per the delay set with SetDelay
// (0 if unset). It is the non-blocking entry point every public post
// helper ultimately funnels through, mirroring equeue_post's role atop
// equeue_enqueue in the mbed original.
//
// A negative configured delay deallocates the record immediately
// instead of ever dispatching it: its destructor (if any) runs
// synchronously and the callback passed here is never invoked. This
// mirrors equeue_post_in's own ms < 0 branch in the mbed original.
//
// PostRaw reports false if id is stale (already fired, canceled, or
// never allocated by this Queue).
func (q *Queue) PostRaw(id EventID, call func(payload []byte)) bool {
	slotIdx, gen := q.alloc.decodeID(id)

	q.cfg.critical.Lock()
	s := &q.alloc.slots[slotIdx]
	if s.generation != gen || s.pending {
		q.cfg.critical.Unlock()
		if q.cfg.debugAssert {
			panic(&ProgrammerError{Op: "PostRaw", Detail: "stale or already-posted id"})
		}
		return false
	}
	delay := int32(s.deadline)

	if delay < 0 {
		dtor := s.dtor
		payload := s.payload
		s.reset()
		q.alloc.deallocChunk(slotIdx)
		q.cfg.critical.Unlock()
		if dtor != nil {
			dtor(payload)
		}
		return true
	}

	s.call = call
	s.deadline = q.cfg.clock.Tick() + uint32(delay)
	s.pending = true
	q.pend.insert(slotIdx)
	q.cfg.critical.Unlock()

	q.cfg.waiter.Signal()
	q.notifyBackground()
	return true
}

// Cancel removes a posted event before it fires, reporting whether it
// was found still pending. Calling Cancel after the event has already
// fired (or with a stale or unknown id) is always safe and returns
// false: a reused slot's generation will not match, so Cancel can never
// cancel the wrong occupant of a recycled chunk.
func (q *Queue) Cancel(id EventID) bool {
	slotIdx, gen := q.alloc.decodeID(id)

	q.cfg.critical.Lock()
	s := &q.alloc.slots[slotIdx]
	if s.generation != gen || !s.pending {
		q.cfg.critical.Unlock()
		return false
	}
	found := q.pend.remove(slotIdx)
	if found {
		dtor := s.dtor
		payload := s.payload
		s.reset()
		q.alloc.deallocChunk(slotIdx)
		q.cfg.critical.Unlock()
		// Removing any pending record can change the earliest deadline,
		// including down to none at all.
		q.notifyBackground()
		if dtor != nil {
			dtor(payload)
		}
		return true
	}
	q.cfg.critical.Unlock()
	return false
}

// Tick returns the queue's clock reading at the moment of the call, for
// callers composing their own scheduling logic around the queue.
func (q *Queue) Tick() uint32 {
	return q.cfg.clock.Tick()
}
