package eventq

import "sync"

// CriticalSection is the mutual-exclusion primitive guarding queue
// metadata: free lists, the pending list, generation counters, and the
// break flag. Lock/Unlock must provide exclusion against every context
// that can post or cancel, including simulated interrupt producers; reentrant
// use is never required by this package.
//
// Go has no interrupt context of its own, so per spec.md §9 the
// requirement reduces to "thread-safe and non-blocking under contention
// the caller controls" — a plain mutex satisfies it.
type CriticalSection interface {
	Lock()
	Unlock()
}

// MutexCriticalSection is the default CriticalSection, a thin wrapper
// around sync.Mutex. It is deliberately the simplest thing that can work:
// every critical section in this package is held only across a handful of
// pointer-chasing operations (allocator bucket pop/push, pending-list
// splice), never across a callback invocation or a blocking wait.
type MutexCriticalSection struct {
	mu sync.Mutex
}

// NewMutexCriticalSection returns a ready-to-use MutexCriticalSection.
func NewMutexCriticalSection() *MutexCriticalSection {
	return &MutexCriticalSection{}
}

func (c *MutexCriticalSection) Lock()   { c.mu.Lock() }
func (c *MutexCriticalSection) Unlock() { c.mu.Unlock() }
