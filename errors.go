package eventq

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Queue construction and lifecycle methods.
//
// Per the core's error-handling contract, these are the only errors the
// package returns; allocation failure and unknown-id cancellation are not
// errors at all (alloc/post return a zero value, cancel is a silent no-op).
var (
	// ErrPlatformInit is returned by NewQueue when a platform primitive
	// (Clock, CriticalSection, or Waiter) failed to initialize.
	ErrPlatformInit = errors.New("eventq: platform primitive failed to initialize")

	// ErrQueueClosed is what Dispatch's open check reports for a Queue
	// whose Close method has already run; Dispatch itself then returns 0
	// without passing the error on, and no other method checks for it.
	ErrQueueClosed = errors.New("eventq: queue is closed")

	// ErrDispatchRunning is returned by Close when a dispatcher is known to
	// be currently blocked inside Dispatch on this queue; destroying a
	// queue out from under a running dispatcher is a programmer error the
	// implementation can detect and refuse rather than corrupt memory.
	ErrDispatchRunning = errors.New("eventq: dispatch is running")
)

// AllocError describes why Queue.Alloc could not satisfy a request. It
// is never returned on the hot path — Alloc returns a nil payload, id 0
// and ok == false on failure, matching equeue_alloc. AllocError exists for facade packages and
// diagnostics that want the reason, via [Queue.LastAllocError].
type AllocError struct {
	// Requested is the number of payload bytes that were requested.
	Requested int
	// Reason is a short machine-readable cause, e.g. "exhausted" or "too-large".
	Reason string
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("eventq: allocation of %d bytes failed: %s", e.Requested, e.Reason)
}

// ProgrammerError marks a violation of the core's single-owner contract —
// double free, posting a pointer this Queue did not allocate, or posting
// the same record twice. The spec treats these as undefined behavior that
// an implementation "may assert in debug builds"; ProgrammerError is what
// NewQueue(WithDebugAssertions(true)) panics with, instead of silently
// corrupting allocator or pending-list linkage.
type ProgrammerError struct {
	Op     string
	Detail string
}

func (e *ProgrammerError) Error() string {
	return fmt.Sprintf("eventq: programmer error in %s: %s", e.Op, e.Detail)
}
