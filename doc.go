// Package eventq implements a flexible, interrupt-safe event queue for
// dispatching fire-once, fire-after-delay, and periodic callbacks from a
// caller-controlled loop.
//
// # Architecture
//
// A [Queue] owns a fixed backing buffer, sliced at runtime into
// power-of-two buckets by a slab allocator, a wrap-aware pending list
// sorted by millisecond deadline, and the synchronization primitives
// ([Clock], [CriticalSection], [Waiter]) that let producers post or
// cancel events from arbitrary goroutines — including simulated
// interrupt contexts — without blocking.
//
// Dispatching happens on whatever goroutine calls [Queue.Dispatch]; the
// queue itself never spawns one. The facade package
// (github.com/ARMmbed/mbed-events/facade) supplies a dedicated worker
// goroutine, argument-binding closures, and structured logging for
// callers that want those conveniences above the core.
//
// # Platform primitives
//
// [Clock], [CriticalSection], and [Waiter] are small interfaces a host
// environment supplies. The package ships portable default
// implementations built only on sync, sync/atomic, and time, so the
// core has no platform- or OS-specific dependency; [Option] values
// passed to [NewQueue] let embedders substitute their own.
package eventq
