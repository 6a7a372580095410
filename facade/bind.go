package facade

import (
	eventq "github.com/ARMmbed/mbed-events"
)

// Call posts fn for immediate dispatch, the Go generic equivalent of
// equeue_call: no delay, no period, fire once. The argument is captured
// by closure rather than packed into the queue's raw byte buffer —
// idiomatic Go favors a captured closure over equeue_call's void* data
// pointer, at the cost of one extra heap allocation per post that the
// C original avoids.
func Call[T any](q *eventq.Queue, arg T, fn func(T)) (eventq.EventID, bool) {
	return CallIn(q, 0, arg, fn)
}

// CallIn posts fn to run once, ms milliseconds from now, the Go
// equivalent of equeue_call_in.
func CallIn[T any](q *eventq.Queue, ms int, arg T, fn func(T)) (eventq.EventID, bool) {
	_, id, ok := q.Alloc(0)
	if !ok {
		return 0, false
	}
	q.SetDelay(id, ms)
	ok = q.PostRaw(id, func([]byte) { fn(arg) })
	return id, ok
}

// CallEvery posts fn to run every ms milliseconds, starting ms from now,
// the Go equivalent of equeue_call_every.
func CallEvery[T any](q *eventq.Queue, ms int, arg T, fn func(T)) (eventq.EventID, bool) {
	_, id, ok := q.Alloc(0)
	if !ok {
		return 0, false
	}
	q.SetDelay(id, ms)
	q.SetPeriod(id, ms)
	ok = q.PostRaw(id, func([]byte) { fn(arg) })
	return id, ok
}
