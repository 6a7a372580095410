package eventq

import "sync/atomic"

// fakeClock is a test double for Clock: a directly controllable tick
// counter, grounded on the teacher's SetTickAnchor/TickAnchor test
// seams that decouple timer tests from wall-clock sleeps.
type fakeClock struct {
	tick atomic.Uint32
}

func newFakeClock(start uint32) *fakeClock {
	c := &fakeClock{}
	c.tick.Store(start)
	return c
}

func (c *fakeClock) Tick() uint32 {
	return c.tick.Load()
}

func (c *fakeClock) Advance(ms uint32) {
	c.tick.Add(ms)
}

func (c *fakeClock) Set(tick uint32) {
	c.tick.Store(tick)
}

// noWaitWaiter never blocks; used alongside fakeClock so tests drive
// time purely by calling Dispatch(0) between explicit Advance calls,
// instead of waiting on a real timer for simulated milliseconds.
type noWaitWaiter struct{}

func (noWaitWaiter) Signal()   {}
func (noWaitWaiter) Wait(int)  {}
func (noWaitWaiter) Close()    {}
