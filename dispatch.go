package eventq

// Dispatch runs the queue's dispatch loop: detach every ready event,
// invoke its callback (re-arming periodic events, freeing one-shot
// ones), then block on the Waiter until the next deadline, for up to ms
// milliseconds total. ms < 0 runs until BreakDispatch is called; ms == 0
// drains whatever is ready right now and returns without blocking,
// mirroring equeue_dispatch's three-way contract for its own ms
// argument. Dispatch returns the number of callbacks it invoked.
//
// Dispatch may be called concurrently by at most the goroutines a
// caller chooses to run it from; nested calls on the same Queue (a
// callback that itself calls Dispatch) are supported, the same way
// equeue_dispatch tolerates re-entrant calls via its queuelock.
func (q *Queue) Dispatch(ms int) int {
	if err := q.assertOpen("Dispatch"); err != nil {
		return 0
	}

	if q.dispatchDepth.Add(1) == 1 {
		q.state.store(stateDispatching)
	}
	defer func() {
		if q.dispatchDepth.Add(-1) == 0 {
			q.state.store(stateOpen)
		}
	}()

	start := q.cfg.clock.Tick()
	count := 0

	for {
		if q.breakRequested.CompareAndSwap(true, false) {
			return count
		}

		now := q.cfg.clock.Tick()
		q.cfg.critical.Lock()
		ready := q.pend.detachReady(now)
		q.cfg.critical.Unlock()

		processed := false
		for ready >= 0 {
			processed = true
			s := &q.alloc.slots[ready]
			next := s.next
			call := s.call
			payload := s.payload
			period := s.period
			dtor := s.dtor

			q.cfg.critical.Lock()
			s.pending = false
			if period >= 0 {
				s.deadline = now + uint32(period)
				s.pending = true
				q.pend.insert(ready)
			}
			q.cfg.critical.Unlock()

			if call != nil {
				q.safeExecute(call, payload)
			}

			// equeue_dispatch's order: callback first, then destructor,
			// then (for one-shot events only) release the chunk.
			if period < 0 {
				if dtor != nil {
					dtor(payload)
				}
				q.cfg.critical.Lock()
				s.reset()
				q.alloc.deallocChunk(ready)
				q.cfg.critical.Unlock()
			}

			count++
			ready = next
		}

		// Consuming the ready batch, and any periodic re-arm within it,
		// can both change the earliest pending deadline, so this is one
		// of the points Background must be renotified from.
		if processed {
			q.notifyBackground()
		}

		if ms == 0 {
			return count
		}

		q.cfg.critical.Lock()
		nextDeadline, has := q.pend.nextDeadline()
		q.cfg.critical.Unlock()

		waitMs := -1
		if has {
			diff := int32(nextDeadline - q.cfg.clock.Tick())
			if diff < 0 {
				diff = 0
			}
			waitMs = int(diff)
		}

		if ms > 0 {
			elapsed := int32(q.cfg.clock.Tick() - start)
			remaining := int32(ms) - elapsed
			if remaining <= 0 {
				return count
			}
			if waitMs < 0 || int32(waitMs) > remaining {
				waitMs = int(remaining)
			}
		}

		q.cfg.waiter.Wait(waitMs)
	}
}

// safeExecute runs a callback with its payload, recovering a panic only
// if a handler was installed via WithPanicHandler. Otherwise a panicking
// callback propagates out of Dispatch like any other Go panic — this
// package never swallows one silently.
func (q *Queue) safeExecute(call func(payload []byte), payload []byte) {
	if q.cfg.panicHandler == nil {
		call(payload)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			q.cfg.panicHandler(r)
		}
	}()
	call(payload)
}

// BreakDispatch causes the next call to Dispatch on this queue — whether
// already running or yet to start — to return. A Dispatch in the middle
// of a ready batch finishes that batch first; one that is blocked or has
// not started yet returns without running any further event, even one
// that is already due. The break is consumed by exactly one
// Dispatch call and is not sticky: a second Dispatch afterwards runs
// normally, matching equeue_break's documented one-shot contract.
func (q *Queue) BreakDispatch() {
	q.breakRequested.Store(true)
	q.cfg.waiter.Signal()
}

// Background installs a hook invoked after every change to the queue's
// earliest pending deadline — a PostRaw, a successful Cancel, or a
// Dispatch that consumes or re-arms the ready batch — receiving the
// delay in milliseconds until that deadline, or -1 if the queue is now
// empty. It lets a host integrate this queue with an external timer
// instead of a dedicated dispatching goroutine, the Go analogue of
// EventQueue::background. Passing nil removes the hook.
func (q *Queue) Background(fn func(ms int)) {
	if fn == nil {
		q.background.Store(nil)
		return
	}
	q.background.Store(&fn)
}

// notifyBackground recomputes the earliest pending deadline and invokes
// the installed Background hook with it (or -1 if the queue is empty).
// A no-op if no hook is installed.
func (q *Queue) notifyBackground() {
	hook := q.background.Load()
	if hook == nil {
		return
	}
	q.cfg.critical.Lock()
	next, has := q.pend.nextDeadline()
	q.cfg.critical.Unlock()
	if !has {
		(*hook)(-1)
		return
	}
	(*hook)(int(int32(next - q.cfg.clock.Tick())))
}

// Chain composes this queue into target's dispatch loop: whenever this
// queue's earliest deadline changes, a zero-payload trampoline event is
// posted to target that, once target dispatches it, calls this queue's
// Dispatch(0). A caller that only ever calls Dispatch on target then
// transitively drains every chained source too. When this queue becomes
// empty, the hook runs with ms == -1, which PostRaw turns into an
// immediate dealloc rather than a scheduled trampoline — no wakeup is
// pending until something is posted to this queue again. Chain(nil)
// unchains, the Go analogue of EventQueue::chain(NULL).
func (q *Queue) Chain(target *Queue) {
	if target == nil {
		q.Background(nil)
		return
	}
	q.Background(func(ms int) {
		_, id, ok := target.Alloc(0)
		if !ok {
			return
		}
		target.SetDelay(id, ms)
		target.PostRaw(id, func([]byte) {
			q.Dispatch(0)
		})
	})
}
