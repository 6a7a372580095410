package eventq

import "sync/atomic"

// queueState is the small CAS state machine guarding Queue lifecycle
// transitions, generalized from the teacher's FastState/LoopState pair:
// the same idea of packing lifecycle phase into a single atomic word so
// Close and Dispatch can race safely without taking the CriticalSection
// just to check liveness.
type queueState uint32

const (
	stateOpen queueState = iota
	stateDispatching
	stateClosed
)

type fastState struct {
	v atomic.Uint32
}

func (s *fastState) load() queueState {
	return queueState(s.v.Load())
}

func (s *fastState) tryTransition(from, to queueState) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}

func (s *fastState) store(to queueState) {
	s.v.Store(uint32(to))
}

func (s *fastState) isClosed() bool {
	return s.load() == stateClosed
}
