package eventq

// slot is the per-base-unit bookkeeping record. It plays the role the
// mbed original gives a single C struct that is simultaneously the
// allocator's free-chunk header (struct equeue_chunk) and the posted
// event's metadata (struct equeue_event) — here split across named
// fields instead of a union, but a single array entry either way, so an
// event's allocator identity and its schedule identity are always the
// same slot.
//
// Fields are mutated by the allocator, Alloc, PostRaw, Cancel, Dealloc
// and Dispatch only while the owning Queue's CriticalSection is held. The exceptions are
// unlocked: SetDelay, SetPeriod and SetDtor write their fields while the
// record is single-owner between Alloc and PostRaw, the payload is
// written by that owner the same way, Dispatch reads the fields of a
// record it has already detached from the pending list, and Close resets
// the records it has detached.
type slot struct {
	// --- allocator bookkeeping ---

	level      uint8  // current bucket level (chunk size = 1<<(minLevelShift+level) bytes)
	generation uint32 // 0 == free; otherwise identifies the current occupancy
	nextFree   int32  // free-list link within this level; -1 terminates

	// --- event record fields, meaningful only while generation != 0 ---

	next     int32 // index of the next record in the pending list, -1 if none
	deadline uint32
	period   int32 // negative: one-shot; >=0: re-arm period in ms
	call     func(payload []byte)
	dtor     func(payload []byte)
	payload  []byte // slice view into the backing buffer for this slot
	pending  bool   // true once Post has spliced this slot into the pending list
}

func (s *slot) reset() {
	s.next = -1
	s.deadline = 0
	s.period = -1
	s.call = nil
	s.dtor = nil
	s.payload = nil
	s.pending = false
}
