package eventq

// pendingList is a singly-linked, deadline-sorted list of slot indices,
// the Go-idiomatic analogue of equeue_enqueue/equeue_dequeue's pointer
// chasing over struct equeue_event.next. Deadlines are compared with
// wraparound-aware signed subtraction, exactly equeue_tickdiff's
// "(int)(a - b)" trick, so a Clock that has wrapped past 2^32 still
// orders correctly as long as no two live deadlines are ever more than
// 2^31 ticks apart.
//
// Ties are broken FIFO: a newly inserted record with a deadline equal to
// an already-pending one is placed after every existing record sharing
// that deadline, so same-tick events fire in post order.
type pendingList struct {
	slots []slot
	head  int32 // -1 if empty
}

// tickBefore reports whether a is strictly earlier than b, mod 2^32.
func tickBefore(a, b uint32) bool {
	return int32(a-b) < 0
}

// insert splices slotIdx into the list in deadline order, FIFO among
// ties. O(n) in the number of pending events, matching the original's
// linear equeue_enqueue scan.
func (p *pendingList) insert(slotIdx int32) {
	deadline := p.slots[slotIdx].deadline
	cursor := &p.head
	for *cursor >= 0 {
		cur := *cursor
		if tickBefore(deadline, p.slots[cur].deadline) {
			break
		}
		cursor = &p.slots[cur].next
	}
	p.slots[slotIdx].next = *cursor
	*cursor = slotIdx
}

// remove detaches slotIdx from the list if present, reporting whether it
// was found. Used by Cancel to win races against dispatch.
func (p *pendingList) remove(slotIdx int32) bool {
	cursor := &p.head
	for *cursor >= 0 {
		cur := *cursor
		if cur == slotIdx {
			*cursor = p.slots[cur].next
			p.slots[cur].next = -1
			return true
		}
		cursor = &p.slots[cur].next
	}
	return false
}

// detachReady pops every record whose deadline is not after now,
// wrap-aware, and returns them as a singly-linked chain (via next) in
// firing order, leaving the remainder as the new head.
func (p *pendingList) detachReady(now uint32) int32 {
	if p.head < 0 || tickBefore(now, p.slots[p.head].deadline) {
		return -1
	}
	cur := p.head
	for p.slots[cur].next >= 0 && !tickBefore(now, p.slots[p.slots[cur].next].deadline) {
		cur = p.slots[cur].next
	}
	ready := p.head
	p.head = p.slots[cur].next
	p.slots[cur].next = -1
	return ready
}

// nextDeadline reports the deadline of the earliest pending record and
// whether the list is non-empty.
func (p *pendingList) nextDeadline() (uint32, bool) {
	if p.head < 0 {
		return 0, false
	}
	return p.slots[p.head].deadline, true
}

func (p *pendingList) empty() bool {
	return p.head < 0
}
