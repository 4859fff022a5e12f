package timewheel

import "container/list"

// scheduled is the dispatch contract the wheel requires of anything it
// schedules: execute() runs the bound callback, base() reaches the shared
// Node state for splicing and bookkeeping. It is unexported so the only
// types that can satisfy it are this package's own Event Variants
// (CallableEvent, MethodEvent) — callers never implement it directly.
type scheduled interface {
	execute()
	base() *Node
}

// Node is an Event Node: a linkable record representing one scheduled
// occurrence. It is always embedded in an Event Variant (CallableEvent,
// MethodEvent) and is never used bare.
//
// The wheel holds no ownership over a Node's storage: once a Node is
// cancelled or fired, the wheel drops its only reference to it and the Go
// garbage collector reclaims it like any other value. slot and wheel are
// back-references used solely to splice the node out in O(1); they are
// cleared, not followed, on teardown.
type Node struct {
	scheduledAt Tick
	elem        *list.Element
	slot        *wheelSlot
	wheel       *Wheel
}

func (n *Node) base() *Node { return n }

// Active reports whether the node is currently a member of a wheel slot.
func (n *Node) Active() bool {
	return n.slot != nil
}

// ScheduledAt returns the tick the node is scheduled to fire on. It is
// meaningful only while Active; during the node's own callback it equals
// the wheel's observable Now.
func (n *Node) ScheduledAt() Tick {
	return n.scheduledAt
}

// Cancel unlinks the node from its slot in O(1). It is a no-op if the node
// is not active, and it is always safe to call from within the node's own
// callback: the dispatch loop splices a node out of its slot before
// invoking execute(), so by the time a callback runs, Active() is already
// false and Cancel() is already a no-op.
func (n *Node) Cancel() {
	if n.slot == nil {
		return
	}
	n.slot.remove(n.elem)
	if n.wheel != nil {
		n.wheel.Logger.Printf("timewheel: cancel tick=%d\n", n.scheduledAt)
	}
	n.detach()
	n.scheduledAt = 0
}

// detach clears the node's wheel linkage (elem, slot, wheel) without
// touching the slot list itself; used by Cancel (slot removal happens
// first), by drain (the slot has already been emptied wholesale) and by
// dispatch. scheduledAt is left as it is, so cascade can re-place a drained
// node by its target tick and a callback can read its own tick.
func (n *Node) detach() {
	n.elem = nil
	n.slot = nil
	n.wheel = nil
}
