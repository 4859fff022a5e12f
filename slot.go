package timewheel

import (
	"container/list"

	"github.com/eapache/queue"
)

// wheelSlot is a Slot List: an intrusive doubly linked bucket of scheduled
// events hanging off one index of one wheel level. It is built on
// container/list, the same choice the teacher's own slots make — the
// "intrusive" cost saving the spec calls for is the list.Element back
// reference each Node keeps (see node.go), not a hand-rolled link field.
type wheelSlot struct {
	list.List
}

func newWheelSlot() *wheelSlot {
	s := &wheelSlot{}
	s.Init()
	return s
}

// insert pushes v to the front of the slot and wires up its back
// references so Cancel and drain can find it again in O(1).
func (s *wheelSlot) insert(v scheduled, w *Wheel) {
	n := v.base()
	n.elem = s.PushFront(v)
	n.slot = s
	n.wheel = w
}

// remove splices a single element out of the slot. Cancel is the only
// caller; drain empties the whole slot instead and never needs this.
func (s *wheelSlot) remove(e *list.Element) {
	s.List.Remove(e)
}

// drain empties the slot into a temporary queue and detaches every node's
// back-references as it goes. It is used by cascade, which always fully
// reinserts every drained node (via place) before returning control to any
// caller, so the brief window where these nodes report Active() == false is
// never observable outside this package.
func (s *wheelSlot) drain() *queue.Queue {
	q := queue.New()
	for e := s.Front(); e != nil; {
		next := e.Next()
		v := e.Value.(scheduled)
		s.List.Remove(e)
		v.base().detach()
		q.Add(v)
		e = next
	}
	return q
}

// drainInto moves every event out of s and into dest, rewiring each node's
// back-references to point at dest instead of detaching them. Unlike drain,
// a node moved this way stays Active() the whole time: Cancel still finds
// it (now via dest) and a reentrant Schedule still splices it out cleanly.
// This is what tick uses to pull a tick's due events out of the live slot
// without exposing a half-drained list to a reentrant callback. If
// dispatch's budget runs out before it reaches everything in dest, the
// leftovers it didn't get to are still genuinely scheduled, not silently
// detached, when AdvanceBounded returns control to the caller.
func (s *wheelSlot) drainInto(dest *wheelSlot, w *Wheel) {
	for e := s.Front(); e != nil; {
		next := e.Next()
		v := e.Value.(scheduled)
		s.List.Remove(e)
		dest.insert(v, w)
		e = next
	}
}
