package timewheel

// Wheel is the Hierarchical Wheel: a stack of Wheel Levels, the monotonic
// tick counter, and the scheduling/advancing/range-scheduling operations
// that drive them. It is not safe for concurrent use; every operation
// assumes exclusive access by one actor (spec.md §5).
type Wheel struct {
	Options

	levels []*level
	now    Tick

	// ticksPending and pending together capture the partial-advance resume
	// state from spec.md §4.4: if a bounded AdvanceBounded call runs out of
	// budget mid-slot, ticksPending records how many ticks of the request
	// are still outstanding (including the one whose slot isn't fully
	// drained yet), and pending holds whatever that slot's drainInto left
	// undispatched. Nodes sitting in pending are still genuinely Active —
	// their back-references point at this slot, not at nil — so a caller
	// that schedules or cancels one between two AdvanceBounded calls gets
	// the real cancel-then-schedule behavior instead of racing a detached
	// copy of the node still waiting to fire.
	ticksPending Tick
	pending      *wheelSlot

	advancing bool
}

// New constructs a Wheel ready to schedule and advance.
func New(opts ...Option) *Wheel {
	w := &Wheel{Options: NewOptions(opts...)}
	w.now = w.StartTick
	w.levels = make([]*level, w.Levels)
	for i := range w.levels {
		w.levels[i] = newLevel(w.Width)
		w.levels[i].index = slotIndex(w.now, i, w.Width)
	}
	return w
}

// Now returns the current tick. During a callback it equals the tick that
// callback's event was scheduled for, since dispatch happens mid-Advance
// before now has moved any further.
func (w *Wheel) Now() Tick {
	return w.now
}

// Schedule places e so it fires at Now()+delta. If e is already active it
// is cancelled first — schedule-while-active behaves as cancel-then-
// schedule, never leaving an event in two slots at once.
func (w *Wheel) Schedule(e scheduled, delta Tick) {
	if delta < 1 {
		violate(ErrZeroDelta)
	}
	n := e.base()
	n.Cancel()
	n.scheduledAt = w.now + delta
	lvl := w.levelFor(delta)
	w.insert(e, lvl)
	w.Logger.Printf("timewheel: schedule tick=%d level=%d\n", n.scheduledAt, lvl)
}

// ScheduleInRange places e at some tick in [Now()+start, Now()+end],
// chosen to minimize future cascading. If e is already active with a
// scheduledAt inside that window, it is left untouched — rescheduling
// within declared slack is free. Otherwise the target is the tick in the
// window that shares the longest byte-aligned common suffix with Now(),
// ties broken toward the latest tick (see bestAlignedTick).
func (w *Wheel) ScheduleInRange(e scheduled, start, end Tick) {
	if start < 1 || start >= end {
		violate(ErrInvalidRange)
	}
	n := e.base()
	lo, hi := w.now+start, w.now+end
	if n.Active() && n.scheduledAt >= lo && n.scheduledAt <= hi {
		return
	}
	t := w.bestAlignedTick(lo, hi)
	w.Schedule(e, t-w.now)
}

// bestAlignedTick returns the tick in [lo, hi] that shares the most
// byte-aligned low-order digits with Now(), i.e. the largest k with
// t mod width^k == now mod width^k, ties broken toward the larger t.
// Placing such a t lands the node on the coarsest possible level, which
// is exactly the slot that survives the most future cascades unscathed.
func (w *Wheel) bestAlignedTick(lo, hi Tick) Tick {
	for k := w.Levels - 1; k >= 0; k-- {
		period := pow(w.Width, k)
		rem := w.now % period
		if hi < rem {
			continue
		}
		candidate := hi - ((hi - rem) % period)
		if candidate >= lo && candidate <= hi {
			return candidate
		}
	}
	return hi
}

// levelFor returns the coarsest level whose granularity still resolves a
// delta of this size: the smallest L with delta < width^(L+1).
func (w *Wheel) levelFor(delta Tick) int {
	lvl := 0
	limit := Tick(w.Width)
	for delta >= limit && lvl < w.Levels-1 {
		lvl++
		limit *= Tick(w.Width)
	}
	return lvl
}

// insert places e into the slot on level lvl that its scheduledAt maps to.
func (w *Wheel) insert(e scheduled, lvl int) {
	idx := slotIndex(e.base().scheduledAt, lvl, w.Width)
	w.levels[lvl].slots[idx].insert(e, w)
}

// place reinserts a node drained out of a cascading level, using the
// standard placement rule against the wheel's current now. A node whose
// scheduledAt has already passed — possible after a bounded Advance left
// ticks outstanding — lands directly in level 0's current slot so it
// fires on the very next slot drain, per spec.md §4.4 step 3.
func (w *Wheel) place(e scheduled) {
	n := e.base()
	if n.scheduledAt <= w.now {
		lv0 := w.levels[0]
		lv0.slots[lv0.index].insert(e, w)
		return
	}
	w.insert(e, w.levelFor(n.scheduledAt-w.now))
}

// Advance moves time forward by delta ticks, running every event due along
// the way to completion, with no cap on work done in this call.
func (w *Wheel) Advance(delta Tick) bool {
	return w.AdvanceBounded(delta, 0)
}

// AdvanceBounded moves time forward by delta ticks, executing at most
// maxExecute callbacks (maxExecute <= 0 means unbounded). It returns true
// if every due event was processed, false if the budget ran out with work
// still outstanding — in which case the next call should pass delta=0 to
// resume rather than advance further.
func (w *Wheel) AdvanceBounded(delta Tick, maxExecute int) bool {
	if w.advancing {
		violate(ErrReentrantAdvance)
	}
	if delta == 0 && w.ticksPending == 0 {
		violate(ErrAdvanceNotPending)
	}
	w.advancing = true
	defer func() { w.advancing = false }()

	remaining := delta + w.ticksPending
	w.ticksPending = 0
	executed := 0

	if w.pending != nil {
		s := w.pending
		w.pending = nil
		if !w.dispatch(s, maxExecute, &executed) {
			w.pending = s
			w.ticksPending = remaining
			w.Logger.Printf("timewheel: advance suspended pending=%d executed=%d\n", remaining, executed)
			return false
		}
		remaining--
	}

	for remaining > 0 {
		if maxExecute > 0 && executed >= maxExecute {
			w.ticksPending = remaining
			w.Logger.Printf("timewheel: advance suspended pending=%d executed=%d\n", remaining, executed)
			return false
		}
		s := w.tick()
		if !w.dispatch(s, maxExecute, &executed) {
			w.pending = s
			w.ticksPending = remaining
			w.Logger.Printf("timewheel: advance suspended pending=%d executed=%d\n", remaining, executed)
			return false
		}
		remaining--
	}
	return true
}

// tick advances the wheel by exactly one tick: rotate level 0 (cascading
// upward on wrap), bump now, and move level 0's newly-current slot's events
// into a fresh holding slot for dispatch to work through.
func (w *Wheel) tick() *wheelSlot {
	if w.levels[0].rotate() {
		w.cascade(1)
	}
	w.now++
	lv0 := w.levels[0]
	dest := newWheelSlot()
	lv0.slots[lv0.index].drainInto(dest, w)
	return dest
}

// cascade rotates level lvl (recursing upward first if it wraps) and
// reinserts everything it drains at its new, finer-grained home.
func (w *Wheel) cascade(lvl int) {
	if lvl >= w.Levels {
		return
	}
	lv := w.levels[lvl]
	if lv.rotate() {
		w.cascade(lvl + 1)
	}
	q := lv.slots[lv.index].drain()
	w.Logger.Printf("timewheel: cascade level=%d count=%d\n", lvl, q.Length())
	for q.Length() > 0 {
		w.place(q.Remove().(scheduled))
	}
}

// dispatch runs events off s until it is empty or the budget is spent,
// splicing and detaching each one only immediately before executing it —
// so an event dispatch hasn't reached yet stays genuinely Active(), still
// attached to s, and still reachable through Cancel or a reentrant
// Schedule. It reports whether s was fully drained; on a short return the
// caller is responsible for remembering s to resume dispatch from later.
func (w *Wheel) dispatch(s *wheelSlot, maxExecute int, executed *int) bool {
	for s.Len() > 0 {
		if maxExecute > 0 && *executed >= maxExecute {
			return false
		}
		e := s.Front()
		v := e.Value.(scheduled)
		s.List.Remove(e)
		n := v.base()
		n.detach()
		*executed++
		v.execute()
		if !n.Active() {
			n.scheduledAt = 0
		}
	}
	return true
}

// TicksToNextEvent returns the delta to the nearest scheduled event,
// capped at max. It returns 0 if a prior bounded Advance left work
// outstanding (there is, by definition, already something due right now).
func (w *Wheel) TicksToNextEvent(max Tick) Tick {
	if w.ticksPending > 0 {
		return 0
	}
	return w.scanLevel(0, max)
}

// scanLevel probes level lvl's upcoming slots for an occupied one, falling
// back to the level above when nothing is found within max. On level 0 the
// distance to an occupied slot is exact; on higher levels it is the
// distance to the start of that slot's tick range, an underestimate rather
// than an overestimate. A hit is still compared against the levels above
// (which may hold an earlier event not yet cascaded down), so a caller that
// skips ahead by the returned amount never steps over a due event.
func (w *Wheel) scanLevel(lvl int, max Tick) Tick {
	if lvl >= w.Levels || max == 0 {
		return max
	}
	lv := w.levels[lvl]
	step := pow(w.Width, lvl)
	base := w.now - w.now%step
	for i := 1; i <= lv.width; i++ {
		delta := base + Tick(i)*step - w.now
		if delta > max {
			break
		}
		idx := (lv.index + i) % lv.width
		if lv.slots[idx].Len() > 0 {
			return w.scanLevel(lvl+1, delta)
		}
	}
	return w.scanLevel(lvl+1, max)
}
