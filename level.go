package timewheel

// level is a Wheel Level: a fixed-width ring of Slot Lists plus a current
// index. Level 0 has slot granularity 1 tick; level L's granularity is
// width^L ticks per slot (see tick.go's granularity helper).
type level struct {
	slots []*wheelSlot
	index int
	width int
}

func newLevel(width int) *level {
	lv := &level{
		slots: make([]*wheelSlot, width),
		width: width,
	}
	for i := range lv.slots {
		lv.slots[i] = newWheelSlot()
	}
	return lv
}

// slotIndex returns the slot on level levelNum that absolute tick t maps
// to: the digits of t above this level's own granularity index the slot,
// per spec's "slot = (t >> 8L) mod width" (written here as a general
// div/mod so a non-default width, set via WithWidth, stays correct).
func slotIndex(t Tick, levelNum, width int) int {
	return int((t / pow(width, levelNum)) % Tick(width))
}

// rotate advances the level's current index by one slot, wrapping to 0,
// and reports whether it wrapped (the signal to cascade the level above).
func (lv *level) rotate() (wrapped bool) {
	lv.index++
	if lv.index >= lv.width {
		lv.index = 0
		return true
	}
	return false
}
