package timewheel

import "errors"

// Contract violations. The wheel treats these as programmer errors: they
// are never returned, only panicked with via violate, so a misuse fails
// fast instead of silently corrupting wheel state.
var (
	ErrZeroDelta         = errors.New("timewheel: schedule delta must be >= 1")
	ErrInvalidRange      = errors.New("timewheel: schedule_in_range requires 1 <= start < end")
	ErrReentrantAdvance  = errors.New("timewheel: advance called reentrantly from a callback")
	ErrAdvanceNotPending = errors.New("timewheel: advance delta must be >= 1 unless resuming a short advance")
)

// violate panics with err. Kept as a named helper, rather than scattering
// bare panic(err) calls, so every fail-fast site reads the same way.
func violate(err error) {
	panic(err)
}
