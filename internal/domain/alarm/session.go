package alarm

// Session is the mutable state shared by every guard and state action.
// It is passed explicitly instead of living in package globals so the
// policy can be exercised without hardware.
type Session struct {
	// Triggered mirrors the persisted alarm-triggered flag. It is the only
	// field that survives a power cycle.
	Triggered bool
	// StateChangedAt is the clock reading (milliseconds) taken when the
	// current state was entered. Volatile; timed guards and the beep loop
	// compute elapsed time against it with wraparound-safe subtraction.
	StateChangedAt uint32
}

// Clone returns a copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}

// Elapsed returns milliseconds since the current state was entered.
// The subtraction stays correct across a single wrap of the clock.
func (s *Session) Elapsed(now uint32) uint32 {
	return now - s.StateChangedAt
}
