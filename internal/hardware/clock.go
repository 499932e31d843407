package hardware

import "time"

// SystemClock implements Clock on top of the host monotonic clock.
// The millisecond counter starts at construction and wraps like a 32-bit
// hardware tick counter would.
type SystemClock struct {
	// start anchors the counter so readings begin near zero.
	start time.Time
}

// NewSystemClock returns a clock counting from now.
func NewSystemClock() *SystemClock {
	return &SystemClock{
		start: time.Now(),
	}
}

// Now returns milliseconds since the clock was created, truncated to 32 bits.
func (c *SystemClock) Now() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}
