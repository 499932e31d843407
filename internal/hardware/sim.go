package hardware

import "sync"

// SimBoard is an in-memory Board used by the host binary and tests.
// Switch positions are set from one goroutine (for example a terminal
// reader) while the control loop reads them, so access is mutex-guarded.
type SimBoard struct {
	// clock provides Now readings; injectable for tests.
	clock Clock
	// closed tracks which switch lines are currently closed.
	closed map[Pin]bool
	// outputs tracks the last driven level per output pin.
	outputs map[Pin]bool
	// r, g, b hold the last indicator color.
	r, g, b uint8
	// mu protects all mutable fields.
	mu sync.Mutex
}

// NewSimBoard creates a simulated board with all switches open and all
// outputs low. A nil clock defaults to the system clock.
func NewSimBoard(clock Clock) *SimBoard {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &SimBoard{
		clock:   clock,
		closed:  make(map[Pin]bool),
		outputs: make(map[Pin]bool),
	}
}

// SetSwitch sets whether the switch on the pin is closed (pressed/down).
func (b *SimBoard) SetSwitch(pin Pin, isClosed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed[pin] = isClosed
}

// ReadRaw reports the raw line level: pull-up semantics, so an open switch
// reads true and a closed switch reads false.
func (b *SimBoard) ReadRaw(pin Pin) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return !b.closed[pin]
}

// SetOutput records the driven level for the pin.
func (b *SimBoard) SetOutput(pin Pin, on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.outputs[pin] = on
}

// Output returns the last driven level for the pin.
func (b *SimBoard) Output(pin Pin) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.outputs[pin]
}

// SetColor records the indicator color.
func (b *SimBoard) SetColor(red, green, blue uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.r, b.g, b.b = red, green, blue
}

// Color returns the last indicator color.
func (b *SimBoard) Color() (red, green, blue uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.r, b.g, b.b
}

// Now delegates to the board clock.
func (b *SimBoard) Now() uint32 {
	return b.clock.Now()
}
