package hardware

// Pin identifies a digital line on the board.
type Pin uint8

// Default pin assignment, matching the reference board wiring.
const (
	// PinButton is the trigger button line.
	PinButton Pin = 2
	// PinKickstand is the kickstand sensor line.
	PinKickstand Pin = 3
	// PinAlarm drives the alarm relay.
	PinAlarm Pin = 4
)

// DigitalInput samples pulled-up digital lines.
type DigitalInput interface {
	// ReadRaw returns a single instantaneous sample of the line.
	// Lines use pull-up semantics: true means the line is floating (switch
	// open), false means the line is pulled low (switch closed). A line
	// without a stable signal reads open.
	ReadRaw(pin Pin) bool
}

// DigitalOutput drives binary outputs such as the alarm relay.
type DigitalOutput interface {
	// SetOutput drives the pin high (true) or low (false).
	SetOutput(pin Pin, on bool)
}

// Indicator is the tri-color status light.
type Indicator interface {
	// SetColor sets the three intensity channels (0-255 each).
	SetColor(r, g, b uint8)
}

// Clock provides monotonic time for timed guards.
type Clock interface {
	// Now returns milliseconds since boot. The counter wraps on overflow;
	// callers compute deltas with unsigned subtraction, which stays correct
	// across a single wrap.
	Now() uint32
}

// Board is the full hardware surface the alarm controller consumes.
type Board interface {
	DigitalInput
	DigitalOutput
	Indicator
	Clock
}
