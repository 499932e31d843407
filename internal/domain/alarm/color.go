package alarm

// Color is an RGB triple for the status indicator.
type Color struct {
	// R, G, B are the channel intensities (0-255).
	R, G, B uint8
}

// Indicator palette used by the alarm policy.
var (
	// ColorOff darkens the indicator entirely.
	ColorOff = Color{}
	// ColorArmedPending (green) asks the rider to finish the arming gesture.
	ColorArmedPending = Color{G: 255}
	// ColorArmed (red) shows the alarm is about to be, or is, live.
	ColorArmed = Color{R: 255}
)
