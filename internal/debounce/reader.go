package debounce

import "github.com/oshokin/bike-alarm/internal/hardware"

// Samples is the number of raw reads taken per IsClosed call.
const Samples = 20

// Reader produces debounced readings from raw digital lines.
type Reader struct {
	// input is the raw line sampler.
	input hardware.DigitalInput
}

// NewReader creates a Reader over the provided input source.
func NewReader(input hardware.DigitalInput) *Reader {
	return &Reader{
		input: input,
	}
}

// IsClosed reports whether the switch on the pin is reliably closed.
//
// It takes Samples raw reads in immediate succession and returns true only
// when every one of them shows the line pulled low. All samples are always
// taken, so each call costs the same regardless of the result.
func (r *Reader) IsClosed(pin hardware.Pin) bool {
	closed := 0

	for i := 0; i < Samples; i++ {
		if !r.input.ReadRaw(pin) {
			closed++
		}
	}

	return closed == Samples
}
