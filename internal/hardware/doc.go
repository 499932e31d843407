// Package hardware defines the boundary contracts between the alarm logic
// and the physical board: raw digital inputs, the alarm relay output, the
// tri-color status indicator, and a wrapping millisecond clock.
//
// The alarm logic only ever sees these interfaces. SystemClock and SimBoard
// are host-side implementations; a firmware port supplies its own.
package hardware
