// Package debounce turns noisy mechanical switch lines into stable boolean
// readings.
//
// The filter is deliberately asymmetric: a switch only counts as closed when
// every sample in a burst agrees, while a single open sample is proof enough
// that the line is not reliably closed. With pull-up wiring a floating or
// bouncing line drifts toward open, so ambiguity resolves to "not pressed".
package debounce
