package flag

import "errors"

// CellCount is the number of addressable boolean cells in a store.
const CellCount = 8

// Fixed cell addresses used by the alarm.
const (
	// AddressAlarmTriggered holds the persisted alarm-triggered flag.
	AddressAlarmTriggered = 0
)

// ErrBadAddress is returned when an address lies outside the cell range.
var ErrBadAddress = errors.New("address out of range")

// Store defines persistence operations for boolean flags.
//
// Writes carry update-if-changed semantics: storing a value equal to the
// current one must not touch the underlying medium.
type Store interface {
	ReadFlag(address int) (bool, error)
	WriteFlag(address int, value bool) error
}
