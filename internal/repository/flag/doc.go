// Package flag implements the non-volatile boolean store the alarm uses to
// survive power loss.
//
// The Store interface mimics a small EEPROM: boolean cells addressed by a
// fixed index, with update-if-changed write semantics to spare the medium's
// limited write endurance. FileStore persists the cells as a JSON file on
// disk; MemoryStore backs tests and the simulator.
package flag
