// Package config loads, validates and saves the YAML settings shared by the
// alarm binaries: the persisted-state file location, the actuator beep
// period, the optional auto-disarm cool-down, and the host cycle interval.
package config
