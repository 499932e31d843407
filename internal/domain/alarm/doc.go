// Package alarm contains core domain types for the alarm logic.
//
// It defines Session (the mutable per-boot state shared by guards and
// actions) and the indicator Color palette the policy maps states onto.
package alarm
