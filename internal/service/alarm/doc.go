// Package alarm implements the anti-theft alarm controller.
//
// The controller composes the fsm engine, the debounced switch reader, the
// hardware board and the non-volatile flag store into the arming policy:
// press the button, drop the kickstand, release the button and the alarm is
// live; lifting the kickstand fires it, and silencing requires the button
// together with the kickstand back down. The triggered flag is persisted so
// an attacker cannot silence the alarm by cutting power.
package alarm
