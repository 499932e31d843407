// Package fsm implements a small polled finite-state-machine engine.
//
// Unlike event-driven machines, this engine has no event queue: the caller
// invokes Step once per control cycle, the current state's loop action runs,
// and every guard whose transition leaves the current state is re-evaluated.
// The first guard to report true wins, so the registration order of
// transitions is part of the machine's semantics.
//
// States and transitions live in arenas whose capacities are fixed at
// construction. The machine graph is assembled once at startup; exceeding a
// capacity or passing an invalid handle is a programming error and panics.
// Once started, stepping never panics and never allocates.
//
// The engine is generic over a context type C, passed explicitly into every
// action and guard. It is strictly single-threaded: Step must never be
// invoked concurrently or reentrantly.
package fsm
