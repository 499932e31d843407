package fsm

import "fmt"

// StateHandle identifies a registered state. Handles are small indexes into
// the machine's state arena and stay valid for the machine's lifetime.
type StateHandle int

// NoState is the current state before Start is called.
const NoState StateHandle = -1

// Action is a state behavior slot (enter, loop or exit). Actions receive the
// caller context explicitly and must not block.
type Action[C any] func(c C)

// Guard is a transition predicate, re-evaluated every cycle. Guards must be
// pure reads: mutation belongs in actions.
type Guard[C any] func(c C) bool

// Hook observes every state entry, including the synthetic entry into the
// initial state during Start. It runs after the entered state's own enter
// action.
type Hook[C any] func(c C, entered StateHandle)

// state holds the optional behavior slots of one registered state.
type state[C any] struct {
	enter Action[C]
	loop  Action[C]
	exit  Action[C]
}

// transition is a directed guarded edge between two states.
type transition[C any] struct {
	from  StateHandle
	to    StateHandle
	guard Guard[C]
}

// Machine is a bounded, polled state machine over a caller context C.
//
// Build the graph with AddState and AddTransition, then call Start exactly
// once and Step once per control cycle. The zero Machine is not usable;
// construct with New.
type Machine[C any] struct {
	// states is the fixed-capacity state arena.
	states []state[C]
	// transitions is the fixed-capacity edge arena, in registration order.
	transitions []transition[C]
	// everyEnter is the optional global entered-state hook.
	everyEnter Hook[C]
	// current is the active state, NoState before Start.
	current StateHandle
	// started flips once Start has run; it freezes registration.
	started bool
}

// New creates a machine with fixed capacity for states and transitions.
// Panics when either capacity is not positive: a machine that can hold no
// graph is a construction fault.
func New[C any](maxStates, maxTransitions int) *Machine[C] {
	if maxStates < 1 || maxTransitions < 1 {
		panic(fmt.Sprintf("fsm: invalid capacities %d/%d", maxStates, maxTransitions))
	}

	return &Machine[C]{
		states:      make([]state[C], 0, maxStates),
		transitions: make([]transition[C], 0, maxTransitions),
		current:     NoState,
	}
}

// AddState registers a state with optional enter, loop and exit actions
// (nil means no behavior in that slot) and returns its handle.
// Panics when the state arena is full or the machine has already started.
func (m *Machine[C]) AddState(enter, loop, exit Action[C]) StateHandle {
	if m.started {
		panic("fsm: AddState after Start")
	}

	if len(m.states) == cap(m.states) {
		panic(fmt.Sprintf("fsm: state capacity %d exceeded", cap(m.states)))
	}

	m.states = append(m.states, state[C]{
		enter: enter,
		loop:  loop,
		exit:  exit,
	})

	return StateHandle(len(m.states) - 1)
}

// AddTransition registers a guarded edge from one state to another.
// Transitions sharing a source are evaluated in registration order and the
// first true guard wins, so order is part of the machine's meaning.
// Panics on a full arena, an unknown handle, a nil guard, or after Start.
func (m *Machine[C]) AddTransition(from, to StateHandle, guard Guard[C]) {
	if m.started {
		panic("fsm: AddTransition after Start")
	}

	if len(m.transitions) == cap(m.transitions) {
		panic(fmt.Sprintf("fsm: transition capacity %d exceeded", cap(m.transitions)))
	}

	if !m.validHandle(from) || !m.validHandle(to) {
		panic(fmt.Sprintf("fsm: invalid transition %d -> %d", from, to))
	}

	if guard == nil {
		panic(fmt.Sprintf("fsm: nil guard on transition %d -> %d", from, to))
	}

	m.transitions = append(m.transitions, transition[C]{
		from:  from,
		to:    to,
		guard: guard,
	})
}

// OnEveryEnter sets the single global entered-state hook.
func (m *Machine[C]) OnEveryEnter(hook Hook[C]) {
	m.everyEnter = hook
}

// Start freezes registration and synchronously enters the initial state:
// its enter action runs, then the global hook. Panics when called twice or
// with an unknown handle.
func (m *Machine[C]) Start(initial StateHandle, c C) {
	if m.started {
		panic("fsm: Start called twice")
	}

	if !m.validHandle(initial) {
		panic(fmt.Sprintf("fsm: invalid initial state %d", initial))
	}

	m.started = true
	m.current = initial
	m.enter(initial, c)
}

// Step runs one control cycle: the current state's loop action, then a scan
// of the current state's outgoing transitions in registration order. The
// first transition whose guard reports true fires: source exit, state
// switch, destination enter, global hook. At most one transition fires per
// call. Panics when called before Start.
func (m *Machine[C]) Step(c C) {
	if !m.started {
		panic("fsm: Step before Start")
	}

	if loop := m.states[m.current].loop; loop != nil {
		loop(c)
	}

	for i := range m.transitions {
		t := &m.transitions[i]
		if t.from != m.current || !t.guard(c) {
			continue
		}

		if exit := m.states[t.from].exit; exit != nil {
			exit(c)
		}

		m.current = t.to
		m.enter(t.to, c)

		return
	}
}

// Current returns the active state, or NoState before Start.
func (m *Machine[C]) Current() StateHandle {
	return m.current
}

// StateCount returns the number of registered states.
func (m *Machine[C]) StateCount() int {
	return len(m.states)
}

// TransitionCount returns the number of registered transitions.
func (m *Machine[C]) TransitionCount() int {
	return len(m.transitions)
}

// enter runs the state's enter action followed by the global hook.
func (m *Machine[C]) enter(s StateHandle, c C) {
	if action := m.states[s].enter; action != nil {
		action(c)
	}

	if m.everyEnter != nil {
		m.everyEnter(c, s)
	}
}

// validHandle reports whether the handle names a registered state.
func (m *Machine[C]) validHandle(s StateHandle) bool {
	return s >= 0 && int(s) < len(m.states)
}
