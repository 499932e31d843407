package fsm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// trace records the order in which actions, guards and hooks run.
type trace struct {
	// events lists action invocations in order.
	events []string
	// allow gates the guards used by the tests.
	allow map[string]bool
}

func newTrace() *trace {
	return &trace{
		allow: make(map[string]bool),
	}
}

func (tr *trace) mark(event string) Action[*trace] {
	return func(c *trace) {
		c.events = append(c.events, event)
	}
}

func (tr *trace) when(name string) Guard[*trace] {
	return func(c *trace) bool {
		return c.allow[name]
	}
}

// TestStartEntersInitialState verifies Start runs enter then the hook and
// leaves exactly one current state.
func TestStartEntersInitialState(t *testing.T) {
	t.Parallel()

	tr := newTrace()
	m := New[*trace](2, 1)

	a := m.AddState(tr.mark("enter-a"), nil, nil)
	m.AddState(nil, nil, nil)
	m.OnEveryEnter(func(c *trace, entered StateHandle) {
		c.events = append(c.events, "hook")
		require.Equal(t, a, entered)
	})

	require.Equal(t, NoState, m.Current())

	m.Start(a, tr)

	require.Equal(t, a, m.Current())
	require.Equal(t, []string{"enter-a", "hook"}, tr.events)
}

// TestStepWithoutTransition verifies the loop action runs and the state is
// unchanged when no guard is true.
func TestStepWithoutTransition(t *testing.T) {
	t.Parallel()

	tr := newTrace()
	m := New[*trace](2, 1)

	a := m.AddState(nil, tr.mark("loop-a"), nil)
	b := m.AddState(nil, nil, nil)
	m.AddTransition(a, b, tr.when("go"))

	m.Start(a, tr)

	m.Step(tr)
	m.Step(tr)

	require.Equal(t, a, m.Current())
	require.Equal(t, []string{"loop-a", "loop-a"}, tr.events)
}

// TestTransitionSequence verifies the full firing order:
// loop, exit, enter, hook.
func TestTransitionSequence(t *testing.T) {
	t.Parallel()

	tr := newTrace()
	m := New[*trace](2, 1)

	a := m.AddState(nil, tr.mark("loop-a"), tr.mark("exit-a"))
	b := m.AddState(tr.mark("enter-b"), nil, nil)
	m.AddTransition(a, b, tr.when("go"))
	m.OnEveryEnter(func(c *trace, _ StateHandle) {
		c.events = append(c.events, "hook")
	})

	m.Start(a, tr)
	tr.events = nil

	tr.allow["go"] = true
	m.Step(tr)

	require.Equal(t, b, m.Current())
	require.Equal(t, []string{"loop-a", "exit-a", "enter-b", "hook"}, tr.events)
}

// TestFirstTrueGuardWins verifies declaration-order priority when several
// guards are simultaneously true, and that the pick is deterministic across
// independently built machines.
func TestFirstTrueGuardWins(t *testing.T) {
	t.Parallel()

	build := func(tr *trace) (*Machine[*trace], []StateHandle) {
		m := New[*trace](3, 2)
		a := m.AddState(nil, nil, nil)
		b := m.AddState(nil, nil, nil)
		c := m.AddState(nil, nil, nil)
		m.AddTransition(a, b, tr.when("both"))
		m.AddTransition(a, c, tr.when("both"))

		return m, []StateHandle{a, b, c}
	}

	tr := newTrace()
	tr.allow["both"] = true

	for run := 0; run < 2; run++ {
		m, states := build(tr)
		m.Start(states[0], tr)
		m.Step(tr)

		// The first-registered edge wins on every run.
		require.Equal(t, states[1], m.Current())
	}
}

// TestAtMostOneTransitionPerStep verifies a chain of always-true guards
// advances one edge per cycle.
func TestAtMostOneTransitionPerStep(t *testing.T) {
	t.Parallel()

	tr := newTrace()
	tr.allow["always"] = true

	m := New[*trace](3, 2)
	a := m.AddState(nil, nil, nil)
	b := m.AddState(nil, nil, nil)
	c := m.AddState(nil, nil, nil)
	m.AddTransition(a, b, tr.when("always"))
	m.AddTransition(b, c, tr.when("always"))

	m.Start(a, tr)

	m.Step(tr)
	require.Equal(t, b, m.Current())

	m.Step(tr)
	require.Equal(t, c, m.Current())
}

// TestRegistrationTelemetry verifies the registration counters.
func TestRegistrationTelemetry(t *testing.T) {
	t.Parallel()

	tr := newTrace()
	m := New[*trace](4, 4)

	a := m.AddState(nil, nil, nil)
	b := m.AddState(nil, nil, nil)
	m.AddTransition(a, b, tr.when("x"))

	require.Equal(t, 2, m.StateCount())
	require.Equal(t, 1, m.TransitionCount())
}

// TestConstructionFaults verifies that graph-building mistakes panic.
func TestConstructionFaults(t *testing.T) {
	t.Parallel()

	tr := newTrace()

	require.Panics(t, func() { New[*trace](0, 1) })

	// State arena overflow.
	require.Panics(t, func() {
		m := New[*trace](1, 1)
		m.AddState(nil, nil, nil)
		m.AddState(nil, nil, nil)
	})

	// Transition arena overflow.
	require.Panics(t, func() {
		m := New[*trace](2, 1)
		a := m.AddState(nil, nil, nil)
		b := m.AddState(nil, nil, nil)
		m.AddTransition(a, b, tr.when("x"))
		m.AddTransition(b, a, tr.when("x"))
	})

	// Unknown handle.
	require.Panics(t, func() {
		m := New[*trace](1, 1)
		a := m.AddState(nil, nil, nil)
		m.AddTransition(a, StateHandle(5), tr.when("x"))
	})

	// Nil guard.
	require.Panics(t, func() {
		m := New[*trace](2, 1)
		a := m.AddState(nil, nil, nil)
		b := m.AddState(nil, nil, nil)
		m.AddTransition(a, b, nil)
	})
}

// TestLifecycleFaults verifies start/step ordering violations panic.
func TestLifecycleFaults(t *testing.T) {
	t.Parallel()

	tr := newTrace()

	// Step before Start.
	require.Panics(t, func() {
		m := New[*trace](1, 1)
		m.AddState(nil, nil, nil)
		m.Step(tr)
	})

	// Double Start.
	require.Panics(t, func() {
		m := New[*trace](1, 1)
		a := m.AddState(nil, nil, nil)
		m.Start(a, tr)
		m.Start(a, tr)
	})

	// Registration after Start.
	require.Panics(t, func() {
		m := New[*trace](2, 1)
		a := m.AddState(nil, nil, nil)
		m.Start(a, tr)
		m.AddState(nil, nil, nil)
	})
}
