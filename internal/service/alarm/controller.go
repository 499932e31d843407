package alarm

import (
	"context"

	"github.com/oshokin/bike-alarm/internal/config"
	"github.com/oshokin/bike-alarm/internal/debounce"
	domain "github.com/oshokin/bike-alarm/internal/domain/alarm"
	"github.com/oshokin/bike-alarm/internal/fsm"
	"github.com/oshokin/bike-alarm/internal/hardware"
	"github.com/oshokin/bike-alarm/internal/logger"
	repo "github.com/oshokin/bike-alarm/internal/repository/flag"
)

// Engine capacities; generous headroom over the seven states and
// thirteen transitions the policy registers.
const (
	maxStates      = 10
	maxTransitions = 20
)

// State names in registration order, used for logs and tests.
const (
	StateStart                = "start"
	StateWaitForButtonPress   = "wait-for-button-press"
	StateWaitForKickstandDown = "wait-for-kickstand-down"
	StateWaitForButtonRelease = "wait-for-button-release"
	StateArmed                = "armed"
	StateTriggered            = "triggered"
	StateWaitForKickstandUp   = "wait-for-kickstand-up"
)

// Controller owns the alarm state machine and its session state.
// It is single-threaded: Start and Step must be called from one goroutine.
type Controller struct {
	// ctx carries the scoped logger into actions and guards.
	ctx context.Context
	// machine is the polled engine driving the policy.
	machine *fsm.Machine[*domain.Session]
	// reader debounces the raw switch lines.
	reader *debounce.Reader
	// board is the hardware surface (inputs, relay, indicator, clock).
	board hardware.Board
	// store persists the triggered flag across power loss.
	store repo.Store
	// session is the mutable state shared with guards and actions.
	session *domain.Session
	// names maps state handles to readable names for logging.
	names map[fsm.StateHandle]string
	// beepMillis is the actuator duty period while triggered.
	beepMillis uint32
	// cooldownMillis is the auto-disarm cool-down; zero when disabled.
	cooldownMillis uint32

	// State handles, assigned at registration.
	start             fsm.StateHandle
	waitButtonPress   fsm.StateHandle
	waitKickstandDown fsm.StateHandle
	waitButtonRelease fsm.StateHandle
	armed             fsm.StateHandle
	triggered         fsm.StateHandle
	waitKickstandUp   fsm.StateHandle
}

// NewController builds the controller and registers the full state graph.
// The machine is not started yet; call Start once before stepping.
func NewController(
	ctx context.Context,
	cfg *config.Config,
	board hardware.Board,
	store repo.Store,
) *Controller {
	c := &Controller{
		ctx:            ctx,
		machine:        fsm.New[*domain.Session](maxStates, maxTransitions),
		reader:         debounce.NewReader(board),
		board:          board,
		store:          store,
		session:        new(domain.Session),
		names:          make(map[fsm.StateHandle]string, maxStates),
		beepMillis:     uint32(cfg.BeepPeriod.Milliseconds()),
		cooldownMillis: uint32(cfg.AutoDisarm.Milliseconds()),
	}

	// A sub-millisecond beep period would divide by zero in the beep loop.
	if c.beepMillis == 0 {
		c.beepMillis = uint32(config.DefaultBeepPeriod.Milliseconds())
	}

	c.registerStates()
	c.registerTransitions()

	logger.DebugKV(ctx, "State graph registered",
		"states", c.machine.StateCount(),
		"transitions", c.machine.TransitionCount(),
	)

	return c
}

// Start enters the start state, which reconciles the persisted trigger flag
// into the session. Exactly once.
func (c *Controller) Start() {
	c.machine.Start(c.start, c.session)
}

// Step runs one control cycle.
func (c *Controller) Step() {
	c.machine.Step(c.session)
}

// CurrentName returns the readable name of the active state.
func (c *Controller) CurrentName() string {
	return c.names[c.machine.Current()]
}

// Session returns a copy of the session state.
func (c *Controller) Session() *domain.Session {
	return c.session.Clone()
}

// registerStates wires the seven policy states onto the engine.
func (c *Controller) registerStates() {
	c.start = c.addState(StateStart, c.enterStart, nil, nil)
	c.waitButtonPress = c.addState(StateWaitForButtonPress, c.enterWaitButtonPress, nil, nil)
	c.waitKickstandDown = c.addState(StateWaitForKickstandDown, c.enterWaitKickstandDown, nil, nil)
	c.waitButtonRelease = c.addState(StateWaitForButtonRelease, c.enterWaitButtonRelease, nil, nil)
	c.armed = c.addState(StateArmed, c.enterArmed, nil, nil)
	c.triggered = c.addState(StateTriggered, c.enterTriggered, c.loopTriggered, nil)
	c.waitKickstandUp = c.addState(StateWaitForKickstandUp, c.enterWaitKickstandUp, nil, c.exitWaitKickstandUp)

	// Every state entry stamps the session clock so timed guards and the
	// beep loop measure from the moment of entry.
	c.machine.OnEveryEnter(func(s *domain.Session, entered fsm.StateHandle) {
		s.StateChangedAt = c.board.Now()

		logger.DebugKV(c.ctx, "Entered state", "state", c.names[entered], "at_ms", s.StateChangedAt)
	})
}

// registerTransitions wires the guarded edges. Order matters: transitions
// sharing a source are evaluated first-registered-first, and later guards
// assume earlier ones already excluded their case.
func (c *Controller) registerTransitions() {
	m := c.machine

	// On startup, resume straight into triggered if power was cut while
	// the alarm was sounding.
	m.AddTransition(c.start, c.triggered, func(s *domain.Session) bool {
		return s.Triggered
	})
	m.AddTransition(c.start, c.waitButtonPress, func(s *domain.Session) bool {
		return !s.Triggered
	})

	// Arming gesture: press, drop the kickstand, release.
	// The kickstand is deliberately not checked here, so a parked bike
	// arms directly once the button is pressed.
	m.AddTransition(c.waitButtonPress, c.waitKickstandDown, c.buttonGuard(true))
	m.AddTransition(c.waitKickstandDown, c.waitButtonPress, c.buttonGuard(false))
	m.AddTransition(c.waitKickstandDown, c.waitButtonRelease, c.kickstandGuard(true))

	// Kickstand lifted mid-gesture means the rider is repositioning.
	m.AddTransition(c.waitButtonRelease, c.waitKickstandDown, c.kickstandGuard(false))
	m.AddTransition(c.waitButtonRelease, c.armed, c.buttonGuard(false))

	// Armed: lifting the kickstand fires the alarm, pressing the button
	// starts disarming.
	m.AddTransition(c.armed, c.triggered, c.kickstandGuard(false))
	m.AddTransition(c.armed, c.waitButtonRelease, c.buttonGuard(true))

	// Silencing requires button AND kickstand down, so the alarm cannot be
	// quieted without restoring the bike to its parked position.
	m.AddTransition(c.triggered, c.waitKickstandUp, func(_ *domain.Session) bool {
		return c.buttonPressed() && c.kickstandDown()
	})

	// Optional cool-down: a triggered alarm re-arms on its own once the
	// kickstand is back down and the configured time has passed.
	if c.cooldownMillis > 0 {
		m.AddTransition(c.triggered, c.armed, func(s *domain.Session) bool {
			return c.kickstandDown() && s.Elapsed(c.board.Now()) >= c.cooldownMillis
		})
	}

	m.AddTransition(c.waitKickstandUp, c.waitKickstandDown, c.kickstandGuard(false))
	m.AddTransition(c.waitKickstandUp, c.triggered, c.buttonGuard(false))
}

// addState registers a named state on the engine.
func (c *Controller) addState(
	name string,
	enter, loop, exit fsm.Action[*domain.Session],
) fsm.StateHandle {
	handle := c.machine.AddState(enter, loop, exit)
	c.names[handle] = name

	return handle
}

// buttonPressed reports whether the trigger button is reliably pressed.
func (c *Controller) buttonPressed() bool {
	return c.reader.IsClosed(hardware.PinButton)
}

// kickstandDown reports whether the kickstand sensor is reliably closed.
func (c *Controller) kickstandDown() bool {
	return c.reader.IsClosed(hardware.PinKickstand)
}

// buttonGuard returns a guard matching the wanted button position.
func (c *Controller) buttonGuard(pressed bool) fsm.Guard[*domain.Session] {
	return func(_ *domain.Session) bool {
		return c.buttonPressed() == pressed
	}
}

// kickstandGuard returns a guard matching the wanted kickstand position.
func (c *Controller) kickstandGuard(down bool) fsm.Guard[*domain.Session] {
	return func(_ *domain.Session) bool {
		return c.kickstandDown() == down
	}
}

// enterStart reconciles the persisted trigger flag into the session. This is
// the only place the store is read; a failing store degrades to "never
// triggered" because the device has no one to report to and must keep
// operating.
func (c *Controller) enterStart(s *domain.Session) {
	value, err := c.store.ReadFlag(repo.AddressAlarmTriggered)
	if err != nil {
		logger.Warnf(c.ctx, "Failed to read trigger flag, assuming not triggered: %v", err)

		value = false
	}

	s.Triggered = value

	c.setColor(domain.ColorArmedPending)
	logger.InfoKV(c.ctx, "Alarm controller starting", "was_triggered", value)
}

// enterWaitButtonPress darkens the indicator; this is the idle state the
// machine sits in most of the time.
func (c *Controller) enterWaitButtonPress(_ *domain.Session) {
	c.setColor(domain.ColorOff)
}

// enterWaitKickstandDown shows the put-down-the-kickstand color.
func (c *Controller) enterWaitKickstandDown(_ *domain.Session) {
	c.setColor(domain.ColorArmedPending)
}

// enterWaitButtonRelease shows the armed color while the rider lets go.
func (c *Controller) enterWaitButtonRelease(_ *domain.Session) {
	c.setColor(domain.ColorArmed)
}

// enterArmed darkens the indicator to save the battery and makes sure the
// actuator is quiet.
func (c *Controller) enterArmed(_ *domain.Session) {
	c.setColor(domain.ColorOff)
	c.board.SetOutput(hardware.PinAlarm, false)

	logger.Info(c.ctx, "Alarm armed")
}

// enterTriggered sounds the actuator and persists the trigger so a power
// cut cannot silence the alarm.
func (c *Controller) enterTriggered(s *domain.Session) {
	c.board.SetOutput(hardware.PinAlarm, true)
	c.persistTriggered(true)
	s.Triggered = true

	// Indicator off: no point draining the battery while sounding.
	c.setColor(domain.ColorOff)

	logger.Warn(c.ctx, "Alarm triggered")
}

// loopTriggered beeps the actuator on a fixed period, timed from the moment
// the state was entered.
func (c *Controller) loopTriggered(s *domain.Session) {
	on := (s.Elapsed(c.board.Now())/c.beepMillis)%2 == 0
	c.board.SetOutput(hardware.PinAlarm, on)
}

// enterWaitKickstandUp shows the rider the silencing gesture is registered.
func (c *Controller) enterWaitKickstandUp(_ *domain.Session) {
	c.setColor(domain.ColorArmedPending)
}

// exitWaitKickstandUp silences the actuator and clears the persisted flag.
// Leaving toward triggered re-sets both immediately.
func (c *Controller) exitWaitKickstandUp(s *domain.Session) {
	c.board.SetOutput(hardware.PinAlarm, false)
	c.persistTriggered(false)
	s.Triggered = false

	logger.Info(c.ctx, "Alarm silenced")
}

// persistTriggered mirrors the trigger flag into the store. The store
// applies update-if-changed semantics; a write failure is logged and the
// controller keeps operating on its in-memory copy.
func (c *Controller) persistTriggered(value bool) {
	if err := c.store.WriteFlag(repo.AddressAlarmTriggered, value); err != nil {
		logger.Errorf(c.ctx, "Failed to persist trigger flag: %v", err)
	}
}

// setColor drives the status indicator.
func (c *Controller) setColor(color domain.Color) {
	c.board.SetColor(color.R, color.G, color.B)
}
