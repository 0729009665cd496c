// Package input turns host key events into the snapshots consumed by the simulation.
//
// The simulation never reads a live key map: once per substep the host asks an
// input Source for a State value. A Keyboard is updated from any goroutine
// (key press / release handlers); a Script replays timed windows of actions.
package input

import "strings"

// Action is a named input event
type Action string

const (
	ActionForward  Action = "forward"
	ActionBackward Action = "backward"
	ActionLeft     Action = "left"
	ActionRight    Action = "right"
)

// Actions lists every known action, in bit order
var Actions = []Action{ActionForward, ActionBackward, ActionLeft, ActionRight}

// ParseAction returns the action named s (case insensitive)
func ParseAction(s string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Actions {
		if a == known {
			return a, true
		}
	}

	return "", false
}

// Steering is the per-axis policy feeding the yaw rate of the chassis
type Steering int

const (
	// SteerNone commands a zero yaw rate
	SteerNone Steering = iota
	// SteerLeft commands a fixed positive yaw rate
	SteerLeft
	// SteerRight commands a fixed negative yaw rate
	SteerRight
)

func (s Steering) String() string {
	switch s {
	case SteerLeft:
		return "left"
	case SteerRight:
		return "right"
	default:
		return "none"
	}
}

// State is an immutable snapshot of the input flags.
// The zero value means nothing is pressed.
type State struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Steering resolves the turn flags, both or neither pressed means no turn
func (s State) Steering() Steering {
	switch {
	case s.Left && !s.Right:
		return SteerLeft
	case s.Right && !s.Left:
		return SteerRight
	default:
		return SteerNone
	}
}

// Thrust returns +1 for forward, -1 for backward, 0 for none or both
func (s State) Thrust() float64 {
	var thrust float64
	if s.Forward {
		thrust++
	}
	if s.Backward {
		thrust--
	}

	return thrust
}

// With returns a copy of s with the action set to pressed
func (s State) With(action Action, pressed bool) State {
	switch action {
	case ActionForward:
		s.Forward = pressed
	case ActionBackward:
		s.Backward = pressed
	case ActionLeft:
		s.Left = pressed
	case ActionRight:
		s.Right = pressed
	}

	return s
}

// Source produces the snapshot used by the substep starting at time t (seconds)
type Source interface {
	Snapshot(t float64) State
}

// None is a Source where nothing is ever pressed
type None struct{}

func (None) Snapshot(float64) State {
	return State{}
}

// Constant is a Source that always returns the same State
type Constant State

func (c Constant) Snapshot(float64) State {
	return State(c)
}

func bit(action Action) uint32 {
	for i, a := range Actions {
		if a == action {
			return 1 << uint(i)
		}
	}

	return 0
}

func stateFromBits(bits uint32) State {
	return State{
		Forward:  bits&bit(ActionForward) != 0,
		Backward: bits&bit(ActionBackward) != 0,
		Left:     bits&bit(ActionLeft) != 0,
		Right:    bits&bit(ActionRight) != 0,
	}
}
