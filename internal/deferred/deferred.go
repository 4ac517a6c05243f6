// Package deferred implements a single-slot action delayed by a number of
// presented frames.
package deferred

import "fmt"

// Action identifies work the controller runs once its countdown expires.
type Action int

const (
	None Action = iota
	// EnterSetup moves a freshly started session into setup and issues the
	// first multishot camera move.
	EnterSetup
)

func (a Action) String() string {
	switch a {
	case None:
		return "none"
	case EnterSetup:
		return "enter-setup"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Slot holds at most one pending action. Scheduling replaces whatever was
// pending.
type Slot struct {
	action          Action
	framesRemaining int
}

// Schedule arms the slot to run action after frames presented frames.
func (s *Slot) Schedule(action Action, frames int) {
	s.action = action
	s.framesRemaining = frames
}

// Tick is called once per frame. When the countdown has expired it returns
// the pending action (if any) and clears it, otherwise it decrements the
// countdown and returns None.
func (s *Slot) Tick() Action {
	if s.framesRemaining > 0 {
		s.framesRemaining--
		return None
	}
	s.framesRemaining = 0
	action := s.action
	s.action = None
	return action
}

// Pending reports the pending action and its remaining countdown.
func (s *Slot) Pending() (Action, int) {
	return s.action, s.framesRemaining
}

// Clear drops any pending action.
func (s *Slot) Clear() {
	s.action = None
	s.framesRemaining = 0
}
