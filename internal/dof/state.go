package dof

import (
	"fmt"
	"slices"
)

// SessionState is the lifecycle state of a capture session.
type SessionState int

const (
	SessionOff SessionState = iota
	SessionStart
	SessionSetup
	SessionRendering
	SessionDone
	// SessionCancelling is consulted by MigrateState but never entered.
	SessionCancelling
)

func (s SessionState) String() string {
	switch s {
	case SessionOff:
		return "off"
	case SessionStart:
		return "start"
	case SessionSetup:
		return "setup"
	case SessionRendering:
		return "rendering"
	case SessionDone:
		return "done"
	case SessionCancelling:
		return "cancelling"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// ShaderValue is the value written to the shader's SessionState uniform.
func (s SessionState) ShaderValue() int {
	switch s {
	case SessionOff:
		return 0
	case SessionStart:
		return 1
	case SessionSetup:
		return 2
	case SessionRendering:
		return 3
	case SessionDone:
		return 4
	case SessionCancelling:
		return 5
	default:
		return 0
	}
}

// sessionTransitions lists the states each session state may move to.
// EndSession bypasses the table: every state may be reset to Off.
var sessionTransitions = map[SessionState][]SessionState{
	SessionOff:        {SessionStart},
	SessionStart:      {SessionSetup},
	SessionSetup:      {SessionRendering},
	SessionRendering:  {SessionDone},
	SessionDone:       {},
	SessionCancelling: {},
}

func (s SessionState) canMoveTo(to SessionState) bool {
	return slices.Contains(sessionTransitions[s], to)
}

// FrameState is the progress of a single frame within a render pass.
type FrameState int

const (
	FrameOff FrameState = iota
	FrameStart
	FrameWait
	FrameBlending
)

func (f FrameState) String() string {
	switch f {
	case FrameOff:
		return "off"
	case FrameStart:
		return "start"
	case FrameWait:
		return "frame-wait"
	case FrameBlending:
		return "frame-blending"
	default:
		return fmt.Sprintf("FrameState(%d)", int(f))
	}
}

// frameTransitions lists the states each frame state may move to. A blended
// frame goes straight to waiting on the next step.
var frameTransitions = map[FrameState][]FrameState{
	FrameOff:      {FrameStart},
	FrameStart:    {FrameWait},
	FrameWait:     {FrameBlending},
	FrameBlending: {FrameWait, FrameOff},
}

func (f FrameState) canMoveTo(to FrameState) bool {
	return slices.Contains(frameTransitions[f], to)
}
