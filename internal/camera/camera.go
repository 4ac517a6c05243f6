// Package camera describes the camera-tools connection the depth-of-field
// controller drives.
package camera

import (
	"errors"
	"fmt"
)

// SessionKind is the screenshot session type requested from the tools.
type SessionKind uint8

const (
	HorizontalPanorama SessionKind = iota
	Lightfield
	MultiShot
)

// StartResult is the outcome of a session start request.
type StartResult int

const (
	StartOK StartResult = iota
	StartCameraNotEnabled
	StartCameraPathPlaying
	StartSessionAlreadyActive
	StartFeatureUnavailable
)

var (
	ErrCameraNotEnabled     = errors.New("camera not enabled")
	ErrCameraPathPlaying    = errors.New("camera path playing")
	ErrSessionAlreadyActive = errors.New("session already active")
	ErrFeatureUnavailable   = errors.New("camera feature not available in the tools")
	ErrUnknown              = errors.New("unknown session start error")
)

// Err maps a failed result to its error; StartOK yields nil.
func (r StartResult) Err() error {
	switch r {
	case StartOK:
		return nil
	case StartCameraNotEnabled:
		return ErrCameraNotEnabled
	case StartCameraPathPlaying:
		return ErrCameraPathPlaying
	case StartSessionAlreadyActive:
		return ErrSessionAlreadyActive
	case StartFeatureUnavailable:
		return ErrFeatureUnavailable
	default:
		return ErrUnknown
	}
}

func (r StartResult) String() string {
	switch r {
	case StartOK:
		return "ok"
	case StartCameraNotEnabled:
		return "camera-not-enabled"
	case StartCameraPathPlaying:
		return "camera-path-playing"
	case StartSessionAlreadyActive:
		return "session-already-active"
	case StartFeatureUnavailable:
		return "feature-unavailable"
	default:
		return fmt.Sprintf("StartResult(%d)", int(r))
	}
}

// Connector is the camera tools as seen from the controller. Calls never
// block on the render loop's behalf; a stalled tool simply makes no progress.
type Connector interface {
	Connected() bool
	StartSession(kind SessionKind) StartResult
	EndSession()
	// MoveMultishot moves the camera by (dx, dy, dz), relative to the
	// session's start pose when relativeToStart is set.
	MoveMultishot(dx, dy, dz float64, relativeToStart bool)
}
