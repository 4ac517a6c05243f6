package engine

import "github.com/ivlev/dofcapture/internal/camera"

// SimCamera is an in-process camera tools connector. It tracks the camera
// offset from the pose the multishot session started at.
type SimCamera struct {
	Enabled      bool
	PathPlaying  bool
	Disconnected bool

	active bool
	pos    [3]float64
	moves  int
}

// NewSimCamera returns an enabled, connected camera.
func NewSimCamera() *SimCamera {
	return &SimCamera{Enabled: true}
}

func (s *SimCamera) Connected() bool { return !s.Disconnected }

func (s *SimCamera) StartSession(kind camera.SessionKind) camera.StartResult {
	switch {
	case !s.Enabled:
		return camera.StartCameraNotEnabled
	case s.PathPlaying:
		return camera.StartCameraPathPlaying
	case s.active:
		return camera.StartSessionAlreadyActive
	case kind != camera.MultiShot:
		return camera.StartFeatureUnavailable
	}
	s.active = true
	s.pos = [3]float64{}
	return camera.StartOK
}

func (s *SimCamera) EndSession() {
	s.active = false
	s.pos = [3]float64{}
}

func (s *SimCamera) MoveMultishot(dx, dy, dz float64, relativeToStart bool) {
	if !s.active {
		return
	}
	s.moves++
	if relativeToStart {
		s.pos = [3]float64{dx, dy, dz}
		return
	}
	s.pos[0] += dx
	s.pos[1] += dy
	s.pos[2] += dz
}

// Position is the camera offset from the session start pose.
func (s *SimCamera) Position() [3]float64 { return s.pos }

// Active reports whether a multishot session is running.
func (s *SimCamera) Active() bool { return s.active }

// Moves is the number of camera moves issued during sessions.
func (s *SimCamera) Moves() int { return s.moves }
