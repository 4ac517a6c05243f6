package dof

import (
	"testing"

	"github.com/ivlev/dofcapture/internal/camera"
	"github.com/ivlev/dofcapture/internal/config"
	"github.com/ivlev/dofcapture/internal/director"
	"github.com/ivlev/dofcapture/internal/effects"
)

type move struct {
	dx, dy, dz float64
	relative   bool
}

type fakeCamera struct {
	connected   bool
	startResult camera.StartResult
	starts      int
	ends        int
	kinds       []camera.SessionKind
	moves       []move
}

func (f *fakeCamera) Connected() bool { return f.connected }

func (f *fakeCamera) StartSession(kind camera.SessionKind) camera.StartResult {
	f.starts++
	f.kinds = append(f.kinds, kind)
	return f.startResult
}

func (f *fakeCamera) EndSession() { f.ends++ }

func (f *fakeCamera) MoveMultishot(dx, dy, dz float64, relative bool) {
	f.moves = append(f.moves, move{dx, dy, dz, relative})
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(message string) {
	r.messages = append(r.messages, message)
}

func testConfig() config.DepthOfField {
	cfg := config.Defaults()
	cfg.MaxBokehSize = 0.4
	cfg.Quality = 2
	cfg.NumberOfPointsInnermostRing = 3
	cfg.NumberOfFramesToWaitPerFrame = 2
	cfg.HighlightBoostFactor = 0.8
	cfg.SphericalAberrationFactor = 0.5
	cfg.SphericalAberrationDimFactor = 0.4
	return cfg
}

func newTestController(cfg config.DepthOfField) (*Controller, *fakeCamera, *effects.MemoryRuntime, *recordingNotifier) {
	cam := &fakeCamera{connected: true}
	notes := &recordingNotifier{}
	c := New(cam,
		WithConfig(cfg),
		WithNotifier(notes),
		WithDirector(director.NewDirectorWithSeed(1)))
	return c, cam, effects.NewDepthOfFieldRuntime(), notes
}

// frame runs one before/after hook pair.
func frame(c *Controller, rt effects.Runtime) {
	c.BeforeEffects(rt)
	c.AfterEffects(rt)
}

// toSetup starts a session and runs frames until it reaches Setup.
func toSetup(t *testing.T, c *Controller, rt effects.Runtime) {
	t.Helper()
	c.StartSession(rt)
	for i := 0; i <= setupDelayFrames; i++ {
		frame(c, rt)
	}
	if c.State() != SessionSetup {
		t.Fatalf("state = %v, want setup", c.State())
	}
}
