package dof

import (
	"testing"

	"github.com/ivlev/dofcapture/internal/config"
)

func TestOverlayQueries(t *testing.T) {
	c, _, rt, _ := newTestController(testConfig())
	if c.Progress() != 0 || c.ProgressLabel() != "0/0" || c.ShowProgressOverlay() {
		t.Error("idle controller should report no progress")
	}

	toSetup(t, c, rt)
	if c.ShowProgressOverlay() {
		t.Error("overlay only shows while rendering")
	}
	c.StartRender(rt)
	if !c.ShowProgressOverlay() {
		t.Error("overlay should show while rendering")
	}
	c.SetShowProgressBarAsOverlay(false)
	if c.ShowProgressOverlay() {
		t.Error("overlay toggle ignored")
	}

	for c.CurrentFrame() < 3 {
		frame(c, rt)
	}
	if c.ProgressLabel() != "3/9" {
		t.Errorf("label = %q, want 3/9", c.ProgressLabel())
	}
}

func TestCameraStepsIsCopy(t *testing.T) {
	c, _, rt, _ := newTestController(testConfig())
	c.StartSession(rt)

	steps := c.CameraSteps()
	steps[0].XDelta = 99
	if c.CameraSteps()[0].XDelta == 99 {
		t.Error("CameraSteps must return a copy")
	}
}

func TestPreview(t *testing.T) {
	c, _, rt, _ := newTestController(testConfig())
	c.StartSession(rt)

	img := c.Preview(64)
	if img.Bounds().Dx() != 64 {
		t.Fatalf("preview width %d, want 64", img.Bounds().Dx())
	}
	if r, _, _, _ := img.At(32, 32).RGBA(); r == 0 {
		t.Error("preview centre dot missing")
	}
}

func TestApplyConfigRoundTrip(t *testing.T) {
	cfg := config.Defaults()
	cfg.MaxBokehSize = 0.33
	cfg.RotationAngle = 0.125
	cfg.BlurType = 1
	cfg.NumberOfVertices = 7
	cfg.ShowProgressBarAsOverlay = false

	c := New(&fakeCamera{}, WithConfig(cfg))
	if got := c.Config(); got != cfg {
		t.Errorf("Config() = %+v, want %+v", got, cfg)
	}
}
