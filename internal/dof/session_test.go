package dof

import (
	"math"
	"strings"
	"testing"

	"github.com/ivlev/dofcapture/internal/camera"
	"github.com/ivlev/dofcapture/internal/deferred"
	"github.com/ivlev/dofcapture/internal/effects"
)

func TestStartSession_Disconnected(t *testing.T) {
	c, cam, rt, _ := newTestController(testConfig())
	cam.connected = false

	c.StartSession(rt)
	frame(c, rt)

	if c.State() != SessionOff {
		t.Errorf("state = %v, want off", c.State())
	}
	if cam.starts != 0 || len(cam.moves) != 0 {
		t.Errorf("camera touched: starts=%d moves=%d", cam.starts, len(cam.moves))
	}
	if a, _ := c.PendingAction(); a != deferred.None {
		t.Errorf("pending action = %v, want none", a)
	}
}

func TestStartSession_CollaboratorFailures(t *testing.T) {
	tests := []struct {
		result camera.StartResult
		reason string
	}{
		{camera.StartCameraNotEnabled, "camera not enabled"},
		{camera.StartCameraPathPlaying, "camera path playing"},
		{camera.StartSessionAlreadyActive, "session already active"},
		{camera.StartFeatureUnavailable, "not available"},
	}
	for _, tt := range tests {
		t.Run(tt.result.String(), func(t *testing.T) {
			c, cam, rt, notes := newTestController(testConfig())
			cam.startResult = tt.result

			c.StartSession(rt)

			if c.State() != SessionOff {
				t.Errorf("state = %v, want off", c.State())
			}
			if len(notes.messages) != 1 {
				t.Fatalf("expected 1 notification, got %d", len(notes.messages))
			}
			msg := notes.messages[0]
			if !strings.HasPrefix(msg, "Depth-of-field session couldn't be started: ") || !strings.Contains(msg, tt.reason) {
				t.Errorf("unexpected notification %q", msg)
			}
			if len(c.CameraSteps()) != 0 {
				t.Error("steps should not be generated on failure")
			}
		})
	}
}

func TestStartSession_EntersSetupAfterDelay(t *testing.T) {
	cfg := testConfig()
	c, cam, rt, _ := newTestController(cfg)

	c.StartSession(rt)
	if c.State() != SessionStart {
		t.Fatalf("state = %v, want start", c.State())
	}
	if len(cam.kinds) != 1 || cam.kinds[0] != camera.MultiShot {
		t.Errorf("session kinds = %v, want [multishot]", cam.kinds)
	}
	if v, _ := rt.Int(effects.EffectName, effects.VarSessionState); v != 1 {
		t.Errorf("SessionState uniform = %d, want 1", v)
	}
	if a, n := c.PendingAction(); a != deferred.EnterSetup || n != setupDelayFrames {
		t.Errorf("pending = (%v, %d), want (enter-setup, %d)", a, n, setupDelayFrames)
	}
	wantBoost := cfg.HighlightBoostFactor * (1 - cfg.SphericalAberrationFactor)
	if math.Abs(c.HighlightBoostForFrame()-wantBoost) > 1e-12 {
		t.Errorf("highlight boost = %f, want %f", c.HighlightBoostForFrame(), wantBoost)
	}
	if got := len(c.CameraSteps()); got != 9 {
		t.Errorf("expected 9 steps, got %d", got)
	}

	for i := 0; i < setupDelayFrames; i++ {
		frame(c, rt)
		if c.State() != SessionStart || len(cam.moves) != 0 {
			t.Fatalf("frame %d: state=%v moves=%d, camera must stay put", i, c.State(), len(cam.moves))
		}
	}

	frame(c, rt)
	if c.State() != SessionSetup {
		t.Fatalf("state = %v, want setup", c.State())
	}
	if len(cam.moves) != 1 || cam.moves[0] != (move{cfg.MaxBokehSize, 0, 0, true}) {
		t.Errorf("moves = %+v, want one relative setup move", cam.moves)
	}
	if v, _ := rt.Int(effects.EffectName, effects.VarSessionState); v != 2 {
		t.Errorf("SessionState uniform = %d, want 2", v)
	}
}

func TestStartSession_IgnoredWhenRunning(t *testing.T) {
	c, cam, rt, _ := newTestController(testConfig())
	toSetup(t, c, rt)

	c.StartSession(rt)
	if c.State() != SessionSetup || cam.starts != 1 {
		t.Errorf("state=%v starts=%d, second start should be ignored", c.State(), cam.starts)
	}
}

func TestStartRender_OutsideSetupIsNoop(t *testing.T) {
	c, _, rt, _ := newTestController(testConfig())

	c.StartRender(rt)
	if c.State() != SessionOff || c.FrameState() != FrameOff || c.FramesToRender() != 0 {
		t.Errorf("off: state=%v frame=%v frames=%d", c.State(), c.FrameState(), c.FramesToRender())
	}

	c.StartSession(rt)
	c.StartRender(rt)
	if c.State() != SessionStart || c.FrameState() != FrameOff || c.FramesToRender() != 0 || c.CurrentFrame() != 0 {
		t.Errorf("start: state=%v frame=%v frames=%d", c.State(), c.FrameState(), c.FramesToRender())
	}
}

func TestStartRender_Disconnected(t *testing.T) {
	c, cam, rt, _ := newTestController(testConfig())
	toSetup(t, c, rt)
	cam.connected = false

	c.StartRender(rt)
	if c.State() != SessionSetup {
		t.Errorf("state = %v, want setup", c.State())
	}
}

func TestFullLifecycle(t *testing.T) {
	cfg := testConfig()
	wait := cfg.NumberOfFramesToWaitPerFrame
	c, cam, rt, _ := newTestController(cfg)
	toSetup(t, c, rt)

	steps := c.CameraSteps()
	n := len(steps)
	movesBefore := len(cam.moves)

	c.StartRender(rt)
	if c.State() != SessionRendering || c.FrameState() != FrameStart {
		t.Fatalf("state=%v frame=%v after StartRender", c.State(), c.FrameState())
	}
	if c.FramesToRender() != n || c.CurrentFrame() != 0 || c.BlendFactor() != 0 {
		t.Fatalf("frames=%d current=%d blend=%f", c.FramesToRender(), c.CurrentFrame(), c.BlendFactor())
	}

	pairs, blends := 0, 0
	for c.State() == SessionRendering {
		if pairs > 10*n*(wait+2) {
			t.Fatal("render pass did not finish")
		}
		pairs++
		c.BeforeEffects(rt)
		if c.BlendFrame() {
			want := 1 / float64(blends+2)
			if math.Abs(c.BlendFactor()-want) > 1e-12 {
				t.Errorf("blend %d: factor %f, want %f", blends, c.BlendFactor(), want)
			}
			if v, _ := rt.Bool(effects.EffectName, effects.VarBlendFrame); !v {
				t.Errorf("blend %d: BlendFrame uniform not set before effects", blends)
			}
			x, y := c.AlignmentDelta()
			if x != steps[blends].XAlignmentDelta || y != steps[blends].YAlignmentDelta {
				t.Errorf("blend %d: alignment (%f, %f) does not match step", blends, x, y)
			}
			wantBoost := cfg.HighlightBoostFactor * steps[blends].BusyBokehFactor
			if math.Abs(c.HighlightBoostForFrame()-wantBoost) > 1e-12 {
				t.Errorf("blend %d: boost %f, want %f", blends, c.HighlightBoostForFrame(), wantBoost)
			}
			blends++
		}
		c.AfterEffects(rt)
		if c.BlendFrame() {
			t.Fatal("BlendFrame must be cleared after effects")
		}
	}

	if c.State() != SessionDone || c.FrameState() != FrameOff {
		t.Fatalf("state=%v frame=%v, want done/off", c.State(), c.FrameState())
	}
	// The first pair performs the initial step setup.
	if want := n*(1+wait) + 1; pairs != want {
		t.Errorf("expected %d hook pairs, got %d", want, pairs)
	}
	if blends != n {
		t.Errorf("expected %d blended frames, got %d", n, blends)
	}

	moves := cam.moves[movesBefore:]
	if len(moves) != n {
		t.Fatalf("expected %d step moves, got %d", n, len(moves))
	}
	for i, m := range moves {
		if m != (move{steps[i].XDelta, steps[i].YDelta, 0, true}) {
			t.Errorf("move %d = %+v, want step offsets", i, m)
		}
	}
	if c.Progress() != 1 || c.ProgressLabel() != "9/9" {
		t.Errorf("progress = %f %q", c.Progress(), c.ProgressLabel())
	}

	frame(c, rt)
	if v, _ := rt.Int(effects.EffectName, effects.VarSessionState); v != 4 {
		t.Errorf("SessionState uniform = %d, want 4", v)
	}
}

func TestZeroWaitFrames(t *testing.T) {
	cfg := testConfig()
	cfg.NumberOfFramesToWaitPerFrame = 0
	c, _, rt, _ := newTestController(cfg)
	toSetup(t, c, rt)
	n := len(c.CameraSteps())

	c.StartRender(rt)
	pairs := 0
	for c.State() == SessionRendering && pairs < 1000 {
		frame(c, rt)
		pairs++
	}
	if pairs != n+1 {
		t.Errorf("expected %d pairs, got %d", n+1, pairs)
	}
}

func TestPauseFreezesRendering(t *testing.T) {
	c, _, rt, _ := newTestController(testConfig())
	toSetup(t, c, rt)
	c.StartRender(rt)

	for c.FrameState() != FrameBlending {
		c.BeforeEffects(rt)
		if c.FrameState() != FrameBlending {
			c.AfterEffects(rt)
		}
	}
	c.SetRenderPaused(true)
	c.AfterEffects(rt)

	for i := 0; i < 10; i++ {
		frame(c, rt)
	}
	if c.CurrentFrame() != 0 || c.FrameState() != FrameBlending || c.State() != SessionRendering {
		t.Fatalf("paused: current=%d frame=%v state=%v", c.CurrentFrame(), c.FrameState(), c.State())
	}
	if c.BlendFrame() {
		t.Error("paused pass must not keep blending")
	}

	c.SetRenderPaused(false)
	c.AfterEffects(rt)
	if c.CurrentFrame() != 1 || c.FrameState() != FrameWait {
		t.Errorf("resumed: current=%d frame=%v", c.CurrentFrame(), c.FrameState())
	}
}

func TestEndSession_Idempotent(t *testing.T) {
	c, cam, rt, _ := newTestController(testConfig())
	toSetup(t, c, rt)
	c.StartRender(rt)
	frame(c, rt)
	c.SetRenderPaused(true)

	c.EndSession(rt)
	c.EndSession(rt)

	if c.State() != SessionOff || c.FrameState() != FrameOff || c.RenderPaused() || c.BlendFrame() {
		t.Errorf("state=%v frame=%v paused=%v", c.State(), c.FrameState(), c.RenderPaused())
	}
	if cam.ends != 2 {
		t.Errorf("camera EndSession calls = %d, want 2", cam.ends)
	}
	if v, _ := rt.Int(effects.EffectName, effects.VarSessionState); v != 0 {
		t.Errorf("SessionState uniform = %d, want 0", v)
	}

	cam.connected = false
	c.EndSession(rt)
	if cam.ends != 2 {
		t.Error("EndSession must not call disconnected camera tools")
	}
}

func TestEndSession_ClearsPendingSetup(t *testing.T) {
	c, cam, rt, _ := newTestController(testConfig())
	c.StartSession(rt)
	c.EndSession(rt)

	for i := 0; i < 5; i++ {
		frame(c, rt)
	}
	if c.State() != SessionOff || len(cam.moves) != 0 {
		t.Errorf("state=%v moves=%d, ended session must not enter setup", c.State(), len(cam.moves))
	}
}

func TestHooks_NilRuntime(t *testing.T) {
	c, cam, _, _ := newTestController(testConfig())
	c.StartSession(nil)
	c.BeforeEffects(nil)
	c.AfterEffects(nil)
	c.StartRender(nil)
	c.MigrateState(nil)
	if c.State() != SessionOff || cam.starts != 0 {
		t.Error("nil runtime should make every call a no-op")
	}
}

func TestBeforeEffects_WritesEveryFrame(t *testing.T) {
	c, _, rt, _ := newTestController(testConfig())
	frame(c, rt)
	first := rt.Writes()
	if first == 0 {
		t.Fatal("BeforeEffects should write uniforms even when idle")
	}

	// An effect reload drops all values; the next frame restores them once
	// the snapshot has been migrated.
	rt.Reload()
	c.MigrateState(rt)
	frame(c, rt)
	if v, ok := rt.Float(effects.EffectName, effects.VarHighlightGammaFactor); !ok || math.Abs(float64(v[0])-2.2) > 1e-6 {
		t.Errorf("HighlightGammaFactor = %v, %v", v, ok)
	}
}
