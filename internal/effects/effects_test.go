package effects

import (
	"sync"
	"testing"
)

func TestSnapshotCaptureAndWrite(t *testing.T) {
	rt := NewDepthOfFieldRuntime()
	var snap Snapshot
	if !snap.IsEmpty() {
		t.Fatal("zero snapshot should be empty")
	}

	snap.Capture(rt)
	if snap.IsEmpty() {
		t.Fatal("snapshot should not be empty after capture")
	}

	if !snap.SetFloat(rt, EffectName, VarFocusDelta, 0.25) {
		t.Fatal("SetFloat on known variable returned false")
	}
	if v, ok := rt.Float(EffectName, VarFocusDelta); !ok || v[0] != 0.25 {
		t.Errorf("FocusDelta = %v, want 0.25", v)
	}

	if snap.SetInt(rt, EffectName, "Unknown", 1) {
		t.Error("SetInt on unknown variable should return false")
	}
	if snap.SetBool(rt, "Other.fx", VarBlendFrame, true) {
		t.Error("SetBool on unknown effect should return false")
	}
}

func TestSnapshotOfUnloadedRuntimeIsEmpty(t *testing.T) {
	rt := NewDepthOfFieldRuntime()
	rt.SetEffectsEnabled(false)

	var snap Snapshot
	snap.Capture(rt)
	if !snap.IsEmpty() {
		t.Error("snapshot of a runtime without effects should be empty")
	}
}

func TestStaleHandlesAreDropped(t *testing.T) {
	rt := NewDepthOfFieldRuntime()
	var snap Snapshot
	snap.Capture(rt)

	rt.Reload()
	snap.SetBool(rt, EffectName, VarBlendFrame, true)
	if _, ok := rt.Bool(EffectName, VarBlendFrame); ok {
		t.Error("write through a stale handle should be dropped")
	}

	snap.Capture(rt)
	snap.SetBool(rt, EffectName, VarBlendFrame, true)
	if v, ok := rt.Bool(EffectName, VarBlendFrame); !ok || !v {
		t.Error("write after recapture should land")
	}
}

func TestStateWriteCapturesAndWritesAll(t *testing.T) {
	rt := NewDepthOfFieldRuntime()
	var s State

	s.Write(rt, Uniforms{
		SessionState:                3,
		FocusDelta:                  0.5,
		BlendFrame:                  true,
		BlendFactor:                 0.25,
		AlignmentDelta:              [2]float64{0.1, -0.1},
		HighlightBoost:              0.9,
		HighlightGammaFactor:        2.2,
		ShowMagnifier:               true,
		MagnificationFactor:         3,
		MagnificationArea:           [2]float64{0.2, 0.3},
		MagnificationLocationCenter: [2]float64{0.5, 0.5},
	})

	if s.Empty() {
		t.Fatal("Write should capture a snapshot")
	}
	if got := rt.Writes(); got != 11 {
		t.Errorf("Expected 11 uniform writes, got %d", got)
	}
	if v, _ := rt.Int(EffectName, VarSessionState); v != 3 {
		t.Errorf("SessionState = %d, want 3", v)
	}
	if v, _ := rt.Float(EffectName, VarAlignmentDelta); len(v) != 2 || v[1] != -0.1 {
		t.Errorf("AlignmentDelta = %v", v)
	}
}

func TestStateCaptureIfEmpty(t *testing.T) {
	rt := NewDepthOfFieldRuntime()
	var s State
	if !s.CaptureIfEmpty(rt) {
		t.Error("first CaptureIfEmpty should capture")
	}
	if s.CaptureIfEmpty(rt) {
		t.Error("second CaptureIfEmpty should not capture")
	}
	s.Reset()
	if !s.Empty() {
		t.Error("Reset should empty the state")
	}
}

func TestStateReplace(t *testing.T) {
	rt := NewDepthOfFieldRuntime()
	var s State
	s.Capture(rt)

	rt.Reload()
	if empty := s.Replace(rt); empty {
		t.Fatal("replacement of a loaded runtime should not be empty")
	}
	s.SetFloat(rt, VarBlendFactor, 0.5)
	if v, ok := rt.Float(EffectName, VarBlendFactor); !ok || v[0] != 0.5 {
		t.Error("write after Replace should use new handles")
	}

	rt.SetEffectsEnabled(false)
	if empty := s.Replace(rt); !empty {
		t.Error("replacement of an unloaded runtime should be empty")
	}
}

func TestStateConcurrentAccess(t *testing.T) {
	rt := NewDepthOfFieldRuntime()
	var s State
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Write(rt, Uniforms{BlendFactor: float64(j)})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Replace(rt)
				s.SetInt(rt, VarSessionState, j)
			}
		}()
	}
	wg.Wait()
	if s.Empty() {
		t.Error("state should hold a snapshot")
	}
}
