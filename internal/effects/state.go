package effects

import "sync"

// State is the snapshot shared between the render loop and control calls.
// Every method takes the lock for the duration of a single operation.
type State struct {
	mu   sync.Mutex
	snap Snapshot
}

// Empty reports whether no snapshot has been captured.
func (s *State) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.IsEmpty()
}

// Capture obtains a snapshot from rt.
func (s *State) Capture(rt Runtime) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Capture(rt)
}

// CaptureIfEmpty obtains a snapshot only when none is held. It reports
// whether a capture happened.
func (s *State) CaptureIfEmpty(rt Runtime) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snap.IsEmpty() {
		return false
	}
	s.snap.Capture(rt)
	return true
}

// Replace swaps the held snapshot for a freshly captured one, which may be
// empty. It reports whether the new snapshot is empty.
func (s *State) Replace(rt Runtime) bool {
	var fresh Snapshot
	fresh.Capture(rt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = fresh
	return s.snap.IsEmpty()
}

// Reset discards the snapshot.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Snapshot{}
}

// SetInt writes an int uniform of EffectName.
func (s *State) SetInt(rt Runtime, name string, v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.SetInt(rt, EffectName, name, v)
}

// SetFloat writes a float uniform of EffectName.
func (s *State) SetFloat(rt Runtime, name string, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.SetFloat(rt, EffectName, name, v)
}

// SetBool writes a bool uniform of EffectName.
func (s *State) SetBool(rt Runtime, name string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.SetBool(rt, EffectName, name, v)
}

// SetFloat2 writes a float2 uniform of EffectName.
func (s *State) SetFloat2(rt Runtime, name string, v1, v2 float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.SetFloat2(rt, EffectName, name, v1, v2)
}

// Write writes the full uniform set, capturing a snapshot first if none is
// held.
func (s *State) Write(rt Runtime, u Uniforms) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.IsEmpty() {
		s.snap.Capture(rt)
	}

	snap := &s.snap
	snap.SetInt(rt, EffectName, VarSessionState, int(u.SessionState))
	snap.SetFloat(rt, EffectName, VarFocusDelta, u.FocusDelta)
	snap.SetBool(rt, EffectName, VarBlendFrame, u.BlendFrame)
	snap.SetFloat(rt, EffectName, VarBlendFactor, u.BlendFactor)
	snap.SetFloat2(rt, EffectName, VarAlignmentDelta, u.AlignmentDelta[0], u.AlignmentDelta[1])
	snap.SetFloat(rt, EffectName, VarHighlightBoost, u.HighlightBoost)
	snap.SetFloat(rt, EffectName, VarHighlightGammaFactor, u.HighlightGammaFactor)
	snap.SetBool(rt, EffectName, VarShowMagnifier, u.ShowMagnifier)
	snap.SetFloat(rt, EffectName, VarMagnificationFactor, u.MagnificationFactor)
	snap.SetFloat2(rt, EffectName, VarMagnificationArea, u.MagnificationArea[0], u.MagnificationArea[1])
	snap.SetFloat2(rt, EffectName, VarMagnificationLocationCenter, u.MagnificationLocationCenter[0], u.MagnificationLocationCenter[1])
}
