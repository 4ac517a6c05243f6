package effects

import "sync"

// MemoryRuntime is an in-process Runtime. It keeps the last value written to
// every uniform and hands out fresh handles each time effects are reloaded.
type MemoryRuntime struct {
	mu       sync.Mutex
	next     Handle
	effects  map[string][]string
	handles  map[string]map[string]Handle
	ints     map[Handle][]int32
	floats   map[Handle][]float32
	bools    map[Handle]bool
	writes   int
	disabled bool
}

// NewMemoryRuntime creates a runtime exposing the given effects and their
// uniform names.
func NewMemoryRuntime(effects map[string][]string) *MemoryRuntime {
	rt := &MemoryRuntime{effects: effects}
	rt.Reload()
	return rt
}

// NewDepthOfFieldRuntime creates a runtime exposing the depth-of-field
// effect with all its uniforms.
func NewDepthOfFieldRuntime() *MemoryRuntime {
	return NewMemoryRuntime(map[string][]string{
		EffectName: {
			VarSessionState, VarFocusDelta, VarBlendFrame, VarBlendFactor,
			VarAlignmentDelta, VarHighlightBoost, VarHighlightGammaFactor,
			VarShowMagnifier, VarMagnificationFactor, VarMagnificationArea,
			VarMagnificationLocationCenter,
		},
	})
}

// Reload simulates the host recompiling its effects: every handle changes
// and all stored values are lost.
func (m *MemoryRuntime) Reload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handles = make(map[string]map[string]Handle, len(m.effects))
	m.ints = make(map[Handle][]int32)
	m.floats = make(map[Handle][]float32)
	m.bools = make(map[Handle]bool)
	if m.disabled {
		return
	}
	for effect, names := range m.effects {
		vars := make(map[string]Handle, len(names))
		for _, name := range names {
			m.next++
			vars[name] = m.next
		}
		m.handles[effect] = vars
	}
}

// SetEffectsEnabled toggles whether effects are loaded. A disabled runtime
// reports no uniforms after the next Reload.
func (m *MemoryRuntime) SetEffectsEnabled(enabled bool) {
	m.mu.Lock()
	m.disabled = !enabled
	m.mu.Unlock()
	m.Reload()
}

func (m *MemoryRuntime) Uniforms() map[string]map[string]Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]map[string]Handle, len(m.handles))
	for effect, vars := range m.handles {
		copied := make(map[string]Handle, len(vars))
		for name, h := range vars {
			copied[name] = h
		}
		out[effect] = copied
	}
	return out
}

// valid reports whether h belongs to the current load. Writes through stale
// handles are dropped, as a real host would.
func (m *MemoryRuntime) valid(h Handle) bool {
	for _, vars := range m.handles {
		for _, cur := range vars {
			if cur == h {
				return true
			}
		}
	}
	return false
}

func (m *MemoryRuntime) SetUniformInt(h Handle, values ...int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valid(h) {
		return
	}
	m.writes++
	m.ints[h] = append([]int32(nil), values...)
}

func (m *MemoryRuntime) SetUniformFloat(h Handle, values ...float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valid(h) {
		return
	}
	m.writes++
	m.floats[h] = append([]float32(nil), values...)
}

func (m *MemoryRuntime) SetUniformBool(h Handle, value bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valid(h) {
		return
	}
	m.writes++
	m.bools[h] = value
}

// Int returns the value of an int uniform.
func (m *MemoryRuntime) Int(effect, name string) (int32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.ints[m.handles[effect][name]]
	if !ok || len(v) == 0 {
		return 0, false
	}
	return v[0], true
}

// Float returns the values of a float uniform.
func (m *MemoryRuntime) Float(effect, name string) ([]float32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.floats[m.handles[effect][name]]
	return v, ok
}

// Bool returns the value of a bool uniform.
func (m *MemoryRuntime) Bool(effect, name string) (bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.bools[m.handles[effect][name]]
	return v, ok
}

// Writes is the number of accepted uniform writes.
func (m *MemoryRuntime) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
