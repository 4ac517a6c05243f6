package effects

// Snapshot caches the uniform handles of the host runtime as they were when
// captured. The zero value is empty.
type Snapshot struct {
	handles map[string]map[string]Handle
}

// IsEmpty reports whether no handles are cached.
func (s *Snapshot) IsEmpty() bool {
	return len(s.handles) == 0
}

// Capture replaces the cached handles with the runtime's current ones.
func (s *Snapshot) Capture(rt Runtime) {
	src := rt.Uniforms()
	handles := make(map[string]map[string]Handle, len(src))
	for effect, vars := range src {
		if len(vars) == 0 {
			continue
		}
		copied := make(map[string]Handle, len(vars))
		for name, h := range vars {
			copied[name] = h
		}
		handles[effect] = copied
	}
	s.handles = handles
}

func (s *Snapshot) lookup(effect, name string) (Handle, bool) {
	h, ok := s.handles[effect][name]
	return h, ok
}

// SetInt writes an int uniform. Unknown variables are skipped and reported
// with false.
func (s *Snapshot) SetInt(rt Runtime, effect, name string, v int) bool {
	h, ok := s.lookup(effect, name)
	if !ok {
		return false
	}
	rt.SetUniformInt(h, int32(v))
	return true
}

// SetFloat writes a float uniform.
func (s *Snapshot) SetFloat(rt Runtime, effect, name string, v float64) bool {
	h, ok := s.lookup(effect, name)
	if !ok {
		return false
	}
	rt.SetUniformFloat(h, float32(v))
	return true
}

// SetBool writes a bool uniform.
func (s *Snapshot) SetBool(rt Runtime, effect, name string, v bool) bool {
	h, ok := s.lookup(effect, name)
	if !ok {
		return false
	}
	rt.SetUniformBool(h, v)
	return true
}

// SetFloat2 writes a float2 uniform.
func (s *Snapshot) SetFloat2(rt Runtime, effect, name string, v1, v2 float64) bool {
	h, ok := s.lookup(effect, name)
	if !ok {
		return false
	}
	rt.SetUniformFloat(h, float32(v1), float32(v2))
	return true
}
