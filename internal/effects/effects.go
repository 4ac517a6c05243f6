// Package effects writes depth-of-field parameters into the host's shader
// uniforms.
package effects

// EffectName is the shader effect every uniform is written to.
const EffectName = "IgcsDof.fx"

// Uniform variable names understood by the depth-of-field shader.
const (
	VarSessionState                = "SessionState"
	VarFocusDelta                  = "FocusDelta"
	VarBlendFrame                  = "BlendFrame"
	VarBlendFactor                 = "BlendFactor"
	VarAlignmentDelta              = "AlignmentDelta"
	VarHighlightBoost              = "HighlightBoost"
	VarHighlightGammaFactor        = "HighlightGammaFactor"
	VarShowMagnifier               = "ShowMagnifier"
	VarMagnificationFactor         = "MagnificationFactor"
	VarMagnificationArea           = "MagnificationArea"
	VarMagnificationLocationCenter = "MagnificationLocationCenter"
)

// Handle identifies a uniform variable of a loaded effect. Handles are only
// valid until the host reloads its effects.
type Handle uint64

// Runtime is the host effect runtime.
type Runtime interface {
	// Uniforms returns the handle of every uniform variable, keyed by effect
	// name and then variable name.
	Uniforms() map[string]map[string]Handle
	SetUniformInt(h Handle, values ...int32)
	SetUniformFloat(h Handle, values ...float32)
	SetUniformBool(h Handle, value bool)
}

// Uniforms is the full parameter set written to the shader every frame.
type Uniforms struct {
	SessionState                int32
	FocusDelta                  float64
	BlendFrame                  bool
	BlendFactor                 float64
	AlignmentDelta              [2]float64
	HighlightBoost              float64
	HighlightGammaFactor        float64
	ShowMagnifier               bool
	MagnificationFactor         float64
	MagnificationArea           [2]float64
	MagnificationLocationCenter [2]float64
}
