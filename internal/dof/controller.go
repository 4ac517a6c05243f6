// Package dof sequences a synthetic depth-of-field capture: it moves the
// camera through the aperture samples produced by the director, one step per
// rendered frame, and tells the host shader when and how to blend each frame.
//
// The host calls BeforeEffects and AfterEffects once per presented frame.
// Control calls (session start/end, render start, setters, migration) come
// from the host's UI and must be serialized with the frame hooks by the
// host. The only state shared across threads is the shader snapshot, which
// effects.State guards.
package dof

import (
	"fmt"

	"github.com/ivlev/dofcapture/internal/camera"
	"github.com/ivlev/dofcapture/internal/config"
	"github.com/ivlev/dofcapture/internal/deferred"
	"github.com/ivlev/dofcapture/internal/director"
	"github.com/ivlev/dofcapture/internal/effects"
	"github.com/ivlev/dofcapture/internal/logging"
)

// setupDelayFrames is how long a new session waits before moving the
// camera, so the host can capture a stable baseline frame.
const setupDelayFrames = 3

// MagnificationSettings are passed to the shader's magnifier untouched.
type MagnificationSettings struct {
	ShowMagnifier       bool
	MagnificationFactor float64
	WidthArea           float64
	HeightArea          float64
	XLocation           float64
	YLocation           float64
}

// Notifier shows a message to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

type logNotifier struct{}

func (logNotifier) Notify(message string) {
	logging.Logger().Warn(message)
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets where user-facing messages go. By default they are
// logged at warn level.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithDirector sets the step generator, e.g. one with a fixed shuffle seed.
func WithDirector(d *director.Director) Option {
	return func(c *Controller) {
		if d != nil {
			c.director = d
		}
	}
}

// WithConfig applies a persisted parameter set.
func WithConfig(cfg config.DepthOfField) Option {
	return func(c *Controller) {
		c.ApplyConfig(cfg)
	}
}

// WithRenderOrder sets the initial render order.
func WithRenderOrder(order director.RenderOrder) Option {
	return func(c *Controller) {
		c.params.RenderOrder = order
	}
}

// Controller drives depth-of-field sessions.
type Controller struct {
	camera   camera.Connector
	notifier Notifier
	director *director.Director
	shader   effects.State
	pending  deferred.Slot

	state        SessionState
	frameState   FrameState
	renderPaused bool

	params                   director.Params
	highlightBoostFactor     float64
	highlightGammaFactor     float64
	magnification            MagnificationSettings
	framesToWaitPerFrame     int
	showProgressBarAsOverlay bool

	steps                  []director.CameraStep
	currentFrame           int
	framesToRender         int
	frameWaitCounter       int
	blendFrame             bool
	blendFactor            float64
	xAlignmentDelta        float64
	yAlignmentDelta        float64
	highlightBoostForFrame float64
}

// New creates a controller driving conn, initialised with config.Defaults.
func New(conn camera.Connector, opts ...Option) *Controller {
	c := &Controller{
		camera:   conn,
		notifier: logNotifier{},
		director: director.NewDirector(),
	}
	c.ApplyConfig(config.Defaults())
	c.magnification.MagnificationFactor = 2
	c.magnification.XLocation = 0.5
	c.magnification.YLocation = 0.5
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ApplyConfig replaces the persisted parameters. It does not regenerate
// steps; the next session start or setup change does.
func (c *Controller) ApplyConfig(cfg config.DepthOfField) {
	c.params.MaxBokehSize = cfg.MaxBokehSize
	c.params.AnamorphicFactor = cfg.AnamorphicFactor
	c.params.RingAngleOffset = cfg.RingAngleOffset
	c.params.Shape.RotationAngle = cfg.RotationAngle
	c.params.Shape.RoundFactor = cfg.RoundFactor
	c.params.Shape.NumberOfVertices = cfg.NumberOfVertices
	c.params.SphericalAberrationFactor = cfg.SphericalAberrationFactor
	c.params.SphericalAberrationDimFactor = cfg.SphericalAberrationDimFactor
	c.params.Quality = cfg.Quality
	c.params.NumberOfPointsInnermostRing = cfg.NumberOfPointsInnermostRing
	c.params.BlurType = director.BlurType(cfg.BlurType)
	c.highlightBoostFactor = cfg.HighlightBoostFactor
	c.highlightGammaFactor = cfg.HighlightGammaFactor
	c.magnification.WidthArea = cfg.MagnificationAreaWidth
	c.magnification.HeightArea = cfg.MagnificationAreaHeight
	c.framesToWaitPerFrame = cfg.NumberOfFramesToWaitPerFrame
	c.showProgressBarAsOverlay = cfg.ShowProgressBarAsOverlay
}

// Config returns the parameters to persist.
func (c *Controller) Config() config.DepthOfField {
	return config.DepthOfField{
		MaxBokehSize:                 c.params.MaxBokehSize,
		HighlightBoostFactor:         c.highlightBoostFactor,
		HighlightGammaFactor:         c.highlightGammaFactor,
		MagnificationAreaWidth:       c.magnification.WidthArea,
		MagnificationAreaHeight:      c.magnification.HeightArea,
		AnamorphicFactor:             c.params.AnamorphicFactor,
		RingAngleOffset:              c.params.RingAngleOffset,
		RotationAngle:                c.params.Shape.RotationAngle,
		RoundFactor:                  c.params.Shape.RoundFactor,
		SphericalAberrationFactor:    c.params.SphericalAberrationFactor,
		SphericalAberrationDimFactor: c.params.SphericalAberrationDimFactor,
		NumberOfVertices:             c.params.Shape.NumberOfVertices,
		Quality:                      c.params.Quality,
		NumberOfPointsInnermostRing:  c.params.NumberOfPointsInnermostRing,
		NumberOfFramesToWaitPerFrame: c.framesToWaitPerFrame,
		ShowProgressBarAsOverlay:     c.showProgressBarAsOverlay,
		BlurType:                     int(c.params.BlurType),
	}
}

// State returns the session state.
func (c *Controller) State() SessionState { return c.state }

// FrameState returns the frame state of the current render pass.
func (c *Controller) FrameState() FrameState { return c.frameState }

// CurrentFrame is the index of the step being rendered.
func (c *Controller) CurrentFrame() int { return c.currentFrame }

// FramesToRender is the step count frozen when rendering began.
func (c *Controller) FramesToRender() int { return c.framesToRender }

// BlendFactor is the accumulation weight of the current step.
func (c *Controller) BlendFactor() float64 { return c.blendFactor }

// BlendFrame reports whether the shader blends this frame.
func (c *Controller) BlendFrame() bool { return c.blendFrame }

// HighlightBoostForFrame is the highlight boost sent to the shader.
func (c *Controller) HighlightBoostForFrame() float64 { return c.highlightBoostForFrame }

// AlignmentDelta is the image-plane realignment of the current step.
func (c *Controller) AlignmentDelta() (x, y float64) { return c.xAlignmentDelta, c.yAlignmentDelta }

// Params returns the current geometry parameters.
func (c *Controller) Params() director.Params { return c.params }

// MaxBokehSize returns the aperture diameter.
func (c *Controller) MaxBokehSize() float64 { return c.params.MaxBokehSize }

// FocusDelta returns the focus offset.
func (c *Controller) FocusDelta() float64 { return c.params.FocusDelta }

// Magnification returns the magnifier settings.
func (c *Controller) Magnification() MagnificationSettings { return c.magnification }

// PendingAction exposes the deferred action slot.
func (c *Controller) PendingAction() (deferred.Action, int) { return c.pending.Pending() }

func (c *Controller) setState(to SessionState) bool {
	if !c.state.canMoveTo(to) {
		logging.Logger().Warn("dof session transition rejected", "from", c.state, "to", to)
		return false
	}
	logging.Logger().Debug("dof session transition", "from", c.state, "to", to)
	c.state = to
	return true
}

func (c *Controller) setFrameState(to FrameState) bool {
	if !c.frameState.canMoveTo(to) {
		logging.Logger().Warn("dof frame transition rejected", "from", c.frameState, "to", to)
		return false
	}
	c.frameState = to
	return true
}

// regenerate rebuilds the step sequence from the current parameters and
// keeps any sanitized parameter values.
func (c *Controller) regenerate() {
	c.params = c.params.Sanitized()
	c.steps = c.director.Generate(c.params)
	logging.Logger().Debug("dof steps generated",
		"blur_type", c.params.BlurType,
		"order", c.params.RenderOrder,
		"steps", len(c.steps))
}

func (c *Controller) uniforms() effects.Uniforms {
	return effects.Uniforms{
		SessionState:                int32(c.state.ShaderValue()),
		FocusDelta:                  c.params.FocusDelta,
		BlendFrame:                  c.blendFrame,
		BlendFactor:                 c.blendFactor,
		AlignmentDelta:              [2]float64{c.xAlignmentDelta, c.yAlignmentDelta},
		HighlightBoost:              c.highlightBoostForFrame,
		HighlightGammaFactor:        c.highlightGammaFactor,
		ShowMagnifier:               c.magnification.ShowMagnifier,
		MagnificationFactor:         c.magnification.MagnificationFactor,
		MagnificationArea:           [2]float64{c.magnification.WidthArea, c.magnification.HeightArea},
		MagnificationLocationCenter: [2]float64{c.magnification.XLocation, c.magnification.YLocation},
	}
}

func startFailureMessage(err error) string {
	return fmt.Sprintf("Depth-of-field session couldn't be started: %v", err)
}
