package dof

import (
	"github.com/ivlev/dofcapture/internal/director"
	"github.com/ivlev/dofcapture/internal/effects"
	"github.com/ivlev/dofcapture/internal/logging"
)

// SetMaxBokehSize changes the aperture diameter. Only honored in Setup and
// for positive values. The focus delta scales with the aperture and the
// camera moves to the new setup pose.
func (c *Controller) SetMaxBokehSize(v float64) {
	if c.state != SessionSetup || v <= 0 {
		logging.Logger().Debug("dof max bokeh size ignored", "state", c.state, "value", v)
		return
	}

	old := c.params.MaxBokehSize
	c.params.MaxBokehSize = v
	if old > 0 {
		c.params.FocusDelta *= v / old
	}
	c.regenerate()

	c.camera.MoveMultishot(c.params.MaxBokehSize, 0, 0, true)
}

// SetFocusDelta changes the focus offset. Only honored in Setup. The value
// is pushed to the shader at once so the operator sees the new focus plane.
func (c *Controller) SetFocusDelta(rt effects.Runtime, v float64) {
	if c.state != SessionSetup {
		logging.Logger().Debug("dof focus delta ignored", "state", c.state)
		return
	}
	c.params.FocusDelta = v
	c.regenerate()

	if rt != nil {
		c.shader.SetFloat(rt, effects.VarFocusDelta, c.params.FocusDelta)
	}
	c.camera.MoveMultishot(c.params.MaxBokehSize, 0, 0, true)
}

// stepsFrozen reports whether the step sequence may not change.
func (c *Controller) stepsFrozen() bool {
	switch c.state {
	case SessionStart, SessionRendering, SessionCancelling:
		return true
	default:
		return false
	}
}

// updateGeometry applies fn to the parameters unless the steps are frozen
// or fn rejects the value, then regenerates in Setup.
func (c *Controller) updateGeometry(name string, fn func(p *director.Params) bool) bool {
	if c.stepsFrozen() {
		logging.Logger().Debug("dof geometry change ignored", "param", name, "state", c.state)
		return false
	}
	p := c.params
	if !fn(&p) {
		logging.Logger().Debug("dof geometry value rejected", "param", name)
		return false
	}
	c.params = p
	if c.state == SessionSetup {
		c.regenerate()
	}
	return true
}

// SetQuality sets the number of rings (>= 1).
func (c *Controller) SetQuality(quality int) bool {
	return c.updateGeometry("quality", func(p *director.Params) bool {
		if quality < 1 {
			return false
		}
		p.Quality = quality
		return true
	})
}

// SetNumberOfPointsInnermostRing sets the circular mode density (>= 1).
func (c *Controller) SetNumberOfPointsInnermostRing(points int) bool {
	return c.updateGeometry("points_innermost_ring", func(p *director.Params) bool {
		if points < 1 {
			return false
		}
		p.NumberOfPointsInnermostRing = points
		return true
	})
}

// SetRingAngleOffset sets the per-ring angular twist.
func (c *Controller) SetRingAngleOffset(offset float64) bool {
	return c.updateGeometry("ring_angle_offset", func(p *director.Params) bool {
		p.RingAngleOffset = offset
		return true
	})
}

// SetAnamorphicFactor sets the horizontal stretch (> 0).
func (c *Controller) SetAnamorphicFactor(factor float64) bool {
	return c.updateGeometry("anamorphic_factor", func(p *director.Params) bool {
		if factor <= 0 {
			return false
		}
		p.AnamorphicFactor = factor
		return true
	})
}

// SetSphericalAberration sets the boosted ring share and the dimming of the
// inner rings, both in [0,1].
func (c *Controller) SetSphericalAberration(factor, dimFactor float64) bool {
	return c.updateGeometry("spherical_aberration", func(p *director.Params) bool {
		if factor < 0 || factor > 1 || dimFactor < 0 || dimFactor > 1 {
			return false
		}
		p.SphericalAberrationFactor = factor
		p.SphericalAberrationDimFactor = dimFactor
		return true
	})
}

// SetApertureShape sets the polygon used in aperture-shape mode.
func (c *Controller) SetApertureShape(shape director.ApertureShape) bool {
	return c.updateGeometry("aperture_shape", func(p *director.Params) bool {
		if shape.NumberOfVertices < 3 || shape.RoundFactor < 0 || shape.RoundFactor > 1 {
			return false
		}
		p.Shape = shape
		return true
	})
}

// SetBlurType switches between circular and aperture-shape sampling.
func (c *Controller) SetBlurType(t director.BlurType) bool {
	return c.updateGeometry("blur_type", func(p *director.Params) bool {
		if t != director.Circular && t != director.ApertureShaped {
			return false
		}
		p.BlurType = t
		return true
	})
}

// SetRenderOrder sets the traversal order of the steps.
func (c *Controller) SetRenderOrder(order director.RenderOrder) bool {
	return c.updateGeometry("render_order", func(p *director.Params) bool {
		switch order {
		case director.InnerToOuter, director.OuterToInner, director.Randomized:
			p.RenderOrder = order
			return true
		}
		return false
	})
}

// SetHighlightBoostFactor sets the highlight boost applied per step.
func (c *Controller) SetHighlightBoostFactor(v float64) {
	c.highlightBoostFactor = v
}

// SetHighlightGammaFactor sets the highlight gamma passed to the shader.
func (c *Controller) SetHighlightGammaFactor(v float64) {
	c.highlightGammaFactor = v
}

// SetMagnification replaces the magnifier settings.
func (c *Controller) SetMagnification(m MagnificationSettings) {
	c.magnification = m
}

// SetFramesToWaitPerFrame sets how many frames the camera settles before a
// step is blended. Negative values are clamped to zero.
func (c *Controller) SetFramesToWaitPerFrame(frames int) {
	if frames < 0 {
		frames = 0
	}
	c.framesToWaitPerFrame = frames
}

// SetShowProgressBarAsOverlay toggles the progress overlay.
func (c *Controller) SetShowProgressBarAsOverlay(show bool) {
	c.showProgressBarAsOverlay = show
}
