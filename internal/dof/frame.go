package dof

import "github.com/ivlev/dofcapture/internal/logging"

// handleBeforeEffects advances the frame state before the shader runs.
func (c *Controller) handleBeforeEffects() {
	switch c.frameState {
	case FrameOff, FrameBlending:
	case FrameStart:
		// Reached once per render pass.
		c.setupFrame()
	case FrameWait:
		if c.frameWaitCounter > 0 {
			c.frameWaitCounter--
			return
		}
		c.frameWaitCounter = 0
		// The uniforms are written right after this hook, so the shader
		// blends the current framebuffer in this very frame.
		c.blendFrame = true
		c.setFrameState(FrameBlending)
	}
}

// handleAfterEffects finishes a blended frame once the shader has run.
func (c *Controller) handleAfterEffects() {
	switch c.frameState {
	case FrameOff, FrameStart, FrameWait:
	case FrameBlending:
		c.blendFrame = false
		if c.renderPaused {
			return
		}
		c.currentFrame++
		if c.currentFrame >= c.framesToRender {
			c.setFrameState(FrameOff)
			c.setState(SessionDone)
			logging.Logger().Info("dof render session completed", "frames", c.framesToRender)
			return
		}
		c.setupFrame()
	}
}

// setupFrame moves the camera to the current step and arms the wait.
func (c *Controller) setupFrame() {
	step := c.steps[c.currentFrame]
	c.camera.MoveMultishot(step.XDelta, step.YDelta, 0, true)
	c.xAlignmentDelta = step.XAlignmentDelta
	c.yAlignmentDelta = step.YAlignmentDelta
	c.frameWaitCounter = c.framesToWaitPerFrame
	// currentFrame is zero based and the start frame counts as the first sample.
	c.blendFactor = 1 / (float64(c.currentFrame) + 2)
	c.highlightBoostForFrame = c.highlightBoostFactor * step.BusyBokehFactor
	c.setFrameState(FrameWait)
}

// SetRenderPaused freezes or resumes frame advancement. While paused the
// pass stays in FrameBlending.
func (c *Controller) SetRenderPaused(paused bool) {
	c.renderPaused = paused
}

// RenderPaused reports whether frame advancement is frozen.
func (c *Controller) RenderPaused() bool { return c.renderPaused }
