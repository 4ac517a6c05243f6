package dof

import (
	"fmt"

	"github.com/ivlev/dofcapture/internal/camera"
	"github.com/ivlev/dofcapture/internal/deferred"
	"github.com/ivlev/dofcapture/internal/effects"
	"github.com/ivlev/dofcapture/internal/logging"
)

// StartSession starts a multishot session with the camera tools and moves
// to Start. Setup follows after setupDelayFrames frames. It is a no-op when
// the tools are disconnected or a session is already running; a refused
// start is reported through the notifier and leaves the session Off.
func (c *Controller) StartSession(rt effects.Runtime) {
	log := logging.Logger()
	if rt == nil || !c.camera.Connected() {
		log.Debug("dof session start ignored: camera tools not connected")
		return
	}
	if c.state != SessionOff {
		log.Debug("dof session start ignored", "state", c.state)
		return
	}

	if err := c.camera.StartSession(camera.MultiShot).Err(); err != nil {
		log.Warn("dof session start failed", "error", fmt.Errorf("start multishot session: %w", err))
		c.notifier.Notify(startFailureMessage(err))
		return
	}

	c.regenerate()
	c.shader.CaptureIfEmpty(rt)

	c.setState(SessionStart)
	c.renderPaused = false
	c.shader.SetInt(rt, effects.VarSessionState, c.state.ShaderValue())
	// The centre sample carries the dimmed spherical aberration weight.
	c.highlightBoostForFrame = c.highlightBoostFactor * (1 - c.params.SphericalAberrationFactor)
	c.pending.Schedule(deferred.EnterSetup, setupDelayFrames)

	log.Info("dof session started", "steps", len(c.steps))
}

// EndSession resets the session and frame state to Off from any state and
// ends the camera tools' session. Calling it repeatedly is harmless.
func (c *Controller) EndSession(rt effects.Runtime) {
	c.state = SessionOff
	c.frameState = FrameOff
	c.renderPaused = false
	c.blendFrame = false
	c.pending.Clear()
	if rt != nil {
		c.shader.SetInt(rt, effects.VarSessionState, c.state.ShaderValue())
	}

	if c.camera.Connected() {
		c.camera.EndSession()
	}
	logging.Logger().Debug("dof session ended")
}

// StartRender begins the render pass over the current steps. Only valid in
// Setup with the camera tools connected and at least one step.
func (c *Controller) StartRender(rt effects.Runtime) {
	log := logging.Logger()
	if rt == nil || !c.camera.Connected() {
		return
	}
	if c.state != SessionSetup {
		log.Debug("dof render start ignored", "state", c.state)
		return
	}
	if len(c.steps) == 0 {
		log.Warn("dof render start ignored: no camera steps")
		return
	}

	log.Info("dof render session started", "steps", len(c.steps))

	c.blendFactor = 0
	c.currentFrame = 0
	c.framesToRender = len(c.steps)
	c.setFrameState(FrameStart)
	c.setState(SessionRendering)
}

// BeforeEffects is called every presented frame before the host runs its
// effects.
func (c *Controller) BeforeEffects(rt effects.Runtime) {
	if rt == nil || !c.camera.Connected() {
		return
	}

	c.runDeferred(c.pending.Tick())

	if c.state == SessionRendering {
		c.handleBeforeEffects()
	}

	// Always write everything: an effect reload on the host side would
	// otherwise drop the values.
	c.shader.Write(rt, c.uniforms())
}

// AfterEffects is called every presented frame after the host ran its
// effects.
func (c *Controller) AfterEffects(rt effects.Runtime) {
	if rt == nil || !c.camera.Connected() {
		return
	}
	if c.state == SessionRendering {
		c.handleAfterEffects()
	}
}

func (c *Controller) runDeferred(action deferred.Action) {
	switch action {
	case deferred.None:
	case deferred.EnterSetup:
		if !c.setState(SessionSetup) {
			return
		}
		// Move relative to the start pose.
		c.camera.MoveMultishot(c.params.MaxBokehSize, 0, 0, true)
	}
}
