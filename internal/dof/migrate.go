package dof

import (
	"github.com/ivlev/dofcapture/internal/effects"
	"github.com/ivlev/dofcapture/internal/logging"
)

// MigrateState is called when the host may have reloaded its effects, which
// invalidates every uniform handle. The snapshot is recaptured; a session in
// Setup is restarted because the cached baseline frame is lost.
func (c *Controller) MigrateState(rt effects.Runtime) {
	if rt == nil || !c.camera.Connected() {
		return
	}
	if c.state == SessionCancelling {
		return
	}
	if c.shader.Empty() {
		return
	}

	// Only handle identities matter; values are rewritten next frame.
	if empty := c.shader.Replace(rt); empty {
		logging.Logger().Debug("dof shader state migrated to empty snapshot")
		return
	}

	if c.state == SessionSetup {
		logging.Logger().Info("dof session restarted after effect reload")
		c.EndSession(rt)
		c.StartSession(rt)
	}
}
