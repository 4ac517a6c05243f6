package dof

import (
	"image"
	"slices"

	"github.com/ivlev/dofcapture/internal/director"
	"github.com/ivlev/dofcapture/internal/renderer"
)

// Progress is the fraction of steps rendered, in [0,1].
func (c *Controller) Progress() float64 {
	return renderer.Progress(c.currentFrame, len(c.steps))
}

// ProgressLabel formats the progress as "done/total".
func (c *Controller) ProgressLabel() string {
	return renderer.ProgressLabel(c.currentFrame, len(c.steps))
}

// ShowProgressOverlay reports whether the progress overlay should be drawn.
func (c *Controller) ShowProgressOverlay() bool {
	return c.state == SessionRendering && len(c.steps) > 0 && c.showProgressBarAsOverlay
}

// CameraSteps returns a copy of the current step sequence.
func (c *Controller) CameraSteps() []director.CameraStep {
	return slices.Clone(c.steps)
}

// Preview rasterizes the current steps for the shape preview widget.
func (c *Controller) Preview(size int) *image.RGBA {
	boosted := director.BoostedRingCount(c.params.SphericalAberrationFactor, c.params.Quality)
	return renderer.Preview(c.steps, renderer.PreviewOptions{
		Size:         size,
		MaxBokehSize: c.params.MaxBokehSize,
		CenterWeight: director.SphericalAberrationWeight(boosted, 1, c.params.SphericalAberrationDimFactor),
	})
}
