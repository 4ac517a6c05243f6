// Package renderer draws the depth-of-field overlay: the preview of sample
// positions and the render progress.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/ivlev/dofcapture/internal/director"
)

// PreviewOptions controls Preview.
type PreviewOptions struct {
	Size         int     // Canvas width and height in pixels
	MaxBokehSize float64 // Aperture diameter the steps were generated with
	CenterWeight float64 // Grey level of the centre dot
	DotRadius    float64 // Defaults to 1.5
	Background   color.Color
}

// edgeMargin keeps the outer ring off the canvas border.
const edgeMargin = 5

// Preview rasterizes the steps as dots on a square canvas. The canvas centre
// is the aperture centre and y grows upwards, as in camera space. Each dot's
// grey level is its BusyBokehFactor. The canvas may be handed back with
// ReleaseCanvas.
func Preview(steps []director.CameraStep, opts PreviewOptions) *image.RGBA {
	size := opts.Size
	if size <= 0 {
		size = 256
	}
	radius := opts.DotRadius
	if radius <= 0 {
		radius = 1.5
	}
	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}

	dst := GetCanvas(size)
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	if len(steps) == 0 {
		return dst
	}

	center := float64(size) / 2
	maxRadius := center - edgeMargin
	maxBokehRadius := opts.MaxBokehSize / 2
	if maxBokehRadius < 1e-6 {
		maxBokehRadius = 1
	}

	z := vector.NewRasterizer(size, size)
	dot := func(x, y, weight float64) {
		z.Reset(size, size)
		addCircle(z, float32(x), float32(y), float32(radius))
		z.Draw(dst, dst.Bounds(), image.NewUniform(grey(weight)), image.Point{})
	}

	dot(center, center, opts.CenterWeight)
	for _, s := range steps {
		x := center + (s.XDelta/maxBokehRadius)*maxRadius
		y := center - (s.YDelta/maxBokehRadius)*maxRadius
		dot(x, y, s.BusyBokehFactor)
	}
	return dst
}

// addCircle adds a circle approximated by four cubic Béziers.
func addCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := 0.5522847498 * r
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

func grey(w float64) color.Gray {
	if w < 0 {
		w = 0
	}
	if w > 1 {
		w = 1
	}
	return color.Gray{Y: uint8(math.Round(w * 255))}
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	return f.Close()
}
