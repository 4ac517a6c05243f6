package director

import "fmt"

// CameraStep is one aperture sample: where the camera moves for a frame and
// how the frame is realigned before blending.
type CameraStep struct {
	XDelta          float64 `yaml:"x_delta"`           // Camera-space offset
	YDelta          float64 `yaml:"y_delta"`           // Camera-space offset
	XAlignmentDelta float64 `yaml:"x_alignment_delta"` // Image-plane realignment
	YAlignmentDelta float64 `yaml:"y_alignment_delta"` // Image-plane realignment
	BusyBokehFactor float64 `yaml:"busy_bokeh_factor"` // Highlight boost weight, [0,1]
}

// BlurType selects the sampling pattern.
type BlurType int

const (
	Circular BlurType = iota
	ApertureShaped
)

func (b BlurType) String() string {
	switch b {
	case Circular:
		return "circular"
	case ApertureShaped:
		return "aperture-shape"
	default:
		return fmt.Sprintf("BlurType(%d)", int(b))
	}
}

// RenderOrder is the traversal order of the generated steps.
type RenderOrder int

const (
	InnerToOuter RenderOrder = iota
	OuterToInner
	Randomized
)

func (o RenderOrder) String() string {
	switch o {
	case InnerToOuter:
		return "inner-to-outer"
	case OuterToInner:
		return "outer-to-inner"
	case Randomized:
		return "randomized"
	default:
		return fmt.Sprintf("RenderOrder(%d)", int(o))
	}
}

// ApertureShape describes the polygonal aperture.
type ApertureShape struct {
	NumberOfVertices int     `yaml:"number_of_vertices"` // >= 3
	RotationAngle    float64 `yaml:"rotation_angle"`     // In turns
	RoundFactor      float64 `yaml:"round_factor"`       // 0 = polygon, 1 = circle
}

// Params are the inputs of a step generation.
type Params struct {
	BlurType                     BlurType      `yaml:"blur_type"`
	RenderOrder                  RenderOrder   `yaml:"render_order"`
	MaxBokehSize                 float64       `yaml:"max_bokeh_size"`
	FocusDelta                   float64       `yaml:"focus_delta"`
	Quality                      int           `yaml:"quality"`
	NumberOfPointsInnermostRing  int           `yaml:"number_of_points_innermost_ring"`
	RingAngleOffset              float64       `yaml:"ring_angle_offset"`
	AnamorphicFactor             float64       `yaml:"anamorphic_factor"`
	SphericalAberrationFactor    float64       `yaml:"spherical_aberration_factor"`
	SphericalAberrationDimFactor float64       `yaml:"spherical_aberration_dim_factor"`
	Shape                        ApertureShape `yaml:"shape"`
}

// maxSquareRingAngleOffset bounds the ring twist for four-vertex shapes;
// larger offsets break the square rings apart.
const maxSquareRingAngleOffset = 0.015

// Sanitized returns p with the four-vertex ring angle guard applied.
func (p Params) Sanitized() Params {
	if p.BlurType == ApertureShaped && p.Shape.NumberOfVertices == 4 {
		if p.RingAngleOffset < -maxSquareRingAngleOffset || p.RingAngleOffset > maxSquareRingAngleOffset {
			p.RingAngleOffset = 0
		}
	}
	return p
}

// StepCount is the number of steps Generate produces for p.
func (p Params) StepCount() int {
	if p.Quality < 1 {
		return 0
	}
	perRing := p.NumberOfPointsInnermostRing
	if p.BlurType == ApertureShaped {
		perRing = p.Shape.NumberOfVertices
	}
	if perRing < 0 {
		perRing = 0
	}
	return perRing * p.Quality * (p.Quality + 1) / 2
}

// Plan is a generated step sequence together with the parameters it came from.
type Plan struct {
	Version string       `yaml:"version"`
	Params  Params       `yaml:"params"`
	Steps   []CameraStep `yaml:"steps"`
}
