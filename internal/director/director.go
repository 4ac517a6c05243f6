// Package director generates the camera step sequences of a depth-of-field
// capture: the sample positions across a virtual lens aperture.
package director

import (
	"math"
	"math/rand"
	"time"
)

const twoPi = 2 * math.Pi

// Director generates camera step sequences. The random source is only used
// for the Randomized render order.
type Director struct {
	rng *rand.Rand
}

// NewDirector creates a Director seeded from the clock.
func NewDirector() *Director {
	return NewDirectorWithSeed(time.Now().UnixNano())
}

// NewDirectorWithSeed creates a Director with a fixed shuffle seed.
func NewDirectorWithSeed(seed int64) *Director {
	return &Director{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces the ordered step sequence for p.
func (d *Director) Generate(p Params) []CameraStep {
	p = p.Sanitized()

	var steps []CameraStep
	switch p.BlurType {
	case ApertureShaped:
		steps = apertureShapedSteps(p)
	default:
		steps = circularSteps(p)
	}
	ApplyOrder(steps, p.RenderOrder, d.rng)
	return steps
}

// BoostedRingCount is the ring index from which the spherical aberration
// weight no longer dims.
func BoostedRingCount(sphericalAberrationFactor float64, quality int) int {
	return int(sphericalAberrationFactor*float64(quality-1)) + 1
}

// SphericalAberrationWeight is the highlight weight of ring ringNo. Rings
// at or beyond boosted get full weight, inner rings ramp up from 1-dim.
func SphericalAberrationWeight(boosted, ringNo int, dimFactor float64) float64 {
	if ringNo >= boosted || boosted == 1 {
		return 1
	}
	w := (float64(ringNo)/float64(boosted-1))*(1-dimFactor) + (1 - dimFactor)
	return clamp(w, 0, 1)
}

func circularSteps(p Params) []CameraStep {
	if p.Quality < 1 || p.NumberOfPointsInnermostRing < 1 {
		return nil
	}
	steps := make([]CameraStep, 0, p.StepCount())

	pointsFirstRing := p.NumberOfPointsInnermostRing
	maxBokehRadius := p.MaxBokehSize / 2
	focusDeltaHalf := p.FocusDelta / 2
	boosted := BoostedRingCount(p.SphericalAberrationFactor, p.Quality)

	for ringNo := 1; ringNo <= p.Quality; ringNo++ {
		pointsOnRing := ringNo * pointsFirstRing
		anglePerPoint := twoPi / float64(pointsOnRing)
		angle := anglePerPoint + float64(ringNo)*p.RingAngleOffset
		ringDistance := float64(ringNo) / float64(p.Quality)
		weight := SphericalAberrationWeight(boosted, ringNo, p.SphericalAberrationDimFactor)

		for i := 0; i < pointsOnRing; i++ {
			x := ringDistance * math.Cos(angle) * p.AnamorphicFactor
			y := ringDistance * math.Sin(angle)
			steps = append(steps, newStep(x, y, maxBokehRadius, focusDeltaHalf, weight))
			angle = math.Mod(angle+anglePerPoint, twoPi)
		}
	}
	return steps
}

func apertureShapedSteps(p Params) []CameraStep {
	vertices := p.Shape.NumberOfVertices
	if p.Quality < 1 || vertices < 1 {
		return nil
	}
	steps := make([]CameraStep, 0, p.StepCount())

	maxBokehRadius := p.MaxBokehSize / 2
	focusDeltaHalf := p.FocusDelta / 2
	anglePerVertex := twoPi / float64(vertices)
	boosted := BoostedRingCount(p.SphericalAberrationFactor, p.Quality)

	for ringNo := 1; ringNo <= p.Quality; ringNo++ {
		// Inner rings twist more than outer ones so the outer boundary stays put.
		vertexAngle := math.Mod(anglePerVertex+p.Shape.RotationAngle*twoPi+float64(p.Quality-ringNo)*p.RingAngleOffset, twoPi)
		ringDistance := float64(ringNo) / float64(p.Quality)
		weight := SphericalAberrationWeight(boosted, ringNo, p.SphericalAberrationDimFactor)
		pointStepSize := 1 / float64(ringNo)

		for v := 0; v < vertices; v++ {
			nextVertexAngle := math.Mod(vertexAngle+anglePerVertex, twoPi)
			xCurrent := ringDistance * math.Cos(vertexAngle) * p.AnamorphicFactor
			yCurrent := ringDistance * math.Sin(vertexAngle)
			xNext := ringDistance * math.Cos(nextVertexAngle) * p.AnamorphicFactor
			yNext := ringDistance * math.Sin(nextVertexAngle)

			t := pointStepSize
			for i := 0; i < ringNo; i++ {
				pointAngle := lerp(vertexAngle, vertexAngle+anglePerVertex, t)
				xRound := ringDistance * math.Cos(pointAngle) * p.AnamorphicFactor
				yRound := ringDistance * math.Sin(pointAngle)
				xLine := lerp(xCurrent, xNext, t)
				yLine := lerp(yCurrent, yNext, t)
				x := lerp(xLine, xRound, p.Shape.RoundFactor)
				y := lerp(yLine, yRound, p.Shape.RoundFactor)
				steps = append(steps, newStep(x, y, maxBokehRadius, focusDeltaHalf, weight))
				t += pointStepSize
			}
			vertexAngle = math.Mod(vertexAngle+anglePerVertex, twoPi)
		}
	}
	return steps
}

func newStep(x, y, maxBokehRadius, focusDeltaHalf, weight float64) CameraStep {
	return CameraStep{
		XDelta:          maxBokehRadius * x,
		YDelta:          maxBokehRadius * y,
		XAlignmentDelta: x * -focusDeltaHalf,
		YAlignmentDelta: y * focusDeltaHalf,
		BusyBokehFactor: weight,
	}
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
