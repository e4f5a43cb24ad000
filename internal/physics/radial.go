package physics

import (
	"math"

	"github.com/san-kum/starlab/internal/stellar"
)

// FrameRate is the reference frame rate the tuning constants assume.
// Elapsed wall time converts to elapsed frames via dt * FrameRate.
const FrameRate = 60.0

// minRadius guards direction-dependent terms against a degenerate radius.
const minRadius = 1e-6

var polarAxis = stellar.Vec3{Y: 1}

// RadialForce is the per-particle force model. Strength pulls toward
// Center when positive and pushes outward when negative; everything else
// shapes the trajectory around that radial motion.
type RadialForce struct {
	Center    stellar.Vec3
	Strength  float64 // inverse-square magnitude, per frame
	Softening float64 // added to radius before squaring

	TangentialDamp float64 // per-frame bleed of non-radial velocity, 0..1
	Drag           float64 // per-frame velocity multiplier, 1 = none
	Swirl          float64 // tangential acceleration about the polar axis
	Flatten        float64 // pull toward the equatorial plane, per frame

	Turbulence      float64 // sinusoidal jitter amplitude
	TurbulenceScale float64 // spatial frequency of the jitter field

	MaxVelocity float64 // per-component clamp
}

// NewRadialForce returns a force centered at center with the given pull
// and neutral defaults for every shaping term.
func NewRadialForce(center stellar.Vec3, strength float64) *RadialForce {
	return &RadialForce{
		Center:          center,
		Strength:        strength,
		Softening:       1.0,
		Drag:            1.0,
		TurbulenceScale: 0.05,
		MaxVelocity:     10.0,
	}
}

// Apply advances one particle's velocity by dt seconds and returns the
// result. Position is untouched; the caller integrates it. The model reads
// only its inputs, so two particles never influence each other here.
func (f *RadialForce) Apply(pos, vel stellar.Vec3, t, dt float64) stellar.Vec3 {
	frames := dt * FrameRate
	if frames <= 0 {
		return vel
	}

	rel := pos.Sub(f.Center)
	r := rel.Length()

	// Direction-dependent terms need a defined radial direction. A particle
	// sitting on the center keeps its velocity and picks up drag only.
	if r >= minRadius {
		dir := rel.Scale(1 / r)

		soft := r + f.Softening
		accel := f.Strength / (soft * soft)
		vel = vel.Sub(dir.Scale(accel * frames))

		if f.TangentialDamp > 0 {
			radial := dir.Scale(vel.Dot(dir))
			tangential := vel.Sub(radial)
			keep := 1 - f.TangentialDamp*frames
			if keep < 0 {
				keep = 0
			}
			vel = radial.Add(tangential.Scale(keep))
		}

		if f.Swirl != 0 {
			tangent := polarAxis.Cross(dir)
			if tl := tangent.Length(); tl >= minRadius {
				vel = vel.Add(tangent.Scale(f.Swirl * frames / tl))
			}
		}

		if f.Flatten > 0 {
			vel.Y -= rel.Y * f.Flatten * frames
		}
	}

	if f.Turbulence > 0 {
		vel = vel.Add(f.turbulence(pos, t).Scale(f.Turbulence * frames))
	}

	if f.Drag != 1 {
		drag := 1 - (1-f.Drag)*frames
		if drag < 0 {
			drag = 0
		}
		vel = vel.Scale(drag)
	}

	if f.MaxVelocity > 0 {
		vel = vel.ClampComponents(f.MaxVelocity)
	}

	return vel
}

// turbulence is a bounded pseudo-noise field keyed on position and time.
// Deterministic given its inputs, so replays with equal seeds stay equal.
func (f *RadialForce) turbulence(pos stellar.Vec3, t float64) stellar.Vec3 {
	s := f.TurbulenceScale
	return stellar.Vec3{
		X: stellar.FastSin(pos.Y*s + t*1.7),
		Y: stellar.FastSin(pos.Z*s + t*2.3),
		Z: stellar.FastSin(pos.X*s + t*1.3),
	}
}

// CircularSpeed returns the tangential speed that balances the radial pull
// at radius r, the injection speed for stable-looking orbits.
func (f *RadialForce) CircularSpeed(r float64) float64 {
	if r < minRadius || f.Strength <= 0 {
		return 0
	}
	return math.Sqrt(f.Strength*r) / (r + f.Softening)
}
