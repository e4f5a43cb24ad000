package physics

import (
	"math"
	"math/rand"

	"github.com/san-kum/starlab/internal/stellar"
)

// OriginSampler produces spawn positions.
type OriginSampler interface {
	Origin(rng *rand.Rand) stellar.Vec3
}

// VelocitySampler produces spawn velocities for a given spawn position.
type VelocitySampler interface {
	Velocity(rng *rand.Rand, pos stellar.Vec3) stellar.Vec3
}

// randomDir returns a direction uniform over the unit sphere, with the
// pole on +Y to match stellar.SphericalDir.
func randomDir(rng *rand.Rand) stellar.Vec3 {
	y := 2*rng.Float64() - 1
	phi := 2 * math.Pi * rng.Float64()
	s := math.Sqrt(1 - y*y)
	return stellar.Vec3{X: s * math.Cos(phi), Y: y, Z: s * math.Sin(phi)}
}

// SphereOrigin spawns uniformly inside a ball.
type SphereOrigin struct {
	Center stellar.Vec3
	Radius float64
}

func (s SphereOrigin) Origin(rng *rand.Rand) stellar.Vec3 {
	r := s.Radius * math.Cbrt(rng.Float64())
	return s.Center.Add(randomDir(rng).Scale(r))
}

// ShellOrigin spawns on a hollow shell between two radii.
type ShellOrigin struct {
	Center stellar.Vec3
	Radius stellar.Range
}

func (s ShellOrigin) Origin(rng *rand.Rand) stellar.Vec3 {
	return s.Center.Add(randomDir(rng).Scale(s.Radius.Sample(rng)))
}

// RingOrigin spawns on an equatorial ring with radial and vertical jitter.
type RingOrigin struct {
	Center    stellar.Vec3
	Radius    float64
	Thickness float64
}

func (s RingOrigin) Origin(rng *rand.Rand) stellar.Vec3 {
	phi := 2 * math.Pi * rng.Float64()
	r := s.Radius + (rng.Float64()-0.5)*s.Thickness
	y := (rng.Float64() - 0.5) * s.Thickness * 0.5
	return s.Center.Add(stellar.Vec3{
		X: r * math.Cos(phi),
		Y: y,
		Z: r * math.Sin(phi),
	})
}

// DiscOrigin spawns on a flat annulus in the equatorial plane.
type DiscOrigin struct {
	Center    stellar.Vec3
	Radius    stellar.Range
	Thickness float64
}

func (s DiscOrigin) Origin(rng *rand.Rand) stellar.Vec3 {
	phi := 2 * math.Pi * rng.Float64()
	r := s.Radius.Sample(rng)
	y := (rng.Float64() - 0.5) * s.Thickness
	return s.Center.Add(stellar.Vec3{
		X: r * math.Cos(phi),
		Y: y,
		Z: r * math.Sin(phi),
	})
}

// PointOrigin spawns every particle at one position. Burst sources.
type PointOrigin struct {
	Point stellar.Vec3
}

func (s PointOrigin) Origin(rng *rand.Rand) stellar.Vec3 { return s.Point }

// RadialVelocity aims particles along the line through Center, outward
// for positive speeds and inward for negative ones. A particle spawned
// exactly on the center gets a random direction instead.
type RadialVelocity struct {
	Center stellar.Vec3
	Speed  stellar.Range
}

func (s RadialVelocity) Velocity(rng *rand.Rand, pos stellar.Vec3) stellar.Vec3 {
	rel := pos.Sub(s.Center)
	if rel.Length() < minRadius {
		rel = randomDir(rng)
	}
	return rel.Normalize().Scale(s.Speed.Sample(rng))
}

// OrbitalVelocity injects a tangential velocity around the polar axis,
// sized to the circular speed of the given force scaled by Fraction, with
// a small random spread. Particles on the axis fall straight in: there is
// no tangent there, and the radial model already handles that case.
type OrbitalVelocity struct {
	Force    *RadialForce
	Fraction float64
	Spread   float64
}

func (s OrbitalVelocity) Velocity(rng *rand.Rand, pos stellar.Vec3) stellar.Vec3 {
	rel := pos.Sub(s.Force.Center)
	r := rel.Length()
	if r < minRadius {
		return stellar.Vec3{}
	}

	tangent := polarAxis.Cross(rel.Scale(1 / r))
	tl := tangent.Length()
	if tl < minRadius {
		return stellar.Vec3{}
	}

	speed := s.Force.CircularSpeed(r) * s.Fraction
	if s.Spread > 0 {
		speed *= 1 + (rng.Float64()*2-1)*s.Spread
	}
	return tangent.Scale(speed / tl)
}

// BlendVelocity sums two samplers, useful for infall with a swirl bias.
type BlendVelocity struct {
	A, B VelocitySampler
}

func (s BlendVelocity) Velocity(rng *rand.Rand, pos stellar.Vec3) stellar.Vec3 {
	return s.A.Velocity(rng, pos).Add(s.B.Velocity(rng, pos))
}

// StillVelocity spawns particles at rest.
type StillVelocity struct{}

func (StillVelocity) Velocity(rng *rand.Rand, pos stellar.Vec3) stellar.Vec3 {
	return stellar.Vec3{}
}
