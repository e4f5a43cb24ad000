package stellar

import (
	"fmt"
	"math"
	"math/rand"
)

// Vec3 is a point or direction in simulation space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// ClampComponents limits each component independently to [-limit, limit].
func (v Vec3) ClampComponents(limit float64) Vec3 {
	return Vec3{
		X: Clamp(v.X, -limit, limit),
		Y: Clamp(v.Y, -limit, limit),
		Z: Clamp(v.Z, -limit, limit),
	}
}

func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// RGB is a color with channels normalized to [0, 1].
type RGB struct {
	R, G, B float64
}

func (c RGB) Lerp(o RGB, t float64) RGB {
	t = Clamp01(t)
	return RGB{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

func (c RGB) Scale(s float64) RGB {
	return RGB{Clamp01(c.R * s), Clamp01(c.G * s), Clamp01(c.B * s)}
}

// Jitter returns the color offset by a uniform random amount per channel,
// clamped back into range. Spawn-time variation only; never used per frame.
func (c RGB) Jitter(rng *rand.Rand, amount float64) RGB {
	return RGB{
		R: Clamp01(c.R + (rng.Float64()*2-1)*amount),
		G: Clamp01(c.G + (rng.Float64()*2-1)*amount),
		B: Clamp01(c.B + (rng.Float64()*2-1)*amount),
	}
}

// Hex renders the color as "#rrggbb" for terminal styling.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(Clamp01(c.R)*255+0.5),
		uint8(Clamp01(c.G)*255+0.5),
		uint8(Clamp01(c.B)*255+0.5))
}

// Range is an inclusive interval sampled uniformly at spawn time.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func (r Range) Lerp(t float64) float64 { return r.Min + (r.Max-r.Min)*Clamp01(t) }

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

func Lerp(a, b, t float64) float64 { return a + (b-a)*Clamp01(t) }

// SmoothStep is the cubic ease 3t²-2t³ used for fades and ramps.
func SmoothStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}
