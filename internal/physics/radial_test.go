package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/starlab/internal/stellar"
)

const testDt = 1.0 / 60.0

func TestRadialForce_PullsInward(t *testing.T) {
	f := NewRadialForce(stellar.Vec3{}, 10.0)
	f.Softening = 1.2
	f.Drag = 1.0

	rng := rand.New(rand.NewSource(1))
	sampler := ShellOrigin{Radius: stellar.Range{Min: 50, Max: 50}}

	for i := 0; i < 100; i++ {
		pos := sampler.Origin(rng)
		vel := f.Apply(pos, stellar.Vec3{}, 0, testDt)

		// Stationary particle at r=50 must move strictly toward the center
		// after one step, for every particle.
		if inward := vel.Dot(pos.Normalize()); inward >= 0 {
			t.Fatalf("particle %d not pulled inward: radial velocity %v", i, inward)
		}
	}
}

func TestRadialForce_NegativeStrengthPushesOutward(t *testing.T) {
	f := NewRadialForce(stellar.Vec3{}, -5.0)

	pos := stellar.Vec3{X: 10}
	vel := f.Apply(pos, stellar.Vec3{}, 0, testDt)

	if vel.X <= 0 {
		t.Errorf("expected outward push, got velocity %v", vel)
	}
}

func TestRadialForce_ZeroDtIsNoOp(t *testing.T) {
	f := NewRadialForce(stellar.Vec3{}, 10.0)
	f.Drag = 0.9
	f.Turbulence = 0.5

	pos := stellar.Vec3{X: 5, Y: 3, Z: -2}
	vel := stellar.Vec3{X: 1, Y: -1, Z: 0.5}

	if got := f.Apply(pos, vel, 1.0, 0); got != vel {
		t.Errorf("dt=0 changed velocity: %v -> %v", vel, got)
	}
	if got := f.Apply(pos, vel, 1.0, -0.1); got != vel {
		t.Errorf("negative dt changed velocity: %v -> %v", vel, got)
	}
}

func TestRadialForce_CenterParticleSkipsRadialTerms(t *testing.T) {
	f := NewRadialForce(stellar.Vec3{}, 100.0)
	f.Swirl = 5
	f.Flatten = 1

	vel := stellar.Vec3{X: 0.5}
	got := f.Apply(stellar.Vec3{}, vel, 0, testDt)

	// No radial direction exists at the center; the particle keeps its
	// velocity instead of exploding.
	if !got.IsValid() {
		t.Fatalf("velocity invalid at center: %v", got)
	}
	if got != vel {
		t.Errorf("center particle velocity changed: %v -> %v", vel, got)
	}
}

func TestRadialForce_DragSlowsParticles(t *testing.T) {
	f := NewRadialForce(stellar.Vec3{}, 0)
	f.Drag = 0.9

	vel := stellar.Vec3{X: 2, Y: -2, Z: 1}
	got := f.Apply(stellar.Vec3{X: 100}, vel, 0, testDt)

	if got.Length() >= vel.Length() {
		t.Errorf("drag did not slow particle: %v -> %v", vel.Length(), got.Length())
	}

	// One frame at the reference rate applies the multiplier exactly.
	if math.Abs(got.X-vel.X*0.9) > 1e-12 {
		t.Errorf("drag at reference rate = %v, want %v", got.X, vel.X*0.9)
	}
}

func TestRadialForce_TangentialDamp(t *testing.T) {
	f := NewRadialForce(stellar.Vec3{}, 0)
	f.TangentialDamp = 0.5

	pos := stellar.Vec3{X: 10}
	vel := stellar.Vec3{X: -1, Y: 2} // radial -1, tangential 2

	got := f.Apply(pos, vel, 0, testDt)

	if math.Abs(got.X-(-1)) > 1e-12 {
		t.Errorf("radial component changed: %v", got.X)
	}
	if math.Abs(got.Y-1) > 1e-12 {
		t.Errorf("tangential component = %v, want 1 (half bled off)", got.Y)
	}
}

func TestRadialForce_SwirlIsTangential(t *testing.T) {
	f := NewRadialForce(stellar.Vec3{}, 0)
	f.Swirl = 2

	pos := stellar.Vec3{X: 10}
	got := f.Apply(pos, stellar.Vec3{}, 0, testDt)

	if math.Abs(got.Dot(pos.Normalize())) > 1e-9 {
		t.Errorf("swirl has radial component: %v", got)
	}
	if got.Length() == 0 {
		t.Error("swirl produced no velocity off the polar axis")
	}

	// On the polar axis there is no tangent; swirl must quietly skip.
	polar := f.Apply(stellar.Vec3{Y: 10}, stellar.Vec3{}, 0, testDt)
	if polar.Length() != 0 {
		t.Errorf("swirl on polar axis produced velocity %v", polar)
	}
}

func TestRadialForce_FlattenPullsTowardPlane(t *testing.T) {
	f := NewRadialForce(stellar.Vec3{}, 0)
	f.Flatten = 0.5

	above := f.Apply(stellar.Vec3{X: 5, Y: 3}, stellar.Vec3{}, 0, testDt)
	if above.Y >= 0 {
		t.Errorf("particle above plane not pulled down: %v", above.Y)
	}

	below := f.Apply(stellar.Vec3{X: 5, Y: -3}, stellar.Vec3{}, 0, testDt)
	if below.Y <= 0 {
		t.Errorf("particle below plane not pulled up: %v", below.Y)
	}
}

func TestRadialForce_TurbulenceBoundedAndDeterministic(t *testing.T) {
	f := NewRadialForce(stellar.Vec3{}, 0)
	f.Turbulence = 0.3
	f.TurbulenceScale = 0.1

	pos := stellar.Vec3{X: 12, Y: -4, Z: 7}
	bound := f.Turbulence * testDt * FrameRate

	a := f.Apply(pos, stellar.Vec3{}, 2.5, testDt)
	b := f.Apply(pos, stellar.Vec3{}, 2.5, testDt)

	if a != b {
		t.Errorf("turbulence not deterministic: %v vs %v", a, b)
	}
	for _, c := range [3]float64{a.X, a.Y, a.Z} {
		if math.Abs(c) > bound+1e-9 {
			t.Errorf("turbulence component %v exceeds bound %v", c, bound)
		}
	}

	// Different times give different kicks.
	later := f.Apply(pos, stellar.Vec3{}, 3.1, testDt)
	if a == later {
		t.Error("turbulence ignores time")
	}
}

func TestRadialForce_VelocityClamp(t *testing.T) {
	f := NewRadialForce(stellar.Vec3{}, 1e6)
	f.MaxVelocity = 3

	got := f.Apply(stellar.Vec3{X: 1}, stellar.Vec3{Y: 50, Z: -50}, 0, testDt)

	for _, c := range [3]float64{got.X, got.Y, got.Z} {
		if c > 3 || c < -3 {
			t.Errorf("component %v escaped clamp", c)
		}
	}
}

func TestRadialForce_CircularSpeed(t *testing.T) {
	f := NewRadialForce(stellar.Vec3{}, 10.0)
	f.Softening = 1.0

	r := 25.0
	v := f.CircularSpeed(r)
	want := math.Sqrt(10.0*r) / (r + 1.0)
	if math.Abs(v-want) > 1e-12 {
		t.Errorf("CircularSpeed = %v, want %v", v, want)
	}

	if got := f.CircularSpeed(0); got != 0 {
		t.Errorf("CircularSpeed(0) = %v, want 0", got)
	}
}

func BenchmarkRadialForce_Apply(b *testing.B) {
	f := NewRadialForce(stellar.Vec3{}, 10.0)
	f.TangentialDamp = 0.02
	f.Drag = 0.99
	f.Swirl = 0.5
	f.Turbulence = 0.2

	pos := stellar.Vec3{X: 30, Y: 10, Z: -20}
	vel := stellar.Vec3{X: -0.5, Y: 0.2, Z: 0.3}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vel = f.Apply(pos, vel, float64(i)*testDt, testDt)
	}
}
