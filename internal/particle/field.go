package particle

import (
	"math/rand"

	"github.com/san-kum/starlab/internal/physics"
	"github.com/san-kum/starlab/internal/stellar"
)

// LifeState is the lifecycle slot of one particle.
type LifeState uint8

const (
	Inactive LifeState = iota
	Free
	Stuck
	Consumed
)

func (s LifeState) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Free:
		return "free"
	case Stuck:
		return "stuck"
	case Consumed:
		return "consumed"
	}
	return "unknown"
}

// FarSentinel parks particles that should never render. Far enough that
// no camera or capture radius ever reaches it.
var FarSentinel = stellar.Vec3{X: 1e9, Y: 1e9, Z: 1e9}

// SpawnSpec describes one batch of spawns: where particles appear, how
// they move, how long they live, and what they look like. A Life range
// that samples to zero or below marks the particle immortal.
type SpawnSpec struct {
	Origin      physics.OriginSampler
	Velocity    physics.VelocitySampler
	Life        stellar.Range
	Color       stellar.RGB
	ColorJitter float64
}

// Field is a fixed-capacity columnar particle pool.
type Field struct {
	capacity int
	rng      *rand.Rand
	cursor   int // next slot to try on spawn

	pos   []stellar.Vec3
	vel   []stellar.Vec3
	col   []stellar.RGB
	life  []float64 // remaining seconds; negative = immortal
	state []LifeState

	// Surface-riding parameters, valid only while state is Stuck.
	stuckTheta  []float64
	stuckPhi    []float64
	stuckFactor []float64
}

// NewField allocates a pool of the given capacity. All slots start
// inactive, parked at the sentinel. The rng drives spawn sampling only.
func NewField(capacity int, rng *rand.Rand) *Field {
	if capacity < 0 {
		capacity = 0
	}
	f := &Field{
		capacity:    capacity,
		rng:         rng,
		pos:         make([]stellar.Vec3, capacity),
		vel:         make([]stellar.Vec3, capacity),
		col:         make([]stellar.RGB, capacity),
		life:        make([]float64, capacity),
		state:       make([]LifeState, capacity),
		stuckTheta:  make([]float64, capacity),
		stuckPhi:    make([]float64, capacity),
		stuckFactor: make([]float64, capacity),
	}
	for i := range f.pos {
		f.pos[i] = FarSentinel
	}
	return f
}

func (f *Field) Capacity() int { return f.capacity }

// SpawnBatch activates up to n inactive slots using spec and returns how
// many actually spawned. A full pool is not an error: the field spawns
// what it can and silently drops the remainder.
func (f *Field) SpawnBatch(n int, spec SpawnSpec) int {
	if n <= 0 || f.capacity == 0 {
		return 0
	}

	spawned := 0
	for scanned := 0; scanned < f.capacity && spawned < n; scanned++ {
		i := f.cursor
		f.cursor++
		if f.cursor == f.capacity {
			f.cursor = 0
		}
		if f.state[i] != Inactive {
			continue
		}

		f.state[i] = Free
		f.pos[i] = spec.Origin.Origin(f.rng)
		if spec.Velocity != nil {
			f.vel[i] = spec.Velocity.Velocity(f.rng, f.pos[i])
		} else {
			f.vel[i] = stellar.Vec3{}
		}

		if l := spec.Life.Sample(f.rng); l > 0 {
			f.life[i] = l
		} else {
			f.life[i] = -1
		}

		if spec.ColorJitter > 0 {
			f.col[i] = spec.Color.Jitter(f.rng, spec.ColorJitter)
		} else {
			f.col[i] = spec.Color
		}

		spawned++
	}
	return spawned
}

// Integrate advances every free particle by dt seconds: force model first,
// then position, then lifetime. Stuck and consumed particles receive no
// physics. Each particle sees only its own pre-step values.
func (f *Field) Integrate(dt, t float64, force *physics.RadialForce) {
	if dt <= 0 {
		return
	}
	frames := dt * physics.FrameRate

	for i := 0; i < f.capacity; i++ {
		if f.state[i] != Free {
			continue
		}

		f.vel[i] = force.Apply(f.pos[i], f.vel[i], t, dt)
		f.pos[i] = f.pos[i].Add(f.vel[i].Scale(frames))

		if f.life[i] > 0 {
			f.life[i] -= dt
			if f.life[i] <= 0 {
				f.retire(i)
			}
		}
	}
}

// Stick captures a free particle onto a surface. The stored angles and
// radius factor let RepositionStuck ride the owner's live scale from now
// on. No-op unless the particle is free.
func (f *Field) Stick(i int, theta, phi, factor float64) {
	if i < 0 || i >= f.capacity || f.state[i] != Free {
		return
	}
	f.state[i] = Stuck
	f.vel[i] = stellar.Vec3{}
	f.stuckTheta[i] = theta
	f.stuckPhi[i] = phi
	f.stuckFactor[i] = factor
}

// Consume removes a free particle from play permanently and reports
// whether it did so. The state guard makes re-consumption impossible, so
// callers may credit mass exactly once per true return.
func (f *Field) Consume(i int) bool {
	if i < 0 || i >= f.capacity || f.state[i] != Free {
		return false
	}
	f.state[i] = Consumed
	f.pos[i] = FarSentinel
	f.vel[i] = stellar.Vec3{}
	return true
}

// RepositionStuck places every stuck particle on the surface of radius
// scale around center, each at its captured angles times its radius
// factor. Call once per frame with the owner's live scale.
func (f *Field) RepositionStuck(center stellar.Vec3, scale float64) {
	for i := 0; i < f.capacity; i++ {
		if f.state[i] != Stuck {
			continue
		}
		dir := stellar.FastSphericalDir(f.stuckTheta[i], f.stuckPhi[i])
		f.pos[i] = center.Add(dir.Scale(scale * f.stuckFactor[i]))
	}
}

// RetireWhere deactivates free particles matching pred and returns how
// many it retired.
func (f *Field) RetireWhere(pred func(i int, pos stellar.Vec3) bool) int {
	n := 0
	for i := 0; i < f.capacity; i++ {
		if f.state[i] != Free {
			continue
		}
		if pred(i, f.pos[i]) {
			f.retire(i)
			n++
		}
	}
	return n
}

// RetireBeyond deactivates free particles farther than maxR from center
// and returns how many it retired. Range culling for winds and ejecta.
func (f *Field) RetireBeyond(center stellar.Vec3, maxR float64) int {
	maxR2 := maxR * maxR
	return f.RetireWhere(func(i int, pos stellar.Vec3) bool {
		rel := pos.Sub(center)
		return rel.Dot(rel) > maxR2
	})
}

// HeatToward blends free particles toward the hot color as they close in
// on center: full blend rate inside inner, fading to nothing at outer.
// The glow a particle picks up on approach is never taken back.
func (f *Field) HeatToward(center stellar.Vec3, inner, outer float64, hot stellar.RGB, rate, dt float64) {
	if dt <= 0 || outer <= inner {
		return
	}
	for i := 0; i < f.capacity; i++ {
		if f.state[i] != Free {
			continue
		}
		r := f.pos[i].Sub(center).Length()
		if r >= outer {
			continue
		}
		proximity := stellar.Clamp01((outer - r) / (outer - inner))
		f.col[i] = f.col[i].Lerp(hot, proximity*rate*dt)
	}
}

func (f *Field) retire(i int) {
	f.state[i] = Inactive
	f.pos[i] = FarSentinel
	f.vel[i] = stellar.Vec3{}
	f.life[i] = 0
}

// ForFree visits every free particle. The callback may capture the
// particle through Stick or Consume; state changes take effect
// immediately and excluded states are skipped on later visits.
func (f *Field) ForFree(fn func(i int, pos stellar.Vec3)) {
	for i := 0; i < f.capacity; i++ {
		if f.state[i] == Free {
			fn(i, f.pos[i])
		}
	}
}

// Count returns the number of particles in the given state.
func (f *Field) Count(s LifeState) int {
	n := 0
	for i := 0; i < f.capacity; i++ {
		if f.state[i] == s {
			n++
		}
	}
	return n
}

// Active returns how many particles are visible: free plus stuck.
func (f *Field) Active() int {
	return f.Count(Free) + f.Count(Stuck)
}

// AverageRadius returns the mean distance of free particles from center,
// or zero when none are free. Collapse progress is measured with this.
func (f *Field) AverageRadius(center stellar.Vec3) float64 {
	sum, n := 0.0, 0
	for i := 0; i < f.capacity; i++ {
		if f.state[i] != Free {
			continue
		}
		sum += f.pos[i].Sub(center).Length()
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Render buffers. The renderer re-reads these every frame; the slices are
// live views, never copies.

func (f *Field) Positions() []stellar.Vec3  { return f.pos }
func (f *Field) Velocities() []stellar.Vec3 { return f.vel }
func (f *Field) Colors() []stellar.RGB      { return f.col }
func (f *Field) States() []LifeState        { return f.state }

// State returns the life state of one slot.
func (f *Field) State(i int) LifeState {
	if i < 0 || i >= f.capacity {
		return Inactive
	}
	return f.state[i]
}

// Position returns the position of one slot.
func (f *Field) Position(i int) stellar.Vec3 {
	if i < 0 || i >= f.capacity {
		return FarSentinel
	}
	return f.pos[i]
}
