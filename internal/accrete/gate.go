package accrete

import (
	"math"
	"math/rand"

	"github.com/san-kum/starlab/internal/particle"
	"github.com/san-kum/starlab/internal/stellar"
)

// Stuck particles sit just inside or outside the surface, sampled from
// this band, which keeps an accreted crust from collapsing into a single
// shell line.
const (
	stickFactorMin = 0.98
	stickFactorMax = 1.02
)

// Result counts what one Apply pass captured.
type Result struct {
	Stuck    int
	Consumed int
}

// Gate captures free particles crossing a boundary. A stick gate welds
// them to a pulsing surface; a consume gate removes them and credits a
// ledger. Gates skip stuck and consumed particles by construction since
// they only visit free ones.
type Gate struct {
	center  stellar.Vec3
	surface func() float64 // stick boundary, read live each pass
	ledger  *Ledger        // consume boundary and mass credit
	rng     *rand.Rand
	closed  bool
}

// NewStickGate returns a gate that welds particles to a surface. The
// surface func is consulted on every pass so a pulsing or growing owner
// needs no further wiring.
func NewStickGate(center stellar.Vec3, surface func() float64, rng *rand.Rand) *Gate {
	return &Gate{center: center, surface: surface, rng: rng}
}

// NewConsumeGate returns a gate that consumes particles into a ledger.
// The capture boundary is the ledger's live radius.
func NewConsumeGate(center stellar.Vec3, ledger *Ledger, rng *rand.Rand) *Gate {
	return &Gate{center: center, ledger: ledger, rng: rng}
}

// SetCenter moves the boundary with its owner.
func (g *Gate) SetCenter(c stellar.Vec3) { g.center = c }

// Close permanently disables capture. A closed gate never reopens: once
// a protostar reaches critical mass the remaining cloud stays free.
func (g *Gate) Close() { g.closed = true }

func (g *Gate) Closed() bool { return g.closed }

// Apply tests every free particle against the boundary and captures the
// ones inside it. Safe to call every frame; each particle can be captured
// at most once in its life because only free particles are visited.
func (g *Gate) Apply(f *particle.Field) Result {
	var res Result
	if g.closed {
		return res
	}

	var radius float64
	switch {
	case g.ledger != nil:
		radius = g.ledger.CaptureRadius()
	case g.surface != nil:
		radius = g.surface()
	}
	if radius <= 0 {
		return res
	}
	r2 := radius * radius

	f.ForFree(func(i int, pos stellar.Vec3) {
		rel := pos.Sub(g.center)
		if rel.Dot(rel) >= r2 {
			return
		}

		if g.ledger != nil {
			if f.Consume(i) {
				g.ledger.AddQuantum()
				res.Consumed++
			}
			return
		}

		theta, phi := surfaceAngles(rel)
		factor := stickFactorMin + g.rng.Float64()*(stickFactorMax-stickFactorMin)
		f.Stick(i, theta, phi, factor)
		res.Stuck++
	})

	return res
}

// surfaceAngles converts an offset from the gate center to the spherical
// angles RepositionStuck expects, inclination from the +Y pole.
func surfaceAngles(rel stellar.Vec3) (theta, phi float64) {
	r := rel.Length()
	if r == 0 {
		return 0, 0
	}
	theta = math.Acos(stellar.Clamp(rel.Y/r, -1, 1))
	phi = math.Atan2(rel.Z, rel.X)
	return theta, phi
}
