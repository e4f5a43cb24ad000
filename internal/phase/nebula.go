package phase

import (
	"math/rand"

	"github.com/san-kum/starlab/internal/accrete"
	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/particle"
	"github.com/san-kum/starlab/internal/physics"
	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

// collapseDone is the progress threshold that ends the stage.
const collapseDone = 0.92

// captureMargin widens the stick boundary slightly past the visible
// surface so capture reads as touching rather than clipping through.
const captureMargin = 1.25

var (
	cloudColor  = stellar.RGB{R: 0.42, G: 0.5, B: 0.92}
	emberColor  = stellar.RGB{R: 0.85, G: 0.3, B: 0.15}
	igniteColor = stellar.RGB{R: 1, G: 0.95, B: 0.85}
	coreHot     = stellar.RGB{R: 1, G: 0.78, B: 0.5}
)

// Nebula is the opening stage: a cold molecular cloud collapsing onto a
// growing protostar core. Infalling particles stick to the core surface
// until critical mass closes the gate; from then on the core grows by
// scale animation alone and the glow ramps toward ignition.
type Nebula struct {
	visual
	cfg *config.Config
	rng *rand.Rand

	cloud *particle.Field
	force *physics.RadialForce
	gate  *accrete.Gate

	t          float64
	coreRadius float64
	coreMass   float64
	initialAvg float64
	progress   float64
	ignition   float64

	view telemetry.BodyView
}

func NewNebula(cfg *config.Config, rng *rand.Rand) *Nebula {
	n := &Nebula{
		visual:     newVisual(),
		cfg:        cfg,
		rng:        rng,
		coreRadius: cfg.Nebula.CoreRadius,
	}

	nc := cfg.Nebula
	n.force = physics.NewRadialForce(stellar.Vec3{}, nc.Strength)
	n.force.Softening = nc.Softening
	n.force.TangentialDamp = 0.006
	n.force.Drag = 0.9965
	n.force.Swirl = nc.Swirl
	n.force.Turbulence = nc.Turbulence
	n.force.TurbulenceScale = 0.08
	n.force.MaxVelocity = 0.9

	n.cloud = particle.NewField(nc.CloudCount, rng)
	n.cloud.SpawnBatch(nc.CloudCount, particle.SpawnSpec{
		Origin:      physics.ShellOrigin{Radius: nc.CloudRadius},
		Velocity:    physics.OrbitalVelocity{Force: n.force, Fraction: 0.55, Spread: 0.35},
		Color:       cloudColor,
		ColorJitter: 0.14,
	})
	n.initialAvg = n.cloud.AverageRadius(stellar.Vec3{})

	n.gate = accrete.NewStickGate(stellar.Vec3{}, func() float64 {
		return n.coreRadius * captureMargin
	}, rng)

	n.view.Phase = stellar.NebulaCollapse
	n.view.Fields = []*particle.Field{n.cloud}
	n.updateView()
	return n
}

func (n *Nebula) Advance(dt float64) {
	if dt <= 0 || n.disposed {
		return
	}
	n.t += dt
	n.advanceFormation(dt)

	n.cloud.Integrate(dt, n.t, n.force)
	n.cloud.HeatToward(stellar.Vec3{}, n.coreRadius*2, n.coreRadius*8, coreHot, 0.6, dt)

	res := n.gate.Apply(n.cloud)
	if res.Stuck > 0 {
		n.coreMass += float64(res.Stuck) * accrete.MassQuantum
		n.coreRadius += float64(res.Stuck) * n.cfg.Nebula.CoreGrowth
	}

	if !n.gate.Closed() && n.coreMass >= n.cfg.Nebula.CriticalMass {
		n.gate.Close()
	}
	if n.gate.Closed() {
		// Past the gate the core detaches from its reservoir: growth is
		// pure scale animation, tapering off as the glow saturates.
		n.coreRadius += dt * 0.25 * (1 - n.ignition)
		n.ignition = stellar.Clamp01(n.ignition + dt/2.0)
	}

	n.cloud.RepositionStuck(stellar.Vec3{}, n.coreRadius)

	n.updateProgress()
	n.updateView()
}

// updateProgress folds the shrinking average cloud radius and the stuck
// fraction into one clamped, never-decreasing metric.
func (n *Nebula) updateProgress() {
	shrink := 1.0
	if n.initialAvg > 0 {
		if avg := n.cloud.AverageRadius(stellar.Vec3{}); avg > 0 {
			shrink = stellar.Clamp01(1 - avg/n.initialAvg)
		}
	}

	stuckFrac := 0.0
	if total := n.cloud.Capacity(); total > 0 {
		stuckFrac = float64(n.cloud.Count(particle.Stuck)) / float64(total)
	}

	if p := stellar.Clamp01(shrink + stuckFrac*0.35); p > n.progress {
		n.progress = p
	}
}

func (n *Nebula) updateView() {
	pulse := 1 + 0.05*n.ignition*stellar.FastSin(n.t*5.2)
	n.view.Opacity = n.alpha()
	n.view.Radius = n.coreRadius * pulse
	n.view.Glow = stellar.Clamp01(0.15 + 0.85*n.ignition)
	n.view.Color = emberColor.Lerp(igniteColor, n.ignition)
}

func (n *Nebula) Done() bool           { return n.progress >= collapseDone }
func (n *Nebula) Phase() stellar.Phase { return stellar.NebulaCollapse }
func (n *Nebula) Progress() float64    { return n.progress }

func (n *Nebula) View() *telemetry.BodyView { return &n.view }

// CoreMass is the mass accumulated by sticking, in ledger units.
func (n *Nebula) CoreMass() float64 { return n.coreMass }

// Ignited reports whether the critical-mass gate has closed.
func (n *Nebula) Ignited() bool { return n.gate.Closed() }

func (n *Nebula) Dispose() {
	n.disposed = true
	n.view.Fields = nil
	n.cloud = nil
}
