package phase

import (
	"math"
	"math/rand"

	"github.com/san-kum/starlab/internal/accrete"
	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/particle"
	"github.com/san-kum/starlab/internal/physics"
	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

// RemnantKind is the one random draw made at phase entry.
type RemnantKind uint8

const (
	BlackHole RemnantKind = iota
	NeutronStar
)

func (k RemnantKind) String() string {
	if k == BlackHole {
		return "BLACK_HOLE"
	}
	return "NEUTRON_STAR"
}

const neutronRadius = 1.2

var (
	diskHot      = stellar.RGB{R: 1, G: 0.85, B: 0.55}
	streamColor  = stellar.RGB{R: 0.95, G: 0.55, B: 0.25}
	infallColor  = stellar.RGB{R: 0.6, G: 0.65, B: 0.95}
	neutronColor = stellar.RGB{R: 0.8, G: 0.9, B: 1}
	shellColor   = stellar.RGB{R: 0.55, G: 0.75, B: 1}
)

// Remnant is the terminal stage. A black hole feeds on accretion streams
// and grows its horizon through the mass ledger; a neutron star sits
// inside its expanding supernova shell sweeping a pulsar beam. The stage
// never completes.
type Remnant struct {
	visual
	cfg  *config.Config
	rng  *rand.Rand
	kind RemnantKind

	t      float64
	ledger *accrete.Ledger

	// Black hole: two independent streams capture against one ledger.
	disk      *particle.Field
	infall    *particle.Field
	diskForce *physics.RadialForce
	inForce   *physics.RadialForce
	diskGate  *accrete.Gate
	inGate    *accrete.Gate
	diskOut   spawner
	inOut     spawner
	eaten     int // consumptions last frame, drives the jet pulse

	// Neutron star: a free-expanding shell and a swept beam.
	shell      *particle.Field
	shellForce *physics.RadialForce

	view telemetry.BodyView
}

// NewRemnant draws the remnant kind and builds its subsystems. The draw
// happens exactly once, here.
func NewRemnant(cfg *config.Config, rng *rand.Rand) *Remnant {
	r := &Remnant{
		visual: newVisual(),
		cfg:    cfg,
		rng:    rng,
	}
	rc := cfg.Remnant

	r.ledger = accrete.NewLedger(rc.HorizonBase, rc.HorizonGain, rc.HorizonMax)

	if rng.Float64() < rc.BlackHoleChance {
		r.kind = BlackHole
		r.buildBlackHole()
	} else {
		r.kind = NeutronStar
		r.buildNeutronStar()
	}

	r.view.Phase = stellar.Remnant
	r.updateView()
	return r
}

func (r *Remnant) buildBlackHole() {
	rc := r.cfg.Remnant

	r.diskForce = physics.NewRadialForce(stellar.Vec3{}, rc.Accrete.Strength)
	r.diskForce.Softening = 1.5
	r.diskForce.Drag = 0.998
	r.diskForce.Swirl = rc.Accrete.Swirl
	r.diskForce.Flatten = 0.02
	r.diskForce.Turbulence = 0.0015
	r.diskForce.MaxVelocity = 1.1

	r.inForce = physics.NewRadialForce(stellar.Vec3{}, rc.Accrete.Strength*0.8)
	r.inForce.Softening = 1.5
	r.inForce.TangentialDamp = 0.01
	r.inForce.Drag = 0.997
	r.inForce.MaxVelocity = 1.0

	r.disk = particle.NewField(rc.Accrete.Count, r.rng)
	r.infall = particle.NewField(rc.Accrete.Count/2, r.rng)

	r.diskGate = accrete.NewConsumeGate(stellar.Vec3{}, r.ledger, r.rng)
	r.inGate = accrete.NewConsumeGate(stellar.Vec3{}, r.ledger, r.rng)

	r.view.Fields = []*particle.Field{r.disk, r.infall}
}

func (r *Remnant) buildNeutronStar() {
	rc := r.cfg.Remnant

	r.shellForce = physics.NewRadialForce(stellar.Vec3{}, 0)
	r.shellForce.Drag = 0.9995
	r.shellForce.Turbulence = 0.0008
	r.shellForce.TurbulenceScale = 0.04
	r.shellForce.MaxVelocity = 0.8

	r.shell = particle.NewField(rc.ShellCount, r.rng)
	r.shell.SpawnBatch(rc.ShellCount, particle.SpawnSpec{
		Origin:      physics.ShellOrigin{Radius: stellar.Range{Min: neutronRadius * 2, Max: neutronRadius * 3.5}},
		Velocity:    physics.RadialVelocity{Speed: rc.ShellSpeed},
		Color:       shellColor,
		ColorJitter: 0.12,
	})

	r.view.Fields = []*particle.Field{r.shell}
}

func (r *Remnant) Advance(dt float64) {
	if dt <= 0 || r.disposed {
		return
	}
	r.t += dt
	r.advanceFormation(dt)

	if r.kind == BlackHole {
		r.advanceBlackHole(dt)
	} else {
		r.advanceNeutronStar(dt)
	}
	r.updateView()
}

func (r *Remnant) advanceBlackHole(dt float64) {
	rc := r.cfg.Remnant

	if n := r.diskOut.due(rc.Accrete.Rate, dt); n > 0 {
		r.disk.SpawnBatch(n, particle.SpawnSpec{
			Origin:      physics.DiscOrigin{Radius: rc.Accrete.Radius, Thickness: 3},
			Velocity:    physics.OrbitalVelocity{Force: r.diskForce, Fraction: 0.85, Spread: 0.15},
			Color:       streamColor,
			ColorJitter: 0.1,
		})
	}
	if n := r.inOut.due(rc.Accrete.Rate*0.4, dt); n > 0 {
		r.infall.SpawnBatch(n, particle.SpawnSpec{
			Origin:      physics.ShellOrigin{Radius: rc.Accrete.Radius},
			Velocity:    physics.RadialVelocity{Speed: stellar.Range{Min: -0.08, Max: -0.02}},
			Color:       infallColor,
			ColorJitter: 0.1,
		})
	}

	horizon := r.ledger.CaptureRadius()
	heatOuter := horizon * 4

	r.disk.Integrate(dt, r.t, r.diskForce)
	r.disk.HeatToward(stellar.Vec3{}, horizon, heatOuter, diskHot, 0.9, dt)

	r.infall.Integrate(dt, r.t, r.inForce)
	r.infall.HeatToward(stellar.Vec3{}, horizon, heatOuter, diskHot, 0.9, dt)

	// Both gates settle against the same ledger within the frame, so a
	// quantum eaten from the disk widens the boundary the infall stream
	// tests a moment later.
	res := r.diskGate.Apply(r.disk)
	res2 := r.inGate.Apply(r.infall)
	r.eaten = res.Consumed + res2.Consumed

	far := rc.Accrete.Radius.Max * 2
	r.disk.RetireBeyond(stellar.Vec3{}, far)
	r.infall.RetireBeyond(stellar.Vec3{}, far)
}

func (r *Remnant) advanceNeutronStar(dt float64) {
	r.shell.Integrate(dt, r.t, r.shellForce)
	r.shell.RetireBeyond(stellar.Vec3{}, r.cfg.Star.WindRange*2.5)
}

func (r *Remnant) updateView() {
	r.view.Opacity = r.alpha()

	if r.kind == BlackHole {
		rc := r.cfg.Remnant
		horizon := r.ledger.CaptureRadius()

		r.view.Radius = horizon
		r.view.HorizonR = horizon
		r.view.Color = stellar.RGB{} // the horizon is black
		r.view.DiskInner = horizon * 1.5
		r.view.DiskOuter = horizon * rc.DiskMult
		r.view.DiskAlpha = r.alpha()
		r.view.JetLength = horizon * rc.JetMult
		r.view.JetAlpha = r.alpha() * stellar.Clamp01(0.55+0.12*float64(r.eaten))
		r.view.Glow = stellar.Clamp01(0.3 + 0.04*float64(r.eaten))
		return
	}

	rc := r.cfg.Remnant
	r.view.Radius = neutronRadius
	r.view.Color = neutronColor
	r.view.BeamAngle = math.Mod(r.t*rc.BeamRate, 2*math.Pi)
	r.view.BeamLength = neutronRadius * 14
	r.view.Glow = 0.6 + 0.4*stellar.FastSin(r.t*rc.BeamRate*2)
}

// Done is always false: the remnant is where the lifecycle rests.
func (r *Remnant) Done() bool              { return false }
func (r *Remnant) Phase() stellar.Phase    { return stellar.Remnant }
func (r *Remnant) Progress() float64       { return 1 }
func (r *Remnant) Kind() RemnantKind       { return r.kind }
func (r *Remnant) Ledger() *accrete.Ledger { return r.ledger }

func (r *Remnant) View() *telemetry.BodyView { return &r.view }

// Eaten reports consumptions from the latest frame.
func (r *Remnant) Eaten() int { return r.eaten }

func (r *Remnant) Dispose() {
	r.disposed = true
	r.view.Fields = nil
	r.disk, r.infall, r.shell = nil, nil, nil
}
