package phase

import (
	"math/rand"

	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/particle"
	"github.com/san-kum/starlab/internal/physics"
	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

// The staged appearance of the remnant inside the detonation. The core
// swells first, the horizon snaps visible mid-swell, and the disk and
// jet fades deliberately overlap; none of this is one linear fade.
const (
	coreGrowthEnd = 1.5
	horizonSnapAt = 1.2
	diskFadeStart = 2.0
	diskFadeEnd   = 4.5
	jetFadeStart  = 3.5
	jetFadeEnd    = 7.5
)

var (
	shockColor  = stellar.RGB{R: 1, G: 0.96, B: 0.88}
	debrisColor = stellar.RGB{R: 1, G: 0.5, B: 0.18}
	novaCore    = stellar.RGB{R: 0.75, G: 0.85, B: 1}
)

// Supernova is the detonation: a shock-front shell and slower debris
// bursting out of the giant's envelope while a remnant core stages its
// appearance underneath.
type Supernova struct {
	visual
	cfg *config.Config
	rng *rand.Rand

	t       float64
	elapsed float64
	flash   float64

	shock  *particle.Field
	debris *particle.Field
	sForce *physics.RadialForce
	dForce *physics.RadialForce

	view telemetry.BodyView
}

// NewSupernova detonates at the given envelope radius: the shock front
// bursts from the surface, the debris from the interior.
func NewSupernova(cfg *config.Config, envelopeRadius float64, rng *rand.Rand) *Supernova {
	s := &Supernova{
		visual: newVisual(),
		cfg:    cfg,
		rng:    rng,
		flash:  1,
	}
	// The detonation needs no fade-in; the flash is the entrance.
	s.formation = 1

	sc := cfg.Supernova
	life := stellar.Range{Min: sc.Duration * 0.8, Max: sc.Duration * 1.4}

	s.sForce = physics.NewRadialForce(stellar.Vec3{}, -0.3)
	s.sForce.Softening = 4.0
	s.sForce.Drag = 0.999
	s.sForce.MaxVelocity = 1.6

	s.dForce = physics.NewRadialForce(stellar.Vec3{}, -0.15)
	s.dForce.Softening = 4.0
	s.dForce.Drag = 0.997
	s.dForce.Turbulence = 0.004
	s.dForce.TurbulenceScale = 0.06
	s.dForce.MaxVelocity = 1.2

	s.shock = particle.NewField(sc.ShockCount, rng)
	s.shock.SpawnBatch(sc.ShockCount, particle.SpawnSpec{
		Origin:      physics.ShellOrigin{Radius: stellar.Range{Min: envelopeRadius * 0.95, Max: envelopeRadius * 1.05}},
		Velocity:    physics.RadialVelocity{Speed: sc.ShockSpeed},
		Life:        life,
		Color:       shockColor,
		ColorJitter: 0.06,
	})

	s.debris = particle.NewField(sc.DebrisCount, rng)
	s.debris.SpawnBatch(sc.DebrisCount, particle.SpawnSpec{
		Origin:      physics.SphereOrigin{Radius: envelopeRadius * 0.55},
		Velocity:    physics.RadialVelocity{Speed: sc.DebrisSpeed},
		Life:        life,
		Color:       debrisColor,
		ColorJitter: 0.15,
	})

	s.view.Phase = stellar.Supernova
	s.view.Fields = []*particle.Field{s.shock, s.debris}
	s.updateView()
	return s
}

func (s *Supernova) Advance(dt float64) {
	if dt <= 0 || s.disposed {
		return
	}
	s.t += dt
	s.elapsed += dt

	s.flash -= s.cfg.Supernova.FlashDecay * dt
	if s.flash < 0 {
		s.flash = 0
	}

	s.shock.Integrate(dt, s.t, s.sForce)
	s.debris.Integrate(dt, s.t, s.dForce)

	s.updateView()
}

// fadeWindow maps elapsed time onto a 0..1 ramp between two instants.
func (s *Supernova) fadeWindow(start, end float64) float64 {
	return stellar.Clamp01((s.elapsed - start) / (end - start))
}

func (s *Supernova) updateView() {
	horizon := s.cfg.Remnant.HorizonBase

	s.view.Opacity = s.alpha()
	s.view.Flash = s.flash
	s.view.Color = novaCore
	s.view.Glow = stellar.Clamp01(0.4 + 0.6*s.flash)

	// Core-collapse swell.
	coreScale := stellar.SmoothStep(s.elapsed / coreGrowthEnd)
	s.view.Radius = horizon * coreScale

	// The horizon is instant: invisible, then there.
	if s.elapsed >= horizonSnapAt {
		s.view.HorizonR = horizon
	} else {
		s.view.HorizonR = 0
	}

	s.view.DiskAlpha = s.fadeWindow(diskFadeStart, diskFadeEnd)
	s.view.DiskInner = horizon * 1.5
	s.view.DiskOuter = horizon * s.cfg.Remnant.DiskMult

	s.view.JetAlpha = s.fadeWindow(jetFadeStart, jetFadeEnd)
	s.view.JetLength = horizon * s.cfg.Remnant.JetMult
}

func (s *Supernova) Done() bool           { return s.elapsed >= s.cfg.Supernova.Duration }
func (s *Supernova) Phase() stellar.Phase { return stellar.Supernova }

func (s *Supernova) Progress() float64 {
	return stellar.Clamp01(s.elapsed / s.cfg.Supernova.Duration)
}

func (s *Supernova) View() *telemetry.BodyView { return &s.view }

// Flash is the whole-scene white-out level.
func (s *Supernova) Flash() float64 { return s.flash }

func (s *Supernova) Dispose() {
	s.disposed = true
	s.view.Fields = nil
	s.shock = nil
	s.debris = nil
}
