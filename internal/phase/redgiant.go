package phase

import (
	"math/rand"

	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/particle"
	"github.com/san-kum/starlab/internal/physics"
	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

// The envelope swells over the first part of the stage, then holds.
const giantExpandFraction = 0.6

var (
	giantColor     = stellar.RGB{R: 1, G: 0.45, B: 0.2}
	giantWindColor = stellar.RGB{R: 1, G: 0.55, B: 0.3}
)

// RedGiant swells from the main-sequence radius toward a cooler, redder
// envelope, shedding a slower and denser wind.
type RedGiant struct {
	visual
	cfg *config.Config
	rng *rand.Rand

	seedRadius float64
	t          float64
	elapsed    float64

	wind    *particle.Field
	force   *physics.RadialForce
	windOut spawner
	view    telemetry.BodyView
}

func NewRedGiant(cfg *config.Config, seedRadius float64, rng *rand.Rand) *RedGiant {
	g := &RedGiant{
		visual:     newVisual(),
		cfg:        cfg,
		rng:        rng,
		seedRadius: seedRadius,
	}

	g.force = physics.NewRadialForce(stellar.Vec3{}, -0.5)
	g.force.Softening = 3.0
	g.force.Drag = 0.998
	g.force.Turbulence = 0.0018
	g.force.TurbulenceScale = 0.12
	g.force.MaxVelocity = 0.35

	g.wind = particle.NewField(cfg.Star.WindCount, rng)

	g.view.Phase = stellar.RedGiant
	g.view.Fields = []*particle.Field{g.wind}
	g.updateView()
	return g
}

func (g *RedGiant) Advance(dt float64) {
	if dt <= 0 || g.disposed {
		return
	}
	g.t += dt
	g.elapsed += dt
	g.advanceFormation(dt)

	r := g.Radius()
	gc := g.cfg.Giant
	sc := g.cfg.Star
	if n := g.windOut.due(gc.WindRate, dt); n > 0 {
		slow := stellar.Range{Min: sc.WindSpeed.Min * gc.WindSlow, Max: sc.WindSpeed.Max * gc.WindSlow}
		g.wind.SpawnBatch(n, particle.SpawnSpec{
			Origin:      physics.ShellOrigin{Radius: stellar.Range{Min: r * 1.03, Max: r * 1.12}},
			Velocity:    physics.RadialVelocity{Speed: slow},
			Life:        sc.WindLife,
			Color:       giantWindColor,
			ColorJitter: 0.1,
		})
	}

	g.wind.Integrate(dt, g.t, g.force)
	g.wind.RetireBeyond(stellar.Vec3{}, sc.WindRange*1.4)

	g.updateView()
}

// expansion is the 0..1 swell fraction, eased and then held.
func (g *RedGiant) expansion() float64 {
	window := g.cfg.Giant.Duration * giantExpandFraction
	return stellar.SmoothStep(g.elapsed / window)
}

// Radius lerps from the seeded radius to the full giant envelope.
func (g *RedGiant) Radius() float64 {
	return stellar.Lerp(g.seedRadius, g.seedRadius*g.cfg.Giant.RadiusMult, g.expansion())
}

func (g *RedGiant) updateView() {
	e := g.expansion()
	g.view.Opacity = g.alpha()
	g.view.Radius = g.Radius()
	g.view.Color = starColor.Lerp(giantColor, e)
	g.view.Glow = 0.7 - 0.25*e // cooler as it swells
}

func (g *RedGiant) Done() bool           { return g.elapsed >= g.cfg.Giant.Duration }
func (g *RedGiant) Phase() stellar.Phase { return stellar.RedGiant }

func (g *RedGiant) Progress() float64 {
	return stellar.Clamp01(g.elapsed / g.cfg.Giant.Duration)
}

func (g *RedGiant) View() *telemetry.BodyView { return &g.view }

func (g *RedGiant) Dispose() {
	g.disposed = true
	g.view.Fields = nil
	g.wind = nil
}
