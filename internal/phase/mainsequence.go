package phase

import (
	"math"
	"math/rand"

	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/particle"
	"github.com/san-kum/starlab/internal/physics"
	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

var (
	starColor = stellar.RGB{R: 1, G: 0.92, B: 0.72}
	windColor = stellar.RGB{R: 1, G: 0.85, B: 0.55}
)

// MainSequence is the long stable burn: a pulsing star shedding a thin
// wind. The radius is seeded from the protostar's exact terminal radius
// so the handover shows no pop.
type MainSequence struct {
	visual
	cfg *config.Config
	rng *rand.Rand

	baseRadius float64
	t          float64
	elapsed    float64

	wind    *particle.Field
	force   *physics.RadialForce
	windOut spawner
	view    telemetry.BodyView
}

func NewMainSequence(cfg *config.Config, seedRadius float64, rng *rand.Rand) *MainSequence {
	m := &MainSequence{
		visual:     newVisual(),
		cfg:        cfg,
		rng:        rng,
		baseRadius: seedRadius,
	}

	// Radiation pressure: a weak outward push plus drag and jitter.
	m.force = physics.NewRadialForce(stellar.Vec3{}, -0.9)
	m.force.Softening = 2.0
	m.force.Drag = 0.997
	m.force.Turbulence = 0.0012
	m.force.TurbulenceScale = 0.2
	m.force.MaxVelocity = 0.5

	m.wind = particle.NewField(cfg.Star.WindCount, rng)

	m.view.Phase = stellar.MainSequence
	m.view.Fields = []*particle.Field{m.wind}
	m.updateView()
	return m
}

func (m *MainSequence) Advance(dt float64) {
	if dt <= 0 || m.disposed {
		return
	}
	m.t += dt
	m.elapsed += dt
	m.advanceFormation(dt)

	sc := m.cfg.Star
	r := m.Radius()
	if n := m.windOut.due(sc.WindRate, dt); n > 0 {
		m.wind.SpawnBatch(n, particle.SpawnSpec{
			Origin:      physics.ShellOrigin{Radius: stellar.Range{Min: r * 1.04, Max: r * 1.18}},
			Velocity:    physics.RadialVelocity{Speed: sc.WindSpeed},
			Life:        sc.WindLife,
			Color:       windColor,
			ColorJitter: 0.08,
		})
	}

	m.wind.Integrate(dt, m.t, m.force)
	m.wind.RetireBeyond(stellar.Vec3{}, sc.WindRange)

	m.updateView()
}

// Radius is the pulsing surface radius.
func (m *MainSequence) Radius() float64 {
	sc := m.cfg.Star
	pulse := 1 + sc.PulseAmp*stellar.FastSin(2*math.Pi*sc.PulseRate*m.t)
	return m.baseRadius * pulse
}

func (m *MainSequence) updateView() {
	m.view.Opacity = m.alpha()
	m.view.Radius = m.Radius()
	m.view.Color = starColor
	m.view.Glow = 0.75 + 0.1*stellar.FastSin(2*math.Pi*m.cfg.Star.PulseRate*m.t)
}

func (m *MainSequence) Done() bool           { return m.elapsed >= m.cfg.Star.Duration }
func (m *MainSequence) Phase() stellar.Phase { return stellar.MainSequence }

func (m *MainSequence) Progress() float64 {
	return stellar.Clamp01(m.elapsed / m.cfg.Star.Duration)
}

func (m *MainSequence) View() *telemetry.BodyView { return &m.view }

func (m *MainSequence) Dispose() {
	m.disposed = true
	m.view.Fields = nil
	m.wind = nil
}
