package phase

import (
	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

// Body is one lifecycle stage. The director calls Advance once per frame
// while the stage is active or fading, polls Done for the transition
// trigger, and drives SetOpacity during crossfades. View returns the live
// render surface; the renderer re-reads it every frame.
type Body interface {
	Advance(dt float64)
	Done() bool
	Phase() stellar.Phase
	Progress() float64
	SetOpacity(o float64)
	Opacity() float64
	View() *telemetry.BodyView
	Dispose()
}

// formationRate ramps a new body's fade-in over roughly a second and a
// half of simulated time.
const formationRate = 1.0 / 1.5

// visual carries the fade state every body shares: the director-driven
// crossfade opacity and the body's own formation fade-in.
type visual struct {
	opacity   float64
	formation float64
	disposed  bool
}

func newVisual() visual { return visual{opacity: 1} }

func (v *visual) SetOpacity(o float64) { v.opacity = stellar.Clamp01(o) }
func (v *visual) Opacity() float64     { return v.opacity }

func (v *visual) advanceFormation(dt float64) {
	v.formation = stellar.Clamp01(v.formation + dt*formationRate)
}

// alpha is the composite opacity a view should carry.
func (v *visual) alpha() float64 { return v.opacity * stellar.SmoothStep(v.formation) }

// spawner converts a per-second spawn rate into whole spawns per frame,
// carrying the fraction across frames so low rates still emit.
type spawner struct {
	acc float64
}

func (s *spawner) due(rate, dt float64) int {
	s.acc += rate * dt
	n := int(s.acc)
	s.acc -= float64(n)
	return n
}
