package director

import (
	"math/rand"
	"time"

	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/particle"
	"github.com/san-kum/starlab/internal/phase"
	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

// MaxStep caps one raw frame step. A stalled renderer delivers one big
// dt when it wakes; clamping it keeps particles from tunneling through
// capture radii.
const MaxStep = 0.1

// Time scale bounds reachable through SetTimeScale.
const (
	MinTimeScale = 0.25
	MaxTimeScale = 8
)

// consumeCueGap rate-limits the consumption cue so a feeding frenzy
// plays as a rhythm instead of a buzz.
const consumeCueGap = 0.2

// CueSink receives named fire-and-forget cues: "phase:<NAME>" on every
// phase entry plus one-shots like "ignition", "detonation" and
// "consume". Implementations must not block.
type CueSink interface {
	Cue(name string)
}

// Director is the top-level state machine. Not safe for concurrent use;
// drive it from one frame loop.
type Director struct {
	cfg  *config.Config
	rng  *rand.Rand
	cues []CueSink

	active   phase.Body
	fading   phase.Body
	fadeLeft float64

	phaseElapsed float64
	totalElapsed float64
	timeScale    float64
	paused       bool
	started      bool

	frozenMass   float64
	ignitionCued bool
	consumeCool  float64

	transitions []telemetry.Transition
}

// New builds a director at the start of the lifecycle. Seed zero means
// seed from the clock, matching the config contract.
func New(cfg *config.Config) *Director {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	d := &Director{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		timeScale: cfg.TimeScale,
	}
	if d.timeScale <= 0 {
		d.timeScale = 1
	}
	d.active = phase.NewNebula(cfg, d.rng)
	return d
}

func (d *Director) AddCueSink(s CueSink) { d.cues = append(d.cues, s) }

// CueSinks returns the attached sinks so a restarted run can carry them
// over to its replacement director.
func (d *Director) CueSinks() []CueSink { return d.cues }

func (d *Director) cue(name string) {
	for _, s := range d.cues {
		s.Cue(name)
	}
}

// Advance steps the simulation by dt seconds of wall time. Scaled time
// is what the bodies see. Zero or negative dt and the paused state are
// both strict no-ops.
func (d *Director) Advance(dt float64) {
	if dt <= 0 || d.paused {
		return
	}
	if !d.started {
		d.started = true
		d.cue("phase:" + d.active.Phase().String())
	}
	if dt > MaxStep {
		dt = MaxStep
	}
	dt *= d.timeScale

	d.totalElapsed += dt
	d.phaseElapsed += dt

	d.active.Advance(dt)
	d.advanceFade(dt)
	d.pollOneShots(dt)

	if d.active.Done() {
		d.transition()
	}
}

func (d *Director) advanceFade(dt float64) {
	if d.fading == nil {
		return
	}
	d.fading.Advance(dt)
	d.fadeLeft -= dt
	if d.fadeLeft <= 0 {
		d.fading.Dispose()
		d.fading = nil
		return
	}
	d.fading.SetOpacity(d.fadeLeft / d.cfg.Crossfade)
}

func (d *Director) pollOneShots(dt float64) {
	switch b := d.active.(type) {
	case *phase.Nebula:
		if !d.ignitionCued && b.Ignited() {
			d.ignitionCued = true
			d.cue("ignition")
		}
	case *phase.Remnant:
		d.consumeCool -= dt
		if b.Eaten() > 0 && d.consumeCool <= 0 {
			d.consumeCool = consumeCueGap
			d.cue("consume")
		}
	}
}

// transition swaps in the next stage, seeded with the outgoing stage's
// exact visual radius. The swap itself is the once-only guard: a
// completion trigger can never fire twice because its body is no longer
// the active one.
func (d *Director) transition() {
	from := d.active.Phase()
	next, ok := from.Next()
	if !ok {
		return
	}

	if n, isNebula := d.active.(*phase.Nebula); isNebula {
		d.frozenMass = n.CoreMass()
	}

	seed := d.active.View().Radius
	var nb phase.Body
	switch next {
	case stellar.MainSequence:
		nb = phase.NewMainSequence(d.cfg, seed, d.rng)
	case stellar.RedGiant:
		nb = phase.NewRedGiant(d.cfg, seed, d.rng)
	case stellar.Supernova:
		nb = phase.NewSupernova(d.cfg, seed, d.rng)
	case stellar.Remnant:
		nb = phase.NewRemnant(d.cfg, d.rng)
	}

	if d.fading != nil {
		d.fading.Dispose()
	}
	if d.cfg.Crossfade > 0 {
		d.fading = d.active
		d.fadeLeft = d.cfg.Crossfade
	} else {
		d.active.Dispose()
		d.fading = nil
	}

	d.active = nb
	d.phaseElapsed = 0
	d.transitions = append(d.transitions, telemetry.Transition{
		From:   from,
		To:     next,
		AtTime: d.totalElapsed,
	})

	d.cue("phase:" + next.String())
	if next == stellar.Supernova {
		d.cue("detonation")
	}
}

// Views returns the render surfaces in draw order, the fading body
// underneath the active one.
func (d *Director) Views() []*telemetry.BodyView {
	if d.fading != nil {
		return []*telemetry.BodyView{d.fading.View(), d.active.View()}
	}
	return []*telemetry.BodyView{d.active.View()}
}

// Snapshot aggregates the per-frame scalar state for telemetry, charts
// and recordings.
func (d *Director) Snapshot() telemetry.Snapshot {
	s := telemetry.Snapshot{
		Phase:        d.active.Phase(),
		PhaseElapsed: d.phaseElapsed,
		TotalElapsed: d.totalElapsed,
		Progress:     d.active.Progress(),
		TimeScale:    d.timeScale,
		Paused:       d.paused,
		ConsumedMass: d.frozenMass,
		StarRadius:   d.active.View().Radius,
		Transitions:  d.transitions,
	}

	switch b := d.active.(type) {
	case *phase.Nebula:
		s.ConsumedMass = b.CoreMass()
	case *phase.Remnant:
		s.ConsumedMass = b.Ledger().ConsumedMass()
		s.CaptureRadius = b.Ledger().CaptureRadius()
		s.RemnantKind = b.Kind().String()
	}

	for _, v := range d.Views() {
		for _, f := range v.Fields {
			s.Free += f.Count(particle.Free)
			s.Stuck += f.Count(particle.Stuck)
			s.Consumed += f.Count(particle.Consumed)
			s.Active += f.Active()
		}
	}
	return s
}

func (d *Director) Phase() stellar.Phase  { return d.active.Phase() }
func (d *Director) Progress() float64     { return d.active.Progress() }
func (d *Director) TotalElapsed() float64 { return d.totalElapsed }
func (d *Director) PhaseElapsed() float64 { return d.phaseElapsed }
func (d *Director) Paused() bool          { return d.paused }
func (d *Director) TimeScale() float64    { return d.timeScale }

func (d *Director) TogglePause() { d.paused = !d.paused }

// SetTimeScale clamps into [MinTimeScale, MaxTimeScale].
func (d *Director) SetTimeScale(v float64) {
	d.timeScale = stellar.Clamp(v, MinTimeScale, MaxTimeScale)
}

// Transitions returns the phase changes seen so far, oldest first. The
// slice is read-only to callers.
func (d *Director) Transitions() []telemetry.Transition { return d.transitions }
