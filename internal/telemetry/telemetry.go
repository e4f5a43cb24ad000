package telemetry

import (
	"github.com/san-kum/starlab/internal/particle"
	"github.com/san-kum/starlab/internal/stellar"
)

// BodyView is the render surface of one phase body: live particle buffers
// plus the scalar visual parameters the renderer needs. Fields that do not
// apply to a body stay zero.
type BodyView struct {
	Phase   stellar.Phase
	Opacity float64
	Center  stellar.Vec3

	Radius float64 // visual radius of the central body
	Color  stellar.RGB
	Glow   float64 // 0..1 brightness boost around the body

	Flash      float64 // whole-scene flash, detonation only
	HorizonR   float64 // event horizon radius, black hole only
	DiskInner  float64 // accretion disk annulus
	DiskOuter  float64
	DiskAlpha  float64 // disk fade-in
	JetLength  float64 // polar jet extent
	JetAlpha   float64 // jet fade-in
	BeamAngle  float64 // pulsar beam azimuth, neutron star only
	BeamLength float64

	Fields []*particle.Field
}

// Transition records one phase change and when it happened.
type Transition struct {
	From, To stellar.Phase
	AtTime   float64
}

// Snapshot is the per-frame scalar state of the whole simulation.
type Snapshot struct {
	Phase        stellar.Phase
	PhaseElapsed float64
	TotalElapsed float64
	Progress     float64 // collapse progress, or elapsed fraction of a timed phase
	TimeScale    float64
	Paused       bool

	ConsumedMass  float64
	CaptureRadius float64
	StarRadius    float64

	Free     int
	Stuck    int
	Consumed int
	Active   int

	RemnantKind string // empty until the remnant forms
	Transitions []Transition
}

// Sample is one recorded history point.
type Sample struct {
	Time          float64
	Phase         stellar.Phase
	Mass          float64
	CaptureRadius float64
	StarRadius    float64
	Progress      float64
	Free          int
	Stuck         int
	Consumed      int
}

// History samples snapshots at a fixed interval, keeping at most maxLen
// points by dropping the oldest. Charts and recordings read from here.
type History struct {
	interval float64
	maxLen   int
	acc      float64
	samples  []Sample
}

// NewHistory records one sample every interval seconds, keeping maxLen at
// most. maxLen <= 0 keeps everything.
func NewHistory(interval float64, maxLen int) *History {
	return &History{interval: interval, maxLen: maxLen}
}

// Observe accumulates dt and records a sample when the interval elapses.
// Returns whether a sample was taken.
func (h *History) Observe(dt float64, s Snapshot) bool {
	h.acc += dt
	if h.acc < h.interval {
		return false
	}
	h.acc -= h.interval

	h.samples = append(h.samples, Sample{
		Time:          s.TotalElapsed,
		Phase:         s.Phase,
		Mass:          s.ConsumedMass,
		CaptureRadius: s.CaptureRadius,
		StarRadius:    s.StarRadius,
		Progress:      s.Progress,
		Free:          s.Free,
		Stuck:         s.Stuck,
		Consumed:      s.Consumed,
	})
	if h.maxLen > 0 && len(h.samples) > h.maxLen {
		h.samples = h.samples[len(h.samples)-h.maxLen:]
	}
	return true
}

// Samples returns the recorded points, oldest first.
func (h *History) Samples() []Sample { return h.samples }

func (h *History) Len() int { return len(h.samples) }

// Interval is the sampling cadence in simulated seconds.
func (h *History) Interval() float64 { return h.interval }

// Column extracts one value per sample for plotting.
func (h *History) Column(get func(Sample) float64) []float64 {
	out := make([]float64, len(h.samples))
	for i, s := range h.samples {
		out[i] = get(s)
	}
	return out
}

// Reset drops all samples but keeps the cadence settings.
func (h *History) Reset() {
	h.samples = nil
	h.acc = 0
}
