package accrete

// MassQuantum is the mass credited per consumed particle.
const MassQuantum = 0.0001

// Ledger tracks mass consumed by a compact object and maps it to a
// capture radius. Consumed mass is monotone non-decreasing; the radius
// is a bounded monotone function of it. All growth funnels through
// AddQuantum and all geometry reads funnel through CaptureRadius, so the
// two can never disagree.
type Ledger struct {
	mass    float64
	quantum float64

	base float64 // radius at zero consumed mass
	gain float64 // radius growth per unit mass
	max  float64 // hard cap
}

// NewLedger returns a ledger with the given radius law. The radius grows
// from base by gain per unit of consumed mass and never exceeds max.
func NewLedger(base, gain, max float64) *Ledger {
	return &Ledger{
		quantum: MassQuantum,
		base:    base,
		gain:    gain,
		max:     max,
	}
}

// AddQuantum credits one particle's worth of mass.
func (l *Ledger) AddQuantum() {
	l.mass += l.quantum
}

// ConsumedMass returns the total mass consumed so far.
func (l *Ledger) ConsumedMass() float64 { return l.mass }

// CaptureRadius returns the current capture boundary. Callers must not
// cache this across frames; it moves whenever mass does.
func (l *Ledger) CaptureRadius() float64 {
	r := l.base + l.gain*l.mass
	if r > l.max {
		return l.max
	}
	return r
}
