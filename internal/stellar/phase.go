package stellar

// Phase identifies one stage of the stellar lifecycle.
type Phase int

const (
	NebulaCollapse Phase = iota
	MainSequence
	RedGiant
	Supernova
	Remnant
)

var phaseNames = [...]string{
	"NEBULA_COLLAPSE",
	"MAIN_SEQUENCE",
	"RED_GIANT",
	"SUPERNOVA",
	"REMNANT",
}

var phaseDescriptions = [...]string{
	"a cold molecular cloud falls inward and a protostar ignites",
	"a stable star burns, pulsing gently and shedding a thin wind",
	"the envelope swells and cools into a bloated giant",
	"the core collapses and the envelope detonates outward",
	"a compact object remains: black hole or neutron star",
}

func (p Phase) String() string {
	if !p.Valid() {
		return "UNKNOWN"
	}
	return phaseNames[p]
}

func (p Phase) Description() string {
	if !p.Valid() {
		return ""
	}
	return phaseDescriptions[p]
}

func (p Phase) Valid() bool { return p >= NebulaCollapse && p <= Remnant }

// Next returns the successor phase. REMNANT is terminal and has none.
func (p Phase) Next() (Phase, bool) {
	if !p.Valid() || p == Remnant {
		return p, false
	}
	return p + 1, true
}

func (p Phase) Terminal() bool { return p == Remnant }

// Phases lists all lifecycle stages in progression order.
func Phases() []Phase {
	return []Phase{NebulaCollapse, MainSequence, RedGiant, Supernova, Remnant}
}

// ParsePhase resolves a phase from its name, case-sensitively.
func ParsePhase(name string) (Phase, error) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), nil
		}
	}
	return 0, ErrUnknownPhase
}
