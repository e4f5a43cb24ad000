package analysis

import (
	"fmt"

	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

// MassGrowthRate is the average accreted mass per simulated second
// across the series.
func MassGrowthRate(samples []telemetry.Sample) (float64, error) {
	if len(samples) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 samples", stellar.ErrEmptySeries)
	}
	first, last := samples[0], samples[len(samples)-1]
	span := last.Time - first.Time
	if span <= 0 {
		return 0, fmt.Errorf("%w: series spans no time", stellar.ErrEmptySeries)
	}
	return (last.Mass - first.Mass) / span, nil
}

// PhaseSpans sums the simulated seconds each phase held across the
// series, keyed by phase name.
func PhaseSpans(samples []telemetry.Sample) map[string]float64 {
	spans := make(map[string]float64)
	for i := 1; i < len(samples); i++ {
		dt := samples[i].Time - samples[i-1].Time
		if dt <= 0 {
			continue
		}
		spans[samples[i].Phase.String()] += dt
	}
	return spans
}

// PeakStarRadius returns the largest star radius in the series and the
// time it was seen.
func PeakStarRadius(samples []telemetry.Sample) (radius, at float64) {
	for _, s := range samples {
		if s.StarRadius > radius {
			radius, at = s.StarRadius, s.Time
		}
	}
	return radius, at
}
