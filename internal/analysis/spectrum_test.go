package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

func sine(n int, period, dt float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 3 + math.Sin(2*math.Pi*float64(i)*dt/period)
	}
	return out
}

func TestDominantPeriod_RecoversSine(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		period float64
		dt     float64
	}{
		{"one hertz", 256, 1.0, 1.0 / 32.0},
		{"slow pulse", 512, 4.0, 0.125},
		{"fast pulse", 256, 0.5, 1.0 / 64.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DominantPeriod(sine(tt.n, tt.period, tt.dt), tt.dt)
			if err != nil {
				t.Fatalf("DominantPeriod() error = %v", err)
			}
			// Bin resolution bounds the error.
			if math.Abs(got-tt.period) > tt.period*0.15 {
				t.Errorf("DominantPeriod() = %v, want about %v", got, tt.period)
			}
		})
	}
}

func TestDominantPeriod_ShortSeries(t *testing.T) {
	if _, err := DominantPeriod([]float64{1, 2}, 0.5); !errors.Is(err, stellar.ErrEmptySeries) {
		t.Errorf("error = %v, want ErrEmptySeries", err)
	}
	if _, err := DominantPeriod(sine(64, 1, 0.1), 0); !errors.Is(err, stellar.ErrEmptySeries) {
		t.Errorf("zero interval error = %v, want ErrEmptySeries", err)
	}
}

func TestPowerSpectrum_RemovesMean(t *testing.T) {
	flat := []float64{5, 5, 5, 5, 5, 5, 5, 5}
	ps := PowerSpectrum(flat)
	for i, m := range ps {
		if m > 1e-9 {
			t.Errorf("bin %d magnitude = %v for a constant series, want 0", i, m)
		}
	}
}

func TestPulsationPeriod_FromSamples(t *testing.T) {
	const dt, period = 0.125, 4.0
	samples := make([]telemetry.Sample, 512)
	for i := range samples {
		samples[i] = telemetry.Sample{
			Time:       float64(i) * dt,
			Phase:      stellar.MainSequence,
			StarRadius: 5 * (1 + 0.035*math.Sin(2*math.Pi*float64(i)*dt/period)),
		}
	}
	got, err := PulsationPeriod(samples)
	if err != nil {
		t.Fatalf("PulsationPeriod() error = %v", err)
	}
	if math.Abs(got-period) > period*0.15 {
		t.Errorf("PulsationPeriod() = %v, want about %v", got, period)
	}
}

func TestPulsationPeriod_Empty(t *testing.T) {
	if _, err := PulsationPeriod(nil); !errors.Is(err, stellar.ErrEmptySeries) {
		t.Errorf("error = %v, want ErrEmptySeries", err)
	}
}

func TestMassGrowthRate(t *testing.T) {
	samples := []telemetry.Sample{
		{Time: 10, Mass: 0.01},
		{Time: 20, Mass: 0.03},
		{Time: 30, Mass: 0.05},
	}
	rate, err := MassGrowthRate(samples)
	if err != nil {
		t.Fatalf("MassGrowthRate() error = %v", err)
	}
	if math.Abs(rate-0.002) > 1e-12 {
		t.Errorf("MassGrowthRate() = %v, want 0.002", rate)
	}

	if _, err := MassGrowthRate(samples[:1]); !errors.Is(err, stellar.ErrEmptySeries) {
		t.Errorf("short series error = %v, want ErrEmptySeries", err)
	}
}

func TestPhaseSpans(t *testing.T) {
	samples := []telemetry.Sample{
		{Time: 0, Phase: stellar.NebulaCollapse},
		{Time: 1, Phase: stellar.NebulaCollapse},
		{Time: 2, Phase: stellar.NebulaCollapse},
		{Time: 3, Phase: stellar.MainSequence},
		{Time: 4, Phase: stellar.MainSequence},
	}
	spans := PhaseSpans(samples)
	if spans["NEBULA_COLLAPSE"] != 2 {
		t.Errorf("nebula span = %v, want 2", spans["NEBULA_COLLAPSE"])
	}
	if spans["MAIN_SEQUENCE"] != 2 {
		t.Errorf("main sequence span = %v, want 2", spans["MAIN_SEQUENCE"])
	}
}

func TestPeakStarRadius(t *testing.T) {
	samples := []telemetry.Sample{
		{Time: 1, StarRadius: 2},
		{Time: 2, StarRadius: 7},
		{Time: 3, StarRadius: 4},
	}
	r, at := PeakStarRadius(samples)
	if r != 7 || at != 2 {
		t.Errorf("PeakStarRadius() = %v at %v, want 7 at 2", r, at)
	}
}
