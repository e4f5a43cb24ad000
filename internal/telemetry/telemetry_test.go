package telemetry

import (
	"testing"

	"github.com/san-kum/starlab/internal/stellar"
)

func TestHistory_SamplesOnInterval(t *testing.T) {
	h := NewHistory(0.5, 0)

	snap := Snapshot{Phase: stellar.NebulaCollapse}
	taken := 0
	for i := 0; i < 60; i++ { // 6 seconds at 0.1s steps
		snap.TotalElapsed = float64(i) * 0.1
		if h.Observe(0.1, snap) {
			taken++
		}
	}

	if taken != 12 {
		t.Errorf("took %d samples over 6s at 0.5s interval, want 12", taken)
	}
	if h.Len() != 12 {
		t.Errorf("stored %d samples, want 12", h.Len())
	}
}

func TestHistory_TrimsOldest(t *testing.T) {
	h := NewHistory(0.1, 5)

	for i := 0; i < 20; i++ {
		h.Observe(0.1, Snapshot{TotalElapsed: float64(i)})
	}

	if h.Len() != 5 {
		t.Fatalf("stored %d samples, want 5", h.Len())
	}
	samples := h.Samples()
	for i := 1; i < len(samples); i++ {
		if samples[i].Time <= samples[i-1].Time {
			t.Fatal("samples out of order after trim")
		}
	}
	if samples[0].Time != 15 {
		t.Errorf("oldest kept sample at t=%v, want 15", samples[0].Time)
	}
}

func TestHistory_Column(t *testing.T) {
	h := NewHistory(1, 0)
	for i := 0; i < 4; i++ {
		h.Observe(1, Snapshot{ConsumedMass: float64(i) * 0.25})
	}

	masses := h.Column(func(s Sample) float64 { return s.Mass })
	want := []float64{0, 0.25, 0.5, 0.75}
	for i := range want {
		if masses[i] != want[i] {
			t.Errorf("mass[%d] = %v, want %v", i, masses[i], want[i])
		}
	}
}

func TestHistory_Reset(t *testing.T) {
	h := NewHistory(0.5, 0)
	h.Observe(1, Snapshot{})
	h.Reset()

	if h.Len() != 0 {
		t.Errorf("samples after reset = %d, want 0", h.Len())
	}
	// Cadence restarts clean: a partial interval does not sample.
	if h.Observe(0.25, Snapshot{}) {
		t.Error("sampled before a full interval after reset")
	}
}
