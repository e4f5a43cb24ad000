package experiment

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/san-kum/starlab/internal/stellar"
)

func TestSweepParameters(t *testing.T) {
	names := SweepParameters()
	if !sort.StringsAreSorted(names) {
		t.Error("SweepParameters() is not sorted")
	}

	want := map[string]bool{
		"nebula.strength":           false,
		"remnant.black_hole_chance": false,
		"star.duration":             false,
	}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Errorf("parameter %q missing from SweepParameters()", n)
		}
	}
}

func TestRunSweep_SpacesValuesEvenly(t *testing.T) {
	sw := &Sweep{
		Parameter: "star.pulse_amp",
		Min:       0,
		Max:       1,
		Steps:     5,
		Duration:  0.5,
		Step:      0.0625,
		Seed:      3,
	}

	points, err := RunSweep(context.Background(), headlessConfig(), sw)
	if err != nil {
		t.Fatalf("RunSweep() error = %v", err)
	}
	if len(points) != 5 {
		t.Fatalf("len(points) = %d, want 5", len(points))
	}

	for i, want := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if points[i].Value != want {
			t.Errorf("points[%d].Value = %v, want %v", i, points[i].Value, want)
		}
	}
}

func TestRunSweep_ParameterDecidesOutcome(t *testing.T) {
	sw := &Sweep{
		Parameter: "remnant.black_hole_chance",
		Min:       0,
		Max:       1,
		Steps:     2,
		Duration:  60,
		Step:      1.0 / 60.0,
		Seed:      5,
	}

	points, err := RunSweep(context.Background(), headlessConfig(), sw)
	if err != nil {
		t.Fatalf("RunSweep() error = %v", err)
	}

	for i, p := range points {
		if p.FinalPhase != stellar.Remnant {
			t.Fatalf("points[%d] ended in %v, want %v", i, p.FinalPhase, stellar.Remnant)
		}
		if p.IgnitedAt <= 0 {
			t.Errorf("points[%d].IgnitedAt = %v, want positive", i, p.IgnitedAt)
		}
	}
	if points[0].Kind != "NEUTRON_STAR" {
		t.Errorf("chance 0 produced %q, want NEUTRON_STAR", points[0].Kind)
	}
	if points[1].Kind != "BLACK_HOLE" {
		t.Errorf("chance 1 produced %q, want BLACK_HOLE", points[1].Kind)
	}
}

func TestRunSweep_RejectsBadPlans(t *testing.T) {
	tests := []struct {
		name string
		sw   Sweep
	}{
		{"one step", Sweep{Parameter: "nebula.strength", Min: 1, Max: 2, Steps: 1, Duration: 1}},
		{"unknown parameter", Sweep{Parameter: "nebula.gravity", Min: 1, Max: 2, Steps: 3, Duration: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunSweep(context.Background(), headlessConfig(), &tt.sw)
			if !errors.Is(err, stellar.ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestRunSweep_SweptValueStillValidated(t *testing.T) {
	sw := &Sweep{
		Parameter: "nebula.strength",
		Min:       -5,
		Max:       5,
		Steps:     3,
		Duration:  1,
	}

	_, err := RunSweep(context.Background(), headlessConfig(), sw)
	if !errors.Is(err, stellar.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig for a negative strength", err)
	}
}

func TestLoadSweep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	plan := `name: collapse speed
parameter: nebula.strength
min: 5
max: 25
steps: 5
duration: 20
seed: 42
`
	if err := os.WriteFile(path, []byte(plan), 0644); err != nil {
		t.Fatal(err)
	}

	sw, err := LoadSweep(path)
	if err != nil {
		t.Fatalf("LoadSweep() error = %v", err)
	}
	if sw.Name != "collapse speed" || sw.Parameter != "nebula.strength" {
		t.Errorf("loaded %q/%q, want collapse speed/nebula.strength", sw.Name, sw.Parameter)
	}
	if sw.Min != 5 || sw.Max != 25 || sw.Steps != 5 {
		t.Errorf("range = [%v, %v] over %d, want [5, 25] over 5", sw.Min, sw.Max, sw.Steps)
	}
	if sw.Seed != 42 || sw.Duration != 20 {
		t.Errorf("seed/duration = %d/%v, want 42/20", sw.Seed, sw.Duration)
	}
}

func TestLoadSweep_MissingFile(t *testing.T) {
	if _, err := LoadSweep(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadSweep() succeeded on a missing file")
	}
}
