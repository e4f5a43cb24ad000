package phase

import (
	"math"
	"testing"
)

func TestVisual_AlphaCombinesFades(t *testing.T) {
	v := newVisual()
	if v.alpha() != 0 {
		t.Errorf("alpha before formation = %v, want 0", v.alpha())
	}

	// Formation completes after 1.5 simulated seconds.
	for i := 0; i < 120; i++ {
		v.advanceFormation(1.0 / 60.0)
	}
	if math.Abs(v.alpha()-1) > 1e-9 {
		t.Errorf("alpha after formation = %v, want 1", v.alpha())
	}

	v.SetOpacity(0.5)
	if math.Abs(v.alpha()-0.5) > 1e-9 {
		t.Errorf("alpha at half opacity = %v, want 0.5", v.alpha())
	}
}

func TestVisual_SetOpacityClamps(t *testing.T) {
	v := newVisual()
	v.SetOpacity(3)
	if v.Opacity() != 1 {
		t.Errorf("Opacity() = %v, want 1", v.Opacity())
	}
	v.SetOpacity(-1)
	if v.Opacity() != 0 {
		t.Errorf("Opacity() = %v, want 0", v.Opacity())
	}
}

func TestSpawner_CarriesFraction(t *testing.T) {
	var s spawner

	// 6 per second in quarter-second steps is 1.5 per call: the fraction
	// must carry so calls alternate one and two spawns.
	got := []int{s.due(6, 0.25), s.due(6, 0.25), s.due(6, 0.25), s.due(6, 0.25)}
	want := []int{1, 2, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("due call %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSpawner_LowRateStillEmits(t *testing.T) {
	var s spawner
	total := 0
	for i := 0; i < 8; i++ {
		total += s.due(1, 0.25)
	}
	if total != 2 {
		t.Errorf("spawns at 1/s over two seconds = %d, want 2", total)
	}
}
