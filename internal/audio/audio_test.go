package audio

import (
	"math"
	"math/rand"
	"testing"
)

func renderBlocks(p *Processor, blocks int) [][]float32 {
	out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}
	for i := 0; i < blocks; i++ {
		p.processBlock(out)
	}
	return out
}

func TestProcessBlock_ProducesBoundedStereo(t *testing.T) {
	p := NewProcessor()
	p.SetIntensity(1)

	out := renderBlocks(p, 20)

	var energy float64
	for ch := 0; ch < 2; ch++ {
		for i, s := range out[ch] {
			if s < -1 || s > 1 {
				t.Fatalf("channel %d sample %d = %v, outside [-1, 1]", ch, i, s)
			}
			energy += float64(s) * float64(s)
		}
	}
	if energy == 0 {
		t.Error("pad rendered pure silence")
	}
}

func TestCue_PhaseSwapsChord(t *testing.T) {
	p := NewProcessor()

	p.Cue("phase:REMNANT")
	if p.chord[0] != chords["REMNANT"][0] {
		t.Errorf("chord root = %v, want %v", p.chord[0], chords["REMNANT"][0])
	}
	if p.morph != 0 {
		t.Errorf("morph = %v after a phase cue, want 0", p.morph)
	}

	p.Cue("phase:NOT_A_PHASE")
	if p.chord[0] != chords["REMNANT"][0] {
		t.Error("unknown phase cue replaced the chord")
	}
}

func TestCue_OneShotsArmEnvelopes(t *testing.T) {
	p := NewProcessor()

	if p.pingAge >= 0 || p.blipAge >= 0 || p.rumbleEnv != 0 {
		t.Fatal("envelopes armed before any cue")
	}

	p.Cue("ignition")
	p.Cue("consume")
	p.Cue("detonation")

	if p.pingAge != 0 || p.blipAge != 0 || p.rumbleEnv != 1 {
		t.Errorf("envelopes = %v/%v/%v, want 0/0/1", p.pingAge, p.blipAge, p.rumbleEnv)
	}

	renderBlocks(p, 1)
	if p.pingAge <= 0 {
		t.Error("ping envelope did not advance")
	}
	if p.rumbleEnv >= 1 {
		t.Error("rumble envelope did not decay")
	}
}

func TestCue_IgnoresUnknownNames(t *testing.T) {
	p := NewProcessor()
	p.Cue("refuel")

	if p.pingAge >= 0 || p.blipAge >= 0 || p.rumbleEnv != 0 {
		t.Error("unknown cue armed an envelope")
	}
}

func TestSetIntensity_Clamps(t *testing.T) {
	p := NewProcessor()

	p.SetIntensity(4)
	if p.intensity != 1 {
		t.Errorf("intensity = %v, want clamp at 1", p.intensity)
	}
	p.SetIntensity(-2)
	if p.intensity != 0 {
		t.Errorf("intensity = %v, want clamp at 0", p.intensity)
	}
}

func TestTriangle_WaveShape(t *testing.T) {
	tests := []struct {
		phase, want float64
	}{
		{0, 1},
		{0.25, 0},
		{0.5, -1},
		{0.75, 0},
		{1, 1},
		{2.5, -1},
	}
	for _, tt := range tests {
		if got := triangle(tt.phase); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("triangle(%v) = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

func TestLpf_ConvergesToInput(t *testing.T) {
	state := 0.0
	var out float64
	for i := 0; i < 10000; i++ {
		out, state = lpf(1.0, 1000, 1.0/float64(SampleRate), state)
	}
	if math.Abs(out-1.0) > 1e-6 {
		t.Errorf("filter settled at %v, want 1", out)
	}
}

func TestRumbleTable_NormalizedAndNonSilent(t *testing.T) {
	table := rumbleTable(1024, rand.New(rand.NewSource(9)))

	if len(table) != 1024 {
		t.Fatalf("len = %d, want 1024", len(table))
	}
	peak := 0.0
	for _, v := range table {
		if mag := math.Abs(v); mag > peak {
			peak = mag
		}
	}
	if math.Abs(peak-1) > 1e-9 {
		t.Errorf("peak = %v, want 1 after normalization", peak)
	}
}

func TestStop_SafeWithoutStart(t *testing.T) {
	p := NewProcessor()
	p.Stop()
	p.Stop()

	if p.Active() {
		t.Error("processor reports active without a stream")
	}
}
