package phase

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/stellar"
)

func detonationConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Supernova.ShockCount = 200
	cfg.Supernova.DebrisCount = 150
	return cfg
}

func TestSupernova_FlashDecaysToZero(t *testing.T) {
	cfg := detonationConfig()
	cfg.Supernova.FlashDecay = 0.5
	s := NewSupernova(cfg, 10, rand.New(rand.NewSource(1)))

	if s.Flash() != 1 {
		t.Fatalf("Flash() at detonation = %v, want 1", s.Flash())
	}

	last := s.Flash()
	for i := 0; i < 40; i++ {
		s.Advance(0.125)
		f := s.Flash()
		if f > last {
			t.Fatalf("flash rose from %v to %v", last, f)
		}
		last = f
	}
	if s.Flash() != 0 {
		t.Errorf("Flash() after five seconds at decay 0.5 = %v, want 0", s.Flash())
	}
}

func TestSupernova_HorizonSnapsNotFades(t *testing.T) {
	cfg := detonationConfig()
	s := NewSupernova(cfg, 10, rand.New(rand.NewSource(2)))

	// Nine eighth-second steps: elapsed 1.125, still before the snap.
	for i := 0; i < 9; i++ {
		s.Advance(0.125)
	}
	if s.View().HorizonR != 0 {
		t.Fatalf("HorizonR = %v before the snap instant, want 0", s.View().HorizonR)
	}

	// One more step crosses 1.2 and the horizon appears at full radius.
	s.Advance(0.125)
	if s.View().HorizonR != cfg.Remnant.HorizonBase {
		t.Errorf("HorizonR = %v after the snap, want %v", s.View().HorizonR, cfg.Remnant.HorizonBase)
	}
}

func TestSupernova_CoreSwellsThenHolds(t *testing.T) {
	cfg := detonationConfig()
	s := NewSupernova(cfg, 10, rand.New(rand.NewSource(3)))

	if s.View().Radius != 0 {
		t.Fatalf("core radius at detonation = %v, want 0", s.View().Radius)
	}

	for i := 0; i < 6; i++ {
		s.Advance(0.125)
	}
	// Halfway through the swell the eased scale is exactly one half.
	if got, want := s.View().Radius, cfg.Remnant.HorizonBase*0.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("core radius mid-swell = %v, want %v", got, want)
	}

	for i := 0; i < 20; i++ {
		s.Advance(0.125)
	}
	if s.View().Radius != cfg.Remnant.HorizonBase {
		t.Errorf("core radius after swell = %v, want %v", s.View().Radius, cfg.Remnant.HorizonBase)
	}
}

func TestSupernova_DiskAndJetFadesOverlap(t *testing.T) {
	s := NewSupernova(detonationConfig(), 10, rand.New(rand.NewSource(4)))

	// elapsed 4.0 sits inside both fade windows at once.
	for i := 0; i < 32; i++ {
		s.Advance(0.125)
	}
	v := s.View()
	if v.DiskAlpha <= 0 || v.DiskAlpha >= 1 {
		t.Errorf("DiskAlpha at 4s = %v, want mid-fade", v.DiskAlpha)
	}
	if v.JetAlpha <= 0 || v.JetAlpha >= 1 {
		t.Errorf("JetAlpha at 4s = %v, want mid-fade", v.JetAlpha)
	}

	// By eight seconds both fades have completed.
	for i := 0; i < 32; i++ {
		s.Advance(0.125)
	}
	v = s.View()
	if v.DiskAlpha != 1 || v.JetAlpha != 1 {
		t.Errorf("fades at 8s = disk %v, jet %v, want both 1", v.DiskAlpha, v.JetAlpha)
	}
}

func TestSupernova_ShockOutrunsDebris(t *testing.T) {
	s := NewSupernova(detonationConfig(), 10, rand.New(rand.NewSource(5)))

	for i := 0; i < 120; i++ {
		s.Advance(testDt)
	}
	shock := s.shock.AverageRadius(stellar.Vec3{})
	debris := s.debris.AverageRadius(stellar.Vec3{})
	if shock <= debris {
		t.Errorf("shock front at %v has not outrun debris at %v", shock, debris)
	}
}

func TestSupernova_EntranceNeedsNoFadeIn(t *testing.T) {
	s := NewSupernova(detonationConfig(), 10, rand.New(rand.NewSource(6)))
	if s.View().Opacity != 1 {
		t.Errorf("opacity at detonation = %v, want 1", s.View().Opacity)
	}
}

func TestSupernova_DurationBoundary(t *testing.T) {
	cfg := detonationConfig()
	cfg.Supernova.Duration = 2
	s := NewSupernova(cfg, 10, rand.New(rand.NewSource(7)))

	for i := 0; i < 7; i++ {
		s.Advance(0.25)
	}
	if s.Done() {
		t.Fatal("done before the configured duration")
	}
	s.Advance(0.25)
	if !s.Done() {
		t.Error("not done at exactly the configured duration")
	}
}
