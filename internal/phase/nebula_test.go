package phase

import (
	"math/rand"
	"testing"

	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/particle"
	"github.com/san-kum/starlab/internal/stellar"
)

const testDt = 1.0 / 60.0

// collapseConfig shrinks the cloud and the critical mass so a collapse
// resolves in a few simulated seconds instead of a minute.
func collapseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Nebula.CloudCount = 80
	cfg.Nebula.CloudRadius = stellar.Range{Min: 3, Max: 5}
	cfg.Nebula.Strength = 30
	cfg.Nebula.Softening = 1
	cfg.Nebula.CoreRadius = 1.2
	cfg.Nebula.CoreGrowth = 0.01
	cfg.Nebula.CriticalMass = 0.002
	return cfg
}

func runUntilIgnited(t *testing.T, n *Nebula) {
	t.Helper()
	for i := 0; i < 2400 && !n.Ignited(); i++ {
		n.Advance(testDt)
	}
	if !n.Ignited() {
		t.Fatal("nebula never reached critical mass")
	}
}

func TestNebula_CollapseCapturesAndIgnites(t *testing.T) {
	cfg := collapseConfig()
	n := NewNebula(cfg, rand.New(rand.NewSource(11)))

	startRadius := n.View().Radius
	runUntilIgnited(t, n)

	if n.CoreMass() < cfg.Nebula.CriticalMass {
		t.Errorf("CoreMass() = %v, want >= %v", n.CoreMass(), cfg.Nebula.CriticalMass)
	}
	stuck := n.cloud.Count(particle.Stuck)
	if stuck < 20 {
		t.Errorf("stuck count = %d, want >= 20", stuck)
	}
	if n.View().Radius <= startRadius {
		t.Errorf("core radius %v did not grow past %v", n.View().Radius, startRadius)
	}

	// Stuck particles ride the surface within their radius factor band.
	core := n.coreRadius
	states := n.cloud.States()
	for i, s := range states {
		if s != particle.Stuck {
			continue
		}
		r := n.cloud.Position(i).Length()
		if r < core*0.95 || r > core*1.05 {
			t.Fatalf("stuck particle %d at radius %v, want near surface %v", i, r, core)
		}
	}
}

func TestNebula_GateClosureIsPermanent(t *testing.T) {
	n := NewNebula(collapseConfig(), rand.New(rand.NewSource(3)))
	runUntilIgnited(t, n)

	stuck := n.cloud.Count(particle.Stuck)
	free := n.cloud.Count(particle.Free)
	mass := n.CoreMass()

	// Free survivors stay free: the closed gate captures nothing more.
	for i := 0; i < 180; i++ {
		n.Advance(testDt)
	}
	if got := n.cloud.Count(particle.Stuck); got != stuck {
		t.Errorf("stuck count after closure = %d, want %d", got, stuck)
	}
	if got := n.cloud.Count(particle.Free); got != free {
		t.Errorf("free count after closure = %d, want %d", got, free)
	}
	if n.CoreMass() != mass {
		t.Errorf("CoreMass() after closure = %v, want frozen at %v", n.CoreMass(), mass)
	}
}

func TestNebula_ProgressNeverDecreases(t *testing.T) {
	n := NewNebula(collapseConfig(), rand.New(rand.NewSource(5)))

	last := n.Progress()
	for i := 0; i < 1200; i++ {
		n.Advance(testDt)
		p := n.Progress()
		if p < last {
			t.Fatalf("progress decreased from %v to %v at frame %d", last, p, i)
		}
		if p < 0 || p > 1 {
			t.Fatalf("progress %v outside [0,1] at frame %d", p, i)
		}
		last = p
	}
}

func TestNebula_FullCaptureCompletesCollapse(t *testing.T) {
	cfg := collapseConfig()
	cfg.Nebula.CloudCount = 60
	cfg.Nebula.CriticalMass = 1 // the stick gate never closes
	n := NewNebula(cfg, rand.New(rand.NewSource(9)))

	for i := 0; i < 3600 && !n.Done(); i++ {
		n.Advance(testDt)
	}
	if !n.Done() {
		t.Fatal("collapse never completed")
	}
	if n.Progress() < collapseDone {
		t.Errorf("Progress() = %v, want >= %v", n.Progress(), collapseDone)
	}
	if n.Ignited() {
		t.Error("gate closed below critical mass")
	}
}

func TestNebula_ZeroDtIsNoOp(t *testing.T) {
	n := NewNebula(collapseConfig(), rand.New(rand.NewSource(2)))
	for i := 0; i < 30; i++ {
		n.Advance(testDt)
	}

	pos := n.cloud.Position(0)
	progress := n.Progress()
	mass := n.CoreMass()
	radius := n.View().Radius

	n.Advance(0)
	n.Advance(-0.5)

	if n.cloud.Position(0) != pos {
		t.Errorf("position changed on zero dt: %v -> %v", pos, n.cloud.Position(0))
	}
	if n.Progress() != progress || n.CoreMass() != mass || n.View().Radius != radius {
		t.Error("scalar state changed on zero dt")
	}
}

func TestNebula_EmptyCloudCompletesImmediately(t *testing.T) {
	cfg := collapseConfig()
	cfg.Nebula.CloudCount = 0
	n := NewNebula(cfg, rand.New(rand.NewSource(1)))

	n.Advance(testDt)
	if !n.Done() {
		t.Error("empty cloud should complete on the first frame")
	}
}

func TestNebula_DisposedAdvanceIsInert(t *testing.T) {
	n := NewNebula(collapseConfig(), rand.New(rand.NewSource(4)))
	n.Advance(testDt)
	n.Dispose()

	progress := n.Progress()
	n.Advance(testDt)
	if n.Progress() != progress {
		t.Error("disposed nebula still advancing")
	}
	if n.View().Fields != nil {
		t.Error("disposed nebula still exposes particle fields")
	}
}
