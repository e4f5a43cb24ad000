package director_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/director"
	"github.com/san-kum/starlab/internal/stellar"
)

// lifecycleConfig mirrors the compressed config the package tests use,
// tuned so one whole stellar life plays out in under a minute of
// simulated time.
func lifecycleConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 23
	cfg.Crossfade = 0.5

	cfg.Nebula.CloudCount = 80
	cfg.Nebula.CloudRadius = stellar.Range{Min: 3, Max: 5}
	cfg.Nebula.Strength = 30
	cfg.Nebula.Softening = 1
	cfg.Nebula.CoreRadius = 1.2
	cfg.Nebula.CriticalMass = 0.002

	cfg.Star.Duration = 2
	cfg.Star.WindCount = 200
	cfg.Giant.Duration = 2
	cfg.Supernova.Duration = 2
	cfg.Supernova.ShockCount = 200
	cfg.Supernova.DebrisCount = 150
	cfg.Remnant.BlackHoleChance = 1
	cfg.Remnant.Accrete.Count = 300
	cfg.Remnant.ShellCount = 200
	return cfg
}

var _ = Describe("a star's life", func() {
	var dir *director.Director

	step := func(seconds float64) {
		for n := int(seconds * 60); n > 0; n-- {
			dir.Advance(1.0 / 60.0)
		}
	}

	stepUntil := func(phase stellar.Phase) {
		for n := 0; n < 8000 && dir.Phase() != phase; n++ {
			dir.Advance(1.0 / 60.0)
		}
		Expect(dir.Phase()).To(Equal(phase), "lifecycle stalled")
	}

	BeforeEach(func() {
		dir = director.New(lifecycleConfig())
	})

	It("begins as a collapsing nebula", func() {
		Expect(dir.Phase()).To(Equal(stellar.NebulaCollapse))
		Expect(dir.Snapshot().ConsumedMass).To(BeZero())
	})

	Context("once the cloud has fallen in", func() {
		BeforeEach(func() {
			stepUntil(stellar.MainSequence)
		})

		It("has banked the protostar's mass", func() {
			Expect(dir.Snapshot().ConsumedMass).To(BeNumerically(">=", 0.002))
		})

		It("keeps the old body on screen through the crossfade", func() {
			Expect(dir.Views()).To(HaveLen(2))
			step(1)
			Expect(dir.Views()).To(HaveLen(1))
		})

		It("burns for the configured duration and then swells", func() {
			step(1.5)
			Expect(dir.Phase()).To(Equal(stellar.MainSequence))
			step(1)
			Expect(dir.Phase()).To(Equal(stellar.RedGiant))
		})
	})

	Context("after the giant detonates", func() {
		BeforeEach(func() {
			stepUntil(stellar.Supernova)
		})

		It("flashes hardest at the first instant", func() {
			first := dir.Views()[len(dir.Views())-1].Flash
			Expect(first).To(BeNumerically(">", 0))
			step(1)
			Expect(dir.Views()[len(dir.Views())-1].Flash).To(BeNumerically("<", first))
		})

		It("collapses into a remnant that never leaves", func() {
			stepUntil(stellar.Remnant)
			Expect(dir.Snapshot().RemnantKind).To(Equal("BLACK_HOLE"))
			step(5)
			Expect(dir.Phase()).To(Equal(stellar.Remnant))
			Expect(dir.Transitions()).To(HaveLen(4))
		})

		It("feeds the black hole from its own ledger", func() {
			stepUntil(stellar.Remnant)
			step(20)
			snap := dir.Snapshot()
			Expect(snap.ConsumedMass).To(BeNumerically(">", 0))
			Expect(snap.CaptureRadius).To(BeNumerically(">", lifecycleConfig().Remnant.HorizonBase))
			Expect(snap.CaptureRadius).To(BeNumerically("<=", lifecycleConfig().Remnant.HorizonMax))
		})
	})
})
