package ensemble_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/ensemble"
	"github.com/san-kum/pendulums/internal/particle"
)

var _ = Describe("Ensemble", func() {
	var (
		viewport dynamo.Bounds
		ens      *ensemble.Ensemble
	)

	BeforeEach(func() {
		viewport = dynamo.Bounds{Width: 800, Height: 600}
		var err error
		ens, err = ensemble.New(ensemble.DefaultConfig(), viewport)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Reset", func() {
		It("builds N pendulums with empty trails and emitters", func() {
			ens.AdvanceAll()
			ens.AdvanceAll()
			Expect(ens.Reset()).To(Succeed())

			Expect(ens.Len()).To(Equal(ensemble.DefaultCount))
			for _, p := range ens.Pendulums() {
				Expect(p.Trail().Len()).To(BeZero())
				Expect(p.Emitter().Len()).To(BeZero())
				Expect(p.Ticks()).To(BeZero())
			}
			Expect(ens.Ticks()).To(BeZero())
			Expect(ens.Generation()).To(Equal(2))
		})

		It("perturbs radii by delta per index", func() {
			for i := 0; i+1 < ens.Len(); i++ {
				r1a, r2a := ens.Pendulum(i).Lengths()
				r1b, r2b := ens.Pendulum(i + 1).Lengths()
				Expect(r1a - r1b).To(BeNumerically("~", -ensemble.DefaultDelta, 1e-12))
				Expect(r2a - r2b).To(BeNumerically("~", ensemble.DefaultDelta, 1e-12))
			}
			r1, r2 := ens.Pendulum(0).Lengths()
			Expect(r1).To(Equal(150.0))
			Expect(r2).To(Equal(50.0))
		})

		It("shares the base configuration", func() {
			for _, p := range ens.Pendulums() {
				m1, m2 := p.Masses()
				a1, a2 := p.Angles()
				Expect(m1).To(Equal(10.0))
				Expect(m2).To(Equal(10.0))
				Expect(a1).To(Equal(math.Pi / 4))
				Expect(a2).To(Equal(math.Pi / 2))
				Expect(p.Gravity()).To(Equal(1.0))
				Expect(p.Center()).To(Equal(viewport.Center()))
			}
		})

		It("recentres on the viewport only at reset", func() {
			ens.SetViewport(dynamo.Bounds{Width: 200, Height: 100})
			Expect(ens.Pendulum(0).Center()).To(Equal(viewport.Center()))

			Expect(ens.Reset()).To(Succeed())
			Expect(ens.Pendulum(0).Center()).To(Equal(dynamo.V(100, 50)))
		})
	})

	Describe("AdvanceAll", func() {
		It("advances every pendulum once", func() {
			for i := 0; i < 10; i++ {
				ens.AdvanceAll()
			}
			for _, p := range ens.Pendulums() {
				Expect(p.Ticks()).To(Equal(10))
				Expect(p.Trail().Len()).To(Equal(10))
			}
			Expect(ens.Ticks()).To(Equal(10))
			Expect(ens.ParticleCount()).To(BeNumerically(">", 0))
		})

		It("keeps every bound over a long run", func() {
			for i := 0; i < 1500; i++ {
				ens.AdvanceAll()
			}
			for _, p := range ens.Pendulums() {
				Expect(p.Trail().Len()).To(BeNumerically("<=", 200))
				// a particle lives at most 300 ticks at the slowest decay
				Expect(p.Emitter().Len()).To(BeNumerically("<=", 301))
				a1, a2 := p.Angles()
				Expect(a1).To(And(BeNumerically(">=", 0), BeNumerically("<", 2*math.Pi)))
				Expect(a2).To(And(BeNumerically(">=", 0), BeNumerically("<", 2*math.Pi)))
			}
		})

		It("lets the trajectories diverge", func() {
			for i := 0; i < 3000; i++ {
				ens.AdvanceAll()
			}
			tips := ens.Tips()
			Expect(tips[0]).NotTo(Equal(tips[len(tips)-1]))
		})

		It("is reproducible for the same seed", func() {
			other, err := ensemble.New(ensemble.DefaultConfig(), viewport)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 50; i++ {
				ens.AdvanceAll()
				other.AdvanceAll()
			}
			Expect(other.ParticleCount()).To(Equal(ens.ParticleCount()))
			Expect(other.Tips()).To(Equal(ens.Tips()))
		})
	})

	Describe("SetVariant", func() {
		It("applies to every emitter and survives a reset", func() {
			ens.SetVariant(1)
			ens.AdvanceAll()
			for _, p := range ens.Pendulums() {
				ps := p.Emitter().Particles()
				Expect(ps[len(ps)-1].Shape).To(Equal(particle.Triangle))
			}

			Expect(ens.Reset()).To(Succeed())
			Expect(ens.Variant()).To(Equal(particle.Triangle))
			ens.AdvanceAll()
			Expect(ens.Pendulum(0).Emitter().Particles()[0].Shape).To(Equal(particle.Triangle))
		})

		It("falls back to discs for unknown values", func() {
			ens.SetVariant(2)
			ens.SetVariant(5)
			Expect(ens.Variant()).To(Equal(particle.Disc))
			Expect(ens.Pendulum(3).Emitter().Shape()).To(Equal(particle.Disc))
		})
	})

	Describe("visibility", func() {
		It("toggles every pendulum and persists across resets", func() {
			Expect(ens.ToggleVisible()).To(BeFalse())
			for _, p := range ens.Pendulums() {
				Expect(p.Visible()).To(BeFalse())
			}
			Expect(ens.Reset()).To(Succeed())
			Expect(ens.Pendulum(0).Visible()).To(BeFalse())
		})
	})

	Describe("Config validation", func() {
		It("rejects an empty ensemble", func() {
			cfg := ensemble.DefaultConfig()
			cfg.Count = 0
			_, err := ensemble.New(cfg, viewport)
			Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())
		})

		It("rejects a delta that drives r2 negative", func() {
			cfg := ensemble.DefaultConfig()
			cfg.Delta = 10
			_, err := ensemble.New(cfg, viewport)
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
		})
	})
})

var _ = Describe("Spread", func() {
	It("is zero for coincident points", func() {
		pts := []dynamo.Vec2{dynamo.V(3, 4), dynamo.V(3, 4)}
		Expect(ensemble.Spread(pts)).To(BeNumerically("==", 0))
		Expect(ensemble.Centroid(pts)).To(Equal(dynamo.V(3, 4)))
	})

	It("is the RMS distance from the centroid", func() {
		pts := []dynamo.Vec2{dynamo.V(-1, 0), dynamo.V(1, 0)}
		Expect(ensemble.Centroid(pts)).To(Equal(dynamo.V(0, 0)))
		Expect(ensemble.Spread(pts)).To(BeNumerically("~", 1, 1e-12))
	})

	It("handles an empty set", func() {
		Expect(ensemble.Spread(nil)).To(BeZero())
	})

	It("grows as the ensemble separates", func() {
		cfg := ensemble.DefaultConfig()
		cfg.Delta = 0.01
		e, err := ensemble.New(cfg, dynamo.Bounds{Width: 800, Height: 600})
		Expect(err).NotTo(HaveOccurred())
		e.AdvanceAll()
		early := e.Spread()
		for i := 0; i < 2000; i++ {
			e.AdvanceAll()
		}
		Expect(e.Spread()).To(BeNumerically(">", early))
	})
})
