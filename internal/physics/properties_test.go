package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

func session(name string) *sim.Session {
	m, err := physics.New(name)
	Expect(err).NotTo(HaveOccurred())
	s, err := sim.NewSession(m)
	Expect(err).NotTo(HaveOccurred())
	return s
}

func value(s *sim.Session, key string) float64 {
	r, ok := sim.Find(s.Readings(), key)
	Expect(ok).To(BeTrue(), "reading %s", key)
	return r.Value
}

var _ = Describe("Parameter validation", func() {
	It("keeps the previous value when input is out of range", func() {
		s := session("ohms-law")
		_, err := s.Commit("voltage", "99")
		Expect(err).To(MatchError(param.ErrOutOfRange))
		Expect(s.Params().Get("voltage")).To(Equal(6.0))
		_, err = s.Commit("voltage", "abc")
		Expect(err).To(MatchError(param.ErrParse))
		Expect(s.Params().Get("voltage")).To(Equal(6.0))
	})

	It("rejects locked parameters while running", func() {
		s := session("projectile-motion")
		s.Start()
		_, err := s.Commit("velocity", "50")
		Expect(err).To(MatchError(sim.ErrLocked))
		s.Pause()
		_, err = s.Commit("velocity", "50")
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Time()).To(BeZero())
	})
})

var _ = Describe("Closed-form results", func() {
	It("computes Ohm's law", func() {
		s := session("electric-circuit")
		_, err := s.CommitAll(map[string]string{"voltage": "12", "resistance": "4"})
		Expect(err).NotTo(HaveOccurred())
		Expect(value(s, "current")).To(BeNumerically("~", 3, 1e-12))
		Expect(value(s, "power")).To(BeNumerically("~", 36, 1e-12))
	})

	It("refracts by Snell's law", func() {
		s := session("light-refraction")
		Expect(value(s, "refracted")).To(BeNumerically("~", 19.47, 0.01))
	})

	It("reports total internal reflection as a state", func() {
		s := session("light-refraction")
		_, err := s.CommitAll(map[string]string{"n1": "1.5", "n2": "1", "incident": "60"})
		Expect(err).NotTo(HaveOccurred())
		r, ok := sim.Find(s.Readings(), "refracted")
		Expect(ok).To(BeTrue())
		Expect(r.Display()).To(Equal("total internal reflection"))
	})

	It("leaves frequency unchanged when nothing moves", func() {
		s := session("doppler-effect")
		Expect(value(s, "observed")).To(BeNumerically("~", 440, 1e-9))
		Expect(value(s, "shift")).To(BeNumerically("~", 0, 1e-9))
	})

	It("places the image at infinity when the object sits at the focus", func() {
		s := session("geometric-optics")
		_, err := s.Commit("distance", "100")
		Expect(err).NotTo(HaveOccurred())
		r, _ := sim.Find(s.Readings(), "image_distance")
		Expect(r.Display()).To(Equal("∞"))
	})
})

var _ = Describe("Collisions", func() {
	run := func(kind string) *physics.Collisions {
		m := physics.NewCollisions()
		s, err := sim.NewSession(m)
		Expect(err).NotTo(HaveOccurred())
		_, err = s.CommitAll(map[string]string{"type": kind, "mass1": "2", "mass2": "1"})
		Expect(err).NotTo(HaveOccurred())
		s.Start()
		for i := 0; i < 300; i++ {
			Expect(s.Tick(dynamo.FrameDt)).To(Succeed())
		}
		Expect(m.Impacts()).NotTo(BeEmpty())
		return m
	}

	It("conserves momentum across every elastic impact", func() {
		for _, imp := range run("elastic").Impacts() {
			Expect(imp.MomentumOut).To(BeNumerically("~", imp.MomentumIn, 1e-9))
		}
	})

	It("leaves both balls moving together after an inelastic impact", func() {
		imp := run("inelastic").Impacts()[0]
		Expect(imp.After[0]).To(BeNumerically("~", imp.After[1], 1e-12))
		Expect(imp.MomentumOut).To(BeNumerically("~", imp.MomentumIn, 1e-9))
	})
})

var _ = Describe("Pendulum", func() {
	It("holds its energy without damping", func() {
		p := physics.NewPendulum()
		Expect(p.SetParam("damping", 1)).To(Succeed())
		Expect(p.SetParam("angle", 5)).To(Succeed())
		p.Reset()
		e0 := p.Energy(p.Observe())
		for i := 0; i < 5000; i++ {
			p.Step(dynamo.FrameDt)
			Expect(math.Abs(p.Energy(p.Observe())-e0) / e0).To(BeNumerically("<", 0.05))
		}
	})

	It("loses energy with damping", func() {
		p := physics.NewPendulum()
		e0 := p.Energy(p.Observe())
		for i := 0; i < 1000; i++ {
			p.Step(dynamo.FrameDt)
		}
		Expect(p.Energy(p.Observe())).To(BeNumerically("<", e0/2))
	})
})

var _ = Describe("Session", func() {
	It("finishes a projectile on landing", func() {
		s := session("projectile-motion")
		s.Start()
		for i := 0; i < 1000 && s.Running(); i++ {
			Expect(s.Tick(dynamo.FrameDt)).To(Succeed())
		}
		Expect(s.Running()).To(BeFalse())
		Expect(s.Time()).To(BeNumerically("~", 2*30*math.Sin(math.Pi/4)/9.81, 0.05))
	})

	It("renders without side effects", func() {
		s := session("heat-transfer")
		s.Start()
		for i := 0; i < 10; i++ {
			Expect(s.Tick(dynamo.FrameDt)).To(Succeed())
		}
		before := value(s, "mean")
		a, b := render.NewRecorder(400, 400), render.NewRecorder(400, 400)
		s.Render(a)
		s.Render(b)
		Expect(a.Equal(b)).To(BeTrue())
		Expect(value(s, "mean")).To(Equal(before))
	})
})

var _ = Describe("Catalog", func() {
	It("opens every simulation under the name it reports", func() {
		Expect(physics.Names()).To(HaveLen(17))
		for _, name := range physics.Names() {
			Expect(session(name).Info().Name).To(Equal(name))
		}
	})

	It("rejects names outside the catalog", func() {
		_, err := physics.New("refraction")
		Expect(err).To(MatchError(ContainSubstring("unknown simulation")))
	})
})
