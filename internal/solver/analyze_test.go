package solver_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aerolab/flutterlab/internal/aero"
	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/config"
	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/panel"
	"github.com/aerolab/flutterlab/internal/solver"
)

func aluminumPanel() panel.Properties {
	mat, err := config.GetMaterial("aluminum-2024")
	Expect(err).NotTo(HaveOccurred())
	p, err := panel.New(0.5, 0.4, 0.003, mat, panel.AllEdgesSupported, 0.01)
	Expect(err).NotTo(HaveOccurred())
	return p
}

var _ = Describe("Analyze", func() {
	var s *solver.Solver

	BeforeEach(func() {
		s = solver.New(nil)
	})

	It("matches the closed-form first-mode frequency for the reference panel", func() {
		modes, err := s.Modes(aluminumPanel())
		Expect(err).NotTo(HaveOccurred())
		Expect(modes.Modes[0].FrequencyHz).To(BeNumerically("~", 74.6, 0.2))
	})

	Context("supersonic flow with the empirical calibration", func() {
		var (
			cal *config.Calibration
			fl  atmosphere.Flow
		)

		BeforeEach(func() {
			cal = config.Default()
			cal.LambdaCrit = aero.LambdaCritEmpirical
			s = solver.New(cal)
			fl, _ = atmosphere.New(2.0, 10000)
		})

		It("finds a converged flutter point with piston theory", func() {
			res, err := s.Analyze(aluminumPanel(), fl, solver.Options{Method: flutter.MethodAuto})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Found).To(BeTrue())
			Expect(res.Converged).To(BeTrue())
			Expect(res.Method).To(Equal(flutter.MethodPiston))
			Expect(res.Speed).To(BeNumerically(">", 0))
			Expect(res.FrequencyHz).To(BeNumerically(">", 0))
		})

		It("is deterministic across repeated calls", func() {
			a, err := s.Analyze(aluminumPanel(), fl, solver.Options{ApplyCorrections: true})
			Expect(err).NotTo(HaveOccurred())
			b, err := s.Analyze(aluminumPanel(), fl, solver.Options{ApplyCorrections: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		})

		It("predicts a lower onset than the theoretical constant", func() {
			empirical, err := s.Analyze(aluminumPanel(), fl, solver.Options{VMax: 20000})
			Expect(err).NotTo(HaveOccurred())

			theory := solver.New(nil)
			theoretical, err := theory.Analyze(aluminumPanel(), fl, solver.Options{VMax: 20000})
			Expect(err).NotTo(HaveOccurred())

			Expect(empirical.Found).To(BeTrue())
			Expect(theoretical.Found).To(BeTrue())
			Expect(empirical.Speed).To(BeNumerically("<", theoretical.Speed))
		})

		It("does not compound corrections when reapplied", func() {
			res, err := s.Analyze(aluminumPanel(), fl, solver.Options{ApplyCorrections: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.CorrectionsApplied).To(BeTrue())

			again := cal.Corrections.Apply(res, aluminumPanel(), fl)
			Expect(again.Speed).To(Equal(res.Speed))
			Expect(again.ThermalFactor).To(Equal(res.ThermalFactor))
		})
	})

	Context("subsonic flow", func() {
		It("routes to the doublet lattice and carries its band", func() {
			fl, _ := atmosphere.New(0.7, 8000)
			res, err := s.Analyze(aluminumPanel(), fl, solver.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Method).To(Equal(flutter.MethodDoubletLattice))
			Expect(res.TransonicGap).To(BeFalse())
			Expect(res.UncertaintyUp).To(Equal(10.0))
		})
	})

	Context("terminal states", func() {
		It("returns the sentinel when no sign change exists in range", func() {
			fl, _ := atmosphere.New(2.0, 10000)
			res, err := s.Analyze(aluminumPanel(), fl, solver.Options{VMin: 1, VMax: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Found).To(BeFalse())
			Expect(res.Converged).To(BeFalse())
			Expect(res.Speed).To(Equal(flutter.SpeedNotFound))
		})
	})

	Context("refusals", func() {
		It("rejects composite materials instead of approximating", func() {
			mat, _ := config.GetMaterial("cfrp-quasi-iso")
			p, err := panel.New(0.5, 0.4, 0.003, mat, panel.AllEdgesSupported, 0.01)
			Expect(err).NotTo(HaveOccurred())

			fl, _ := atmosphere.New(2.0, 10000)
			_, err = s.Analyze(p, fl, solver.Options{})
			Expect(err).To(MatchError(flutter.ErrUnsupportedRegime))
		})

		It("rejects the doublet lattice in supersonic flow", func() {
			fl, _ := atmosphere.New(1.8, 0)
			_, err := s.Analyze(aluminumPanel(), fl, solver.Options{Method: flutter.MethodDoubletLattice})
			Expect(err).To(MatchError(flutter.ErrUnsupportedRegime))
		})

		It("rejects invalid geometry before doing any work", func() {
			mat, _ := config.GetMaterial("aluminum-2024")
			bad := panel.Properties{Length: -1, Width: 0.4, Thickness: 0.003, Material: mat, StructuralDamping: 0.01}
			fl, _ := atmosphere.New(2.0, 0)
			_, err := s.Analyze(bad, fl, solver.Options{})
			Expect(err).To(MatchError(flutter.ErrInvalidInput))
		})
	})

	Context("the transonic gap", func() {
		It("routes to piston theory with a widened band, not a silent default", func() {
			fl, _ := atmosphere.New(1.1, 5000)
			res, err := s.Analyze(aluminumPanel(), fl, solver.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Method).To(Equal(flutter.MethodPiston))
			Expect(res.TransonicGap).To(BeTrue())

			cruise, _ := atmosphere.New(2.0, 5000)
			ref, err := s.Analyze(aluminumPanel(), cruise, solver.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.UncertaintyUp).To(BeNumerically(">", ref.UncertaintyUp))
		})
	})
})

var _ = Describe("Compare", func() {
	found := func(speed float64) *flutter.Result {
		r := flutter.NewResult(flutter.MethodPiston)
		r.Found = true
		r.Speed = speed
		return r
	}

	It("agrees inside the documented 15% tolerance", func() {
		ag := solver.Compare(found(1000), found(1100), 0)
		Expect(ag.BothFound).To(BeTrue())
		Expect(ag.Within).To(BeTrue())
	})

	It("disagrees outside the tolerance", func() {
		ag := solver.Compare(found(1000), found(1300), 0)
		Expect(ag.Within).To(BeFalse())
	})

	It("never agrees when only one side found flutter", func() {
		ag := solver.Compare(found(1000), flutter.NewResult(flutter.MethodPiston), 0)
		Expect(ag.BothFound).To(BeFalse())
		Expect(ag.Within).To(BeFalse())
	})
})
