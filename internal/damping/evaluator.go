// Package damping combines structural and aerodynamic damping into the
// total modal damping at a trial velocity and tracks mode identity across
// velocity steps.
package damping

import (
	"math"

	"github.com/aerolab/flutterlab/internal/aero"
	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/modal"
	"github.com/aerolab/flutterlab/internal/panel"
)

// Tracking tolerances for mode identity across adjacent velocity samples.
// The relative tolerance is deliberately loose: some physically valid
// flutter mechanisms begin as zero-frequency divergence and only later
// acquire non-zero frequency, so near-zero pairs always match.
type Tracking struct {
	// RelTolerance is the maximum relative frequency difference for two
	// samples to count as the same mode.
	RelTolerance float64
	// ZeroHz is the threshold below which a frequency is treated as a
	// rigid-body/divergence branch.
	ZeroHz float64
}

// DefaultTracking returns the documented defaults (30%, 0.5 Hz).
func DefaultTracking() Tracking {
	return Tracking{RelTolerance: 0.30, ZeroHz: 0.5}
}

// SameMode reports whether two adjacent-velocity samples belong to the
// same mode branch.
func (tr Tracking) SameMode(f1, f2 float64) bool {
	a, b := math.Abs(f1), math.Abs(f2)
	if a < tr.ZeroHz && b < tr.ZeroHz {
		return true
	}
	ref := math.Max(a, b)
	if ref == 0 {
		return true
	}
	return math.Abs(a-b)/ref < tr.RelTolerance
}

// Sample is one (velocity, damping, frequency) evaluation.
type Sample struct {
	Velocity    float64
	Damping     float64
	FrequencyHz float64
}

// Evaluator computes total modal damping through a fixed aerodynamic
// theory. Sign convention: positive total damping is stable, negative is
// flutter.
type Evaluator struct {
	Theory   aero.Theory
	Tracking Tracking

	// FrequencyDrift scales the aeroelastic stiffness knockdown
	// q / (D / L^3): the coupled frequency is
	// f_n * sqrt(max(0, 1 - drift * q L^3 / D)). Zero disables drift.
	FrequencyDrift float64
}

// DefaultFrequencyDrift keeps subsonic drift negligible while letting
// high-dynamic-pressure supersonic sweeps walk a mode down to the
// zero-frequency divergence branch.
const DefaultFrequencyDrift = 1e-4

// New returns an evaluator with default tracking and drift.
func New(theory aero.Theory) *Evaluator {
	return &Evaluator{
		Theory:         theory,
		Tracking:       DefaultTracking(),
		FrequencyDrift: DefaultFrequencyDrift,
	}
}

// SameMode delegates to the evaluator's tracking tolerances.
func (e *Evaluator) SameMode(f1, f2 float64) bool {
	return e.Tracking.SameMode(f1, f2)
}

// TotalDamping evaluates the mode at one velocity. It returns the total
// damping ratio (structural minus aerodynamic contribution) and the
// instantaneous coupled frequency used for mode tracking.
func (e *Evaluator) TotalDamping(p panel.Properties, fl atmosphere.Flow, mode modal.ModeFrequency, velocity float64) (Sample, error) {
	contribution, err := e.Theory.Damping(p, fl, mode, velocity)
	if err != nil {
		return Sample{}, err
	}

	freq := mode.FrequencyHz
	if e.FrequencyDrift > 0 {
		q := fl.DynamicPressure(velocity)
		knockdown := 1 - e.FrequencyDrift*q*math.Pow(p.Length, 3)/p.FlexuralRigidity()
		freq = mode.FrequencyHz * math.Sqrt(math.Max(0, knockdown))
	}

	return Sample{
		Velocity:    velocity,
		Damping:     p.StructuralDamping - contribution,
		FrequencyHz: freq,
	}, nil
}
