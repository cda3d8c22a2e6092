package aero

import (
	"fmt"
	"math"

	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/modal"
	"github.com/aerolab/flutterlab/internal/panel"
)

// Candidate values for the critical flutter parameter. The two disagree
// by more than an order of magnitude and the validation record does not
// settle which is authoritative, so the constant stays an explicit,
// swappable calibration input and piston-theory results always carry a
// widened uncertainty band.
const (
	// LambdaCritTheory is the classical 2-D simply-supported panel value.
	LambdaCritTheory = 343.2
	// LambdaCritEmpirical is the back-fit value from the validation
	// campaign against wind-tunnel cases.
	LambdaCritEmpirical = 24.9
)

// MinDampingScale keeps the damping trend non-degenerate for a panel with
// zero structural damping.
const MinDampingScale = 0.001

// PistonTheory is the supersonic strategy: local pressure proportional to
// local slope scaled by gamma*P*M/beta, beta = sqrt(M^2-1). The stability
// trend is governed by lambda = q L^4 / (D m beta); the contribution is
// (lambda/lambdaCrit - 1) * scale with scale proportional to the panel's
// structural damping ratio.
type PistonTheory struct {
	LambdaCrit float64
	// Order selects the pressure-expansion order (1-3). Higher orders add
	// thickness- and Mach-dependent terms that lower the predicted onset.
	Order int
	// ScaleGain multiplies the structural damping ratio to form the
	// contribution scale.
	ScaleGain float64
}

// NewPistonTheory returns a first-order theory with the theoretical
// critical parameter.
func NewPistonTheory() *PistonTheory {
	return &PistonTheory{LambdaCrit: LambdaCritTheory, Order: 1, ScaleGain: 1.0}
}

func (pt *PistonTheory) Name() string { return "piston" }

// Lambda returns the non-dimensional flutter parameter at a trial velocity.
func (pt *PistonTheory) Lambda(p panel.Properties, fl atmosphere.Flow, velocity float64) float64 {
	beta := math.Sqrt(fl.Mach*fl.Mach - 1)
	q := fl.DynamicPressure(velocity)
	l4 := math.Pow(p.Length, 4)
	return q * l4 / (p.FlexuralRigidity() * p.SurfaceDensity() * beta)
}

func (pt *PistonTheory) orderFactor(p panel.Properties, fl atmosphere.Flow) float64 {
	// Slope amplitude scale for the nonlinear expansion terms.
	eps := p.Thickness / p.Length
	g1 := (atmosphere.GammaAir + 1) / 4
	factor := 1.0
	if pt.Order >= 2 {
		factor += g1 * fl.Mach * eps
	}
	if pt.Order >= 3 {
		factor += (g1 / 3) * fl.Mach * fl.Mach * eps * eps
	}
	return factor
}

// Damping implements Theory.
func (pt *PistonTheory) Damping(p panel.Properties, fl atmosphere.Flow, mode modal.ModeFrequency, velocity float64) (float64, error) {
	if fl.Mach <= SonicMach {
		return 0, &flutter.RegimeError{
			Theory: pt.Name(),
			Mach:   fl.Mach,
			Reason: "piston theory requires supersonic flow (Mach > 1)",
		}
	}
	if velocity <= 0 {
		return 0, fmt.Errorf("%w: velocity must be positive, got %g", flutter.ErrInvalidInput, velocity)
	}
	if pt.Order < 1 || pt.Order > 3 {
		return 0, fmt.Errorf("%w: piston order must be 1-3, got %d", flutter.ErrInvalidInput, pt.Order)
	}
	if pt.LambdaCrit <= 0 {
		return 0, fmt.Errorf("%w: lambda_crit must be positive, got %g", flutter.ErrInvalidInput, pt.LambdaCrit)
	}

	lambda := pt.Lambda(p, fl, velocity) * pt.orderFactor(p, fl)
	scale := pt.ScaleGain * math.Max(p.StructuralDamping, MinDampingScale)
	return (lambda/pt.LambdaCrit - 1) * scale, nil
}
