// Package aero provides the two interchangeable unsteady-aerodynamic
// strategies: piston theory for supersonic flow and a simplified
// doublet-lattice method for subsonic flow. Both expose the same Theory
// interface so the search engine is agnostic to which is active.
package aero

import (
	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/modal"
	"github.com/aerolab/flutterlab/internal/panel"
)

// Theory produces the dimensionless aerodynamic damping contribution of a
// mode at a trial velocity. Positive contribution destabilizes: the
// evaluator subtracts it from the structural damping ratio.
type Theory interface {
	Name() string
	// Damping returns the contribution, or ErrUnsupportedRegime when the
	// theory is physically invalid for the flow's Mach number.
	Damping(p panel.Properties, fl atmosphere.Flow, mode modal.ModeFrequency, velocity float64) (float64, error)
}

// Mach regime boundaries. Between SonicMach and PistonComfortMach piston
// theory is used with a reduced-confidence flag rather than a silent
// default; exactly sonic flow is refused.
const (
	SonicMach         = 1.0
	PistonComfortMach = 1.2
	SubsonicLimitMach = 1.0
)

// Selection is the outcome of routing a Mach number to a theory.
type Selection struct {
	Theory Theory
	Method flutter.Method
	// TransonicGap is true when piston theory was selected inside the
	// 1.0-1.2 gap where its assumptions are stretched.
	TransonicGap bool
}

// Select routes a requested method and Mach number to a theory instance.
// Routing is a pure function of its arguments. Explicit method requests
// outside the theory's valid regime fail with a RegimeError instead of
// computing a physically meaningless answer.
func Select(method flutter.Method, fl atmosphere.Flow, piston *PistonTheory, doublet *DoubletLattice) (Selection, error) {
	switch method {
	case flutter.MethodPiston:
		if fl.Mach <= SonicMach {
			return Selection{}, &flutter.RegimeError{
				Theory: piston.Name(),
				Mach:   fl.Mach,
				Reason: "piston theory requires supersonic flow (Mach > 1)",
			}
		}
		return Selection{
			Theory:       piston,
			Method:       flutter.MethodPiston,
			TransonicGap: fl.Mach < PistonComfortMach,
		}, nil

	case flutter.MethodDoubletLattice:
		if fl.Mach >= SubsonicLimitMach {
			return Selection{}, &flutter.RegimeError{
				Theory: doublet.Name(),
				Mach:   fl.Mach,
				Reason: "doublet lattice requires subsonic flow (Mach < 1)",
			}
		}
		return Selection{Theory: doublet, Method: flutter.MethodDoubletLattice}, nil

	default: // auto
		switch {
		case fl.Mach < SubsonicLimitMach:
			return Selection{Theory: doublet, Method: flutter.MethodDoubletLattice}, nil
		case fl.Mach == SonicMach:
			return Selection{}, &flutter.RegimeError{
				Mach:   fl.Mach,
				Reason: "no valid theory at exactly Mach 1",
			}
		default:
			return Selection{
				Theory:       piston,
				Method:       flutter.MethodPiston,
				TransonicGap: fl.Mach < PistonComfortMach,
			}, nil
		}
	}
}
