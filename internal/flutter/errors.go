package flutter

import "errors"

// Domain errors for flutter analysis. "No flutter found" and bisection
// non-convergence are NOT errors; they are flags on Result.
var (
	// ErrInvalidInput indicates non-positive geometry or material values,
	// a non-positive Mach number, or a negative altitude.
	ErrInvalidInput = errors.New("flutter: invalid input")

	// ErrUnsupportedRegime indicates a request the solver refuses rather
	// than approximates: an aerodynamic theory outside its valid Mach
	// range, or a material class (composite/orthotropic) this isotropic
	// solver cannot treat.
	ErrUnsupportedRegime = errors.New("flutter: unsupported regime")
)

// RegimeError wraps ErrUnsupportedRegime with the regime that was refused,
// so callers can report what was blocked without parsing messages.
type RegimeError struct {
	Theory string
	Mach   float64
	Reason string
}

func (e *RegimeError) Error() string {
	return "flutter: unsupported regime: " + e.Reason
}

func (e *RegimeError) Unwrap() error {
	return ErrUnsupportedRegime
}
