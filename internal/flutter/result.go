package flutter

import "fmt"

// SpeedNotFound is the sentinel flutter speed reported when no damping
// sign change exists anywhere in the searched velocity range.
const SpeedNotFound = -1.0

// Mode identifies a panel vibration mode by its half-wave counts in the
// streamwise (P) and spanwise (Q) directions.
type Mode struct {
	P int `json:"p"`
	Q int `json:"q"`
}

func (m Mode) String() string {
	return fmt.Sprintf("(%d,%d)", m.P, m.Q)
}

// Method selects the unsteady-aerodynamic theory.
type Method int

const (
	// MethodAuto routes by Mach number: doublet lattice below Mach 1,
	// piston theory above.
	MethodAuto Method = iota
	MethodPiston
	MethodDoubletLattice
)

func (m Method) String() string {
	switch m {
	case MethodPiston:
		return "piston"
	case MethodDoubletLattice:
		return "doublet"
	default:
		return "auto"
	}
}

// ParseMethod converts a CLI/config string into a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "auto", "":
		return MethodAuto, nil
	case "piston":
		return MethodPiston, nil
	case "doublet", "doublet-lattice", "dlm":
		return MethodDoubletLattice, nil
	}
	return MethodAuto, fmt.Errorf("%w: unknown method %q", ErrInvalidInput, s)
}

// Result is the outcome of one flutter analysis. It is constructed by the
// solver and never mutated afterwards; the correction pipeline returns a
// copy rather than editing in place.
type Result struct {
	// Speed is the critical flutter velocity in m/s, or SpeedNotFound.
	Speed float64 `json:"speed"`
	// FrequencyHz is the coupled frequency at flutter onset.
	FrequencyHz float64 `json:"frequency_hz"`
	Mode        Mode    `json:"mode"`

	// Found is true when a stable-to-unstable crossing exists in range.
	Found bool `json:"found"`
	// Converged is false when bisection hit its iteration cap or when the
	// whole swept range was already unstable; Speed then holds the best
	// available estimate.
	Converged bool   `json:"converged"`
	Method    Method `json:"method"`

	// TransonicGap marks a piston-theory result in the Mach 1.0-1.2 gap
	// where the theory is used outside its comfortable regime.
	TransonicGap bool `json:"transonic_gap"`

	// Correction factors are 1.0 until the pipeline runs. ThermalFactor
	// records the stiffness degradation, not the speed multiplier.
	TransonicFactor    float64 `json:"transonic_factor"`
	ThermalFactor      float64 `json:"thermal_factor"`
	CorrectionsApplied bool    `json:"corrections_applied"`

	// Asymmetric confidence band, in percent of Speed.
	UncertaintyUp   float64 `json:"uncertainty_up"`
	UncertaintyDown float64 `json:"uncertainty_down"`

	Notes []string `json:"notes,omitempty"`
}

// NewResult returns a Result with neutral correction factors.
func NewResult(method Method) *Result {
	return &Result{
		Speed:           SpeedNotFound,
		Method:          method,
		TransonicFactor: 1.0,
		ThermalFactor:   1.0,
	}
}

// Clone returns an independent copy, so a consumer can annotate or correct
// without touching the original.
func (r *Result) Clone() *Result {
	c := *r
	c.Notes = append([]string(nil), r.Notes...)
	return &c
}

// AddNote appends a human-readable remark.
func (r *Result) AddNote(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}
