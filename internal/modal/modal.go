// Package modal computes closed-form natural frequencies for a rectangular
// panel. The simply-supported solution is exact thin-plate theory; clamped
// and cantilever panels reuse it with a multiplicative factor per boundary
// condition, which is an approximation and is flagged as such on the result.
package modal

import (
	"fmt"
	"math"
	"sort"

	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/panel"
)

// ModeFrequency pairs a mode index with its natural frequency.
type ModeFrequency struct {
	Mode        flutter.Mode
	FrequencyHz float64
	OmegaRad    float64 // rad/s
}

// State is the ordered modal basis: frequencies ascending.
type State struct {
	Modes []ModeFrequency

	// Approximate is true when the boundary-condition factor table was
	// applied, i.e. for anything other than all-edges-supported.
	Approximate bool
}

// BCFactors maps a boundary condition to the multiplicative frequency
// factor applied to the simply-supported baseline. The clamped and
// cantilever entries are first-mode ratios from tabulated plate solutions
// (35.99/19.74 and 3.49/19.74 for a square plate) applied uniformly to all
// modes; they are calibration data, not exact solutions.
type BCFactors map[panel.BoundaryCondition]float64

// DefaultBCFactors returns the documented default factor table.
func DefaultBCFactors() BCFactors {
	return BCFactors{
		panel.AllEdgesSupported: 1.0,
		panel.AllEdgesClamped:   1.82,
		panel.CantileverOneEdge: 0.18,
	}
}

// Frequencies computes the lowest modeCount natural frequencies of the
// panel. Mode indices (p, q) run from 1; candidates are enumerated up to
// modeCount half-waves in each direction and the lowest frequencies kept.
func Frequencies(p panel.Properties, factors BCFactors, modeCount int) (State, error) {
	if err := p.Validate(); err != nil {
		return State{}, err
	}
	if modeCount <= 0 {
		return State{}, fmt.Errorf("%w: mode count must be positive, got %d", flutter.ErrInvalidInput, modeCount)
	}
	if factors == nil {
		factors = DefaultBCFactors()
	}
	factor, ok := factors[p.Boundary]
	if !ok {
		return State{}, fmt.Errorf("%w: no frequency factor for boundary condition %v", flutter.ErrInvalidInput, p.Boundary)
	}

	d := p.FlexuralRigidity()
	m := p.SurfaceDensity()
	stiffness := math.Pi * math.Pi * math.Sqrt(d/m)

	modes := make([]ModeFrequency, 0, modeCount*modeCount)
	for pi := 1; pi <= modeCount; pi++ {
		for qi := 1; qi <= modeCount; qi++ {
			px := float64(pi) / p.Length
			qy := float64(qi) / p.Width
			omega := stiffness * (px*px + qy*qy) * factor
			modes = append(modes, ModeFrequency{
				Mode:        flutter.Mode{P: pi, Q: qi},
				FrequencyHz: omega / (2 * math.Pi),
				OmegaRad:    omega,
			})
		}
	}

	sort.Slice(modes, func(i, j int) bool {
		if modes[i].FrequencyHz != modes[j].FrequencyHz {
			return modes[i].FrequencyHz < modes[j].FrequencyHz
		}
		// Deterministic order for degenerate pairs (square panels).
		if modes[i].Mode.P != modes[j].Mode.P {
			return modes[i].Mode.P < modes[j].Mode.P
		}
		return modes[i].Mode.Q < modes[j].Mode.Q
	})

	return State{
		Modes:       modes[:modeCount],
		Approximate: p.Boundary != panel.AllEdgesSupported,
	}, nil
}
