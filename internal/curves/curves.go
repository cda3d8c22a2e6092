// Package curves samples damping-vs-velocity and frequency-vs-velocity
// traces for plotting and export. Sampling is independent of the flutter
// search: consumers get evenly spaced curves even when the search spent
// its evaluations bisecting.
package curves

import (
	"fmt"

	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/damping"
	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/modal"
	"github.com/aerolab/flutterlab/internal/panel"
)

// ModeCurve is one mode's trace across the velocity grid.
type ModeCurve struct {
	Mode        flutter.Mode `json:"mode"`
	Damping     []float64    `json:"damping"`
	FrequencyHz []float64    `json:"frequency_hz"`
}

// Set bundles the shared velocity grid with the per-mode traces.
type Set struct {
	Velocities []float64   `json:"velocities"`
	Curves     []ModeCurve `json:"curves"`
}

// Sample evaluates every mode at n evenly spaced velocities in
// [vmin, vmax].
func Sample(ev *damping.Evaluator, p panel.Properties, fl atmosphere.Flow, modes modal.State, vmin, vmax float64, n int) (*Set, error) {
	if vmin <= 0 || vmax <= vmin {
		return nil, fmt.Errorf("%w: velocity range must satisfy 0 < vmin < vmax, got [%g, %g]",
			flutter.ErrInvalidInput, vmin, vmax)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 sample points, got %d", flutter.ErrInvalidInput, n)
	}

	set := &Set{Velocities: make([]float64, n)}
	step := (vmax - vmin) / float64(n-1)
	for i := range set.Velocities {
		set.Velocities[i] = vmin + float64(i)*step
	}

	for _, mode := range modes.Modes {
		curve := ModeCurve{
			Mode:        mode.Mode,
			Damping:     make([]float64, n),
			FrequencyHz: make([]float64, n),
		}
		for i, v := range set.Velocities {
			s, err := ev.TotalDamping(p, fl, mode, v)
			if err != nil {
				return nil, err
			}
			curve.Damping[i] = s.Damping
			curve.FrequencyHz[i] = s.FrequencyHz
		}
		set.Curves = append(set.Curves, curve)
	}
	return set, nil
}
