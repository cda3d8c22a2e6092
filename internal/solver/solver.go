// Package solver wires the modal model, aerodynamic theories, damping
// evaluator, search engine, correction pipeline, and uncertainty bands
// into the single analysis entry point.
package solver

import (
	"fmt"

	"github.com/aerolab/flutterlab/internal/aero"
	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/config"
	"github.com/aerolab/flutterlab/internal/damping"
	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/modal"
	"github.com/aerolab/flutterlab/internal/panel"
	"github.com/aerolab/flutterlab/internal/search"
)

// Options select the method, velocity range, and post-processing for one
// analysis. Zero values fall back to the calibration defaults.
type Options struct {
	Method           flutter.Method
	VMin, VMax       float64
	Points           int
	ApplyCorrections bool
}

// Solver is re-entrant: Analyze builds all per-call state fresh, so one
// Solver may serve concurrent analyses with no cross-talk.
type Solver struct {
	cal *config.Calibration
}

// New returns a solver with the given calibration (nil means defaults).
func New(cal *config.Calibration) *Solver {
	if cal == nil {
		cal = config.Default()
	}
	return &Solver{cal: cal}
}

// Modes computes the modal basis for the panel under the solver's
// boundary-condition factor table.
func (s *Solver) Modes(p panel.Properties) (modal.State, error) {
	factors, err := s.cal.BoundaryFactors()
	if err != nil {
		return modal.State{}, err
	}
	return modal.Frequencies(p, factors, s.cal.ModeCount)
}

// Evaluator builds the damping evaluator for the flow, routed to the
// requested method. Exposed so curve sampling and the live viewer can
// share the exact evaluation the search uses.
func (s *Solver) Evaluator(method flutter.Method, fl atmosphere.Flow) (*damping.Evaluator, aero.Selection, error) {
	piston := &aero.PistonTheory{
		LambdaCrit: s.cal.LambdaCrit,
		Order:      s.cal.PistonOrder,
		ScaleGain:  s.cal.ScaleGain,
	}
	doublet := &aero.DoubletLattice{
		NX:   s.cal.Doublet.BoxesX,
		NY:   s.cal.Doublet.BoxesY,
		Gain: s.cal.Doublet.Gain,
	}

	sel, err := aero.Select(method, fl, piston, doublet)
	if err != nil {
		return nil, aero.Selection{}, err
	}

	return &damping.Evaluator{
		Theory:         sel.Theory,
		Tracking:       s.cal.DampingTracking(),
		FrequencyDrift: s.cal.FrequencyDrift,
	}, sel, nil
}

// Analyze runs the full pipeline and returns a fresh, read-only result.
// "No flutter in the searched range" is reported on the result, not as an
// error; invalid input and unsupported regimes are errors.
func (s *Solver) Analyze(p panel.Properties, fl atmosphere.Flow, opts Options) (*flutter.Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := fl.Validate(); err != nil {
		return nil, err
	}
	if p.Material.Class == panel.Composite {
		return nil, fmt.Errorf("%w: material %q is composite; this solver is isotropic-only and will not approximate laminates",
			flutter.ErrUnsupportedRegime, p.Material.Name)
	}

	modes, err := s.Modes(p)
	if err != nil {
		return nil, err
	}

	ev, sel, err := s.Evaluator(opts.Method, fl)
	if err != nil {
		return nil, err
	}

	vmin, vmax := opts.VMin, opts.VMax
	if vmin == 0 {
		vmin = s.cal.Search.VMin
	}
	if vmax == 0 {
		vmax = s.cal.Search.VMax
	}
	points := opts.Points
	if points == 0 {
		points = s.cal.Search.Points
	}

	eng := &search.Engine{
		Evaluator:     ev,
		Points:        points,
		MaxIterations: s.cal.Search.MaxIterations,
		RelTolerance:  s.cal.Search.RelTolerance,
	}

	out, err := eng.Search(p, fl, modes, vmin, vmax)
	if err != nil {
		return nil, err
	}

	res := flutter.NewResult(sel.Method)
	res.TransonicGap = sel.TransonicGap
	if modes.Approximate {
		res.AddNote("modal basis uses an approximate %v boundary-condition factor", p.Boundary)
	}
	res.Notes = append(res.Notes, out.Notes...)

	if out.Found {
		res.Found = true
		res.Speed = out.Best.Speed
		res.FrequencyHz = out.Best.FrequencyHz
		res.Mode = out.Best.Mode
		res.Converged = out.Best.Converged
	} else {
		res.AddNote("searched %g-%g m/s with %d points", vmin, vmax, points)
	}

	if opts.ApplyCorrections {
		res = s.cal.Corrections.Apply(res, p, fl)
	}
	return s.cal.Uncertainty.Annotate(res, p, fl), nil
}
