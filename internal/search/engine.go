// Package search locates the critical flutter velocity: a coarse sweep
// across the velocity range, bracket detection on the damping sign change
// per mode, bisection refinement, and lowest-critical-velocity selection
// across modes.
package search

import (
	"fmt"

	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/damping"
	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/modal"
	"github.com/aerolab/flutterlab/internal/panel"
)

// ModeEvaluator is the slice of the damping evaluator the engine needs.
type ModeEvaluator interface {
	TotalDamping(p panel.Properties, fl atmosphere.Flow, mode modal.ModeFrequency, velocity float64) (damping.Sample, error)
	SameMode(f1, f2 float64) bool
}

// Engine defaults.
const (
	DefaultPoints        = 60
	DefaultMaxIterations = 100
	DefaultRelTolerance  = 0.001 // 0.1% on velocity
)

// Engine is a re-entrant flutter search. Every call allocates its own
// working state, so one Engine may serve concurrent analyses.
type Engine struct {
	Evaluator     ModeEvaluator
	Points        int
	MaxIterations int
	RelTolerance  float64
}

// New returns an engine with documented defaults.
func New(ev ModeEvaluator) *Engine {
	return &Engine{
		Evaluator:     ev,
		Points:        DefaultPoints,
		MaxIterations: DefaultMaxIterations,
		RelTolerance:  DefaultRelTolerance,
	}
}

// Candidate is one mode's crossing.
type Candidate struct {
	Mode        flutter.Mode
	Speed       float64
	FrequencyHz float64
	Converged   bool
	Iterations  int
	Note        string
}

// Outcome is the terminal state of a search. Found=false is the valid
// "no flutter in range" state, not an error.
type Outcome struct {
	Found      bool
	Best       Candidate
	Candidates []Candidate
	Notes      []string
}

// Search sweeps [vmin, vmax] for every mode and returns the lowest
// critical velocity found. Evaluation errors (invalid input, unsupported
// regime) abort the search; "nothing found" does not.
func (e *Engine) Search(p panel.Properties, fl atmosphere.Flow, modes modal.State, vmin, vmax float64) (Outcome, error) {
	if vmin <= 0 || vmax <= vmin {
		return Outcome{}, fmt.Errorf("%w: velocity range must satisfy 0 < vmin < vmax, got [%g, %g]",
			flutter.ErrInvalidInput, vmin, vmax)
	}
	if e.Points < 2 {
		return Outcome{}, fmt.Errorf("%w: sweep needs at least 2 points, got %d", flutter.ErrInvalidInput, e.Points)
	}
	if len(modes.Modes) == 0 {
		return Outcome{}, fmt.Errorf("%w: no modes to search", flutter.ErrInvalidInput)
	}

	var out Outcome
	step := (vmax - vmin) / float64(e.Points-1)

	for _, mode := range modes.Modes {
		samples := make([]damping.Sample, e.Points)
		for i := range samples {
			v := vmin + float64(i)*step
			s, err := e.Evaluator.TotalDamping(p, fl, mode, v)
			if err != nil {
				return Outcome{}, err
			}
			samples[i] = s
		}

		cand, ok, err := e.scanMode(p, fl, mode, samples)
		if err != nil {
			return Outcome{}, err
		}
		if ok {
			out.Candidates = append(out.Candidates, cand)
		}
	}

	if len(out.Candidates) == 0 {
		out.Notes = append(out.Notes, "no damping sign change in the searched velocity range")
		return out, nil
	}

	// Lowest critical velocity wins across modes; sweep encounter order
	// never overrides it.
	best := out.Candidates[0]
	for _, c := range out.Candidates[1:] {
		if c.Speed < best.Speed {
			best = c
		}
	}
	out.Found = true
	out.Best = best
	if best.Note != "" {
		out.Notes = append(out.Notes, best.Note)
	}
	return out, nil
}

// scanMode walks the coarse samples of one mode looking for the first
// stable-to-unstable transition.
func (e *Engine) scanMode(p panel.Properties, fl atmosphere.Flow, mode modal.ModeFrequency, samples []damping.Sample) (Candidate, bool, error) {
	// Whole range already unstable: no sign change exists, report the
	// lowest unstable sample instead of pretending there is no flutter.
	if samples[0].Damping < 0 {
		return Candidate{
			Mode:        mode.Mode,
			Speed:       samples[0].Velocity,
			FrequencyHz: samples[0].FrequencyHz,
			Converged:   false,
			Note:        fmt.Sprintf("mode %v already unstable at the lowest searched velocity", mode.Mode),
		}, true, nil
	}

	for i := 0; i < len(samples); i++ {
		// Exactly zero damping IS the stability boundary; legitimately
		// small crossings are physical, so no magnitude filtering.
		if samples[i].Damping == 0 {
			return Candidate{
				Mode:        mode.Mode,
				Speed:       samples[i].Velocity,
				FrequencyHz: samples[i].FrequencyHz,
				Converged:   true,
				Note:        fmt.Sprintf("mode %v damping exactly zero at a sweep sample", mode.Mode),
			}, true, nil
		}
		if i == 0 {
			continue
		}

		if samples[i-1].Damping > 0 && samples[i].Damping < 0 {
			note := ""
			if !e.Evaluator.SameMode(samples[i-1].FrequencyHz, samples[i].FrequencyHz) {
				note = fmt.Sprintf("mode %v identity uncertain across the bracket (frequency jump %.1f -> %.1f Hz)",
					mode.Mode, samples[i-1].FrequencyHz, samples[i].FrequencyHz)
			}
			cand, err := e.bisect(p, fl, mode, samples[i-1].Velocity, samples[i].Velocity)
			if err != nil {
				return Candidate{}, false, err
			}
			if note != "" {
				cand.Note = note
			}
			return cand, true, nil
		}
	}

	return Candidate{}, false, nil
}

// bisect refines a bracketed crossing to RelTolerance on velocity. If the
// iteration cap is reached first, the midpoint estimate is returned with
// Converged=false rather than discarded.
func (e *Engine) bisect(p panel.Properties, fl atmosphere.Flow, mode modal.ModeFrequency, lo, hi float64) (Candidate, error) {
	cand := Candidate{Mode: mode.Mode}

	var mid damping.Sample
	for i := 0; i < e.MaxIterations; i++ {
		v := 0.5 * (lo + hi)
		s, err := e.Evaluator.TotalDamping(p, fl, mode, v)
		if err != nil {
			return Candidate{}, err
		}
		mid = s
		cand.Iterations = i + 1

		switch {
		case s.Damping == 0:
			cand.Speed = v
			cand.FrequencyHz = s.FrequencyHz
			cand.Converged = true
			return cand, nil
		case s.Damping > 0:
			lo = v
		default:
			hi = v
		}

		if (hi-lo)/v <= e.RelTolerance {
			cand.Speed = 0.5 * (lo + hi)
			cand.FrequencyHz = s.FrequencyHz
			cand.Converged = true
			return cand, nil
		}
	}

	cand.Speed = mid.Velocity
	cand.FrequencyHz = mid.FrequencyHz
	cand.Converged = false
	cand.Note = fmt.Sprintf("bisection for mode %v hit the iteration cap (%d); best estimate returned", mode.Mode, e.MaxIterations)
	return cand, nil
}
