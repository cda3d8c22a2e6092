// Package config holds the injected calibration for the solver and the
// preset tables for common analysis cases. Nothing in the solver reads a
// hidden global: every constant that tunes the physics lives here and is
// passed in explicitly.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aerolab/flutterlab/internal/aero"
	"github.com/aerolab/flutterlab/internal/correction"
	"github.com/aerolab/flutterlab/internal/damping"
	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/modal"
	"github.com/aerolab/flutterlab/internal/panel"
	"github.com/aerolab/flutterlab/internal/search"
	"github.com/aerolab/flutterlab/internal/uncertainty"
)

// DoubletConfig sizes the aerodynamic box lattice.
type DoubletConfig struct {
	BoxesX int     `yaml:"boxes_x"`
	BoxesY int     `yaml:"boxes_y"`
	Gain   float64 `yaml:"gain"`
}

// TrackingConfig mirrors damping.Tracking for the yaml file.
type TrackingConfig struct {
	RelTolerance float64 `yaml:"rel_tolerance"`
	ZeroHz       float64 `yaml:"zero_hz"`
}

// SearchConfig tunes the sweep and bisection.
type SearchConfig struct {
	Points        int     `yaml:"points"`
	MaxIterations int     `yaml:"max_iterations"`
	RelTolerance  float64 `yaml:"rel_tolerance"`
	VMin          float64 `yaml:"vmin"`
	VMax          float64 `yaml:"vmax"`
}

// Calibration is the complete tuning surface of the solver.
type Calibration struct {
	// LambdaCrit is the piston-theory critical flutter parameter. Two
	// candidates exist (aero.LambdaCritTheory, aero.LambdaCritEmpirical)
	// and the validation record does not settle which is right; pick
	// deliberately and read the uncertainty band on the result.
	LambdaCrit  float64 `yaml:"lambda_crit"`
	PistonOrder int     `yaml:"piston_order"`
	ScaleGain   float64 `yaml:"scale_gain"`

	Doublet DoubletConfig `yaml:"doublet"`

	Corrections correction.Pipeline `yaml:"corrections"`
	Uncertainty uncertainty.Bands   `yaml:"uncertainty"`

	// BCFactors maps boundary-condition names to modal frequency factors.
	BCFactors map[string]float64 `yaml:"bc_factors"`

	Tracking       TrackingConfig `yaml:"tracking"`
	FrequencyDrift float64        `yaml:"frequency_drift"`

	Search    SearchConfig `yaml:"search"`
	ModeCount int          `yaml:"mode_count"`
}

// Default returns the documented calibration.
func Default() *Calibration {
	tr := damping.DefaultTracking()
	return &Calibration{
		LambdaCrit:  aero.LambdaCritTheory,
		PistonOrder: 1,
		ScaleGain:   1.0,
		Doublet:     DoubletConfig{BoxesX: 8, BoxesY: 6, Gain: 1.0},
		Corrections: correction.DefaultPipeline(),
		Uncertainty: uncertainty.DefaultBands(),
		BCFactors: map[string]float64{
			"simply-supported": 1.0,
			"clamped":          1.82,
			"cantilever":       0.18,
		},
		Tracking:       TrackingConfig{RelTolerance: tr.RelTolerance, ZeroHz: tr.ZeroHz},
		FrequencyDrift: damping.DefaultFrequencyDrift,
		Search: SearchConfig{
			Points:        search.DefaultPoints,
			MaxIterations: search.DefaultMaxIterations,
			RelTolerance:  search.DefaultRelTolerance,
			VMin:          20,
			VMax:          4000,
		},
		ModeCount: 6,
	}
}

// Load reads a calibration file, starting from defaults so a partial file
// overrides only what it names.
func Load(path string) (*Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cal := Default()
	if err := yaml.Unmarshal(data, cal); err != nil {
		return nil, err
	}
	return cal, nil
}

// Save writes the calibration to a yaml file.
func Save(path string, cal *Calibration) error {
	data, err := yaml.Marshal(cal)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BoundaryFactors converts the named factor table into the modal form.
func (c *Calibration) BoundaryFactors() (modal.BCFactors, error) {
	out := make(modal.BCFactors, len(c.BCFactors))
	for name, factor := range c.BCFactors {
		bc, err := panel.ParseBoundary(name)
		if err != nil {
			return nil, err
		}
		if factor <= 0 {
			return nil, fmt.Errorf("%w: boundary factor for %q must be positive, got %g",
				flutter.ErrInvalidInput, name, factor)
		}
		out[bc] = factor
	}
	return out, nil
}

// DampingTracking converts the yaml tracking block.
func (c *Calibration) DampingTracking() damping.Tracking {
	return damping.Tracking{RelTolerance: c.Tracking.RelTolerance, ZeroHz: c.Tracking.ZeroHz}
}
