// Package correction applies the empirically-calibrated post-search
// corrections: the transonic dip and thermal material degradation. Both
// are idempotent: a result that has already been corrected passes through
// untouched, so a re-render can never double-apply a factor.
package correction

import (
	"math"

	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/panel"
)

// Transonic holds the dip parameters: factor =
// 1 - MaxReduction * exp(-((M - CriticalMach)/Sigma)^2) inside the window.
type Transonic struct {
	WindowLow    float64 `yaml:"window_low"`
	WindowHigh   float64 `yaml:"window_high"`
	CriticalMach float64 `yaml:"critical_mach"`
	Sigma        float64 `yaml:"sigma"`
	MaxReduction float64 `yaml:"max_reduction"`
}

// Thermal holds the aerodynamic-heating parameters. The degradation factor
// is clamped to [MinFactor, 1] so heating can never produce a nonsensical
// negative stiffness.
type Thermal struct {
	ActivationMach float64 `yaml:"activation_mach"`
	MinFactor      float64 `yaml:"min_factor"`
	// RecoveryFactor scales the adiabatic wall temperature rise; ~1 for
	// turbulent boundary layers.
	RecoveryFactor float64 `yaml:"recovery_factor"`
}

// Pipeline bundles both corrections.
type Pipeline struct {
	Transonic Transonic `yaml:"transonic"`
	Thermal   Thermal   `yaml:"thermal"`
}

// DefaultPipeline returns the documented calibration.
func DefaultPipeline() Pipeline {
	return Pipeline{
		Transonic: Transonic{
			WindowLow:    0.85,
			WindowHigh:   1.15,
			CriticalMach: 0.95,
			Sigma:        0.08,
			MaxReduction: 0.25,
		},
		Thermal: Thermal{
			ActivationMach: 1.5,
			MinFactor:      0.5,
			RecoveryFactor: 1.0,
		},
	}
}

// TransonicFactor returns the speed multiplier for the shock-induced
// stiffness loss: 1.0 outside the window, down to 0.75 at the dip center.
func (pl Pipeline) TransonicFactor(mach float64) float64 {
	t := pl.Transonic
	if mach <= t.WindowLow || mach >= t.WindowHigh {
		return 1.0
	}
	arg := (mach - t.CriticalMach) / t.Sigma
	return 1.0 - t.MaxReduction*math.Exp(-arg*arg)
}

// WallTemperature returns the adiabatic wall temperature
// T_wall = T_inf * (1 + r * 0.2 * M^2).
func (pl Pipeline) WallTemperature(fl atmosphere.Flow) float64 {
	return fl.Temperature() * (1 + pl.Thermal.RecoveryFactor*0.2*fl.Mach*fl.Mach)
}

// ThermalFactor returns the effective stiffness retention in [MinFactor, 1]
// for the material at the heated wall temperature. 1.0 below the
// activation Mach or below the material's reference temperature.
func (pl Pipeline) ThermalFactor(mat panel.Material, fl atmosphere.Flow) float64 {
	if fl.Mach < pl.Thermal.ActivationMach {
		return 1.0
	}
	rise := pl.WallTemperature(fl) - mat.ReferenceTemperature
	if rise <= 0 {
		return 1.0
	}
	factor := 1.0 - mat.ThermalDegradationCoeff*rise
	return math.Min(1.0, math.Max(pl.Thermal.MinFactor, factor))
}

// Apply returns a corrected copy of the result. Flutter speed scales with
// the square root of stiffness, so the thermal stiffness factor enters the
// speed as its square root; the raw factor itself is recorded. A result
// with CorrectionsApplied set is returned as-is.
func (pl Pipeline) Apply(res *flutter.Result, p panel.Properties, fl atmosphere.Flow) *flutter.Result {
	if res.CorrectionsApplied {
		return res
	}

	out := res.Clone()
	out.TransonicFactor = pl.TransonicFactor(fl.Mach)
	out.ThermalFactor = pl.ThermalFactor(p.Material, fl)
	out.CorrectionsApplied = true

	if out.Found && out.Speed > 0 {
		out.Speed *= out.TransonicFactor * math.Sqrt(out.ThermalFactor)
	}
	if out.TransonicFactor < 1 {
		out.AddNote("transonic dip correction applied (factor %.3f at Mach %.2f)", out.TransonicFactor, fl.Mach)
	}
	if out.ThermalFactor < 1 {
		out.AddNote("thermal degradation applied (stiffness factor %.3f, wall temperature %.0f K)",
			out.ThermalFactor, pl.WallTemperature(fl))
	}
	return out
}
