// Package uncertainty attaches method- and regime-dependent confidence
// bounds to a flutter result. Pure annotation: nothing here feeds back
// into the search.
package uncertainty

import (
	"github.com/aerolab/flutterlab/internal/aero"
	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/panel"
)

// Band is an asymmetric confidence interval in percent of flutter speed.
type Band struct {
	Up   float64 `yaml:"up"`
	Down float64 `yaml:"down"`
}

// Bands is the calibration table. Piston bands are wide because the
// critical flutter parameter has two irreconcilable calibration values;
// the transonic gap is wider still.
type Bands struct {
	Doublet          Band `yaml:"doublet"`
	DoubletNearSonic Band `yaml:"doublet_near_sonic"`
	Piston           Band `yaml:"piston"`
	PistonGap        Band `yaml:"piston_gap"`
	// BoundaryPenalty widens both sides when the modal basis used an
	// approximate boundary-condition factor.
	BoundaryPenalty float64 `yaml:"boundary_penalty"`
}

// DefaultBands returns the documented table.
func DefaultBands() Bands {
	return Bands{
		Doublet:          Band{Up: 10, Down: 10},
		DoubletNearSonic: Band{Up: 20, Down: 25},
		Piston:           Band{Up: 35, Down: 25},
		PistonGap:        Band{Up: 50, Down: 40},
		BoundaryPenalty:  10,
	}
}

// NearSonicMach marks where the subsonic band starts widening.
const NearSonicMach = 0.85

// Annotate fills the uncertainty fields of the result in place-of-copy:
// the returned result is a clone, the input is untouched.
func (b Bands) Annotate(res *flutter.Result, p panel.Properties, fl atmosphere.Flow) *flutter.Result {
	out := res.Clone()

	var band Band
	switch {
	case out.Method == flutter.MethodDoubletLattice && fl.Mach >= NearSonicMach:
		band = b.DoubletNearSonic
		out.AddNote("subsonic theory near the transonic range; widened confidence band")
	case out.Method == flutter.MethodDoubletLattice:
		band = b.Doublet
	case out.TransonicGap:
		band = b.PistonGap
		out.AddNote("piston theory inside the Mach 1.0-1.2 gap; reduced confidence")
	default:
		band = b.Piston
		out.AddNote("piston-theory calibration constant is disputed (theory %.1f vs back-fit %.1f); band widened",
			aero.LambdaCritTheory, aero.LambdaCritEmpirical)
	}

	if p.Boundary != panel.AllEdgesSupported {
		band.Up += b.BoundaryPenalty
		band.Down += b.BoundaryPenalty
		out.AddNote("approximate %v boundary-condition factor in the modal basis", p.Boundary)
	}

	out.UncertaintyUp = band.Up
	out.UncertaintyDown = band.Down
	return out
}
