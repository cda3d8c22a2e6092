package aero

import (
	"fmt"
	"math"

	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/modal"
	"github.com/aerolab/flutterlab/internal/panel"
)

// DoubletLattice is the subsonic strategy. It discretizes the panel into
// NX x NY aerodynamic boxes, sums a regularized influence kernel with the
// Prandtl-Glauert compressibility correction (no full unsteady kernel
// integral), and projects the quadrature component of the generalized
// force onto the mode shape to obtain a modal damping contribution as a
// function of reduced frequency k = omega L / (2 V).
type DoubletLattice struct {
	NX, NY int
	// Gain calibrates the magnitude of the projected force.
	Gain float64
}

// NewDoubletLattice returns the default 8x6 lattice.
func NewDoubletLattice() *DoubletLattice {
	return &DoubletLattice{NX: 8, NY: 6, Gain: 1.0}
}

func (dl *DoubletLattice) Name() string { return "doublet-lattice" }

// minOmega floors near-zero modal frequencies so divergence-type modes do
// not blow up the 1/omega term; they re-enter the sweep once the coupled
// frequency lifts off zero.
const minOmega = 1.0 // rad/s

// Damping implements Theory.
func (dl *DoubletLattice) Damping(p panel.Properties, fl atmosphere.Flow, mode modal.ModeFrequency, velocity float64) (float64, error) {
	if fl.Mach >= SubsonicLimitMach {
		return 0, &flutter.RegimeError{
			Theory: dl.Name(),
			Mach:   fl.Mach,
			Reason: "doublet lattice requires subsonic flow (Mach < 1)",
		}
	}
	if velocity <= 0 {
		return 0, fmt.Errorf("%w: velocity must be positive, got %g", flutter.ErrInvalidInput, velocity)
	}
	if dl.NX < 2 || dl.NY < 2 {
		return 0, fmt.Errorf("%w: lattice needs at least 2x2 boxes, got %dx%d", flutter.ErrInvalidInput, dl.NX, dl.NY)
	}

	beta := math.Sqrt(1 - fl.Mach*fl.Mach)
	omega := math.Max(mode.OmegaRad, minOmega)
	k := omega * p.Length / (2 * velocity)

	dx := p.Length / float64(dl.NX)
	dy := p.Width / float64(dl.NY)
	area := dx * dy
	// Regularization core: half the box diagonal.
	core := 0.5 * math.Hypot(dx, dy)

	pf := math.Pi * float64(mode.Mode.P) / p.Length
	qf := math.Pi * float64(mode.Mode.Q) / p.Width

	shape := func(x, y float64) float64 {
		return math.Sin(pf*x) * math.Sin(qf*y)
	}

	// Quadrature generalized force: receiving boxes accumulate the
	// k-weighted plunge downwash induced by every sending box.
	var qim float64
	for i := 0; i < dl.NX; i++ {
		for j := 0; j < dl.NY; j++ {
			xi := (float64(i) + 0.5) * dx
			yi := (float64(j) + 0.5) * dy
			phiI := shape(xi, yi)

			var downwash float64
			for si := 0; si < dl.NX; si++ {
				for sj := 0; sj < dl.NY; sj++ {
					xs := (float64(si) + 0.5) * dx
					ys := (float64(sj) + 0.5) * dy
					r2 := (xi-xs)*(xi-xs) + (yi-ys)*(yi-ys)
					kernel := 1 / (4 * math.Pi * beta * (r2 + core*core))
					downwash += kernel * k * shape(xs, ys) * area
				}
			}
			qim += phiI * downwash * area
		}
	}

	// Project onto the mode: generalized mass m * integral(phi^2) = m*L*W/4
	// for the sinusoidal shape.
	genMass := p.SurfaceDensity() * p.Length * p.Width / 4
	q := fl.DynamicPressure(velocity)
	return dl.Gain * q * qim / (genMass * omega * omega * p.Length), nil
}
