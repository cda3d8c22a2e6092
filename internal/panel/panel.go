// Package panel describes the structure under analysis: a rectangular
// isotropic plate with a boundary-condition variant and material.
package panel

import (
	"fmt"

	"github.com/aerolab/flutterlab/internal/flutter"
)

// BoundaryCondition selects the edge-support variant.
type BoundaryCondition int

const (
	AllEdgesSupported BoundaryCondition = iota
	AllEdgesClamped
	CantileverOneEdge
)

func (b BoundaryCondition) String() string {
	switch b {
	case AllEdgesClamped:
		return "clamped"
	case CantileverOneEdge:
		return "cantilever"
	default:
		return "simply-supported"
	}
}

// ParseBoundary converts a CLI/config string into a BoundaryCondition.
func ParseBoundary(s string) (BoundaryCondition, error) {
	switch s {
	case "simply-supported", "ss", "":
		return AllEdgesSupported, nil
	case "clamped", "cccc":
		return AllEdgesClamped, nil
	case "cantilever", "cfff":
		return CantileverOneEdge, nil
	}
	return AllEdgesSupported, fmt.Errorf("%w: unknown boundary condition %q", flutter.ErrInvalidInput, s)
}

// MaterialClass distinguishes materials this solver can treat from those
// it must refuse. Composite laminates need an orthotropic formulation and
// are rejected at analysis time, never silently treated as isotropic.
type MaterialClass int

const (
	Isotropic MaterialClass = iota
	Composite
)

func (c MaterialClass) String() string {
	if c == Composite {
		return "composite"
	}
	return "isotropic"
}

// Material carries the structural and thermal properties of the panel skin.
type Material struct {
	Name          string
	YoungsModulus float64 // Pa
	PoissonRatio  float64
	Density       float64 // kg/m^3
	Class         MaterialClass

	// ThermalDegradationCoeff is the fractional modulus loss per kelvin
	// above ReferenceTemperature, used by the thermal correction.
	ThermalDegradationCoeff float64 // 1/K
	ReferenceTemperature    float64 // K
}

// Validate checks the material for physically meaningful values.
func (m Material) Validate() error {
	if m.YoungsModulus <= 0 {
		return fmt.Errorf("%w: Young's modulus must be positive, got %g", flutter.ErrInvalidInput, m.YoungsModulus)
	}
	if m.Density <= 0 {
		return fmt.Errorf("%w: density must be positive, got %g", flutter.ErrInvalidInput, m.Density)
	}
	if m.PoissonRatio <= 0 || m.PoissonRatio >= 0.5 {
		return fmt.Errorf("%w: Poisson ratio must be in (0, 0.5), got %g", flutter.ErrInvalidInput, m.PoissonRatio)
	}
	return nil
}

// Properties is the immutable description of one panel. Construct with New;
// copies are values, so downstream code cannot mutate the analyzed panel.
type Properties struct {
	Length    float64 // m, streamwise
	Width     float64 // m, spanwise
	Thickness float64 // m
	Material  Material
	Boundary  BoundaryCondition

	// StructuralDamping is the modal damping ratio of the bare structure.
	StructuralDamping float64
}

// DefaultStructuralDamping is used when the caller passes zero damping.
const DefaultStructuralDamping = 0.01

// New validates and constructs panel properties.
func New(length, width, thickness float64, mat Material, bc BoundaryCondition, damping float64) (Properties, error) {
	if damping == 0 {
		damping = DefaultStructuralDamping
	}
	p := Properties{
		Length:            length,
		Width:             width,
		Thickness:         thickness,
		Material:          mat,
		Boundary:          bc,
		StructuralDamping: damping,
	}
	if err := p.Validate(); err != nil {
		return Properties{}, err
	}
	return p, nil
}

// Validate checks geometry, material, and damping.
func (p Properties) Validate() error {
	if p.Length <= 0 {
		return fmt.Errorf("%w: length must be positive, got %g", flutter.ErrInvalidInput, p.Length)
	}
	if p.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %g", flutter.ErrInvalidInput, p.Width)
	}
	if p.Thickness <= 0 {
		return fmt.Errorf("%w: thickness must be positive, got %g", flutter.ErrInvalidInput, p.Thickness)
	}
	if p.StructuralDamping < 0 {
		return fmt.Errorf("%w: structural damping must be non-negative, got %g", flutter.ErrInvalidInput, p.StructuralDamping)
	}
	return p.Material.Validate()
}

// FlexuralRigidity returns D = E h^3 / (12 (1 - nu^2)) in N*m.
func (p Properties) FlexuralRigidity() float64 {
	h := p.Thickness
	nu := p.Material.PoissonRatio
	return p.Material.YoungsModulus * h * h * h / (12 * (1 - nu*nu))
}

// SurfaceDensity returns the mass per unit area rho*h in kg/m^2.
func (p Properties) SurfaceDensity() float64 {
	return p.Material.Density * p.Thickness
}
