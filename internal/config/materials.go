package config

import (
	"fmt"
	"sort"

	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/panel"
)

// Materials is the built-in material table. Thermal coefficients are
// linear modulus-loss rates per kelvin above the reference temperature.
var Materials = map[string]panel.Material{
	"aluminum-2024": {
		Name:                    "aluminum-2024",
		YoungsModulus:           71.7e9,
		PoissonRatio:            0.33,
		Density:                 2810,
		Class:                   panel.Isotropic,
		ThermalDegradationCoeff: 4.0e-4,
		ReferenceTemperature:    294,
	},
	"ti-6al-4v": {
		Name:                    "ti-6al-4v",
		YoungsModulus:           113.8e9,
		PoissonRatio:            0.342,
		Density:                 4430,
		Class:                   panel.Isotropic,
		ThermalDegradationCoeff: 3.5e-4,
		ReferenceTemperature:    294,
	},
	"steel-4130": {
		Name:                    "steel-4130",
		YoungsModulus:           205e9,
		PoissonRatio:            0.29,
		Density:                 7850,
		Class:                   panel.Isotropic,
		ThermalDegradationCoeff: 3.0e-4,
		ReferenceTemperature:    294,
	},
	// Carried in the table so a request names it explicitly; the solver
	// refuses composite panels rather than treating them as isotropic.
	"cfrp-quasi-iso": {
		Name:                    "cfrp-quasi-iso",
		YoungsModulus:           60e9,
		PoissonRatio:            0.31,
		Density:                 1600,
		Class:                   panel.Composite,
		ThermalDegradationCoeff: 8.0e-4,
		ReferenceTemperature:    294,
	},
}

// GetMaterial looks up a material by name.
func GetMaterial(name string) (panel.Material, error) {
	m, ok := Materials[name]
	if !ok {
		return panel.Material{}, fmt.Errorf("%w: unknown material %q (known: %v)",
			flutter.ErrInvalidInput, name, MaterialNames())
	}
	return m, nil
}

// MaterialNames returns the table keys sorted.
func MaterialNames() []string {
	names := make([]string, 0, len(Materials))
	for name := range Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
