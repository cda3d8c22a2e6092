package config

import "sort"

// Preset is a complete ready-to-run analysis case.
type Preset struct {
	Description string
	Material    string
	Length      float64 // m
	Width       float64
	Thickness   float64
	Boundary    string
	Damping     float64
	Mach        float64
	Altitude    float64 // m
	Method      string
}

var Presets = map[string]Preset{
	"aluminum-skin": {
		Description: "500x400x3 mm aluminum skin panel, supersonic cruise",
		Material:    "aluminum-2024",
		Length:      0.5, Width: 0.4, Thickness: 0.003,
		Boundary: "ss", Damping: 0.01,
		Mach: 2.0, Altitude: 10000, Method: "auto",
	},
	"subsonic-aluminum": {
		Description: "same panel at high subsonic cruise",
		Material:    "aluminum-2024",
		Length:      0.5, Width: 0.4, Thickness: 0.003,
		Boundary: "ss", Damping: 0.01,
		Mach: 0.7, Altitude: 8000, Method: "auto",
	},
	"transonic-dip": {
		Description: "transonic case at the dip center",
		Material:    "aluminum-2024",
		Length:      0.5, Width: 0.4, Thickness: 0.003,
		Boundary: "ss", Damping: 0.01,
		Mach: 0.95, Altitude: 5000, Method: "doublet",
	},
	"titanium-hot": {
		Description: "titanium panel with aerodynamic heating",
		Material:    "ti-6al-4v",
		Length:      0.6, Width: 0.45, Thickness: 0.004,
		Boundary: "clamped", Damping: 0.015,
		Mach: 3.0, Altitude: 18000, Method: "piston",
	},
	"steel-thick": {
		Description: "thick steel panel, low supersonic",
		Material:    "steel-4130",
		Length:      0.4, Width: 0.3, Thickness: 0.006,
		Boundary: "clamped", Damping: 0.02,
		Mach: 1.6, Altitude: 3000, Method: "auto",
	},
}

// GetPreset looks up a preset by name; nil when absent.
func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

// ListPresets returns the preset names sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
