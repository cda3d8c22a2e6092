// Package atmosphere models the flight condition: Mach number, altitude,
// and the air properties derived from the standard atmosphere.
package atmosphere

import (
	"fmt"
	"math"

	"github.com/aerolab/flutterlab/internal/flutter"
)

// ICAO standard atmosphere constants (SI).
const (
	SeaLevelTemperature = 288.15  // K
	SeaLevelPressure    = 101325. // Pa
	LapseRate           = 0.0065  // K/m, troposphere
	TropopauseAltitude  = 11000.  // m
	GasConstant         = 287.05287
	Gravity             = 9.80665
	GammaAir            = 1.4
)

// Flow is an immutable flight condition. Air properties are derived from
// altitude on demand, never stored, so they cannot drift out of sync.
type Flow struct {
	Mach     float64
	Altitude float64 // m
}

// New validates and constructs a flight condition.
func New(mach, altitude float64) (Flow, error) {
	fl := Flow{Mach: mach, Altitude: altitude}
	if err := fl.Validate(); err != nil {
		return Flow{}, err
	}
	return fl, nil
}

// Validate checks the raw inputs.
func (f Flow) Validate() error {
	if f.Mach <= 0 {
		return fmt.Errorf("%w: mach must be positive, got %g", flutter.ErrInvalidInput, f.Mach)
	}
	if f.Altitude < 0 {
		return fmt.Errorf("%w: altitude must be non-negative, got %g", flutter.ErrInvalidInput, f.Altitude)
	}
	return nil
}

// Temperature returns the static air temperature in K. Piecewise: linear
// lapse up to the tropopause, isothermal above.
func (f Flow) Temperature() float64 {
	if f.Altitude <= TropopauseAltitude {
		return SeaLevelTemperature - LapseRate*f.Altitude
	}
	return SeaLevelTemperature - LapseRate*TropopauseAltitude
}

// Pressure returns the static pressure in Pa.
func (f Flow) Pressure() float64 {
	exponent := Gravity / (GasConstant * LapseRate)
	if f.Altitude <= TropopauseAltitude {
		return SeaLevelPressure * math.Pow(f.Temperature()/SeaLevelTemperature, exponent)
	}
	t11 := SeaLevelTemperature - LapseRate*TropopauseAltitude
	p11 := SeaLevelPressure * math.Pow(t11/SeaLevelTemperature, exponent)
	return p11 * math.Exp(-Gravity*(f.Altitude-TropopauseAltitude)/(GasConstant*t11))
}

// Density returns the air density in kg/m^3 from the ideal gas law.
func (f Flow) Density() float64 {
	return f.Pressure() / (GasConstant * f.Temperature())
}

// SpeedOfSound returns a = sqrt(gamma R T) in m/s.
func (f Flow) SpeedOfSound() float64 {
	return math.Sqrt(GammaAir * GasConstant * f.Temperature())
}

// Velocity returns the freestream velocity Mach * a in m/s.
func (f Flow) Velocity() float64 {
	return f.Mach * f.SpeedOfSound()
}

// DynamicPressure returns q = 0.5 rho V^2 at the given velocity.
func (f Flow) DynamicPressure(velocity float64) float64 {
	return 0.5 * f.Density() * velocity * velocity
}
