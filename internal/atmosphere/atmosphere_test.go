package atmosphere

import (
	"errors"
	"math"
	"testing"

	"github.com/aerolab/flutterlab/internal/flutter"
)

func TestSeaLevelProperties(t *testing.T) {
	fl, err := New(0.8, 0)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if got := fl.Temperature(); math.Abs(got-288.15) > 1e-9 {
		t.Errorf("expected 288.15 K, got %f", got)
	}
	if got := fl.Pressure(); math.Abs(got-101325) > 1e-6 {
		t.Errorf("expected 101325 Pa, got %f", got)
	}
	if got := fl.Density(); math.Abs(got-1.225) > 0.001 {
		t.Errorf("expected ~1.225 kg/m3, got %f", got)
	}
	if got := fl.SpeedOfSound(); math.Abs(got-340.29) > 0.1 {
		t.Errorf("expected ~340.29 m/s, got %f", got)
	}
}

func TestTropopauseContinuity(t *testing.T) {
	below, _ := New(1.0, TropopauseAltitude-0.01)
	above, _ := New(1.0, TropopauseAltitude+0.01)

	if math.Abs(below.Temperature()-above.Temperature()) > 0.001 {
		t.Errorf("temperature discontinuous at tropopause: %f vs %f",
			below.Temperature(), above.Temperature())
	}
	if math.Abs(below.Pressure()-above.Pressure()) > 1.0 {
		t.Errorf("pressure discontinuous at tropopause: %f vs %f",
			below.Pressure(), above.Pressure())
	}
}

func TestStratosphereIsothermal(t *testing.T) {
	lo, _ := New(2.0, 12000)
	hi, _ := New(2.0, 18000)

	if lo.Temperature() != hi.Temperature() {
		t.Errorf("stratosphere should be isothermal: %f vs %f",
			lo.Temperature(), hi.Temperature())
	}
	if hi.Pressure() >= lo.Pressure() {
		t.Error("pressure should keep decreasing above the tropopause")
	}
}

func TestAltitude11km(t *testing.T) {
	fl, _ := New(0.85, 11000)
	if got := fl.Temperature(); math.Abs(got-216.65) > 0.01 {
		t.Errorf("expected 216.65 K at 11 km, got %f", got)
	}
	// ICAO tabulated pressure at the tropopause.
	if got := fl.Pressure(); math.Abs(got-22632)/22632 > 0.002 {
		t.Errorf("expected ~22632 Pa at 11 km, got %f", got)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name     string
		mach     float64
		altitude float64
	}{
		{"zero mach", 0, 1000},
		{"negative mach", -0.5, 1000},
		{"negative altitude", 1.5, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.mach, tt.altitude)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, flutter.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDynamicPressure(t *testing.T) {
	fl, _ := New(2.0, 0)
	q := fl.DynamicPressure(100)
	expected := 0.5 * fl.Density() * 100 * 100
	if q != expected {
		t.Errorf("expected %f, got %f", expected, q)
	}
}
