package curves

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aerolab/flutterlab/internal/aero"
	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/damping"
	"github.com/aerolab/flutterlab/internal/modal"
	"github.com/aerolab/flutterlab/internal/panel"
)

func sampleSet(t *testing.T) *Set {
	t.Helper()
	mat := panel.Material{
		Name:          "aluminum-2024",
		YoungsModulus: 71.7e9,
		PoissonRatio:  0.33,
		Density:       2810,
	}
	p, err := panel.New(0.5, 0.4, 0.003, mat, panel.AllEdgesSupported, 0.01)
	if err != nil {
		t.Fatalf("panel: %v", err)
	}
	fl, _ := atmosphere.New(2.0, 10000)
	modes, err := modal.Frequencies(p, nil, 3)
	if err != nil {
		t.Fatalf("modal: %v", err)
	}

	set, err := Sample(damping.New(aero.NewPistonTheory()), p, fl, modes, 100, 1000, 10)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	return set
}

func TestSampleShape(t *testing.T) {
	set := sampleSet(t)

	if len(set.Velocities) != 10 {
		t.Fatalf("expected 10 velocities, got %d", len(set.Velocities))
	}
	if set.Velocities[0] != 100 || set.Velocities[9] != 1000 {
		t.Errorf("grid endpoints wrong: %f..%f", set.Velocities[0], set.Velocities[9])
	}
	if len(set.Curves) != 3 {
		t.Fatalf("expected 3 mode curves, got %d", len(set.Curves))
	}
	for _, c := range set.Curves {
		if len(c.Damping) != 10 || len(c.FrequencyHz) != 10 {
			t.Errorf("mode %v: ragged curve", c.Mode)
		}
	}
}

func TestSampleInvalidRange(t *testing.T) {
	if _, err := Sample(nil, panel.Properties{}, atmosphere.Flow{}, modal.State{}, 0, 100, 10); err == nil {
		t.Error("expected error for zero vmin")
	}
	if _, err := Sample(nil, panel.Properties{}, atmosphere.Flow{}, modal.State{}, 100, 50, 10); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestWriteCSV(t *testing.T) {
	set := sampleSet(t)

	var buf bytes.Buffer
	if err := set.WriteCSV(&buf); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected header + 10 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "velocity,g_1_1,f_1_1") {
		t.Errorf("unexpected header: %s", lines[0])
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	set := sampleSet(t)

	var buf bytes.Buffer
	if err := set.WriteJSON(&buf); err != nil {
		t.Fatalf("write json: %v", err)
	}

	var decoded Set
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Curves) != len(set.Curves) {
		t.Errorf("curves lost in round trip: %d vs %d", len(decoded.Curves), len(set.Curves))
	}
	if decoded.Curves[0].Damping[0] != set.Curves[0].Damping[0] {
		t.Error("damping values lost in round trip")
	}
}
