package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aerolab/flutterlab/internal/aero"
	"github.com/aerolab/flutterlab/internal/panel"
)

func TestDefaultCalibration(t *testing.T) {
	cal := Default()

	if cal.LambdaCrit != aero.LambdaCritTheory {
		t.Errorf("expected theoretical lambda_crit default, got %f", cal.LambdaCrit)
	}
	if cal.PistonOrder != 1 {
		t.Errorf("expected first-order piston default, got %d", cal.PistonOrder)
	}
	if cal.Search.Points < 2 {
		t.Error("sweep needs at least 2 points")
	}
	if cal.Search.VMin <= 0 || cal.Search.VMax <= cal.Search.VMin {
		t.Error("default velocity range is degenerate")
	}
	if cal.Corrections.Transonic.CriticalMach != 0.95 {
		t.Errorf("expected dip center 0.95, got %f", cal.Corrections.Transonic.CriticalMach)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.yaml")

	cal := Default()
	cal.LambdaCrit = aero.LambdaCritEmpirical
	cal.Doublet.BoxesX = 12

	if err := Save(path, cal); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.LambdaCrit != aero.LambdaCritEmpirical {
		t.Errorf("lambda_crit lost in round trip: %f", loaded.LambdaCrit)
	}
	if loaded.Doublet.BoxesX != 12 {
		t.Errorf("doublet boxes lost in round trip: %d", loaded.Doublet.BoxesX)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.yaml")
	if err := os.WriteFile(path, []byte("lambda_crit: 24.9\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cal, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cal.LambdaCrit != 24.9 {
		t.Errorf("override lost: %f", cal.LambdaCrit)
	}
	if cal.Search.MaxIterations != Default().Search.MaxIterations {
		t.Error("unnamed fields should keep their defaults")
	}
}

func TestBoundaryFactors(t *testing.T) {
	factors, err := Default().BoundaryFactors()
	if err != nil {
		t.Fatalf("boundary factors: %v", err)
	}
	if factors[panel.AllEdgesSupported] != 1.0 {
		t.Error("simply-supported factor must be 1.0")
	}
	if factors[panel.AllEdgesClamped] != 1.82 {
		t.Errorf("expected clamped factor 1.82, got %f", factors[panel.AllEdgesClamped])
	}

	bad := Default()
	bad.BCFactors["clamped"] = -1
	if _, err := bad.BoundaryFactors(); err == nil {
		t.Error("expected error for non-positive factor")
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("aluminum-skin")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.Mach != 2.0 {
		t.Errorf("expected mach 2.0, got %f", p.Mach)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestMaterials(t *testing.T) {
	m, err := GetMaterial("aluminum-2024")
	if err != nil {
		t.Fatalf("get material: %v", err)
	}
	if m.YoungsModulus != 71.7e9 {
		t.Errorf("unexpected modulus %g", m.YoungsModulus)
	}

	if _, err := GetMaterial("unobtainium"); err == nil {
		t.Error("expected error for unknown material")
	}

	cfrp, _ := GetMaterial("cfrp-quasi-iso")
	if cfrp.Class != panel.Composite {
		t.Error("cfrp must be flagged composite")
	}

	names := MaterialNames()
	if len(names) != len(Materials) {
		t.Errorf("expected %d names, got %d", len(Materials), len(names))
	}
}
