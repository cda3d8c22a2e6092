package uncertainty

import (
	"testing"

	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/panel"
)

func testPanel(t *testing.T, bc panel.BoundaryCondition) panel.Properties {
	t.Helper()
	mat := panel.Material{
		Name:          "aluminum-2024",
		YoungsModulus: 71.7e9,
		PoissonRatio:  0.33,
		Density:       2810,
	}
	p, err := panel.New(0.5, 0.4, 0.003, mat, bc, 0.01)
	if err != nil {
		t.Fatalf("panel: %v", err)
	}
	return p
}

func result(method flutter.Method, gap bool) *flutter.Result {
	r := flutter.NewResult(method)
	r.Found = true
	r.Speed = 300
	r.TransonicGap = gap
	return r
}

func TestDoubletNarrowerThanPiston(t *testing.T) {
	bands := DefaultBands()
	p := testPanel(t, panel.AllEdgesSupported)

	sub, _ := atmosphere.New(0.6, 0)
	sup, _ := atmosphere.New(2.0, 0)

	dlm := bands.Annotate(result(flutter.MethodDoubletLattice, false), p, sub)
	pst := bands.Annotate(result(flutter.MethodPiston, false), p, sup)

	if dlm.UncertaintyUp >= pst.UncertaintyUp || dlm.UncertaintyDown >= pst.UncertaintyDown {
		t.Errorf("doublet band should be narrower than piston: %+v vs %+v",
			[2]float64{dlm.UncertaintyUp, dlm.UncertaintyDown},
			[2]float64{pst.UncertaintyUp, pst.UncertaintyDown})
	}
}

func TestTransonicGapWidest(t *testing.T) {
	bands := DefaultBands()
	p := testPanel(t, panel.AllEdgesSupported)
	fl, _ := atmosphere.New(1.1, 0)

	gap := bands.Annotate(result(flutter.MethodPiston, true), p, fl)
	if gap.UncertaintyUp != bands.PistonGap.Up || gap.UncertaintyDown != bands.PistonGap.Down {
		t.Errorf("expected gap band, got +%f/-%f", gap.UncertaintyUp, gap.UncertaintyDown)
	}
	if len(gap.Notes) == 0 {
		t.Error("gap annotation should leave a note")
	}
}

func TestNearSonicDoubletWidened(t *testing.T) {
	bands := DefaultBands()
	p := testPanel(t, panel.AllEdgesSupported)

	far, _ := atmosphere.New(0.5, 0)
	near, _ := atmosphere.New(0.9, 0)

	a := bands.Annotate(result(flutter.MethodDoubletLattice, false), p, far)
	b := bands.Annotate(result(flutter.MethodDoubletLattice, false), p, near)
	if b.UncertaintyDown <= a.UncertaintyDown {
		t.Error("near-sonic doublet band should be wider")
	}
}

func TestBoundaryPenalty(t *testing.T) {
	bands := DefaultBands()
	fl, _ := atmosphere.New(2.0, 0)

	ss := bands.Annotate(result(flutter.MethodPiston, false), testPanel(t, panel.AllEdgesSupported), fl)
	cl := bands.Annotate(result(flutter.MethodPiston, false), testPanel(t, panel.AllEdgesClamped), fl)

	if cl.UncertaintyUp != ss.UncertaintyUp+bands.BoundaryPenalty {
		t.Errorf("expected +%f penalty, got %f vs %f", bands.BoundaryPenalty, cl.UncertaintyUp, ss.UncertaintyUp)
	}
}

func TestAnnotateDoesNotMutateInput(t *testing.T) {
	bands := DefaultBands()
	p := testPanel(t, panel.AllEdgesSupported)
	fl, _ := atmosphere.New(2.0, 0)

	raw := result(flutter.MethodPiston, false)
	_ = bands.Annotate(raw, p, fl)

	if raw.UncertaintyUp != 0 || len(raw.Notes) != 0 {
		t.Error("annotation must not mutate its input")
	}
}
