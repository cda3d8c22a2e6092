package solver

import (
	"math"

	"github.com/aerolab/flutterlab/internal/flutter"
)

// DefaultCrossCheckTolerance is the documented agreement tolerance for the
// independent NASTRAN-based validation path.
const DefaultCrossCheckTolerance = 0.15

// Agreement is the outcome of comparing the core result against an
// externally produced one. The comparison is one-way: the core feeds it
// and never reads anything back.
type Agreement struct {
	CoreSpeed     float64
	ExternalSpeed float64
	RelDiff       float64
	Tolerance     float64
	BothFound     bool
	Within        bool
}

// Compare checks two results for agreement on flutter speed at the given
// relative tolerance (<= 0 means DefaultCrossCheckTolerance). Results that
// disagree on whether flutter exists at all never agree.
func Compare(core, external *flutter.Result, tolerance float64) Agreement {
	if tolerance <= 0 {
		tolerance = DefaultCrossCheckTolerance
	}
	ag := Agreement{
		CoreSpeed:     core.Speed,
		ExternalSpeed: external.Speed,
		Tolerance:     tolerance,
	}
	if !core.Found || !external.Found {
		return ag
	}
	ag.BothFound = true
	ref := math.Max(math.Abs(core.Speed), math.Abs(external.Speed))
	if ref == 0 {
		ag.Within = true
		return ag
	}
	ag.RelDiff = math.Abs(core.Speed-external.Speed) / ref
	ag.Within = ag.RelDiff <= tolerance
	return ag
}
