package tracker

import (
	"github.com/jengzang/run-tracker-go/internal/models"
	"github.com/jengzang/run-tracker-go/internal/spatial"
)

// Default filter thresholds
const (
	DefaultMaxAccuracyMeters = 30.0 // worst positional error admitted into a route
	DefaultMinMovementMeters = 3.0  // movement below this is treated as jitter
)

// FixFilter decides whether a raw fix is admitted into the route. It is
// stateless: the caller supplies the last accepted coordinate, if any, so it
// can be exercised with synthetic fixes independent of any sensor.
type FixFilter struct {
	MaxAccuracyMeters float64
	MinMovementMeters float64
}

// NewFixFilter creates a filter with the given thresholds
func NewFixFilter(maxAccuracy, minMovement float64) *FixFilter {
	return &FixFilter{
		MaxAccuracyMeters: maxAccuracy,
		MinMovementMeters: minMovement,
	}
}

// Accept reports whether the fix should extend the route. Fixes with accuracy
// worse than the threshold are always rejected. When a previously accepted
// coordinate exists, movement below the jitter threshold is rejected as well;
// the first fix of a run only has to pass the accuracy gate.
func (f *FixFilter) Accept(fix models.Fix, last *models.Coordinate) bool {
	if fix.Accuracy > f.MaxAccuracyMeters {
		return false
	}
	if last != nil && spatial.Distance(*last, fix.Coordinate()) < f.MinMovementMeters {
		return false
	}
	return true
}
