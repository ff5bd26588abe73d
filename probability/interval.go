package probability

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ConfidenceBand returns estimate -/+ z*stdErr for a two-sided band at the
// given confidence level, e.g. 0.95. An undefined stdErr yields a NaN band.
func ConfidenceBand(estimate, stdErr, confidenceLevel float64) (lower, upper float64) {
	if math.IsNaN(stdErr) || confidenceLevel <= 0 || confidenceLevel >= 1 {
		return math.NaN(), math.NaN()
	}
	z := distuv.UnitNormal.Quantile(0.5 + confidenceLevel/2)
	return estimate - z*stdErr, estimate + z*stdErr
}
