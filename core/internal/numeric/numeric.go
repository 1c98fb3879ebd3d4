// Package numeric centralizes the gonum calls that would otherwise be
// scattered one-off imports across core/*: trajectory descriptive statistics
// for core/trace.Summarize, and the slice min/max/rounding helpers used
// wherever a caller needs them without re-deriving float semantics gonum
// already gets right.
package numeric

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MeanStdDev returns the unweighted mean and sample standard deviation of
// xs. Both are 0 for an empty slice.
func MeanStdDev(xs []float64) (mean, stddev float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	mean = stat.Mean(xs, nil)
	stddev = stat.StdDev(xs, nil)
	return mean, stddev
}

// MinMax returns the smallest and largest values in xs. Both are 0 for an
// empty slice.
func MinMax(xs []float64) (min, max float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	return floats.Min(xs), floats.Max(xs)
}

// Round1 rounds v to one decimal place, matching the original engine's
// round(x, 1) formatting of values at the presentation edge.
func Round1(v float64) float64 {
	return floats.Round(v, 1)
}
