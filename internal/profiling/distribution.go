package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
)

// NumericSummary holds the descriptive statistics reported for a numeric
// column. A nil field means the statistic is undefined for the input.
type NumericSummary struct {
	Min  *float64
	Max  *float64
	Mean *float64
	Std  *float64
}

// Summarize computes min, max, mean and sample standard deviation.
//
// With no values every statistic is nil rather than zero. With a single
// value the standard deviation is nil (the n-1 denominator is zero).
func Summarize(data []float64) NumericSummary {
	var summary NumericSummary
	if len(data) == 0 {
		return summary
	}

	min, err := stats.Min(data)
	if err != nil {
		return summary
	}
	max, err := stats.Max(data)
	if err != nil {
		return summary
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return summary
	}

	// Floating point summation can push the mean a few ulps outside
	// [min, max] for near-constant columns.
	mean = math.Min(math.Max(mean, min), max)

	summary.Min = finite(min)
	summary.Max = finite(max)
	summary.Mean = finite(mean)

	if len(data) < 2 {
		return summary
	}
	std, err := stats.StandardDeviationSample(data)
	if err != nil {
		return summary
	}
	summary.Std = finite(math.Abs(std))

	return summary
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
