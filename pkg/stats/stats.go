// Package stats computes the fixed shape descriptive statistics used by the
// feature extractors. None of the helpers fail on small inputs: an empty input
// is reported through the ok return so the caller can substitute its own
// default, and moments that need more samples than are available report 0.
package stats

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// SummaryLen is the number of values produced by Summary
const SummaryLen = 17

// ProfileLen is the number of values produced by Profile, Spread, and Quartiles
const ProfileLen = 4

// deciles are the percentiles reported by Summary
var deciles = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90}

// Summary returns mean, median, std, variance, kurtosis, skew, max, min and
// the 10th through 90th percentiles, in that order
func Summary(xs []float64) ([]float64, bool) {
	if len(xs) == 0 {
		return nil, false
	}
	mean, _ := stats.Mean(xs)
	median, _ := stats.Median(xs)
	std, _ := stats.StandardDeviationPopulation(xs)
	variance, _ := stats.PopulationVariance(xs)
	max, _ := stats.Max(xs)
	min, _ := stats.Min(xs)

	out := make([]float64, 0, SummaryLen)
	out = append(out, mean, median, std, variance, Kurtosis(xs), Skew(xs), max, min)
	return append(out, Percentiles(xs, deciles...)...), true
}

// Profile returns max, mean, std, and the 75th percentile
func Profile(xs []float64) ([]float64, bool) {
	if len(xs) == 0 {
		return nil, false
	}
	max, _ := stats.Max(xs)
	mean, _ := stats.Mean(xs)
	std, _ := stats.StandardDeviationPopulation(xs)
	return []float64{max, mean, std, Percentiles(xs, 75)[0]}, true
}

// Spread returns mean, std, max, and min. A single sample has a std of 0.
func Spread(xs []float64) ([]float64, bool) {
	if len(xs) == 0 {
		return nil, false
	}
	mean, _ := stats.Mean(xs)
	std := 0.0
	if len(xs) > 1 {
		std, _ = stats.StandardDeviationPopulation(xs)
	}
	max, _ := stats.Max(xs)
	min, _ := stats.Min(xs)
	return []float64{mean, std, max, min}, true
}

// Quartiles returns the 25th, 50th, 75th, and 100th percentiles
func Quartiles(xs []float64) ([]float64, bool) {
	if len(xs) == 0 {
		return nil, false
	}
	return Percentiles(xs, 25, 50, 75, 100), true
}

// Median returns the median of xs, or 0 for an empty input
func Median(xs []float64) float64 {
	median, err := stats.Median(xs)
	if err != nil {
		return 0
	}
	return median
}

// Variance returns the population variance of xs, or 0 for an empty input
func Variance(xs []float64) float64 {
	variance, err := stats.PopulationVariance(xs)
	if err != nil {
		return 0
	}
	return variance
}

// Percentiles returns the requested percentiles of xs. Values between two
// ranks are linearly interpolated with rank = p/100 * (n-1). An empty input
// yields zeros.
func Percentiles(xs []float64, ps ...float64) []float64 {
	out := make([]float64, len(ps))
	if len(xs) == 0 {
		return out
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	last := float64(len(sorted) - 1)
	for i, p := range ps {
		rank := p / 100 * last
		lo := math.Floor(rank)
		hi := math.Ceil(rank)
		lower := sorted[int(lo)]
		upper := sorted[int(hi)]
		out[i] = lower + (upper-lower)*(rank-lo)
	}
	return out
}

// centralMoments returns the mean and the 2nd, 3rd, and 4th central moments
func centralMoments(xs []float64) (mean, m2, m3, m4 float64) {
	mean, _ = stats.Mean(xs)
	n := float64(len(xs))
	for _, x := range xs {
		d := x - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	return mean, m2 / n, m3 / n, m4 / n
}

// degenerate reports whether the variance is indistinguishable from zero
// relative to the mean, in which case higher moments are undefined
func degenerate(mean, m2 float64) bool {
	resolution := 1e-15 * mean
	return m2 <= resolution*resolution
}

// Kurtosis returns the biased Fisher (excess) kurtosis of xs. Fewer than 4
// samples or an undefined result yield 0.
func Kurtosis(xs []float64) float64 {
	if len(xs) < 4 {
		return 0
	}
	mean, m2, _, m4 := centralMoments(xs)
	if degenerate(mean, m2) {
		return 0
	}
	return zeroNaN(m4/(m2*m2) - 3)
}

// Skew returns the biased sample skewness of xs. Fewer than 3 samples or an
// undefined result yield 0.
func Skew(xs []float64) float64 {
	if len(xs) < 3 {
		return 0
	}
	mean, m2, m3, _ := centralMoments(xs)
	if degenerate(mean, m2) {
		return 0
	}
	return zeroNaN(m3 / math.Pow(m2, 1.5))
}

func zeroNaN(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Diff returns the differences between consecutive elements of xs
func Diff(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	out := make([]float64, 0, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		out = append(out, xs[i]-xs[i-1])
	}
	return out
}
