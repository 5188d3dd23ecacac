package features

import (
	"sort"

	"github.com/activecm/wfpreprocess/pkg/trace"
	"github.com/activecm/wfpreprocess/util"
)

// Cumul returns the packet and byte totals per direction followed by the
// cumulative signed size curve sampled at featureCount evenly spaced points
// of cumulative absolute size. The totals are ordered: positive packet count,
// negative packet count, negative bytes, positive bytes.
func Cumul(t trace.Trace, featureCount int) Vector {
	var posCount, negCount, posBytes, negBytes int
	total := make([]float64, 0, len(t))
	cum := make([]float64, 0, len(t))

	for _, p := range t {
		size := p.Size
		switch {
		case size > 0:
			posCount++
			posBytes += size
		case size < 0:
			negCount++
			negBytes -= size
		default:
			continue
		}

		if len(cum) == 0 {
			cum = append(cum, float64(size))
			total = append(total, float64(util.Abs(size)))
		} else {
			cum = append(cum, cum[len(cum)-1]+float64(size))
			total = append(total, total[len(total)-1]+float64(util.Abs(size)))
		}
	}

	block := make(Vector, 0, 4+featureCount)
	block = append(block, Int(posCount), Int(negCount), Int(negBytes), Int(posBytes))
	if len(total) == 0 {
		return append(block, fill(featureCount, Float(0))...)
	}

	last := total[len(total)-1]
	for _, x := range linspace(last/float64(featureCount+1), last, featureCount) {
		block = append(block, Float(interpolate(x, total, cum)))
	}
	return block
}

// linspace returns n evenly spaced values from start through stop inclusive
func linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// interpolate evaluates the piecewise linear function through (xp, fp) at x.
// xp must be increasing. Points outside the range take the nearest end value.
func interpolate(x float64, xp, fp []float64) float64 {
	j := sort.SearchFloat64s(xp, x)
	switch {
	case j == 0:
		return fp[0]
	case j == len(xp):
		return fp[len(fp)-1]
	case xp[j] == x:
		return fp[j]
	}
	lo, hi := j-1, j
	frac := (x - xp[lo]) / (xp[hi] - xp[lo])
	return fp[lo] + frac*(fp[hi]-fp[lo])
}
