package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryEmpty(t *testing.T) {
	out, ok := Summary(nil)
	assert.False(t, ok)
	assert.Nil(t, out)

	for _, f := range []func([]float64) ([]float64, bool){Profile, Spread, Quartiles} {
		out, ok := f([]float64{})
		assert.False(t, ok)
		assert.Nil(t, out)
	}
}

func TestSummaryShape(t *testing.T) {
	out, ok := Summary([]float64{1, 2, 3, 4, 5})
	assert.True(t, ok)
	assert.Len(t, out, SummaryLen)

	assert.InDelta(t, 3.0, out[0], 1e-12, "mean")
	assert.InDelta(t, 3.0, out[1], 1e-12, "median")
	assert.InDelta(t, 1.4142135623730951, out[2], 1e-12, "population std")
	assert.InDelta(t, 2.0, out[3], 1e-12, "population variance")
	assert.InDelta(t, -1.3, out[4], 1e-12, "excess kurtosis")
	assert.InDelta(t, 0.0, out[5], 1e-12, "skew")
	assert.Equal(t, 5.0, out[6], "max")
	assert.Equal(t, 1.0, out[7], "min")
	expectedDeciles := []float64{1.4, 1.8, 2.2, 2.6, 3.0, 3.4, 3.8, 4.2, 4.6}
	for i, p := range expectedDeciles {
		assert.InDelta(t, p, out[8+i], 1e-12)
	}
}

func TestSmallSampleMoments(t *testing.T) {
	testCases := []struct {
		xs   []float64
		kurt float64
		skew float64
		msg  string
	}{
		{[]float64{7}, 0, 0, "one sample"},
		{[]float64{1, 9}, 0, 0, "two samples have no skew"},
		{[]float64{1, 2, 9}, 0, 0.6654688661238353, "three samples have skew but no kurtosis"},
		{[]float64{4, 4, 4, 4, 4}, 0, 0, "constant samples are degenerate"},
	}

	for _, test := range testCases {
		assert.Equal(t, test.kurt, Kurtosis(test.xs), test.msg)
		assert.InDelta(t, test.skew, Skew(test.xs), 1e-12, test.msg)
		out, ok := Summary(test.xs)
		assert.True(t, ok, test.msg)
		assert.Equal(t, test.kurt, out[4], test.msg)
		assert.InDelta(t, test.skew, out[5], 1e-12, test.msg)
	}
}

func TestKurtosisSkew(t *testing.T) {
	xs := []float64{1, 2, 2, 3, 10}
	// scipy.stats.kurtosis / skew with the default bias=True
	assert.InDelta(t, 0.06803663, Kurtosis(xs), 1e-6)
	assert.InDelta(t, 1.36089273, Skew(xs), 1e-6)
}

func TestProfile(t *testing.T) {
	out, ok := Profile([]float64{0.1, 0.3, 0.2})
	assert.True(t, ok)
	assert.InDelta(t, 0.3, out[0], 1e-12)
	assert.InDelta(t, 0.2, out[1], 1e-12)
	assert.InDelta(t, 0.0816496580927726, out[2], 1e-12)
	assert.InDelta(t, 0.25, out[3], 1e-12)
}

func TestSpread(t *testing.T) {
	out, ok := Spread([]float64{2.5})
	assert.True(t, ok)
	assert.Equal(t, []float64{2.5, 0, 2.5, 2.5}, out)

	out, ok = Spread([]float64{1, 3})
	assert.True(t, ok)
	assert.Equal(t, []float64{2, 1, 3, 1}, out)
}

func TestQuartiles(t *testing.T) {
	out, ok := Quartiles([]float64{0, 0.1, 0.2, 0.3, 0.4})
	assert.True(t, ok)
	expected := []float64{0.1, 0.2, 0.3, 0.4}
	for i := range expected {
		assert.InDelta(t, expected[i], out[i], 1e-12)
	}
}

func TestPercentiles(t *testing.T) {
	assert.Equal(t, []float64{0, 0}, Percentiles(nil, 10, 90))
	assert.Equal(t, []float64{5, 5, 5}, Percentiles([]float64{5}, 0, 50, 100))
	// unsorted input is handled and not modified
	xs := []float64{4, 1, 3, 2}
	assert.Equal(t, []float64{1, 2.5, 4}, Percentiles(xs, 0, 50, 100))
	assert.Equal(t, []float64{4, 1, 3, 2}, xs)
}

func TestMedianVarianceDiff(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 0.0, Variance(nil))
	assert.Equal(t, 2.5, Median([]float64{1, 2, 3, 4}))
	assert.Equal(t, 1.25, Variance([]float64{1, 2, 3, 4}))
	assert.Nil(t, Diff([]float64{1}))
	assert.Equal(t, []float64{1, 2}, Diff([]float64{1, 2, 4}))
}
