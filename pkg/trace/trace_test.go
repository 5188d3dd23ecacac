package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sizesOf(t Trace) []int {
	sizes := make([]int, len(t))
	for i, p := range t {
		sizes[i] = p.Size
	}
	return sizes
}

var mixedTrace = Trace{
	{0.0, 500}, {0.1, -500}, {0.2, -1000}, {0.3, 200}, {0.35, 300}, {0.4, -10},
}

func TestSplitAndCounts(t *testing.T) {
	out, in := mixedTrace.Split()
	assert.Equal(t, Trace{{0.0, 500}, {0.3, 200}, {0.35, 300}}, out)
	assert.Equal(t, Trace{{0.1, -500}, {0.2, -1000}, {0.4, -10}}, in)

	outCount, inCount := mixedTrace.Counts()
	assert.Equal(t, 3, outCount)
	assert.Equal(t, 3, inCount)

	assert.Equal(t, []int{500, -500, -1000, 200, 300, -10}, sizesOf(mixedTrace))
	assert.Equal(t, []float64{0.0, 0.1, 0.2, 0.3, 0.35, 0.4}, mixedTrace.Times())
}

func TestNormalize(t *testing.T) {
	raw := Trace{{10.5, -1000}, {10.0, 1499}, {10.5, 200}, {11.0, 500}}
	expected := Trace{
		{0.0, 1}, {0.0, 1},
		{0.5, -1}, {0.5, -1},
		// the 200 byte record rounds down to zero cells
		{1.0, 1},
	}
	assert.Equal(t, expected, Normalize(raw))
	// the input is not modified
	assert.Equal(t, 10.5, raw[0].Time)
}

func TestNormalizeStableSort(t *testing.T) {
	raw := Trace{{1.0, -500}, {0.5, 1000}, {1.0, 500}}
	assert.Equal(t, Trace{{0, 1}, {0, 1}, {0.5, -1}, {0.5, 1}}, Normalize(raw))
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Len(t, Normalize(nil), 0)
}

func TestNormalizeIdempotentOnCells(t *testing.T) {
	cells := Trace{{0, 1}, {0, -1}, {0.25, -1}, {1.5, 1}}
	assert.True(t, IsCells(cells))
	assert.Equal(t, cells, Normalize(cells))

	raw := Trace{{3.0, 1500}, {3.2, -700}, {4.0, 499}}
	once := Normalize(raw)
	assert.Equal(t, once, Normalize(once))
	assert.Equal(t, []int{1, 1, 1, -1}, sizesOf(once))
	assert.InDelta(t, 0.2, once[3].Time, 1e-9)
}
