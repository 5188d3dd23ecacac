package features

import (
	"math"
	"testing"

	"github.com/activecm/wfpreprocess/pkg/stats"
	"github.com/activecm/wfpreprocess/pkg/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundToNearest(t *testing.T) {
	testCases := []struct {
		n, m, out int
		msg       string
	}{
		{102, 5, 100, "below half rounds down"},
		{103, 5, 105, "above half rounds up"},
		{100, 5, 100, "exact multiples stay"},
		{0, 5, 0, "zero"},
		{5, 10, 10, "exact half rounds up"},
		{1499, 5, 1500, "large sizes"},
	}
	for _, test := range testCases {
		assert.Equal(t, test.out, roundToNearest(test.n, test.m), test.msg)
	}
}

func TestPadSize(t *testing.T) {
	assert.Equal(t, 110, padSize(103, 10))
	assert.Equal(t, 100, padSize(100, 10))
	assert.Equal(t, 0, padSize(0, 10))
	assert.Equal(t, 103, padSize(103, 1))
}

func TestTrafficStatsLen(t *testing.T) {
	assert.Equal(t, 924, trafficStatsLen(5))
	assert.Equal(t, 6+84+34+2*667, trafficStatsLen(3))
	assert.Len(t, TrafficStats(nil, 1, 7), trafficStatsLen(7))
}

func TestTrafficStatsEmpty(t *testing.T) {
	block := TrafficStats(nil, 1, 5)
	require.Len(t, block, trafficStatsLen(5))
	for _, v := range block {
		assert.Equal(t, Int(0), v)
	}
}

func TestTrafficStats(t *testing.T) {
	tr := trace.Trace{
		{Time: 0.0, Size: 500},
		{Time: 0.1, Size: -500},
		{Time: 0.2, Size: 500},
		{Time: 0.3, Size: 2500},
		{Time: 0.4, Size: -103},
	}
	block := TrafficStats(tr, 1, 5)
	require.Len(t, block, trafficStatsLen(5))

	assert.Equal(t, Vector{Int(5), Int(2), Int(3), Int(4103), Int(603), Int(3500)}, block[:6])

	// packet size profile of the outgoing direction
	outSizes := block[6+28 : 6+42]
	assert.Equal(t, 500.0, outSizes[0].number(), "min")
	assert.Equal(t, 2500.0, outSizes[1].number(), "max")

	// one outgoing burst of two packets, the first singleton is not recorded
	burstPackets := block[90 : 90+stats.SummaryLen]
	assert.Equal(t, Int(1), burstPackets[0])
	assert.Equal(t, 2.0, burstPackets[1].number(), "mean")
	assert.Equal(t, 2.0, burstPackets[5].number(), "max")
	burstBytes := block[90+stats.SummaryLen : 90+2*stats.SummaryLen]
	assert.Equal(t, 3000.0, burstBytes[0].number(), "mean bytes")

	bins := histogramBins(5)
	outBins := block[124 : 124+bins]
	inBins := block[124+bins:]
	assert.Equal(t, Int(2), outBins[100])
	assert.Equal(t, Int(1), outBins[bins-1], "oversized packets land in the last bucket")
	assert.Equal(t, Int(1), inBins[100])
	assert.Equal(t, Int(1), inBins[21], "103 rounds to 105")

	sum := func(vec Vector) int {
		total := 0
		for _, v := range vec {
			total += int(v.number())
		}
		return total
	}
	assert.Equal(t, 3, sum(outBins))
	assert.Equal(t, 2, sum(inBins))
}

func TestTrafficStatsInterPacketTimes(t *testing.T) {
	// no gap is taken while the previous timestamp is still zero
	tr := trace.Trace{
		{Time: 0, Size: 1},
		{Time: 1, Size: 1},
		{Time: 2, Size: 1},
		{Time: 4, Size: -1},
	}
	block := TrafficStats(tr, 1, 5)
	global := block[6+42 : 6+56]
	assert.Equal(t, 2000.0, global[0].number(), "max leads the global profile")
	assert.Equal(t, 1000.0, global[1].number(), "min")
	assert.Equal(t, 1500.0, global[2].number(), "mean")

	in := block[6+56 : 6+70]
	assert.Equal(t, 2000.0, in[0].number(), "gaps are measured against any direction")
	out := block[6+70 : 6+84]
	assert.Equal(t, 1000.0, out[0].number())
	assert.Equal(t, 1000.0, out[1].number())
}

func TestTrafficStatsExtremeSizes(t *testing.T) {
	testCases := []struct {
		size     int
		binWidth int
		msg      string
	}{
		{math.MinInt, 5, "size that cannot be negated"},
		{math.MaxInt, 4, "rounding up overflows"},
		{math.MaxInt, 5, "far past the last bucket"},
	}
	for _, test := range testCases {
		tr := trace.Trace{{Time: 0, Size: test.size}}
		var block Vector
		require.NotPanics(t, func() { block = TrafficStats(tr, 1, test.binWidth) }, test.msg)
		require.Len(t, block, trafficStatsLen(test.binWidth), test.msg)

		bins := histogramBins(test.binWidth)
		outBins := block[len(block)-2*bins : len(block)-bins]
		inBins := block[len(block)-bins:]
		last := outBins[bins-1]
		if test.size < 0 {
			last = inBins[bins-1]
		}
		assert.Equal(t, Int(1), last, test.msg)
	}
}
