package features

import (
	"math"
	"testing"

	"github.com/activecm/wfpreprocess/pkg/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// directions builds a trace with one packet per second from a string of '+' and '-'
func directions(pattern string) trace.Trace {
	t := make(trace.Trace, 0, len(pattern))
	for i, c := range pattern {
		size := 500
		if c == '-' {
			size = -500
		}
		t = append(t, trace.Packet{Time: float64(i), Size: size})
	}
	return t
}

func TestPacketNumber(t *testing.T) {
	tr := trace.Trace{{Time: 0.0, Size: 500}, {Time: 0.1, Size: -500}, {Time: 0.2, Size: 500}}
	assert.Equal(t, Vector{Int(3), Int(1), Int(2)}, PacketNumber(tr))
	assert.Equal(t, Vector{Int(0), Int(0), Int(0)}, PacketNumber(nil))
}

func TestUniquePacketLength(t *testing.T) {
	tr := trace.Trace{{Time: 0, Size: 500}, {Time: 1, Size: -500}, {Time: 2, Size: 200}}
	assert.Equal(t, Vector{Int(2)}, UniquePacketLength(tr))
}

func TestPacketDistribution(t *testing.T) {
	tr := directions(stringOf('+', 60) + stringOf('-', 10))
	block := PacketDistribution(tr)
	assert.Len(t, block, distributionWindows)
	assert.Equal(t, Int(30), block[0])
	assert.Equal(t, Int(30), block[1])
	assert.Equal(t, Int(0), block[2], "partial windows are dropped")
	assert.Equal(t, Int(0), block[99])
}

func TestFirst20(t *testing.T) {
	block := First20(directions("+-"))
	assert.Len(t, block, headLength)
	assert.Equal(t, Int(2000), block[0])
	assert.Equal(t, Int(1000), block[1])
	for _, v := range block[2:] {
		assert.True(t, v.isUnknown())
	}
}

func TestHeadAndTailCounts(t *testing.T) {
	tr := directions(stringOf('+', 30) + stringOf('-', 10))
	assert.Equal(t, Vector{Int(30), Int(0)}, First30PacketNumber(tr))
	assert.Equal(t, Vector{Int(20), Int(10)}, Last30PacketNumber(tr))
	assert.Equal(t, Vector{Int(1), Int(1)}, Last30PacketNumber(directions("+-")))
}

func TestPacketsPerSecond(t *testing.T) {
	tr := trace.Trace{
		{Time: -1, Size: 1},
		{Time: 0, Size: 1},
		{Time: 0.9, Size: -1},
		{Time: 2.5, Size: 1},
		{Time: 3, Size: 1},
	}
	assert.Equal(t, Vector{Int(2), Int(0), Int(1)}, PacketsPerSecond(tr, 3))
}

func TestPacketsPerSecondHugeTimestamps(t *testing.T) {
	testCases := []struct {
		time float64
		msg  string
	}{
		{1e300, "past the int range"},
		{math.Inf(1), "infinite"},
		{math.NaN(), "not a number"},
		{-1e300, "far before the start"},
	}
	for _, test := range testCases {
		tr := trace.Trace{{Time: 0, Size: 500}, {Time: test.time, Size: -500}}
		var block Vector
		require.NotPanics(t, func() { block = PacketsPerSecond(tr, 3) }, test.msg)
		assert.Equal(t, Vector{Int(1), Int(0), Int(0)}, block, test.msg)

		require.NotPanics(t, func() { block = KFingerprint(tr, 3) }, test.msg)
		assert.Len(t, block, kFingerprintLen(3), test.msg)
	}
}

func TestBurstSummary(t *testing.T) {
	// the trailing outgoing run is still open when the trace ends
	block := Burst(directions("++-+++--+"))
	assert.Equal(t, Vector{
		Int(3), Float(2.5), Int(2), Int(0), Int(0), Int(0),
		Int(2), Int(3), Unknown, Unknown, Unknown,
	}, block)

	empty := Burst(nil)
	assert.Len(t, empty, 11)
	assert.True(t, empty[0].isUnknown())
	assert.Equal(t, Int(0), empty[2])
}

func stringOf(c byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return string(b)
}
