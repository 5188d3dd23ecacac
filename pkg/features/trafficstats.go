package features

import (
	"math"

	"github.com/activecm/wfpreprocess/pkg/stats"
	"github.com/activecm/wfpreprocess/pkg/trace"
	"github.com/activecm/wfpreprocess/util"
)

// histogramRange is the upper bound (exclusive) of the packet length histograms
const histogramRange = 2000

// trafficStatsLen returns the length of the traffic stats block for a bin width
func trafficStatsLen(binWidth int) int {
	return 6 + 6*14 + 2*stats.SummaryLen + 2*histogramBins(binWidth)
}

// histogramBins returns the number of buckets covering [0, 2000)
func histogramBins(binWidth int) int {
	return (histogramRange + binWidth - 1) / binWidth
}

// roundToNearest rounds n to the closest multiple of m, halves rounding up
func roundToNearest(n, m int) int {
	r := n % m
	if r+r >= m {
		return n + m - r
	}
	return n - r
}

// padSize rounds a packet size up to the next multiple of padding
func padSize(size, padding int) int {
	if size%padding != 0 {
		return (size/padding + 1) * padding
	}
	return size
}

type (
	// directionStats accumulates the packet level lists of one direction
	directionStats struct {
		packets int
		bytes   int
		sizes   []float64
		gaps    []float64
		bins    []int
	}

	// trafficStats is the state of one pass over a trace
	trafficStats struct {
		binWidth int
		global   directionStats
		in       directionStats
		out      directionStats
		bursts   trace.BurstTracker
	}
)

func newTrafficStats(binWidth int) *trafficStats {
	bins := histogramBins(binWidth)
	return &trafficStats{
		binWidth: binWidth,
		in:       directionStats{bins: make([]int, bins)},
		out:      directionStats{bins: make([]int, bins)},
	}
}

// add records a padded packet size for the direction
func (d *directionStats) add(size int) {
	d.packets++
	d.bytes += size
	d.sizes = append(d.sizes, float64(size))
}

// bin places a size in the histogram. Sizes past the last bucket land in it,
// including sizes so large that rounding them overflows.
func (d *directionStats) bin(size, binWidth int) {
	idx := roundToNearest(size, binWidth) / binWidth
	if idx < 0 || idx >= len(d.bins) {
		idx = len(d.bins) - 1
	}
	d.bins[idx]++
}

// TrafficStats returns the combined traffic statistics block: packet and byte
// totals, packet size and inter-packet time statistics per direction,
// outgoing burst statistics, and the outgoing and incoming packet length
// histograms.
func TrafficStats(t trace.Trace, padding int, binWidth int) Vector {
	ts := newTrafficStats(binWidth)

	prevTime := 0.0
	for _, p := range t {
		size := padSize(util.Abs(p.Size), padding)

		// inter-packet times are only taken once a non-zero timestamp has been seen,
		// and every direction measures against the previous packet of any direction
		var gap float64
		haveGap := prevTime != 0
		if haveGap {
			gap = math.Max(0, p.Time-prevTime) * 1000
		}

		if p.Size < 0 {
			ts.in.add(size)
			ts.in.bin(size, binWidth)
			if haveGap {
				ts.in.gaps = append(ts.in.gaps, gap)
			}
			ts.bursts.Incoming(p.Time, size)
		} else {
			ts.out.add(size)
			ts.out.bin(size, binWidth)
			if haveGap {
				ts.out.gaps = append(ts.out.gaps, gap)
			}
			ts.bursts.Outgoing(p.Time, size)
		}

		ts.global.add(size)
		if haveGap {
			ts.global.gaps = append(ts.global.gaps, gap)
		}
		prevTime = p.Time
	}
	return ts.vector()
}

func (ts *trafficStats) vector() Vector {
	block := make(Vector, 0, trafficStatsLen(ts.binWidth))

	block = append(block,
		Int(ts.global.packets), Int(ts.in.packets), Int(ts.out.packets),
		Int(ts.global.bytes), Int(ts.in.bytes), Int(ts.out.bytes),
	)

	// packet lengths
	block = append(block, minMaxProfile(ts.global.sizes, false)...)
	block = append(block, minMaxProfile(ts.in.sizes, false)...)
	block = append(block, minMaxProfile(ts.out.sizes, false)...)

	// inter-packet times, the global profile leads with the max
	block = append(block, minMaxProfile(ts.global.gaps, true)...)
	block = append(block, minMaxProfile(ts.in.gaps, false)...)
	block = append(block, minMaxProfile(ts.out.gaps, false)...)

	// outgoing bursts
	burstPackets := make([]float64, 0, len(ts.bursts.OutRecorded))
	burstBytes := make([]float64, 0, len(ts.bursts.OutRecorded))
	for _, rec := range ts.bursts.OutRecorded {
		burstPackets = append(burstPackets, float64(rec.Packets))
		burstBytes = append(burstBytes, float64(rec.Bytes))
	}
	block = append(block, burstCountStats(burstPackets)...)
	summary, ok := stats.Summary(burstBytes)
	block = append(block, orDefault(summary, ok, stats.SummaryLen, Int(0))...)

	block = append(block, ints(ts.out.bins)...)
	return append(block, ints(ts.in.bins)...)
}

// minMaxProfile returns min, max, mean, std, variance and the deciles of xs.
// maxFirst swaps the first two values.
func minMaxProfile(xs []float64, maxFirst bool) Vector {
	summary, ok := stats.Summary(xs)
	if !ok {
		return fill(14, Int(0))
	}
	mean, std, variance, max, min := summary[0], summary[2], summary[3], summary[6], summary[7]
	lead := []float64{min, max}
	if maxFirst {
		lead = []float64{max, min}
	}
	block := floats(append(lead, mean, std, variance))
	return append(block, floats(summary[8:])...)
}

// burstCountStats returns the number of bursts, mean, median, std, variance,
// max, kurtosis, skew and the deciles of the burst packet counts
func burstCountStats(packets []float64) Vector {
	summary, ok := stats.Summary(packets)
	if !ok {
		return fill(stats.SummaryLen, Int(0))
	}
	block := Vector{Int(len(packets))}
	block = append(block, floats([]float64{
		summary[0], summary[1], summary[2], summary[3], summary[6], summary[4], summary[5],
	})...)
	return append(block, floats(summary[8:])...)
}
