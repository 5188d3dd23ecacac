package features

import (
	"github.com/activecm/wfpreprocess/pkg/stats"
	"github.com/activecm/wfpreprocess/pkg/trace"
)

const (
	// maxIntervals bounds the KNN interval list and the transmission positions
	maxIntervals = 300
	// maxIntervalGap is the largest gap tracked by the interval histograms
	maxIntervalGap = 300
)

// directionMatcher selects the packets of one direction
type directionMatcher func(trace.Packet) bool

func outgoing(p trace.Packet) bool { return p.Outgoing() }
func incoming(p trace.Packet) bool { return !p.Outgoing() }

// knnIntervals lists the index gaps between consecutive packets of one
// direction, the first measured from index 0, capped at 300 entries
func knnIntervals(t trace.Trace, match directionMatcher) Vector {
	block := make(Vector, 0, maxIntervals)
	prev := 0
	for i, p := range t {
		if !match(p) {
			continue
		}
		block = append(block, Int(i-prev))
		prev = i
		if len(block) == maxIntervals {
			break
		}
	}
	return padded(block, maxIntervals, Unknown)
}

// IntervalKNN returns the first 300 outgoing index gaps then the first 300 incoming index gaps
func IntervalKNN(t trace.Trace) Vector {
	return append(knnIntervals(t, outgoing), knnIntervals(t, incoming)...)
}

// intervalHistogram counts the number of opposite-direction packets between
// consecutive packets of one direction. Gaps past 300 land in the last bucket.
func intervalHistogram(t trace.Trace, match directionMatcher) []int {
	freq := make([]int, maxIntervalGap+1)
	prev := -1
	for i, p := range t {
		if !match(p) {
			continue
		}
		gap := i - prev - 1
		prev = i
		if gap > maxIntervalGap {
			gap = maxIntervalGap
		}
		freq[gap]++
	}
	return freq
}

// IntervalICICS returns the full interval histograms for outgoing then incoming packets
func IntervalICICS(t trace.Trace) Vector {
	return append(ints(intervalHistogram(t, outgoing)), ints(intervalHistogram(t, incoming))...)
}

// wpesBins are the [lo, hi) histogram ranges folded together by IntervalWPES11
var wpesBins = [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 6}, {6, 9}, {9, 14}, {14, maxIntervalGap + 1}}

func foldHistogram(freq []int) Vector {
	block := make(Vector, 0, len(wpesBins))
	for _, bin := range wpesBins {
		sum := 0
		for _, c := range freq[bin[0]:bin[1]] {
			sum += c
		}
		block = append(block, Int(sum))
	}
	return block
}

// IntervalWPES11 returns the interval histograms folded to the bins 0, 1, 2,
// 3-5, 6-8, 9-13 and 14+ for outgoing then incoming packets
func IntervalWPES11(t trace.Trace) Vector {
	return append(foldHistogram(intervalHistogram(t, outgoing)), foldHistogram(intervalHistogram(t, incoming))...)
}

// TransPosition returns the indices of the first 300 outgoing packets
// followed by the std and mean of every outgoing index
func TransPosition(t trace.Trace) Vector {
	block := make(Vector, 0, maxIntervals+2)
	var positions []float64
	for i, p := range t {
		if !p.Outgoing() {
			continue
		}
		if len(positions) < maxIntervals {
			block = append(block, Int(i))
		}
		positions = append(positions, float64(i))
	}
	block = padded(block, maxIntervals, Unknown)

	spread, ok := stats.Spread(positions)
	if !ok {
		return append(block, Unknown, Unknown)
	}
	return append(block, Float(spread[1]), Float(spread[0]))
}

// NGram counts the direction patterns of every length from 2 through order.
// For each length n the 2^n patterns are reported in binary order with
// outgoing packets as 1 bits.
func NGram(t trace.Trace, order int) Vector {
	var block Vector
	for n := 2; n <= order; n++ {
		counts := make([]int, 1<<uint(n))
		for i := 0; i+n <= len(t); i++ {
			pattern := 0
			for _, p := range t[i : i+n] {
				pattern <<= 1
				if p.Outgoing() {
					pattern |= 1
				}
			}
			counts[pattern]++
		}
		block = append(block, ints(counts)...)
	}
	return block
}

// nGramLen is the length of the NGram block for the given order
func nGramLen(order int) int {
	if order < 2 {
		return 0
	}
	return 1<<uint(order+1) - 4
}
