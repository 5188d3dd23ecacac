package features

import (
	"github.com/activecm/wfpreprocess/pkg/trace"
	"github.com/activecm/wfpreprocess/util"
)

// PacketNumber returns the total, incoming, and outgoing packet counts
func PacketNumber(t trace.Trace) Vector {
	out, in := t.Counts()
	return Vector{Int(len(t)), Int(in), Int(out)}
}

// UniquePacketLength returns the number of distinct packet sizes, ignoring direction
func UniquePacketLength(t trace.Trace) Vector {
	seen := make(map[int]struct{})
	for _, p := range t {
		seen[util.Abs(p.Size)] = struct{}{}
	}
	return Vector{Int(len(seen))}
}

const (
	distributionWindow  = 30
	distributionWindows = 100
)

// PacketDistribution counts the outgoing packets in each window of 30
// packets over the first 3000 packets. A trailing partial window is dropped
// and missing windows report 0.
func PacketDistribution(t trace.Trace) Vector {
	block := make(Vector, 0, distributionWindows)
	limit := util.Min(len(t), distributionWindow*distributionWindows)
	count := 0
	for i := 0; i < limit; i++ {
		if t[i].Outgoing() {
			count++
		}
		if i%distributionWindow == distributionWindow-1 {
			block = append(block, Int(count))
			count = 0
		}
	}
	return padded(block, distributionWindows, Int(0))
}

const (
	headLength = 20
	// headOffset shifts sizes so that the largest incoming cell is non-negative
	headOffset = 1500
	windowSize = 30
)

// First20 returns the offset sizes of the first 20 packets, Unknown past the end of the trace
func First20(t trace.Trace) Vector {
	block := make(Vector, 0, headLength)
	for i := 0; i < len(t) && i < headLength; i++ {
		block = append(block, Int(t[i].Size+headOffset))
	}
	return padded(block, headLength, Unknown)
}

// First30PacketNumber returns the outgoing and incoming counts among the first 30 packets
func First30PacketNumber(t trace.Trace) Vector {
	out, in := t[:util.Min(len(t), windowSize)].Counts()
	return Vector{Int(out), Int(in)}
}

// Last30PacketNumber returns the outgoing and incoming counts among the last 30 packets
func Last30PacketNumber(t trace.Trace) Vector {
	out, in := t[util.Max(0, len(t)-windowSize):].Counts()
	return Vector{Int(out), Int(in)}
}

// PacketsPerSecond counts packets in each whole second bucket [0, howLong)
func PacketsPerSecond(t trace.Trace, howLong int) Vector {
	counts := make([]int, howLong)
	limit := float64(howLong)
	for _, p := range t {
		// compare as floats, huge timestamps do not fit an int
		if !(p.Time >= 0 && p.Time < limit) {
			continue
		}
		counts[int(p.Time)]++
	}
	return ints(counts)
}
