package features

import "github.com/activecm/wfpreprocess/pkg/trace"

// Attack feature sets are fixed concatenations of the extractor blocks.

// DirectionSize returns the packet counts followed by the number of distinct sizes
func DirectionSize(t trace.Trace) Vector {
	return append(PacketNumber(t), UniquePacketLength(t)...)
}

// DirectionTiming returns the packet counts followed by the timing block
func DirectionTiming(t trace.Trace) Vector {
	return append(PacketNumber(t), Timing(t)...)
}

// DirectionTimingSize returns the packet counts, the number of distinct sizes and the timing block
func DirectionTimingSize(t trace.Trace) Vector {
	return append(DirectionSize(t), Timing(t)...)
}

// TimingOnly returns the direction agnostic timing profile
func TimingOnly(t trace.Trace) Vector {
	return GlobalTiming(t)
}

// KNN returns the head window, burst, packet distribution and interval blocks
func KNN(t trace.Trace) Vector {
	block := make(Vector, 0, knnLen)
	block = append(block, First20(t)...)
	block = append(block, Burst(t)...)
	block = append(block, PacketDistribution(t)...)
	return append(block, IntervalKNN(t)...)
}

const knnLen = headLength + 11 + distributionWindows + 2*maxIntervals
