package features

import (
	"github.com/activecm/wfpreprocess/pkg/stats"
	"github.com/activecm/wfpreprocess/pkg/trace"
)

// interTimeStats profiles the gaps between consecutive timestamps
func interTimeStats(times []float64) Vector {
	profile, ok := stats.Profile(stats.Diff(times))
	return orDefault(profile, ok, stats.ProfileLen, Unknown)
}

// transTimeStats returns the quartiles of the timestamps themselves
func transTimeStats(times []float64) Vector {
	quartiles, ok := stats.Quartiles(times)
	return orDefault(quartiles, ok, stats.ProfileLen, Unknown)
}

// Timing returns the inter-packet time profile for all, outgoing, and
// incoming packets followed by the transmission time quartiles for the same
// three subsequences
func Timing(t trace.Trace) Vector {
	out, in := t.Split()
	all, outTimes, inTimes := t.Times(), out.Times(), in.Times()

	block := make(Vector, 0, 6*stats.ProfileLen)
	block = append(block, interTimeStats(all)...)
	block = append(block, interTimeStats(outTimes)...)
	block = append(block, interTimeStats(inTimes)...)
	block = append(block, transTimeStats(all)...)
	block = append(block, transTimeStats(outTimes)...)
	return append(block, transTimeStats(inTimes)...)
}

// GlobalTiming returns the inter-packet time profile and transmission time
// quartiles of the whole trace without splitting by direction
func GlobalTiming(t trace.Trace) Vector {
	times := t.Times()
	return append(interTimeStats(times), transTimeStats(times)...)
}
