package features

import (
	"github.com/activecm/wfpreprocess/pkg/stats"
	"github.com/activecm/wfpreprocess/pkg/trace"
)

// kfpGroups is the number of burst timing groups reported by KFingerprint
const kfpGroups = 8

// spreadOrUnknown returns mean, std, max and min of xs, or 4 Unknown values
func spreadOrUnknown(xs []float64) Vector {
	spread, ok := stats.Spread(xs)
	return orDefault(spread, ok, stats.ProfileLen, Unknown)
}

// firstTimes returns the start of every burst accepted by keep
func firstTimes(bursts []trace.Burst, keep func(trace.Burst) bool) []float64 {
	var starts []float64
	for _, b := range bursts {
		if keep(b) {
			starts = append(starts, b.Start())
		}
	}
	return starts
}

func anyBurst(trace.Burst) bool   { return true }
func inBurst(b trace.Burst) bool  { return b[0].Size < 0 }
func outBurst(b trace.Burst) bool { return b[0].Size > 0 }

// KFingerprint returns the timing block, the packets per second block and 8
// burst timing groups: intra-burst delay medians, inter-burst first-first
// delays for all, incoming and outgoing bursts, burst durations (reported
// twice), the differences between consecutive intra-burst medians, and the
// intra-burst delay variances
func KFingerprint(t trace.Trace, howLong int) Vector {
	block := make(Vector, 0, kFingerprintLen(howLong))
	block = append(block, Timing(t)...)
	block = append(block, PacketsPerSecond(t, howLong)...)

	bursts := trace.Segment(t)

	var medians, variances, durations []float64
	for _, b := range bursts {
		gaps := b.Gaps()
		if gaps == nil {
			continue
		}
		medians = append(medians, stats.Median(gaps))
		variances = append(variances, stats.Variance(gaps))
		durations = append(durations, b.End()-b.Start())
	}

	block = append(block, spreadOrUnknown(medians)...)
	block = append(block, spreadOrUnknown(stats.Diff(firstTimes(bursts, anyBurst)))...)
	block = append(block, spreadOrUnknown(stats.Diff(firstTimes(bursts, inBurst)))...)
	block = append(block, spreadOrUnknown(durations)...)
	block = append(block, spreadOrUnknown(stats.Diff(firstTimes(bursts, outBurst)))...)
	block = append(block, spreadOrUnknown(durations)...)
	block = append(block, spreadOrUnknown(stats.Diff(medians))...)
	return append(block, spreadOrUnknown(variances)...)
}

func kFingerprintLen(howLong int) int {
	return 6*stats.ProfileLen + howLong + kfpGroups*stats.ProfileLen
}
