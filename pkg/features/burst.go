package features

import (
	"github.com/activecm/wfpreprocess/pkg/stats"
	"github.com/activecm/wfpreprocess/pkg/trace"
	"github.com/activecm/wfpreprocess/util"
)

// leadingBursts is the number of individual burst lengths reported by Burst
const leadingBursts = 5

// burstThresholds are the lengths counted by Burst
var burstThresholds = []int{5, 10, 15}

// Burst summarizes the outgoing bursts recorded by a trace.BurstTracker:
// the longest burst, the mean length, the number of bursts, the number of
// bursts longer than 5, 10, and 15 packets, and the first 5 lengths
func Burst(t trace.Trace) Vector {
	var tracker trace.BurstTracker
	for _, p := range t {
		if p.Outgoing() {
			tracker.Outgoing(p.Time, util.Abs(p.Size))
		} else {
			tracker.Incoming(p.Time, util.Abs(p.Size))
		}
	}

	lengths := make([]float64, 0, len(tracker.OutRecorded))
	leading := make(Vector, 0, leadingBursts)
	for _, rec := range tracker.OutRecorded {
		lengths = append(lengths, float64(rec.Packets))
		if len(leading) < leadingBursts {
			leading = append(leading, Int(rec.Packets))
		}
	}

	block := make(Vector, 0, 3+len(burstThresholds)+leadingBursts)
	spread, ok := stats.Spread(lengths)
	if ok {
		block = append(block, Int(int(spread[2])), Float(spread[0]))
	} else {
		block = append(block, Unknown, Unknown)
	}
	block = append(block, Int(len(lengths)))

	for _, threshold := range burstThresholds {
		count := 0
		for _, rec := range tracker.OutRecorded {
			if rec.Packets > threshold {
				count++
			}
		}
		block = append(block, Int(count))
	}
	return append(block, padded(leading, leadingBursts, Unknown)...)
}
