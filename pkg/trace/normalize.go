package trace

import (
	"sort"

	"github.com/activecm/wfpreprocess/util"
)

// CellSize is the number of bytes represented by one normalized cell
const CellSize = 500

// Normalize rewrites a raw trace into unit cells. Records are stably sorted
// by time, the first timestamp becomes zero, every size is divided by
// CellSize (truncating, sign preserved) and each record is then expanded into
// that many single-cell records sharing its timestamp.
//
// A trace that is already made of cells (every size is +1 or -1) is only
// sorted and shifted, so Normalize(Normalize(t)) == Normalize(t).
func Normalize(t Trace) Trace {
	if len(t) == 0 {
		return Trace{}
	}

	sorted := make(Trace, len(t))
	copy(sorted, t)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	start := sorted[0].Time
	unit := CellSize
	if IsCells(sorted) {
		unit = 1
	}

	cells := make(Trace, 0, len(sorted))
	for _, p := range sorted {
		numCells := util.Abs(p.Size) / unit
		oneCell := util.Sign(p.Size)
		for i := 0; i < numCells; i++ {
			cells = append(cells, Packet{Time: p.Time - start, Size: oneCell})
		}
	}
	return cells
}

// IsCells reports whether every record of the trace is a single cell
func IsCells(t Trace) bool {
	if len(t) == 0 {
		return false
	}
	for _, p := range t {
		if p.Size != 1 && p.Size != -1 {
			return false
		}
	}
	return true
}
