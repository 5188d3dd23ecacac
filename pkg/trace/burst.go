package trace

type (
	// Burst is a maximal run of consecutive packets travelling in the same direction
	Burst Trace

	// burstState is the running state of one direction inside a BurstTracker
	burstState struct {
		count int     // packets in the current run, 0 when idle
		bytes int     // bytes in the current run
		start float64 // timestamp of the first packet in the run
	}

	// BurstRecord summarizes a completed run recorded by a BurstTracker
	BurstRecord struct {
		Packets  int
		Bytes    int
		Duration float64
	}

	// BurstTracker follows outgoing and incoming runs while a caller walks a
	// trace one packet at a time. A run is recorded only when an
	// opposite-direction packet ends it and it holds more than one packet.
	// Runs still open when the trace ends are never recorded.
	BurstTracker struct {
		out         burstState
		in          burstState
		OutRecorded []BurstRecord
		InRecorded  []BurstRecord
	}
)

// Outgoing reports the direction of the burst
func (b Burst) Outgoing() bool {
	return len(b) > 0 && b[0].Outgoing()
}

// Start returns the timestamp of the first packet in the burst
func (b Burst) Start() float64 {
	return b[0].Time
}

// End returns the timestamp of the last packet in the burst
func (b Burst) End() float64 {
	return b[len(b)-1].Time
}

// Gaps returns the delays between consecutive packets of the burst.
// Single packet bursts have no gaps.
func (b Burst) Gaps() []float64 {
	if len(b) < 2 {
		return nil
	}
	gaps := make([]float64, 0, len(b)-1)
	for i := 1; i < len(b); i++ {
		gaps = append(gaps, b[i].Time-b[i-1].Time)
	}
	return gaps
}

// Segment partitions the trace into bursts. A new burst starts whenever a
// packet's direction differs from the previous packet. Every packet belongs to
// exactly one burst, single packet bursts included.
func Segment(t Trace) []Burst {
	if len(t) == 0 {
		return nil
	}
	var bursts []Burst
	current := Burst{t[0]}
	for i := 1; i < len(t); i++ {
		if t[i].Outgoing() == t[i-1].Outgoing() {
			current = append(current, t[i])
			continue
		}
		bursts = append(bursts, current)
		current = Burst{t[i]}
	}
	return append(bursts, current)
}

// idle reports whether no run is being accumulated
func (s *burstState) idle() bool {
	return s.count == 0
}

// add appends a packet to the run, opening it if idle
func (s *burstState) add(ts float64, size int) {
	if s.idle() {
		s.start = ts
	}
	s.count++
	s.bytes += size
}

// flush ends the run at ts. The run is returned only if it held more than one packet.
func (s *burstState) flush(ts float64) (BurstRecord, bool) {
	if s.idle() {
		return BurstRecord{}, false
	}
	rec := BurstRecord{Packets: s.count, Bytes: s.bytes, Duration: ts - s.start}
	*s = burstState{}
	return rec, rec.Packets > 1
}

// Outgoing feeds an outgoing packet of the given (already padded) size:
// the incoming run is closed and the outgoing run grows.
func (b *BurstTracker) Outgoing(ts float64, size int) {
	b.out.add(ts, size)
	if rec, ok := b.in.flush(ts); ok {
		b.InRecorded = append(b.InRecorded, rec)
	}
}

// Incoming feeds an incoming packet: the outgoing run is closed and the incoming run grows.
func (b *BurstTracker) Incoming(ts float64, size int) {
	if rec, ok := b.out.flush(ts); ok {
		b.OutRecorded = append(b.OutRecorded, rec)
	}
	b.in.add(ts, size)
}
