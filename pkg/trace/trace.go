package trace

type (
	// Packet is a single record of a captured trace. Positive sizes are
	// outgoing (client to server), negative sizes are incoming.
	Packet struct {
		Time float64
		Size int
	}

	// Trace is the ordered list of packet records for one captured session
	Trace []Packet
)

// Outgoing reports whether the packet travelled from the client
func (p Packet) Outgoing() bool {
	return p.Size > 0
}

// Times returns the timestamps of the trace in order
func (t Trace) Times() []float64 {
	times := make([]float64, len(t))
	for i, p := range t {
		times[i] = p.Time
	}
	return times
}

// Split separates the trace into its outgoing and incoming packets,
// keeping the original order within each direction
func (t Trace) Split() (out Trace, in Trace) {
	for _, p := range t {
		if p.Outgoing() {
			out = append(out, p)
		} else {
			in = append(in, p)
		}
	}
	return out, in
}

// Counts returns the number of outgoing and incoming packets
func (t Trace) Counts() (out int, in int) {
	for _, p := range t {
		if p.Outgoing() {
			out++
		} else {
			in++
		}
	}
	return out, in
}
