package features

import (
	"errors"
	"fmt"

	"github.com/activecm/wfpreprocess/pkg/trace"
)

// Names of the extractor blocks and attack feature sets, as used in
// configuration files and in the position map
const (
	PacketNumberBlock           = "PACKET_NUMBER"
	PacketTimeBlock             = "PKT_TIME"
	UniquePacketLengthBlock     = "UNIQUE_PACKET_LENGTH"
	NGramBlock                  = "NGRAM"
	TransPositionBlock          = "TRANS_POSITION"
	IntervalKNNBlock            = "INTERVAL_KNN"
	IntervalICICSBlock          = "INTERVAL_ICICS"
	IntervalWPES11Block         = "INTERVAL_WPES11"
	PacketDistributionBlock     = "PKT_DISTRIBUTION"
	BurstBlock                  = "BURST"
	First20Block                = "FIRST20"
	First30PacketNumberBlock    = "FIRST30_PKT_NUM"
	Last30PacketNumberBlock     = "LAST30_PKT_NUM"
	PacketsPerSecondBlock       = "PKT_PER_SECOND"
	CumulBlock                  = "CUMUL"
	TrafficStatsBlock           = "TRAFFIC_STATS"
	KFingerprintAttack          = "KFINGERPRINT"
	KNNAttack                   = "KNN_ATTACK"
	CumulAttack                 = "CUMUL_ATTACK"
	DFAttack                    = "DF_ATTACK"
	TikTokTimingOnlyAttack      = "TIKTOK_TIMING_ONLY"
	TikTokDirectionTimingAttack = "TIKTOK_DIRECTION_TIMING"
	DFTokAttack                 = "DFTOK_ATTACK"
	RFAttack                    = "RF_ATTACK"
)

// MaxNGram is the largest supported n-gram order
const MaxNGram = 10

// ErrInvalidOption is returned by Options.Validate for a parameter out of range
var ErrInvalidOption = errors.New("invalid feature option")

type (
	// Params holds the numeric extraction parameters
	Params struct {
		BinWidth     int // traffic stats histogram bucket width
		Padded       int // packet size quantization unit
		HowLong      int // packets per second horizon in seconds
		FeatureCount int // CUMUL curve samples
		NGram        int // largest n-gram order
	}

	// Options is the immutable selection of blocks and parameters for a run.
	// Enabled maps block and attack names to their toggle; names that are
	// missing are disabled.
	Options struct {
		Enabled map[string]bool
		Params  Params
	}

	// extractor describes one entry of the registry
	extractor struct {
		name    string
		extract func(trace.Trace, Params) Vector
		length  func(Params) int
	}

	// Position is the cumulative vector length after a block
	Position struct {
		Name   string
		Offset int
	}

	// Positions lists block offsets in the order the blocks were appended
	Positions []Position
)

func fixed(n int) func(Params) int {
	return func(Params) int { return n }
}

func plain(f func(trace.Trace) Vector) func(trace.Trace, Params) Vector {
	return func(t trace.Trace, _ Params) Vector { return f(t) }
}

// registry is evaluated in this order for every trace
var registry = []extractor{
	{PacketNumberBlock, plain(PacketNumber), fixed(3)},
	{PacketTimeBlock, plain(Timing), fixed(24)},
	{UniquePacketLengthBlock, plain(UniquePacketLength), fixed(1)},
	{NGramBlock,
		func(t trace.Trace, p Params) Vector { return NGram(t, p.NGram) },
		func(p Params) int { return nGramLen(p.NGram) }},
	{TransPositionBlock, plain(TransPosition), fixed(maxIntervals + 2)},
	{IntervalKNNBlock, plain(IntervalKNN), fixed(2 * maxIntervals)},
	{IntervalICICSBlock, plain(IntervalICICS), fixed(2 * (maxIntervalGap + 1))},
	{IntervalWPES11Block, plain(IntervalWPES11), fixed(2 * len(wpesBins))},
	{PacketDistributionBlock, plain(PacketDistribution), fixed(distributionWindows)},
	{BurstBlock, plain(Burst), fixed(11)},
	{First20Block, plain(First20), fixed(headLength)},
	{First30PacketNumberBlock, plain(First30PacketNumber), fixed(2)},
	{Last30PacketNumberBlock, plain(Last30PacketNumber), fixed(2)},
	{PacketsPerSecondBlock,
		func(t trace.Trace, p Params) Vector { return PacketsPerSecond(t, p.HowLong) },
		func(p Params) int { return p.HowLong }},
	{CumulBlock,
		func(t trace.Trace, p Params) Vector { return Cumul(t, p.FeatureCount) },
		func(p Params) int { return 4 + p.FeatureCount }},
	{TrafficStatsBlock,
		func(t trace.Trace, p Params) Vector { return TrafficStats(t, p.Padded, p.BinWidth) },
		func(p Params) int { return trafficStatsLen(p.BinWidth) }},
	{KFingerprintAttack,
		func(t trace.Trace, p Params) Vector { return KFingerprint(t, p.HowLong) },
		func(p Params) int { return kFingerprintLen(p.HowLong) }},
	{KNNAttack, plain(KNN), fixed(knnLen)},
	{CumulAttack,
		func(t trace.Trace, p Params) Vector { return Cumul(t, p.FeatureCount) },
		func(p Params) int { return 4 + p.FeatureCount }},
	{DFAttack, plain(DirectionSize), fixed(4)},
	{TikTokTimingOnlyAttack, plain(TimingOnly), fixed(8)},
	{TikTokDirectionTimingAttack, plain(Timing), fixed(24)},
	{DFTokAttack, plain(DirectionTimingSize), fixed(28)},
	{RFAttack, plain(DirectionTiming), fixed(27)},
}

// Names returns every block and attack name in evaluation order
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	return names
}

// Known reports whether name is a registered block or attack
func Known(name string) bool {
	for _, e := range registry {
		if e.name == name {
			return true
		}
	}
	return false
}

// Validate checks the parameters and block names
func (o Options) Validate() error {
	p := o.Params
	positive := []struct {
		name  string
		value int
	}{
		{"BinWidth", p.BinWidth},
		{"Padded", p.Padded},
		{"HowLong", p.HowLong},
		{"FeatureCount", p.FeatureCount},
	}
	for _, param := range positive {
		if param.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidOption, param.name, param.value)
		}
	}
	if p.NGram < 1 || p.NGram > MaxNGram {
		return fmt.Errorf("%w: NGram must be between 1 and %d, got %d", ErrInvalidOption, MaxNGram, p.NGram)
	}
	for name := range o.Enabled {
		if !Known(name) {
			return fmt.Errorf("%w: unknown block %s", ErrInvalidOption, name)
		}
	}
	return nil
}

// Extract runs every enabled block over the trace and concatenates the
// results. When record is set the cumulative length after each block is
// returned under the block's name.
func Extract(t trace.Trace, opts Options, record bool) (Vector, Positions) {
	vec := make(Vector, 0, Len(opts))
	var positions Positions
	for _, e := range registry {
		if !opts.Enabled[e.name] {
			continue
		}
		vec = append(vec, e.extract(t, opts.Params)...)
		if record {
			positions = append(positions, Position{Name: e.name, Offset: len(vec)})
		}
	}
	return vec, positions
}

// Len returns the vector length produced for any trace under opts
func Len(opts Options) int {
	total := 0
	for _, e := range registry {
		if opts.Enabled[e.name] {
			total += e.length(opts.Params)
		}
	}
	return total
}

// Layout returns the positions the enabled blocks occupy. They match the positions
// recorded by Extract for any trace.
func Layout(opts Options) Positions {
	var positions Positions
	offset := 0
	for _, e := range registry {
		if !opts.Enabled[e.name] {
			continue
		}
		offset += e.length(opts.Params)
		positions = append(positions, Position{Name: e.name, Offset: offset})
	}
	return positions
}

// Start returns the offset a block begins at and whether it is present
func (ps Positions) Start(name string) (int, bool) {
	prev := 0
	for _, p := range ps {
		if p.Name == name {
			return prev, true
		}
		prev = p.Offset
	}
	return 0, false
}
