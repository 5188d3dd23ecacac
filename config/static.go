package config

import (
	"fmt"
	"os"
	"reflect"

	"github.com/activecm/wfpreprocess/pkg/features"

	yaml "gopkg.in/yaml.v2"
)

type (
	//StaticCfg is the container for other static config sections
	StaticCfg struct {
		Log          LogStaticCfg        `yaml:"LogConfig"`
		Extract      ExtractStaticCfg    `yaml:"Extract"`
		Blocks       BlocksStaticCfg     `yaml:"Blocks"`
		Attacks      AttacksStaticCfg    `yaml:"Attacks"`
		Parameters   ParametersStaticCfg `yaml:"Parameters"`
		Metrics      MetricsStaticCfg    `yaml:"Metrics"`
		Version      string              `yaml:"-"`
		ExactVersion string              `yaml:"-"`
	}

	//LogStaticCfg contains the configuration for logging
	LogStaticCfg struct {
		LogLevel  int    `yaml:"LogLevel" default:"1"`
		LogPath   string `yaml:"LogPath"`
		LogToFile bool   `yaml:"LogToFile"`
	}

	//ExtractStaticCfg controls trace discovery and the artifacts written per trace
	ExtractStaticCfg struct {
		FeatureExtension    string `yaml:"FeatureExtension" default:".features"`
		TraceExtension      string `yaml:"TraceExtension" default:".cell"`
		Splitter            string `yaml:"Splitter" default:"-"`
		NormalizeTraffic    bool   `yaml:"NormalizeTraffic"`
		RepresentativeTrace string `yaml:"RepresentativeTrace" default:"0-0"`
		PositionsFile       string `yaml:"PositionsFile" default:"FeaturePositions.json"`
		Threads             int    `yaml:"Threads"`
	}

	//BlocksStaticCfg toggles the individual feature blocks
	BlocksStaticCfg struct {
		PacketNumber        bool `yaml:"PACKET_NUMBER"`
		PacketTime          bool `yaml:"PKT_TIME"`
		UniquePacketLength  bool `yaml:"UNIQUE_PACKET_LENGTH"`
		NGram               bool `yaml:"NGRAM"`
		TransPosition       bool `yaml:"TRANS_POSITION"`
		IntervalKNN         bool `yaml:"INTERVAL_KNN"`
		IntervalICICS       bool `yaml:"INTERVAL_ICICS"`
		IntervalWPES11      bool `yaml:"INTERVAL_WPES11"`
		PacketDistribution  bool `yaml:"PKT_DISTRIBUTION"`
		Burst               bool `yaml:"BURST"`
		First20             bool `yaml:"FIRST20"`
		First30PacketNumber bool `yaml:"FIRST30_PKT_NUM"`
		Last30PacketNumber  bool `yaml:"LAST30_PKT_NUM"`
		PacketsPerSecond    bool `yaml:"PKT_PER_SECOND"`
		Cumul               bool `yaml:"CUMUL"`
		TrafficStats        bool `yaml:"TRAFFIC_STATS"`
	}

	//AttacksStaticCfg toggles the attack feature sets
	AttacksStaticCfg struct {
		KFingerprint          bool `yaml:"KFINGERPRINT" default:"true"`
		KNN                   bool `yaml:"KNN_ATTACK" default:"true"`
		Cumul                 bool `yaml:"CUMUL_ATTACK" default:"true"`
		DF                    bool `yaml:"DF_ATTACK" default:"true"`
		TikTokTimingOnly      bool `yaml:"TIKTOK_TIMING_ONLY" default:"true"`
		TikTokDirectionTiming bool `yaml:"TIKTOK_DIRECTION_TIMING" default:"true"`
		DFTok                 bool `yaml:"DFTOK_ATTACK" default:"true"`
		RF                    bool `yaml:"RF_ATTACK" default:"true"`
	}

	//ParametersStaticCfg holds the numeric extraction parameters
	ParametersStaticCfg struct {
		BinWidth     int `yaml:"BinWidth" default:"5"`
		Padded       int `yaml:"Padded" default:"1"`
		HowLong      int `yaml:"HowLong" default:"100"`
		FeatureCount int `yaml:"FeatureCount" default:"100"`
		NGram        int `yaml:"NGram" default:"3"`
	}

	//MetricsStaticCfg controls where batch metrics are exported
	MetricsStaticCfg struct {
		TextfilePath string `yaml:"TextfilePath"`
	}
)

// parseStaticConfig deserializes yaml config data into an already defaulted static config
func parseStaticConfig(cfgFile []byte, config *StaticCfg) error {
	err := yaml.Unmarshal(cfgFile, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read config: %s\n", err.Error())
		return err
	}

	// expand env variables, config is a pointer
	// so we have to call elem on the reflect value
	expandConfig(reflect.ValueOf(config).Elem())

	// grab the version constants set by the build process
	config.Version = Version
	config.ExactVersion = ExactVersion
	return nil
}

// Enabled maps block names to their toggles
func (b BlocksStaticCfg) Enabled() map[string]bool {
	return map[string]bool{
		features.PacketNumberBlock:        b.PacketNumber,
		features.PacketTimeBlock:          b.PacketTime,
		features.UniquePacketLengthBlock:  b.UniquePacketLength,
		features.NGramBlock:               b.NGram,
		features.TransPositionBlock:       b.TransPosition,
		features.IntervalKNNBlock:         b.IntervalKNN,
		features.IntervalICICSBlock:       b.IntervalICICS,
		features.IntervalWPES11Block:      b.IntervalWPES11,
		features.PacketDistributionBlock:  b.PacketDistribution,
		features.BurstBlock:               b.Burst,
		features.First20Block:             b.First20,
		features.First30PacketNumberBlock: b.First30PacketNumber,
		features.Last30PacketNumberBlock:  b.Last30PacketNumber,
		features.PacketsPerSecondBlock:    b.PacketsPerSecond,
		features.CumulBlock:               b.Cumul,
		features.TrafficStatsBlock:        b.TrafficStats,
	}
}

// Enabled maps attack names to their toggles
func (a AttacksStaticCfg) Enabled() map[string]bool {
	return map[string]bool{
		features.KFingerprintAttack:          a.KFingerprint,
		features.KNNAttack:                   a.KNN,
		features.CumulAttack:                 a.Cumul,
		features.DFAttack:                    a.DF,
		features.TikTokTimingOnlyAttack:      a.TikTokTimingOnly,
		features.TikTokDirectionTimingAttack: a.TikTokDirectionTiming,
		features.DFTokAttack:                 a.DFTok,
		features.RFAttack:                    a.RF,
	}
}
