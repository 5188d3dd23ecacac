package config

import (
	"testing"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const staticConfigParserTestConfig = `
LogConfig:
    LogLevel: 2
    LogPath: /var/lib/wfpreprocess/logs
    LogToFile: true
Extract:
    FeatureExtension: .feat
    TraceExtension: ""
    Splitter: _
    NormalizeTraffic: true
    RepresentativeTrace: 1_1
    PositionsFile: positions.json
    Threads: 4
Blocks:
    NGRAM: true
    CUMUL: true
Attacks:
    KFINGERPRINT: false
    RF_ATTACK: false
Parameters:
    BinWidth: 10
    NGram: 4
Metrics:
    TextfilePath: /tmp/wfpreprocess.prom
`

var testConfigFullExp = StaticCfg{
	Log: LogStaticCfg{
		LogLevel:  2,
		LogPath:   "/var/lib/wfpreprocess/logs",
		LogToFile: true,
	},
	Extract: ExtractStaticCfg{
		FeatureExtension:    ".feat",
		TraceExtension:      "",
		Splitter:            "_",
		NormalizeTraffic:    true,
		RepresentativeTrace: "1_1",
		PositionsFile:       "positions.json",
		Threads:             4,
	},
	Blocks: BlocksStaticCfg{
		NGram: true,
		Cumul: true,
	},
	Attacks: AttacksStaticCfg{
		KFingerprint:          false,
		KNN:                   true,
		Cumul:                 true,
		DF:                    true,
		TikTokTimingOnly:      true,
		TikTokDirectionTiming: true,
		DFTok:                 true,
		RF:                    false,
	},
	Parameters: ParametersStaticCfg{
		BinWidth:     10,
		Padded:       1,
		HowLong:      100,
		FeatureCount: 100,
		NGram:        4,
	},
	Metrics: MetricsStaticCfg{
		TextfilePath: "/tmp/wfpreprocess.prom",
	},
	Version:      Version,
	ExactVersion: ExactVersion,
}

func TestParseStaticConfig(t *testing.T) {
	var config StaticCfg
	require.NoError(t, defaults.Set(&config))
	require.NoError(t, parseStaticConfig([]byte(staticConfigParserTestConfig), &config))
	assert.Equal(t, testConfigFullExp, config)
}

func TestStaticConfigDefaults(t *testing.T) {
	var config StaticCfg
	require.NoError(t, defaults.Set(&config))
	require.NoError(t, parseStaticConfig(nil, &config))

	assert.Equal(t, 1, config.Log.LogLevel)
	assert.Equal(t, ".features", config.Extract.FeatureExtension)
	assert.Equal(t, ".cell", config.Extract.TraceExtension)
	assert.Equal(t, "-", config.Extract.Splitter)
	assert.Equal(t, "0-0", config.Extract.RepresentativeTrace)
	assert.Equal(t, "FeaturePositions.json", config.Extract.PositionsFile)
	assert.False(t, config.Extract.NormalizeTraffic)
	assert.Equal(t, BlocksStaticCfg{}, config.Blocks, "blocks are off by default")
	for name, on := range config.Attacks.Enabled() {
		assert.True(t, on, name)
	}
	assert.Equal(t, ParametersStaticCfg{BinWidth: 5, Padded: 1, HowLong: 100, FeatureCount: 100, NGram: 3}, config.Parameters)
}

func TestParseStaticConfigRejectsBadYAML(t *testing.T) {
	var config StaticCfg
	assert.Error(t, parseStaticConfig([]byte("Parameters: [1, 2"), &config))
	assert.Error(t, parseStaticConfig([]byte("Parameters:\n    BinWidth: five\n"), &config))
}
