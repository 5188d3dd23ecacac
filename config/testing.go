package config

const testConfig = `
LogConfig:
    LogLevel: 3
    LogPath: null
    LogToFile: false
Extract:
    FeatureExtension: .features
    TraceExtension: .cell
    Splitter: "-"
    NormalizeTraffic: false
    RepresentativeTrace: 0-0
    Threads: 2
Blocks:
    PACKET_NUMBER: true
    TRAFFIC_STATS: true
Attacks:
    KFINGERPRINT: false
    KNN_ATTACK: false
    CUMUL_ATTACK: true
    DF_ATTACK: true
    TIKTOK_TIMING_ONLY: false
    TIKTOK_DIRECTION_TIMING: false
    DFTOK_ATTACK: false
    RF_ATTACK: false
Parameters:
    BinWidth: 5
    Padded: 1
    HowLong: 100
    FeatureCount: 100
    NGram: 3
`

// LoadTestingConfig loads the hard coded testing config
func LoadTestingConfig() (*Config, error) {
	return loadConfig([]byte(testConfig))
}
