package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/activecm/wfpreprocess/pkg/features"

	"github.com/blang/semver"
)

// ErrInvalidParameter is returned for configuration values that cannot be used
var ErrInvalidParameter = errors.New("invalid configuration parameter")

type (
	//RunningCfg holds configuration options that are parsed at run time
	RunningCfg struct {
		Features features.Options
		Threads  int
		Version  semver.Version
	}
)

// initRunningConfig uses data in the static config to initialize the passed in running config
func initRunningConfig(static *StaticCfg, running *RunningCfg) error {
	if static.Log.LogLevel < 0 || static.Log.LogLevel > 3 {
		return fmt.Errorf("%w: LogLevel must be between 0 and 3, got %d", ErrInvalidParameter, static.Log.LogLevel)
	}
	if static.Extract.Threads < 0 {
		return fmt.Errorf("%w: Threads must not be negative, got %d", ErrInvalidParameter, static.Extract.Threads)
	}
	if static.Extract.TraceExtension == static.Extract.FeatureExtension {
		return fmt.Errorf("%w: FeatureExtension must differ from TraceExtension", ErrInvalidParameter)
	}

	running.Features = NewOptions(static)
	if err := running.Features.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	running.Threads = static.Extract.Threads
	if running.Threads == 0 {
		running.Threads = runtime.NumCPU()
	}

	var err error
	running.Version, err = semver.ParseTolerant(static.Version)
	return err
}

// NewOptions builds the immutable feature options selected by the static config
func NewOptions(static *StaticCfg) features.Options {
	enabled := static.Blocks.Enabled()
	for name, on := range static.Attacks.Enabled() {
		enabled[name] = on
	}
	p := static.Parameters
	return features.Options{
		Enabled: enabled,
		Params: features.Params{
			BinWidth:     p.BinWidth,
			Padded:       p.Padded,
			HowLong:      p.HowLong,
			FeatureCount: p.FeatureCount,
			NGram:        p.NGram,
		},
	}
}
