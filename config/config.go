package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"
	"reflect"

	"github.com/creasty/defaults"
)

// Version and ExactVersion are filled at compile time with the git version of wfpreprocess
var (
	Version      = "v0.0.0+dev"
	ExactVersion = "v0.0.0+dev"
)

// userConfigPath is the config file looked up in the user's home directory
const userConfigPath = ".wfpreprocess/config.yaml"

type (
	//Config holds the configuration for the running system
	Config struct {
		R RunningCfg
		S StaticCfg
	}
)

// GetConfig retrieves a configuration in order of precedence: the given path,
// the user's config file, then the built in defaults
func GetConfig(cfgPath string) (*Config, error) {
	if cfgPath != "" {
		return LoadConfig(cfgPath)
	}

	// Get the user's homedir
	user, err := user.Current()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not get user info: %s\n", err.Error())
	} else {
		userPath := filepath.Join(user.HomeDir, userConfigPath)
		if _, err := os.Stat(userPath); err == nil {
			return LoadConfig(userPath)
		}
	}

	return LoadDefaultConfig()
}

// LoadConfig attempts to parse and validate a config file
func LoadConfig(cfgPath string) (*Config, error) {
	cfgFile, err := ioutil.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}
	return loadConfig(cfgFile)
}

// LoadDefaultConfig returns the configuration used when no config file exists
func LoadDefaultConfig() (*Config, error) {
	return loadConfig(nil)
}

func loadConfig(data []byte) (*Config, error) {
	config := &Config{}

	// Initialize static config to the default values
	if err := defaults.Set(&config.S); err != nil {
		return nil, err
	}

	// Deserialize the yaml file contents into the static config
	if err := parseStaticConfig(data, &config.S); err != nil {
		return nil, err
	}

	// Use the static config to initialize the running config
	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return nil, err
	}

	return config, nil
}

// expandConfig expands environment variables in config strings
func expandConfig(reflected reflect.Value) {
	for i := 0; i < reflected.NumField(); i++ {
		f := reflected.Field(i)
		// process sub configs
		if f.Kind() == reflect.Struct {
			expandConfig(f)
		} else if f.Kind() == reflect.String {
			f.SetString(os.ExpandEnv(f.String()))
		} else if f.Kind() == reflect.Slice && f.Type().Elem().Kind() == reflect.String {
			strs := f.Interface().([]string)
			for i, str := range strs {
				strs[i] = os.ExpandEnv(str)
			}
			f.Set(reflect.ValueOf(strs))
		}
	}
}

// Refresh rebuilds the running config after the static config was changed,
// for example by command line overrides
func (c *Config) Refresh() error {
	return initRunningConfig(&c.S, &c.R)
}
