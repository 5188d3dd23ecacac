package resources

import (
	"fmt"
	"os"

	"github.com/activecm/wfpreprocess/config"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type (
	// Resources provides a data structure for passing system Resources
	Resources struct {
		Config  *config.Config
		Log     *log.Logger
		Metrics *Metrics
		RunID   uuid.UUID
	}
)

// InitResources grabs the configuration file and intitializes the configuration data
// returning a *Resources object which has all of the necessary configuration information
func InitResources(userConfig string) *Resources {
	conf, err := config.GetConfig(userConfig)
	if err != nil {
		fmt.Fprintf(os.Stdout, "Failed to config: %s\n", err.Error())
		os.Exit(-1)
	}

	res, err := NewResources(conf)
	if err != nil {
		fmt.Fprintf(os.Stdout, "Failed to set up logging: %s\n", err.Error())
		os.Exit(-1)
	}
	return res
}

// NewResources bundles up the system resources for an already loaded config
func NewResources(conf *config.Config) (*Resources, error) {
	// Fire up the logging system
	log := initLogger(&conf.S.Log)

	if conf.S.Log.LogToFile && conf.S.Log.LogPath != "" {
		if err := addFileLogger(log, conf.S.Log.LogPath); err != nil {
			return nil, err
		}
	}

	return &Resources{
		Config:  conf,
		Log:     log,
		Metrics: NewMetrics(),
		RunID:   uuid.New(),
	}, nil
}
