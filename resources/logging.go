package resources

import (
	"io/ioutil"
	"os"
	"path"
	"time"

	"github.com/activecm/wfpreprocess/config"
	"github.com/activecm/wfpreprocess/util"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
)

// logLevels maps LogConfig.LogLevel onto logrus levels, most quiet first
var logLevels = []log.Level{
	log.ErrorLevel,
	log.WarnLevel,
	log.InfoLevel,
	log.DebugLevel,
}

// initLogger creates the batch logger at the configured level. Nothing is
// printed to the terminal so log lines do not break up the progress bar;
// addFileLogger is the only sink.
func initLogger(logConfig *config.LogStaticCfg) *log.Logger {
	logger := &log.Logger{
		Formatter: new(log.TextFormatter),
		Out:       ioutil.Discard,
		Hooks:     make(log.LevelHooks),
		Level:     log.WarnLevel,
	}
	if logConfig.LogLevel >= 0 && logConfig.LogLevel < len(logLevels) {
		logger.Level = logLevels[logConfig.LogLevel]
	}
	return logger
}

// addFileLogger writes each level of a run to its own file under
// <logPath>/<start time>/
func addFileLogger(logger *log.Logger, logPath string) error {
	runDir := path.Join(logPath, time.Now().Format(util.TimeFormat))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return err
	}

	logger.Hooks.Add(lfshook.NewHook(lfshook.PathMap{
		log.DebugLevel: path.Join(runDir, "debug.log"),
		log.InfoLevel:  path.Join(runDir, "info.log"),
		log.WarnLevel:  path.Join(runDir, "warn.log"),
		log.ErrorLevel: path.Join(runDir, "error.log"),
		log.FatalLevel: path.Join(runDir, "fatal.log"),
		log.PanicLevel: path.Join(runDir, "panic.log"),
	}, nil))
	return nil
}
