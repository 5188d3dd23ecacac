package commands

import (
	"fmt"

	"github.com/activecm/wfpreprocess/config"

	"github.com/blang/semver"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:   "version",
		Usage:  "Show wfpreprocess version",
		Action: showVersion,
	}

	bootstrapCommands(command)
}

func showVersion(c *cli.Context) error {
	version, err := semver.ParseTolerant(config.Version)
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	fmt.Printf("wfpreprocess version %s\n", version.String())
	if config.ExactVersion != config.Version {
		fmt.Printf("exact version %s\n", config.ExactVersion)
	}
	return nil
}
