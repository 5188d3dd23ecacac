package commands

import (
	"github.com/urfave/cli"
)

var (
	allCommands []cli.Command

	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "Use a given `CONFIG_FILE` when running this command",
		Value: "",
	}

	threadFlag = cli.IntFlag{
		Name:  "threads",
		Usage: "Use `N` workers, defaults to the config value or the number of CPUs",
		Value: 0,
	}
)

// bootstrapCommands adds commands to the list exposed to the front end
func bootstrapCommands(commands ...cli.Command) {
	allCommands = append(allCommands, commands...)
}

// Commands provides all of the defined commands to the front end
func Commands() []cli.Command {
	return allCommands
}
