package commands

import (
	"fmt"
	"os"

	"github.com/activecm/wfpreprocess/config"
	"github.com/activecm/wfpreprocess/pkg/features"

	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:  "show-blocks",
		Usage: "Print the feature blocks enabled by the configuration and their offsets",
		Flags: []cli.Flag{
			configFlag,
			cli.BoolFlag{
				Name:  "all, a",
				Usage: "List every known block, enabled or not",
			},
		},
		Action: showBlocks,
	}

	bootstrapCommands(command)
}

func showBlocks(c *cli.Context) error {
	conf, err := config.GetConfig(c.String("config"))
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	opts := conf.R.Features

	if c.Bool("all") {
		for _, name := range features.Names() {
			state := "off"
			if opts.Enabled[name] {
				state = "on"
			}
			fmt.Printf("%-26s %s\n", name, state)
		}
		return nil
	}

	positions := features.Layout(opts)
	if len(positions) == 0 {
		return cli.NewExitError("No feature blocks are enabled", -1)
	}
	showPositionsTable(os.Stdout, positions)
	fmt.Printf("\t[-] Vector length: %d\n", features.Len(opts))
	return nil
}
