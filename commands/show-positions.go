package commands

import (
	"os"

	"github.com/activecm/wfpreprocess/parser/files"

	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:      "show-positions",
		Usage:     "Print the block offsets recorded by a feature extraction run",
		ArgsUsage: "<FeaturePositions.json>",
		Action:    showPositions,
	}

	bootstrapCommands(command)
}

func showPositions(c *cli.Context) error {
	path := c.Args().Get(0)
	if path == "" {
		return cli.NewExitError("Specify a positions file", -1)
	}

	positions, err := files.ReadPositionsFile(path)
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	showPositionsTable(os.Stdout, positions)
	return nil
}
