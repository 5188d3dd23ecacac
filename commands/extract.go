package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/activecm/wfpreprocess/parser/files"
	"github.com/activecm/wfpreprocess/pkg/batch"
	"github.com/activecm/wfpreprocess/resources"
	"github.com/activecm/wfpreprocess/util"

	"github.com/urfave/cli"
)

func init() {
	extractCommand := cli.Command{
		Name:  "extract",
		Usage: "Extract feature vectors from trace files",
		UsageText: "wfpreprocess extract [command options]\n\n" +
			"Every trace file under --traces whose name looks like 3-14.cell is turned\n" +
			"into a feature file in --output. The block offsets are written to\n" +
			"FeaturePositions.json next to the feature files.",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "traces, t",
				Usage: "Read traces from `DIRECTORY`",
			},
			cli.StringFlag{
				Name:  "output, o",
				Usage: "Write feature files to `DIRECTORY`, defaults to the traces directory",
			},
			cli.StringFlag{
				Name:  "extension, e",
				Usage: "Use `EXT` as the feature file extension",
			},
			threadFlag,
			cli.BoolFlag{
				Name:  "normalize",
				Usage: "Normalize traces into unit cells before extraction",
			},
			configFlag,
		},
		Action: doExtract,
	}

	bootstrapCommands(extractCommand)
}

// extractOverrides holds the command line values that take precedence over the config file
type extractOverrides struct {
	extension string
	threads   int
	normalize bool
}

// apply writes the overrides into the static config and rebuilds the running config
func (o extractOverrides) apply(res *resources.Resources) error {
	if o.extension != "" {
		res.Config.S.Extract.FeatureExtension = o.extension
	}
	if o.threads > 0 {
		res.Config.S.Extract.Threads = o.threads
	}
	if o.normalize {
		res.Config.S.Extract.NormalizeTraffic = true
	}
	return res.Config.Refresh()
}

// outputDirectory picks the output location for a traces path
func outputDirectory(traces, output string) string {
	if output != "" {
		return output
	}
	if util.IsDir(traces) {
		return traces
	}
	return filepath.Dir(traces)
}

// doExtract runs the batch driver over the discovered trace files
func doExtract(c *cli.Context) error {
	traces := c.String("traces")
	if traces == "" {
		return cli.NewExitError("Specify the trace directory with -t", -1)
	}
	if exists, err := util.Exists(traces); err != nil || !exists {
		return cli.NewExitError(fmt.Sprintf("Trace path %s does not exist", traces), -1)
	}

	res := resources.InitResources(c.String("config"))
	overrides := extractOverrides{
		extension: c.String("extension"),
		threads:   c.Int("threads"),
		normalize: c.Bool("normalize"),
	}
	if err := overrides.apply(res); err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	extract := res.Config.S.Extract
	tracePaths, err := files.GatherTraceFiles([]string{traces}, extract.Splitter, extract.TraceExtension, res.Log)
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	if len(tracePaths) == 0 {
		return cli.NewExitError("No trace files were found in "+traces, -1)
	}

	output := outputDirectory(traces, c.String("output"))
	fmt.Printf("\t[+] Extracting features from %d traces into %s\n", len(tracePaths), output)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Println("\n\t[!] Interrupted, stopping feature extraction")
			cancel()
		case <-ctx.Done():
		}
	}()

	summary, err := batch.NewDriver(res, output).Run(ctx, tracePaths)
	if errors.Is(err, context.Canceled) {
		return cli.NewExitError("\t[!] Feature extraction cancelled", -1)
	}
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	fmt.Printf("\t[+] Wrote %d feature files, skipped %d traces in %s\n",
		summary.Written, summary.Skipped, summary.Duration)
	fmt.Printf("\t[+] Feature positions written to %s\n", summary.PositionsPath)
	return nil
}
