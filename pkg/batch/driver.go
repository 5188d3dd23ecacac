// Package batch turns a collection of trace files into one feature file per
// trace using a bounded pool of workers.
package batch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/activecm/wfpreprocess/parser/files"
	"github.com/activecm/wfpreprocess/pkg/features"
	"github.com/activecm/wfpreprocess/resources"
	"github.com/activecm/wfpreprocess/util"

	"github.com/pbnjay/memory"
	log "github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb"
	"github.com/vbauerster/mpb/decor"
)

type (
	// Driver runs feature extraction over a batch of traces
	Driver struct {
		res       *resources.Resources
		outputDir string
		// Progress receives the progress bar, os.Stdout when nil
		Progress io.Writer
	}

	// Summary reports the outcome of a batch
	Summary struct {
		Total         int
		Processed     int64
		Written       int64
		Skipped       int64
		PositionsPath string
		Duration      time.Duration
	}
)

// NewDriver creates a driver writing artifacts to outputDir
func NewDriver(res *resources.Resources, outputDir string) *Driver {
	return &Driver{
		res:       res,
		outputDir: outputDir,
	}
}

// OutputPath returns the artifact path for a trace file
func (d *Driver) OutputPath(tracePath string) string {
	return filepath.Join(d.outputDir, files.TraceName(tracePath)+d.res.Config.S.Extract.FeatureExtension)
}

// isRepresentative reports whether the trace is the one that records block positions
func (d *Driver) isRepresentative(tracePath string) bool {
	extract := d.res.Config.S.Extract
	name := strings.TrimSuffix(files.TraceName(tracePath), extract.TraceExtension)
	return name == extract.RepresentativeTrace
}

// Run extracts every trace and writes the block positions once. A cancelled
// context stops the batch right away: in-flight traces are abandoned and
// context.Canceled is returned.
func (d *Driver) Run(ctx context.Context, tracePaths []string) (Summary, error) {
	start := time.Now()
	summary := Summary{Total: len(tracePaths)}
	opts := d.res.Config.R.Features
	threads := util.Max(1, d.res.Config.R.Threads)
	logger := d.res.Log.WithFields(log.Fields{"run_id": d.res.RunID.String()})

	if err := util.EnsureDir(d.outputDir); err != nil {
		return summary, err
	}

	logger.WithFields(log.Fields{
		"traces":       len(tracePaths),
		"threads":      threads,
		"output":       d.outputDir,
		"total_memory": memory.TotalMemory(),
	}).Info("Starting feature extraction")

	var positionsMu sync.Mutex
	var positions features.Positions
	metrics := d.res.Metrics

	// progress bar for troubleshooting
	progress := d.Progress
	if progress == nil {
		progress = os.Stdout
	}
	var p *mpb.Progress
	var bar *mpb.Bar
	// an empty bar never completes
	if len(tracePaths) > 0 {
		p = mpb.New(mpb.WithWidth(20), mpb.WithOutput(progress))
		bar = p.AddBar(int64(len(tracePaths)),
			mpb.PrependDecorators(
				decor.Name("\t[-] Feature Extraction:", decor.WC{W: 30, C: decor.DidentRight}),
				decor.CountersNoUnit(" %d / %d ", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	onProcessed := func(result unitResult) {
		atomic.AddInt64(&summary.Processed, 1)
		metrics.ExtractTime.Observe(result.elapsed.Seconds())

		if result.positions != nil {
			positionsMu.Lock()
			if positions == nil {
				positions = result.positions
			}
			positionsMu.Unlock()
		}

		if result.err != nil {
			atomic.AddInt64(&summary.Skipped, 1)
			metrics.Traces.WithLabelValues(resources.ResultSkipped).Inc()
			logger.WithFields(log.Fields{
				"file":  result.path,
				"error": result.err.Error(),
			}).Warn("Skipping trace")
		} else {
			atomic.AddInt64(&summary.Written, 1)
			metrics.Traces.WithLabelValues(resources.ResultWritten).Inc()
			logger.WithFields(log.Fields{
				"file":   result.path,
				"output": result.output,
			}).Debug("Wrote features")
		}
		if bar != nil {
			bar.IncrBy(1, result.elapsed)
		}
	}

	closed := make(chan struct{})
	extractorWorker := newExtractor(ctx, opts, d.res.Config.S.Extract.NormalizeTraffic,
		d.isRepresentative, d.OutputPath, onProcessed, func() { close(closed) })

	//kick off the threaded goroutines
	for i := 0; i < threads; i++ {
		extractorWorker.start()
	}

	for _, path := range tracePaths {
		if err := extractorWorker.collect(path); err != nil {
			logger.WithFields(log.Fields{
				"processed": atomic.LoadInt64(&summary.Processed),
			}).Warn("Feature extraction cancelled")
			// let idle workers exit without waiting on the ones still busy
			go extractorWorker.close()
			return summary.snapshot(), err
		}
	}
	// workers may still be busy when the batch is cancelled
	go extractorWorker.close()
	select {
	case <-closed:
	case <-ctx.Done():
	}
	if err := ctx.Err(); err != nil {
		logger.WithFields(log.Fields{
			"processed": atomic.LoadInt64(&summary.Processed),
		}).Warn("Feature extraction cancelled")
		return summary.snapshot(), err
	}
	if p != nil {
		p.Wait()
	}

	// every trace shares the same layout, so a missing or unreadable
	// representative trace does not prevent writing the positions
	if positions == nil {
		positions = features.Layout(opts)
	}
	summary.PositionsPath = filepath.Join(d.outputDir, d.res.Config.S.Extract.PositionsFile)
	if err := files.WritePositionsFile(summary.PositionsPath, positions); err != nil {
		return summary, err
	}

	summary.Duration = time.Since(start)
	metrics.BatchDuration.Set(summary.Duration.Seconds())
	if path := d.res.Config.S.Metrics.TextfilePath; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			logger.WithFields(log.Fields{
				"path":  path,
				"error": err.Error(),
			}).Error("Could not write metrics")
		}
	}

	logger.WithFields(log.Fields{
		"written":  summary.Written,
		"skipped":  summary.Skipped,
		"duration": util.FormatDuration(summary.Duration),
	}).Info("Finished feature extraction")
	return summary, nil
}

// snapshot copies the summary while workers may still be updating the counters
func (s *Summary) snapshot() Summary {
	return Summary{
		Total:         s.Total,
		Processed:     atomic.LoadInt64(&s.Processed),
		Written:       atomic.LoadInt64(&s.Written),
		Skipped:       atomic.LoadInt64(&s.Skipped),
		PositionsPath: s.PositionsPath,
		Duration:      s.Duration,
	}
}
