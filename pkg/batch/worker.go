package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/activecm/wfpreprocess/parser/files"
	"github.com/activecm/wfpreprocess/pkg/features"
	"github.com/activecm/wfpreprocess/pkg/trace"
)

// ErrExtractPanic marks a trace whose extraction panicked
var ErrExtractPanic = errors.New("feature extraction failed")

type (
	// unitResult is what a worker reports for one trace file
	unitResult struct {
		path      string
		output    string
		positions features.Positions // set only for the representative trace
		elapsed   time.Duration
		err       error // non-nil when the trace was skipped
	}

	//extractor runs the full per-trace pipeline: read, normalize, extract, write
	extractor struct {
		ctx               context.Context
		opts              features.Options
		normalize         bool
		isRepresentative  func(string) bool   // whether a trace records block positions
		outputPath        func(string) string // artifact path for a trace file
		processedCallback func(unitResult)    // called on each processed trace
		closedCallback    func()              // called when .close() is called and no more calls to processedCallback will be made
		traceChannel      chan string         // holds unprocessed trace paths
		extractWg         sync.WaitGroup      // wait for extraction to finish
	}
)

// newExtractor creates a new worker pool for extracting trace features
func newExtractor(ctx context.Context, opts features.Options, normalize bool,
	isRepresentative func(string) bool, outputPath func(string) string,
	processedCallback func(unitResult), closedCallback func()) *extractor {
	return &extractor{
		ctx:               ctx,
		opts:              opts,
		normalize:         normalize,
		isRepresentative:  isRepresentative,
		outputPath:        outputPath,
		processedCallback: processedCallback,
		closedCallback:    closedCallback,
		traceChannel:      make(chan string),
	}
}

// collect hands a trace to the next free worker. It gives up when the batch is cancelled.
func (e *extractor) collect(path string) error {
	select {
	case e.traceChannel <- path:
		return nil
	case <-e.ctx.Done():
		return e.ctx.Err()
	}
}

// close waits for the workers to finish
func (e *extractor) close() {
	close(e.traceChannel)
	e.extractWg.Wait()
	e.closedCallback()
}

// start kicks off a new extraction thread
func (e *extractor) start() {
	e.extractWg.Add(1)
	go func() {
		defer e.extractWg.Done()
		for path := range e.traceChannel {
			result := e.process(path)
			// results past cancellation are dropped
			if e.ctx.Err() != nil {
				continue
			}
			e.processedCallback(result)
		}
	}()
}

// process runs one trace through the pipeline. Any failure skips the trace,
// a panic while extracting included.
func (e *extractor) process(path string) (result unitResult) {
	start := time.Now()
	result = unitResult{path: path}
	defer func() {
		if r := recover(); r != nil {
			result.positions = nil
			result.err = fmt.Errorf("%w: %v", ErrExtractPanic, r)
		}
		result.elapsed = time.Since(start)
	}()
	result.output = e.outputPath(path)

	t, err := files.ReadTrace(path)
	if err != nil {
		result.err = err
		return result
	}

	if e.normalize {
		t = trace.Normalize(t)
	}

	record := e.isRepresentative(path)
	vec, positions := features.Extract(t, e.opts, record)
	if record {
		result.positions = positions
	}

	if e.ctx.Err() == nil {
		result.err = writeVector(result.output, vec)
	}
	return result
}
