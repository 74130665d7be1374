package driver

import (
	"context"
	"errors"
	"time"

	"zeron/internal/eval"
)

// RunOptions configure Run.
type RunOptions struct {
	Check   CheckOptions
	Runtime eval.Runtime
	// MaxDepth bounds nested calls; 0 uses the evaluator default.
	MaxDepth int
}

// RunResult is a check followed, when the check passed, by execution.
type RunResult struct {
	*CheckResult
	Ran        bool
	RuntimeErr *eval.RuntimeError
}

// Run checks path and executes it. A runtime error is reported in the
// result; the returned error is for I/O and cancellation.
func Run(ctx context.Context, path string, opts RunOptions) (*RunResult, error) {
	copts := opts.Check
	copts.Cache = nil // исполнению нужен живой AST
	copts.Timings = false
	cr, err := Check(ctx, path, copts)
	if err != nil {
		return nil, err
	}
	res := &RunResult{CheckResult: cr}
	if !cr.OK() {
		if opts.Check.Timings {
			reportTimings(cr.Bag, "run", path, cr.Timings)
		}
		return res, nil
	}

	emit(opts.Check.Sink, Event{File: path, Stage: StageRun, Status: StatusWorking})
	res.Ran = true
	start := time.Now()
	err = eval.Run(ctx, cr.Parse.Builder, cr.Parse.FileID, *cr.Sema, eval.Options{Runtime: opts.Runtime, MaxDepth: opts.MaxDepth})
	cr.Timings = cr.Timings.With(string(StageRun), time.Since(start))
	if opts.Check.Timings {
		reportTimings(cr.Bag, "run", path, cr.Timings)
	}
	var re *eval.RuntimeError
	switch {
	case errors.As(err, &re):
		res.RuntimeErr = re
		emit(opts.Check.Sink, Event{File: path, Stage: StageRun, Status: StatusError, Err: err})
		return res, nil
	case err != nil:
		return res, err
	}
	emit(opts.Check.Sink, Event{File: path, Stage: StageRun, Status: StatusDone})
	return res, nil
}
