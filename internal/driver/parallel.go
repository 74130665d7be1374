package driver

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"zeron/internal/trace"
)

// checkMetrics tracks a CheckFiles run.
type checkMetrics struct {
	completed   atomic.Int64
	failed      atomic.Int64 // files with diagnostics errors
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

func (m *checkMetrics) String() string {
	hits, misses := m.cacheHits.Load(), m.cacheMisses.Load()
	rate := 0.0
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total) * 100
	}
	return fmt.Sprintf("files: %d checked, %d with errors | cache: %d/%d (%.1f%%)",
		m.completed.Load(), m.failed.Load(), hits, hits+misses, rate)
}

// CheckFiles checks independent files concurrently. Results keep the
// order of paths. The first I/O error cancels the remaining work.
func CheckFiles(ctx context.Context, paths []string, opts CheckOptions) ([]*CheckResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "check_files", trace.ParentFromContext(ctx))
	defer span.End("")
	ctx = trace.WithParent(ctx, span)

	for _, p := range paths {
		emit(opts.Sink, Event{File: p, Stage: StageParse, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*CheckResult, len(paths))
	var metrics checkMetrics

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Check(gctx, p, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			results[i] = res
			metrics.completed.Add(1)
			if !res.OK() {
				metrics.failed.Add(1)
			}
			if opts.Cache != nil {
				if res.Cached {
					metrics.cacheHits.Add(1)
				} else {
					metrics.cacheMisses.Add(1)
				}
			}
			return nil
		})
	}
	err := g.Wait()
	span.WithExtra("metrics", metrics.String())
	return results, err
}
