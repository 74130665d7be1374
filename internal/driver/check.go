package driver

import (
	"context"
	"time"

	"zeron/internal/diag"
	"zeron/internal/layout"
	"zeron/internal/observ"
	"zeron/internal/sema"
	"zeron/internal/source"
	"zeron/internal/trace"
)

// CheckOptions configure Check and CheckFiles.
type CheckOptions struct {
	MaxDiagnostics int
	// Cache may be nil. A hit skips parsing and resolution.
	Cache *DiskCache
	// Layout also computes the frame layout report.
	Layout   bool
	Timings  bool
	Observer PhaseObserver
	Sink     ProgressSink
	// Jobs bounds CheckFiles parallelism; 0 means GOMAXPROCS.
	Jobs int
}

// Summary is the part of a check that survives in the cache.
type Summary struct {
	OK        bool
	Globals   []layout.Global
	Functions []layout.Global
}

// CheckResult is the outcome of checking one file. Parse and Sema are
// nil for a cached result.
type CheckResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Parse   *ParseResult
	Sema    *sema.Result
	Layout  *layout.Program
	Summary Summary
	Cached  bool
	Timings observ.Report
}

// OK reports whether the file is free of errors.
func (r *CheckResult) OK() bool {
	return r != nil && !r.Bag.HasErrors()
}

// Check parses and resolves one file. I/O failures are returned as
// errors; everything about the program is in the result's Bag.
func Check(ctx context.Context, path string, opts CheckOptions) (*CheckResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeModule, "check", trace.ParentFromContext(ctx))
	span.WithExtra("path", path)
	defer span.End("")
	ctx = trace.WithParent(ctx, span)

	timer := observ.NewTimer()
	phase := func(name string) func(note string) {
		idx := timer.Begin(name)
		start := time.Now()
		if opts.Observer != nil {
			opts.Observer(PhaseEvent{Name: name, Status: PhaseStart})
		}
		if name != "load" {
			emit(opts.Sink, Event{File: path, Stage: Stage(name), Status: StatusWorking})
		}
		return func(note string) {
			timer.End(idx, note)
			if opts.Observer != nil {
				opts.Observer(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start)})
			}
		}
	}

	fs := source.NewFileSet()
	endLoad := phase("load")
	fileID, err := fs.Load(path)
	endLoad("")
	if err != nil {
		emit(opts.Sink, Event{File: path, Stage: StageParse, Status: StatusError, Err: err})
		return nil, err
	}
	file := fs.Get(fileID)
	res := &CheckResult{Path: path, FileSet: fs, File: file}

	key := cacheKey(file.Hash)
	if opts.Cache != nil && !opts.Layout {
		var payload DiskPayload
		if hit, err := opts.Cache.Get(key, &payload); err == nil && hit && payload.valid() {
			res.Cached = true
			res.Bag = diag.NewBag(max(opts.MaxDiagnostics, len(payload.Diagnostics)))
			payload.restore(fileID, res.Bag)
			res.Summary = Summary{OK: payload.OK, Globals: payload.Globals, Functions: payload.Functions}
			span.WithExtra("cache", "hit")
			emit(opts.Sink, Event{File: path, Stage: StageResolve, Status: StatusCached})
			return res, nil
		}
	}

	endParse := phase(string(StageParse))
	pr, err := parseLoaded(ctx, fs, fileID, opts.MaxDiagnostics)
	endParse("")
	if err != nil {
		return nil, err
	}
	res.Parse = pr
	res.Bag = pr.Bag

	if !pr.Bag.HasErrors() {
		endResolve := phase(string(StageResolve))
		sr := sema.Resolve(ctx, pr.Builder, pr.FileID, sema.Options{Reporter: diag.BagReporter{Bag: pr.Bag}})
		endResolve("")
		res.Sema = &sr

		if sr.OK() {
			eng := layout.New(layout.JVM())
			endLayout := phase(string(StageLayout))
			prog, err := eng.Program(sr)
			endLayout("")
			if err != nil {
				return nil, err
			}
			if opts.Layout {
				res.Layout = &prog
			}
			res.Summary = Summary{OK: true, Globals: prog.Globals, Functions: prog.Functions}
		}
	}

	res.Timings = timer.Report()
	if opts.Timings {
		reportTimings(res.Bag, "check", path, res.Timings)
	}

	if opts.Cache != nil {
		// тайминги в кэш не пишем: они не воспроизводимы
		items := make([]diag.Diagnostic, 0, res.Bag.Len())
		for _, d := range res.Bag.Items() {
			if d.Code.Phase() != diag.PhaseObs {
				items = append(items, d)
			}
		}
		if err := opts.Cache.Put(key, &DiskPayload{
			Path:        path,
			ContentHash: file.Hash,
			OK:          res.Summary.OK,
			Diagnostics: cacheDiagnostics(items),
			Globals:     res.Summary.Globals,
			Functions:   res.Summary.Functions,
		}); err != nil {
			span.WithExtra("cache_error", err.Error())
		}
	}

	status := StatusDone
	if res.Bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Sink, Event{File: path, Stage: StageResolve, Status: status, Elapsed: time.Duration(res.Timings.TotalMS * float64(time.Millisecond))})
	return res, nil
}
