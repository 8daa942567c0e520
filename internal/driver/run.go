package driver

import (
	"context"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"

	"phpsniff/internal/cache"
	"phpsniff/internal/observ"
	"phpsniff/internal/source"
	"phpsniff/internal/trace"
)

// Report is the outcome of Run.
type Report struct {
	// Files are in path order.
	Files   []*FileResult
	Timings observ.Report
}

// Failed counts files that could not be processed.
func (r *Report) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Diagnostics counts diagnostics over all files.
func (r *Report) Diagnostics() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Diagnostics)
	}
	return n
}

// HasErrors reports whether any file failed or has error diagnostics.
func (r *Report) HasErrors() bool {
	for _, f := range r.Files {
		if f.HasErrors() {
			return true
		}
	}
	return false
}

// Run discovers files under paths and processes them in parallel, each file
// on its own goroutine. A failing file does not stop the others; its error
// is in its FileResult. Run itself fails only when discovery fails or ctx
// is cancelled.
//
// In fix mode, changed files are written back with their permissions kept
// unless opts.DryRun is set. In check mode results are read from and
// written to opts.Cache.
func Run(ctx context.Context, paths []string, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeRun, "run:"+opts.Mode.String(), trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)

	files, err := Discover(paths, opts.Include, opts.Exclude)
	if err != nil {
		span.End("discovery failed")
		return nil, err
	}
	for _, f := range files {
		emit(opts.Sink, Event{Path: f, Stage: StageQueued})
	}

	results := make([]*FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(opts.Jobs, len(files))))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = runFile(gctx, path, opts)
			return nil
		})
	}
	err = g.Wait()

	rep := &Report{Files: make([]*FileResult, 0, len(results))}
	for _, r := range results {
		if r != nil {
			rep.Files = append(rep.Files, r)
			rep.Timings.Merge(r.Timings)
		}
	}
	span.WithExtra("files", strconv.Itoa(len(rep.Files))).
		WithExtra("failed", strconv.Itoa(rep.Failed())).
		End(strconv.Itoa(rep.Diagnostics()) + " diagnostics")
	if err != nil {
		return rep, err
	}
	return rep, nil
}

func runFile(ctx context.Context, path string, opts Options) *FileResult {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from Discover
	if err != nil {
		res := &FileResult{Path: path, Err: &FileError{Path: path, Err: err}}
		emit(opts.Sink, Event{Path: path, Stage: StageError, Err: res.Err})
		return res
	}

	useCache := opts.Mode == ModeCheck && opts.Cache != nil
	var key cache.Key
	if useCache {
		key = cache.KeyFor(content, opts.Version, cacheFingerprint(opts), opts.ExcludeCodes)
		if e, ok, err := opts.Cache.Get(key); err == nil && ok {
			res := &FileResult{
				Path:        path,
				Original:    content,
				Final:       content,
				Diagnostics: e.Restore(source.FileID(0)),
				Truncated:   e.Truncated,
				Passes:      0,
				Cached:      true,
			}
			emit(opts.Sink, Event{Path: path, Stage: StageDone, Diagnostics: len(res.Diagnostics)})
			return res
		}
	}

	res, err := ProcessFile(ctx, path, content, opts)
	if err != nil {
		return res
	}
	if useCache {
		if err := opts.Cache.Put(key, cache.NewEntry(path, res.Diagnostics, res.Truncated)); err != nil {
			trace.Failure(trace.FromContext(ctx), trace.ScopeFile, "cache:"+path, trace.CurrentSpan(ctx), err)
		}
	}
	if opts.Mode == ModeFix && !opts.DryRun && res.Changed() {
		if err := writeBack(path, res.Final); err != nil {
			res.Err = &FileError{Path: path, Err: err}
			emit(opts.Sink, Event{Path: path, Stage: StageError, Err: res.Err})
			return res
		}
		res.Written = true
	}
	return res
}

func cacheFingerprint(opts Options) string {
	return opts.Rules.Fingerprint() + "|max=" + strconv.Itoa(opts.MaxDiagnostics)
}

// writeBack replaces path's content, keeping its permission bits.
func writeBack(path string, content []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, info.Mode().Perm())
}
