package driver

import (
	"context"
	"fmt"
	"strconv"

	"phpsniff/internal/diag"
	"phpsniff/internal/fix"
	"phpsniff/internal/index"
	"phpsniff/internal/lexer"
	"phpsniff/internal/observ"
	"phpsniff/internal/rule"
	"phpsniff/internal/source"
	"phpsniff/internal/token"
	"phpsniff/internal/trace"
)

// FileResult is the outcome for one file.
type FileResult struct {
	Path string
	// Diagnostics come from the last pass, sorted by position. In fix mode
	// they are what the fixes could not resolve.
	Diagnostics []diag.Diagnostic
	Truncated   bool

	Passes   int
	Fixes    int // committed changesets
	Rejected int // changesets committed against a stale snapshot

	// Original and Final are on-disk bytes, BOM and line endings included.
	Original []byte
	Final    []byte
	Written  bool
	Cached   bool

	Timings observ.Report
	Err     error
}

// Changed reports whether fixing altered the file.
func (r *FileResult) Changed() bool {
	return string(r.Original) != string(r.Final)
}

// HasErrors reports whether the file failed or has error diagnostics.
func (r *FileResult) HasErrors() bool {
	if r.Err != nil {
		return true
	}
	for _, d := range r.Diagnostics {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// ProcessFile runs the rule set over content. Check mode runs one pass.
// In fix mode a pass ends at its first commit; the rewritten text is
// re-tokenized and the whole rule set starts again, until a pass commits
// nothing. Content is lexed as read and Final is the rewritten bytes, so
// line endings and a BOM the fixes did not touch survive. It never writes
// to disk.
//
// On failure the returned result still carries whatever was gathered and
// its Err is the returned error.
func ProcessFile(ctx context.Context, path string, content []byte, opts Options) (*FileResult, error) {
	opts = opts.withDefaults()
	res := &FileResult{Path: path, Original: content, Final: content}
	err := processFile(ctx, res, opts)
	if err != nil {
		res.Err = &FileError{Path: path, Err: err}
		emit(opts.Sink, Event{Path: path, Stage: StageError, Pass: res.Passes, Err: res.Err})
		return res, res.Err
	}
	emit(opts.Sink, Event{Path: path, Stage: StageDone, Pass: res.Passes, Diagnostics: len(res.Diagnostics), Fixes: res.Fixes})
	return res, nil
}

func processFile(ctx context.Context, res *FileResult, opts Options) error {
	tr := trace.FromContext(ctx)
	fileSpan := trace.Begin(tr, trace.ScopeFile, "file:"+res.Path, trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, fileSpan)
	timer := observ.NewTimer()
	defer func() {
		res.Timings = timer.Report()
		fileSpan.WithExtra("passes", strconv.Itoa(res.Passes)).
			WithExtra("fixes", strconv.Itoa(res.Fixes)).
			End(fmt.Sprintf("%d diagnostics", len(res.Diagnostics)))
	}()

	fs := source.NewFileSet()
	file := fs.Get(fs.Add(res.Path, res.Original, 0))

	for pass := 1; pass <= opts.MaxPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		res.Passes = pass
		out, err := runPass(ctx, file, pass, opts, timer)
		if err != nil {
			trace.Failure(tr, trace.ScopePass, "pass", fileSpan.ID(), err)
			return err
		}
		res.Diagnostics = out.bag.Items()
		res.Truncated = out.bag.Truncated()
		res.Fixes += out.counts.Applied
		res.Rejected += out.counts.Rejected

		if opts.Mode != ModeFix || !out.fixer.Changed() {
			res.Final = file.Content
			return nil
		}
		render := timer.Begin("render")
		next := out.fixer.Contents()
		timer.End(render, "")
		if next == string(file.Content) {
			res.Final = file.Content
			return nil
		}
		file = fs.Get(fs.Revise(file.ID, []byte(next)))
	}
	res.Final = file.Content
	return &FixDidNotConvergeError{Path: res.Path, Passes: opts.MaxPasses}
}

type passOutcome struct {
	bag    *diag.Bag
	fixer  *fix.Fixer
	counts rule.Counts
}

func runPass(ctx context.Context, file *source.File, pass int, opts Options, timer *observ.Timer) (passOutcome, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePass, "pass "+strconv.Itoa(pass), trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	var out passOutcome
	defer func() {
		span.WithExtra("applied", strconv.Itoa(out.counts.Applied)).
			WithExtra("rejected", strconv.Itoa(out.counts.Rejected)).
			End(fmt.Sprintf("%d diagnostics", out.counts.Errors))
	}()

	emit(opts.Sink, Event{Path: file.Path, Stage: StageLexing, Pass: pass})
	t := timer.Begin("lex")
	toks, err := lexer.Tokenize(file, opts.Lexer)
	timer.End(t, "")
	if err != nil {
		return out, err
	}
	t = timer.Begin("index")
	idx, err := index.Build(toks)
	timer.End(t, "")
	if err != nil {
		return out, err
	}

	stage := StageChecking
	out.fixer = fix.NewDisabled(toks)
	if opts.Mode == ModeFix {
		stage = StageFixing
		out.fixer = fix.New(toks)
	}
	emit(opts.Sink, Event{Path: file.Path, Stage: stage, Pass: pass})

	out.bag = diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.NewSuppressReporter(
		diag.NewDedupReporter(diag.BagReporter{Bag: out.bag}),
		opts.ExcludeCodes,
	)
	rctx := rule.NewContext(ctx, file.Path, idx, out.fixer, reporter)

	t = timer.Begin("rules")
	defer func() { timer.End(t, "") }()
	for _, r := range opts.Rules.Rules() {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		rspan := trace.Begin(tr, trace.ScopeRule, "rule:"+r.Name(), span.ID())
		rctx.Enter(r, rspan.ID())
		before := rctx.Counts().Errors
		err := runRule(rctx, r, rule.Triggers(r))
		rspan.End(strconv.Itoa(rctx.Counts().Errors - before))
		out.counts = rctx.Counts()
		if err != nil {
			return out, err
		}
		if out.fixer.Changed() {
			// The token stream is stale; no rule may see it again.
			trace.Point(tr, trace.ScopePass, "rewritten", span.ID(), r.Name())
			break
		}
	}
	out.bag.Sort()
	return out, nil
}

// runRule calls r for every trigger token in position order. It returns
// early once a commit has rewritten the snapshot. An index access out of
// range panics inside the rule; it is recovered here and reported like any
// other contract error.
func runRule(rctx *rule.Context, r rule.Rule, triggers token.Set) (err error) {
	pos := -1
	defer func() {
		if p := recover(); p != nil {
			oor, ok := p.(*index.OutOfRangeError)
			if !ok {
				panic(p)
			}
			rctx.Fixer.Discard()
			err = &RuleError{Rule: r.Name(), Pos: pos, Err: oor}
		}
	}()

	toks := rctx.Index.Tokens()
	for i := range toks {
		if !triggers.Has(toks[i].Kind) {
			continue
		}
		pos = i
		if err := r.Process(rctx, i); err != nil {
			rctx.Fixer.Discard()
			return &RuleError{Rule: r.Name(), Pos: i, Err: err}
		}
		if rctx.Fixer.InChangeset() {
			rctx.Fixer.Discard()
			return &RuleError{Rule: r.Name(), Pos: i, Err: ErrChangesetLeftOpen}
		}
		if rctx.Fixer.Changed() {
			return nil
		}
	}
	return nil
}
