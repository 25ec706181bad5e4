package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"enumclass/internal/ast"
	"enumclass/internal/diag"
	"enumclass/internal/lexer"
	"enumclass/internal/parser"
	"enumclass/internal/project"
	"enumclass/internal/sema"
	"enumclass/internal/source"
	"enumclass/internal/trace"
)

// FileResult is the outcome for one source file.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Bag      *diag.Bag
	Closed   []sema.ClosedType
	Analyses []sema.Analysis
	// Cached is set when the result was read from the disk cache.
	Cached bool
}

type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	// Bag holds every file's diagnostics after severity overrides, sorted
	// by position.
	Bag *diag.Bag
}

// Diagnose checks path, a single file or a directory of .ec files. Files
// are analyzed in parallel; the result does not depend on scheduling.
func Diagnose(ctx context.Context, path string, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeRun, "diagnose", trace.ParentFrom(ctx))
	root.WithExtra("path", path)

	loadSpan := trace.Begin(tracer, trace.ScopePhase, "load", root.ID())
	stop := opts.Timer.Track("load")
	fileSet, ids, failed, err := loadSources(path)
	stop()
	if err != nil {
		loadSpan.End("error")
		root.End("error")
		return nil, err
	}
	overrides, problems := opts.Manifest.Overrides()
	var manifestSpan source.Span
	if len(problems) > 0 {
		manifestSpan = loadManifestFile(fileSet, opts.Manifest.Path)
	}
	loadSpan.End(fmt.Sprintf("files=%d", len(ids)))

	for _, id := range ids {
		emit(ctx, opts.Progress, fileSet.Get(id).Path, StatusQueued)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]FileResult, len(ids))
	analyzeSpan := trace.Begin(tracer, trace.ScopePhase, "analyze", root.ID())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(ids)))
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(gctx, fileSet, id, failed[id], opts, analyzeSpan.ID())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		analyzeSpan.End("cancelled")
		root.End("error")
		return nil, err
	}
	analyzeSpan.End(fmt.Sprintf("jobs=%d", jobs))

	merged := diag.NewBag(opts.MaxDiagnostics)
	for _, p := range problems {
		merged.Add(diag.New(diag.SevWarning, p.Code, manifestSpan, p.Msg))
	}
	constructs := 0
	for i := range results {
		applyOverrides(results[i].Bag, overrides)
		merged.Merge(results[i].Bag)
		constructs += len(results[i].Analyses)
	}
	merged.Sort()
	merged.Dedup()
	opts.Timer.Note("check", fmt.Sprintf("constructs=%d", constructs))
	root.WithExtra("diagnostics", strconv.Itoa(merged.Len())).End("")

	return &Result{FileSet: fileSet, Files: results, Bag: merged}, nil
}

func loadManifestFile(fileSet *source.FileSet, path string) source.Span {
	id, err := fileSet.Load(path)
	if err != nil {
		id = fileSet.Add(path, nil, source.FileVirtual)
	}
	return source.Span{File: id}
}

// checkFile parses and binds one file. Only fileSet reads happen here.
func checkFile(ctx context.Context, fileSet *source.FileSet, id source.FileID, loadErr error, opts Options, parent uint64) FileResult {
	tracer := trace.FromContext(ctx)
	file := fileSet.Get(id)
	fr := FileResult{Path: file.Path, FileID: id}
	span := trace.Begin(tracer, trace.ScopeFile, file.Path, parent)

	if loadErr != nil {
		fr.Bag = diag.NewBag(opts.MaxDiagnostics)
		fr.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+loadErr.Error()))
		emit(ctx, opts.Progress, file.Path, StatusError)
		span.End("load error")
		return fr
	}

	key := project.Combine(project.Digest(file.Hash), opts.fingerprint())
	if opts.Cache != nil {
		stop := opts.Timer.Track("cache")
		payload, ok, err := opts.Cache.Get(key)
		stop()
		if err != nil {
			trace.Point(tracer, trace.ScopeFailure, "cache read", err.Error(), span.ID())
		}
		if ok {
			fr.Bag, fr.Closed, fr.Analyses = decodePayload(payload, id, opts.MaxDiagnostics)
			fr.Cached = true
			emit(ctx, opts.Progress, file.Path, StatusCached)
			span.WithExtra("cache", "hit").End("")
			return fr
		}
	}

	emit(ctx, opts.Progress, file.Path, StatusParsing)
	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	maxErrors, err := safecast.Conv[uint](max(0, opts.MaxDiagnostics))
	if err != nil {
		maxErrors = 0
	}
	stop := opts.Timer.Track("parse")
	builder := ast.NewBuilder(ast.Hints{})
	pr := parser.ParseFile(lexer.New(file, lexer.Options{Reporter: rep}), builder, parser.Options{
		Reporter:  rep,
		MaxErrors: maxErrors,
	})
	stop()

	emit(ctx, opts.Progress, file.Path, StatusChecking)
	stop = opts.Timer.Track("check")
	res := sema.Check(builder, pr.File, sema.Options{
		Reporter: rep,
		File:     file,
		Coverage: opts.Coverage,
		Fixes:    opts.Fixes,
	})
	stop()
	for _, a := range res.Analyses {
		detail := a.SumType
		if !a.Exhaustive {
			detail += " missing " + strings.Join(a.Missing, ",")
		}
		trace.Point(tracer, trace.ScopeConstruct, a.Kind.String(), detail, span.ID())
	}

	fr.Bag, fr.Closed, fr.Analyses = bag, res.Closed, res.Analyses
	if opts.Cache != nil {
		if err := opts.Cache.Put(key, encodePayload(&fr)); err != nil {
			trace.Point(tracer, trace.ScopeFailure, "cache write", err.Error(), span.ID())
		}
	}

	status := StatusDone
	if bag.HasErrors() {
		status = StatusError
	}
	emit(ctx, opts.Progress, file.Path, status)
	span.WithExtra("diagnostics", strconv.Itoa(bag.Len())).End("")
	return fr
}
