package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
	"cairolint/internal/metrics"
	"cairolint/internal/observ"
	"cairolint/internal/parser"
	"cairolint/internal/quickfix"
	"cairolint/internal/sema"
	"cairolint/internal/source"
	"cairolint/internal/trace"
	"cairolint/internal/version"
)

// Options настраивает прогон анализатора. Нулевое значение рабочее: все
// правила, без кэша, без лимита, GOMAXPROCS воркеров.
type Options struct {
	Jobs           int
	MaxDiagnostics int // на файл; 0 = без лимита
	Selection      lint.Selection
	// Exclude отсеивает файлы, найденные обходом каталога. Явно
	// переданные файлы не фильтруются.
	Exclude  func(path string) bool
	BaseDir  string
	Cache    *DiskCache
	Progress ProgressSink
	Timer    *observ.Timer
	Metrics  *metrics.Recorder
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	// Tree is nil when the diagnostics came from the cache or the file
	// could not be read.
	Tree   *ast.Tree
	Bag    *diag.Bag
	Cached bool
	Err    error
}

// DiagnoseSource runs parse, sema and lint over a file already stored in fs.
// fs is only read, so several files of one set may be diagnosed concurrently.
func DiagnoseSource(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *FileResult {
	started := time.Now()
	file := fs.Get(id)
	ctx, span := trace.Begin(ctx, trace.ScopeFile, "diagnose_file")
	span.Attr("path", file.Path)

	res := &FileResult{Path: file.Path, FileID: id, Bag: diag.NewBag(opts.MaxDiagnostics)}
	defer func() {
		span.End(fmt.Sprintf("diags=%d cached=%t", res.Bag.Len(), res.Cached))
	}()

	var key Digest
	if opts.Cache != nil {
		key = cacheKey(Digest(file.Hash), version.Version, opts.Selection, opts.MaxDiagnostics)
		if restoreCached(ctx, opts, key, file, res) {
			opts.Metrics.File("cached")
			opts.Metrics.Diagnostics(res.Bag.Items())
			emit(opts.Progress, Event{File: file.Path, Stage: StageLint, Status: StatusCached, Diagnostics: res.Bag.Len(), Elapsed: time.Since(started)})
			return res
		}
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: res.Bag})
	var tree *ast.Tree
	phase(opts, "parse", func() {
		tree = parser.ParseFile(file, parser.Options{Reporter: reporter}).Tree
	})
	res.Tree = tree

	emit(opts.Progress, Event{File: file.Path, Stage: StageSema, Status: StatusWorking})
	var module *sema.Module
	phase(opts, "sema", func() {
		module = sema.Build(tree, moduleName(file.Path))
	})

	if err := ctx.Err(); err != nil {
		res.Err = err
		emit(opts.Progress, Event{File: file.Path, Stage: StageLint, Status: StatusError, Err: err})
		return res
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageLint, Status: StatusWorking})
	var found []diag.Diagnostic
	phase(opts, "lint", func() {
		found = lint.Analyze(module, lint.Options{Selection: opts.Selection})
		found = quickfix.Attach(ctx, tree, found)
	})
	for _, d := range found {
		res.Bag.Add(d)
	}
	res.Bag.Sort()

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, toDiskPayload(file, res.Bag)); err != nil {
			trace.Error(ctx, trace.ScopeFile, "cache_put", err)
		}
	}

	opts.Metrics.File("analyzed")
	opts.Metrics.Diagnostics(res.Bag.Items())
	emit(opts.Progress, Event{File: file.Path, Stage: StageLint, Status: StatusDone, Diagnostics: res.Bag.Len(), Elapsed: time.Since(started)})
	return res
}

// restoreCached fills res from the cache. Diagnostics that had a fix get a
// lazy one again; the tree it needs is re-parsed from the same file on first
// use.
func restoreCached(ctx context.Context, opts Options, key Digest, file *source.File, res *FileResult) bool {
	var payload DiskPayload
	hit, err := opts.Cache.Get(key, &payload)
	if err != nil {
		trace.Error(ctx, trace.ScopeFile, "cache_get", err)
		return false
	}
	if !hit {
		return false
	}
	restored := fromDiskPayload(&payload, file)
	if restored == nil {
		return false
	}
	reparse := sync.OnceValues(func() (*ast.Tree, error) {
		return parser.ParseFile(file, parser.Options{}).Tree, nil
	})
	for i := range restored {
		if payload.Diagnostics[i].HasFix {
			quickfix.AttachFrom(ctx, reparse, restored[i:i+1])
		}
		res.Bag.Add(restored[i])
	}
	res.Bag.AddDropped(payload.Dropped)
	res.Cached = true
	trace.Point(ctx, trace.ScopeFile, "cache_hit", file.Path)
	return true
}

func phase(opts Options, name string, fn func()) {
	start := time.Now()
	fn()
	d := time.Since(start)
	opts.Timer.Add(name, d)
	opts.Metrics.Phase(name, d)
}

func moduleName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// loadError reserves an empty file for path so the load failure can be
// reported with a position like any other diagnostic.
func loadError(fs *source.FileSet, path string, err error) *FileResult {
	id := fs.AddVirtual(path, nil)
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, err.Error()))
	return &FileResult{Path: path, FileID: id, Bag: bag, Err: err}
}
