package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cairolint/internal/diag"
	"cairolint/internal/source"
	"cairolint/internal/trace"
)

// SourceExt is the extension of files picked up by directory walks.
const SourceExt = ".cairo"

// ErrNoFiles is returned when the given paths contain no source files.
var ErrNoFiles = errors.New("no .cairo files found")

// Result collects per-file results of one run in path order.
type Result struct {
	FileSet *source.FileSet
	Files   []*FileResult
	Elapsed time.Duration
}

// Bag merges the per-file bags, sorted by position.
func (r *Result) Bag() *diag.Bag {
	bag := diag.NewBag(0)
	for _, f := range r.Files {
		bag.Merge(f.Bag)
	}
	bag.Sort()
	return bag
}

// Diagnostics returns all diagnostics of the run, sorted.
func (r *Result) Diagnostics() []diag.Diagnostic {
	return r.Bag().Items()
}

func (r *Result) HasErrors() bool {
	for _, f := range r.Files {
		if f.Err != nil || f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// CachedCount reports how many files were served from the cache.
func (r *Result) CachedCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Cached {
			n++
		}
	}
	return n
}

// listCairoFiles возвращает отсортированный список всех *.cairo файлов в директории.
// Скрытые каталоги и то, что отсеял exclude, пропускаются.
func listCairoFiles(dir string, exclude func(string) bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && (strings.HasPrefix(d.Name(), ".") || exclude != nil && exclude(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) && (exclude == nil || !exclude(path)) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CollectPaths expands directories into .cairo files and deduplicates the
// result. Directory walks skip hidden directories and excluded paths.
func CollectPaths(paths []string, exclude func(string) bool) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		files, err := listCairoFiles(p, exclude)
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoFiles
	}
	return out, nil
}

// Diagnose analyzes files and directories. Files are loaded into one FileSet
// sequentially, then diagnosed by up to opts.Jobs workers. Unreadable files
// become IO diagnostics; the returned error is reserved for bad arguments and
// cancellation.
func Diagnose(ctx context.Context, paths []string, opts Options) (*Result, error) {
	started := time.Now()
	ctx, span := trace.Begin(ctx, trace.ScopeRun, "diagnose")
	defer span.End("")

	files, err := CollectPaths(paths, opts.Exclude)
	if err != nil {
		return nil, err
	}

	fileSet := source.NewFileSet()
	if opts.BaseDir != "" {
		fileSet.SetBaseDir(opts.BaseDir)
	}

	results := make([]*FileResult, len(files))
	ids := make([]source.FileID, len(files))
	loadStart := time.Now()
	for i, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			trace.Error(ctx, trace.ScopeFile, "load", loadErr)
			results[i] = loadError(fileSet, path, loadErr)
			opts.Metrics.File("error")
			opts.Metrics.Diagnostics(results[i].Bag.Items())
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Diagnostics: 1})
			continue
		}
		ids[i] = id
	}
	loadDur := time.Since(loadStart)
	opts.Timer.Add("load", loadDur)
	opts.Metrics.Phase("load", loadDur)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range files {
		if results[i] != nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := DiagnoseSource(gctx, fileSet, ids[i], opts)
			results[i] = res
			if res.Err != nil {
				return res.Err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{FileSet: fileSet, Files: results, Elapsed: time.Since(started)}
	opts.Metrics.RunDuration(res.Elapsed)
	span.Attr("files", fmt.Sprint(len(files))).Attr("jobs", fmt.Sprint(jobs))
	return res, nil
}

// DiagnoseBytes analyzes in-memory content, e.g. stdin.
func DiagnoseBytes(ctx context.Context, name string, content []byte, opts Options) *Result {
	fileSet := source.NewFileSet()
	if opts.BaseDir != "" {
		fileSet.SetBaseDir(opts.BaseDir)
	}
	id := fileSet.AddVirtual(name, content)
	started := time.Now()
	// кэш для виртуальных файлов не используется
	opts.Cache = nil
	fr := DiagnoseSource(ctx, fileSet, id, opts)
	return &Result{FileSet: fileSet, Files: []*FileResult{fr}, Elapsed: time.Since(started)}
}
