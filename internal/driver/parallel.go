// Package driver runs the lexer and parser over many files at once. All
// workers build through one node cache, so identical subtrees in different
// files share green nodes.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"verdant/internal/config"
	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/lexer"
	"verdant/internal/observ"
	"verdant/internal/parser"
	"verdant/internal/red"
	"verdant/internal/source"
	"verdant/internal/trace"
)

// Ext is the source file extension picked up when walking directories.
const Ext = ".vd"

type Options struct {
	// Jobs bounds the number of files parsed at once; 0 means GOMAXPROCS.
	Jobs int
	// Cache is shared by all workers. nil means green.Shared.
	Cache *green.Cache
	// Disk, when set, stores finished trees keyed by file content.
	Disk *DiskCache
	// Defines are preprocessor symbols set before every file.
	Defines   []string
	MaxErrors uint
	// Timer, when set, receives the load and parse phases.
	Timer *observ.Timer
	// Progress, when set, receives per-file events.
	Progress ProgressSink
}

// OptionsFromConfig maps the [cache] and [parse] sections. The disk cache is
// opened by the caller.
func OptionsFromConfig(cfg config.Config) Options {
	opts := Options{Jobs: cfg.Parse.Jobs}
	switch {
	case !cfg.Cache.Enabled:
		opts.Cache = green.Disabled
	case cfg.Cache.Size > 0 && cfg.Cache.Size != green.DefaultCacheSize:
		opts.Cache = green.NewCache(cfg.Cache.Size)
	}
	return opts
}

func (o Options) factory() green.Factory {
	if o.Cache == nil {
		return green.Default
	}
	return green.NewFactory(o.Cache)
}

// FileResult is the outcome for one input path.
type FileResult struct {
	Path string
	File *source.File // nil when the file could not be read
	Root green.Node
	// Directives is the preprocessor state at the end of the file.
	Directives green.DirectiveStack
	Bag        *diag.Bag
	// FromDisk is set when Root was read from the disk cache.
	FromDisk bool
}

// Tree wraps Root for positioned navigation; nil when the file failed to load.
func (r *FileResult) Tree() *red.Tree {
	if r.Root == nil {
		return nil
	}
	return red.NewTree(r.File.ID, r.Root)
}

type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Cache   green.CacheStats
}

// HasErrors reports whether any file has an error diagnostic.
func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// ListFiles expands directories into the sorted *.vd files beneath them.
// Plain files are kept whatever their extension.
func ListFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, Ext) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		// детерминированный порядок
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// ParseFiles loads and parses paths in parallel. A file that cannot be read
// gets an IO diagnostic instead of a tree; the error return is reserved for
// cancellation.
func ParseFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "parse_files")
	defer span.End("")
	span.WithExtra("files", strconv.Itoa(len(paths)))

	fileSet := source.NewFileSet()
	res := &Result{FileSet: fileSet, Files: make([]FileResult, len(paths))}

	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}
	endLoad := opts.Timer.Track("load")
	emit(opts.Progress, Event{Stage: StageLoad, Status: StatusWorking})
	loadErrors := make(map[int]error)
	for i, path := range paths {
		res.Files[i].Path = path
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		res.Files[i].File = fileSet.Get(id)
	}
	endLoad(fmt.Sprintf("%d files", len(paths)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	f := opts.factory()
	names := source.NewInterner()

	endParse := opts.Timer.Track("parse")
	emit(opts.Progress, Event{Stage: StageParse, Status: StatusWorking})
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			out := &res.Files[i]
			if err, failed := loadErrors[i]; failed {
				out.Bag = diag.NewBag(0)
				out.Bag.Add(diag.NewError(diag.IOLoadFileError, 0, 0, "failed to load file: "+err.Error()))
				return nil
			}
			emit(opts.Progress, Event{File: out.Path, Stage: StageParse, Status: StatusWorking})
			started := time.Now()
			parseOne(gctx, out, f, names, opts)
			status := StatusDone
			if out.Bag.HasErrors() {
				status = StatusError
			}
			emit(opts.Progress, Event{File: out.Path, Stage: StageParse, Status: status, Elapsed: time.Since(started)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		endParse("cancelled")
		return res, err
	}
	endParse("")
	res.Cache = f.Cache().Stats()
	return res, nil
}

// ParseFile parses a single file from disk.
func ParseFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	res, err := ParseFiles(ctx, []string{path}, opts)
	if err != nil {
		return nil, err
	}
	return &res.Files[0], nil
}

// parseOne fills out, going through the disk cache when one is configured.
// Results are written to distinct indices, so no lock is needed.
func parseOne(ctx context.Context, out *FileResult, f green.Factory, names *source.Interner, opts Options) {
	_, span := trace.Start(ctx, trace.ScopeFile, "file:"+out.Path)
	defer span.End("")

	key := DiskKey(out.File, opts.Defines, opts.MaxErrors)
	if opts.Disk != nil {
		var payload DiskPayload
		payload.Root.Factory = f
		ok, err := opts.Disk.Get(key, &payload)
		if err == nil && ok && payload.Schema == diskCacheSchemaVersion && payload.Root.Root != nil {
			out.Root = payload.Root.Root
			out.Directives = green.ApplyDirectives(out.Root, lexer.Predefined(f, opts.Defines))
			out.Bag = bagFor(out.Root)
			out.FromDisk = true
			span.WithExtra("disk", "hit")
			return
		}
	}

	r := parser.ParseFile(out.File, parser.Options{
		Lexer:     lexerOptions(f, names, opts.Defines),
		MaxErrors: opts.MaxErrors,
	})
	out.Root = r.Root
	out.Directives = r.Directives
	out.Bag = r.Bag

	if opts.Disk != nil {
		payload := DiskPayload{Schema: diskCacheSchemaVersion, Path: out.Path}
		payload.Root.Root = r.Root
		if err := opts.Disk.Put(key, &payload); err != nil {
			span.Point("disk_cache_put", err.Error())
		}
	}
}

// bagFor rebuilds the bag of a tree read back from disk.
func bagFor(root green.Node) *diag.Bag {
	bag := diag.NewBag(0)
	bag.AddAll(green.CollectDiagnostics(root))
	bag.Sort()
	return bag
}
