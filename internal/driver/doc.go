// Package driver orchestrates the documentation pipeline over files and
// directories: collect inputs, parse, rewrite documentation, print, write.
package driver

import (
	"bytes"
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

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"github.com/enitrat/cairo-doc/internal/diag"
	"github.com/enitrat/cairo-doc/internal/doc"
	"github.com/enitrat/cairo-doc/internal/parser"
	"github.com/enitrat/cairo-doc/internal/pipeline"
	"github.com/enitrat/cairo-doc/internal/printer"
	"github.com/enitrat/cairo-doc/internal/source"
)

// defaultPrefix is prepended to the input file name when no explicit output
// name or in-place mode is requested.
const defaultPrefix = "doc_"

// DocOptions configures documentation generation.
type DocOptions struct {
	// OutputDir overrides the directory output files are written to.
	// Empty means "next to the input".
	OutputDir string
	// OutputName names the output file (without extension). Only valid
	// for a single input file.
	OutputName string
	// Prefix replaces defaultPrefix for derived output names.
	Prefix string
	// InPlace rewrites the input file instead of deriving a new path.
	InPlace bool
	// Stdout returns output in the results without touching the disk.
	Stdout bool
	// Check reports whether files would change without writing anything.
	Check bool
	// MaxDiagnostics caps diagnostics per file.
	MaxDiagnostics int
	// Cache, when non-nil, short-circuits unchanged inputs.
	Cache *DiskCache
	// Workers caps the number of files processed concurrently.
	// Zero means runtime.NumCPU().
	Workers int
	// Progress receives per-file stage events.
	Progress pipeline.ProgressSink
}

func (o *DocOptions) prefix() string {
	if o.Prefix != "" {
		return o.Prefix
	}
	return defaultPrefix
}

// DocResult captures the result of documenting a single file.
// Diags are pre-rendered (path:line:col: SEVERITY[CODE] message) because the
// per-file FileSet needed to resolve spans does not outlive the worker.
type DocResult struct {
	Path    string
	OutPath string
	Changed bool
	Cached  bool
	Output  []byte
	Diags   []string
	Err     error
}

// DocPaths documents the provided files or directories (recursively
// collecting .cairo files). Files are processed in parallel; each module is
// parsed, rewritten and printed start-to-finish by one worker.
func DocPaths(ctx context.Context, paths []string, opts DocOptions) ([]DocResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectCairoFiles(ctx, paths, opts.prefix())
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("doc: no cairo files found")
	}
	if opts.OutputName != "" && len(files) > 1 {
		return nil, errors.New("doc: --output is only valid with a single input file")
	}
	if opts.Progress == nil {
		opts.Progress = pipeline.NopSink{}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]DocResult, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, path := range files {
		i, path := i, path
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = documentSingleFile(path, &opts)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func documentSingleFile(path string, opts *DocOptions) DocResult {
	result := DocResult{Path: path}
	started := time.Now()
	emit := func(stage pipeline.Stage, status pipeline.Status, err error) {
		opts.Progress.OnEvent(pipeline.Event{
			File:    path,
			Stage:   stage,
			Status:  status,
			Err:     err,
			Elapsed: time.Since(started),
		})
	}

	emit(pipeline.StageParse, pipeline.StatusWorking, nil)
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		result.Err = err
		emit(pipeline.StageParse, pipeline.StatusError, err)
		return result
	}
	file := fileSet.Get(fileID)

	output, cached, err := generate(file, opts, &result)
	if err != nil {
		result.Err = err
		emit(pipeline.StageDocument, pipeline.StatusError, err)
		return result
	}
	if cached {
		result.Cached = true
		emit(pipeline.StageDocument, pipeline.StatusCached, nil)
	} else {
		emit(pipeline.StageDocument, pipeline.StatusDone, nil)
	}

	result.OutPath = outputPath(path, opts)
	if err := deliver(output, &result, opts, emit); err != nil {
		result.Err = err
		return result
	}
	emit(pipeline.StageWrite, pipeline.StatusDone, nil)
	return result
}

// generate produces documented output for one loaded file, consulting the
// disk cache first.
func generate(file *source.File, opts *DocOptions, result *DocResult) ([]byte, bool, error) {
	if opts.Cache != nil {
		var payload CachedDoc
		if hit, err := opts.Cache.Get(file.Hash, &payload); err == nil && hit {
			result.Diags = payload.Diags
			return payload.Output, true, nil
		}
	}

	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 256
	}
	bag := diag.NewBag(maxDiag)
	reporter := &diag.BagReporter{Bag: bag}

	maxErrors, convErr := safecast.Conv[uint](bag.Cap())
	if convErr != nil {
		maxErrors = 0
	}
	mod, err := parser.Parse(file, parser.Options{Reporter: reporter, MaxErrors: maxErrors})
	result.Diags = renderDiags(file, bag)
	if err != nil {
		return nil, false, err
	}

	if err := doc.Process(mod, doc.Options{Reporter: reporter}); err != nil {
		return nil, false, err
	}
	result.Diags = renderDiags(file, bag)

	output := printer.Print(mod)
	if opts.Cache != nil {
		payload := CachedDoc{
			Schema:    diskCacheSchemaVersion,
			InputHash: file.Hash,
			Output:    output,
			Diags:     result.Diags,
		}
		// Промах записи в кэш не считается ошибкой генерации.
		_ = opts.Cache.Put(file.Hash, &payload)
	}
	return output, false, nil
}

func renderDiags(file *source.File, bag *diag.Bag) []string {
	items := bag.Items()
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, d := range items {
		pos := file.Position(d.Primary.Start)
		out = append(out, fmt.Sprintf("%s:%d:%d: %s[%s] %s",
			file.Path, pos.Line, pos.Col, d.Severity, d.Code, d.Message))
	}
	return out
}

func deliver(output []byte, result *DocResult, opts *DocOptions, emit func(pipeline.Stage, pipeline.Status, error)) error {
	emit(pipeline.StageWrite, pipeline.StatusWorking, nil)

	existing, readErr := os.ReadFile(result.OutPath)
	result.Changed = readErr != nil || !bytes.Equal(existing, output)

	if opts.Stdout {
		result.Output = output
		return nil
	}
	if opts.Check {
		return nil
	}
	if !result.Changed {
		return nil
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(result.OutPath); statErr == nil {
		mode = info.Mode()
	}
	if dir := filepath.Dir(result.OutPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(result.OutPath, output, mode.Perm())
}

// outputPath derives where the documented file goes:
// <dir>/<prefix><name>.cairo, with --output and --in-place overrides.
func outputPath(path string, opts *DocOptions) string {
	if opts.InPlace {
		return path
	}

	dir, name := filepath.Split(path)
	if opts.OutputDir != "" {
		dir = opts.OutputDir
	}
	if opts.OutputName != "" {
		return filepath.Join(dir, opts.OutputName+".cairo")
	}
	return filepath.Join(dir, opts.prefix()+name)
}

// CollectFiles returns the sorted .cairo files a DocPaths call with the same
// paths and options would process. Used by the interactive UI to pre-populate
// its rows.
func CollectFiles(ctx context.Context, paths []string, opts *DocOptions) ([]string, error) {
	return collectCairoFiles(ctx, paths, opts.prefix())
}

func collectCairoFiles(ctx context.Context, paths []string, prefix string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if isCairoFile(path) && !isGeneratedDoc(path, prefix) {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if isCairoFile(p) {
			addFile(p)
		} else {
			return nil, fmt.Errorf("doc: %s is not a .cairo file", p)
		}
	}

	sort.Strings(files)
	return files, nil
}

func isCairoFile(path string) bool {
	return filepath.Ext(path) == ".cairo"
}

// isGeneratedDoc skips our own derived outputs during directory walks so
// repeated runs do not document the documentation. The effective prefix
// matters: a run with --prefix gen_ must not pick up its own gen_*.cairo.
func isGeneratedDoc(path, prefix string) bool {
	return strings.HasPrefix(filepath.Base(path), prefix)
}
