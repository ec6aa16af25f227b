package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"stamp/internal/source"
)

// SourceExt is the file extension the directory walker picks up.
const SourceExt = ".stp"

// ListSourceFiles returns the sorted list of source files under dir.
// Sorting keeps every directory run deterministic regardless of walk order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExpandDir expands every source file under dir in parallel. Each file gets
// its own FileSet and Bag so pipelines never share mutable state; results
// come back in the sorted file order. jobs <= 0 means one worker per CPU.
func ExpandDir(ctx context.Context, dir string, jobs int, opts Options) ([]FileResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, path := range files {
		opts.emit(Event{File: path, Stage: StageParse, Status: StatusQueued})
	}

	// indexes are unique per goroutine, no mutex needed
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fileSet := source.NewFileSetWithBase(dir)
			results[i] = ExpandFile(fileSet, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
