// Package indexer drives an indexing run: it resolves a path to a worklist,
// takes every file through read, parse, extract and build, and accumulates
// the results into one stack graph.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/dusk-indust/tsgindex/internal/lang"
	"github.com/dusk-indust/tsgindex/internal/stackgraph"
)

var (
	// ErrPathNotFound is returned when the path to index does not exist.
	ErrPathNotFound = errors.New("path does not exist")
	// ErrNotUTF8 is returned for files whose contents are not UTF-8 text.
	ErrNotUTF8 = errors.New("file is not valid UTF-8 text")
)

// Stage names the step at which a file failed.
type Stage string

const (
	StageWalk    Stage = "walk"
	StageRead    Stage = "read"
	StageParse   Stage = "parse"
	StageExtract Stage = "extract"
)

// FileError is a per-file failure carrying the file's path.
type FileError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Options tune an Indexer.
type Options struct {
	// Exclude holds glob patterns matched against slash-separated paths
	// relative to the indexed directory.
	Exclude []string
	// Workers > 1 reads, parses and extracts files in parallel. Graph
	// mutation always happens on one goroutine in worklist order.
	Workers int
	// ContinueOnError records read and parse failures and moves on instead
	// of aborting the run.
	ContinueOnError bool
}

// Indexer builds stack graphs from files on disk.
type Indexer struct {
	opts    Options
	log     *slog.Logger
	exclude []glob.Glob
}

// New returns an Indexer. A nil logger discards logs.
func New(opts Options, logger *slog.Logger) (*Indexer, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ix := &Indexer{opts: opts, log: logger}
	for _, pattern := range opts.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		ix.exclude = append(ix.exclude, g)
	}
	return ix, nil
}

// Result is the outcome of a run. Reports has one entry per worklist file in
// worklist order.
type Result struct {
	Graph   *stackgraph.Graph
	Reports []FileReport
}

// Count returns how many files ended in state s.
func (r *Result) Count(s State) int {
	n := 0
	for _, rep := range r.Reports {
		if rep.State == s {
			n++
		}
	}
	return n
}

// Index builds a new graph from path, which may be a file or a directory.
// On a propagated failure the returned Result still holds the graph built so
// far alongside the error.
func (ix *Indexer) Index(ctx context.Context, path string) (*Result, error) {
	res := &Result{Graph: stackgraph.New()}
	err := ix.IndexInto(ctx, res, path)
	return res, err
}

// IndexInto adds the files under path to res.Graph.
func (ix *Indexer) IndexInto(ctx context.Context, res *Result, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	var work []entry
	if info.IsDir() {
		work, err = ix.worklist(path)
		if err != nil {
			return err
		}
	} else {
		work = []entry{newEntry(path, filepath.Base(path))}
	}

	ix.log.Info("index.start", "path", path, "files", len(work), "workers", ix.workers())
	if ix.workers() > 1 {
		err = ix.runParallel(ctx, res, work)
	} else {
		err = ix.runSequential(ctx, res, work)
	}
	st := res.Graph.Stats()
	ix.log.Info("index.done",
		"files", st.Files,
		"nodes", st.Nodes,
		"edges", st.Edges,
		"skipped", res.Count(Skipped),
		"failed", res.Count(Failed),
	)
	return err
}

func (ix *Indexer) workers() int {
	if ix.opts.Workers < 1 {
		return 1
	}
	return ix.opts.Workers
}

// Languages returns the distinct languages of the files under path, in
// first-seen order. Unknown extensions are left out.
func (ix *Indexer) Languages(path string) ([]lang.ID, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, err
	}
	var work []entry
	if info.IsDir() {
		if work, err = ix.worklist(path); err != nil {
			return nil, err
		}
	} else {
		work = []entry{newEntry(path, filepath.Base(path))}
	}

	seen := make(map[lang.ID]bool)
	var out []lang.ID
	for _, e := range work {
		if e.lang == lang.Unknown || seen[e.lang] {
			continue
		}
		seen[e.lang] = true
		out = append(out, e.lang)
	}
	return out, nil
}
