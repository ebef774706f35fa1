package indexer

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/tsgindex/internal/curated"
	"github.com/dusk-indust/tsgindex/internal/lang"
	"github.com/dusk-indust/tsgindex/internal/stackgraph"
	"github.com/dusk-indust/tsgindex/internal/syntax"
)

// State is a file's position in the per-file pipeline.
type State int

const (
	Unvisited State = iota
	Read
	Parsed
	Extracted
	Built
	Skipped
	Failed
)

func (s State) String() string {
	switch s {
	case Unvisited:
		return "unvisited"
	case Read:
		return "read"
	case Parsed:
		return "parsed"
	case Extracted:
		return "extracted"
	case Built:
		return "built"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// FileReport records what happened to one worklist file.
type FileReport struct {
	Path     string
	Name     string
	Language lang.ID
	State    State
	Digest   uint64
	Facts    int
	Reason   string // why the file was skipped
	Err      error
}

// batch is the per-file output of the read/parse/extract stages: everything
// the builder needs, with no reference to the syntax tree.
type batch struct {
	FileReport
	facts       []syntax.Fact
	placeholder bool
}

// prepare takes one file from Unvisited to Extracted, Skipped or Failed.
// It does not touch the graph and is safe to run concurrently.
func (ix *Indexer) prepare(ctx context.Context, e entry) *batch {
	b := &batch{FileReport: FileReport{Path: e.path, Name: e.name, Language: e.lang}}

	l, ok := lang.Lookup(e.lang)
	if !ok {
		return b.skip("unknown extension")
	}

	source, err := os.ReadFile(e.path)
	if err != nil {
		return b.fail(StageRead, err)
	}
	if !utf8.Valid(source) {
		return b.fail(StageRead, ErrNotUTF8)
	}
	b.State = Read
	b.Digest = xxh3.Hash(source)

	if !l.HasGrammar() {
		return b.skip("no parser for " + l.Name)
	}

	tree, err := syntax.Parse(ctx, l.Grammar(), source)
	if err != nil {
		return b.fail(StageParse, err)
	}
	defer tree.Close()
	b.State = Parsed

	root := tree.RootNode()
	switch l.Strategy() {
	case lang.Curated:
		rs, ok := curated.For(l.ID)
		if !ok {
			return b.fail(StageExtract, fmt.Errorf("no curated ruleset for %s", l.Name))
		}
		if b.facts, err = rs.Extract(root, source); err != nil {
			return b.fail(StageExtract, err)
		}
	case lang.Pattern:
		b.facts = syntax.Extract(root, source, l.Rules)
	default:
		b.placeholder = true
	}
	b.Facts = len(b.facts)
	b.State = Extracted
	return b
}

func (b *batch) skip(reason string) *batch {
	b.State = Skipped
	b.Reason = reason
	return b
}

func (b *batch) fail(stage Stage, err error) *batch {
	b.State = Failed
	b.Err = &FileError{Path: b.Path, Stage: stage, Err: err}
	return b
}

// merge applies a prepared batch to the graph and records its report. It
// returns the batch's error when the run must stop.
func (ix *Indexer) merge(res *Result, b *batch) error {
	switch b.State {
	case Skipped:
		ix.log.Warn("index.skip", "file", b.Name, "reason", b.Reason)
	case Failed:
		res.Reports = append(res.Reports, b.FileReport)
		if ix.opts.ContinueOnError {
			ix.log.Warn("index.fail", "file", b.Name, "err", b.Err)
			return nil
		}
		return b.Err
	case Extracted:
		g := res.Graph
		h := g.GetOrCreateFile(b.Name)
		g.Annotate(h, string(b.Language), b.Digest)
		bld := stackgraph.NewBuilder(g, h)
		if b.placeholder {
			bld.Placeholder()
		} else {
			bld.Apply(b.facts)
		}
		b.State = Built
		ix.log.Debug("index.file", "file", b.Name, "language", b.Language, "facts", b.Facts)
	}
	res.Reports = append(res.Reports, b.FileReport)
	return nil
}

func (ix *Indexer) runSequential(ctx context.Context, res *Result, work []entry) error {
	for _, e := range work {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := ix.merge(res, ix.prepare(ctx, e)); err != nil {
			return err
		}
	}
	return nil
}

// runParallel prepares every file on a bounded pool, then merges the batches
// in worklist order so the graph matches a sequential run exactly.
func (ix *Indexer) runParallel(ctx context.Context, res *Result, work []entry) error {
	batches := make([]*batch, len(work))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers())
	for i, e := range work {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			batches[i] = ix.prepare(gctx, e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, b := range batches {
		if err := ix.merge(res, b); err != nil {
			return err
		}
	}
	return nil
}
