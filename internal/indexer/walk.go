package indexer

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dusk-indust/tsgindex/internal/lang"
)

// skipDirs are build-artifact and tooling directories never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	"target":       true,
	"build":        true,
	"__pycache__":  true,
	"dist":         true,
	"venv":         true,
	"bin":          true,
	"obj":          true,
}

// entry is one worklist file.
type entry struct {
	path string // on-disk path
	name string // name recorded in the graph
	lang lang.ID
}

func newEntry(path, name string) entry {
	return entry{path: path, name: name, lang: lang.ForPath(path)}
}

// skipDir reports whether the walk should prune a directory.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || skipDirs[name]
}

// Worklist returns the files under root that would be indexed, as
// slash-separated paths relative to root, in lexical walk order.
func (ix *Indexer) Worklist(root string) ([]string, error) {
	work, err := ix.worklist(root)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(work))
	for i, e := range work {
		out[i] = e.name
	}
	return out, nil
}

func (ix *Indexer) worklist(root string) ([]entry, error) {
	var work []entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if ix.opts.ContinueOnError && path != root {
				ix.log.Warn("index.walk_error", "path", path, "err", err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return &FileError{Path: path, Stage: StageWalk, Err: err}
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == root {
				return nil
			}
			if skipDir(d.Name()) || ix.excluded(rel) {
				ix.log.Debug("index.skip_dir", "path", rel)
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			// Links to files are indexed under the link's path; links to
			// directories are not followed.
			info, statErr := os.Stat(path)
			if statErr != nil || !info.Mode().IsRegular() {
				ix.log.Debug("index.skip", "path", rel, "reason", "symlink")
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		e := newEntry(path, rel)
		if e.lang == lang.Unknown || ix.excluded(rel) {
			return nil
		}
		work = append(work, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return work, nil
}

func (ix *Indexer) excluded(rel string) bool {
	for _, g := range ix.exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
