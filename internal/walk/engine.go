package repotree

import (
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"go.uber.org/zap"
)

// Entry is a single child of a directory encountered during a walk.
type Entry struct {
	Name    string
	Path    string
	Info    os.FileInfo // nil when StatErr is set
	StatErr error
	Symlink bool
}

// IsDir reports whether the entry is a directory. Entries that could not be
// stat'ed count as files.
func (e Entry) IsDir() bool {
	return e.StatErr == nil && e.Info != nil && e.Info.IsDir()
}

// Size returns the entry size, or 0 when it is unknown.
func (e Entry) Size() int64 {
	if e.Info == nil {
		return 0
	}
	return e.Info.Size()
}

// readEntries lists dir in raw listing order, dropping entries the filter
// hides. Symlinks are followed for classification.
func readEntries(dir string, filter *PathFilter) ([]Entry, error) {
	dirents, err := godirwalk.ReadDirents(dir, nil)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		name := de.Name()
		if !filter.Visible(name) {
			continue
		}
		e := Entry{
			Name:    name,
			Path:    filepath.Join(dir, name),
			Symlink: de.IsSymlink(),
		}
		info, err := os.Stat(e.Path)
		if err != nil {
			e.StatErr = &WalkError{Kind: StatError, Path: e.Path, Err: err}
		} else {
			e.Info = info
		}
		if filter.Ignored(e.Path, e.IsDir()) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// dirFrame is one directory on a walker's explicit stack.
type dirFrame struct {
	path   string
	real   string // symlink-free location, used for cycle detection
	depth  int    // depth of this directory's entries, 0 for the root
	parent *dirFrame
}

func rootFrame(root string) *dirFrame {
	real, err := filepath.EvalSymlinks(root)
	if err != nil {
		real = root
	}
	return &dirFrame{path: root, real: real}
}

// child returns the frame for the directory entry e. It refuses symlinked
// directories that resolve to an ancestor and nesting beyond MaxWalkDepth.
func (f *dirFrame) child(e Entry) (*dirFrame, error) {
	if f.depth+1 >= MaxWalkDepth {
		return nil, &WalkError{Kind: ReadError, Path: e.Path, Err: ErrDepthCeiling}
	}
	real := filepath.Join(f.real, e.Name)
	if e.Symlink {
		resolved, err := filepath.EvalSymlinks(e.Path)
		if err != nil {
			return nil, &WalkError{Kind: StatError, Path: e.Path, Err: err}
		}
		real = resolved
		for a := f; a != nil; a = a.parent {
			if a.real == real {
				return nil, &WalkError{Kind: ReadError, Path: e.Path, Err: ErrSymlinkCycle}
			}
		}
	}
	return &dirFrame{path: e.Path, real: real, depth: f.depth + 1, parent: f}, nil
}

// newWalkFilter builds the filter for a walk rooted at root, loading the
// gitignore rules when requested.
func newWalkFilter(root string, opts WalkOptions, logger *zap.Logger) *PathFilter {
	filter := NewPathFilter(opts)
	if opts.UseGitignore {
		if err := filter.LoadGitignore(root); err != nil {
			logger.Warn("could not load .gitignore", zap.String("root", root), zap.Error(err))
		}
	}
	return filter
}
