package repotree

import (
	"bufio"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	connectorMid  = "├── "
	connectorLast = "└── "
	prefixMid     = "│   "
	prefixLast    = "    "
)

// TreeRenderer produces an indented, box-drawing tree for a directory.
type TreeRenderer struct {
	opts WalkOptions
	sink Sink
}

// NewTreeRenderer returns a renderer emitting to sink, or to a console sink
// on stdout when sink is nil.
func NewTreeRenderer(opts WalkOptions, sink Sink) *TreeRenderer {
	if sink == nil {
		sink = NewConsoleSink(os.Stdout)
	}
	return &TreeRenderer{opts: opts, sink: sink}
}

// treeFrame is a directory whose sorted entries are being emitted.
type treeFrame struct {
	dir     *dirFrame
	prefix  string
	entries []Entry
	next    int
}

// Render walks root and emits one line per visible entry. Failures below the
// root are annotated inline and reported through the result without
// stopping the walk.
func (r *TreeRenderer) Render(root string) WalkResult {
	logger := r.opts.logger()

	abs, err := ValidateRoot(root)
	if err != nil {
		logger.Debug("tree root rejected", zap.String("root", root), zap.Error(err))
		return WalkResult{Err: err}
	}
	logger.Debug("rendering tree", zap.String("root", abs), zap.Int("max_depth", r.opts.MaxDepth))

	filter := newWalkFilter(abs, r.opts, logger)
	orderer := NewEntryOrderer()
	var errs []error

	// open lists a directory and returns its frame, or nil when nothing
	// below it needs to be emitted.
	open := func(dir *dirFrame, prefix string) *treeFrame {
		entries, err := readEntries(dir.path, filter)
		if err != nil {
			werr := &WalkError{Kind: ReadError, Path: dir.path, Err: err}
			errs = append(errs, werr)
			logger.Warn("cannot read directory", zap.String("path", dir.path), zap.Error(err))
			r.sink.Line(StyleError, prefix+"[error reading directory: "+err.Error()+"]")
			return nil
		}
		if len(entries) == 0 {
			r.sink.Line(StyleMuted, prefix+"[empty]")
			return nil
		}
		orderer.Sort(entries)
		return &treeFrame{dir: dir, prefix: prefix, entries: entries}
	}

	r.sink.Line(StyleInfo, filepath.Base(abs)+string(filepath.Separator))

	var stack []*treeFrame
	if f := open(rootFrame(abs), ""); f != nil {
		stack = append(stack, f)
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		e := top.entries[top.next]
		top.next++

		connector, childPrefix := connectorMid, top.prefix+prefixMid
		if top.next == len(top.entries) {
			connector, childPrefix = connectorLast, top.prefix+prefixLast
		}
		line := top.prefix + connector + e.Name

		if e.StatErr != nil {
			errs = append(errs, e.StatErr)
			logger.Warn("cannot stat entry", zap.String("path", e.Path), zap.Error(e.StatErr))
			r.sink.Line(StyleError, line+" [error: "+cause(e.StatErr)+"]")
			continue
		}
		if !e.IsDir() {
			if r.opts.ShowSize {
				line += " (" + FormatSize(e.Size()) + ")"
			}
			r.sink.Line(StylePlain, line)
			continue
		}

		r.sink.Line(StyleDir, line+string(filepath.Separator))
		if !r.opts.descend(top.dir.depth) {
			continue
		}
		child, err := top.dir.child(e)
		if err != nil {
			errs = append(errs, err)
			logger.Warn("not descending", zap.String("path", e.Path), zap.Error(err))
			r.sink.Line(StyleError, childPrefix+"["+cause(err)+"]")
			continue
		}
		if f := open(child, childPrefix); f != nil {
			stack = append(stack, f)
		}
	}

	logger.Debug("tree rendered", zap.String("root", abs), zap.Int("errors", len(errs)))
	return newWalkResult(errs)
}

// ExportTree renders the tree of root into outputPath without colour.
func ExportTree(root, outputPath string, opts WalkOptions) Result {
	if _, err := ValidateRoot(root); err != nil {
		return failed(err)
	}
	out, err := createArtifact(outputPath)
	if err != nil {
		return failed(err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	sink := NewWriterSink(w)
	res := NewTreeRenderer(opts, sink).Render(root)
	if err := sink.Err(); err != nil {
		return failed(&WalkError{Kind: WriteError, Path: out.Name(), Err: err})
	}
	if err := w.Flush(); err != nil {
		return failed(&WalkError{Kind: WriteError, Path: out.Name(), Err: err})
	}
	return Result{Success: true, FilePath: out.Name(), Err: res.Err}
}

// createArtifact creates outputPath, and its parent directory if needed.
func createArtifact(outputPath string) (*os.File, error) {
	if outputPath == "" {
		return nil, &WalkError{Kind: InvalidInput, Path: outputPath, Err: os.ErrInvalid}
	}
	abs, err := filepath.Abs(outputPath)
	if err != nil {
		return nil, &WalkError{Kind: InvalidInput, Path: outputPath, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, &WalkError{Kind: WriteError, Path: abs, Err: err}
	}
	f, err := os.Create(abs)
	if err != nil {
		return nil, &WalkError{Kind: WriteError, Path: abs, Err: err}
	}
	return f, nil
}
