package repotree

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// ContentCounts tallies files written to and skipped from a content export.
type ContentCounts struct {
	Processed int `json:"processed" yaml:"processed"`
	Skipped   int `json:"skipped" yaml:"skipped"`
}

// Add returns the sum of c and o.
func (c ContentCounts) Add(o ContentCounts) ContentCounts {
	return ContentCounts{Processed: c.Processed + o.Processed, Skipped: c.Skipped + o.Skipped}
}

// ContentCollector appends the path and contents of every qualifying file
// below a directory to a single text artifact.
type ContentCollector struct {
	opts     WalkOptions
	out      io.Writer
	artifact string // absolute path of the artifact, never read back
	baseDir  string // record paths are relative to this directory
	exts     map[string]struct{}
	werr     error
}

// NewContentCollector returns a collector writing to out. artifactPath names
// the file out writes to: records are relative to its directory and the
// artifact itself is skipped if it lies inside the walked tree.
func NewContentCollector(out io.Writer, artifactPath string, opts WalkOptions) *ContentCollector {
	abs, err := filepath.Abs(artifactPath)
	if err != nil {
		abs = artifactPath
	}
	return &ContentCollector{
		opts:     opts,
		out:      out,
		artifact: abs,
		baseDir:  filepath.Dir(abs),
		exts:     opts.extensionSet(),
	}
}

// contentFrame is a directory being collected together with the counts of
// everything already processed below it.
type contentFrame struct {
	dir     *dirFrame
	entries []Entry
	next    int
	counts  ContentCounts
}

// Collect walks root in listing order. The caller has validated root and
// written the artifact header. Only a failure to write the artifact is
// returned as an error; everything else is recorded in the artifact.
func (c *ContentCollector) Collect(root string) (ContentCounts, error) {
	logger := c.opts.logger()
	filter := newWalkFilter(root, c.opts, logger)
	logger.Debug("collecting contents", zap.String("root", root), zap.String("artifact", c.artifact))

	open := func(dir *dirFrame) *contentFrame {
		entries, err := readEntries(dir.path, filter)
		if err != nil {
			logger.Warn("cannot read directory", zap.String("path", dir.path), zap.Error(err))
			c.printf("[Error reading directory %s: %v]\n%s\n\n", c.rel(dir.path), err, c.opts.separator())
			return nil
		}
		return &contentFrame{dir: dir, entries: entries}
	}

	var total ContentCounts
	var stack []*contentFrame
	if f := open(rootFrame(root)); f != nil {
		stack = append(stack, f)
	}

	for len(stack) > 0 && c.werr == nil {
		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.counts = parent.counts.Add(top.counts)
			} else {
				total = top.counts
			}
			continue
		}
		e := top.entries[top.next]
		top.next++

		switch {
		case e.StatErr != nil:
			logger.Warn("cannot stat entry", zap.String("path", e.Path), zap.Error(e.StatErr))
			c.printf("[Error reading %s: %s]\n%s\n\n", c.rel(e.Path), cause(e.StatErr), c.opts.separator())
		case e.IsDir():
			if !c.opts.descend(top.dir.depth) {
				continue
			}
			child, err := top.dir.child(e)
			if err != nil {
				logger.Warn("not descending", zap.String("path", e.Path), zap.Error(err))
				c.printf("[Error reading directory %s: %s]\n%s\n\n", c.rel(e.Path), cause(err), c.opts.separator())
				continue
			}
			if f := open(child); f != nil {
				stack = append(stack, f)
			}
		default:
			top.counts = top.counts.Add(c.collectFile(e))
		}
	}

	if c.werr != nil {
		return total, &WalkError{Kind: WriteError, Path: c.artifact, Err: c.werr}
	}
	logger.Debug("contents collected", zap.String("root", root),
		zap.Int("processed", total.Processed), zap.Int("skipped", total.Skipped))
	return total, nil
}

// collectFile writes the record or placeholder for a single file.
func (c *ContentCollector) collectFile(e Entry) ContentCounts {
	if e.Path == c.artifact {
		return ContentCounts{}
	}
	if c.exts != nil {
		if _, ok := c.exts[strings.ToLower(filepath.Ext(e.Name))]; !ok {
			return ContentCounts{Skipped: 1}
		}
	}

	rel := c.rel(e.Path)
	sep := c.opts.separator()
	if c.opts.MaxFileSize > 0 && e.Size() > c.opts.MaxFileSize {
		c.printf("File: %s\n[Skipped: file too large (%s)]\n%s\n\n", rel, FormatSize(e.Size()), sep)
		return ContentCounts{Skipped: 1}
	}

	content, err := os.ReadFile(e.Path)
	if err == nil && !isText(content) {
		err = ErrNotText
	}
	if err != nil {
		c.opts.logger().Debug("skipping unreadable file", zap.String("path", e.Path), zap.Error(err))
		c.printf("File: %s\n[Skipped: could not read file: %v]\n%s\n\n", rel, err, sep)
		return ContentCounts{Skipped: 1}
	}

	c.printf("File: %s\n\n%s\n%s\n\n", rel, content, sep)
	return ContentCounts{Processed: 1}
}

// isText rejects content with NUL bytes or invalid UTF-8.
func isText(content []byte) bool {
	return bytes.IndexByte(content, 0) < 0 && utf8.Valid(content)
}

func (c *ContentCollector) rel(path string) string {
	rel, err := filepath.Rel(c.baseDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (c *ContentCollector) printf(format string, args ...any) {
	if c.werr != nil {
		return
	}
	_, c.werr = fmt.Fprintf(c.out, format, args...)
}

// ExportContents writes the contents of every qualifying file below root to
// outputPath, framed by a header and a trailer with the final counts.
func ExportContents(root, outputPath string, opts WalkOptions) Result {
	abs, err := ValidateRoot(root)
	if err != nil {
		return failed(err)
	}
	out, err := createArtifact(outputPath)
	if err != nil {
		return failed(err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	writeErr := func(err error) Result {
		return failed(&WalkError{Kind: WriteError, Path: out.Name(), Err: err})
	}
	if _, err := fmt.Fprintf(w, "File contents from: %s\n%s\n\n", abs, opts.separator()); err != nil {
		return writeErr(err)
	}

	counts, err := NewContentCollector(w, out.Name(), opts).Collect(abs)
	if err != nil {
		return failed(err)
	}

	if _, err := fmt.Fprintf(w, "End of file contents\nTotal files processed: %d\nFiles skipped: %d\n",
		counts.Processed, counts.Skipped); err != nil {
		return writeErr(err)
	}
	if err := w.Flush(); err != nil {
		return writeErr(err)
	}
	if err := out.Close(); err != nil {
		return writeErr(err)
	}
	opts.logger().Info("contents exported", zap.String("file", out.Name()),
		zap.Int("processed", counts.Processed), zap.Int("skipped", counts.Skipped))
	return Result{Success: true, FilePath: out.Name(), Counts: &counts}
}
