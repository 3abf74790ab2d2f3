package repotree

import (
	"bufio"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SummaryComposer combines the tree and the statistics of a directory into
// a single report file.
type SummaryComposer struct {
	opts         WalkOptions
	includeStats bool
	now          func() time.Time
}

// NewSummaryComposer returns a composer; includeStats adds the statistics block.
func NewSummaryComposer(opts WalkOptions, includeStats bool) *SummaryComposer {
	return &SummaryComposer{opts: opts, includeStats: includeStats, now: time.Now}
}

// Compose writes the summary of root to outputPath.
func (c *SummaryComposer) Compose(root, outputPath string) Result {
	logger := c.opts.logger()

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

	if _, err := fmt.Fprintf(w, "Repository summary: %s\nGenerated: %s\n\nDirectory structure:\n",
		abs, c.now().Format(time.RFC3339)); err != nil {
		return writeErr(err)
	}

	treeOpts := c.opts
	treeOpts.ShowSize = false
	sink := NewWriterSink(w)
	tree := NewTreeRenderer(treeOpts, sink).Render(abs)
	if err := sink.Err(); err != nil {
		return writeErr(err)
	}

	res := Result{Success: true, FilePath: out.Name(), Err: tree.Err}
	if c.includeStats {
		stats, err := NewStatsAggregator(c.opts).Aggregate(abs)
		if err != nil {
			return failed(err)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return writeErr(err)
		}
		if err := WriteStats(w, stats); err != nil {
			return writeErr(err)
		}
		res.Stats = stats
	}

	if err := w.Flush(); err != nil {
		return writeErr(err)
	}
	if err := out.Close(); err != nil {
		return writeErr(err)
	}
	logger.Info("summary written", zap.String("file", out.Name()), zap.Bool("stats", c.includeStats))
	return res
}
