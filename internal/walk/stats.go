package repotree

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// NoExtension is the file type bucket for files without an extension.
const NoExtension = "(no extension)"

// TypeStats holds statistics for a file type
type TypeStats struct {
	Count     int   `json:"count" yaml:"count"`
	TotalSize int64 `json:"total_size" yaml:"total_size"`
}

// FileTypeStats maps a lowercase extension to its statistics.
type FileTypeStats map[string]TypeStats

// TypeCount is one row of a sorted file type breakdown.
type TypeCount struct {
	Extension string `json:"extension" yaml:"extension"`
	TypeStats `yaml:",inline"`
}

func (f FileTypeStats) add(ext string, count int, size int64) {
	s := f[ext]
	s.Count += count
	s.TotalSize += size
	f[ext] = s
}

// Sorted returns the breakdown by count descending, then by extension.
func (f FileTypeStats) Sorted() []TypeCount {
	rows := make([]TypeCount, 0, len(f))
	for ext, s := range f {
		rows = append(rows, TypeCount{Extension: ext, TypeStats: s})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Extension < rows[j].Extension
	})
	return rows
}

// fileType returns the bucket for a file name.
func fileType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return NoExtension
	}
	return ext
}

// Stats is the aggregate of one statistics walk. Errors lists the failures
// that were tolerated below the root.
type Stats struct {
	Root             string
	TotalFiles       int
	TotalDirectories int
	TotalSize        int64
	FileTypes        FileTypeStats
	LargestFiles     *TopFiles
	Errors           []error
}

func newStats() *Stats {
	return &Stats{
		FileTypes:    make(FileTypeStats),
		LargestFiles: NewTopFiles(LargestFilesRetention),
	}
}

// merge folds a finished subtree into s.
func (s *Stats) merge(o *Stats) {
	s.TotalFiles += o.TotalFiles
	s.TotalDirectories += o.TotalDirectories
	s.TotalSize += o.TotalSize
	for ext, ts := range o.FileTypes {
		s.FileTypes.add(ext, ts.Count, ts.TotalSize)
	}
	s.LargestFiles.Merge(o.LargestFiles)
	s.Errors = append(s.Errors, o.Errors...)
}

// StatsReport is the serialisable form of Stats.
type StatsReport struct {
	Root             string      `json:"root" yaml:"root"`
	TotalFiles       int         `json:"total_files" yaml:"total_files"`
	TotalDirectories int         `json:"total_directories" yaml:"total_directories"`
	TotalSize        int64       `json:"total_size" yaml:"total_size"`
	FileTypes        []TypeCount `json:"file_types" yaml:"file_types"`
	LargestFiles     []FileSize  `json:"largest_files" yaml:"largest_files"`
	Errors           []string    `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Report returns the sorted breakdown with the top display largest files.
func (s *Stats) Report(display int) StatsReport {
	r := StatsReport{
		Root:             s.Root,
		TotalFiles:       s.TotalFiles,
		TotalDirectories: s.TotalDirectories,
		TotalSize:        s.TotalSize,
		FileTypes:        s.FileTypes.Sorted(),
		LargestFiles:     s.LargestFiles.Top(display),
	}
	for _, err := range s.Errors {
		r.Errors = append(r.Errors, err.Error())
	}
	return r
}

// StatsAggregator walks a directory accumulating counts, sizes, a per-type
// breakdown and the largest files.
type StatsAggregator struct {
	opts WalkOptions
}

// NewStatsAggregator returns an aggregator using the filtering and depth
// rules of opts.
func NewStatsAggregator(opts WalkOptions) *StatsAggregator {
	return &StatsAggregator{opts: opts}
}

type statsFrame struct {
	dir     *dirFrame
	entries []Entry
	next    int
	stats   *Stats
}

// Aggregate walks root. Only an invalid root is returned as an error;
// failures below it are tolerated and listed in Stats.Errors.
func (a *StatsAggregator) Aggregate(root string) (*Stats, error) {
	logger := a.opts.logger()

	abs, err := ValidateRoot(root)
	if err != nil {
		return nil, err
	}
	logger.Debug("aggregating statistics", zap.String("root", abs))
	filter := newWalkFilter(abs, a.opts, logger)

	open := func(dir *dirFrame) *statsFrame {
		f := &statsFrame{dir: dir, stats: newStats()}
		entries, err := readEntries(dir.path, filter)
		if err != nil {
			f.stats.Errors = append(f.stats.Errors, &WalkError{Kind: ReadError, Path: dir.path, Err: err})
			return f
		}
		f.entries = entries
		return f
	}

	total := newStats()
	stack := []*statsFrame{open(rootFrame(abs))}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				stack[len(stack)-1].stats.merge(top.stats)
			} else {
				total.merge(top.stats)
			}
			continue
		}
		e := top.entries[top.next]
		top.next++

		if e.StatErr != nil {
			top.stats.Errors = append(top.stats.Errors, e.StatErr)
			continue
		}
		if e.IsDir() {
			top.stats.TotalDirectories++
			if !a.opts.descend(top.dir.depth) {
				continue
			}
			child, err := top.dir.child(e)
			if err != nil {
				top.stats.Errors = append(top.stats.Errors, err)
				continue
			}
			stack = append(stack, open(child))
			continue
		}

		size := e.Size()
		top.stats.TotalFiles++
		top.stats.TotalSize += size
		top.stats.FileTypes.add(fileType(e.Name), 1, size)
		rel, err := filepath.Rel(abs, e.Path)
		if err != nil {
			rel = e.Path
		}
		top.stats.LargestFiles.Add(FileSize{Path: filepath.ToSlash(rel), Size: size})
	}

	total.Root = abs
	if len(total.Errors) > 0 {
		logger.Warn("statistics incomplete", zap.String("root", abs), zap.Int("errors", len(total.Errors)))
	}
	logger.Debug("statistics aggregated", zap.String("root", abs),
		zap.Int("files", total.TotalFiles), zap.Int("directories", total.TotalDirectories),
		zap.Int64("bytes", total.TotalSize))
	return total, nil
}

// WriteStats formats s as the statistics block of a summary.
func WriteStats(w io.Writer, s *Stats) error {
	var b strings.Builder
	b.WriteString("Statistics:\n")
	fmt.Fprintf(&b, "  Total files: %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "  Total directories: %d\n", s.TotalDirectories)
	fmt.Fprintf(&b, "  Total size: %s\n", FormatSize(s.TotalSize))

	b.WriteString("\nFile types:\n")
	for _, row := range s.FileTypes.Sorted() {
		fmt.Fprintf(&b, "  %s: %d files (%s)\n", row.Extension, row.Count, FormatSize(row.TotalSize))
	}

	b.WriteString("\nLargest files:\n")
	for i, f := range s.LargestFiles.Top(LargestFilesDisplay) {
		fmt.Fprintf(&b, "  %d. %s (%s)\n", i+1, f.Path, FormatSize(f.Size))
	}

	if len(s.Errors) > 0 {
		fmt.Fprintf(&b, "\nSkipped due to errors: %d\n", len(s.Errors))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
