// Package walk is the public API of repotree: tree rendering, content export,
// statistics and summaries over a local directory, plus cloning of remote
// repositories into one.
package walk

import (
	"context"

	"github.com/TFMV/repotree/internal/clone"
	internal "github.com/TFMV/repotree/internal/walk"
	"go.uber.org/zap"
)

// Re-export the types from the internal package
type (
	// WalkOptions configures filtering, depth and content limits of a walk.
	WalkOptions = internal.WalkOptions

	// WalkResult reports the outcome of a tree render.
	WalkResult = internal.WalkResult

	// Result reports the outcome of an export operation.
	Result = internal.Result

	// WalkError is the error type returned by every walker.
	WalkError = internal.WalkError

	// ErrorKind classifies a WalkError.
	ErrorKind = internal.ErrorKind

	// Stats is the aggregate of a statistics walk.
	Stats = internal.Stats

	// StatsReport is the serialisable form of Stats.
	StatsReport = internal.StatsReport

	// FileSize is a file path with its size in bytes.
	FileSize = internal.FileSize

	// ContentCounts tallies processed and skipped files of a content export.
	ContentCounts = internal.ContentCounts

	// Sink receives rendered tree lines.
	Sink = internal.Sink

	// SinkFunc adapts a function to Sink.
	SinkFunc = internal.SinkFunc

	// Style tags a rendered tree line.
	Style = internal.Style

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel

	// CloneOptions configures a repository clone.
	CloneOptions = clone.Options
)

// Re-export the constants
const (
	InvalidInput  = internal.InvalidInput
	NotFound      = internal.NotFound
	NotADirectory = internal.NotADirectory
	ReadError     = internal.ReadError
	StatError     = internal.StatError
	WriteError    = internal.WriteError

	StylePlain = internal.StylePlain
	StyleInfo  = internal.StyleInfo
	StyleDir   = internal.StyleDir
	StyleMuted = internal.StyleMuted
	StyleError = internal.StyleError

	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug

	DefaultMaxFileSize    = internal.DefaultMaxFileSize
	MaxWalkDepth          = internal.MaxWalkDepth
	LargestFilesDisplay   = internal.LargestFilesDisplay
	LargestFilesRetention = internal.LargestFilesRetention
)

// DefaultWalkOptions returns the options used when the caller has no opinion.
func DefaultWalkOptions() WalkOptions {
	return internal.DefaultWalkOptions()
}

// Tree writes the tree of root to sink, or to stdout when sink is nil.
func Tree(root string, opts WalkOptions, sink Sink) WalkResult {
	return internal.NewTreeRenderer(opts, sink).Render(root)
}

// ExportTree writes the tree of root to outputPath.
func ExportTree(root, outputPath string, opts WalkOptions) Result {
	return internal.ExportTree(root, outputPath, opts)
}

// ExportContents writes the contents of every qualifying file below root to outputPath.
func ExportContents(root, outputPath string, opts WalkOptions) Result {
	return internal.ExportContents(root, outputPath, opts)
}

// CollectStats walks root and returns its statistics.
func CollectStats(root string, opts WalkOptions) (*Stats, error) {
	return internal.NewStatsAggregator(opts).Aggregate(root)
}

// Summarize writes the tree of root, and its statistics when includeStats is
// set, to outputPath.
func Summarize(root, outputPath string, opts WalkOptions, includeStats bool) Result {
	return internal.NewSummaryComposer(opts, includeStats).Compose(root, outputPath)
}

// Clone clones a remote repository and returns the local directory.
func Clone(ctx context.Context, opts CloneOptions) (string, error) {
	return clone.Repository(ctx, opts)
}

// IsGitURL reports whether input names a remote repository rather than a local path.
func IsGitURL(input string) bool {
	return clone.IsGitURL(input)
}

// KindOf returns the kind of the first WalkError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	return internal.KindOf(err)
}

// FormatSize renders a byte count with two decimals and a binary unit.
func FormatSize(b int64) string {
	return internal.FormatSize(b)
}

// ParseSize parses sizes such as "512KB" or "1.5MB".
func ParseSize(s string) (int64, error) {
	return internal.ParseSize(s)
}

// NewLogger creates a logger with the given level.
func NewLogger(level LogLevel) *zap.Logger {
	return internal.NewLogger(level)
}
