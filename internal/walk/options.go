// Package repotree walks a checked-out repository and renders tree, content
// and statistics reports from a single bounded pass per report.
package repotree

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultMaxFileSize is the content export threshold used when none is configured.
const DefaultMaxFileSize int64 = 1024 * 1024

// MaxWalkDepth is the hard ceiling on directory nesting for every walker,
// regardless of WalkOptions.MaxDepth.
const MaxWalkDepth = 512

// DefaultSeparator closes every record in a content export.
var DefaultSeparator = strings.Repeat("=", 80)

// --------------------------------------------------------------------------
// Configuration types
// --------------------------------------------------------------------------

// WalkOptions configures a single walk. It is read-only for the duration of
// the walk; the recursion depth is tracked on the walker's own stack frames.
type WalkOptions struct {
	MaxDepth     int         // Maximum depth to descend, -1 for unlimited
	Exclude      []string    // Entry names or '*' patterns to hide
	ShowHidden   bool        // Include entries whose name starts with '.'
	ShowSize     bool        // Annotate files with their size (tree only)
	Extensions   []string    // Allowed extensions for content export, nil for all
	MaxFileSize  int64       // Files larger than this are not read, <= 0 disables the limit
	Separator    string      // Line written after every content record
	UseGitignore bool        // Also hide entries matched by the root .gitignore
	Logger       *zap.Logger // Optional logger, nil discards
}

// DefaultWalkOptions returns the options used when the caller has no opinion.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{
		MaxDepth:    -1,
		MaxFileSize: DefaultMaxFileSize,
		Separator:   DefaultSeparator,
	}
}

func (o WalkOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o WalkOptions) separator() string {
	if o.Separator == "" {
		return DefaultSeparator
	}
	return o.Separator
}

// descend reports whether a directory found at depth may be entered.
func (o WalkOptions) descend(depth int) bool {
	return o.MaxDepth < 0 || depth+1 <= o.MaxDepth
}

// extensionSet normalises the allow-list into lowercase ".ext" keys.
// A nil result means every extension is allowed.
func (o WalkOptions) extensionSet() map[string]struct{} {
	if o.Extensions == nil {
		return nil
	}
	set := make(map[string]struct{}, len(o.Extensions))
	for _, ext := range o.Extensions {
		cleaned := strings.ToLower(strings.TrimSpace(ext))
		if cleaned == "" {
			continue
		}
		if !strings.HasPrefix(cleaned, ".") {
			cleaned = "." + cleaned
		}
		set[cleaned] = struct{}{}
	}
	return set
}
