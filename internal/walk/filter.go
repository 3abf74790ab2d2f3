package repotree

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"golang.org/x/text/unicode/norm"
)

// PathFilter decides whether a directory entry is visible during a walk.
type PathFilter struct {
	showHidden bool
	exact      map[string]struct{}
	patterns   []*regexp.Regexp
	ignore     gitignore.IgnoreMatcher
}

// NewPathFilter builds a filter from the hidden-file policy and exclusion
// list in opts. Gitignore rules are added separately with LoadGitignore.
func NewPathFilter(opts WalkOptions) *PathFilter {
	f := &PathFilter{
		showHidden: opts.ShowHidden,
		exact:      make(map[string]struct{}, len(opts.Exclude)),
	}
	for _, pattern := range opts.Exclude {
		pattern = norm.NFC.String(pattern)
		if !strings.Contains(pattern, "*") {
			f.exact[pattern] = struct{}{}
			continue
		}
		re, err := wildcardPattern(pattern)
		if err != nil {
			// Never matches.
			continue
		}
		f.patterns = append(f.patterns, re)
	}
	return f
}

// wildcardPattern anchors pattern and turns each '*' into ".*"; every other
// character is matched literally.
func wildcardPattern(pattern string) (*regexp.Regexp, error) {
	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return regexp.Compile("^" + strings.Join(parts, ".*") + "$")
}

// Visible reports whether an entry called name passes the hidden-file and
// exclusion rules.
func (f *PathFilter) Visible(name string) bool {
	if !f.showHidden && strings.HasPrefix(name, ".") {
		return false
	}
	return !f.Excluded(name)
}

// Excluded reports whether name matches the exclusion list.
func (f *PathFilter) Excluded(name string) bool {
	name = norm.NFC.String(name)
	if _, ok := f.exact[name]; ok {
		return true
	}
	for _, re := range f.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// LoadGitignore adds the rules of root/.gitignore. A missing file is not an error.
func (f *PathFilter) LoadGitignore(root string) error {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	matcher, err := gitignore.NewGitIgnore(path, root)
	if err != nil {
		return err
	}
	f.ignore = matcher
	return nil
}

// Ignored reports whether the full path is matched by the loaded gitignore rules.
func (f *PathFilter) Ignored(path string, isDir bool) bool {
	if f.ignore == nil {
		return false
	}
	return f.ignore.Match(path, isDir)
}
