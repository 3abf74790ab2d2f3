// Package clone fetches a remote git repository into a local directory that
// the report walkers can then read.
package clone

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// lockRetryDelay is how often a busy target lock is retried.
const lockRetryDelay = 200 * time.Millisecond

// ErrEmptyURL is returned when no repository URL is given.
var ErrEmptyURL = errors.New("clone: repository URL is empty")

// Options configures a clone.
type Options struct {
	URL      string      // Repository URL
	Dir      string      // Target directory, derived from URL when empty
	Branch   string      // Branch to check out, default branch when empty
	Depth    int         // Shallow clone depth, 0 for full history
	Progress io.Writer   // Optional sink for remote progress messages
	Logger   *zap.Logger // Optional logger, nil discards
}

// IsGitURL reports whether input looks like a remote git repository rather
// than a local path.
func IsGitURL(input string) bool {
	s := strings.TrimSpace(input)
	switch {
	case strings.HasPrefix(s, "git@"),
		strings.HasPrefix(s, "ssh://"),
		strings.HasPrefix(s, "git://"):
		return true
	case strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "http://"):
		return true
	}
	return strings.HasSuffix(s, ".git") && !isLocalDir(s)
}

func isLocalDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// DefaultDir derives the clone directory name from a repository URL,
// e.g. "https://github.com/org/tool.git" -> "tool".
func DefaultDir(url string) string {
	s := strings.TrimRight(strings.TrimSpace(url), "/")
	s = strings.TrimSuffix(s, ".git")
	if i := strings.LastIndexAny(s, "/:"); i >= 0 {
		s = s[i+1:]
	}
	if s == "" || s == "." || s == ".." {
		return "repository"
	}
	return s
}

// Repository clones opts.URL into opts.Dir and returns the absolute clone
// directory. An existing target directory is removed first; a failed clone
// leaves no directory behind. Concurrent clones into the same target are
// serialised with a lock file next to it.
func Repository(ctx context.Context, opts Options) (string, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return "", ErrEmptyURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dir := opts.Dir
	if dir == "" {
		dir = DefaultDir(opts.URL)
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("clone: resolve target %q: %w", opts.Dir, err)
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return "", fmt.Errorf("clone: create parent of %s: %w", dir, err)
	}

	lock := flock.New(dir + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("clone: lock %s: %w", dir, err)
	}
	if !locked {
		return "", fmt.Errorf("clone: target %s is locked by another process", dir)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(dir + ".lock")
	}()

	if err := resetDir(dir); err != nil {
		return "", err
	}

	cloneOpts := &git.CloneOptions{
		URL:      opts.URL,
		Depth:    opts.Depth,
		Progress: opts.Progress,
	}
	if opts.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
		cloneOpts.SingleBranch = true
	}

	logger.Info("cloning repository", zap.String("url", opts.URL), zap.String("dir", dir),
		zap.String("branch", opts.Branch), zap.Int("depth", opts.Depth))
	if _, err := git.PlainCloneContext(ctx, dir, false, cloneOpts); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("clone: %s: %w", opts.URL, err)
	}
	logger.Info("clone finished", zap.String("dir", dir))
	return dir, nil
}

// resetDir deletes dir if present and re-creates it empty.
func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clone: remove existing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("clone: create %s: %w", dir, err)
	}
	return nil
}
