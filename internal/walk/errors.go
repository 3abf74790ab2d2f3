package repotree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrorKind classifies failures reported by the walkers.
type ErrorKind int

const (
	InvalidInput  ErrorKind = iota // Missing or unusable root path
	NotFound                       // Root path does not exist
	NotADirectory                  // Root path is not a directory
	ReadError                      // Directory listing or file read failed
	StatError                      // Entry metadata lookup failed
	WriteError                     // Output artifact could not be written
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case NotFound:
		return "not found"
	case NotADirectory:
		return "not a directory"
	case ReadError:
		return "read error"
	case StatError:
		return "stat error"
	case WriteError:
		return "write error"
	default:
		return fmt.Sprintf("error kind %d", int(k))
	}
}

var (
	// ErrSymlinkCycle marks a symlinked directory that resolves to one of its ancestors.
	ErrSymlinkCycle = errors.New("symlink cycle")
	// ErrDepthCeiling marks a directory nested deeper than MaxWalkDepth.
	ErrDepthCeiling = errors.New("maximum walk depth exceeded")
	// ErrNotText marks file content that is binary or not valid UTF-8.
	ErrNotText = errors.New("binary or non-UTF-8 content")
)

// WalkError is the error type returned by every walker.
type WalkError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first WalkError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var werr *WalkError
	if errors.As(err, &werr) {
		return werr.Kind, true
	}
	return 0, false
}

// cause returns the short form of err used for inline annotations.
func cause(err error) string {
	var werr *WalkError
	if errors.As(err, &werr) && werr.Err != nil {
		return werr.Err.Error()
	}
	return err.Error()
}

// ValidateRoot checks that root names an existing directory and returns its
// absolute, cleaned form.
func ValidateRoot(root string) (string, error) {
	if root == "" {
		return "", &WalkError{Kind: InvalidInput, Path: root, Err: errors.New("path must be a non-empty string")}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &WalkError{Kind: InvalidInput, Path: root, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &WalkError{Kind: NotFound, Path: abs, Err: errors.New("path does not exist")}
		}
		return "", &WalkError{Kind: StatError, Path: abs, Err: err}
	}
	if !info.IsDir() {
		return "", &WalkError{Kind: NotADirectory, Path: abs, Err: errors.New("path is not a directory")}
	}
	return abs, nil
}

// WalkResult reports the outcome of a tree render. Success is false when any
// subtree failed; Err then joins every isolated failure. A failure at the
// root leaves Success false and Err set to the single root error.
type WalkResult struct {
	Success bool
	Err     error
}

func newWalkResult(errs []error) WalkResult {
	return WalkResult{Success: len(errs) == 0, Err: errors.Join(errs...)}
}

// Result is returned by the exported report operations. FilePath is only set
// when an artifact was written.
type Result struct {
	Success  bool
	FilePath string
	Err      error
	Stats    *Stats
	Counts   *ContentCounts
}

func failed(err error) Result {
	return Result{Err: err}
}
