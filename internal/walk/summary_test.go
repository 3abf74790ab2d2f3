package repotree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedComposer(opts WalkOptions, includeStats bool) *SummaryComposer {
	c := NewSummaryComposer(opts, includeStats)
	c.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return c
}

func TestComposeWithStats(t *testing.T) {
	root := scenarioDir(t)
	output := filepath.Join(filepath.Dir(root), "summary.txt")
	opts := DefaultWalkOptions()
	opts.ShowSize = true

	res := fixedComposer(opts, true).Compose(root, output)
	require.True(t, res.Success)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Stats)
	assert.Equal(t, 2, res.Stats.TotalFiles)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	base := filepath.Base(root)
	assert.Equal(t, "Repository summary: "+root+`
Generated: 2024-01-02T03:04:05Z

Directory structure:
`+base+`/
├── b/
│   └── c.js
└── a.txt

Statistics:
  Total files: 2
  Total directories: 1
  Total size: 18.00 B

File types:
  .js: 1 files (13.00 B)
  .txt: 1 files (5.00 B)

Largest files:
  1. b/c.js (13.00 B)
  2. a.txt (5.00 B)
`, string(data))
}

func TestComposeWithoutStats(t *testing.T) {
	root := scenarioDir(t)
	output := filepath.Join(t.TempDir(), "summary.txt")

	res := fixedComposer(DefaultWalkOptions(), false).Compose(root, output)
	require.True(t, res.Success)
	assert.Nil(t, res.Stats)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Statistics:")
	assert.True(t, strings.HasSuffix(string(data), "└── a.txt\n"))
}

// TestComposeSubtreeErrors checks a failure below the root still yields a summary.
func TestComposeSubtreeErrors(t *testing.T) {
	root := scenarioDir(t)
	if err := os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	output := filepath.Join(t.TempDir(), "summary.txt")

	res := fixedComposer(DefaultWalkOptions(), true).Compose(root, output)
	require.True(t, res.Success)
	assert.Error(t, res.Err)
	assert.Len(t, res.Stats.Errors, 1)
}

func TestComposeRootErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	output := filepath.Join(dir, "summary.txt")

	res := fixedComposer(DefaultWalkOptions(), true).Compose(file, output)
	assert.False(t, res.Success)
	kind, _ := KindOf(res.Err)
	assert.Equal(t, NotADirectory, kind)
	assert.NoFileExists(t, output)
}
