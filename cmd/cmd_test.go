package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	repotree "github.com/TFMV/repotree/internal/walk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"main.go":              "package main\n",
		"README.md":            "# sample\n",
		"pkg/util/util.go":     "package util\n",
		"node_modules/x/y.js":  "module.exports = 1\n",
		".git/HEAD":            "ref: refs/heads/main\n",
		"docs/guide/intro.txt": "intro\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestStatsCommandJSON(t *testing.T) {
	root := sampleRepo(t)

	out, err := execute(t, "stats", "--max-depth", "-1", "--format", "json", "--output", "", root)
	require.NoError(t, err)

	var report repotree.StatsReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 4, report.TotalFiles)
	assert.Equal(t, 4, report.TotalDirectories)
	assert.Equal(t, ".go", report.FileTypes[0].Extension)
	assert.Equal(t, 2, report.FileTypes[0].Count)
}

func TestStatsCommandYAMLToFile(t *testing.T) {
	root := sampleRepo(t)
	output := filepath.Join(t.TempDir(), "stats.yaml")

	out, err := execute(t, "stats", "--max-depth", "-1", "--format", "yaml", "--output", output, root)
	require.NoError(t, err)
	assert.Contains(t, out, "Statistics saved to "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var report repotree.StatsReport
	require.NoError(t, yaml.Unmarshal(data, &report))
	assert.Equal(t, 4, report.TotalFiles)
	assert.Len(t, report.LargestFiles, 4)
}

func TestStatsCommandUnknownFormat(t *testing.T) {
	root := sampleRepo(t)
	_, err := execute(t, "stats", "--format", "xml", "--output", "", root)
	assert.ErrorContains(t, err, "unsupported format")
}

func TestTreeCommandToFile(t *testing.T) {
	root := sampleRepo(t)
	output := filepath.Join(t.TempDir(), "tree.txt")

	_, err := execute(t, "tree", "--max-depth", "1", "-o", output, root)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(root)+`/
├── docs/
│   └── guide/
├── pkg/
│   └── util/
├── main.go
└── README.md
`, string(data))
}

func TestContentsCommand(t *testing.T) {
	root := sampleRepo(t)
	output := filepath.Join(root, "dump.txt")

	out, err := execute(t, "contents", "--max-depth", "-1", "--extensions", "go", "-o", output, root)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 files, 2 skipped)")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "File: pkg/util/util.go\n\npackage util\n\n")
	assert.NotContains(t, string(data), "y.js")
}

func TestSummaryCommand(t *testing.T) {
	root := sampleRepo(t)
	output := filepath.Join(t.TempDir(), "summary.txt")

	_, err := execute(t, "summary", "--max-depth", "-1", "-o", output, root)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "Repository summary: "+root+"\n"))
	assert.Contains(t, text, "Total files: 4")
	assert.NotContains(t, text, "node_modules")
}

func TestInvalidRoot(t *testing.T) {
	_, err := execute(t, "stats", "--format", "text", "--output", "", filepath.Join(t.TempDir(), "missing"))
	kind, ok := repotree.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, repotree.NotFound, kind)
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, filepath.Join("reports", "project_contents.txt"),
		defaultOutput("reports", "/src/project", "_contents.txt"))
	assert.Equal(t, filepath.Join(".", "project_summary.txt"),
		defaultOutput(".", "/src/project/", "_summary.txt"))
}
