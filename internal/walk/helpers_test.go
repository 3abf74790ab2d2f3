package repotree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files below root. Keys ending in "/" are directories,
// every other key is a file holding the mapped content.
func writeTree(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// scenarioDir builds root/{a.txt, b/.hidden, b/c.js}.
func scenarioDir(t testing.TB) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt":     "hello",
		"b/.hidden": "secret",
		"b/c.js":    "console.log()",
	})
	return root
}

// lineSink records rendered lines.
type lineSink struct {
	lines  []string
	styles []Style
}

func (s *lineSink) Line(style Style, text string) {
	s.lines = append(s.lines, text)
	s.styles = append(s.styles, style)
}

func renderLines(t testing.TB, root string, opts WalkOptions) ([]string, WalkResult) {
	t.Helper()
	sink := &lineSink{}
	res := NewTreeRenderer(opts, sink).Render(root)
	return sink.lines, res
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}
