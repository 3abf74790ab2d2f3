package repotree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// setupLargeTestDir creates a wide directory structure for benchmarking
func setupLargeTestDir(b *testing.B) string {
	tempDir := b.TempDir()

	extensions := []string{".txt", ".go", ".md", ".json", ".yaml"}
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			subdirPath := filepath.Join(tempDir, fmt.Sprintf("dir%d", i), fmt.Sprintf("subdir%d", j))
			if err := os.MkdirAll(subdirPath, 0755); err != nil {
				b.Fatalf("Failed to create subdirectory: %v", err)
			}

			for k := 0; k < 10; k++ {
				for _, ext := range extensions {
					filePath := filepath.Join(subdirPath, fmt.Sprintf("file%d%s", k, ext))
					data := make([]byte, (k+1)*512)
					for n := range data {
						data[n] = 'a' + byte(n%26)
					}
					if err := os.WriteFile(filePath, data, 0644); err != nil {
						b.Fatalf("Failed to create file: %v", err)
					}
				}
			}
		}
	}
	return tempDir
}

// BenchmarkRender benchmarks rendering the tree of a large directory
func BenchmarkRender(b *testing.B) {
	tempDir := setupLargeTestDir(b)
	sink := NewWriterSink(io.Discard)

	b.Run("filepath.Walk", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
				return nil
			})
		}
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewTreeRenderer(DefaultWalkOptions(), sink).Render(tempDir)
	}
}

// BenchmarkAggregate benchmarks statistics collection
func BenchmarkAggregate(b *testing.B) {
	tempDir := setupLargeTestDir(b)
	agg := NewStatsAggregator(DefaultWalkOptions())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := agg.Aggregate(tempDir); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCollect benchmarks the content export with different extension filters
func BenchmarkCollect(b *testing.B) {
	tempDir := setupLargeTestDir(b)

	filters := []struct {
		name       string
		extensions []string
	}{
		{"AllFiles", nil},
		{"GoOnly", []string{".go"}},
	}
	for _, f := range filters {
		b.Run(f.name, func(b *testing.B) {
			opts := DefaultWalkOptions()
			opts.Extensions = f.extensions
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c := NewContentCollector(io.Discard, filepath.Join(b.TempDir(), "out.txt"), opts)
				if _, err := c.Collect(tempDir); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
