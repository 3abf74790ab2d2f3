package repotree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopFilesKeepsLargest(t *testing.T) {
	top := NewTopFiles(LargestFilesRetention)
	r := rand.New(rand.NewSource(1))
	for _, i := range r.Perm(100) {
		top.Add(FileSize{Path: fmt.Sprintf("f%03d", i), Size: int64(i)})
		assert.LessOrEqual(t, top.Len(), LargestFilesRetention)
	}

	got := top.Top(LargestFilesDisplay)
	require.Len(t, got, LargestFilesDisplay)
	for i, f := range got {
		assert.Equal(t, int64(99-i), f.Size)
	}
}

func TestTopFilesTies(t *testing.T) {
	top := NewTopFiles(3)
	top.Add(FileSize{Path: "c", Size: 1})
	top.Add(FileSize{Path: "b", Size: 1})
	top.Add(FileSize{Path: "a", Size: 1})
	top.Add(FileSize{Path: "d", Size: 2})

	assert.Equal(t, []FileSize{{"d", 2}, {"a", 1}, {"b", 1}}, top.Top(-1))
}

func TestTopFilesMerge(t *testing.T) {
	left, right := NewTopFiles(2), NewTopFiles(2)
	left.Add(FileSize{Path: "x", Size: 5})
	left.Add(FileSize{Path: "y", Size: 1})
	right.Add(FileSize{Path: "z", Size: 9})
	left.Merge(right)
	left.Merge(nil)

	assert.Equal(t, []FileSize{{"z", 9}, {"x", 5}}, left.Top(10))
}

func TestTopFilesEmpty(t *testing.T) {
	top := NewTopFiles(0)
	assert.Empty(t, top.Top(LargestFilesDisplay))
	top.Add(FileSize{Path: "only", Size: 3})
	top.Add(FileSize{Path: "bigger", Size: 4})
	assert.Equal(t, 1, top.Len())
}
