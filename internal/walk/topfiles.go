package repotree

import "sort"

const (
	// LargestFilesRetention is how many candidates a TopFiles keeps while accumulating.
	LargestFilesRetention = 20
	// LargestFilesDisplay is how many of the largest files a report shows.
	LargestFilesDisplay = 10
)

// FileSize is a file path with its size in bytes.
type FileSize struct {
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size" yaml:"size"`
}

// TopFiles keeps the largest files seen so far. It grows until it holds more
// than its limit, then re-sorts by size descending and drops the tail back to
// the limit. Any file in the true top-limit is therefore never evicted.
type TopFiles struct {
	limit int
	items []FileSize
}

// NewTopFiles returns an empty container retaining at most limit files.
func NewTopFiles(limit int) *TopFiles {
	if limit < 1 {
		limit = 1
	}
	return &TopFiles{limit: limit, items: make([]FileSize, 0, limit+1)}
}

// Add records a file, evicting the smallest candidates when over the limit.
func (t *TopFiles) Add(f FileSize) {
	t.items = append(t.items, f)
	if len(t.items) > t.limit {
		sortBySizeDesc(t.items)
		t.items = t.items[:t.limit]
	}
}

// Merge adds every candidate held by o.
func (t *TopFiles) Merge(o *TopFiles) {
	if o == nil {
		return
	}
	for _, f := range o.items {
		t.Add(f)
	}
}

// Len returns the number of retained candidates.
func (t *TopFiles) Len() int {
	return len(t.items)
}

// Top returns up to n files, largest first. Equal sizes are ordered by path.
func (t *TopFiles) Top(n int) []FileSize {
	out := make([]FileSize, len(t.items))
	copy(out, t.items)
	sortBySizeDesc(out)
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func sortBySizeDesc(files []FileSize) {
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Size != files[j].Size {
			return files[i].Size > files[j].Size
		}
		return files[i].Path < files[j].Path
	})
}
