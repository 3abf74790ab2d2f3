package repotree

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// EntryOrderer sorts siblings: directories first, then by name using a
// case-aware collation. Entries whose stat failed sort with the files.
// An EntryOrderer must not be shared between goroutines.
type EntryOrderer struct {
	collator *collate.Collator
}

// NewEntryOrderer returns an orderer collating names in English order.
func NewEntryOrderer() *EntryOrderer {
	return &EntryOrderer{collator: collate.New(language.English)}
}

// Sort orders entries in place. Equal entries keep their listing order.
func (o *EntryOrderer) Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].IsDir(), entries[j].IsDir()
		if di != dj {
			return di
		}
		return o.collator.CompareString(entries[i].Name, entries[j].Name) < 0
	})
}
