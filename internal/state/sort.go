package state

import (
	"sort"
	"strings"

	fsutil "github.com/kk-code-lab/dirpanel/internal/fs"
)

func (r *StateReducer) sortEntries(entries []fsutil.Entry, key SortKey, dir SortDirection) {
	sort.SliceStable(entries, func(i, j int) bool {
		return r.compareEntries(entries[i], entries[j], key, dir) < 0
	})
}

// compareEntries puts directories before files regardless of key and
// direction; only then does the key comparator, scaled by dir, apply.
func (r *StateReducer) compareEntries(a, b fsutil.Entry, key SortKey, dir SortDirection) int {
	if a.IsDir != b.IsDir {
		if a.IsDir {
			return -1
		}
		return 1
	}
	return r.compareByKey(a, b, key) * int(dir)
}

func (r *StateReducer) compareByKey(a, b fsutil.Entry, key SortKey) int {
	switch key {
	case SortBySize:
		return compareInt64(a.Size, b.Size)
	case SortByCreated:
		return compareInt64(a.CreatedMillis(), b.CreatedMillis())
	case SortByModified:
		return compareInt64(a.ModifiedMillis(), b.ModifiedMillis())
	default:
		return r.compareNames(a.Name, b.Name)
	}
}

func (r *StateReducer) compareNames(a, b string) int {
	if c := r.collator.CompareString(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
