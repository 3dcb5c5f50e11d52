package model

// Stats describes what a merge did.
type Stats struct {
	Local    int // records in the local set
	Incoming int // records in the incoming set
	Merged   int // records in the result
	Added    int // incoming urls not previously present
	Updated  int // incoming records that replaced an existing entry
	Dropped  int // records without a url, from either side
}

// Merge reconciles the local (persisted) set with the incoming (browser)
// set. Records are keyed by url: local records are inserted first in order,
// then incoming records, each overwriting any entry with the same url while
// keeping that entry's position. Incoming always wins a collision. Records
// without a url cannot be identified and are left out of the result.
func Merge(local, incoming Set) Set {
	merged, _ := Reconcile(local, incoming)
	return merged
}

// Reconcile is Merge that also reports counts.
func Reconcile(local, incoming Set) (Set, Stats) {
	stats := Stats{Local: len(local), Incoming: len(incoming)}

	index := make(map[string]int, len(local)+len(incoming))
	merged := make(Set, 0, len(local)+len(incoming))

	put := func(b Bookmark) bool {
		url, ok := b.URL()
		if !ok {
			stats.Dropped++
			return false
		}
		if i, exists := index[url]; exists {
			merged[i] = b
			return true
		}
		index[url] = len(merged)
		merged = append(merged, b)
		return false
	}

	for _, b := range local {
		put(b)
	}
	for _, b := range incoming {
		_, ok := b.URL()
		if put(b) {
			stats.Updated++
		} else if ok {
			stats.Added++
		}
	}

	stats.Merged = len(merged)
	return merged, stats
}

// ImportMerge appends imported records whose url is not already present.
// Unlike Merge, existing records win: an import never rewrites what the
// browser last sent. Records without a url are dropped from both sides,
// matching Merge; only imported ones count as skipped.
func ImportMerge(local, imported Set) (merged Set, added, skipped int) {
	merged = make(Set, 0, len(local)+len(imported))

	seen := make(map[string]bool, len(local)+len(imported))
	for _, b := range local {
		url, ok := b.URL()
		if !ok || seen[url] {
			continue
		}
		seen[url] = true
		merged = append(merged, b)
	}

	for _, b := range imported {
		url, ok := b.URL()
		if !ok || seen[url] {
			skipped++
			continue
		}
		seen[url] = true
		merged = append(merged, b)
		added++
	}
	return merged, added, skipped
}
