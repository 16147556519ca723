package catalog

// Merge concatenates catalogs in input order. No deduplication or
// sorting is performed; downstream steps rely on insertion order
// (regular episodes before specials when merged in that order).
func Merge(lists ...[]Episode) []Episode {
	total := 0
	for _, list := range lists {
		total += len(list)
	}
	merged := make([]Episode, 0, total)
	for _, list := range lists {
		merged = append(merged, list...)
	}
	return merged
}
