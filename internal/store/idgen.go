package store

import "strconv"

// NextID derives a fresh id for a collection from the ids already present:
// one more than the numeric maximum, or 1 for an empty collection. Ids that
// do not parse as integers are skipped rather than rejected.
//
// The allocator is advisory. Two writers allocating against the same
// snapshot can derive the same id; at single-clinic scale the store's
// single-writer discipline makes that acceptable, and the limitation is
// pinned down in tests.
func NextID(existing []string) int {
	max := 0
	for _, id := range existing {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}

// NextIDString is NextID formatted as the decimal string stored in records.
func NextIDString(existing []string) string {
	return strconv.Itoa(NextID(existing))
}
