// Package position implements the ordering-key arithmetic shared by groups
// and tiles. Positions within a partition are a dense, gap-tolerant integer
// ordering: only relative order matters, except immediately after a full
// reorder, which reassigns 0..N-1.
package position

// Next returns the insertion position for a new row given the positions
// already present in the partition. Empty partitions start at 1 so that the
// first reorder still has room to assign 0 without a collision being
// meaningful (matching max+1 over an absent MAX, which yields 0+1).
func Next(existing []int) int {
	max := -1
	for _, p := range existing {
		if p > max {
			max = p
		}
	}
	if max < 0 {
		return 1
	}
	return max + 1
}

// Reindex maps each id in orderedIDs to its index, the position assigned by
// a full reorder submission.
func Reindex(orderedIDs []int64) map[int64]int {
	out := make(map[int64]int, len(orderedIDs))
	for i, id := range orderedIDs {
		out[id] = i
	}
	return out
}

// Clamp bounds a requested destination index to [0, n], where n is the
// partition size after removal of the moving row. Indexes past the end
// append.
func Clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}

// ShiftForInsert reports whether a row at position p must move up by one to
// open a slot at index.
func ShiftForInsert(p, index int) bool {
	return p >= index
}

// ShiftForRemove reports whether a row at position p must move down by one
// to close the slot left at index.
func ShiftForRemove(p, index int) bool {
	return p > index
}
