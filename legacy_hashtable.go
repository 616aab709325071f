package bdat

// legacyHashSentinel marks an empty bucket or the end of a collision
// chain in the on-disk hash table / row footers.
const legacyHashSentinel uint32 = 0xFFFFFFFF

// nextPow2 returns the smallest power of two >= n, at least 1. The real
// game runtime's exact bucket-count rounding rule is an open question
// (spec.md §9); this is our resolution, documented in DESIGN.md.
func nextPow2(n uint32) uint32 {
	if n <= 1 {
		return 1
	}
	p := uint32(1)
	for p < n {
		p <<= 1
	}
	return p
}

// legacyHashTable is the writer-side layout of the bucket array plus the
// per-row chain pointers that get embedded in each row's footer.
type legacyHashTable struct {
	buckets   []uint32 // bucketCount entries, each a file offset or sentinel
	nextPtrs  []uint32 // one per row, each a file offset or sentinel
	bucketLen uint32
}

// buildLegacyHashTable buckets every row by (row ID mod bucketCount),
// chaining collisions through a per-row next-pointer.
func buildLegacyHashTable(rows []Row, rowsOffset, rowLength uint32) legacyHashTable {
	bucketCount := nextPow2(uint32(len(rows)))
	ht := legacyHashTable{
		buckets:   make([]uint32, bucketCount),
		nextPtrs:  make([]uint32, len(rows)),
		bucketLen: bucketCount,
	}
	for i := range ht.buckets {
		ht.buckets[i] = legacyHashSentinel
	}
	for i := range ht.nextPtrs {
		ht.nextPtrs[i] = legacyHashSentinel
	}

	tail := make([]int, bucketCount)
	for i := range tail {
		tail[i] = -1
	}

	for i, row := range rows {
		bucket := row.ID % bucketCount
		rowOffset := rowsOffset + uint32(i)*rowLength
		if tail[bucket] == -1 {
			ht.buckets[bucket] = rowOffset
		} else {
			ht.nextPtrs[tail[bucket]] = rowOffset
		}
		tail[bucket] = i
	}
	return ht
}

func writeLegacyHashTable(e *encoder, ht legacyHashTable) {
	for _, b := range ht.buckets {
		e.putU32(b)
	}
}

// lookupLegacyRowOffset walks the on-disk hash table starting at
// hashTableOffset to find the row whose ID matches key, returning the
// row's file offset. Row IDs are positional (baseID + index), so a
// candidate row's ID is recovered from its offset without re-reading any
// column bytes.
func lookupLegacyRowOffset(buf []byte, hashTableOffset, bucketCount uint32,
	rowsOffset, rowLength, baseID uint32, key uint32) (uint32, bool, error) {

	if bucketCount == 0 {
		return 0, false, nil
	}
	bucket := key % bucketCount
	c := newCursor(buf)
	c.seek(hashTableOffset + bucket*4)
	rowOffset, err := c.u32()
	if err != nil {
		return 0, false, err
	}

	for rowOffset != legacyHashSentinel {
		if rowOffset < rowsOffset || (rowOffset-rowsOffset)%rowLength != 0 {
			return 0, false, errInvalidOffset("legacy hash chain: misaligned row offset", nil)
		}
		index := (rowOffset - rowsOffset) / rowLength
		if baseID+index == key {
			return rowOffset, true, nil
		}

		footer := newCursor(buf)
		footer.seek(rowOffset + rowLength - legacyRowFooterSize)
		next, err := footer.u32()
		if err != nil {
			return 0, false, err
		}
		rowOffset = next
	}
	return 0, false, nil
}
