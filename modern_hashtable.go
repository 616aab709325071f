package bdat

// modernHashSentinel marks an empty bucket or the end of a collision
// chain, matching the legacy dialect's convention.
const modernHashSentinel uint32 = 0xFFFFFFFF

// modernRowFooterSize reserves trailing bytes in every modern row for the
// hash-table collision chain's next-row pointer, the same scheme
// legacy_hashtable.go uses.
const modernRowFooterSize = 4

// modernHashTable is the writer-side layout of a per-table bucket array
// plus the per-row chain pointers embedded in each row's footer.
type modernHashTable struct {
	buckets   []uint32
	nextPtrs  []uint32
	bucketLen uint32
}

// buildModernHashTable buckets every row by (labelHash mod bucketCount),
// chaining collisions through a per-row next-pointer, the same scheme the
// legacy dialect uses keyed by row ID instead of label hash.
func buildModernHashTable(rows []Row, rowsOffset, rowSize uint32) modernHashTable {
	bucketCount := nextPow2(uint32(len(rows)))
	ht := modernHashTable{
		buckets:   make([]uint32, bucketCount),
		nextPtrs:  make([]uint32, len(rows)),
		bucketLen: bucketCount,
	}
	for i := range ht.buckets {
		ht.buckets[i] = modernHashSentinel
	}
	for i := range ht.nextPtrs {
		ht.nextPtrs[i] = modernHashSentinel
	}

	tail := make([]int, bucketCount)
	for i := range tail {
		tail[i] = -1
	}

	for i, row := range rows {
		bucket := row.LabelHash % bucketCount
		rowOffset := rowsOffset + uint32(i)*rowSize
		if tail[bucket] == -1 {
			ht.buckets[bucket] = rowOffset
		} else {
			ht.nextPtrs[tail[bucket]] = rowOffset
		}
		tail[bucket] = i
	}
	return ht
}

func writeModernHashTable(e *encoder, ht modernHashTable) {
	for _, b := range ht.buckets {
		e.putU32(b)
	}
}

// lookupModernRowOffset walks the on-disk hash table to find the row
// whose label hash matches key, returning the row's offset within buf. Unlike
// the legacy dialect, a row's identity can't be recovered positionally,
// so the row's key-column cell must be re-read to confirm the match.
func lookupModernRowOffset(buf []byte, hashTableOffset, bucketCount uint32,
	rowsOffset, rowSize uint32, keyColumnOffset uint32, key uint32) (uint32, bool, error) {

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

	for rowOffset != modernHashSentinel {
		if rowOffset < rowsOffset || (rowOffset-rowsOffset)%rowSize != 0 {
			return 0, false, errInvalidOffset("modern hash chain: misaligned row offset", nil)
		}
		key2 := newCursor(buf)
		key2.seek(rowOffset + keyColumnOffset)
		candidate, err := key2.u32()
		if err != nil {
			return 0, false, err
		}
		if candidate == key {
			return rowOffset, true, nil
		}

		footer := newCursor(buf)
		footer.seek(rowOffset + rowSize - modernRowFooterSize)
		next, err := footer.u32()
		if err != nil {
			return 0, false, err
		}
		rowOffset = next
	}
	return 0, false, nil
}
