package bdat

import "math"

// serializeLegacy writes a single table in the legacy dialect, producing
// the exact section layout the reader expects: header, column
// descriptors, hash table, packed rows (each footed with a hash-chain
// pointer), name region and string heap — the last two XOR-scrambled
// last if the caller requests it.
func serializeLegacy(t *Table, scrambled bool, checksum uint16) ([]byte, error) {
	if t.Dialect != Legacy {
		return nil, errUnsupportedDialect("serializeLegacy: table is " + t.Dialect.String())
	}
	if len(t.Columns) > math.MaxUint16 {
		return nil, errMalformedHeader("serializeLegacy: too many columns", nil)
	}

	offsets := legacyColumnOffsets(t.Columns)
	var rowWidth uint32
	for _, col := range t.Columns {
		rowWidth += legacyColumnWidth(col)
	}
	rowLength := rowWidth + legacyRowFooterSize
	if rowLength > math.MaxUint16 {
		return nil, errMalformedHeader("serializeLegacy: row too wide", nil)
	}

	names := newStringHeap(true)
	strings := newStringHeap(true)

	// The table's own name is always interned first, landing at relative
	// offset 0 in the name region; parseLegacy relies on that
	// convention instead of a dedicated header field.
	if _, err := names.intern(t.Name); err != nil {
		return nil, err
	}

	columnsBuf := newEncoder()
	if err := writeLegacyColumns(columnsBuf, t.Columns, names); err != nil {
		return nil, err
	}

	rowsBuf := newEncoder()
	for i, row := range t.Rows {
		if err := writeLegacyRow(rowsBuf, uint32(i)*rowLength, t.Columns, offsets, row, names, strings); err != nil {
			return nil, err
		}
		if uint32(len(rowsBuf.buf)) != uint32(i+1)*rowLength-legacyRowFooterSize {
			return nil, errMalformedHeader("serializeLegacy: row layout mismatch", nil)
		}
		rowsBuf.putU32(legacyHashSentinel) // placeholder, patched below
	}

	bucketLen := nextPow2(uint32(len(t.Rows)))

	h := legacyHeader{
		magic:           BdatMagic,
		columnCount:     uint16(len(t.Columns)),
		rowLength:       uint16(rowLength),
		rowCount:        uint32(len(t.Rows)),
		baseID:          t.BaseID,
		hashBucketCount: bucketLen,
		checksum:        uint32(checksum),
	}
	if scrambled {
		h.flags |= legacyFlagScrambled
	}

	pos := uint32(legacyHeaderSize)
	h.columnsOffset = pos
	pos += columnsBuf.len()
	h.hashTableOffset = pos
	pos += bucketLen * 4
	h.rowsOffset = pos
	pos += uint32(len(rowsBuf.buf))

	h.nameOffset = pos
	pos += names.len()
	h.stringOffset = pos
	h.stringLength = strings.len()
	pos += strings.len()

	// Bucket and chain-pointer values are file-absolute offsets, so the
	// hash table can only be built once h.rowsOffset is known.
	ht := buildLegacyHashTable(t.Rows, h.rowsOffset, rowLength)
	for i, next := range ht.nextPtrs {
		footerOffset := uint32(i)*rowLength + rowWidth
		rowsBuf.putU32At(footerOffset, next)
	}

	hashBuf := newEncoder()
	writeLegacyHashTable(hashBuf, ht)

	out := newEncoder()
	writeLegacyHeader(out, h)
	out.putBytes(columnsBuf.bytes())
	out.putBytes(hashBuf.bytes())
	out.putBytes(rowsBuf.bytes())

	nameBytes := append([]byte(nil), names.bytes()...)
	stringBytes := append([]byte(nil), strings.bytes()...)
	if scrambled {
		scramble(nameBytes, checksum)
		scramble(stringBytes, checksum)
	}
	out.putBytes(nameBytes)
	out.putBytes(stringBytes)

	return out.bytes(), nil
}
