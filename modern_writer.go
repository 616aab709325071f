package bdat

import "math"

// serializeModern writes one or more modern-dialect tables into a single
// file: an outer header carrying a directory of per-table sections,
// followed by the sections themselves in order.
func serializeModern(tables []*Table) ([]byte, error) {
	if len(tables) > math.MaxUint16 {
		return nil, errMalformedHeader("serializeModern: too many tables", nil)
	}
	for _, t := range tables {
		if t.Dialect != Modern {
			return nil, errUnsupportedDialect("serializeModern: table is " + t.Dialect.String())
		}
	}

	sections := make([][]byte, len(tables))
	for i, t := range tables {
		sec, err := serializeModernTable(t)
		if err != nil {
			return nil, err
		}
		sections[i] = sec
	}

	out := newEncoder()
	writeModernFileHeader(out, uint16(len(tables)))

	for _, sec := range sections {
		out.putBytes(sec)
	}

	// Back-patch the offset table now that every section's absolute
	// position is known.
	offset := modernFileHeaderBase
	running := uint32(modernFileHeaderBase) + uint32(len(tables))*4
	for _, sec := range sections {
		out.putU32At(uint32(offset), running)
		offset += 4
		running += uint32(len(sec))
	}

	return out.bytes(), nil
}

// serializeModernTable writes one table's self-contained section: header,
// columns, rows, hash table, string heap.
func serializeModernTable(t *Table) ([]byte, error) {
	cols, err := layoutModernColumns(t.Columns)
	if err != nil {
		return nil, err
	}
	rowWidth := modernRowSize(cols)
	rowSize := rowWidth + modernRowFooterSize
	if rowSize > math.MaxUint16 {
		return nil, errMalformedHeader("serializeModernTable: row too wide", nil)
	}

	strings := newStringHeap(false)
	for _, col := range cols {
		if _, err := strings.intern(col.Name); err != nil {
			return nil, err
		}
	}

	columnsBuf := newEncoder()
	if err := writeModernColumns(columnsBuf, cols, rowWidth); err != nil {
		return nil, err
	}

	rowsBuf := newEncoder()
	for i, row := range t.Rows {
		if err := writeModernRow(rowsBuf, uint32(i)*rowSize, cols, row, strings); err != nil {
			return nil, err
		}
		if uint32(len(rowsBuf.buf)) != uint32(i+1)*rowSize-modernRowFooterSize {
			return nil, errMalformedHeader("serializeModernTable: row layout mismatch", nil)
		}
		rowsBuf.putU32(modernHashSentinel) // placeholder, patched below
	}

	h := modernTableHeader{
		magic:       BdatMagic,
		nameHash:    LabelHash(t.Name),
		columnCount: uint16(len(cols)),
		rowSize:     uint16(rowSize),
		rowCount:    uint32(len(t.Rows)),
	}

	pos := uint32(modernTableHeaderSize)
	h.columnsOffset = pos
	pos += columnsBuf.len()
	h.hashTableOffset = pos
	bucketLen := nextPow2(uint32(len(t.Rows)))
	pos += bucketLen * 4
	h.hashBucketCount = bucketLen
	h.rowsOffset = pos
	pos += uint32(len(rowsBuf.buf))
	h.stringTableOffset = pos
	h.stringTableLength = strings.len()

	ht := buildModernHashTable(t.Rows, h.rowsOffset, rowSize)
	for i, next := range ht.nextPtrs {
		footerOffset := uint32(i)*rowSize + rowWidth
		rowsBuf.putU32At(footerOffset, next)
	}
	hashBuf := newEncoder()
	writeModernHashTable(hashBuf, ht)

	out := newEncoder()
	writeModernTableHeader(out, h)
	out.putBytes(columnsBuf.bytes())
	out.putBytes(hashBuf.bytes())
	out.putBytes(rowsBuf.bytes())
	out.putBytes(strings.bytes())

	return out.bytes(), nil
}
