package bdat

// parseModern decodes every table in a modern-dialect file.
func parseModern(buf []byte) ([]*Table, error) {
	fh, err := readModernFileHeader(buf)
	if err != nil {
		return nil, err
	}

	tables := make([]*Table, len(fh.tableOffset))
	for i, sectionOffset := range fh.tableOffset {
		t, err := parseModernTable(buf, sectionOffset)
		if err != nil {
			return nil, err
		}
		tables[i] = t
	}
	return tables, nil
}

// parseModernTable decodes the table section starting at sectionOffset.
// Every offset in the table's own header is relative to sectionOffset,
// since a modern file packs many self-contained sections back to back.
func parseModernTable(buf []byte, sectionOffset uint32) (*Table, error) {
	h, err := readModernTableHeader(buf, sectionOffset)
	if err != nil {
		return nil, err
	}

	stringStart := sectionOffset + h.stringTableOffset
	stringEnd := stringStart + h.stringTableLength
	if uint32(len(buf)) < stringEnd {
		return nil, errInsufficientData("modern string table", nil)
	}
	stringHeap := buf[stringStart:stringEnd]
	labels := scanHeapLabels(stringHeap)

	cols, err := readModernColumns(buf, sectionOffset+h.columnsOffset, h.columnCount, uint32(h.rowSize)-modernRowFooterSize, labels)
	if err != nil {
		return nil, err
	}

	tableName, hasName := labels[h.nameHash]
	if !hasName {
		tableName = ""
	}

	keyIdx := -1
	for i, col := range cols {
		if col.Tag == HashRef {
			keyIdx = i
			break
		}
	}

	rowsOffset := sectionOffset + h.rowsOffset
	rows := make([]Row, h.rowCount)
	for i := uint32(0); i < h.rowCount; i++ {
		rowOffset := rowsOffset + i*uint32(h.rowSize)
		row, err := readModernRow(buf, rowOffset, cols, stringHeap, labels)
		if err != nil {
			return nil, err
		}
		if keyIdx >= 0 {
			row.LabelHash, _ = row.Cells[keyIdx].AsHash()
			row.HasLabel = true
			row.Label, _, _ = row.Cells[keyIdx].AsLabel()
		}
		rows[i] = row
	}

	return &Table{
		Name:     tableName,
		NameHash: h.nameHash,
		Dialect:  Modern,
		Columns:  cols,
		Rows:     rows,
	}, nil
}

// lookupModernRow finds a row by label hash in the table at sectionOffset
// using its on-disk hash table rather than a linear scan.
func lookupModernRow(buf []byte, sectionOffset uint32, key uint32) (Row, bool, error) {
	h, err := readModernTableHeader(buf, sectionOffset)
	if err != nil {
		return Row{}, false, err
	}

	stringStart := sectionOffset + h.stringTableOffset
	stringEnd := stringStart + h.stringTableLength
	if uint32(len(buf)) < stringEnd {
		return Row{}, false, errInsufficientData("modern string table", nil)
	}
	stringHeap := buf[stringStart:stringEnd]
	labels := scanHeapLabels(stringHeap)

	cols, err := readModernColumns(buf, sectionOffset+h.columnsOffset, h.columnCount, uint32(h.rowSize)-modernRowFooterSize, labels)
	if err != nil {
		return Row{}, false, err
	}
	keyIdx := -1
	for i, col := range cols {
		if col.Tag == HashRef {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		return Row{}, false, errInvalidOffset("modern table has no key column", nil)
	}

	// Bucket entries and chain pointers are section-relative, so the walk
	// runs over the section's own bytes.
	section := buf[sectionOffset:]
	offset, ok, err := lookupModernRowOffset(section, h.hashTableOffset, h.hashBucketCount,
		h.rowsOffset, uint32(h.rowSize), cols[keyIdx].Offset, key)
	if err != nil || !ok {
		return Row{}, false, err
	}

	row, err := readModernRow(section, offset, cols, stringHeap, labels)
	if err != nil {
		return Row{}, false, err
	}
	return row, true, nil
}
