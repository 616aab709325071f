package bdat

// parseLegacy decodes a single legacy-dialect table starting at the
// beginning of buf. Callers that know a table's length up front may pass
// a sub-slice; parseLegacy never reads past what its offsets require.
func parseLegacy(buf []byte) (*Table, error) {
	h, err := readLegacyHeader(buf)
	if err != nil {
		return nil, err
	}

	nameRegionEnd := h.stringOffset
	if nameRegionEnd < h.nameOffset {
		return nil, errInvalidOffset("legacy header: string region precedes name region", nil)
	}
	if uint32(len(buf)) < nameRegionEnd {
		return nil, errInsufficientData("legacy name region", nil)
	}
	nameRegion := buf[h.nameOffset:nameRegionEnd]

	stringEnd := h.stringOffset + h.stringLength
	if uint32(len(buf)) < stringEnd {
		return nil, errInsufficientData("legacy string region", nil)
	}
	stringRegion := buf[h.stringOffset:stringEnd]

	if h.scrambled() {
		nameRegion = append([]byte(nil), nameRegion...)
		stringRegion = append([]byte(nil), stringRegion...)
		unscramble(nameRegion, uint16(h.checksum))
		unscramble(stringRegion, uint16(h.checksum))
	}

	cols, err := readLegacyColumns(buf, h.columnsOffset, h.columnCount, nameRegion)
	if err != nil {
		return nil, err
	}
	tableName, err := readHeapString(nameRegion, 0, true)
	if err != nil {
		return nil, err
	}

	offsets := legacyColumnOffsets(cols)

	rows := make([]Row, h.rowCount)
	for i := uint32(0); i < h.rowCount; i++ {
		rowOffset := h.rowsOffset + i*uint32(h.rowLength)
		row, err := readLegacyRow(buf, rowOffset, cols, offsets, h.baseID, i, stringRegion)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}

	t := &Table{
		Name:    tableName,
		Dialect: Legacy,
		Columns: cols,
		BaseID:  h.baseID,
		Rows:    rows,
	}

	return t, nil
}

// lookupLegacyRow finds a row by ID using the on-disk hash table instead
// of a linear scan, mirroring how the game engine resolves row references
// at runtime.
func lookupLegacyRow(buf []byte, key uint32) (Row, bool, error) {
	h, err := readLegacyHeader(buf)
	if err != nil {
		return Row{}, false, err
	}
	offset, ok, err := lookupLegacyRowOffset(buf, h.hashTableOffset, h.hashBucketCount,
		h.rowsOffset, uint32(h.rowLength), h.baseID, key)
	if err != nil || !ok {
		return Row{}, false, err
	}

	nameRegionEnd := h.stringOffset
	stringEnd := h.stringOffset + h.stringLength
	if uint32(len(buf)) < stringEnd || nameRegionEnd < h.nameOffset {
		return Row{}, false, errInsufficientData("legacy string region", nil)
	}
	stringRegion := buf[h.stringOffset:stringEnd]
	nameRegion := buf[h.nameOffset:nameRegionEnd]
	if h.scrambled() {
		stringRegion = append([]byte(nil), stringRegion...)
		nameRegion = append([]byte(nil), nameRegion...)
		unscramble(stringRegion, uint16(h.checksum))
		unscramble(nameRegion, uint16(h.checksum))
	}

	cols, err := readLegacyColumns(buf, h.columnsOffset, h.columnCount, nameRegion)
	if err != nil {
		return Row{}, false, err
	}
	offsets := legacyColumnOffsets(cols)
	index := (offset - h.rowsOffset) / uint32(h.rowLength)
	row, err := readLegacyRow(buf, offset, cols, offsets, h.baseID, index, stringRegion)
	if err != nil {
		return Row{}, false, err
	}
	return row, true, nil
}
