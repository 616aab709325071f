package bdat

// modernFileVersion is the only version word this codec emits and
// accepts. A future version bump would need a dispatch table; none
// exists yet, so an unrecognized version is MalformedHeader. Deliberately
// outside {0, 1}, the only values the legacy dialect's flags byte (at
// the same file offset) ever takes, so Parse's dialect sniff in bdat.go
// can't confuse a scrambled legacy table for a modern one.
const modernFileVersion uint16 = 3

// modernFileHeaderBase is the size, in bytes, of the fixed part of the
// outer file header, before the per-table offset array.
const modernFileHeaderBase = 8

// modernFileHeader is the outer envelope of a modern-dialect file: it
// carries no table data itself, only a directory of per-table sections.
type modernFileHeader struct {
	magic       uint32
	version     uint16
	tableCount  uint16
	tableOffset []uint32
}

func readModernFileHeader(buf []byte) (modernFileHeader, error) {
	if uint32(len(buf)) < modernFileHeaderBase {
		return modernFileHeader{}, errInsufficientData("modern file header", nil)
	}
	c := newCursor(buf)
	var h modernFileHeader
	var err error
	if h.magic, err = c.u32(); err != nil {
		return h, err
	}
	if h.magic != BdatMagic {
		return h, errMalformedHeader("modern file header magic", nil)
	}
	if h.version, err = c.u16(); err != nil {
		return h, err
	}
	if h.version != modernFileVersion {
		return h, errMalformedHeader("modern file header version", nil)
	}
	if h.tableCount, err = c.u16(); err != nil {
		return h, err
	}
	h.tableOffset = make([]uint32, h.tableCount)
	for i := range h.tableOffset {
		if h.tableOffset[i], err = c.u32(); err != nil {
			return h, err
		}
	}
	return h, nil
}

func writeModernFileHeader(e *encoder, tableCount uint16) {
	e.putU32(BdatMagic)
	e.putU16(modernFileVersion)
	e.putU16(tableCount)
	for i := uint16(0); i < tableCount; i++ {
		e.putU32(0) // patched once each table's absolute offset is known
	}
}

// modernTableHeaderSize is the size, in bytes, of one per-table section's
// fixed header.
const modernTableHeaderSize = 40

// modernTableHeader is the fixed-size header at the start of every
// per-table section in a modern-dialect file.
type modernTableHeader struct {
	magic             uint32
	nameHash          uint32
	columnCount       uint16
	rowSize           uint16
	rowCount          uint32
	columnsOffset     uint32
	rowsOffset        uint32
	hashTableOffset   uint32
	hashBucketCount   uint32
	stringTableOffset uint32
	stringTableLength uint32
}

func readModernTableHeader(buf []byte, offset uint32) (modernTableHeader, error) {
	if offset+modernTableHeaderSize > uint32(len(buf)) {
		return modernTableHeader{}, errInsufficientData("modern table header", nil)
	}
	c := newCursor(buf)
	c.seek(offset)
	var h modernTableHeader
	var err error
	if h.magic, err = c.u32(); err != nil {
		return h, err
	}
	if h.magic != BdatMagic {
		return h, errMalformedHeader("modern table header magic", nil)
	}
	if h.nameHash, err = c.u32(); err != nil {
		return h, err
	}
	if h.columnCount, err = c.u16(); err != nil {
		return h, err
	}
	if h.rowSize, err = c.u16(); err != nil {
		return h, err
	}
	if h.rowCount, err = c.u32(); err != nil {
		return h, err
	}
	if h.columnsOffset, err = c.u32(); err != nil {
		return h, err
	}
	if h.rowsOffset, err = c.u32(); err != nil {
		return h, err
	}
	if h.hashTableOffset, err = c.u32(); err != nil {
		return h, err
	}
	if h.hashBucketCount, err = c.u32(); err != nil {
		return h, err
	}
	if h.stringTableOffset, err = c.u32(); err != nil {
		return h, err
	}
	if h.stringTableLength, err = c.u32(); err != nil {
		return h, err
	}
	if h.rowSize < modernRowFooterSize {
		return h, errMalformedHeader("modern table header: row size smaller than its footer", nil)
	}
	return h, nil
}

func writeModernTableHeader(e *encoder, h modernTableHeader) {
	e.putU32(h.magic)
	e.putU32(h.nameHash)
	e.putU16(h.columnCount)
	e.putU16(h.rowSize)
	e.putU32(h.rowCount)
	e.putU32(h.columnsOffset)
	e.putU32(h.rowsOffset)
	e.putU32(h.hashTableOffset)
	e.putU32(h.hashBucketCount)
	e.putU32(h.stringTableOffset)
	e.putU32(h.stringTableLength)
}
