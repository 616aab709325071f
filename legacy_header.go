package bdat

// BdatMagic is the four bytes every legacy table and every modern file
// begins with: "BDAT" read little-endian as a uint32.
const BdatMagic uint32 = 0x54414442

// legacyFlagScrambled is the only flags bit the legacy dialect defines:
// when set, the name region and the string heap are XOR-scrambled.
const legacyFlagScrambled = 0x01

// legacyHeaderSize is the size, in bytes, of a legacy table's fixed
// header. The real game layout's exact bit offsets aren't recoverable
// from the format description alone (see DESIGN.md); this layout is
// self-consistent and round-trips every field spec.md §4.5 names.
const legacyHeaderSize = 52

// legacyHeader is the fixed-size header at the start of every legacy
// table.
type legacyHeader struct {
	magic           uint32
	flags           uint8
	columnCount     uint16
	rowLength       uint16
	nameOffset      uint32
	columnsOffset   uint32
	hashTableOffset uint32
	hashBucketCount uint32
	rowsOffset      uint32
	rowCount        uint32
	baseID          uint32
	checksum        uint32
	stringOffset    uint32
	stringLength    uint32
}

func readLegacyHeader(buf []byte) (legacyHeader, error) {
	if uint32(len(buf)) < legacyHeaderSize {
		return legacyHeader{}, errInsufficientData("legacy header", nil)
	}
	c := newCursor(buf)

	var h legacyHeader
	var err error
	if h.magic, err = c.u32(); err != nil {
		return h, err
	}
	if h.magic != BdatMagic {
		return h, errMalformedHeader("legacy header magic", nil)
	}
	flags, err := c.u8()
	if err != nil {
		return h, err
	}
	h.flags = flags
	if _, err = c.u8(); err != nil { // reserved
		return h, err
	}
	if h.columnCount, err = c.u16(); err != nil {
		return h, err
	}
	if h.rowLength, err = c.u16(); err != nil {
		return h, err
	}
	if _, err = c.u16(); err != nil { // reserved
		return h, err
	}
	if h.nameOffset, err = c.u32(); err != nil {
		return h, err
	}
	if h.columnsOffset, err = c.u32(); err != nil {
		return h, err
	}
	if h.hashTableOffset, err = c.u32(); err != nil {
		return h, err
	}
	if h.hashBucketCount, err = c.u32(); err != nil {
		return h, err
	}
	if h.rowsOffset, err = c.u32(); err != nil {
		return h, err
	}
	if h.rowCount, err = c.u32(); err != nil {
		return h, err
	}
	if h.baseID, err = c.u32(); err != nil {
		return h, err
	}
	if h.checksum, err = c.u32(); err != nil {
		return h, err
	}
	if h.stringOffset, err = c.u32(); err != nil {
		return h, err
	}
	if h.stringLength, err = c.u32(); err != nil {
		return h, err
	}
	return h, nil
}

func (h legacyHeader) scrambled() bool {
	return h.flags&legacyFlagScrambled != 0
}

func writeLegacyHeader(e *encoder, h legacyHeader) {
	e.putU32(h.magic)
	e.putU8(h.flags)
	e.putU8(0)
	e.putU16(h.columnCount)
	e.putU16(h.rowLength)
	e.putU16(0)
	e.putU32(h.nameOffset)
	e.putU32(h.columnsOffset)
	e.putU32(h.hashTableOffset)
	e.putU32(h.hashBucketCount)
	e.putU32(h.rowsOffset)
	e.putU32(h.rowCount)
	e.putU32(h.baseID)
	e.putU32(h.checksum)
	e.putU32(h.stringOffset)
	e.putU32(h.stringLength)
}
