package bdat

// legacyFlagMore/legacyFlagEnd are the one-byte markers preceding each
// flag descriptor in a column's flag list: 1 means another descriptor
// follows, 0 terminates the list, per spec §4.5.
const (
	legacyFlagMore = 0x01
	legacyFlagEnd  = 0x00
)

// legacyFlagDescSize is the size of one flag descriptor: name offset
// (u32), mask (u32), shift (u8), index (u8).
const legacyFlagDescSize = 10

func readLegacyColumns(buf []byte, offset uint32, count uint16, nameRegion []byte) ([]Column, error) {
	c := newCursor(buf)
	c.seek(offset)

	cols := make([]Column, 0, count)
	for i := uint16(0); i < count; i++ {
		tagByte, err := c.u8()
		if err != nil {
			return nil, err
		}
		tag := Tag(tagByte)
		if !tag.ValidIn(Legacy) {
			return nil, errUnknownValueTag("legacy column tag", nil)
		}

		nameOff, err := c.u32()
		if err != nil {
			return nil, err
		}
		name, err := readHeapString(nameRegion, nameOff, true)
		if err != nil {
			return nil, err
		}

		col := Column{Name: name, Tag: tag}
		for {
			marker, err := c.u8()
			if err != nil {
				return nil, err
			}
			if marker == legacyFlagEnd {
				break
			}
			fNameOff, err := c.u32()
			if err != nil {
				return nil, err
			}
			fName, err := readHeapString(nameRegion, fNameOff, true)
			if err != nil {
				return nil, err
			}
			mask, err := c.u32()
			if err != nil {
				return nil, err
			}
			shift, err := c.u8()
			if err != nil {
				return nil, err
			}
			index, err := c.u8()
			if err != nil {
				return nil, err
			}
			col.Flags = append(col.Flags, Flag{
				Name:         fName,
				ParentColumn: len(cols),
				Mask:         mask,
				Shift:        shift,
				Index:        index,
			})
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// writeLegacyColumns appends the column descriptor section to e, interning
// column and flag names into names.
func writeLegacyColumns(e *encoder, cols []Column, names *stringHeap) error {
	for _, col := range cols {
		e.putU8(uint8(col.Tag))
		off, err := names.intern(col.Name)
		if err != nil {
			return err
		}
		e.putU32(off)

		for _, f := range col.Flags {
			e.putU8(legacyFlagMore)
			descStart := e.len()
			fOff, err := names.intern(f.Name)
			if err != nil {
				return err
			}
			e.putU32(fOff)
			e.putU32(f.Mask)
			e.putU8(f.Shift)
			e.putU8(f.Index)
			if e.len()-descStart != legacyFlagDescSize {
				return errMalformedHeader("writeLegacyColumns: flag descriptor size mismatch", nil)
			}
		}
		e.putU8(legacyFlagEnd)
	}
	return nil
}

// legacyColumnWidth returns the on-disk width of a column's cell,
// matching Tag.Width (flags never occupy their own storage).
func legacyColumnWidth(col Column) uint32 {
	return col.Tag.Width()
}

// legacyColumnOffsets computes each column's byte offset within a row,
// assigned positionally in declaration order.
func legacyColumnOffsets(cols []Column) []uint32 {
	offsets := make([]uint32, len(cols))
	var pos uint32
	for i, col := range cols {
		offsets[i] = pos
		pos += legacyColumnWidth(col)
	}
	return offsets
}
