package bdat

// modernColumnDescSize is the size, in bytes, of one modern column
// descriptor: tag (u16), row offset (u16), name hash (u32).
const modernColumnDescSize = 8

func readModernColumns(buf []byte, offset uint32, count uint16, rowWidth uint32, names map[uint32]string) ([]Column, error) {
	c := newCursor(buf)
	c.seek(offset)

	cols := make([]Column, count)
	for i := range cols {
		tagWord, err := c.u16()
		if err != nil {
			return nil, err
		}
		tag := Tag(tagWord)
		if !tag.ValidIn(Modern) {
			return nil, errUnknownValueTag("modern column tag", nil)
		}
		off, err := c.u16()
		if err != nil {
			return nil, err
		}
		nameHash, err := c.u32()
		if err != nil {
			return nil, err
		}
		name := names[nameHash]
		cols[i] = Column{Name: name, Tag: tag, Offset: uint32(off), HasOffset: true}
	}

	if err := validateModernOffsets(cols, rowWidth); err != nil {
		return nil, err
	}
	return cols, nil
}

// writeModernColumns appends the column descriptor section to e. Only
// each column's name hash is written here; serializeModernTable interns
// the name text into the table's string heap, where a reader recovers it
// by hashing the heap entries.
func writeModernColumns(e *encoder, cols []Column, rowWidth uint32) error {
	if err := validateModernOffsets(cols, rowWidth); err != nil {
		return err
	}
	start := e.len()
	for _, col := range cols {
		e.putU16(uint16(col.Tag))
		e.putU16(uint16(col.Offset))
		e.putU32(LabelHash(col.Name))
	}
	if e.len()-start != uint32(len(cols))*modernColumnDescSize {
		return errMalformedHeader("writeModernColumns: descriptor size mismatch", nil)
	}
	return nil
}

// validateModernOffsets rejects column layouts whose declared offset and
// width overlap another column's span, and any column whose span runs
// past rowWidth (the row stride minus its trailing hash-table-next-pointer
// footer) — a row stride lifted straight from an untrusted header must not
// let a column read into the next row's bytes or its own footer.
func validateModernOffsets(cols []Column, rowWidth uint32) error {
	type span struct{ start, end uint32 }
	var spans []span
	for _, col := range cols {
		if !col.HasOffset {
			return errMalformedHeader("modern column missing an explicit offset", nil)
		}
		width := col.Tag.Width()
		s := span{start: col.Offset, end: col.Offset + width}
		if s.end > rowWidth {
			return errInvalidOffset("modern column layout: offset+width exceeds row size", nil)
		}
		for _, other := range spans {
			if s.start < other.end && other.start < s.end {
				return errInvalidOffset("modern column layout: overlapping offsets", nil)
			}
		}
		spans = append(spans, s)
	}
	return nil
}

// modernRowSize returns the minimal row size that fits every column's
// declared offset and width.
func modernRowSize(cols []Column) uint32 {
	var size uint32
	for _, col := range cols {
		end := col.Offset + col.Tag.Width()
		if end > size {
			size = end
		}
	}
	return size
}

// layoutModernColumns returns a copy of cols with Offset/HasOffset filled
// in. A table built in memory rarely carries explicit offsets, so
// columns missing one are packed positionally in declaration order; a
// table round-tripped from a file keeps whatever offsets it already
// declared. Mixing the two within one table is rejected, since a partial
// layout can't be completed unambiguously.
func layoutModernColumns(cols []Column) ([]Column, error) {
	out := append([]Column(nil), cols...)

	var anyHas, anyMissing bool
	for _, col := range out {
		if col.HasOffset {
			anyHas = true
		} else {
			anyMissing = true
		}
	}
	if anyHas && anyMissing {
		return nil, errMalformedHeader("modern table: columns mix explicit and implicit offsets", nil)
	}
	if anyMissing {
		var pos uint32
		for i := range out {
			out[i].Offset = pos
			out[i].HasOffset = true
			pos += out[i].Tag.Width()
		}
	}
	return out, nil
}
