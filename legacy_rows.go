package bdat

// legacyRowFooterSize reserves trailing bytes in every legacy row for the
// hash-table collision chain's next-row pointer (see legacy_hashtable.go).
const legacyRowFooterSize = 4

func readLegacyRow(buf []byte, rowOffset uint32, cols []Column, offsets []uint32,
	baseID uint32, index uint32, stringHeap []byte) (Row, error) {

	row := Row{ID: baseID + index, Cells: make([]Value, len(cols))}

	for i, col := range cols {
		cellOffset := rowOffset + offsets[i]
		c := newCursor(buf)
		c.seek(cellOffset)

		var cell Value
		switch col.Tag {
		case UInt8:
			v, err := c.u8()
			if err != nil {
				return Row{}, err
			}
			cell = UInt8Value(v)
		case UInt16:
			v, err := c.u16()
			if err != nil {
				return Row{}, err
			}
			cell = UInt16Value(v)
		case UInt32:
			v, err := c.u32()
			if err != nil {
				return Row{}, err
			}
			cell = UInt32Value(v)
		case Int8:
			v, err := c.i8()
			if err != nil {
				return Row{}, err
			}
			cell = Int8Value(v)
		case Int16:
			v, err := c.i16()
			if err != nil {
				return Row{}, err
			}
			cell = Int16Value(v)
		case Int32:
			v, err := c.i32()
			if err != nil {
				return Row{}, err
			}
			cell = Int32Value(v)
		case Float:
			v, err := c.f32()
			if err != nil {
				return Row{}, err
			}
			cell = FloatValue(v)
		case String:
			off, err := c.u32()
			if err != nil {
				return Row{}, err
			}
			span, err := heapSpan(stringHeap, off)
			if err != nil {
				return Row{}, err
			}
			cell = borrowedStringValue(String, off, span)
		default:
			return Row{}, errUnknownValueTag("legacy row cell tag", nil)
		}
		row.Cells[i] = cell
	}

	return row, nil
}

// FlagValue resolves one of a table's legacy sub-flags against the
// already-decoded row: it reads the parent column's raw bits and applies
// (raw & mask) >> shift. Legacy flag cells are never stored on disk; they
// are always computed on demand.
func (row Row) FlagValue(f Flag) (uint32, error) {
	if f.ParentColumn < 0 || f.ParentColumn >= len(row.Cells) {
		return 0, errInvalidOffset("FlagValue: parent column index out of range", nil)
	}
	parent := row.Cells[f.ParentColumn]
	return f.Resolve(parent.rawUint()), nil
}

func writeLegacyRow(e *encoder, rowOffset uint32, cols []Column, offsets []uint32,
	row Row, names *stringHeap, strings *stringHeap) error {

	for i, col := range cols {
		cellOffset := rowOffset + offsets[i]
		for uint32(len(e.buf)) < cellOffset {
			e.putU8(0)
		}
		cell := row.Cells[i]
		switch col.Tag {
		case UInt8:
			v, err := cell.AsUInt8()
			if err != nil {
				return err
			}
			e.putU8(v)
		case UInt16:
			v, err := cell.AsUInt16()
			if err != nil {
				return err
			}
			e.putU16(v)
		case UInt32:
			v, err := cell.AsUInt32()
			if err != nil {
				return err
			}
			e.putU32(v)
		case Int8:
			v, err := cell.AsInt8()
			if err != nil {
				return err
			}
			e.putI8(v)
		case Int16:
			v, err := cell.AsInt16()
			if err != nil {
				return err
			}
			e.putI16(v)
		case Int32:
			v, err := cell.AsInt32()
			if err != nil {
				return err
			}
			e.putI32(v)
		case Float:
			v, err := cell.AsFloat()
			if err != nil {
				return err
			}
			e.putF32(v)
		case String:
			s, err := resolveCellString(cell, true)
			if err != nil {
				return err
			}
			off, err := strings.intern(s)
			if err != nil {
				return err
			}
			e.putU32(off)
		default:
			return errUnsupportedDialect("legacy row: column " + col.Name + " carries " + col.Tag.String())
		}
	}
	return nil
}

// resolveCellString returns a String/DebugString cell's text whether it
// is owned or still borrowing from a reader's input buffer.
func resolveCellString(v Value, legacy bool) (string, error) {
	if !v.IsBorrowed() {
		return v.AsString()
	}
	return decodeBorrowed(legacy, v.borrowed)
}
