package bdat

func readModernRow(buf []byte, rowOffset uint32, cols []Column, stringHeap []byte, labels map[uint32]string) (Row, error) {
	row := Row{Cells: make([]Value, len(cols))}

	for i, col := range cols {
		cellOffset := rowOffset + col.Offset
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
		case Percent:
			v, err := c.u8()
			if err != nil {
				return Row{}, err
			}
			cell = PercentValue(v)
		case Unknown1:
			v, err := c.u8()
			if err != nil {
				return Row{}, err
			}
			cell = Unknown1Value(v)
		case Unknown2:
			v, err := c.u32()
			if err != nil {
				return Row{}, err
			}
			cell = Unknown2Value(v)
		case Unknown3:
			v, err := c.u32()
			if err != nil {
				return Row{}, err
			}
			cell = Unknown3Value(v)
		case String, DebugString:
			off, err := c.u32()
			if err != nil {
				return Row{}, err
			}
			span, err := heapSpan(stringHeap, off)
			if err != nil {
				return Row{}, err
			}
			cell = borrowedStringValue(col.Tag, off, span)
		case HashRef:
			hash, err := c.u32()
			if err != nil {
				return Row{}, err
			}
			if label, ok := labels[hash]; ok {
				cell = HashRefValue(label)
			} else {
				cell = HashRefFromHash(hash)
			}
		default:
			return Row{}, errUnknownValueTag("modern row cell tag", nil)
		}
		row.Cells[i] = cell
	}

	return row, nil
}

func writeModernRow(e *encoder, rowOffset uint32, cols []Column, row Row, strings *stringHeap) error {
	for i, col := range cols {
		cellOffset := rowOffset + col.Offset
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
		case Percent:
			v, err := cell.AsPercent()
			if err != nil {
				return err
			}
			e.putU8(v)
		case Unknown1:
			v, err := cell.AsUnknown1()
			if err != nil {
				return err
			}
			e.putU8(v)
		case Unknown2:
			v, err := cell.AsUnknown2()
			if err != nil {
				return err
			}
			e.putU32(v)
		case Unknown3:
			v, err := cell.AsUnknown3()
			if err != nil {
				return err
			}
			e.putU32(v)
		case String, DebugString:
			s, err := resolveCellString(cell, false)
			if err != nil {
				return err
			}
			off, err := strings.intern(s)
			if err != nil {
				return err
			}
			e.putU32(off)
		case HashRef:
			hash, err := cell.AsHash()
			if err != nil {
				return err
			}
			if label, ok, _ := cell.AsLabel(); ok {
				if _, err := strings.intern(label); err != nil {
					return err
				}
			}
			e.putU32(hash)
		default:
			return errUnsupportedDialect("modern row: column " + col.Name + " carries " + col.Tag.String())
		}
	}
	return nil
}
