package bdat

// Dialect is the on-disk BDAT variant a table serializes as.
type Dialect int

// The two BDAT dialects.
const (
	// Legacy is the dialect used by Xenoblade 1, X, 2 and Definitive
	// Edition: single table per file, sequential row IDs, scrambled name
	// and string regions.
	Legacy Dialect = iota

	// Modern is the dialect used by Xenoblade 3: multiple tables per
	// file, label-hash row identification, no scrambling.
	Modern
)

func (d Dialect) String() string {
	if d == Modern {
		return "modern"
	}
	return "legacy"
}

// Tag identifies the type a Value carries. The tag set is the union of
// both dialects; Tag.ValidIn reports whether a given dialect's writer can
// represent it.
type Tag uint8

// The closed set of cell value tags, per spec §3.
const (
	Unknown Tag = iota
	UInt8
	UInt16
	UInt32
	Int8
	Int16
	Int32
	String
	Float
	HashRef
	Percent
	DebugString
	Unknown1
	Unknown2
	Unknown3
)

func (t Tag) String() string {
	switch t {
	case Unknown:
		return "Unknown"
	case UInt8:
		return "UInt8"
	case UInt16:
		return "UInt16"
	case UInt32:
		return "UInt32"
	case Int8:
		return "Int8"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case String:
		return "String"
	case Float:
		return "Float"
	case HashRef:
		return "HashRef"
	case Percent:
		return "Percent"
	case DebugString:
		return "DebugString"
	case Unknown1:
		return "Unknown1"
	case Unknown2:
		return "Unknown2"
	case Unknown3:
		return "Unknown3"
	default:
		return "Invalid"
	}
}

// Width returns the fixed storage width, in bytes, of a cell carrying
// this tag. String-bearing tags occupy a 4-byte heap offset/hash; Unknown
// has zero width and never appears as a stored column.
func (t Tag) Width() uint32 {
	switch t {
	case Unknown:
		return 0
	case UInt8, Int8, Percent:
		return 1
	case UInt16, Int16:
		return 2
	case UInt32, Int32, String, Float, HashRef, DebugString, Unknown2, Unknown3:
		return 4
	case Unknown1:
		return 1
	default:
		return 0
	}
}

// ValidIn reports whether the given dialect's writer can emit this tag.
// HashRef, Percent, DebugString and the Unknown1/2/3 scalar slots are
// modern-only; every other tag round-trips through both dialects.
func (t Tag) ValidIn(d Dialect) bool {
	switch t {
	case HashRef, Percent, DebugString, Unknown1, Unknown2, Unknown3:
		return d == Modern
	case Unknown, UInt8, UInt16, UInt32, Int8, Int16, Int32, String, Float:
		return true
	default:
		return false
	}
}

// Value is a tagged cell payload. Only the fields relevant to Tag are
// meaningful; constructors below are the supported way to build one so a
// cell can never claim a tag inconsistent with its payload.
type Value struct {
	tag Tag

	u32 uint32
	i32 int32
	f32 float32

	// str holds owned text for builder-provided cells. When a cell is
	// produced by a reader, str is empty and heapOffset/borrowed carries
	// the span instead.
	str string

	// heapOffset is the string heap offset for String/DebugString cells
	// produced by a reader; borrowed is the zero-copy, still-encoded slice
	// of the original input buffer at that offset.
	heapOffset uint32
	borrowed   []byte
	hasOffset  bool

	// label is the resolved text of a HashRef cell, when the reader
	// found a matching label in the string heap. Absent means only the
	// hash is known.
	label    string
	hasLabel bool
}

// Tag returns the value's tag.
func (v Value) Tag() Tag { return v.tag }

// UInt8Value builds an unsigned 8-bit cell.
func UInt8Value(x uint8) Value { return Value{tag: UInt8, u32: uint32(x)} }

// UInt16Value builds an unsigned 16-bit cell.
func UInt16Value(x uint16) Value { return Value{tag: UInt16, u32: uint32(x)} }

// UInt32Value builds an unsigned 32-bit cell.
func UInt32Value(x uint32) Value { return Value{tag: UInt32, u32: x} }

// Int8Value builds a signed 8-bit cell.
func Int8Value(x int8) Value { return Value{tag: Int8, i32: int32(x)} }

// Int16Value builds a signed 16-bit cell.
func Int16Value(x int16) Value { return Value{tag: Int16, i32: int32(x)} }

// Int32Value builds a signed 32-bit cell.
func Int32Value(x int32) Value { return Value{tag: Int32, i32: x} }

// FloatValue builds a 32-bit IEEE-754 cell.
func FloatValue(x float32) Value { return Value{tag: Float, f32: x} }

// StringValue builds an owned text cell.
func StringValue(s string) Value { return Value{tag: String, str: s} }

// DebugStringValue builds an owned debug-only text cell (modern only).
func DebugStringValue(s string) Value { return Value{tag: DebugString, str: s} }

// PercentValue builds an unsigned 8-bit percent cell (modern only).
func PercentValue(x uint8) Value { return Value{tag: Percent, u32: uint32(x)} }

// Unknown1Value builds an opaque 1-byte scalar cell (modern only).
func Unknown1Value(x uint8) Value { return Value{tag: Unknown1, u32: uint32(x)} }

// Unknown2Value builds an opaque 4-byte scalar cell (modern only).
func Unknown2Value(x uint32) Value { return Value{tag: Unknown2, u32: x} }

// Unknown3Value builds an opaque 4-byte scalar cell (modern only).
func Unknown3Value(x uint32) Value { return Value{tag: Unknown3, u32: x} }

// HashRefValue builds a hashed-label cell from a known label (modern
// only). The label's Murmur3 hash is computed and stored immediately.
func HashRefValue(label string) Value {
	return Value{tag: HashRef, u32: LabelHash(label), label: label, hasLabel: true}
}

// HashRefFromHash builds a hashed-label cell whose label text is unknown
// (e.g. the label wasn't found in the string heap while reading).
func HashRefFromHash(hash uint32) Value {
	return Value{tag: HashRef, u32: hash}
}

// borrowedStringValue builds a String/DebugString cell that references a
// span inside a reader's input buffer rather than owning its bytes.
func borrowedStringValue(tag Tag, offset uint32, b []byte) Value {
	return Value{tag: tag, heapOffset: offset, borrowed: b, hasOffset: true}
}

// AsUInt8 returns the cell's value if it carries UInt8.
func (v Value) AsUInt8() (uint8, error) {
	if v.tag != UInt8 {
		return 0, errTypeMismatch("AsUInt8: cell carries " + v.tag.String())
	}
	return uint8(v.u32), nil
}

// AsUInt16 returns the cell's value if it carries UInt16.
func (v Value) AsUInt16() (uint16, error) {
	if v.tag != UInt16 {
		return 0, errTypeMismatch("AsUInt16: cell carries " + v.tag.String())
	}
	return uint16(v.u32), nil
}

// AsUInt32 returns the cell's value if it carries UInt32.
func (v Value) AsUInt32() (uint32, error) {
	if v.tag != UInt32 {
		return 0, errTypeMismatch("AsUInt32: cell carries " + v.tag.String())
	}
	return v.u32, nil
}

// AsInt8 returns the cell's value if it carries Int8.
func (v Value) AsInt8() (int8, error) {
	if v.tag != Int8 {
		return 0, errTypeMismatch("AsInt8: cell carries " + v.tag.String())
	}
	return int8(v.i32), nil
}

// AsInt16 returns the cell's value if it carries Int16.
func (v Value) AsInt16() (int16, error) {
	if v.tag != Int16 {
		return 0, errTypeMismatch("AsInt16: cell carries " + v.tag.String())
	}
	return int16(v.i32), nil
}

// AsInt32 returns the cell's value if it carries Int32.
func (v Value) AsInt32() (int32, error) {
	if v.tag != Int32 {
		return 0, errTypeMismatch("AsInt32: cell carries " + v.tag.String())
	}
	return v.i32, nil
}

// AsFloat returns the cell's value if it carries Float.
func (v Value) AsFloat() (float32, error) {
	if v.tag != Float {
		return 0, errTypeMismatch("AsFloat: cell carries " + v.tag.String())
	}
	return v.f32, nil
}

// AsPercent returns the cell's value if it carries Percent.
func (v Value) AsPercent() (uint8, error) {
	if v.tag != Percent {
		return 0, errTypeMismatch("AsPercent: cell carries " + v.tag.String())
	}
	return uint8(v.u32), nil
}

// AsString returns the cell's text if it carries String or DebugString
// and owns that text. A cell still borrowing a heap span from a reader's
// input buffer is not decoded here: AsString returns TypeMismatch for it,
// and Table.Owned converts such cells to owned text.
func (v Value) AsString() (string, error) {
	if v.tag != String && v.tag != DebugString {
		return "", errTypeMismatch("AsString: cell carries " + v.tag.String())
	}
	if v.hasOffset {
		return "", errTypeMismatch("AsString: cell borrows from the input buffer; call Owned on the table first")
	}
	return v.str, nil
}

// IsBorrowed reports whether a String/DebugString cell still references
// the reader's input buffer rather than owning its text.
func (v Value) IsBorrowed() bool {
	return v.hasOffset
}

// HeapOffset returns the string heap offset backing a borrowed cell.
func (v Value) HeapOffset() (uint32, bool) {
	return v.heapOffset, v.hasOffset
}

// AsHash returns the raw Murmur3 hash of a HashRef cell.
func (v Value) AsHash() (uint32, error) {
	if v.tag != HashRef {
		return 0, errTypeMismatch("AsHash: cell carries " + v.tag.String())
	}
	return v.u32, nil
}

// AsLabel returns the resolved label text of a HashRef cell, if the
// reader found a matching string in the heap.
func (v Value) AsLabel() (string, bool, error) {
	if v.tag != HashRef {
		return "", false, errTypeMismatch("AsLabel: cell carries " + v.tag.String())
	}
	return v.label, v.hasLabel, nil
}

// AsUnknown1 returns the cell's opaque payload if it carries Unknown1.
func (v Value) AsUnknown1() (uint8, error) {
	if v.tag != Unknown1 {
		return 0, errTypeMismatch("AsUnknown1: cell carries " + v.tag.String())
	}
	return uint8(v.u32), nil
}

// AsUnknown2 returns the cell's opaque payload if it carries Unknown2.
func (v Value) AsUnknown2() (uint32, error) {
	if v.tag != Unknown2 {
		return 0, errTypeMismatch("AsUnknown2: cell carries " + v.tag.String())
	}
	return v.u32, nil
}

// AsUnknown3 returns the cell's opaque payload if it carries Unknown3.
func (v Value) AsUnknown3() (uint32, error) {
	if v.tag != Unknown3 {
		return 0, errTypeMismatch("AsUnknown3: cell carries " + v.tag.String())
	}
	return v.u32, nil
}

// rawUint is used internally by the codecs to get at a scalar cell's
// underlying bits regardless of signedness, e.g. to feed a flag mask.
func (v Value) rawUint() uint32 {
	switch v.tag {
	case Int8, Int16, Int32:
		return uint32(v.i32)
	default:
		return v.u32
	}
}
