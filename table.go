package bdat

import "math"

// Flag is a legacy-only boolean-or-small-integer decoration extracted
// from a parent column by a bit mask and right shift. It never occupies
// its own storage; its value is derived from the parent column's raw
// bits on every read.
type Flag struct {
	// Name is the flag's own name, interned the same way a column name
	// is.
	Name string

	// ParentColumn is the index, within the owning table's Columns, of
	// the column this flag is extracted from.
	ParentColumn int

	Mask  uint32
	Shift uint8
	Index uint8
}

// Resolve computes the flag's value from its parent column's raw bits:
// (raw & mask) >> shift.
func (f Flag) Resolve(parentRaw uint32) uint32 {
	return (parentRaw & f.Mask) >> f.Shift
}

// Column describes one column of a table: its name, its declared cell
// tag, and the dialect-specific side channel the opposite codec ignores
// (Flags for legacy, Offset for modern).
type Column struct {
	Name string
	Tag  Tag

	// Flags holds the legacy sub-flags declared on this column, if any.
	Flags []Flag

	// Offset is this column's byte offset inside a modern row. HasOffset
	// disambiguates an explicit offset of 0 from "not modern-laid-out".
	Offset    uint32
	HasOffset bool
}

// Row is an ordered set of cells, one per column, plus the identity that
// locates it: a sequential ID in the legacy dialect, or a label (and its
// cached hash) in the modern dialect.
type Row struct {
	Cells []Value

	// ID is the legacy dialect's row identifier: BaseID + row index.
	ID uint32

	// Label and LabelHash identify a row in the modern dialect. HasLabel
	// is false for legacy rows.
	Label     string
	LabelHash uint32
	HasLabel  bool
}

// Table owns an ordered column list and an ordered row list, under a
// single dialect that determines how it serializes.
type Table struct {
	Name     string
	NameHash uint32
	Dialect  Dialect
	Columns  []Column
	Rows     []Row
	BaseID   uint32

	columnIndex map[string]int
	idIndex     map[uint32]int
	labelIndex  map[uint32]int
}

// NewTable builds a validated, empty table. Columns must have unique
// names; modern tables get NameHash populated from name's Murmur3 hash.
func NewTable(name string, dialect Dialect, columns []Column, baseID uint32) (*Table, error) {
	t := &Table{
		Name:    name,
		Dialect: dialect,
		Columns: append([]Column(nil), columns...),
		BaseID:  baseID,
	}
	if dialect == Modern {
		t.NameHash = LabelHash(name)
	}

	t.columnIndex = make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		if _, dup := t.columnIndex[col.Name]; dup {
			return nil, errDuplicateColumn("column " + col.Name)
		}
		t.columnIndex[col.Name] = i
		if !col.Tag.ValidIn(dialect) {
			return nil, errUnsupportedDialect("column " + col.Name + " carries " + col.Tag.String())
		}
	}
	return t, nil
}

// ColumnIndex returns the position of the named column, if any.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.columnIndex[name]
	return i, ok
}

// keyColumnIndex returns the index of the column that identifies a row
// for bucket lookup in the modern dialect: by convention, the first
// HashRef column. Returns -1 if the table has none.
func (t *Table) keyColumnIndex() int {
	for i, col := range t.Columns {
		if col.Tag == HashRef {
			return i
		}
	}
	return -1
}

// AddRow validates and appends a row. For a legacy table, row.ID is
// overwritten with BaseID + the new row's position; for a modern table,
// the row's label hash is taken from its first HashRef cell (or, when the
// table has no HashRef column, from row.Label) and must not collide with
// an existing row's.
func (t *Table) AddRow(row Row) error {
	if len(row.Cells) != len(t.Columns) {
		return errTypeMismatch("AddRow: cell count does not match column count")
	}
	for i, cell := range row.Cells {
		col := t.Columns[i]
		if cell.Tag() != col.Tag {
			return errTypeMismatch("AddRow: column " + col.Name + " expects " +
				col.Tag.String() + ", got " + cell.Tag().String())
		}
		if !cell.Tag().ValidIn(t.Dialect) {
			return errUnsupportedDialect("AddRow: column " + col.Name + " carries " + cell.Tag().String())
		}
	}

	nextIndex := len(t.Rows)
	if uint64(t.BaseID)+uint64(nextIndex) > math.MaxUint32 {
		return errMalformedHeader("AddRow: base ID + row count overflows 32 bits", nil)
	}

	switch t.Dialect {
	case Legacy:
		row.ID = t.BaseID + uint32(nextIndex)
		row.HasLabel = false
	case Modern:
		if keyIdx := t.keyColumnIndex(); keyIdx >= 0 {
			hash, err := row.Cells[keyIdx].AsHash()
			if err != nil {
				return err
			}
			row.LabelHash = hash
			row.HasLabel = true
			if lbl, ok, _ := row.Cells[keyIdx].AsLabel(); ok {
				row.Label = lbl
			}
		} else if !row.HasLabel {
			row.LabelHash = LabelHash(row.Label)
			row.HasLabel = true
		}
		if t.labelIndex == nil {
			t.labelIndex = make(map[uint32]int, len(t.Rows))
			for i, r := range t.Rows {
				t.labelIndex[r.LabelHash] = i
			}
		}
		if _, dup := t.labelIndex[row.LabelHash]; dup {
			return errDuplicateLabel("AddRow: duplicate label hash for " + row.Label)
		}
		t.labelIndex[row.LabelHash] = nextIndex
	}

	t.Rows = append(t.Rows, row)
	if t.idIndex != nil {
		t.idIndex[row.ID] = nextIndex
	}
	return nil
}

// RowByID returns the legacy row with the given ID, if any.
func (t *Table) RowByID(id uint32) (Row, bool) {
	if t.Dialect != Legacy {
		return Row{}, false
	}
	if t.idIndex == nil {
		t.idIndex = make(map[uint32]int, len(t.Rows))
		for i, r := range t.Rows {
			t.idIndex[r.ID] = i
		}
	}
	i, ok := t.idIndex[id]
	if !ok {
		return Row{}, false
	}
	return t.Rows[i], true
}

// RowByLabel returns the modern row with the given label, if any.
func (t *Table) RowByLabel(label string) (Row, bool) {
	if t.Dialect != Modern {
		return Row{}, false
	}
	return t.rowByLabelHash(LabelHash(label))
}

func (t *Table) rowByLabelHash(hash uint32) (Row, bool) {
	if t.labelIndex == nil {
		t.labelIndex = make(map[uint32]int, len(t.Rows))
		for i, r := range t.Rows {
			t.labelIndex[r.LabelHash] = i
		}
	}
	i, ok := t.labelIndex[hash]
	if !ok {
		return Row{}, false
	}
	return t.Rows[i], true
}

// Owned returns a copy of the table in which every String/DebugString
// cell owns its text instead of borrowing from a reader's input buffer.
// Use it before discarding the buffer a Parse call was given.
func (t *Table) Owned() (*Table, error) {
	out := &Table{
		Name:     t.Name,
		NameHash: t.NameHash,
		Dialect:  t.Dialect,
		Columns:  append([]Column(nil), t.Columns...),
		BaseID:   t.BaseID,
		Rows:     make([]Row, len(t.Rows)),
	}
	legacy := t.Dialect == Legacy
	for i, row := range t.Rows {
		newRow := Row{
			ID:        row.ID,
			Label:     row.Label,
			LabelHash: row.LabelHash,
			HasLabel:  row.HasLabel,
			Cells:     make([]Value, len(row.Cells)),
		}
		for j, cell := range row.Cells {
			if cell.IsBorrowed() {
				s, err := decodeBorrowed(legacy, cell.borrowed)
				if err != nil {
					return nil, err
				}
				if cell.Tag() == DebugString {
					cell = Value{tag: DebugString, str: s}
				} else {
					cell = Value{tag: String, str: s}
				}
			}
			newRow.Cells[j] = cell
		}
		out.Rows[i] = newRow
	}
	return out, nil
}
