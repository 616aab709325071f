package bdat

import "testing"

func newSeedModernTable(t *testing.T, name string) *Table {
	t.Helper()
	cols := []Column{
		{Name: "key", Tag: HashRef},
		{Name: "value", Tag: UInt32},
		{Name: "label", Tag: String},
	}
	tbl, err := NewTable(name, Modern, cols, 0)
	if err != nil {
		t.Fatal(err)
	}
	rows := []struct {
		label string
		value uint32
	}{
		{"row_alpha", 1},
		{"row_beta", 2},
		{"row_gamma", 3},
	}
	for _, r := range rows {
		row := Row{Cells: []Value{HashRefValue(r.label), UInt32Value(r.value), StringValue(r.label)}}
		if err := tbl.AddRow(row); err != nil {
			t.Fatal(err)
		}
	}
	return tbl
}

// TestModernRoundTripTwoTables is seed scenario 3: two tables sharing one
// offset table, each with a HashRef key column; a label lookup finds the
// expected row.
func TestModernRoundTripTwoTables(t *testing.T) {
	first := newSeedModernTable(t, "First")
	second := newSeedModernTable(t, "Second")

	data, err := Serialize([]*Table{first, second}, Modern, nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d tables, want 2", len(got))
	}

	for _, tbl := range got {
		row, ok := tbl.RowByLabel("row_alpha")
		if !ok {
			t.Fatalf("table %s: row_alpha not found", tbl.Name)
		}
		v, err := row.Cells[1].AsUInt32()
		if err != nil || v != 1 {
			t.Errorf("table %s: row_alpha value = %d, %v, want 1", tbl.Name, v, err)
		}
		label, err := resolveCellString(row.Cells[2], false)
		if err != nil || label != "row_alpha" {
			t.Errorf("table %s: row_alpha label cell = %q, %v", tbl.Name, label, err)
		}
	}
}

func TestModernHashTableLookup(t *testing.T) {
	tbl := newSeedModernTable(t, "T")
	sec, err := serializeModernTable(tbl)
	if err != nil {
		t.Fatal(err)
	}

	keys := []string{"row_alpha", "row_beta", "row_gamma"}
	for _, k := range keys {
		row, ok, err := lookupModernRow(sec, 0, LabelHash(k))
		if err != nil || !ok {
			t.Fatalf("lookup %s: ok=%v err=%v", k, ok, err)
		}
		label, _, _ := row.Cells[0].AsLabel()
		if label != k {
			t.Errorf("lookup %s returned label %q", k, label)
		}
	}

	if _, ok, err := lookupModernRow(sec, 0, LabelHash("missing")); err != nil || ok {
		t.Errorf("lookup of an absent key: ok=%v err=%v, want ok=false", ok, err)
	}
}

func TestModernColumnOffsetOverlapRejected(t *testing.T) {
	cols := []Column{
		{Name: "a", Tag: UInt32, Offset: 0, HasOffset: true},
		{Name: "b", Tag: UInt32, Offset: 2, HasOffset: true},
	}
	if err := validateModernOffsets(cols, 8); err == nil {
		t.Fatal("expected InvalidOffset for overlapping column spans")
	}
}

func TestModernColumnOffsetExceedsRowSizeRejected(t *testing.T) {
	cols := []Column{
		{Name: "a", Tag: UInt32, Offset: 0, HasOffset: true},
		{Name: "b", Tag: UInt32, Offset: 4, HasOffset: true},
	}
	if err := validateModernOffsets(cols, 6); err == nil {
		t.Fatal("expected InvalidOffset when a column's offset+width exceeds row size")
	}
	if err := validateModernOffsets(cols, 8); err != nil {
		t.Errorf("unexpected error when columns exactly fit row size: %v", err)
	}
}

// TestModernRejectsRowSizeSmallerThanFooter exercises a crafted header
// whose declared row size is smaller than the row's own hash-table
// next-pointer footer.
func TestModernRejectsRowSizeSmallerThanFooter(t *testing.T) {
	tbl := newSeedModernTable(t, "T")
	sec, err := serializeModernTable(tbl)
	if err != nil {
		t.Fatal(err)
	}
	// rowSize is a uint16 at byte offset 10 of the table header (after
	// magic u32, nameHash u32, columnCount u16).
	sec[10] = 1
	sec[11] = 0
	if _, err := parseModernTable(sec, 0); err == nil {
		t.Fatal("expected MalformedHeader for a row size smaller than the footer")
	}
}

func TestModernOffsetMixedExplicitImplicitRejected(t *testing.T) {
	cols := []Column{
		{Name: "a", Tag: UInt32, Offset: 0, HasOffset: true},
		{Name: "b", Tag: UInt32},
	}
	if _, err := layoutModernColumns(cols); err == nil {
		t.Fatal("expected MalformedHeader when columns mix explicit and implicit offsets")
	}
}

func TestIsModernHeaderDoesNotConfuseLegacy(t *testing.T) {
	tbl := newSeedLegacyTable(t)
	data, err := serializeLegacy(tbl, true, 0x1234)
	if err != nil {
		t.Fatal(err)
	}
	if isModernHeader(data) {
		t.Error("a scrambled legacy header should never be detected as modern")
	}
}
