package bdat

import (
	"errors"
	"testing"
)

func legacyTestColumns() []Column {
	return []Column{
		{Name: "id", Tag: UInt32},
		{Name: "name", Tag: String},
	}
}

func TestAddRowCellCountMismatch(t *testing.T) {
	tbl, err := NewTable("T", Legacy, legacyTestColumns(), 1000)
	if err != nil {
		t.Fatal(err)
	}
	err = tbl.AddRow(Row{Cells: []Value{UInt32Value(1)}})
	if !errors.Is(err, TypeMismatchError) {
		t.Errorf("got %v, want TypeMismatch for a short cell list", err)
	}
}

func TestAddRowTagMismatch(t *testing.T) {
	// Seed scenario 4: a Float cell in a column declared UInt32.
	tbl, err := NewTable("T", Legacy, legacyTestColumns(), 1000)
	if err != nil {
		t.Fatal(err)
	}
	err = tbl.AddRow(Row{Cells: []Value{FloatValue(1), StringValue("a")}})
	if !errors.Is(err, TypeMismatchError) {
		t.Errorf("got %v, want TypeMismatch for a Float cell in a UInt32 column", err)
	}
}

func TestNewTableDuplicateColumn(t *testing.T) {
	cols := []Column{{Name: "id", Tag: UInt32}, {Name: "id", Tag: UInt16}}
	_, err := NewTable("T", Legacy, cols, 0)
	if !errors.Is(err, DuplicateColumnError) {
		t.Errorf("got %v, want DuplicateColumn", err)
	}
}

func TestAddRowDuplicateLabel(t *testing.T) {
	cols := []Column{{Name: "key", Tag: HashRef}}
	tbl, err := NewTable("T", Modern, cols, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddRow(Row{Cells: []Value{HashRefValue("row_alpha")}}); err != nil {
		t.Fatal(err)
	}
	err = tbl.AddRow(Row{Cells: []Value{HashRefValue("row_alpha")}})
	if !errors.Is(err, DuplicateLabelError) {
		t.Errorf("got %v, want DuplicateLabel", err)
	}
}

func TestAddRowSequentialLegacyID(t *testing.T) {
	tbl, err := NewTable("T", Legacy, legacyTestColumns(), 1000)
	if err != nil {
		t.Fatal(err)
	}
	names := []string{"a", "b", "c"}
	for i, name := range names {
		if err := tbl.AddRow(Row{Cells: []Value{UInt32Value(uint32(i)), StringValue(name)}}); err != nil {
			t.Fatal(err)
		}
	}
	for i := range names {
		row, ok := tbl.RowByID(uint32(1000 + i))
		if !ok {
			t.Fatalf("row %d not found", 1000+i)
		}
		if s, _ := row.Cells[1].AsString(); s != names[i] {
			t.Errorf("row %d name = %q, want %q", 1000+i, s, names[i])
		}
	}
}

func TestRowByLabel(t *testing.T) {
	cols := []Column{{Name: "key", Tag: HashRef}, {Name: "v", Tag: UInt32}}
	tbl, err := NewTable("T", Modern, cols, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddRow(Row{Cells: []Value{HashRefValue("row_alpha"), UInt32Value(9)}}); err != nil {
		t.Fatal(err)
	}
	row, ok := tbl.RowByLabel("row_alpha")
	if !ok {
		t.Fatal("row_alpha not found")
	}
	if v, _ := row.Cells[1].AsUInt32(); v != 9 {
		t.Errorf("row_alpha value = %d, want 9", v)
	}
	if _, ok := tbl.RowByLabel("missing"); ok {
		t.Error("lookup of an absent label should report not found")
	}
}

func TestNewTableLegacyRejectsHashRef(t *testing.T) {
	// Seed scenario 6: a HashRef column cannot be declared in a legacy
	// table; NewTable refuses it with UnsupportedDialect before any write.
	cols := []Column{{Name: "key", Tag: HashRef}}
	_, err := NewTable("T", Legacy, cols, 0)
	if !errors.Is(err, UnsupportedDialectError) {
		t.Errorf("got %v, want UnsupportedDialect declaring a HashRef column in a legacy table", err)
	}
}
