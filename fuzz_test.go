package bdat

import "testing"

func FuzzParse(f *testing.F) {
	legacy, err := serializeLegacy(newSeedLegacyTableForFuzz(), false, 0)
	if err != nil {
		f.Fatal(err)
	}
	f.Add(legacy)
	f.Add([]byte("not bdat at all"))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		// Parse must never panic, regardless of input; errors are fine.
		_, _ = Parse(data)
	})
}

func newSeedLegacyTableForFuzz() *Table {
	cols := []Column{{Name: "id", Tag: UInt32}, {Name: "name", Tag: String}}
	tbl, _ := NewTable("T", Legacy, cols, 0)
	_ = tbl.AddRow(Row{Cells: []Value{UInt32Value(1), StringValue("a")}})
	return tbl
}

func TestFuzzEntryPoint(t *testing.T) {
	legacy, err := serializeLegacy(newSeedLegacyTableForFuzz(), false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if Fuzz(legacy) != 1 {
		t.Error("Fuzz should accept a well-formed legacy table")
	}
	if Fuzz([]byte("garbage")) != 0 {
		t.Error("Fuzz should reject garbage input")
	}
}
