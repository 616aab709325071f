package bdat

import "testing"

func newSeedLegacyTable(t *testing.T) *Table {
	t.Helper()
	cols := []Column{
		{Name: "id", Tag: UInt32},
		{Name: "name", Tag: String},
	}
	tbl, err := NewTable("TestTable", Legacy, cols, 1000)
	if err != nil {
		t.Fatal(err)
	}
	for i, name := range []string{"a", "b", "c"} {
		row := Row{Cells: []Value{UInt32Value(uint32(1000 + i)), StringValue(name)}}
		if err := tbl.AddRow(row); err != nil {
			t.Fatal(err)
		}
	}
	return tbl
}

// TestLegacyRoundTripPlain is seed scenario 1.
func TestLegacyRoundTripPlain(t *testing.T) {
	tbl := newSeedLegacyTable(t)

	data, err := serializeLegacy(tbl, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	got, err := parseLegacy(data)
	if err != nil {
		t.Fatal(err)
	}
	assertSeedTableEqual(t, got)
}

// TestLegacyRoundTripScrambled is seed scenario 2: with scramble on and
// checksum 0x1234, the name region differs from the plaintext layout but
// un-scrambling recovers it exactly.
func TestLegacyRoundTripScrambled(t *testing.T) {
	tbl := newSeedLegacyTable(t)
	const checksum = 0x1234

	plain, err := serializeLegacy(tbl, false, checksum)
	if err != nil {
		t.Fatal(err)
	}
	scrambled, err := serializeLegacy(tbl, true, checksum)
	if err != nil {
		t.Fatal(err)
	}

	plainHeader, _ := readLegacyHeader(plain)
	scrambledHeader, _ := readLegacyHeader(scrambled)
	plainName := plain[plainHeader.nameOffset:plainHeader.stringOffset]
	scrambledName := scrambled[scrambledHeader.nameOffset:scrambledHeader.stringOffset]
	if string(plainName) == string(scrambledName) && len(plainName) > 0 {
		t.Error("scrambled name region should differ from the plaintext layout")
	}

	recovered := append([]byte(nil), scrambledName...)
	unscramble(recovered, checksum)
	if string(recovered) != string(plainName) {
		t.Error("un-scrambling the name region should recover the plaintext exactly")
	}

	got, err := parseLegacy(scrambled)
	if err != nil {
		t.Fatal(err)
	}
	assertSeedTableEqual(t, got)
}

func assertSeedTableEqual(t *testing.T, got *Table) {
	t.Helper()
	if got.Name != "TestTable" {
		t.Errorf("Name = %q, want TestTable", got.Name)
	}
	if len(got.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(got.Rows))
	}
	names := []string{"a", "b", "c"}
	for i, row := range got.Rows {
		if row.ID != uint32(1000+i) {
			t.Errorf("row %d: ID = %d, want %d", i, row.ID, 1000+i)
		}
		id, err := row.Cells[0].AsUInt32()
		if err != nil || id != uint32(1000+i) {
			t.Errorf("row %d: id cell = %d, %v", i, id, err)
		}
		name, err := resolveCellString(row.Cells[1], true)
		if err != nil || name != names[i] {
			t.Errorf("row %d: name cell = %q, %v, want %q", i, name, err, names[i])
		}
	}
}

func TestLegacyFlagScenario(t *testing.T) {
	// Seed scenario 5: a column declaring three flags (masks 0x01, 0x06,
	// 0xF8, shifts 0, 1, 3) on a parent byte 0xAB decodes to (1, 1, 21).
	cols := []Column{
		{
			Name: "flags",
			Tag:  UInt8,
			Flags: []Flag{
				{Name: "a", ParentColumn: 0, Mask: 0x01, Shift: 0},
				{Name: "b", ParentColumn: 0, Mask: 0x06, Shift: 1},
				{Name: "c", ParentColumn: 0, Mask: 0xF8, Shift: 3},
			},
		},
	}
	tbl, err := NewTable("Flags", Legacy, cols, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddRow(Row{Cells: []Value{UInt8Value(0xAB)}}); err != nil {
		t.Fatal(err)
	}

	data, err := serializeLegacy(tbl, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	got, err := parseLegacy(data)
	if err != nil {
		t.Fatal(err)
	}

	want := []uint32{1, 1, 21}
	for i, f := range got.Columns[0].Flags {
		v, err := got.Rows[0].FlagValue(f)
		if err != nil || v != want[i] {
			t.Errorf("flag %d = %d, %v, want %d", i, v, err, want[i])
		}
	}
}

func TestLegacyHashTableLookup(t *testing.T) {
	tbl := newSeedLegacyTable(t)
	data, err := serializeLegacy(tbl, false, 0)
	if err != nil {
		t.Fatal(err)
	}

	for i := uint32(0); i < 3; i++ {
		row, ok, err := lookupLegacyRow(data, 1000+i)
		if err != nil || !ok {
			t.Fatalf("lookup %d: ok=%v err=%v", 1000+i, ok, err)
		}
		if row.ID != 1000+i {
			t.Errorf("lookup %d returned row ID %d", 1000+i, row.ID)
		}
	}

	if _, ok, err := lookupLegacyRow(data, 9999); err != nil || ok {
		t.Errorf("lookup of an absent key: ok=%v err=%v, want ok=false", ok, err)
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	data := make([]byte, legacyHeaderSize)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected MalformedHeader for a zeroed buffer")
	}
}
