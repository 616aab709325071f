package bdat

import "testing"

// TestSerializePublicScrambleOption exercises the public Serialize entry
// point's scramble option, the only reachable path for an outside caller
// to produce a scrambled legacy file.
func TestSerializePublicScrambleOption(t *testing.T) {
	tbl := newSeedLegacyTable(t)

	data, err := Serialize([]*Table{tbl}, Legacy, &SerializeOptions{Scrambled: true, Checksum: 0x1234})
	if err != nil {
		t.Fatal(err)
	}

	got, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d tables, want 1", len(got))
	}
	assertSeedTableEqual(t, got[0])
}

func TestSerializeNilOptionsDefaultUnscrambled(t *testing.T) {
	tbl := newSeedLegacyTable(t)

	data, err := Serialize([]*Table{tbl}, Legacy, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	assertSeedTableEqual(t, got[0])
}
