package bdatfile

import (
	"path/filepath"
	"testing"

	"github.com/monolithsoft/bdat"
)

func seedTable(t *testing.T) *bdat.Table {
	t.Helper()
	cols := []bdat.Column{
		{Name: "id", Tag: bdat.UInt32},
		{Name: "name", Tag: bdat.String},
	}
	tbl, err := bdat.NewTable("Seed", bdat.Legacy, cols, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddRow(bdat.Row{Cells: []bdat.Value{bdat.UInt32Value(1), bdat.StringValue("one")}}); err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestOpenBytes(t *testing.T) {
	tbl := seedTable(t)
	data, err := bdat.Serialize([]*bdat.Table{tbl}, bdat.Legacy, nil)
	if err != nil {
		t.Fatal(err)
	}

	bf, err := OpenBytes(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(bf.Tables) != 1 || bf.Tables[0].Name != "Seed" {
		t.Fatalf("unexpected tables: %+v", bf.Tables)
	}
	if err := bf.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOpenBytesRejectsGarbage(t *testing.T) {
	if _, err := OpenBytes([]byte("not bdat"), nil); err == nil {
		t.Fatal("expected an error for non-BDAT bytes")
	}
}

func TestCreateAndOpenRoundTrip(t *testing.T) {
	tbl := seedTable(t)
	path := filepath.Join(t.TempDir(), "seed.bdat")

	if err := Create(path, []*bdat.Table{tbl}, bdat.Legacy, nil); err != nil {
		t.Fatal(err)
	}

	bf, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer bf.Close()

	if len(bf.Tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(bf.Tables))
	}
	row, ok := bf.Tables[0].RowByID(1)
	if !ok {
		t.Fatal("row with ID 1 not found")
	}
	name, err := row.Cells[1].AsString()
	if err != nil || name != "one" {
		t.Errorf("name cell = %q, %v, want %q", name, err, "one")
	}
}

func TestCreateScrambledRoundTrip(t *testing.T) {
	tbl := seedTable(t)
	path := filepath.Join(t.TempDir(), "scrambled.bdat")

	opts := &bdat.SerializeOptions{Scrambled: true, Checksum: 0x1234}
	if err := Create(path, []*bdat.Table{tbl}, bdat.Legacy, opts); err != nil {
		t.Fatal(err)
	}

	bf, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer bf.Close()

	row, ok := bf.Tables[0].RowByID(1)
	if !ok {
		t.Fatal("row with ID 1 not found")
	}
	name, err := row.Cells[1].AsString()
	if err != nil || name != "one" {
		t.Errorf("name cell = %q, %v, want %q", name, err, "one")
	}
}
