// Package bdat reads and writes Xenoblade's BDAT tabular binary format,
// in both the legacy dialect shared by Xenoblade 1, X, 2 and Definitive
// Edition and the modern dialect introduced with Xenoblade 3.
package bdat

import "encoding/binary"

// Parse decodes every table found in data, detecting the dialect from
// the header shape that follows the common "BDAT" magic. The legacy
// dialect holds exactly one table per file; the modern dialect holds one
// or more, packed back to back behind an outer directory.
func Parse(data []byte) ([]*Table, error) {
	if len(data) < 8 {
		return nil, errInsufficientData("Parse: too short for any BDAT header", nil)
	}
	if binary.LittleEndian.Uint32(data[0:4]) != BdatMagic {
		return nil, errMalformedHeader("Parse: missing BDAT magic", nil)
	}

	if isModernHeader(data) {
		return parseModern(data)
	}
	t, err := parseLegacy(data)
	if err != nil {
		return nil, err
	}
	return []*Table{t}, nil
}

// isModernHeader distinguishes the two dialects by the bytes immediately
// following the shared magic. The legacy header's next two bytes are a
// flags byte (always 0 or 1) and a reserved zero byte, read together as
// uint16 they can only ever be 0 or 1; the modern header's same two
// bytes are a version word fixed at modernFileVersion, chosen outside
// that range so the two headers can never be confused.
func isModernHeader(data []byte) bool {
	if len(data) < 6 {
		return false
	}
	version := binary.LittleEndian.Uint16(data[4:6])
	return version == modernFileVersion
}

// SerializeOptions controls dialect-specific writer behavior. A nil
// *SerializeOptions is equivalent to the zero value: unscrambled output
// with a zero checksum.
type SerializeOptions struct {
	// Scrambled requests the legacy XOR-stream obfuscation over the name
	// region and string heap, the way real Xenoblade 1/X/2/DE data is
	// routinely shipped. Ignored for the modern dialect, which has no
	// scrambling.
	Scrambled bool

	// Checksum seeds the scramble key and is always written to the
	// legacy header's checksum field, whether or not Scrambled is set.
	Checksum uint16
}

// Serialize encodes tables into a single BDAT file under dialect. Every
// table must already carry that dialect; the legacy dialect accepts
// exactly one table, matching how the format is used in the field. opts
// may be nil to accept the defaults (unscrambled, zero checksum).
func Serialize(tables []*Table, dialect Dialect, opts *SerializeOptions) ([]byte, error) {
	if opts == nil {
		opts = &SerializeOptions{}
	}
	switch dialect {
	case Legacy:
		if len(tables) != 1 {
			return nil, errUnsupportedDialect("Serialize: legacy dialect holds exactly one table")
		}
		return serializeLegacy(tables[0], opts.Scrambled, opts.Checksum)
	case Modern:
		return serializeModern(tables)
	default:
		return nil, errUnsupportedDialect("Serialize: unknown dialect")
	}
}
