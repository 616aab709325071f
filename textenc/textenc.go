// Package textenc decodes and encodes the text carried in a BDAT string
// heap. The legacy dialect (Xenoblade 1/X/2/DE) shipped its string heaps
// Shift-JIS encoded; the modern dialect (Xenoblade 3) shipped UTF-8.
package textenc

import (
	"bytes"

	"golang.org/x/text/encoding/japanese"
)

// Decode turns heap bytes (without the terminating NUL) into a Go string
// for the given dialect.
func Decode(legacy bool, b []byte) (string, error) {
	if !legacy {
		return string(b), nil
	}
	if len(b) == 0 {
		return "", nil
	}
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Encode turns a Go string into heap bytes (without a terminating NUL) for
// the given dialect.
func Encode(legacy bool, s string) ([]byte, error) {
	if !legacy {
		return []byte(s), nil
	}
	if s == "" {
		return nil, nil
	}
	out, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SplitNUL walks b from offset to the next NUL byte and returns the span
// in between, the same way the legacy and modern string heaps are read.
func SplitNUL(b []byte, offset int) ([]byte, error) {
	if offset < 0 || offset > len(b) {
		return nil, errOutOfRange
	}
	n := bytes.IndexByte(b[offset:], 0)
	if n < 0 {
		return nil, errUnterminated
	}
	return b[offset : offset+n], nil
}
