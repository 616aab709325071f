package bdat

import "github.com/monolithsoft/bdat/textenc"

// decodeBorrowed decodes a span borrowed from a reader's input buffer
// using the dialect's text encoding (Shift-JIS for legacy, UTF-8 for
// modern).
func decodeBorrowed(legacy bool, b []byte) (string, error) {
	return textenc.Decode(legacy, b)
}

// stringHeap is a builder for the NUL-terminated string region both
// codecs write on serialize. It interns identical strings to the same
// offset; interning is allowed, not required, per spec §3.
type stringHeap struct {
	legacy bool
	buf    []byte
	offset map[string]uint32
}

func newStringHeap(legacy bool) *stringHeap {
	return &stringHeap{legacy: legacy, offset: make(map[string]uint32)}
}

// intern writes s (NUL-terminated) into the heap if not already present
// and returns its offset.
func (h *stringHeap) intern(s string) (uint32, error) {
	if off, ok := h.offset[s]; ok {
		return off, nil
	}
	enc, err := textenc.Encode(h.legacy, s)
	if err != nil {
		return 0, err
	}
	off := uint32(len(h.buf))
	h.buf = append(h.buf, enc...)
	h.buf = append(h.buf, 0)
	h.offset[s] = off
	return off, nil
}

func (h *stringHeap) bytes() []byte {
	return h.buf
}

func (h *stringHeap) len() uint32 {
	return uint32(len(h.buf))
}

// readHeapString reads the NUL-terminated span at offset in heap and
// decodes it per dialect.
func readHeapString(heap []byte, offset uint32, legacy bool) (string, error) {
	span, err := textenc.SplitNUL(heap, int(offset))
	if err != nil {
		return "", errInvalidOffset("string heap offset", err)
	}
	return textenc.Decode(legacy, span)
}

// heapSpan returns the raw (still-encoded) NUL-terminated span at offset,
// for callers that want a borrowed Value rather than a decoded string.
func heapSpan(heap []byte, offset uint32) ([]byte, error) {
	span, err := textenc.SplitNUL(heap, int(offset))
	if err != nil {
		return nil, errInvalidOffset("string heap offset", err)
	}
	return span, nil
}

// scanHeapLabels walks every NUL-terminated entry of a modern (UTF-8)
// string heap and returns a map from each entry's Murmur3 label hash to
// its text. The modern dialect has no dedicated name region, so this is
// how a reader recovers column names and HashRef labels: both are
// interned into the same table string heap as ordinary row strings.
func scanHeapLabels(heap []byte) map[uint32]string {
	out := make(map[uint32]string)
	var pos int
	for pos < len(heap) {
		span, err := textenc.SplitNUL(heap, pos)
		if err != nil {
			break
		}
		s, err := textenc.Decode(false, span)
		if err == nil {
			out[LabelHash(s)] = s
		}
		pos += len(span) + 1
	}
	return out
}
