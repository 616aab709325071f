package bdat

import "encoding/binary"

// Murmur3-32 constants, seed fixed at 0.
const (
	murmurC1 = 0xcc9e2d51
	murmurC2 = 0x1b873593
)

// Murmur3 computes the 32-bit Murmur3 hash of data with seed 0. The
// modern dialect uses this to turn row labels and column names into the
// hashes stored on disk; builders use it to populate HashRef cells.
func Murmur3(data []byte) uint32 {
	var h1 uint32

	nblocks := len(data) / 4
	for i := 0; i < nblocks; i++ {
		k1 := binary.LittleEndian.Uint32(data[i*4:])
		k1 *= murmurC1
		k1 = rotl32(k1, 15)
		k1 *= murmurC2

		h1 ^= k1
		h1 = rotl32(h1, 13)
		h1 = h1*5 + 0xe6546b64
	}

	tail := data[nblocks*4:]
	var k1 uint32
	switch len(tail) {
	case 3:
		k1 ^= uint32(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint32(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint32(tail[0])
		k1 *= murmurC1
		k1 = rotl32(k1, 15)
		k1 *= murmurC2
		h1 ^= k1
	}

	h1 ^= uint32(len(data))
	h1 = fmix32(h1)
	return h1
}

func rotl32(x uint32, r uint8) uint32 {
	return (x << r) | (x >> (32 - r))
}

// fmix32 is Murmur3's avalanche finalizer.
func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// LabelHash is Murmur3 applied to a UTF-8 label, used to identify rows
// and name columns/tables in the modern dialect.
func LabelHash(label string) uint32 {
	return Murmur3([]byte(label))
}
