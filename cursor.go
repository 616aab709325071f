package bdat

import (
	"encoding/binary"
	"math"
)

// cursor is a checked read position over an input byte slice. Every
// multi-byte integer in both BDAT dialects is little-endian.
type cursor struct {
	buf []byte
	pos uint32
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) seek(offset uint32) {
	c.pos = offset
}

func (c *cursor) tell() uint32 {
	return c.pos
}

func (c *cursor) len() uint32 {
	return uint32(len(c.buf))
}

// bytesAt returns a checked view of n bytes starting at offset, without
// advancing the cursor's own position.
func bytesAt(buf []byte, offset, n uint32) ([]byte, error) {
	if offset > uint32(len(buf)) {
		return nil, errInvalidOffset("bytesAt", nil)
	}
	end := offset + n
	if end < offset || end > uint32(len(buf)) {
		return nil, errInsufficientData("bytesAt", nil)
	}
	return buf[offset:end], nil
}

func (c *cursor) require(n uint32) error {
	if c.pos+n < c.pos || c.pos+n > c.len() {
		return errInsufficientData("cursor read", nil)
	}
	return nil
}

func (c *cursor) u8() (uint8, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) i8() (int8, error) {
	v, err := c.u8()
	return int8(v), err
}

func (c *cursor) u16() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *cursor) i16() (int16, error) {
	v, err := c.u16()
	return int16(v), err
}

func (c *cursor) u32() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	return int32(v), err
}

func (c *cursor) f32() (float32, error) {
	v, err := c.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// bytes returns n bytes at the current position and advances the cursor.
func (c *cursor) bytes(n uint32) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	v := c.buf[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// encoder is the write-side counterpart to cursor: a little-endian,
// append-only byte builder.
type encoder struct {
	buf []byte
}

func newEncoder() *encoder {
	return &encoder{}
}

func (e *encoder) len() uint32 {
	return uint32(len(e.buf))
}

func (e *encoder) bytes() []byte {
	return e.buf
}

func (e *encoder) putU8(v uint8) {
	e.buf = append(e.buf, v)
}

func (e *encoder) putI8(v int8) {
	e.putU8(uint8(v))
}

func (e *encoder) putU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) putI16(v int16) {
	e.putU16(uint16(v))
}

func (e *encoder) putU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) putI32(v int32) {
	e.putU32(uint32(v))
}

func (e *encoder) putF32(v float32) {
	e.putU32(math.Float32bits(v))
}

func (e *encoder) putBytes(b []byte) {
	e.buf = append(e.buf, b...)
}

// putU32At overwrites 4 bytes at a position already written, used to back
// -patch section offsets/lengths once the surrounding layout is known.
func (e *encoder) putU32At(offset uint32, v uint32) {
	binary.LittleEndian.PutUint32(e.buf[offset:], v)
}

func (e *encoder) putU16At(offset uint32, v uint16) {
	binary.LittleEndian.PutUint16(e.buf[offset:], v)
}

// padTo pads the encoder with zero bytes until its length is a multiple
// of align.
func (e *encoder) padTo(align uint32) {
	if align == 0 {
		return
	}
	for e.len()%align != 0 {
		e.putU8(0)
	}
}
