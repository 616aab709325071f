package bdat

import "testing"

func TestCursorReadWriteRoundTrip(t *testing.T) {
	e := newEncoder()
	e.putU8(0xAB)
	e.putU16(0x1234)
	e.putU32(0xDEADBEEF)
	e.putI32(-1)
	e.putF32(1.5)
	e.putBytes([]byte("hi"))

	c := newCursor(e.bytes())
	if v, err := c.u8(); err != nil || v != 0xAB {
		t.Fatalf("u8 = %v, %v", v, err)
	}
	if v, err := c.u16(); err != nil || v != 0x1234 {
		t.Fatalf("u16 = %v, %v", v, err)
	}
	if v, err := c.u32(); err != nil || v != 0xDEADBEEF {
		t.Fatalf("u32 = %v, %v", v, err)
	}
	if v, err := c.i32(); err != nil || v != -1 {
		t.Fatalf("i32 = %v, %v", v, err)
	}
	if v, err := c.f32(); err != nil || v != 1.5 {
		t.Fatalf("f32 = %v, %v", v, err)
	}
	if v, err := c.bytes(2); err != nil || string(v) != "hi" {
		t.Fatalf("bytes = %v, %v", v, err)
	}
}

func TestCursorInsufficientData(t *testing.T) {
	c := newCursor([]byte{1, 2})
	if _, err := c.u32(); err == nil {
		t.Fatal("expected an error reading past the end of the buffer")
	}
}

func TestEncoderPatch(t *testing.T) {
	e := newEncoder()
	e.putU32(0)
	e.putU32(0)
	e.putU32At(0, 42)
	e.putU16At(4, 7)

	c := newCursor(e.bytes())
	if v, _ := c.u32(); v != 42 {
		t.Fatalf("putU32At did not patch: got %d", v)
	}
	if v, _ := c.u16(); v != 7 {
		t.Fatalf("putU16At did not patch: got %d", v)
	}
}
