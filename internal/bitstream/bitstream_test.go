package bitstream

import (
	"errors"
	"testing"
)

func TestExtract_BigEndianBitOrder(t *testing.T) {
	r := NewReader([]byte{0b1010_0000, 0xFF, 0x01})

	if v := r.Extract(1); v != 1 {
		t.Errorf("first bit = %d, want 1", v)
	}
	if v := r.Extract(3); v != 0b010 {
		t.Errorf("next 3 bits = %03b, want 010", v)
	}
	if v := r.Extract(8); v != 0x0F {
		t.Errorf("straddling byte = %#x, want 0x0f", v)
	}
	if v := r.Extract(12); v != 0xF01 {
		t.Errorf("tail = %#x, want 0xf01", v)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", r.Remaining())
	}
	if err := r.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExtract_FullWidth(t *testing.T) {
	r := NewReader([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x80})
	r.Skip(1)
	if v := r.Extract(32); v != 0xBD5B7DDF {
		t.Errorf("Extract(32) = %#x, want 0xbd5b7ddf", v)
	}
}

func TestWriterMirrorsReader(t *testing.T) {
	fields := []struct {
		width int
		value uint32
	}{
		{8, 0x04}, {3, 5}, {2, 2}, {4, 11}, {1, 1}, {16, 0xBEEF}, {5, 31}, {32, 0x12345678},
	}

	buf := make([]byte, 20)
	w := NewWriter(buf)
	for _, f := range fields {
		w.Assign(f.width, f.value)
	}
	if err := w.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := NewReader(w.Bytes())
	for i, f := range fields {
		if got := r.Extract(f.width); got != f.value {
			t.Errorf("field %d: got %#x, want %#x", i, got, f.value)
		}
	}
}

func TestAssign_KeepsOnlyLowBits(t *testing.T) {
	buf := make([]byte, 1)
	w := NewWriter(buf)
	w.Assign(4, 0xFA)
	if buf[0] != 0xA0 {
		t.Errorf("buf = %08b, want 10100000", buf[0])
	}
}

func TestOverrunIsSticky(t *testing.T) {
	r := NewReader([]byte{0xFF})
	r.Extract(6)
	if v := r.Extract(4); v != 0 {
		t.Errorf("overrunning Extract = %d, want 0", v)
	}
	if !errors.Is(r.Err(), ErrOverrun) {
		t.Fatalf("Err() = %v, want ErrOverrun", r.Err())
	}
	if v := r.Extract(1); v != 0 {
		t.Errorf("Extract after overrun = %d, want 0", v)
	}

	r.Reset()
	if r.Err() != nil || r.Extract(8) != 0xFF {
		t.Error("Reset should rewind and clear the error")
	}
}

func TestWidthOutOfRange(t *testing.T) {
	w := NewWriter(make([]byte, 8))
	w.Assign(33, 0)
	if !errors.Is(w.Err(), ErrWidth) {
		t.Errorf("Err() = %v, want ErrWidth", w.Err())
	}
}

func TestSkipPastEnd(t *testing.T) {
	r := NewReader(make([]byte, 2))
	r.Skip(17)
	if !errors.Is(r.Err(), ErrOverrun) {
		t.Errorf("Err() = %v, want ErrOverrun", r.Err())
	}
}
