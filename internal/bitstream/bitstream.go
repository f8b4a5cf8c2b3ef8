// Package bitstream reads and writes unsigned bit fields packed most
// significant bit first into fixed byte buffers.
//
// Bit i of a buffer is data[i/8] & (1 << (7 - i%8)). Reader and Writer share
// this addressing so that a value written with Assign is read back by Extract
// at the same offset.
//
// Neither type panics on misuse. Reading or writing past the end of the
// buffer, or asking for more than 32 bits at once, records a sticky error
// that is reported by Err; subsequent calls are no-ops returning zero.
package bitstream

import (
	"errors"
	"fmt"
)

// MaxWidth is the widest field Extract and Assign accept.
const MaxWidth = 32

var (
	ErrOverrun = errors.New("bitstream: access past end of buffer")
	ErrWidth   = errors.New("bitstream: field width out of range")
)

// cursor holds the addressing state shared by Reader and Writer.
type cursor struct {
	data []byte
	pos  int
	err  error
}

func (c *cursor) check(n int) bool {
	if c.err != nil {
		return false
	}
	if n < 0 || n > MaxWidth {
		c.err = fmt.Errorf("%w: %d", ErrWidth, n)
		return false
	}
	if c.pos+n > len(c.data)*8 {
		c.err = fmt.Errorf("%w: need %d bits at offset %d of %d", ErrOverrun, n, c.pos, len(c.data)*8)
		c.pos = len(c.data) * 8
		return false
	}
	return true
}

// Skip advances the cursor by n bits.
func (c *cursor) Skip(n int) {
	if c.err != nil {
		return
	}
	if n < 0 || c.pos+n > len(c.data)*8 {
		c.err = fmt.Errorf("%w: skip %d bits at offset %d", ErrOverrun, n, c.pos)
		c.pos = len(c.data) * 8
		return
	}
	c.pos += n
}

// Reset rewinds the cursor to the first bit and clears any error.
func (c *cursor) Reset() {
	c.pos = 0
	c.err = nil
}

// Pos returns the cursor offset in bits.
func (c *cursor) Pos() int { return c.pos }

// Remaining returns the number of bits after the cursor.
func (c *cursor) Remaining() int { return len(c.data)*8 - c.pos }

// Err returns the first error encountered since the last Reset.
func (c *cursor) Err() error { return c.err }

// Reader extracts bit fields from a byte buffer.
type Reader struct {
	cursor
}

// NewReader returns a Reader positioned at the first bit of data.
// The slice is not copied.
func NewReader(data []byte) *Reader {
	return &Reader{cursor{data: data}}
}

// Extract consumes the next n bits and returns them as an unsigned value.
func (r *Reader) Extract(n int) uint32 {
	if !r.check(n) {
		return 0
	}
	var v uint32
	for i := 0; i < n; i++ {
		bit := r.pos + i
		v <<= 1
		if r.data[bit/8]&(1<<(7-bit%8)) != 0 {
			v |= 1
		}
	}
	r.pos += n
	return v
}

// Writer assigns bit fields into a byte buffer.
type Writer struct {
	cursor
}

// NewWriter returns a Writer that fills data from its first bit.
// The slice is not copied.
func NewWriter(data []byte) *Writer {
	return &Writer{cursor{data: data}}
}

// Assign writes the low n bits of v at the cursor and advances it.
// Bits are ORed into the buffer, so the target region should be zero.
func (w *Writer) Assign(n int, v uint32) {
	if !w.check(n) {
		return
	}
	for i := 0; i < n; i++ {
		bit := w.pos + i
		if v&(1<<(n-1-i)) != 0 {
			w.data[bit/8] |= 1 << (7 - bit%8)
		}
	}
	w.pos += n
}

// Bytes returns the underlying buffer.
func (w *Writer) Bytes() []byte { return w.data }
