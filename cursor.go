// Forward-only read primitives for the container format.
//
// Every section of a container is found by adding up lengths decoded from
// earlier sections, so the decoder is written entirely in terms of four
// operations on a Cursor: SeekTo an absolute offset, Skip forward, Read a
// fixed number of bytes, and Offset. Reads go through ReadAt so a Cursor
// never touches a shared file position; copying the Cursor value gives an
// independent probe that can measure ahead without moving the original.
package gck

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Cursor reads big-endian fields from a fixed byte source.
type Cursor struct {
	src  io.ReaderAt
	size int64
	off  int64
}

// NewCursor returns a Cursor positioned at the start of src.
func NewCursor(src io.ReaderAt, size int64) *Cursor {
	return &Cursor{src: src, size: size}
}

// Offset returns the current absolute position.
func (c *Cursor) Offset() int64 {
	return c.off
}

// Size returns the length of the underlying source.
func (c *Cursor) Size() int64 {
	return c.size
}

// SeekTo moves to an absolute offset. Offsets past the end are allowed; the
// next read reports ErrTruncated.
func (c *Cursor) SeekTo(off int64) error {
	if off < 0 {
		return fmt.Errorf("%w: seek to %d", ErrTruncated, off)
	}
	c.off = off
	return nil
}

// Skip advances n bytes. Length fields read from damaged files can be zero
// or negative; those skips do nothing.
func (c *Cursor) Skip(n int64) {
	if n > 0 {
		c.off += n
	}
}

// Read returns the next n bytes and advances past them.
func (c *Cursor) Read(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: read of %d bytes at %d", ErrNegativeLength, n, c.off)
	}
	if c.off+int64(n) > c.size {
		return nil, fmt.Errorf("%w: read of %d bytes at %d (size %d)", ErrTruncated, n, c.off, c.size)
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := c.src.ReadAt(buf, c.off); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: read of %d bytes at %d", ErrTruncated, n, c.off)
		}
		return nil, err
	}
	c.off += int64(n)
	return buf, nil
}

// Uint8 reads one unsigned byte.
func (c *Cursor) Uint8() (byte, error) {
	b, err := c.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Int16 reads a big-endian signed 16-bit integer.
func (c *Cursor) Int16() (int16, error) {
	b, err := c.Read(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

// Int32 reads a big-endian signed 32-bit integer.
func (c *Cursor) Int32() (int32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// String reads n raw bytes as a string. Container text is single-byte;
// bytes are kept as-is with no charset conversion.
func (c *Cursor) String(n int) (string, error) {
	b, err := c.Read(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// record is one fixed-size on-disk record. Field accessors take offsets
// relative to the start of the record; callers check the record is long
// enough before reading.
type record []byte

func (r record) byteAt(off int) byte {
	return r[off]
}

func (r record) int16At(off int) int16 {
	return int16(binary.BigEndian.Uint16(r[off:]))
}

func (r record) int32At(off int) int32 {
	return int32(binary.BigEndian.Uint32(r[off:]))
}
