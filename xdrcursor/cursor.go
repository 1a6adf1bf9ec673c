// Package xdrcursor implements a forward-only, bounds-checked reader over an
// XDR encoded byte buffer.
//
// A Cursor is not safe for concurrent use. Decodes that run in parallel must
// each own a Cursor over their own buffer.
package xdrcursor

import (
	"encoding/binary"
	"fmt"
)

// MaxLength is the upper bound applied to every variable-length field,
// regardless of the per-call maximum.
const MaxLength = 64 * 1024

// Unbounded passed as maxLen to ReadVarOpaque or ReadString applies only
// MaxLength.
const Unbounded uint32 = 0

// Cursor reads XDR primitives from a buffer, advancing an offset on every
// successful read. It never rewinds.
type Cursor struct {
	buf    []byte
	offset int
}

// New returns a cursor positioned at the start of buf.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// NewAt returns a cursor positioned at offset.
func NewAt(buf []byte, offset int) (*Cursor, error) {
	if offset < 0 || offset > len(buf) {
		return nil, fmt.Errorf("xdr: offset %d out of range [0, %d]", offset, len(buf))
	}
	return &Cursor{buf: buf, offset: offset}, nil
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.offset
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.offset
}

// Done reports whether the whole buffer has been consumed.
func (c *Cursor) Done() bool {
	return c.Remaining() == 0
}

func (c *Cursor) fail(field string, err error) error {
	return &ReadError{Offset: c.offset, Field: field, Err: err}
}

// take returns the next n bytes without copying. Callers must copy before
// handing the bytes out.
func (c *Cursor) take(field string, n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, c.fail(field, ErrTruncatedInput)
	}
	b := c.buf[c.offset : c.offset+n]
	c.offset += n
	return b, nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.take("uint32", 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *Cursor) ReadInt32() (int32, error) {
	b, err := c.take("int32", 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.take("uint64", 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (c *Cursor) ReadInt64() (int64, error) {
	b, err := c.take("int64", 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// ReadBool reads a boolean encoded as a 4-byte 0 or 1.
func (c *Cursor) ReadBool() (bool, error) {
	start := c.offset
	v, err := c.ReadInt32()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &ReadError{Offset: start, Field: "bool", Err: ErrMalformedBool}
	}
}

// ReadOptional reads the presence flag of an optional value.
func (c *Cursor) ReadOptional() (bool, error) {
	return c.ReadBool()
}

func (c *Cursor) readPadded(field string, n int) ([]byte, error) {
	b, err := c.take(field, n)
	if err != nil {
		return nil, err
	}
	if pad := (4 - n%4) % 4; pad > 0 {
		padding, err := c.take(field+" padding", pad)
		if err != nil {
			return nil, err
		}
		for _, p := range padding {
			if p != 0 {
				return nil, c.fail(field+" padding", ErrNonZeroPadding)
			}
		}
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadFixedOpaque reads n bytes followed by zero padding up to a multiple
// of four.
func (c *Cursor) ReadFixedOpaque(n int) ([]byte, error) {
	if n < 0 || n > MaxLength {
		return nil, c.fail("fixed opaque", &LengthError{Length: uint32(n), Max: MaxLength})
	}
	return c.readPadded("fixed opaque", n)
}

func (c *Cursor) readLength(field string, maxLen uint32) (int, error) {
	start := c.offset
	length, err := c.ReadUint32()
	if err != nil {
		return 0, err
	}
	if maxLen == Unbounded || maxLen > MaxLength {
		maxLen = MaxLength
	}
	if length > maxLen {
		return 0, &ReadError{Offset: start, Field: field, Err: &LengthError{Length: length, Max: maxLen}}
	}
	if int(length) > c.Remaining() {
		return 0, &ReadError{Offset: start, Field: field, Err: ErrTruncatedInput}
	}
	return int(length), nil
}

// ReadVarOpaque reads a length-prefixed byte string of at most maxLen bytes,
// or MaxLength bytes when maxLen is Unbounded.
func (c *Cursor) ReadVarOpaque(maxLen uint32) ([]byte, error) {
	n, err := c.readLength("var opaque", maxLen)
	if err != nil {
		return nil, err
	}
	return c.readPadded("var opaque", n)
}

// ReadString reads a length-prefixed string of at most maxLen bytes, or
// MaxLength bytes when maxLen is Unbounded.
func (c *Cursor) ReadString(maxLen uint32) (string, error) {
	n, err := c.readLength("string", maxLen)
	if err != nil {
		return "", err
	}
	b, err := c.readPadded("string", n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadCount reads an array length and checks that count elements of at
// least minElemSize bytes each can fit in what is left of the buffer, so
// that callers can allocate without trusting the input.
func (c *Cursor) ReadCount(minElemSize int) (int, error) {
	start := c.offset
	count, err := c.ReadInt32()
	if err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, &ReadError{Offset: start, Field: "count", Err: &CountError{Count: count, Remaining: c.Remaining()}}
	}
	if minElemSize < 1 {
		minElemSize = 1
	}
	if int64(count)*int64(minElemSize) > int64(c.Remaining()) {
		return 0, &ReadError{Offset: start, Field: "count", Err: &CountError{Count: count, Remaining: c.Remaining()}}
	}
	return int(count), nil
}
