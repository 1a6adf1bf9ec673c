package xdrcursor

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xdr3 "github.com/stellar/go-xdr/xdr3"
)

func encode(t *testing.T, fn func(e *xdr3.Encoder) error) []byte {
	var buf bytes.Buffer
	require.NoError(t, fn(xdr3.NewEncoder(&buf)))
	return buf.Bytes()
}

func TestReadIntegers(t *testing.T) {
	buf := encode(t, func(e *xdr3.Encoder) error {
		for _, f := range []func() (int, error){
			func() (int, error) { return e.EncodeInt(-5) },
			func() (int, error) { return e.EncodeUint(math.MaxUint32) },
			func() (int, error) { return e.EncodeHyper(math.MinInt64) },
			func() (int, error) { return e.EncodeUhyper(math.MaxUint64) },
		} {
			if _, err := f(); err != nil {
				return err
			}
		}
		return nil
	})

	c := New(buf)
	i32, err := c.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-5), i32)
	u32, err := c.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), u32)
	i64, err := c.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), i64)
	u64, err := c.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), u64)
	assert.True(t, c.Done())
	assert.Equal(t, 24, c.Offset())
}

func TestTruncatedReads(t *testing.T) {
	for _, tc := range []struct {
		name string
		buf  []byte
		read func(c *Cursor) error
	}{
		{"int32", []byte{0, 0, 1}, func(c *Cursor) error { _, err := c.ReadInt32(); return err }},
		{"int64", []byte{0, 0, 0, 0, 0, 0, 1}, func(c *Cursor) error { _, err := c.ReadInt64(); return err }},
		{"bool", nil, func(c *Cursor) error { _, err := c.ReadBool(); return err }},
		{"fixed-opaque", []byte{1, 2, 3}, func(c *Cursor) error { _, err := c.ReadFixedOpaque(4); return err }},
		{"fixed-opaque-padding", []byte{1, 2, 3}, func(c *Cursor) error { _, err := c.ReadFixedOpaque(3); return err }},
		{"var-opaque", []byte{0, 0, 0, 8, 1, 2}, func(c *Cursor) error { _, err := c.ReadVarOpaque(Unbounded); return err }},
		{"string-length", []byte{0, 0}, func(c *Cursor) error { _, err := c.ReadString(10); return err }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := New(tc.buf)
			err := tc.read(c)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTruncatedInput)
			var readErr *ReadError
			require.True(t, errors.As(err, &readErr))
		})
	}
}

func TestFailedReadDoesNotAdvancePastBuffer(t *testing.T) {
	c := New([]byte{0, 0, 0, 1, 0, 0})
	_, err := c.ReadInt32()
	require.NoError(t, err)
	_, err = c.ReadInt32()
	require.ErrorIs(t, err, ErrTruncatedInput)
	assert.Equal(t, 4, c.Offset())
	assert.Equal(t, 2, c.Remaining())
}

func TestReadBool(t *testing.T) {
	buf := encode(t, func(e *xdr3.Encoder) error {
		if _, err := e.EncodeBool(true); err != nil {
			return err
		}
		if _, err := e.EncodeBool(false); err != nil {
			return err
		}
		_, err := e.EncodeInt(2)
		return err
	})
	c := New(buf)
	b, err := c.ReadBool()
	require.NoError(t, err)
	assert.True(t, b)
	present, err := c.ReadOptional()
	require.NoError(t, err)
	assert.False(t, present)
	_, err = c.ReadBool()
	require.ErrorIs(t, err, ErrMalformedBool)
	require.EqualError(t, err, "xdr: reading bool at offset 8: malformed boolean")
}

func TestReadOpaqueAndString(t *testing.T) {
	buf := encode(t, func(e *xdr3.Encoder) error {
		if _, err := e.EncodeFixedOpaque([]byte("USD")); err != nil {
			return err
		}
		if _, err := e.EncodeOpaque([]byte{9, 8, 7, 6, 5}); err != nil {
			return err
		}
		_, err := e.EncodeString("home.domain")
		return err
	})
	c := New(buf)
	code, err := c.ReadFixedOpaque(3)
	require.NoError(t, err)
	assert.Equal(t, []byte("USD"), code)
	assert.Equal(t, 4, c.Offset())

	data, err := c.ReadVarOpaque(64)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8, 7, 6, 5}, data)
	assert.Equal(t, 16, c.Offset())

	s, err := c.ReadString(32)
	require.NoError(t, err)
	assert.Equal(t, "home.domain", s)
	assert.True(t, c.Done())
}

func TestOpaqueIsCopied(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	c := New(buf)
	b, err := c.ReadFixedOpaque(4)
	require.NoError(t, err)
	buf[0] = 0xff
	assert.Equal(t, byte(1), b[0])
}

func TestNonZeroPadding(t *testing.T) {
	c := New([]byte{'a', 'b', 'c', 1})
	_, err := c.ReadFixedOpaque(3)
	require.ErrorIs(t, err, ErrNonZeroPadding)
}

func TestLengthBound(t *testing.T) {
	// declared length of 4GiB-1 must be rejected before allocating
	c := New([]byte{0xff, 0xff, 0xff, 0xff})
	_, err := c.ReadVarOpaque(Unbounded)
	var lengthErr *LengthError
	require.True(t, errors.As(err, &lengthErr))
	assert.Equal(t, uint32(math.MaxUint32), lengthErr.Length)
	assert.Equal(t, uint32(MaxLength), lengthErr.Max)

	buf := encode(t, func(e *xdr3.Encoder) error {
		_, err := e.EncodeString("too long")
		return err
	})
	_, err = New(buf).ReadString(4)
	require.EqualError(t, err, "xdr: reading string at offset 0: declared length 8 exceeds maximum 4")

	// an unbounded string is still held to MaxLength
	_, err = New([]byte{0, 1, 0, 1}).ReadString(Unbounded)
	require.True(t, errors.As(err, &lengthErr))
	assert.Equal(t, uint32(MaxLength+1), lengthErr.Length)
	assert.Equal(t, uint32(MaxLength), lengthErr.Max)
}

func TestReadCount(t *testing.T) {
	c := New([]byte{0xff, 0xff, 0xff, 0xff})
	_, err := c.ReadCount(4)
	var countErr *CountError
	require.True(t, errors.As(err, &countErr))
	assert.Equal(t, int32(-1), countErr.Count)
	assert.NotErrorIs(t, err, ErrTruncatedInput)

	// 1000 elements of 8 bytes cannot fit in 4 remaining bytes
	c = New([]byte{0, 0, 0x03, 0xe8, 0, 0, 0, 0})
	_, err = c.ReadCount(8)
	require.True(t, errors.As(err, &countErr))
	assert.Equal(t, int32(1000), countErr.Count)
	assert.Equal(t, 4, countErr.Remaining)
	assert.ErrorIs(t, err, ErrTruncatedInput)

	c = New([]byte{0, 0, 0, 1, 0, 0, 0, 0})
	n, err := c.ReadCount(4)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewAt(t *testing.T) {
	c, err := NewAt([]byte{0xff, 0xff, 0, 0, 0, 7}, 2)
	require.NoError(t, err)
	v, err := c.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)

	_, err = NewAt([]byte{1}, 2)
	require.EqualError(t, err, "xdr: offset 2 out of range [0, 1]")
}
