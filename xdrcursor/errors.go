package xdrcursor

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedInput is returned when fewer bytes remain than the field needs.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrMalformedBool is returned for a boolean that is neither 0 nor 1.
	ErrMalformedBool = errors.New("malformed boolean")
	// ErrNonZeroPadding is returned when the alignment padding of an opaque
	// field contains non-zero bytes.
	ErrNonZeroPadding = errors.New("non-zero padding")
)

// ReadError records where in the buffer a read failed.
type ReadError struct {
	Offset int
	Field  string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("xdr: reading %s at offset %d: %v", e.Field, e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// LengthError is returned when a length prefix exceeds the allowed maximum.
type LengthError struct {
	Length uint32
	Max    uint32
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("declared length %d exceeds maximum %d", e.Length, e.Max)
}

// CountError is returned when an array length is negative or larger than the
// remaining input could possibly hold.
type CountError struct {
	Count     int32
	Remaining int
}

func (e *CountError) Error() string {
	if e.Count < 0 {
		return fmt.Sprintf("negative element count %d", e.Count)
	}
	return fmt.Sprintf("element count %d cannot fit in %d remaining bytes", e.Count, e.Remaining)
}

// Unwrap reports a count that overruns the buffer as truncated input.
func (e *CountError) Unwrap() error {
	if e.Count < 0 {
		return nil
	}
	return ErrTruncatedInput
}
