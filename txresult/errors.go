package txresult

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBase64 is returned by DecodeBase64 when the input is not
	// valid standard base64. It is never returned for a well-formed but
	// undecodable XDR payload.
	ErrInvalidBase64 = errors.New("invalid base64")
	// ErrTrailingData is returned in strict mode when bytes remain after the
	// transaction result.
	ErrTrailingData = errors.New("trailing data after transaction result")
)

// UnknownResultCodeError is returned for a transaction result code tag
// outside the known table.
type UnknownResultCodeError struct {
	Tag int32
}

func (e *UnknownResultCodeError) Error() string {
	return fmt.Sprintf("unknown result code %d", e.Tag)
}

// UnknownOperationTypeError is returned for an operation type tag outside
// the dispatch table.
type UnknownOperationTypeError struct {
	Tag int32
}

func (e *UnknownOperationTypeError) Error() string {
	return fmt.Sprintf("unknown operation type %d", e.Tag)
}

// UnknownTagError is returned for any other enumeration value outside its
// table: per-operation result codes, asset types, key types, offer effects.
type UnknownTagError struct {
	Enum string
	Tag  int32
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown %s %d", e.Enum, e.Tag)
}

// MalformedCountError is returned for a negative or implausibly large
// operation count.
type MalformedCountError struct {
	Count int32
	Max   int
}

func (e *MalformedCountError) Error() string {
	if e.Count < 0 {
		return fmt.Sprintf("malformed operation count %d: negative", e.Count)
	}
	return fmt.Sprintf("malformed operation count %d: exceeds maximum %d", e.Count, e.Max)
}

// OperationError locates a failure inside the operation result list.
type OperationError struct {
	Index int
	Err   error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %d: %v", e.Index, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
