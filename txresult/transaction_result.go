// Package txresult decodes the XDR TransactionResult returned by the network
// when a transaction is submitted into a typed, immutable result tree.
package txresult

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/stellar/txresult/amount"
	"github.com/stellar/txresult/xdrcursor"
)

// DefaultMaxOperations is the protocol limit on operations per transaction.
const DefaultMaxOperations = 100

type decodeOptions struct {
	maxOperations int
	strictLength  bool
}

// Option changes how a transaction result is decoded.
type Option func(*decodeOptions)

// WithMaxOperations bounds the operation count accepted from the wire.
func WithMaxOperations(n int) Option {
	return func(o *decodeOptions) {
		o.maxOperations = n
	}
}

// WithStrictLength rejects buffers with bytes left after the result.
func WithStrictLength() Option {
	return func(o *decodeOptions) {
		o.strictLength = true
	}
}

// TransactionResult is a fully decoded transaction result. It is only ever
// produced complete by Decode and is not modified afterwards.
type TransactionResult struct {
	feeCharged amount.Amount
	resultCode ResultCode
	operations []OperationResult
}

// FeeCharged returns the fee charged in stroops.
func (r *TransactionResult) FeeCharged() amount.Amount {
	return r.feeCharged
}

func (r *TransactionResult) ResultCode() ResultCode {
	return r.resultCode
}

// OperationResults returns the operation results in submission order. The
// slice is a copy; it is empty when the network never applied the operations.
func (r *TransactionResult) OperationResults() []OperationResult {
	out := make([]OperationResult, len(r.operations))
	copy(out, r.operations)
	return out
}

// Succeeded returns true if all operations in the transaction succeeded.
func (r *TransactionResult) Succeeded() bool {
	return r.resultCode == ResultCodeSuccess
}

// Failed returns true if the network rejected the transaction for any reason.
func (r *TransactionResult) Failed() bool {
	return !r.Succeeded()
}

// FailedOperations returns the indexes of the operations whose own result
// code is not a success.
func (r *TransactionResult) FailedOperations() []int {
	var failed []int
	for i, op := range r.operations {
		if !op.Succeeded() {
			failed = append(failed, i)
		}
	}
	return failed
}

// OperationSummary is the rendering of one operation result shared by every
// JSON view of a transaction result.
type OperationSummary struct {
	Type       OperationType   `json:"type"`
	Code       string          `json:"code"`
	Successful bool            `json:"successful"`
	Detail     OperationResult `json:"detail"`
}

// OperationSummaries returns a summary of every operation result, in order.
func (r *TransactionResult) OperationSummaries() []OperationSummary {
	summaries := make([]OperationSummary, len(r.operations))
	for i, op := range r.operations {
		summaries[i] = OperationSummary{
			Type:       op.Type(),
			Code:       op.CodeName(),
			Successful: op.Succeeded(),
			Detail:     op,
		}
	}
	return summaries
}

type transactionResultJSON struct {
	FeeCharged       amount.Amount      `json:"feeCharged"`
	ResultCode       ResultCode         `json:"resultCode"`
	Successful       bool               `json:"successful"`
	OperationResults []OperationSummary `json:"operationResults"`
}

func (r *TransactionResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionResultJSON{
		FeeCharged:       r.feeCharged,
		ResultCode:       r.resultCode,
		Successful:       r.Succeeded(),
		OperationResults: r.OperationSummaries(),
	})
}

// Decode decodes an XDR encoded transaction result.
func Decode(buf []byte, opts ...Option) (*TransactionResult, error) {
	c := xdrcursor.New(buf)
	o := newDecodeOptions(opts)
	result, err := decodeFrom(c, o)
	if err != nil {
		return nil, err
	}
	if o.strictLength && !c.Done() {
		return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrTrailingData, c.Remaining(), c.Offset())
	}
	return result, nil
}

// DecodeBase64 decodes the base64 result_xdr field of a submission response.
func DecodeBase64(s string, opts ...Option) (*TransactionResult, error) {
	result, _, err := DecodeBase64Raw(s, opts...)
	return result, err
}

// DecodeBase64Raw is DecodeBase64, also returning the XDR bytes the result
// was decoded from.
func DecodeBase64Raw(s string, opts ...Option) (*TransactionResult, []byte, error) {
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	result, err := Decode(buf, opts...)
	if err != nil {
		return nil, nil, err
	}
	return result, buf, nil
}

// DecodeFrom decodes a transaction result starting at the cursor's current
// position, leaving the cursor right after the last field read.
func DecodeFrom(c *xdrcursor.Cursor, opts ...Option) (*TransactionResult, error) {
	return decodeFrom(c, newDecodeOptions(opts))
}

func newDecodeOptions(opts []Option) decodeOptions {
	o := decodeOptions{maxOperations: DefaultMaxOperations}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func decodeFrom(c *xdrcursor.Cursor, o decodeOptions) (*TransactionResult, error) {
	fee, err := c.ReadInt64()
	if err != nil {
		return nil, fmt.Errorf("reading fee charged: %w", err)
	}

	tag, err := c.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("reading result code: %w", err)
	}
	code, err := resultCodeFromTag(tag)
	if err != nil {
		return nil, err
	}

	result := &TransactionResult{
		feeCharged: amount.New(fee),
		resultCode: code,
		operations: []OperationResult{},
	}
	if !code.ExecutesOperations() {
		// the operations never ran, so no count is on the wire
		return result, nil
	}

	count, err := c.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("reading operation count: %w", err)
	}
	if count < 0 || int(count) > o.maxOperations {
		return nil, &MalformedCountError{Count: count, Max: o.maxOperations}
	}

	ops := make([]OperationResult, 0, min(int(count), c.Remaining()/minOperationRecordSize))
	for i := 0; i < int(count); i++ {
		op, err := decodeOperationResult(c)
		if err != nil {
			return nil, &OperationError{Index: i, Err: err}
		}
		ops = append(ops, op)
	}
	result.operations = ops
	return result, nil
}
