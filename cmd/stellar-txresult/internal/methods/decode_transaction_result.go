package methods

import (
	"context"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/pkg/errors"

	"github.com/stellar/go/support/log"
	"github.com/stellar/go/xdr"

	"github.com/stellar/txresult/cmd/stellar-txresult/internal/db"
	"github.com/stellar/txresult/cmd/stellar-txresult/internal/feewindow"
	"github.com/stellar/txresult/txresult"
)

const (
	// TransactionStatusSuccess indicates every operation of the transaction
	// was applied.
	TransactionStatusSuccess = "SUCCESS"
	// TransactionStatusNotFound indicates no result was archived under the
	// requested hash.
	TransactionStatusNotFound = "NOT_FOUND"
	// TransactionStatusFailed indicates the network rejected the transaction,
	// either before applying it or because an operation failed.
	TransactionStatusFailed = "FAILED"
)

type DecodeTransactionResultRequest struct {
	// ResultXdr is the base64 encoded TransactionResult.
	ResultXdr string `json:"resultXdr"`
	// Hash is the hex encoded transaction hash. When present the decoded
	// result is archived under it.
	Hash string `json:"hash,omitempty"`
}

// DecodedResult is the JSON rendering of a decoded transaction result.
type DecodedResult struct {
	// FeeCharged is the fee charged in stroops, as a decimal string.
	FeeCharged string `json:"feeCharged"`
	// FeeChargedXlm is the fee charged in lumens.
	FeeChargedXlm    string                      `json:"feeChargedXlm"`
	ResultCode       txresult.ResultCode         `json:"resultCode"`
	OperationResults []txresult.OperationSummary `json:"operationResults"`
	// FailedOperations lists the indexes of the operations which did not
	// succeed.
	FailedOperations []int `json:"failedOperations,omitempty"`
}

type DecodeTransactionResultResponse struct {
	// Status is one of: TransactionStatusSuccess or TransactionStatusFailed.
	Status string `json:"status"`
	DecodedResult
}

func newDecodedResult(result *txresult.TransactionResult) DecodedResult {
	return DecodedResult{
		FeeCharged:       result.FeeCharged().String(),
		FeeChargedXlm:    result.FeeCharged().Lumens(),
		ResultCode:       result.ResultCode(),
		OperationResults: result.OperationSummaries(),
		FailedOperations: result.FailedOperations(),
	}
}

func decodeResultXdr(resultXdr string, maxOperations int) (*txresult.TransactionResult, []byte, error) {
	if maxOperations <= 0 {
		maxOperations = txresult.DefaultMaxOperations
	}
	result, raw, err := txresult.DecodeBase64Raw(resultXdr, txresult.WithMaxOperations(maxOperations))
	if errors.Is(err, txresult.ErrInvalidBase64) {
		return nil, nil, errors.Wrap(err, "resultXdr is not valid base64")
	}
	return result, raw, err
}

func resultStatus(result *txresult.TransactionResult) string {
	if result.Succeeded() {
		return TransactionStatusSuccess
	}
	return TransactionStatusFailed
}

type DecodeParams struct {
	Logger        *log.Entry
	Writer        db.ResultWriter
	FeeWindow     *feewindow.FeeWindow
	Metrics       *DecodeMetrics
	MaxOperations int
}

func DecodeTransactionResult(
	ctx context.Context,
	params DecodeParams,
	request DecodeTransactionResultRequest,
) (DecodeTransactionResultResponse, error) {
	if request.ResultXdr == "" {
		return DecodeTransactionResultResponse{}, &jrpc2.Error{
			Code:    jrpc2.InvalidParams,
			Message: "resultXdr is required",
		}
	}

	var hash xdr.Hash
	if request.Hash != "" {
		var err error
		if hash, err = parseHash(request.Hash); err != nil {
			return DecodeTransactionResultResponse{}, err
		}
	}

	startTime := time.Now()
	result, raw, err := decodeResultXdr(request.ResultXdr, params.MaxOperations)
	duration := time.Since(startTime).Seconds()
	if err != nil {
		params.Metrics.observe(decodeStatusError, duration, 0)
		params.Logger.WithError(err).Debug("could not decode transaction result")
		return DecodeTransactionResultResponse{}, &jrpc2.Error{
			Code:    jrpc2.InvalidParams,
			Message: err.Error(),
		}
	}
	status := decodeStatusFailed
	if result.Succeeded() {
		status = decodeStatusSuccess
	}
	params.Metrics.observe(status, duration, len(result.OperationResults()))

	if request.Hash != "" {
		if err := params.Writer.InsertResult(ctx, hash, raw, result); err != nil {
			err = errors.Wrapf(err, "could not archive result %s", request.Hash)
			params.Logger.WithError(err).Error("failed to archive decoded result")
			return DecodeTransactionResultResponse{}, &jrpc2.Error{
				Code:    jrpc2.InternalError,
				Message: err.Error(),
			}
		}
		if params.FeeWindow != nil {
			params.FeeWindow.IngestResult(result)
		}
	}

	return DecodeTransactionResultResponse{
		Status:        resultStatus(result),
		DecodedResult: newDecodedResult(result),
	}, nil
}

// NewDecodeTransactionResultHandler returns a json rpc handler decoding
// transaction results
func NewDecodeTransactionResultHandler(params DecodeParams) jrpc2.Handler {
	return NewHandler(func(ctx context.Context, request DecodeTransactionResultRequest) (DecodeTransactionResultResponse, error) {
		return DecodeTransactionResult(ctx, params, request)
	})
}
