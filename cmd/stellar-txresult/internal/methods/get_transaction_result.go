package methods

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/creachadair/jrpc2"

	"github.com/stellar/go/support/log"

	"github.com/stellar/txresult/cmd/stellar-txresult/internal/db"
	"github.com/stellar/txresult/txresult"
)

type GetTransactionResultRequest struct {
	Hash string `json:"hash"`
}

// GetTransactionResultResponse is the response for the getTransactionResult() endpoint
type GetTransactionResultResponse struct {
	// Status is one of: TransactionStatusSuccess, TransactionStatusNotFound, or TransactionStatusFailed.
	Status string `json:"status"`

	// The fields below are only present if Status is not TransactionStatusNotFound.

	// DecodedAt is the unix timestamp of when the result was archived.
	DecodedAt int64 `json:"decodedAt,string,omitempty"`
	// ResultXdr is the archived TransactionResult XDR value.
	ResultXdr string `json:"resultXdr,omitempty"`
	*DecodedResult
}

func GetTransactionResult(
	ctx context.Context,
	log *log.Entry,
	reader db.ResultReader,
	maxOperations int,
	request GetTransactionResultRequest,
) (GetTransactionResultResponse, error) {
	txHash, err := parseHash(request.Hash)
	if err != nil {
		return GetTransactionResultResponse{}, err
	}

	stored, err := reader.GetResult(ctx, txHash)
	if errors.Is(err, db.ErrNoResult) {
		return GetTransactionResultResponse{Status: TransactionStatusNotFound}, nil
	} else if err != nil {
		log.WithError(err).
			WithField("hash", request.Hash).
			Errorf("failed to fetch decoded result")
		return GetTransactionResultResponse{}, &jrpc2.Error{
			Code:    jrpc2.InternalError,
			Message: err.Error(),
		}
	}

	if maxOperations <= 0 {
		maxOperations = txresult.DefaultMaxOperations
	}
	// the archive only holds results which decoded, but the bound may have
	// been lowered since
	result, err := txresult.Decode(stored.ResultXDR, txresult.WithMaxOperations(maxOperations))
	if err != nil {
		log.WithError(err).
			WithField("hash", request.Hash).
			Errorf("archived result no longer decodes")
		return GetTransactionResultResponse{}, &jrpc2.Error{
			Code:    jrpc2.InternalError,
			Message: err.Error(),
		}
	}

	decoded := newDecodedResult(result)
	return GetTransactionResultResponse{
		Status:        resultStatus(result),
		DecodedAt:     stored.DecodedAt.Unix(),
		ResultXdr:     base64.StdEncoding.EncodeToString(stored.ResultXDR),
		DecodedResult: &decoded,
	}, nil
}

// NewGetTransactionResultHandler returns a json rpc handler fetching archived
// transaction results
func NewGetTransactionResultHandler(logger *log.Entry, reader db.ResultReader, maxOperations int) jrpc2.Handler {
	return NewHandler(func(ctx context.Context, request GetTransactionResultRequest) (GetTransactionResultResponse, error) {
		return GetTransactionResult(ctx, logger, reader, maxOperations, request)
	})
}
