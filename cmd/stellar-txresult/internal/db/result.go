package db

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/stellar/go/support/db"
	"github.com/stellar/go/support/log"
	"github.com/stellar/go/xdr"

	"github.com/stellar/txresult/amount"
	"github.com/stellar/txresult/txresult"
)

const resultTableName = "decoded_results"

var ErrNoResult = errors.New("no decoded result with this hash exists")

// StoredResult is the archived summary of a decoded transaction result,
// along with the XDR it was decoded from.
type StoredResult struct {
	Hash           xdr.Hash
	FeeCharged     amount.Amount
	ResultCode     txresult.ResultCode
	OperationCount int
	Successful     bool
	ResultXDR      []byte
	DecodedAt      time.Time
}

// ResultWriter archives decoded transaction results.
type ResultWriter interface {
	InsertResult(ctx context.Context, hash xdr.Hash, raw []byte, result *txresult.TransactionResult) error
}

// ResultReader provides all the public ways to read archived results.
type ResultReader interface {
	GetResult(ctx context.Context, hash xdr.Hash) (StoredResult, error)
	CountResults(ctx context.Context) (int, error)
	// RecentFees returns the fee charged of the most recently archived
	// results, oldest first.
	RecentFees(ctx context.Context, limit uint32) ([]amount.Amount, error)
}

type resultHandler struct {
	log *log.Entry
	db  db.SessionInterface
	now func() time.Time
}

func NewResultWriter(log *log.Entry, db db.SessionInterface) ResultWriter {
	return &resultHandler{log: log, db: db, now: time.Now}
}

func NewResultReader(log *log.Entry, db db.SessionInterface) ResultReader {
	return &resultHandler{log: log, db: db, now: time.Now}
}

// InsertResult stores a decoded result, replacing any previous result
// archived under the same hash.
func (h *resultHandler) InsertResult(ctx context.Context, hash xdr.Hash, raw []byte,
	result *txresult.TransactionResult,
) error {
	query := sq.Replace(resultTableName).
		Columns("hash", "fee_charged", "result_code", "operation_count", "successful", "result_xdr", "decoded_at").
		Values(
			hash[:],
			result.FeeCharged().String(),
			int32(result.ResultCode()),
			len(result.OperationResults()),
			result.Succeeded(),
			raw,
			h.now().Unix(),
		)
	if _, err := h.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("could not archive result %s: %w", hex.EncodeToString(hash[:]), err)
	}

	h.log.
		WithField("txhash", hex.EncodeToString(hash[:])).
		WithField("result_code", result.ResultCode().String()).
		Debug("archived decoded transaction result")
	return nil
}

type storedResultRow struct {
	Hash           []byte `db:"hash"`
	FeeCharged     string `db:"fee_charged"`
	ResultCode     int32  `db:"result_code"`
	OperationCount int    `db:"operation_count"`
	Successful     bool   `db:"successful"`
	ResultXDR      []byte `db:"result_xdr"`
	DecodedAt      int64  `db:"decoded_at"`
}

func (row storedResultRow) toStoredResult() (StoredResult, error) {
	fee, err := amount.Parse(row.FeeCharged)
	if err != nil {
		return StoredResult{}, err
	}
	var hash xdr.Hash
	if len(row.Hash) != len(hash) {
		return StoredResult{}, fmt.Errorf("invalid stored hash length %d", len(row.Hash))
	}
	copy(hash[:], row.Hash)
	return StoredResult{
		Hash:           hash,
		FeeCharged:     fee,
		ResultCode:     txresult.ResultCode(row.ResultCode),
		OperationCount: row.OperationCount,
		Successful:     row.Successful,
		ResultXDR:      row.ResultXDR,
		DecodedAt:      time.Unix(row.DecodedAt, 0).UTC(),
	}, nil
}

func (h *resultHandler) GetResult(ctx context.Context, hash xdr.Hash) (StoredResult, error) {
	var rows []storedResultRow
	query := sq.
		Select("hash", "fee_charged", "result_code", "operation_count", "successful", "result_xdr", "decoded_at").
		From(resultTableName).
		Where(sq.Eq{"hash": hash[:]}).
		Limit(1)
	if err := h.db.Select(ctx, &rows, query); err != nil {
		return StoredResult{}, fmt.Errorf("db read failed for txhash %s: %w", hex.EncodeToString(hash[:]), err)
	} else if len(rows) < 1 {
		return StoredResult{}, ErrNoResult
	}
	return rows[0].toStoredResult()
}

func (h *resultHandler) CountResults(ctx context.Context) (int, error) {
	var count int
	query := sq.Select("COUNT(*)").From(resultTableName)
	if err := h.db.Get(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("could not count archived results: %w", err)
	}
	return count, nil
}

func (h *resultHandler) RecentFees(ctx context.Context, limit uint32) ([]amount.Amount, error) {
	var fees []string
	query := sq.Select("fee_charged").
		From(resultTableName).
		OrderBy("decoded_at DESC", "rowid DESC").
		Limit(uint64(limit))
	if err := h.db.Select(ctx, &fees, query); err != nil {
		return nil, fmt.Errorf("could not read recent fees: %w", err)
	}

	result := make([]amount.Amount, len(fees))
	for i, fee := range fees {
		parsed, err := amount.Parse(fee)
		if err != nil {
			return nil, err
		}
		// rows come newest first
		result[len(fees)-1-i] = parsed
	}
	return result, nil
}
