package db

import (
	"context"
	"sync"
	"time"

	"github.com/stellar/go/xdr"

	"github.com/stellar/txresult/amount"
	"github.com/stellar/txresult/txresult"
)

type mockResultHandler struct {
	lock    sync.Mutex
	results map[xdr.Hash]StoredResult
	order   []xdr.Hash
	err     error
}

// NewMockResultStore returns an in-memory archive implementing both
// ResultReader and ResultWriter.
func NewMockResultStore() *mockResultHandler {
	return &mockResultHandler{results: make(map[xdr.Hash]StoredResult)}
}

// FailWith makes every following call return err.
func (m *mockResultHandler) FailWith(err error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.err = err
}

func (m *mockResultHandler) InsertResult(_ context.Context, hash xdr.Hash, raw []byte,
	result *txresult.TransactionResult,
) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.results[hash]; !ok {
		m.order = append(m.order, hash)
	}
	m.results[hash] = StoredResult{
		Hash:           hash,
		FeeCharged:     result.FeeCharged(),
		ResultCode:     result.ResultCode(),
		OperationCount: len(result.OperationResults()),
		Successful:     result.Succeeded(),
		ResultXDR:      append([]byte(nil), raw...),
		DecodedAt:      time.Now().UTC().Truncate(time.Second),
	}
	return nil
}

func (m *mockResultHandler) GetResult(_ context.Context, hash xdr.Hash) (StoredResult, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.err != nil {
		return StoredResult{}, m.err
	}
	result, ok := m.results[hash]
	if !ok {
		return StoredResult{}, ErrNoResult
	}
	return result, nil
}

func (m *mockResultHandler) CountResults(context.Context) (int, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return len(m.results), nil
}

func (m *mockResultHandler) RecentFees(_ context.Context, limit uint32) ([]amount.Amount, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	start := 0
	if len(m.order) > int(limit) {
		start = len(m.order) - int(limit)
	}
	fees := make([]amount.Amount, 0, len(m.order)-start)
	for _, hash := range m.order[start:] {
		fees = append(fees, m.results[hash].FeeCharged)
	}
	return fees, nil
}
