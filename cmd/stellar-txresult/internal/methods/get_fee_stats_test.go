package methods

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/txresult/cmd/stellar-txresult/internal/config"
	"github.com/stellar/txresult/cmd/stellar-txresult/internal/db"
	"github.com/stellar/txresult/cmd/stellar-txresult/internal/feewindow"
	"github.com/stellar/txresult/txresult"
)

func TestGetFeeStats(t *testing.T) {
	window := feewindow.NewFeeWindow(5)
	h := NewGetFeeStatsHandler(window, 5)

	result, err := callHandler(t, h, "")
	require.NoError(t, err)
	assert.Equal(t, GetFeeStatsResult{WindowSize: 5}, result)

	window.AppendFees(100, 100, 300)
	result, err = callHandler(t, h, "")
	require.NoError(t, err)
	stats, ok := result.(GetFeeStatsResult)
	require.True(t, ok)
	assert.Equal(t, uint64(100), stats.FeeCharged.Mode)
	assert.Equal(t, uint64(300), stats.FeeCharged.Max)
	assert.Equal(t, uint32(3), stats.FeeCharged.TransactionCount)
	assert.JSONEq(t, `{
		"feeCharged": {
			"max": "300", "min": "100", "mode": "100",
			"p10": "100", "p20": "100", "p30": "100", "p40": "100", "p50": "100",
			"p60": "100", "p70": "300", "p80": "300", "p90": "300", "p95": "300", "p99": "300",
			"transactionCount": "3"
		},
		"windowSize": 5
	}`, toJSON(t, stats))
}

func TestHealthCheck(t *testing.T) {
	store := db.NewMockResultStore()
	h := NewHealthCheck(store)

	result, err := callHandler(t, h, "")
	require.NoError(t, err)
	assert.Equal(t, HealthCheckResult{Status: "healthy"}, result)

	_, err = DecodeTransactionResult(context.TODO(), newDecodeParams(store), DecodeTransactionResultRequest{
		ResultXdr: encodeResult(t, 100, txresult.ResultCodeSuccess),
		Hash:      "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	})
	require.NoError(t, err)
	result, err = callHandler(t, h, "")
	require.NoError(t, err)
	assert.Equal(t, HealthCheckResult{Status: "healthy", ArchivedResults: 1}, result)

	store.FailWith(errors.New("no such table"))
	_, err = callHandler(t, h, "")
	require.EqualError(t, err, "[-32603] result archive is unavailable: no such table")
}

func TestGetVersionInfo(t *testing.T) {
	config.Version = "1.2.3"
	config.CommitHash = "abcdef"
	defer func() {
		config.Version = "0.0.0"
		config.CommitHash = ""
	}()

	result, err := callHandler(t, NewGetVersionInfoHandler(), "")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"version": "1.2.3",
		"commit_hash": "abcdef",
		"build_time_stamp": "",
		"branch": ""
	}`, toJSON(t, result))
}
