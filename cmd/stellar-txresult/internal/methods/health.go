package methods

import (
	"context"
	"fmt"

	"github.com/creachadair/jrpc2"

	"github.com/stellar/txresult/cmd/stellar-txresult/internal/db"
)

type HealthCheckResult struct {
	Status          string `json:"status"`
	ArchivedResults int    `json:"archivedResults"`
}

// NewHealthCheck returns a health check json rpc handler
func NewHealthCheck(reader db.ResultReader) jrpc2.Handler {
	return NewHandler(func(ctx context.Context) (HealthCheckResult, error) {
		count, err := reader.CountResults(ctx)
		if err != nil {
			return HealthCheckResult{}, &jrpc2.Error{
				Code:    jrpc2.InternalError,
				Message: fmt.Sprintf("result archive is unavailable: %v", err),
			}
		}
		return HealthCheckResult{
			Status:          "healthy",
			ArchivedResults: count,
		}, nil
	})
}
