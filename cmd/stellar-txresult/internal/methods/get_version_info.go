package methods

import (
	"context"

	"github.com/creachadair/jrpc2"

	"github.com/stellar/txresult/cmd/stellar-txresult/internal/config"
)

type GetVersionInfoResponse struct {
	Version        string `json:"version"`
	CommitHash     string `json:"commit_hash"`
	BuildTimestamp string `json:"build_time_stamp"`
	Branch         string `json:"branch"`
}

func NewGetVersionInfoHandler() jrpc2.Handler {
	return NewHandler(func(_ context.Context) (GetVersionInfoResponse, error) {
		return GetVersionInfoResponse{
			Version:        config.Version,
			CommitHash:     config.CommitHash,
			BuildTimestamp: config.BuildTimestamp,
			Branch:         config.Branch,
		}, nil
	})
}
