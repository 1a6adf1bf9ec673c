package methods

import (
	"encoding/hex"
	"fmt"

	"github.com/creachadair/jrpc2"

	"github.com/stellar/go/xdr"
)

func parseHash(hash string) (xdr.Hash, error) {
	var txHash xdr.Hash
	if hex.DecodedLen(len(hash)) != len(txHash) {
		return txHash, &jrpc2.Error{
			Code:    jrpc2.InvalidParams,
			Message: fmt.Sprintf("unexpected hash length (%d)", len(hash)),
		}
	}
	if _, err := hex.Decode(txHash[:], []byte(hash)); err != nil {
		return txHash, &jrpc2.Error{
			Code:    jrpc2.InvalidParams,
			Message: fmt.Sprintf("incorrect hash: %v", err),
		}
	}
	return txHash, nil
}
