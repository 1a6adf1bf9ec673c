package methods

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/creachadair/jrpc2"
	"github.com/stretchr/testify/require"

	xdr3 "github.com/stellar/go-xdr/xdr3"

	"github.com/stellar/txresult/txresult"
)

// encodeResult returns the base64 encoding of a transaction result whose
// operations carry no payload.
func encodeResult(t *testing.T, fee int64, code txresult.ResultCode, ops ...[2]int32) string {
	var buf bytes.Buffer
	enc := xdr3.NewEncoder(&buf)
	encode := func(_ int, err error) {
		require.NoError(t, err)
	}
	encode(enc.EncodeHyper(fee))
	encode(enc.EncodeInt(int32(code)))
	if code.ExecutesOperations() {
		encode(enc.EncodeInt(int32(len(ops))))
		for _, op := range ops {
			encode(enc.EncodeInt(op[0]))
			encode(enc.EncodeInt(op[1]))
		}
	}
	// ext
	encode(enc.EncodeInt(0))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func paymentOp(code txresult.PaymentResultCode) [2]int32 {
	return [2]int32{int32(txresult.OperationTypePayment), int32(code)}
}

// callHandler runs h over a JSON-RPC request carrying params.
func callHandler(t *testing.T, h jrpc2.Handler, params string) (any, error) {
	request := `{"jsonrpc": "2.0", "id": 1, "method": "test"`
	if params != "" {
		request += `, "params": ` + params
	}
	request += `}`
	requests, err := jrpc2.ParseRequests([]byte(request))
	require.NoError(t, err)
	require.Len(t, requests, 1)
	return h(context.Background(), requests[0].ToRequest())
}

func toJSON(t *testing.T, v any) string {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
