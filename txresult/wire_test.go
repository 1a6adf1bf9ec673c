package txresult

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	xdr3 "github.com/stellar/go-xdr/xdr3"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/strkey"
)

// wire builds XDR test buffers with an independent encoder.
type wire struct {
	t   *testing.T
	buf bytes.Buffer
	enc *xdr3.Encoder
}

func newWire(t *testing.T) *wire {
	w := &wire{t: t}
	w.enc = xdr3.NewEncoder(&w.buf)
	return w
}

func (w *wire) int32(v int32) *wire {
	_, err := w.enc.EncodeInt(v)
	require.NoError(w.t, err)
	return w
}

func (w *wire) uint32(v uint32) *wire {
	_, err := w.enc.EncodeUint(v)
	require.NoError(w.t, err)
	return w
}

func (w *wire) int64(v int64) *wire {
	_, err := w.enc.EncodeHyper(v)
	require.NoError(w.t, err)
	return w
}

func (w *wire) fixed(b []byte) *wire {
	_, err := w.enc.EncodeFixedOpaque(b)
	require.NoError(w.t, err)
	return w
}

func (w *wire) account(id AccountID) *wire {
	return w.int32(publicKeyTypeEd25519).fixed(id[:])
}

func (w *wire) native() *wire {
	return w.int32(int32(AssetTypeNative))
}

func (w *wire) credit(code string, issuer AccountID) *wire {
	if len(code) <= 4 {
		padded := make([]byte, 4)
		copy(padded, code)
		return w.int32(int32(AssetTypeCreditAlphanum4)).fixed(padded).account(issuer)
	}
	padded := make([]byte, 12)
	copy(padded, code)
	return w.int32(int32(AssetTypeCreditAlphanum12)).fixed(padded).account(issuer)
}

// header writes the fee, the result code and, for codes that executed
// operations, the operation count.
func (w *wire) header(fee int64, code ResultCode, ops int32) *wire {
	w.int64(fee).int32(int32(code))
	if code.ExecutesOperations() {
		w.int32(ops)
	}
	return w
}

func (w *wire) op(opType OperationType, code int32) *wire {
	return w.int32(int32(opType)).int32(code)
}

func (w *wire) bytes() []byte {
	return append([]byte(nil), w.buf.Bytes()...)
}

func randomAccount(t *testing.T) (AccountID, string) {
	kp := keypair.MustRandom()
	raw := strkey.MustDecode(strkey.VersionByteAccountID, kp.Address())
	var id AccountID
	require.Len(t, raw, len(id))
	copy(id[:], raw)
	return id, kp.Address()
}
