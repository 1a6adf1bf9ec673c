package db

import (
	"github.com/stellar/go/network"
	"github.com/stellar/go/xdr"
)

// TxHash returns the hash of a minimal transaction with the given sequence
// number, for use as an archive key in tests.
func TxHash(acctSeq uint32) xdr.Hash {
	envelope := TxEnvelope(acctSeq)
	hash, err := network.HashTransactionInEnvelope(envelope, network.FutureNetworkPassphrase)
	if err != nil {
		panic(err)
	}

	return hash
}

func TxEnvelope(acctSeq uint32) xdr.TransactionEnvelope {
	envelope, err := xdr.NewTransactionEnvelope(xdr.EnvelopeTypeEnvelopeTypeTx, xdr.TransactionV1Envelope{
		Tx: xdr.Transaction{
			Fee:           1,
			SeqNum:        xdr.SequenceNumber(acctSeq),
			SourceAccount: xdr.MustMuxedAddress("MA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVAAAAAAAAAAAAAJLK"),
		},
	})
	if err != nil {
		panic(err)
	}
	return envelope
}

// TransactionResultXDR returns an encoded transaction result charging fee,
// either successful with no operations or rejected with a bad sequence
// number.
func TransactionResultXDR(fee int64, successful bool) []byte {
	code := xdr.TransactionResultCodeTxBadSeq
	var opResults *[]xdr.OperationResult
	if successful {
		code = xdr.TransactionResultCodeTxSuccess
		opResults = &[]xdr.OperationResult{}
	}
	raw, err := xdr.TransactionResult{
		FeeCharged: xdr.Int64(fee),
		Result: xdr.TransactionResultResult{
			Code:    code,
			Results: opResults,
		},
	}.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return raw
}
