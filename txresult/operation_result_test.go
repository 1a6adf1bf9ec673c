package txresult

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/go/xdr"

	"github.com/stellar/txresult/xdrcursor"
)

func TestEveryOperationTypeHasDecoder(t *testing.T) {
	require.Len(t, OperationTypes(), len(operationDecoders))
	for _, opType := range OperationTypes() {
		_, ok := operationDecoders[opType]
		assert.True(t, ok, "no decoder for %s", opType)
	}
}

func TestOperationTypesMatchProtocol(t *testing.T) {
	expected := map[OperationType]xdr.OperationType{
		OperationTypeCreateAccount:         xdr.OperationTypeCreateAccount,
		OperationTypePayment:               xdr.OperationTypePayment,
		OperationTypePathPayment:           xdr.OperationTypePathPaymentStrictReceive,
		OperationTypeManageOffer:           xdr.OperationTypeManageSellOffer,
		OperationTypeCreatePassiveOffer:    xdr.OperationTypeCreatePassiveSellOffer,
		OperationTypeSetOptions:            xdr.OperationTypeSetOptions,
		OperationTypeChangeTrust:           xdr.OperationTypeChangeTrust,
		OperationTypeAllowTrust:            xdr.OperationTypeAllowTrust,
		OperationTypeAccountMerge:          xdr.OperationTypeAccountMerge,
		OperationTypeInflation:             xdr.OperationTypeInflation,
		OperationTypeManageData:            xdr.OperationTypeManageData,
		OperationTypeBumpSequence:          xdr.OperationTypeBumpSequence,
		OperationTypeManageBuyOffer:        xdr.OperationTypeManageBuyOffer,
		OperationTypePathPaymentStrictSend: xdr.OperationTypePathPaymentStrictSend,
	}
	require.Len(t, expected, len(OperationTypes()))
	for _, opType := range OperationTypes() {
		assert.Equal(t, int32(expected[opType]), int32(opType), opType.String())
	}
}

func TestOperationCodesMatchProtocol(t *testing.T) {
	assert.EqualValues(t, xdr.PaymentResultCodePaymentUnderfunded, PaymentUnderfunded)
	assert.EqualValues(t, xdr.PaymentResultCodePaymentNoIssuer, PaymentNoIssuer)
	assert.EqualValues(t, xdr.ManageSellOfferResultCodeManageSellOfferLowReserve, ManageOfferLowReserve)
	assert.EqualValues(t, xdr.PathPaymentStrictReceiveResultCodePathPaymentStrictReceiveOverSendmax, PathPaymentOverSendMax)
	assert.EqualValues(t, xdr.PathPaymentStrictSendResultCodePathPaymentStrictSendUnderDestmin, PathPaymentStrictSendUnderDestMin)
	assert.EqualValues(t, xdr.AccountMergeResultCodeAccountMergeIsSponsor, AccountMergeIsSponsor)
	assert.EqualValues(t, xdr.BumpSequenceResultCodeBumpSequenceBadSeq, BumpSequenceBadSeq)
	assert.EqualValues(t, xdr.InflationResultCodeInflationNotTime, InflationNotTime)
}

func TestOperationCodeNames(t *testing.T) {
	assert.Equal(t, "over_sendmax", PathPaymentOverSendMax.String())
	assert.Equal(t, "under_destmin", PathPaymentStrictSendUnderDestMin.String())
	assert.Equal(t, "too_few_offers", PathPaymentStrictSendTooFewOffers.String())
	assert.Equal(t, "low_reserve", ManageOfferLowReserve.String())
	assert.Equal(t, "code(-42)", PaymentResultCode(-42).String())
	assert.Equal(t, "OperationType(99)", OperationType(99).String())
	assert.Equal(t, "ResultCode(-99)", ResultCode(-99).String())
	assert.Equal(t, "bad_seq", ResultCodeBadSeq.String())
	assert.Equal(t, "deleted", ManageOfferDeleted.String())
	assert.Equal(t, "ManageOfferEffect(7)", ManageOfferEffect(7).String())

	_, err := OperationType(99).MarshalText()
	require.Error(t, err)
}

func decodeSingle(t *testing.T, w *wire) OperationResult {
	t.Helper()
	c := xdrcursor.New(w.bytes())
	op, err := decodeOperationResult(c)
	require.NoError(t, err)
	assert.True(t, c.Done(), "unread bytes after operation")
	return op
}

func TestDecodePathPayment(t *testing.T) {
	issuer, _ := randomAccount(t)
	dest, destAddress := randomAccount(t)

	op := decodeSingle(t, newWire(t).
		op(OperationTypePathPayment, int32(PathPaymentSuccess)).
		int32(1).
		account(issuer).int64(77).credit("USD", issuer).int64(30).native().int64(300).
		account(dest).credit("USD", issuer).int64(30))

	result, ok := op.(PathPaymentResult)
	require.True(t, ok)
	assert.True(t, result.Succeeded())
	require.NotNil(t, result.Success)
	require.Len(t, result.Success.Offers, 1)
	atom := result.Success.Offers[0]
	assert.Equal(t, issuer, atom.SellerID)
	assert.Equal(t, int64(77), atom.OfferID)
	assert.Equal(t, "USD", atom.AssetSold.Code)
	assert.True(t, atom.AssetBought.IsNative())
	assert.Equal(t, "300", atom.AmountBought.String())
	assert.Equal(t, destAddress, result.Success.Last.Destination.Address())

	received, ok := result.AmountReceived()
	require.True(t, ok)
	assert.Equal(t, "30", received.String())
}

func TestDecodePathPaymentFailureHasNoPayload(t *testing.T) {
	op := decodeSingle(t, newWire(t).op(OperationTypePathPayment, int32(PathPaymentTooFewOffers)))
	result := op.(PathPaymentResult)
	assert.False(t, result.Succeeded())
	assert.Nil(t, result.Success)
	assert.Equal(t, "too_few_offers", result.CodeName())
	_, ok := result.AmountReceived()
	assert.False(t, ok)
}

func TestDecodeManageOffer(t *testing.T) {
	seller, _ := randomAccount(t)

	created := decodeSingle(t, newWire(t).
		op(OperationTypeManageBuyOffer, int32(ManageOfferSuccess)).
		int32(0).int32(int32(ManageOfferCreated)).
		account(seller).int64(12).credit("BTCLN", seller).native().int64(500).int32(3).int32(4).uint32(1).int32(0))
	buy, ok := created.(ManageBuyOfferResult)
	require.True(t, ok)
	require.NotNil(t, buy.Success)
	assert.Empty(t, buy.Success.OffersClaimed)
	assert.Equal(t, ManageOfferCreated, buy.Success.Effect)
	require.NotNil(t, buy.Success.Offer)
	assert.Equal(t, int64(12), buy.Success.Offer.OfferID)
	assert.Equal(t, AssetTypeCreditAlphanum12, buy.Success.Offer.Selling.Type)
	assert.Equal(t, "BTCLN", buy.Success.Offer.Selling.Code)
	assert.Equal(t, Price{N: 3, D: 4}, buy.Success.Offer.Price)
	assert.Equal(t, uint32(1), buy.Success.Offer.Flags)

	deleted := decodeSingle(t, newWire(t).
		op(OperationTypeCreatePassiveOffer, int32(ManageOfferSuccess)).
		int32(0).int32(int32(ManageOfferDeleted)))
	passive := deleted.(CreatePassiveOfferResult)
	require.NotNil(t, passive.Success)
	assert.Nil(t, passive.Success.Offer)

	failed := decodeSingle(t, newWire(t).op(OperationTypeManageOffer, int32(ManageOfferUnderfunded)))
	assert.Equal(t, ManageOfferResult{ResultCode: ManageOfferUnderfunded}, failed)
}

func TestDecodeManageOfferUnknownEffect(t *testing.T) {
	buf := newWire(t).op(OperationTypeManageOffer, 0).int32(0).int32(7).bytes()
	_, err := decodeOperationResult(xdrcursor.New(buf))
	var unknown *UnknownTagError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "manage offer effect", unknown.Enum)
	assert.Equal(t, int32(7), unknown.Tag)
}

func TestDecodeUnknownAssetAndKeyType(t *testing.T) {
	dest, _ := randomAccount(t)
	buf := newWire(t).op(OperationTypePathPaymentStrictSend, 0).int32(0).account(dest).int32(5).bytes()
	_, err := decodeOperationResult(xdrcursor.New(buf))
	require.EqualError(t, err, "unknown asset type 5")

	buf = newWire(t).op(OperationTypeAccountMerge, 0).bytes()
	_, err = decodeOperationResult(xdrcursor.New(buf))
	require.ErrorIs(t, err, xdrcursor.ErrTruncatedInput)

	buf = newWire(t).op(OperationTypeInflation, 0).int32(1).int32(1).fixed(make([]byte, 32)).int64(5).bytes()
	_, err = decodeOperationResult(xdrcursor.New(buf))
	require.EqualError(t, err, "unknown public key type 1")
}

func TestDecodeAccountMerge(t *testing.T) {
	op := decodeSingle(t, newWire(t).op(OperationTypeAccountMerge, int32(AccountMergeSuccess)).int64(123456789))
	merge := op.(AccountMergeResult)
	require.NotNil(t, merge.SourceAccountBalance)
	assert.Equal(t, "12.3456789", merge.SourceAccountBalance.Lumens())

	op = decodeSingle(t, newWire(t).op(OperationTypeAccountMerge, int32(AccountMergeHasSubEntries)))
	assert.Equal(t, AccountMergeResult{ResultCode: AccountMergeHasSubEntries}, op)
}

func TestDecodeInflation(t *testing.T) {
	a, _ := randomAccount(t)
	b, _ := randomAccount(t)
	op := decodeSingle(t, newWire(t).
		op(OperationTypeInflation, int32(InflationSuccess)).
		int32(2).account(a).int64(10).account(b).int64(20))
	inflation := op.(InflationResult)
	require.Len(t, inflation.Payouts, 2)
	assert.Equal(t, a, inflation.Payouts[0].Destination)
	assert.Equal(t, "20", inflation.Payouts[1].Amount.String())

	// a payout count larger than the remaining input is rejected before
	// anything is allocated
	buf := newWire(t).op(OperationTypeInflation, 0).int32(1000000).bytes()
	_, err := decodeOperationResult(xdrcursor.New(buf))
	require.ErrorIs(t, err, xdrcursor.ErrTruncatedInput)
}

func TestDecodeCodeOnlyOperations(t *testing.T) {
	for _, tc := range []struct {
		opType   OperationType
		code     int32
		name     string
		expected OperationResult
	}{
		{OperationTypeCreateAccount, -4, "already_exist", CreateAccountResult{ResultCode: -4}},
		{OperationTypeSetOptions, 0, "success", SetOptionsResult{ResultCode: SetOptionsSuccess}},
		{OperationTypeChangeTrust, -5, "self_not_allowed", ChangeTrustResult{ResultCode: -5}},
		{OperationTypeAllowTrust, -6, "low_reserve", AllowTrustResult{ResultCode: -6}},
		{OperationTypeManageData, -2, "name_not_found", ManageDataResult{ResultCode: ManageDataNameNotFound}},
		{OperationTypeBumpSequence, -1, "bad_seq", BumpSequenceResult{ResultCode: BumpSequenceBadSeq}},
	} {
		t.Run(tc.opType.String(), func(t *testing.T) {
			op := decodeSingle(t, newWire(t).op(tc.opType, tc.code))
			assert.Equal(t, tc.expected, op)
			assert.Equal(t, tc.opType, op.Type())
			assert.Equal(t, tc.code, op.Code())
			assert.Equal(t, tc.name, op.CodeName())
			assert.Equal(t, tc.code == 0, op.Succeeded())
		})
	}
}

func TestOperationDetailJSON(t *testing.T) {
	issuer, address := randomAccount(t)
	op := decodeSingle(t, newWire(t).
		op(OperationTypePathPaymentStrictSend, 0).
		int32(0).account(issuer).credit("EUR", issuer).int64(5))
	b, err := json.Marshal(op)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": {"offers": [], "last": {
		"destination": "`+address+`",
		"asset": "EUR:`+address+`",
		"amount": "5"
	}}}`, string(b))
}
