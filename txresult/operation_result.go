package txresult

import (
	"github.com/stellar/txresult/amount"
	"github.com/stellar/txresult/xdrcursor"
)

// OperationResult is the outcome of one operation. The set of
// implementations is closed; switch on the concrete type to reach the
// kind-specific code and payload.
type OperationResult interface {
	Type() OperationType
	// Code returns the raw per-operation result code.
	Code() int32
	// CodeName returns the snake_case name of the result code.
	CodeName() string
	Succeeded() bool

	isOperationResult()
}

type operationDecoder func(c *xdrcursor.Cursor) (OperationResult, error)

// operationDecoders is the single dispatch table from operation type tag to
// the reader of its result.
var operationDecoders = map[OperationType]operationDecoder{
	OperationTypeCreateAccount:         decodeCreateAccount,
	OperationTypePayment:               decodePayment,
	OperationTypePathPayment:           decodePathPayment,
	OperationTypeManageOffer:           decodeManageOffer,
	OperationTypeCreatePassiveOffer:    decodeCreatePassiveOffer,
	OperationTypeSetOptions:            decodeSetOptions,
	OperationTypeChangeTrust:           decodeChangeTrust,
	OperationTypeAllowTrust:            decodeAllowTrust,
	OperationTypeAccountMerge:          decodeAccountMerge,
	OperationTypeInflation:             decodeInflation,
	OperationTypeManageData:            decodeManageData,
	OperationTypeBumpSequence:          decodeBumpSequence,
	OperationTypeManageBuyOffer:        decodeManageBuyOffer,
	OperationTypePathPaymentStrictSend: decodePathPaymentStrictSend,
}

// decodeOperationResult reads one operation type tag and the result that
// follows it.
func decodeOperationResult(c *xdrcursor.Cursor) (OperationResult, error) {
	tag, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	decode, ok := operationDecoders[OperationType(tag)]
	if !ok {
		return nil, &UnknownOperationTypeError{Tag: tag}
	}
	return decode(c)
}

// readCode reads a per-operation result code and rejects values outside
// its table.
func readCode(c *xdrcursor.Cursor, op OperationType, codes codeTable) (int32, error) {
	tag, err := c.ReadInt32()
	if err != nil {
		return 0, err
	}
	if _, ok := codes[tag]; !ok {
		return 0, &UnknownTagError{Enum: op.String() + " result code", Tag: tag}
	}
	return tag, nil
}

type CreateAccountResult struct {
	ResultCode CreateAccountResultCode `json:"-"`
}

func (r CreateAccountResult) Type() OperationType { return OperationTypeCreateAccount }
func (r CreateAccountResult) Code() int32         { return int32(r.ResultCode) }
func (r CreateAccountResult) CodeName() string    { return r.ResultCode.String() }
func (r CreateAccountResult) Succeeded() bool     { return r.ResultCode == CreateAccountSuccess }
func (CreateAccountResult) isOperationResult()    {}

func decodeCreateAccount(c *xdrcursor.Cursor) (OperationResult, error) {
	code, err := readCode(c, OperationTypeCreateAccount, createAccountCodes)
	if err != nil {
		return nil, err
	}
	return CreateAccountResult{ResultCode: CreateAccountResultCode(code)}, nil
}

type PaymentResult struct {
	ResultCode PaymentResultCode `json:"-"`
}

func (r PaymentResult) Type() OperationType { return OperationTypePayment }
func (r PaymentResult) Code() int32         { return int32(r.ResultCode) }
func (r PaymentResult) CodeName() string    { return r.ResultCode.String() }
func (r PaymentResult) Succeeded() bool     { return r.ResultCode == PaymentSuccess }
func (PaymentResult) isOperationResult()    {}

func decodePayment(c *xdrcursor.Cursor) (OperationResult, error) {
	code, err := readCode(c, OperationTypePayment, paymentCodes)
	if err != nil {
		return nil, err
	}
	return PaymentResult{ResultCode: PaymentResultCode(code)}, nil
}

// PathPaymentResult is the result of a strict receive path payment. Success
// is only set when the payment succeeded.
type PathPaymentResult struct {
	ResultCode PathPaymentResultCode     `json:"-"`
	Success    *PathPaymentSuccessResult `json:"success,omitempty"`
}

func (r PathPaymentResult) Type() OperationType { return OperationTypePathPayment }
func (r PathPaymentResult) Code() int32         { return int32(r.ResultCode) }
func (r PathPaymentResult) CodeName() string    { return r.ResultCode.String() }
func (r PathPaymentResult) Succeeded() bool     { return r.ResultCode == PathPaymentSuccess }
func (PathPaymentResult) isOperationResult()    {}

// AmountReceived returns the amount credited to the destination, and false
// when the payment did not succeed.
func (r PathPaymentResult) AmountReceived() (amount.Amount, bool) {
	if r.Success == nil {
		return amount.Zero, false
	}
	return r.Success.Last.Amount, true
}

func decodePathPayment(c *xdrcursor.Cursor) (OperationResult, error) {
	code, err := readCode(c, OperationTypePathPayment, pathPaymentCodes)
	if err != nil {
		return nil, err
	}
	r := PathPaymentResult{ResultCode: PathPaymentResultCode(code)}
	if r.ResultCode == PathPaymentSuccess {
		success, err := readPathPaymentSuccess(c)
		if err != nil {
			return nil, err
		}
		r.Success = &success
	}
	return r, nil
}

type PathPaymentStrictSendResult struct {
	ResultCode PathPaymentStrictSendResultCode `json:"-"`
	Success    *PathPaymentSuccessResult       `json:"success,omitempty"`
}

func (r PathPaymentStrictSendResult) Type() OperationType { return OperationTypePathPaymentStrictSend }
func (r PathPaymentStrictSendResult) Code() int32         { return int32(r.ResultCode) }
func (r PathPaymentStrictSendResult) CodeName() string    { return r.ResultCode.String() }
func (r PathPaymentStrictSendResult) Succeeded() bool {
	return r.ResultCode == PathPaymentStrictSendSuccess
}
func (PathPaymentStrictSendResult) isOperationResult() {}

// AmountReceived returns the amount credited to the destination, and false
// when the payment did not succeed.
func (r PathPaymentStrictSendResult) AmountReceived() (amount.Amount, bool) {
	if r.Success == nil {
		return amount.Zero, false
	}
	return r.Success.Last.Amount, true
}

func decodePathPaymentStrictSend(c *xdrcursor.Cursor) (OperationResult, error) {
	code, err := readCode(c, OperationTypePathPaymentStrictSend, pathPaymentStrictSendCodes)
	if err != nil {
		return nil, err
	}
	r := PathPaymentStrictSendResult{ResultCode: PathPaymentStrictSendResultCode(code)}
	if r.ResultCode == PathPaymentStrictSendSuccess {
		success, err := readPathPaymentSuccess(c)
		if err != nil {
			return nil, err
		}
		r.Success = &success
	}
	return r, nil
}

func readManageOfferResult(c *xdrcursor.Cursor, op OperationType) (ManageOfferResultCode, *ManageOfferSuccessResult, error) {
	code, err := readCode(c, op, manageOfferCodes)
	if err != nil {
		return 0, nil, err
	}
	if ManageOfferResultCode(code) != ManageOfferSuccess {
		return ManageOfferResultCode(code), nil, nil
	}
	success, err := readManageOfferSuccess(c)
	if err != nil {
		return 0, nil, err
	}
	return ManageOfferSuccess, &success, nil
}

// ManageOfferResult is the result of a manage (sell) offer operation.
type ManageOfferResult struct {
	ResultCode ManageOfferResultCode     `json:"-"`
	Success    *ManageOfferSuccessResult `json:"success,omitempty"`
}

func (r ManageOfferResult) Type() OperationType { return OperationTypeManageOffer }
func (r ManageOfferResult) Code() int32         { return int32(r.ResultCode) }
func (r ManageOfferResult) CodeName() string    { return r.ResultCode.String() }
func (r ManageOfferResult) Succeeded() bool     { return r.ResultCode == ManageOfferSuccess }
func (ManageOfferResult) isOperationResult()    {}

func decodeManageOffer(c *xdrcursor.Cursor) (OperationResult, error) {
	code, success, err := readManageOfferResult(c, OperationTypeManageOffer)
	if err != nil {
		return nil, err
	}
	return ManageOfferResult{ResultCode: code, Success: success}, nil
}

// CreatePassiveOfferResult shares its codes and payload with
// ManageOfferResult.
type CreatePassiveOfferResult struct {
	ResultCode ManageOfferResultCode     `json:"-"`
	Success    *ManageOfferSuccessResult `json:"success,omitempty"`
}

func (r CreatePassiveOfferResult) Type() OperationType { return OperationTypeCreatePassiveOffer }
func (r CreatePassiveOfferResult) Code() int32         { return int32(r.ResultCode) }
func (r CreatePassiveOfferResult) CodeName() string    { return r.ResultCode.String() }
func (r CreatePassiveOfferResult) Succeeded() bool     { return r.ResultCode == ManageOfferSuccess }
func (CreatePassiveOfferResult) isOperationResult()    {}

func decodeCreatePassiveOffer(c *xdrcursor.Cursor) (OperationResult, error) {
	code, success, err := readManageOfferResult(c, OperationTypeCreatePassiveOffer)
	if err != nil {
		return nil, err
	}
	return CreatePassiveOfferResult{ResultCode: code, Success: success}, nil
}

// ManageBuyOfferResult shares its codes and payload with ManageOfferResult.
type ManageBuyOfferResult struct {
	ResultCode ManageOfferResultCode     `json:"-"`
	Success    *ManageOfferSuccessResult `json:"success,omitempty"`
}

func (r ManageBuyOfferResult) Type() OperationType { return OperationTypeManageBuyOffer }
func (r ManageBuyOfferResult) Code() int32         { return int32(r.ResultCode) }
func (r ManageBuyOfferResult) CodeName() string    { return r.ResultCode.String() }
func (r ManageBuyOfferResult) Succeeded() bool     { return r.ResultCode == ManageOfferSuccess }
func (ManageBuyOfferResult) isOperationResult()    {}

func decodeManageBuyOffer(c *xdrcursor.Cursor) (OperationResult, error) {
	code, success, err := readManageOfferResult(c, OperationTypeManageBuyOffer)
	if err != nil {
		return nil, err
	}
	return ManageBuyOfferResult{ResultCode: code, Success: success}, nil
}

type SetOptionsResult struct {
	ResultCode SetOptionsResultCode `json:"-"`
}

func (r SetOptionsResult) Type() OperationType { return OperationTypeSetOptions }
func (r SetOptionsResult) Code() int32         { return int32(r.ResultCode) }
func (r SetOptionsResult) CodeName() string    { return r.ResultCode.String() }
func (r SetOptionsResult) Succeeded() bool     { return r.ResultCode == SetOptionsSuccess }
func (SetOptionsResult) isOperationResult()    {}

func decodeSetOptions(c *xdrcursor.Cursor) (OperationResult, error) {
	code, err := readCode(c, OperationTypeSetOptions, setOptionsCodes)
	if err != nil {
		return nil, err
	}
	return SetOptionsResult{ResultCode: SetOptionsResultCode(code)}, nil
}

type ChangeTrustResult struct {
	ResultCode ChangeTrustResultCode `json:"-"`
}

func (r ChangeTrustResult) Type() OperationType { return OperationTypeChangeTrust }
func (r ChangeTrustResult) Code() int32         { return int32(r.ResultCode) }
func (r ChangeTrustResult) CodeName() string    { return r.ResultCode.String() }
func (r ChangeTrustResult) Succeeded() bool     { return r.ResultCode == ChangeTrustSuccess }
func (ChangeTrustResult) isOperationResult()    {}

func decodeChangeTrust(c *xdrcursor.Cursor) (OperationResult, error) {
	code, err := readCode(c, OperationTypeChangeTrust, changeTrustCodes)
	if err != nil {
		return nil, err
	}
	return ChangeTrustResult{ResultCode: ChangeTrustResultCode(code)}, nil
}

type AllowTrustResult struct {
	ResultCode AllowTrustResultCode `json:"-"`
}

func (r AllowTrustResult) Type() OperationType { return OperationTypeAllowTrust }
func (r AllowTrustResult) Code() int32         { return int32(r.ResultCode) }
func (r AllowTrustResult) CodeName() string    { return r.ResultCode.String() }
func (r AllowTrustResult) Succeeded() bool     { return r.ResultCode == AllowTrustSuccess }
func (AllowTrustResult) isOperationResult()    {}

func decodeAllowTrust(c *xdrcursor.Cursor) (OperationResult, error) {
	code, err := readCode(c, OperationTypeAllowTrust, allowTrustCodes)
	if err != nil {
		return nil, err
	}
	return AllowTrustResult{ResultCode: AllowTrustResultCode(code)}, nil
}

// AccountMergeResult carries the balance moved to the destination when the
// merge succeeded.
type AccountMergeResult struct {
	ResultCode           AccountMergeResultCode `json:"-"`
	SourceAccountBalance *amount.Amount         `json:"sourceAccountBalance,omitempty"`
}

func (r AccountMergeResult) Type() OperationType { return OperationTypeAccountMerge }
func (r AccountMergeResult) Code() int32         { return int32(r.ResultCode) }
func (r AccountMergeResult) CodeName() string    { return r.ResultCode.String() }
func (r AccountMergeResult) Succeeded() bool     { return r.ResultCode == AccountMergeSuccess }
func (AccountMergeResult) isOperationResult()    {}

func decodeAccountMerge(c *xdrcursor.Cursor) (OperationResult, error) {
	code, err := readCode(c, OperationTypeAccountMerge, accountMergeCodes)
	if err != nil {
		return nil, err
	}
	r := AccountMergeResult{ResultCode: AccountMergeResultCode(code)}
	if r.ResultCode == AccountMergeSuccess {
		balance, err := readAmount(c)
		if err != nil {
			return nil, err
		}
		r.SourceAccountBalance = &balance
	}
	return r, nil
}

type InflationResult struct {
	ResultCode InflationResultCode `json:"-"`
	Payouts    []InflationPayout   `json:"payouts,omitempty"`
}

func (r InflationResult) Type() OperationType { return OperationTypeInflation }
func (r InflationResult) Code() int32         { return int32(r.ResultCode) }
func (r InflationResult) CodeName() string    { return r.ResultCode.String() }
func (r InflationResult) Succeeded() bool     { return r.ResultCode == InflationSuccess }
func (InflationResult) isOperationResult()    {}

func decodeInflation(c *xdrcursor.Cursor) (OperationResult, error) {
	code, err := readCode(c, OperationTypeInflation, inflationCodes)
	if err != nil {
		return nil, err
	}
	r := InflationResult{ResultCode: InflationResultCode(code)}
	if r.ResultCode == InflationSuccess {
		if r.Payouts, err = readInflationPayouts(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

type ManageDataResult struct {
	ResultCode ManageDataResultCode `json:"-"`
}

func (r ManageDataResult) Type() OperationType { return OperationTypeManageData }
func (r ManageDataResult) Code() int32         { return int32(r.ResultCode) }
func (r ManageDataResult) CodeName() string    { return r.ResultCode.String() }
func (r ManageDataResult) Succeeded() bool     { return r.ResultCode == ManageDataSuccess }
func (ManageDataResult) isOperationResult()    {}

func decodeManageData(c *xdrcursor.Cursor) (OperationResult, error) {
	code, err := readCode(c, OperationTypeManageData, manageDataCodes)
	if err != nil {
		return nil, err
	}
	return ManageDataResult{ResultCode: ManageDataResultCode(code)}, nil
}

type BumpSequenceResult struct {
	ResultCode BumpSequenceResultCode `json:"-"`
}

func (r BumpSequenceResult) Type() OperationType { return OperationTypeBumpSequence }
func (r BumpSequenceResult) Code() int32         { return int32(r.ResultCode) }
func (r BumpSequenceResult) CodeName() string    { return r.ResultCode.String() }
func (r BumpSequenceResult) Succeeded() bool     { return r.ResultCode == BumpSequenceSuccess }
func (BumpSequenceResult) isOperationResult()    {}

func decodeBumpSequence(c *xdrcursor.Cursor) (OperationResult, error) {
	code, err := readCode(c, OperationTypeBumpSequence, bumpSequenceCodes)
	if err != nil {
		return nil, err
	}
	return BumpSequenceResult{ResultCode: BumpSequenceResultCode(code)}, nil
}
