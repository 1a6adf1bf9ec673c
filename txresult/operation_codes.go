package txresult

import "fmt"

// codeTable maps the tags of one per-operation result code enumeration to
// their names.
type codeTable map[int32]string

func (t codeTable) name(tag int32) string {
	if name, ok := t[tag]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", tag)
}

type CreateAccountResultCode int32

const (
	CreateAccountSuccess      CreateAccountResultCode = 0
	CreateAccountMalformed    CreateAccountResultCode = -1
	CreateAccountUnderfunded  CreateAccountResultCode = -2
	CreateAccountLowReserve   CreateAccountResultCode = -3
	CreateAccountAlreadyExist CreateAccountResultCode = -4
)

var createAccountCodes = codeTable{
	0:  "success",
	-1: "malformed",
	-2: "underfunded",
	-3: "low_reserve",
	-4: "already_exist",
}

func (c CreateAccountResultCode) String() string { return createAccountCodes.name(int32(c)) }

type PaymentResultCode int32

const (
	PaymentSuccess          PaymentResultCode = 0
	PaymentMalformed        PaymentResultCode = -1
	PaymentUnderfunded      PaymentResultCode = -2
	PaymentSrcNoTrust       PaymentResultCode = -3
	PaymentSrcNotAuthorized PaymentResultCode = -4
	PaymentNoDestination    PaymentResultCode = -5
	PaymentNoTrust          PaymentResultCode = -6
	PaymentNotAuthorized    PaymentResultCode = -7
	PaymentLineFull         PaymentResultCode = -8
	PaymentNoIssuer         PaymentResultCode = -9
)

var paymentCodes = codeTable{
	0:  "success",
	-1: "malformed",
	-2: "underfunded",
	-3: "src_no_trust",
	-4: "src_not_authorized",
	-5: "no_destination",
	-6: "no_trust",
	-7: "not_authorized",
	-8: "line_full",
	-9: "no_issuer",
}

func (c PaymentResultCode) String() string { return paymentCodes.name(int32(c)) }

type PathPaymentResultCode int32

const (
	PathPaymentSuccess          PathPaymentResultCode = 0
	PathPaymentMalformed        PathPaymentResultCode = -1
	PathPaymentUnderfunded      PathPaymentResultCode = -2
	PathPaymentSrcNoTrust       PathPaymentResultCode = -3
	PathPaymentSrcNotAuthorized PathPaymentResultCode = -4
	PathPaymentNoDestination    PathPaymentResultCode = -5
	PathPaymentNoTrust          PathPaymentResultCode = -6
	PathPaymentNotAuthorized    PathPaymentResultCode = -7
	PathPaymentLineFull         PathPaymentResultCode = -8
	PathPaymentNoIssuer         PathPaymentResultCode = -9
	PathPaymentTooFewOffers     PathPaymentResultCode = -10
	PathPaymentOfferCrossSelf   PathPaymentResultCode = -11
	PathPaymentOverSendMax      PathPaymentResultCode = -12
)

var pathPaymentCodes = codeTable{
	0:   "success",
	-1:  "malformed",
	-2:  "underfunded",
	-3:  "src_no_trust",
	-4:  "src_not_authorized",
	-5:  "no_destination",
	-6:  "no_trust",
	-7:  "not_authorized",
	-8:  "line_full",
	-9:  "no_issuer",
	-10: "too_few_offers",
	-11: "offer_cross_self",
	-12: "over_sendmax",
}

func (c PathPaymentResultCode) String() string { return pathPaymentCodes.name(int32(c)) }

// PathPaymentStrictSendResultCode shares its codes with the strict receive
// path payment except the last, which fails on the destination minimum
// instead of the send maximum.
type PathPaymentStrictSendResultCode int32

const (
	PathPaymentStrictSendSuccess          PathPaymentStrictSendResultCode = 0
	PathPaymentStrictSendMalformed        PathPaymentStrictSendResultCode = -1
	PathPaymentStrictSendUnderfunded      PathPaymentStrictSendResultCode = -2
	PathPaymentStrictSendSrcNoTrust       PathPaymentStrictSendResultCode = -3
	PathPaymentStrictSendSrcNotAuthorized PathPaymentStrictSendResultCode = -4
	PathPaymentStrictSendNoDestination    PathPaymentStrictSendResultCode = -5
	PathPaymentStrictSendNoTrust          PathPaymentStrictSendResultCode = -6
	PathPaymentStrictSendNotAuthorized    PathPaymentStrictSendResultCode = -7
	PathPaymentStrictSendLineFull         PathPaymentStrictSendResultCode = -8
	PathPaymentStrictSendNoIssuer         PathPaymentStrictSendResultCode = -9
	PathPaymentStrictSendTooFewOffers     PathPaymentStrictSendResultCode = -10
	PathPaymentStrictSendOfferCrossSelf   PathPaymentStrictSendResultCode = -11
	PathPaymentStrictSendUnderDestMin     PathPaymentStrictSendResultCode = -12
)

var pathPaymentStrictSendCodes = func() codeTable {
	t := make(codeTable, len(pathPaymentCodes))
	for k, v := range pathPaymentCodes {
		t[k] = v
	}
	t[int32(PathPaymentStrictSendUnderDestMin)] = "under_destmin"
	return t
}()

func (c PathPaymentStrictSendResultCode) String() string {
	return pathPaymentStrictSendCodes.name(int32(c))
}

type ManageOfferResultCode int32

const (
	ManageOfferSuccess           ManageOfferResultCode = 0
	ManageOfferMalformed         ManageOfferResultCode = -1
	ManageOfferSellNoTrust       ManageOfferResultCode = -2
	ManageOfferBuyNoTrust        ManageOfferResultCode = -3
	ManageOfferSellNotAuthorized ManageOfferResultCode = -4
	ManageOfferBuyNotAuthorized  ManageOfferResultCode = -5
	ManageOfferLineFull          ManageOfferResultCode = -6
	ManageOfferUnderfunded       ManageOfferResultCode = -7
	ManageOfferCrossSelf         ManageOfferResultCode = -8
	ManageOfferSellNoIssuer      ManageOfferResultCode = -9
	ManageOfferBuyNoIssuer       ManageOfferResultCode = -10
	ManageOfferNotFound          ManageOfferResultCode = -11
	ManageOfferLowReserve        ManageOfferResultCode = -12
)

var manageOfferCodes = codeTable{
	0:   "success",
	-1:  "malformed",
	-2:  "sell_no_trust",
	-3:  "buy_no_trust",
	-4:  "sell_not_authorized",
	-5:  "buy_not_authorized",
	-6:  "line_full",
	-7:  "underfunded",
	-8:  "cross_self",
	-9:  "sell_no_issuer",
	-10: "buy_no_issuer",
	-11: "not_found",
	-12: "low_reserve",
}

func (c ManageOfferResultCode) String() string { return manageOfferCodes.name(int32(c)) }

type SetOptionsResultCode int32

const (
	SetOptionsSuccess               SetOptionsResultCode = 0
	SetOptionsLowReserve            SetOptionsResultCode = -1
	SetOptionsTooManySigners        SetOptionsResultCode = -2
	SetOptionsBadFlags              SetOptionsResultCode = -3
	SetOptionsInvalidInflation      SetOptionsResultCode = -4
	SetOptionsCantChange            SetOptionsResultCode = -5
	SetOptionsUnknownFlag           SetOptionsResultCode = -6
	SetOptionsThresholdOutOfRange   SetOptionsResultCode = -7
	SetOptionsBadSigner             SetOptionsResultCode = -8
	SetOptionsInvalidHomeDomain     SetOptionsResultCode = -9
	SetOptionsAuthRevocableRequired SetOptionsResultCode = -10
)

var setOptionsCodes = codeTable{
	0:   "success",
	-1:  "low_reserve",
	-2:  "too_many_signers",
	-3:  "bad_flags",
	-4:  "invalid_inflation",
	-5:  "cant_change",
	-6:  "unknown_flag",
	-7:  "threshold_out_of_range",
	-8:  "bad_signer",
	-9:  "invalid_home_domain",
	-10: "auth_revocable_required",
}

func (c SetOptionsResultCode) String() string { return setOptionsCodes.name(int32(c)) }

type ChangeTrustResultCode int32

const (
	ChangeTrustSuccess        ChangeTrustResultCode = 0
	ChangeTrustMalformed      ChangeTrustResultCode = -1
	ChangeTrustNoIssuer       ChangeTrustResultCode = -2
	ChangeTrustInvalidLimit   ChangeTrustResultCode = -3
	ChangeTrustLowReserve     ChangeTrustResultCode = -4
	ChangeTrustSelfNotAllowed ChangeTrustResultCode = -5
)

var changeTrustCodes = codeTable{
	0:  "success",
	-1: "malformed",
	-2: "no_issuer",
	-3: "invalid_limit",
	-4: "low_reserve",
	-5: "self_not_allowed",
}

func (c ChangeTrustResultCode) String() string { return changeTrustCodes.name(int32(c)) }

type AllowTrustResultCode int32

const (
	AllowTrustSuccess          AllowTrustResultCode = 0
	AllowTrustMalformed        AllowTrustResultCode = -1
	AllowTrustNoTrustLine      AllowTrustResultCode = -2
	AllowTrustTrustNotRequired AllowTrustResultCode = -3
	AllowTrustCantRevoke       AllowTrustResultCode = -4
	AllowTrustSelfNotAllowed   AllowTrustResultCode = -5
	AllowTrustLowReserve       AllowTrustResultCode = -6
)

var allowTrustCodes = codeTable{
	0:  "success",
	-1: "malformed",
	-2: "no_trust_line",
	-3: "trust_not_required",
	-4: "cant_revoke",
	-5: "self_not_allowed",
	-6: "low_reserve",
}

func (c AllowTrustResultCode) String() string { return allowTrustCodes.name(int32(c)) }

type AccountMergeResultCode int32

const (
	AccountMergeSuccess       AccountMergeResultCode = 0
	AccountMergeMalformed     AccountMergeResultCode = -1
	AccountMergeNoAccount     AccountMergeResultCode = -2
	AccountMergeImmutableSet  AccountMergeResultCode = -3
	AccountMergeHasSubEntries AccountMergeResultCode = -4
	AccountMergeSeqnumTooFar  AccountMergeResultCode = -5
	AccountMergeDestFull      AccountMergeResultCode = -6
	AccountMergeIsSponsor     AccountMergeResultCode = -7
)

var accountMergeCodes = codeTable{
	0:  "success",
	-1: "malformed",
	-2: "no_account",
	-3: "immutable_set",
	-4: "has_sub_entries",
	-5: "seqnum_too_far",
	-6: "dest_full",
	-7: "is_sponsor",
}

func (c AccountMergeResultCode) String() string { return accountMergeCodes.name(int32(c)) }

type InflationResultCode int32

const (
	InflationSuccess InflationResultCode = 0
	InflationNotTime InflationResultCode = -1
)

var inflationCodes = codeTable{
	0:  "success",
	-1: "not_time",
}

func (c InflationResultCode) String() string { return inflationCodes.name(int32(c)) }

type ManageDataResultCode int32

const (
	ManageDataSuccess         ManageDataResultCode = 0
	ManageDataNotSupportedYet ManageDataResultCode = -1
	ManageDataNameNotFound    ManageDataResultCode = -2
	ManageDataLowReserve      ManageDataResultCode = -3
	ManageDataInvalidName     ManageDataResultCode = -4
)

var manageDataCodes = codeTable{
	0:  "success",
	-1: "not_supported_yet",
	-2: "name_not_found",
	-3: "low_reserve",
	-4: "invalid_name",
}

func (c ManageDataResultCode) String() string { return manageDataCodes.name(int32(c)) }

type BumpSequenceResultCode int32

const (
	BumpSequenceSuccess BumpSequenceResultCode = 0
	BumpSequenceBadSeq  BumpSequenceResultCode = -1
)

var bumpSequenceCodes = codeTable{
	0:  "success",
	-1: "bad_seq",
}

func (c BumpSequenceResultCode) String() string { return bumpSequenceCodes.name(int32(c)) }
