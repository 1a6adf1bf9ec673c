package txresult

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/stellar/go/strkey"

	"github.com/stellar/txresult/amount"
	"github.com/stellar/txresult/xdrcursor"
)

const publicKeyTypeEd25519 = 0

// Minimum encoded sizes, used to bound array counts before allocating.
const (
	accountIDSize          = 4 + 32
	minAssetSize           = 4
	minClaimOfferAtomSize  = accountIDSize + 8 + minAssetSize + 8 + minAssetSize + 8
	inflationPayoutSize    = accountIDSize + 8
	minOperationRecordSize = 8
)

// AccountID is an ed25519 public key identifying an account.
type AccountID [32]byte

// Address returns the strkey (G...) form of the account.
func (a AccountID) Address() string {
	return strkey.MustEncode(strkey.VersionByteAccountID, a[:])
}

func (a AccountID) String() string {
	return a.Address()
}

func (a AccountID) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Address())
}

func readAccountID(c *xdrcursor.Cursor) (AccountID, error) {
	var id AccountID
	keyType, err := c.ReadInt32()
	if err != nil {
		return id, err
	}
	if keyType != publicKeyTypeEd25519 {
		return id, &UnknownTagError{Enum: "public key type", Tag: keyType}
	}
	key, err := c.ReadFixedOpaque(len(id))
	if err != nil {
		return id, err
	}
	copy(id[:], key)
	return id, nil
}

type AssetType int32

const (
	AssetTypeNative           AssetType = 0
	AssetTypeCreditAlphanum4  AssetType = 1
	AssetTypeCreditAlphanum12 AssetType = 2
)

// Asset is either the native asset or a credit asset identified by code and
// issuer.
type Asset struct {
	Type   AssetType
	Code   string
	Issuer AccountID
}

func (a Asset) IsNative() bool {
	return a.Type == AssetTypeNative
}

// String renders "native" or "CODE:ISSUER".
func (a Asset) String() string {
	if a.IsNative() {
		return "native"
	}
	return a.Code + ":" + a.Issuer.Address()
}

func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func readAsset(c *xdrcursor.Cursor) (Asset, error) {
	tag, err := c.ReadInt32()
	if err != nil {
		return Asset{}, err
	}
	var codeLen int
	switch AssetType(tag) {
	case AssetTypeNative:
		return Asset{Type: AssetTypeNative}, nil
	case AssetTypeCreditAlphanum4:
		codeLen = 4
	case AssetTypeCreditAlphanum12:
		codeLen = 12
	default:
		return Asset{}, &UnknownTagError{Enum: "asset type", Tag: tag}
	}
	code, err := c.ReadFixedOpaque(codeLen)
	if err != nil {
		return Asset{}, err
	}
	issuer, err := readAccountID(c)
	if err != nil {
		return Asset{}, err
	}
	return Asset{
		Type:   AssetType(tag),
		Code:   string(bytes.TrimRight(code, "\x00")),
		Issuer: issuer,
	}, nil
}

func readAmount(c *xdrcursor.Cursor) (amount.Amount, error) {
	v, err := c.ReadInt64()
	if err != nil {
		return amount.Zero, err
	}
	return amount.New(v), nil
}

// ClaimOfferAtom describes one offer crossed while executing an operation.
type ClaimOfferAtom struct {
	SellerID     AccountID     `json:"sellerId"`
	OfferID      int64         `json:"offerId,string"`
	AssetSold    Asset         `json:"assetSold"`
	AmountSold   amount.Amount `json:"amountSold"`
	AssetBought  Asset         `json:"assetBought"`
	AmountBought amount.Amount `json:"amountBought"`
}

func readClaimOfferAtom(c *xdrcursor.Cursor) (ClaimOfferAtom, error) {
	var (
		atom ClaimOfferAtom
		err  error
	)
	if atom.SellerID, err = readAccountID(c); err != nil {
		return atom, err
	}
	if atom.OfferID, err = c.ReadInt64(); err != nil {
		return atom, err
	}
	if atom.AssetSold, err = readAsset(c); err != nil {
		return atom, err
	}
	if atom.AmountSold, err = readAmount(c); err != nil {
		return atom, err
	}
	if atom.AssetBought, err = readAsset(c); err != nil {
		return atom, err
	}
	atom.AmountBought, err = readAmount(c)
	return atom, err
}

func readClaimOfferAtoms(c *xdrcursor.Cursor) ([]ClaimOfferAtom, error) {
	n, err := c.ReadCount(minClaimOfferAtomSize)
	if err != nil {
		return nil, err
	}
	atoms := make([]ClaimOfferAtom, 0, n)
	for i := 0; i < n; i++ {
		atom, err := readClaimOfferAtom(c)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, atom)
	}
	return atoms, nil
}

// SimplePaymentResult is the final hop of a path payment.
type SimplePaymentResult struct {
	Destination AccountID     `json:"destination"`
	Asset       Asset         `json:"asset"`
	Amount      amount.Amount `json:"amount"`
}

func readSimplePaymentResult(c *xdrcursor.Cursor) (SimplePaymentResult, error) {
	var (
		r   SimplePaymentResult
		err error
	)
	if r.Destination, err = readAccountID(c); err != nil {
		return r, err
	}
	if r.Asset, err = readAsset(c); err != nil {
		return r, err
	}
	r.Amount, err = readAmount(c)
	return r, err
}

// Price is a rational number N/D.
type Price struct {
	N int32 `json:"n"`
	D int32 `json:"d"`
}

// OfferEntry is the state of an offer left on the book after a manage offer
// operation.
type OfferEntry struct {
	SellerID AccountID     `json:"sellerId"`
	OfferID  int64         `json:"offerId,string"`
	Selling  Asset         `json:"selling"`
	Buying   Asset         `json:"buying"`
	Amount   amount.Amount `json:"amount"`
	Price    Price         `json:"price"`
	Flags    uint32        `json:"flags"`
}

func readOfferEntry(c *xdrcursor.Cursor) (OfferEntry, error) {
	var (
		o   OfferEntry
		err error
	)
	if o.SellerID, err = readAccountID(c); err != nil {
		return o, err
	}
	if o.OfferID, err = c.ReadInt64(); err != nil {
		return o, err
	}
	if o.Selling, err = readAsset(c); err != nil {
		return o, err
	}
	if o.Buying, err = readAsset(c); err != nil {
		return o, err
	}
	if o.Amount, err = readAmount(c); err != nil {
		return o, err
	}
	if o.Price.N, err = c.ReadInt32(); err != nil {
		return o, err
	}
	if o.Price.D, err = c.ReadInt32(); err != nil {
		return o, err
	}
	if o.Flags, err = c.ReadUint32(); err != nil {
		return o, err
	}
	ext, err := c.ReadInt32()
	if err != nil {
		return o, err
	}
	if ext != 0 {
		return o, &UnknownTagError{Enum: "offer entry extension", Tag: ext}
	}
	return o, nil
}

type ManageOfferEffect int32

const (
	ManageOfferCreated ManageOfferEffect = 0
	ManageOfferUpdated ManageOfferEffect = 1
	ManageOfferDeleted ManageOfferEffect = 2
)

var manageOfferEffectNames = map[ManageOfferEffect]string{
	ManageOfferCreated: "created",
	ManageOfferUpdated: "updated",
	ManageOfferDeleted: "deleted",
}

func (e ManageOfferEffect) String() string {
	if name, ok := manageOfferEffectNames[e]; ok {
		return name
	}
	return fmt.Sprintf("ManageOfferEffect(%d)", int32(e))
}

func (e ManageOfferEffect) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// ManageOfferSuccessResult is the payload of a successful manage or passive
// offer operation. Offer is nil when the offer was deleted or fully consumed.
type ManageOfferSuccessResult struct {
	OffersClaimed []ClaimOfferAtom  `json:"offersClaimed"`
	Effect        ManageOfferEffect `json:"effect"`
	Offer         *OfferEntry       `json:"offer,omitempty"`
}

func readManageOfferSuccess(c *xdrcursor.Cursor) (ManageOfferSuccessResult, error) {
	var (
		r   ManageOfferSuccessResult
		err error
	)
	if r.OffersClaimed, err = readClaimOfferAtoms(c); err != nil {
		return r, err
	}
	effect, err := c.ReadInt32()
	if err != nil {
		return r, err
	}
	r.Effect = ManageOfferEffect(effect)
	switch r.Effect {
	case ManageOfferCreated, ManageOfferUpdated:
		offer, err := readOfferEntry(c)
		if err != nil {
			return r, err
		}
		r.Offer = &offer
	case ManageOfferDeleted:
	default:
		return r, &UnknownTagError{Enum: "manage offer effect", Tag: effect}
	}
	return r, nil
}

// PathPaymentSuccessResult is the payload of a successful path payment.
type PathPaymentSuccessResult struct {
	Offers []ClaimOfferAtom    `json:"offers"`
	Last   SimplePaymentResult `json:"last"`
}

func readPathPaymentSuccess(c *xdrcursor.Cursor) (PathPaymentSuccessResult, error) {
	var (
		r   PathPaymentSuccessResult
		err error
	)
	if r.Offers, err = readClaimOfferAtoms(c); err != nil {
		return r, err
	}
	r.Last, err = readSimplePaymentResult(c)
	return r, err
}

// InflationPayout is one recipient of an inflation run.
type InflationPayout struct {
	Destination AccountID     `json:"destination"`
	Amount      amount.Amount `json:"amount"`
}

func readInflationPayouts(c *xdrcursor.Cursor) ([]InflationPayout, error) {
	n, err := c.ReadCount(inflationPayoutSize)
	if err != nil {
		return nil, err
	}
	payouts := make([]InflationPayout, 0, n)
	for i := 0; i < n; i++ {
		var p InflationPayout
		if p.Destination, err = readAccountID(c); err != nil {
			return nil, err
		}
		if p.Amount, err = readAmount(c); err != nil {
			return nil, err
		}
		payouts = append(payouts, p)
	}
	return payouts, nil
}
