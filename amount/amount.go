// Package amount holds the exact-width integer type used for fees, balances
// and other 64-bit quantities carried on the wire.
package amount

import (
	"encoding/json"
	"fmt"
	"math/big"

	stellaramount "github.com/stellar/go/amount"
)

// StroopsPerLumen is the number of stroops in one unit of the native asset.
const StroopsPerLumen = 10_000_000

// LumenDecimals is the decimal exponent between stroops and lumens.
const LumenDecimals = 7

// Zero is the zero amount.
var Zero = New(0)

// Amount is an immutable arbitrary-precision integer built from a signed
// 64-bit wire value. The zero value is a valid zero amount.
type Amount struct {
	v *big.Int
}

// New wraps a signed 64-bit value.
func New(v int64) Amount {
	return Amount{v: big.NewInt(v)}
}

func (a Amount) bigInt() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return a.v
}

// BigInt returns a copy of the underlying integer.
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(a.bigInt())
}

// Int64 returns the value as an int64 and whether it fits.
func (a Amount) Int64() (int64, bool) {
	v := a.bigInt()
	if !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}

// Cmp compares a and other, returning -1, 0 or +1.
func (a Amount) Cmp(other Amount) int {
	return a.bigInt().Cmp(other.bigInt())
}

func (a Amount) Equal(other Amount) bool {
	return a.Cmp(other) == 0
}

func (a Amount) Sign() int {
	return a.bigInt().Sign()
}

func (a Amount) IsZero() bool {
	return a.Sign() == 0
}

// String renders the exact decimal value.
func (a Amount) String() string {
	return a.bigInt().String()
}

// Scaled divides the value by 10^exp and renders it with exactly exp
// fractional digits. The division is done on big.Rat, never on a float.
func (a Amount) Scaled(exp uint) string {
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
	r := new(big.Rat).SetFrac(a.bigInt(), denom)
	return r.FloatString(int(exp))
}

// Lumens renders a stroop amount in units of the native asset.
func (a Amount) Lumens() string {
	if v, ok := a.Int64(); ok {
		return stellaramount.StringFromInt64(v)
	}
	return a.Scaled(LumenDecimals)
}

// ParseLumens parses a decimal lumen string (e.g. "12.5") into stroops.
func ParseLumens(s string) (Amount, error) {
	v, err := stellaramount.ParseInt64(s)
	if err != nil {
		return Zero, fmt.Errorf("invalid lumen amount %q: %w", s, err)
	}
	return New(v), nil
}

// Parse parses an exact decimal integer string, accepting only values in the
// signed 64-bit range.
func Parse(s string) (Amount, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Zero, fmt.Errorf("invalid amount %q", s)
	}
	if !v.IsInt64() {
		return Zero, fmt.Errorf("amount %q overflows int64", s)
	}
	return Amount{v: v}, nil
}

// MarshalJSON renders the amount as a JSON string so that consumers with
// float-only numbers keep every digit.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
