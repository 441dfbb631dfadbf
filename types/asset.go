// Package types provides the value types shared across the token ledger:
// account names, currency symbols, assets and row timestamps.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest magnitude an Asset may carry (2^62 - 1).
const MaxAmount int64 = 1<<62 - 1

var (
	// ErrSymbolMismatch is returned when arithmetic mixes two symbols.
	ErrSymbolMismatch = errors.New("types: asset symbol mismatch")

	// ErrOverflow is returned when arithmetic leaves the valid amount range.
	ErrOverflow = errors.New("types: asset amount out of range")

	// ErrInvalidAsset is returned by ParseAsset for malformed input.
	ErrInvalidAsset = errors.New("types: invalid asset")
)

var maxAmountDecimal = decimal.NewFromInt(MaxAmount)

// Asset is an integer amount scoped to one symbol. The amount is expressed in
// the smallest unit of the symbol, so 1000.00 TKN with precision 2 is stored
// as 100000.
type Asset struct {
	Amount int64
	Symbol Symbol
}

// NewAsset creates an Asset.
func NewAsset(amount int64, sym Symbol) Asset {
	return Asset{Amount: amount, Symbol: sym}
}

// Zero returns a zero amount of sym.
func Zero(sym Symbol) Asset { return Asset{Symbol: sym} }

// ParseAsset parses the "1000.00 TKN" form. The precision of the resulting
// symbol is the number of fractional digits written.
func ParseAsset(s string) (Asset, error) {
	num, code, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return Asset{}, fmt.Errorf("%w: %q", ErrInvalidAsset, s)
	}
	code = strings.TrimSpace(code)

	var precision int
	if _, frac, found := strings.Cut(num, "."); found {
		precision = len(frac)
	}
	if precision > MaxPrecision || strings.ContainsAny(num, "eE") {
		return Asset{}, fmt.Errorf("%w: %q", ErrInvalidAsset, s)
	}

	d, err := decimal.NewFromString(num)
	if err != nil {
		return Asset{}, fmt.Errorf("%w: %q: %v", ErrInvalidAsset, s, err)
	}
	scaled := d.Shift(int32(precision))
	if !scaled.IsInteger() || scaled.Abs().GreaterThan(maxAmountDecimal) {
		return Asset{}, fmt.Errorf("%w: %q", ErrOverflow, s)
	}

	a := Asset{
		Amount: scaled.IntPart(),
		Symbol: Symbol{Code: SymbolCode(code), Precision: uint8(precision)},
	}
	if !a.Symbol.IsValid() {
		return Asset{}, fmt.Errorf("%w: %q", ErrInvalidSymbol, s)
	}
	return a, nil
}

// MustAsset is like ParseAsset but panics on error. Use in tests and for
// hardcoded values.
func MustAsset(s string) Asset {
	a, err := ParseAsset(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsAmountValid reports whether the amount lies within [-MaxAmount, MaxAmount].
func (a Asset) IsAmountValid() bool {
	return a.Amount >= -MaxAmount && a.Amount <= MaxAmount
}

// IsValid reports whether both the amount and the symbol are valid.
func (a Asset) IsValid() bool {
	return a.IsAmountValid() && a.Symbol.IsValid()
}

// IsZero returns true if the amount is zero.
func (a Asset) IsZero() bool { return a.Amount == 0 }

// IsPositive returns true if the amount is greater than zero.
func (a Asset) IsPositive() bool { return a.Amount > 0 }

// IsNegative returns true if the amount is less than zero.
func (a Asset) IsNegative() bool { return a.Amount < 0 }

// Add returns a + other.
func (a Asset) Add(other Asset) (Asset, error) {
	if a.Symbol != other.Symbol {
		return Asset{}, ErrSymbolMismatch
	}
	sum := Asset{Amount: a.Amount + other.Amount, Symbol: a.Symbol}
	if !sum.IsAmountValid() {
		return Asset{}, ErrOverflow
	}
	return sum, nil
}

// Sub returns a - other.
func (a Asset) Sub(other Asset) (Asset, error) {
	if a.Symbol != other.Symbol {
		return Asset{}, ErrSymbolMismatch
	}
	diff := Asset{Amount: a.Amount - other.Amount, Symbol: a.Symbol}
	if !diff.IsAmountValid() {
		return Asset{}, ErrOverflow
	}
	return diff, nil
}

// Decimal returns the amount as a decimal in whole units.
func (a Asset) Decimal() decimal.Decimal {
	return decimal.New(a.Amount, -int32(a.Symbol.Precision))
}

// String formats the asset as "1000.00 TKN".
func (a Asset) String() string {
	return a.Decimal().StringFixed(int32(a.Symbol.Precision)) + " " + string(a.Symbol.Code)
}

// MarshalJSON encodes the asset in its string form.
func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes the string form produced by MarshalJSON.
func (a *Asset) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAsset(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
