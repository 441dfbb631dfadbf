package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxSymbolCodeLength is the longest symbol code, in characters.
const MaxSymbolCodeLength = 7

// MaxPrecision is the largest number of decimal places a symbol may declare.
const MaxPrecision = 18

// ErrInvalidSymbol is returned when a symbol or symbol code is malformed.
var ErrInvalidSymbol = errors.New("types: invalid symbol")

// SymbolCode is the ticker part of a symbol, e.g. "TKN".
// Valid codes are 1 to 7 uppercase letters.
type SymbolCode string

// IsValid reports whether c is a well-formed symbol code.
func (c SymbolCode) IsValid() bool {
	if len(c) == 0 || len(c) > MaxSymbolCodeLength {
		return false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	return true
}

func (c SymbolCode) String() string { return string(c) }

// Symbol pairs a code with its fixed decimal precision. Two symbols are equal
// only when both the code and the precision match.
type Symbol struct {
	Code      SymbolCode `json:"code"`
	Precision uint8      `json:"precision"`
}

// NewSymbol builds a Symbol from its parts.
func NewSymbol(code string, precision uint8) Symbol {
	return Symbol{Code: SymbolCode(code), Precision: precision}
}

// ParseSymbol parses the "precision,CODE" form, e.g. "2,TKN".
func ParseSymbol(s string) (Symbol, error) {
	prec, code, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Symbol{}, fmt.Errorf("%w: %q", ErrInvalidSymbol, s)
	}
	p, err := strconv.ParseUint(prec, 10, 8)
	if err != nil {
		return Symbol{}, fmt.Errorf("%w: precision %q", ErrInvalidSymbol, prec)
	}
	sym := Symbol{Code: SymbolCode(code), Precision: uint8(p)}
	if !sym.IsValid() {
		return Symbol{}, fmt.Errorf("%w: %q", ErrInvalidSymbol, s)
	}
	return sym, nil
}

// MustSymbol is like ParseSymbol but panics on error.
func MustSymbol(s string) Symbol {
	sym, err := ParseSymbol(s)
	if err != nil {
		panic(err)
	}
	return sym
}

// IsValid reports whether the code is well formed and the precision is in range.
func (s Symbol) IsValid() bool {
	return s.Code.IsValid() && s.Precision <= MaxPrecision
}

// String returns the "precision,CODE" form.
func (s Symbol) String() string {
	return strconv.Itoa(int(s.Precision)) + "," + string(s.Code)
}
