// Package allowance holds the allowance ledger: the amount an owner has
// delegated to a spender, one row per (owner, spender, symbol code).
package allowance

import (
	"github.com/xraph/tokenledger/types"
)

// Key identifies an allowance row. It is compared field by field, so two
// distinct (spender, code) pairs can never collide.
type Key struct {
	Owner   types.Name
	Spender types.Name
	Code    types.SymbolCode
}

func (k Key) String() string {
	return string(k.Owner) + "/" + string(k.Spender) + "/" + string(k.Code)
}

// Allowance is the quantity Spender may still move out of Owner's balance.
// A row only exists while Quantity is positive.
type Allowance struct {
	types.Entity
	Owner    types.Name  `json:"owner"`
	Spender  types.Name  `json:"spender"`
	Quantity types.Asset `json:"quantity"`
	Payer    types.Name  `json:"payer"`
}

// Key returns the row key.
func (a *Allowance) Key() Key {
	return Key{Owner: a.Owner, Spender: a.Spender, Code: a.Quantity.Symbol.Code}
}

// Clone returns a copy the caller may modify freely.
func (a *Allowance) Clone() *Allowance {
	c := *a
	return &c
}
