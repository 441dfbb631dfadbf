// Package balance holds the balance ledger: one row per (owner, symbol code).
package balance

import (
	"github.com/xraph/tokenledger/types"
)

// Key identifies a balance row.
type Key struct {
	Owner types.Name
	Code  types.SymbolCode
}

func (k Key) String() string { return string(k.Owner) + "/" + string(k.Code) }

// Balance is an account's holding of one symbol. Payer is the account whose
// storage quota funds the row.
type Balance struct {
	types.Entity
	Owner   types.Name  `json:"owner"`
	Balance types.Asset `json:"balance"`
	Payer   types.Name  `json:"payer"`
}

// Key returns the row key.
func (b *Balance) Key() Key {
	return Key{Owner: b.Owner, Code: b.Balance.Symbol.Code}
}

// Clone returns a copy the caller may modify freely.
func (b *Balance) Clone() *Balance {
	c := *b
	return &c
}
