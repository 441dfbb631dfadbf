// Package currency holds the currency registry: one Stat row per symbol code.
package currency

import (
	"github.com/xraph/tokenledger/types"
)

// Stat is the registry row for one token symbol. Supply and MaxSupply always
// share the same symbol; Issuer never changes after creation.
type Stat struct {
	types.Entity
	Supply    types.Asset `json:"supply"`
	MaxSupply types.Asset `json:"max_supply"`
	Issuer    types.Name  `json:"issuer"`
	Payer     types.Name  `json:"payer"`
}

// Symbol returns the registered symbol.
func (s *Stat) Symbol() types.Symbol { return s.Supply.Symbol }

// Code returns the registered symbol code, the row key.
func (s *Stat) Code() types.SymbolCode { return s.Supply.Symbol.Code }

// Available returns how much can still be issued before MaxSupply is reached.
func (s *Stat) Available() types.Asset {
	return types.NewAsset(s.MaxSupply.Amount-s.Supply.Amount, s.Supply.Symbol)
}

// Clone returns a copy the caller may modify freely.
func (s *Stat) Clone() *Stat {
	c := *s
	return &c
}
