package kv

import (
	"time"

	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
	"github.com/xraph/tokenledger/types"
)

// Stored records. Field numbers are part of the on-disk format.

type statRecord struct {
	Code      string    `cbor:"1,keyasint"`
	Precision uint8     `cbor:"2,keyasint"`
	Supply    int64     `cbor:"3,keyasint"`
	MaxSupply int64     `cbor:"4,keyasint"`
	Issuer    string    `cbor:"5,keyasint"`
	Payer     string    `cbor:"6,keyasint"`
	CreatedAt time.Time `cbor:"7,keyasint"`
	UpdatedAt time.Time `cbor:"8,keyasint"`
}

func toStatRecord(s *currency.Stat) *statRecord {
	return &statRecord{
		Code:      string(s.Code()),
		Precision: s.Symbol().Precision,
		Supply:    s.Supply.Amount,
		MaxSupply: s.MaxSupply.Amount,
		Issuer:    string(s.Issuer),
		Payer:     string(s.Payer),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func fromStatRecord(r *statRecord) *currency.Stat {
	sym := types.Symbol{Code: types.SymbolCode(r.Code), Precision: r.Precision}
	return &currency.Stat{
		Entity:    types.Entity{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Supply:    types.NewAsset(r.Supply, sym),
		MaxSupply: types.NewAsset(r.MaxSupply, sym),
		Issuer:    types.Name(r.Issuer),
		Payer:     types.Name(r.Payer),
	}
}

type balanceRecord struct {
	Owner     string    `cbor:"1,keyasint"`
	Code      string    `cbor:"2,keyasint"`
	Precision uint8     `cbor:"3,keyasint"`
	Amount    int64     `cbor:"4,keyasint"`
	Payer     string    `cbor:"5,keyasint"`
	CreatedAt time.Time `cbor:"6,keyasint"`
	UpdatedAt time.Time `cbor:"7,keyasint"`
}

func toBalanceRecord(b *balance.Balance) *balanceRecord {
	return &balanceRecord{
		Owner:     string(b.Owner),
		Code:      string(b.Balance.Symbol.Code),
		Precision: b.Balance.Symbol.Precision,
		Amount:    b.Balance.Amount,
		Payer:     string(b.Payer),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func fromBalanceRecord(r *balanceRecord) *balance.Balance {
	return &balance.Balance{
		Entity:  types.Entity{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Owner:   types.Name(r.Owner),
		Balance: types.NewAsset(r.Amount, types.Symbol{Code: types.SymbolCode(r.Code), Precision: r.Precision}),
		Payer:   types.Name(r.Payer),
	}
}

type allowanceRecord struct {
	Owner     string    `cbor:"1,keyasint"`
	Spender   string    `cbor:"2,keyasint"`
	Code      string    `cbor:"3,keyasint"`
	Precision uint8     `cbor:"4,keyasint"`
	Amount    int64     `cbor:"5,keyasint"`
	Payer     string    `cbor:"6,keyasint"`
	CreatedAt time.Time `cbor:"7,keyasint"`
	UpdatedAt time.Time `cbor:"8,keyasint"`
}

func toAllowanceRecord(a *allowance.Allowance) *allowanceRecord {
	return &allowanceRecord{
		Owner:     string(a.Owner),
		Spender:   string(a.Spender),
		Code:      string(a.Quantity.Symbol.Code),
		Precision: a.Quantity.Symbol.Precision,
		Amount:    a.Quantity.Amount,
		Payer:     string(a.Payer),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func fromAllowanceRecord(r *allowanceRecord) *allowance.Allowance {
	return &allowance.Allowance{
		Entity:   types.Entity{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Owner:    types.Name(r.Owner),
		Spender:  types.Name(r.Spender),
		Quantity: types.NewAsset(r.Amount, types.Symbol{Code: types.SymbolCode(r.Code), Precision: r.Precision}),
		Payer:    types.Name(r.Payer),
	}
}
