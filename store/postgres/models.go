package postgres

import (
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
	"github.com/xraph/tokenledger/types"
)

// ==================== Currency models ====================

type statModel struct {
	grove.BaseModel `grove:"table:tokenledger_stats"`

	Code      string    `grove:"code,pk"`
	Precision int16     `grove:"symbol_precision"`
	Supply    int64     `grove:"supply"`
	MaxSupply int64     `grove:"max_supply"`
	Issuer    string    `grove:"issuer"`
	Payer     string    `grove:"payer"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toStatModel(s *currency.Stat) *statModel {
	return &statModel{
		Code:      string(s.Code()),
		Precision: int16(s.Symbol().Precision),
		Supply:    s.Supply.Amount,
		MaxSupply: s.MaxSupply.Amount,
		Issuer:    string(s.Issuer),
		Payer:     string(s.Payer),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func fromStatModel(m *statModel) *currency.Stat {
	sym := symbol(m.Code, m.Precision)
	return &currency.Stat{
		Entity:    entity(m.CreatedAt, m.UpdatedAt),
		Supply:    types.NewAsset(m.Supply, sym),
		MaxSupply: types.NewAsset(m.MaxSupply, sym),
		Issuer:    types.Name(m.Issuer),
		Payer:     types.Name(m.Payer),
	}
}

// ==================== Balance models ====================

type balanceModel struct {
	grove.BaseModel `grove:"table:tokenledger_balances"`

	Owner     string    `grove:"owner,pk"`
	Code      string    `grove:"code,pk"`
	Precision int16     `grove:"symbol_precision"`
	Amount    int64     `grove:"amount"`
	Payer     string    `grove:"payer"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toBalanceModel(b *balance.Balance) *balanceModel {
	return &balanceModel{
		Owner:     string(b.Owner),
		Code:      string(b.Balance.Symbol.Code),
		Precision: int16(b.Balance.Symbol.Precision),
		Amount:    b.Balance.Amount,
		Payer:     string(b.Payer),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func fromBalanceModel(m *balanceModel) *balance.Balance {
	return &balance.Balance{
		Entity:  entity(m.CreatedAt, m.UpdatedAt),
		Owner:   types.Name(m.Owner),
		Balance: types.NewAsset(m.Amount, symbol(m.Code, m.Precision)),
		Payer:   types.Name(m.Payer),
	}
}

// ==================== Allowance models ====================

type allowanceModel struct {
	grove.BaseModel `grove:"table:tokenledger_allowances"`

	Owner     string    `grove:"owner,pk"`
	Spender   string    `grove:"spender,pk"`
	Code      string    `grove:"code,pk"`
	Precision int16     `grove:"symbol_precision"`
	Amount    int64     `grove:"amount"`
	Payer     string    `grove:"payer"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toAllowanceModel(a *allowance.Allowance) *allowanceModel {
	return &allowanceModel{
		Owner:     string(a.Owner),
		Spender:   string(a.Spender),
		Code:      string(a.Quantity.Symbol.Code),
		Precision: int16(a.Quantity.Symbol.Precision),
		Amount:    a.Quantity.Amount,
		Payer:     string(a.Payer),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func fromAllowanceModel(m *allowanceModel) *allowance.Allowance {
	return &allowance.Allowance{
		Entity:   entity(m.CreatedAt, m.UpdatedAt),
		Owner:    types.Name(m.Owner),
		Spender:  types.Name(m.Spender),
		Quantity: types.NewAsset(m.Amount, symbol(m.Code, m.Precision)),
		Payer:    types.Name(m.Payer),
	}
}

// ==================== Helpers ====================

func symbol(code string, precision int16) types.Symbol {
	return types.Symbol{Code: types.SymbolCode(code), Precision: uint8(precision)}
}

func entity(created, updated time.Time) types.Entity {
	return types.Entity{CreatedAt: created.UTC(), UpdatedAt: updated.UTC()}
}
