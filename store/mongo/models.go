package mongo

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
	grove.BaseModel `grove:"table:tokenledger_stats" bson:"-"`

	Code      string    `grove:"code,pk"          bson:"_id"`
	Precision int32     `grove:"symbol_precision" bson:"symbol_precision"`
	Supply    int64     `grove:"supply"           bson:"supply"`
	MaxSupply int64     `grove:"max_supply"       bson:"max_supply"`
	Issuer    string    `grove:"issuer"           bson:"issuer"`
	Payer     string    `grove:"payer"            bson:"payer"`
	CreatedAt time.Time `grove:"created_at"       bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"       bson:"updated_at"`
}

func toStatModel(s *currency.Stat) *statModel {
	return &statModel{
		Code:      string(s.Code()),
		Precision: int32(s.Symbol().Precision),
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

// balanceID is the composite _id of a balance document.
type balanceID struct {
	Owner string `bson:"owner"`
	Code  string `bson:"code"`
}

func toBalanceID(k balance.Key) balanceID {
	return balanceID{Owner: string(k.Owner), Code: string(k.Code)}
}

type balanceModel struct {
	grove.BaseModel `grove:"table:tokenledger_balances" bson:"-"`

	ID        balanceID `grove:"id,pk"            bson:"_id"`
	Precision int32     `grove:"symbol_precision" bson:"symbol_precision"`
	Amount    int64     `grove:"amount"           bson:"amount"`
	Payer     string    `grove:"payer"            bson:"payer"`
	CreatedAt time.Time `grove:"created_at"       bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"       bson:"updated_at"`
}

func toBalanceModel(b *balance.Balance) *balanceModel {
	return &balanceModel{
		ID:        toBalanceID(b.Key()),
		Precision: int32(b.Balance.Symbol.Precision),
		Amount:    b.Balance.Amount,
		Payer:     string(b.Payer),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func fromBalanceModel(m *balanceModel) *balance.Balance {
	return &balance.Balance{
		Entity:  entity(m.CreatedAt, m.UpdatedAt),
		Owner:   types.Name(m.ID.Owner),
		Balance: types.NewAsset(m.Amount, symbol(m.ID.Code, m.Precision)),
		Payer:   types.Name(m.Payer),
	}
}

// ==================== Allowance models ====================

// allowanceID is the composite _id of an allowance document.
type allowanceID struct {
	Owner   string `bson:"owner"`
	Spender string `bson:"spender"`
	Code    string `bson:"code"`
}

func toAllowanceID(k allowance.Key) allowanceID {
	return allowanceID{Owner: string(k.Owner), Spender: string(k.Spender), Code: string(k.Code)}
}

type allowanceModel struct {
	grove.BaseModel `grove:"table:tokenledger_allowances" bson:"-"`

	ID        allowanceID `grove:"id,pk"            bson:"_id"`
	Precision int32       `grove:"symbol_precision" bson:"symbol_precision"`
	Amount    int64       `grove:"amount"           bson:"amount"`
	Payer     string      `grove:"payer"            bson:"payer"`
	CreatedAt time.Time   `grove:"created_at"       bson:"created_at"`
	UpdatedAt time.Time   `grove:"updated_at"       bson:"updated_at"`
}

func toAllowanceModel(a *allowance.Allowance) *allowanceModel {
	return &allowanceModel{
		ID:        toAllowanceID(a.Key()),
		Precision: int32(a.Quantity.Symbol.Precision),
		Amount:    a.Quantity.Amount,
		Payer:     string(a.Payer),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func fromAllowanceModel(m *allowanceModel) *allowance.Allowance {
	return &allowance.Allowance{
		Entity:   entity(m.CreatedAt, m.UpdatedAt),
		Owner:    types.Name(m.ID.Owner),
		Spender:  types.Name(m.ID.Spender),
		Quantity: types.NewAsset(m.Amount, symbol(m.ID.Code, m.Precision)),
		Payer:    types.Name(m.Payer),
	}
}

// ==================== Helpers ====================

func symbol(code string, precision int32) types.Symbol {
	return types.Symbol{Code: types.SymbolCode(code), Precision: uint8(precision)}
}

func entity(created, updated time.Time) types.Entity {
	return types.Entity{CreatedAt: created.UTC(), UpdatedAt: updated.UTC()}
}
