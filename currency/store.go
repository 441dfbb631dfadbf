package currency

import (
	"context"

	"github.com/xraph/tokenledger/types"
)

// Store reads the currency registry.
type Store interface {
	GetStat(ctx context.Context, code types.SymbolCode) (*Stat, error)
	ListStats(ctx context.Context) ([]*Stat, error)
}
