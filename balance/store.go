package balance

import (
	"context"

	"github.com/xraph/tokenledger/types"
)

// Store reads the balance ledger.
type Store interface {
	GetBalance(ctx context.Context, key Key) (*Balance, error)
	ListBalances(ctx context.Context, owner types.Name) ([]*Balance, error)
}
