package allowance

import (
	"context"

	"github.com/xraph/tokenledger/types"
)

// Store reads the allowance ledger.
type Store interface {
	GetAllowance(ctx context.Context, key Key) (*Allowance, error)
	ListAllowances(ctx context.Context, owner types.Name) ([]*Allowance, error)
}
