// Package store defines the persistence contract for the token ledger.
//
// Backends serve reads for the three tables and apply a whole operation's
// writes through Commit. Commit must be atomic: either every change in the
// ChangeSet becomes visible or none does.
package store

import (
	"context"

	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
)

// Store is the unified storage interface for the currency registry, the
// balance ledger and the allowance ledger.
type Store interface {
	currency.Store
	balance.Store
	allowance.Store

	// Commit applies cs atomically.
	Commit(ctx context.Context, cs *ChangeSet) error

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
