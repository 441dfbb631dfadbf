package tokenledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
	"github.com/xraph/tokenledger/types"
)

// Stat returns the registry row of a symbol code.
func (l *Ledger) Stat(ctx context.Context, code types.SymbolCode) (*currency.Stat, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s, err := l.store.GetStat(ctx, code)
	if err != nil {
		return nil, readError(err, ErrSymbolNotFound)
	}
	return s, nil
}

// Stats returns every registered symbol ordered by code.
func (l *Ledger) Stats(ctx context.Context) ([]*currency.Stat, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats, err := l.store.ListStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	return stats, nil
}

// Supply returns the circulating supply of a symbol code.
func (l *Ledger) Supply(ctx context.Context, code types.SymbolCode) (types.Asset, error) {
	s, err := l.Stat(ctx, code)
	if err != nil {
		return types.Asset{}, err
	}
	return s.Supply, nil
}

// Balance returns owner's holding of a symbol code. An account without a
// balance row holds nothing, so the error is ErrBalanceNotFound rather than
// a zero asset: the precision of a missing row is unknown.
func (l *Ledger) Balance(ctx context.Context, owner types.Name, code types.SymbolCode) (types.Asset, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, err := l.store.GetBalance(ctx, balance.Key{Owner: owner, Code: code})
	if err != nil {
		return types.Asset{}, readError(err, ErrBalanceNotFound)
	}
	return b.Balance, nil
}

// Balances returns every balance row owned by owner, ordered by code.
func (l *Ledger) Balances(ctx context.Context, owner types.Name) ([]*balance.Balance, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rows, err := l.store.ListBalances(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	return rows, nil
}

// Allowance returns what spender may still move out of owner's balance. A
// missing row means nothing is allowed and yields ErrAllowanceNotFound.
func (l *Ledger) Allowance(ctx context.Context, owner, spender types.Name, code types.SymbolCode) (*allowance.Allowance, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	a, err := l.store.GetAllowance(ctx, allowance.Key{Owner: owner, Spender: spender, Code: code})
	if err != nil {
		return nil, readError(err, ErrAllowanceNotFound)
	}
	return a, nil
}

// Allowances returns every allowance granted by owner, ordered by spender
// then code.
func (l *Ledger) Allowances(ctx context.Context, owner types.Name) ([]*allowance.Allowance, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rows, err := l.store.ListAllowances(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	return rows, nil
}

// HasBalance reports whether owner has a balance row for code.
func (l *Ledger) HasBalance(ctx context.Context, owner types.Name, code types.SymbolCode) (bool, error) {
	_, err := l.Balance(ctx, owner, code)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrBalanceNotFound):
		return false, nil
	default:
		return false, err
	}
}
