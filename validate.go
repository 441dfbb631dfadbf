package tokenledger

import (
	"context"
	"fmt"

	"github.com/xraph/tokenledger/types"
)

func requireAuth(ctx context.Context, authz Authorizer, account types.Name) error {
	if !authz.HasAuth(ctx, account) {
		return &AuthorizationError{Account: account}
	}
	return nil
}

func (l *Ledger) requireAccount(ctx context.Context, account types.Name) error {
	if !account.IsValid() || !l.accounts.IsAccount(ctx, account) {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	return nil
}

func checkName(account types.Name) error {
	if !account.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidAccount, account)
	}
	return nil
}

func checkSymbol(sym types.Symbol) error {
	if !sym.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidSymbol, sym)
	}
	return nil
}

func checkMemo(memo string) error {
	if len(memo) > MaxMemoBytes {
		return ErrMemoTooLong
	}
	return nil
}

// checkQuantity validates q and requires it to be strictly positive.
func checkQuantity(q types.Asset) error {
	if !q.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, q.Amount)
	}
	if !q.IsPositive() {
		return fmt.Errorf("%w: %s", ErrNonPositiveQuantity, q)
	}
	return nil
}

func checkSameSymbol(q types.Asset, registered types.Symbol) error {
	if q.Symbol != registered {
		return fmt.Errorf("%w: got %s, registered %s", ErrSymbolMismatch, q.Symbol, registered)
	}
	return nil
}
