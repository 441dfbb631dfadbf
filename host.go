package tokenledger

import (
	"context"

	"github.com/xraph/tokenledger/types"
)

// Authorizer answers whether the current invocation holds the authority of
// an account. The ledger trusts the answer completely.
type Authorizer interface {
	HasAuth(ctx context.Context, account types.Name) bool
}

// AuthorizerFunc adapts a plain function to Authorizer.
type AuthorizerFunc func(ctx context.Context, account types.Name) bool

// HasAuth implements Authorizer.
func (f AuthorizerFunc) HasAuth(ctx context.Context, account types.Name) bool {
	return f(ctx, account)
}

// AccountChecker answers whether an account exists.
type AccountChecker interface {
	IsAccount(ctx context.Context, account types.Name) bool
}

// AccountCheckerFunc adapts a plain function to AccountChecker.
type AccountCheckerFunc func(ctx context.Context, account types.Name) bool

// IsAccount implements AccountChecker.
func (f AccountCheckerFunc) IsAccount(ctx context.Context, account types.Name) bool {
	return f(ctx, account)
}
