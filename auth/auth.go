// Package auth provides host-side implementations of the ledger's
// authorization and account-existence checks.
//
// The ledger never authenticates anyone. It asks an Authorizer whether the
// current invocation holds the authority of an account, and an account
// checker whether an account exists. The types here answer those questions
// from the request context or from a fixed set.
package auth

import (
	"context"
	"slices"

	"github.com/xraph/tokenledger/types"
)

type authorityKey struct{}

// WithAuthority returns a context whose invocation holds the authority of
// the given accounts, in addition to any already carried by ctx.
func WithAuthority(ctx context.Context, accounts ...types.Name) context.Context {
	held := Authorities(ctx)
	merged := make([]types.Name, 0, len(held)+len(accounts))
	merged = append(merged, held...)
	for _, a := range accounts {
		if !slices.Contains(merged, a) {
			merged = append(merged, a)
		}
	}
	return context.WithValue(ctx, authorityKey{}, merged)
}

// Authorities returns the accounts whose authority ctx carries.
func Authorities(ctx context.Context) []types.Name {
	if v, ok := ctx.Value(authorityKey{}).([]types.Name); ok {
		return v
	}
	return nil
}

// Context answers authority checks from the accounts attached with
// WithAuthority. It is the ledger's default authorizer.
type Context struct{}

// HasAuth reports whether ctx carries the authority of account.
func (Context) HasAuth(ctx context.Context, account types.Name) bool {
	return slices.Contains(Authorities(ctx), account)
}

// Static grants exactly the listed authorities regardless of context.
type Static []types.Name

// HasAuth reports whether account is in s.
func (s Static) HasAuth(_ context.Context, account types.Name) bool {
	return slices.Contains(s, account)
}
