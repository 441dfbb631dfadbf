package auth

import (
	"context"
	"slices"
	"sync"

	"github.com/xraph/tokenledger/types"
)

// Registry is a concurrency-safe set of existing accounts.
type Registry struct {
	mu       sync.RWMutex
	accounts map[types.Name]struct{}
}

// NewRegistry creates a Registry holding the given accounts.
func NewRegistry(accounts ...types.Name) *Registry {
	r := &Registry{accounts: make(map[types.Name]struct{}, len(accounts))}
	for _, a := range accounts {
		r.accounts[a] = struct{}{}
	}
	return r
}

// Add registers accounts. Invalid names are skipped and returned.
func (r *Registry) Add(accounts ...types.Name) []types.Name {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rejected []types.Name
	for _, a := range accounts {
		if !a.IsValid() {
			rejected = append(rejected, a)
			continue
		}
		r.accounts[a] = struct{}{}
	}
	return rejected
}

// Remove unregisters an account.
func (r *Registry) Remove(account types.Name) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accounts, account)
}

// IsAccount reports whether account is registered.
func (r *Registry) IsAccount(_ context.Context, account types.Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.accounts[account]
	return ok
}

// List returns the registered accounts in sorted order.
func (r *Registry) List() []types.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.Name, 0, len(r.accounts))
	for a := range r.accounts {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}

// ValidNames treats every well-formed account name as existing.
type ValidNames struct{}

// IsAccount reports whether account is a valid name.
func (ValidNames) IsAccount(_ context.Context, account types.Name) bool {
	return account.IsValid()
}
