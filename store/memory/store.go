// Package memory provides an in-memory implementation of store.Store.
// It is intended for tests, examples and single-process hosts that do not
// need durability.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/types"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store keeps the three tables in maps guarded by one lock. Rows are copied
// on the way in and out, so callers never share memory with the store.
type Store struct {
	mu     sync.RWMutex
	closed bool

	stats      map[types.SymbolCode]*currency.Stat
	balances   map[balance.Key]*balance.Balance
	allowances map[allowance.Key]*allowance.Allowance
}

// New returns an empty store.
func New() *Store {
	return &Store{
		stats:      make(map[types.SymbolCode]*currency.Stat),
		balances:   make(map[balance.Key]*balance.Balance),
		allowances: make(map[allowance.Key]*allowance.Allowance),
	}
}

// ──────────────────────────────────────────────────
// Currency registry
// ──────────────────────────────────────────────────

func (s *Store) GetStat(_ context.Context, code types.SymbolCode) (*currency.Stat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, tokenledger.ErrStoreClosed
	}
	if st, ok := s.stats[code]; ok {
		return st.Clone(), nil
	}
	return nil, tokenledger.ErrSymbolNotFound
}

func (s *Store) ListStats(_ context.Context) ([]*currency.Stat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, tokenledger.ErrStoreClosed
	}
	out := make([]*currency.Stat, 0, len(s.stats))
	for _, st := range s.stats {
		out = append(out, st.Clone())
	}
	slices.SortFunc(out, func(a, b *currency.Stat) int { return cmp.Compare(a.Code(), b.Code()) })
	return out, nil
}

// ──────────────────────────────────────────────────
// Balances
// ──────────────────────────────────────────────────

func (s *Store) GetBalance(_ context.Context, key balance.Key) (*balance.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, tokenledger.ErrStoreClosed
	}
	if b, ok := s.balances[key]; ok {
		return b.Clone(), nil
	}
	return nil, tokenledger.ErrBalanceNotFound
}

func (s *Store) ListBalances(_ context.Context, owner types.Name) ([]*balance.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, tokenledger.ErrStoreClosed
	}
	var out []*balance.Balance
	for k, b := range s.balances {
		if k.Owner == owner {
			out = append(out, b.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *balance.Balance) int {
		return cmp.Compare(a.Balance.Symbol.Code, b.Balance.Symbol.Code)
	})
	return out, nil
}

// ──────────────────────────────────────────────────
// Allowances
// ──────────────────────────────────────────────────

func (s *Store) GetAllowance(_ context.Context, key allowance.Key) (*allowance.Allowance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, tokenledger.ErrStoreClosed
	}
	if a, ok := s.allowances[key]; ok {
		return a.Clone(), nil
	}
	return nil, tokenledger.ErrAllowanceNotFound
}

func (s *Store) ListAllowances(_ context.Context, owner types.Name) ([]*allowance.Allowance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, tokenledger.ErrStoreClosed
	}
	var out []*allowance.Allowance
	for k, a := range s.allowances {
		if k.Owner == owner {
			out = append(out, a.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *allowance.Allowance) int {
		return cmp.Or(
			cmp.Compare(a.Spender, b.Spender),
			cmp.Compare(a.Quantity.Symbol.Code, b.Quantity.Symbol.Code),
		)
	})
	return out, nil
}

// ──────────────────────────────────────────────────
// Commit & lifecycle
// ──────────────────────────────────────────────────

// Commit applies every change in cs under the write lock.
func (s *Store) Commit(_ context.Context, cs *store.ChangeSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return tokenledger.ErrStoreClosed
	}

	for code, st := range cs.Stats {
		if st == nil {
			delete(s.stats, code)
			continue
		}
		s.stats[code] = st.Clone()
	}
	for k, b := range cs.Balances {
		if b == nil {
			delete(s.balances, k)
			continue
		}
		s.balances[k] = b.Clone()
	}
	for k, a := range cs.Allowances {
		if a == nil {
			delete(s.allowances, k)
			continue
		}
		s.allowances[k] = a.Clone()
	}
	return nil
}

// Migrate is a no-op for the memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping reports whether the store is still open.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return tokenledger.ErrStoreClosed
	}
	return nil
}

// Close marks the store closed. Later calls fail with ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Snapshot is a deep copy of all three tables.
type Snapshot struct {
	Stats      map[types.SymbolCode]currency.Stat
	Balances   map[balance.Key]balance.Balance
	Allowances map[allowance.Key]allowance.Allowance
}

// Snapshot copies the current contents of every table.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Stats:      make(map[types.SymbolCode]currency.Stat, len(s.stats)),
		Balances:   make(map[balance.Key]balance.Balance, len(s.balances)),
		Allowances: make(map[allowance.Key]allowance.Allowance, len(s.allowances)),
	}
	for k, v := range s.stats {
		snap.Stats[k] = *v
	}
	for k, v := range s.balances {
		snap.Balances[k] = *v
	}
	for k, v := range s.allowances {
		snap.Allowances[k] = *v
	}
	return snap
}
