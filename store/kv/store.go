package kv

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/types"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store implements store.Store over a Backend.
type Store struct {
	backend Backend
	enc     cbor.EncMode
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New wraps backend. The store owns backend and closes it on Close.
func New(backend Backend, opts ...Option) (*Store, error) {
	enc, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		return nil, fmt.Errorf("tokenledger/kv: cbor mode: %w", err)
	}

	s := &Store{
		backend: backend,
		enc:     enc,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Backend returns the underlying engine.
func (s *Store) Backend() Backend { return s.backend }

func (s *Store) get(k []byte, v any, notFound error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return tokenledger.ErrStoreClosed
	}

	raw, err := s.backend.Get(k)
	if errors.Is(err, ErrNotFound) {
		return notFound
	}
	if err != nil {
		return fmt.Errorf("tokenledger/kv: get: %w", err)
	}
	if err := cbor.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("tokenledger/kv: decode %x: %w", k, err)
	}
	return nil
}

// scan decodes every record under prefix into a fresh R and hands it to fn.
func scan[R any](s *Store, prefix []byte, fn func(*R)) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return tokenledger.ErrStoreClosed
	}

	return s.backend.Scan(prefix, func(k, raw []byte) error {
		r := new(R)
		if err := cbor.Unmarshal(raw, r); err != nil {
			return fmt.Errorf("tokenledger/kv: decode %x: %w", k, err)
		}
		fn(r)
		return nil
	})
}

// ──────────────────────────────────────────────────
// Currency registry
// ──────────────────────────────────────────────────

func (s *Store) GetStat(_ context.Context, code types.SymbolCode) (*currency.Stat, error) {
	var r statRecord
	if err := s.get(statKey(code), &r, tokenledger.ErrSymbolNotFound); err != nil {
		return nil, err
	}
	return fromStatRecord(&r), nil
}

func (s *Store) ListStats(_ context.Context) ([]*currency.Stat, error) {
	var out []*currency.Stat
	err := scan(s, statPrefix(), func(r *statRecord) {
		out = append(out, fromStatRecord(r))
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b *currency.Stat) int { return cmp.Compare(a.Code(), b.Code()) })
	return out, nil
}

// ──────────────────────────────────────────────────
// Balances
// ──────────────────────────────────────────────────

func (s *Store) GetBalance(_ context.Context, key balance.Key) (*balance.Balance, error) {
	var r balanceRecord
	if err := s.get(balanceKey(key), &r, tokenledger.ErrBalanceNotFound); err != nil {
		return nil, err
	}
	return fromBalanceRecord(&r), nil
}

func (s *Store) ListBalances(_ context.Context, owner types.Name) ([]*balance.Balance, error) {
	var out []*balance.Balance
	err := scan(s, balancePrefix(owner), func(r *balanceRecord) {
		out = append(out, fromBalanceRecord(r))
	})
	if err != nil {
		return nil, err
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
	var r allowanceRecord
	if err := s.get(allowanceKey(key), &r, tokenledger.ErrAllowanceNotFound); err != nil {
		return nil, err
	}
	return fromAllowanceRecord(&r), nil
}

func (s *Store) ListAllowances(_ context.Context, owner types.Name) ([]*allowance.Allowance, error) {
	var out []*allowance.Allowance
	err := scan(s, allowancePrefix(owner), func(r *allowanceRecord) {
		out = append(out, fromAllowanceRecord(r))
	})
	if err != nil {
		return nil, err
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

// Commit encodes every change and applies them in one backend batch.
func (s *Store) Commit(_ context.Context, cs *store.ChangeSet) error {
	ops := make([]Op, 0, cs.Len())

	for _, code := range cs.StatCodes() {
		op, err := s.op(statKey(code), cs.Stats[code] == nil, func() any { return toStatRecord(cs.Stats[code]) })
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	for _, k := range cs.BalanceKeys() {
		op, err := s.op(balanceKey(k), cs.Balances[k] == nil, func() any { return toBalanceRecord(cs.Balances[k]) })
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	for _, k := range cs.AllowanceKeys() {
		op, err := s.op(allowanceKey(k), cs.Allowances[k] == nil, func() any { return toAllowanceRecord(cs.Allowances[k]) })
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return tokenledger.ErrStoreClosed
	}
	if err := s.backend.Apply(ops); err != nil {
		return fmt.Errorf("tokenledger/kv: apply %d ops: %w", len(ops), err)
	}

	s.logger.Debug("kv: committed", "ops", len(ops))
	return nil
}

func (s *Store) op(k []byte, del bool, record func() any) (Op, error) {
	if del {
		return Op{Key: k, Delete: true}, nil
	}
	v, err := s.enc.Marshal(record())
	if err != nil {
		return Op{}, fmt.Errorf("tokenledger/kv: encode %x: %w", k, err)
	}
	return Op{Key: k, Value: v}, nil
}

// Migrate is a no-op: the key layout needs no schema.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping reports whether the store is open.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return tokenledger.ErrStoreClosed
	}
	return nil
}

// Close closes the backend. It is safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.backend.Close()
}
