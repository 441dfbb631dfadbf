package tokenledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
	"github.com/xraph/tokenledger/id"
	"github.com/xraph/tokenledger/receipt"
	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/types"
)

// txn is the unit of work behind one ledger operation. Reads go through the
// staged changes first, so later steps see earlier writes. Every read returns
// a private copy of the row; a step changes the copy and stages it back with
// a put or delete. Nothing reaches the store until the operation commits.
type txn struct {
	store   store.Store
	changes *store.ChangeSet
	now     time.Time
	actions []*receipt.Action
}

func newTxn(s store.Store, now time.Time) *txn {
	return &txn{
		store:   s,
		changes: store.NewChangeSet(),
		now:     now.UTC(),
	}
}

// begin records a new action in this invocation.
func (t *txn) begin(name receipt.ActionName, authorizer types.Name) *receipt.Action {
	a := &receipt.Action{
		ID:         id.NewActionID(),
		Name:       name,
		Authorizer: authorizer,
		Inline:     len(t.actions) > 0,
	}
	t.actions = append(t.actions, a)
	return a
}

func (t *txn) stat(ctx context.Context, code types.SymbolCode) (*currency.Stat, error) {
	if s, ok := t.changes.Stats[code]; ok {
		return s.Clone(), nil
	}
	s, err := t.store.GetStat(ctx, code)
	if err != nil {
		return nil, readError(err, ErrSymbolNotFound)
	}
	return s.Clone(), nil
}

func (t *txn) balance(ctx context.Context, key balance.Key) (*balance.Balance, error) {
	if b, ok := t.changes.Balances[key]; ok {
		if b == nil {
			return nil, ErrBalanceNotFound
		}
		return b.Clone(), nil
	}
	b, err := t.store.GetBalance(ctx, key)
	if err != nil {
		return nil, readError(err, ErrBalanceNotFound)
	}
	return b.Clone(), nil
}

func (t *txn) allowance(ctx context.Context, key allowance.Key) (*allowance.Allowance, error) {
	if a, ok := t.changes.Allowances[key]; ok {
		if a == nil {
			return nil, ErrAllowanceNotFound
		}
		return a.Clone(), nil
	}
	a, err := t.store.GetAllowance(ctx, key)
	if err != nil {
		return nil, readError(err, ErrAllowanceNotFound)
	}
	return a.Clone(), nil
}

func (t *txn) putStat(s *currency.Stat) {
	s.Touch(t.now)
	t.changes.PutStat(s)
}

func (t *txn) putBalance(b *balance.Balance) {
	b.Touch(t.now)
	t.changes.PutBalance(b)
}

func (t *txn) deleteBalance(key balance.Key) { t.changes.DeleteBalance(key) }

func (t *txn) putAllowance(a *allowance.Allowance) {
	a.Touch(t.now)
	t.changes.PutAllowance(a)
}

func (t *txn) deleteAllowance(key allowance.Key) { t.changes.DeleteAllowance(key) }

// receipt builds the record of a committed invocation.
func (t *txn) receipt() *receipt.Receipt {
	return &receipt.Receipt{
		ID:          id.NewReceiptID(),
		Actions:     t.actions,
		Changes:     t.changes.Len(),
		CommittedAt: t.now,
	}
}

// readError passes not-found sentinels through and wraps anything else as a
// store read failure.
func readError(err, notFound error) error {
	if errors.Is(err, notFound) {
		return notFound
	}
	return fmt.Errorf("%w: %w", ErrReadFailed, err)
}
