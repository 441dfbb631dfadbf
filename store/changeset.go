package store

import (
	"cmp"
	"slices"

	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
	"github.com/xraph/tokenledger/types"
)

// ChangeSet is the write set of one ledger operation. Each map holds the
// final state of every touched row; a nil value marks the row for deletion.
// Stat rows are never deleted.
type ChangeSet struct {
	Stats      map[types.SymbolCode]*currency.Stat
	Balances   map[balance.Key]*balance.Balance
	Allowances map[allowance.Key]*allowance.Allowance
}

// NewChangeSet returns an empty ChangeSet.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{
		Stats:      make(map[types.SymbolCode]*currency.Stat),
		Balances:   make(map[balance.Key]*balance.Balance),
		Allowances: make(map[allowance.Key]*allowance.Allowance),
	}
}

// PutStat stages an insert or update of a registry row.
func (cs *ChangeSet) PutStat(s *currency.Stat) { cs.Stats[s.Code()] = s }

// PutBalance stages an insert or update of a balance row.
func (cs *ChangeSet) PutBalance(b *balance.Balance) { cs.Balances[b.Key()] = b }

// DeleteBalance stages the removal of a balance row.
func (cs *ChangeSet) DeleteBalance(k balance.Key) { cs.Balances[k] = nil }

// PutAllowance stages an insert or update of an allowance row.
func (cs *ChangeSet) PutAllowance(a *allowance.Allowance) { cs.Allowances[a.Key()] = a }

// DeleteAllowance stages the removal of an allowance row.
func (cs *ChangeSet) DeleteAllowance(k allowance.Key) { cs.Allowances[k] = nil }

// Len returns the number of staged row changes.
func (cs *ChangeSet) Len() int {
	return len(cs.Stats) + len(cs.Balances) + len(cs.Allowances)
}

// IsEmpty reports whether nothing is staged.
func (cs *ChangeSet) IsEmpty() bool { return cs.Len() == 0 }

// StatCodes returns the staged registry keys in sorted order.
func (cs *ChangeSet) StatCodes() []types.SymbolCode {
	codes := make([]types.SymbolCode, 0, len(cs.Stats))
	for c := range cs.Stats {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// BalanceKeys returns the staged balance keys in sorted order.
func (cs *ChangeSet) BalanceKeys() []balance.Key {
	keys := make([]balance.Key, 0, len(cs.Balances))
	for k := range cs.Balances {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b balance.Key) int {
		return cmp.Or(cmp.Compare(a.Owner, b.Owner), cmp.Compare(a.Code, b.Code))
	})
	return keys
}

// AllowanceKeys returns the staged allowance keys in sorted order.
func (cs *ChangeSet) AllowanceKeys() []allowance.Key {
	keys := make([]allowance.Key, 0, len(cs.Allowances))
	for k := range cs.Allowances {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b allowance.Key) int {
		return cmp.Or(
			cmp.Compare(a.Owner, b.Owner),
			cmp.Compare(a.Spender, b.Spender),
			cmp.Compare(a.Code, b.Code),
		)
	})
	return keys
}
