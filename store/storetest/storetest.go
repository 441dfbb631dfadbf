// Package storetest is a conformance suite for store.Store implementations.
//
// A backend test calls Run with a Factory. Each test asks the factory for a
// fresh Opener; persistent backends should return a store over the same
// underlying data on every call of that Opener, so the suite can verify that
// committed rows survive a reopen.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/types"
)

// Opener opens the store under test.
type Opener = func() (store.Store, error)

// Factory returns an Opener over empty, unshared storage.
type Factory = func(t testing.TB) Opener

type closableStore struct {
	store.Store
	t      testing.TB
	closed bool
}

// cleanup closes the store once at the end of the test.
func (c *closableStore) cleanup() {
	if c.closed {
		return
	}
	c.closed = true
	require.NoError(c.t, c.Store.Close())
}

func openStore(t testing.TB, open Opener) *closableStore {
	s, err := open()
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	c := &closableStore{Store: s, t: t}
	t.Cleanup(c.cleanup)
	return c
}

// Run runs every conformance test, each against its own storage.
func Run(t *testing.T, factory Factory) {
	tests := []struct {
		name string
		fn   func(*testing.T, Opener)
	}{
		{"NotFound", TestNotFound},
		{"CommitAndRead", TestCommitAndRead},
		{"Delete", TestDelete},
		{"ListOrdering", TestListOrdering},
		{"CompositeKeys", TestCompositeKeys},
		{"Reopen", TestReopen},
		{"Ping", TestPing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, factory(t))
		})
	}
}

var (
	tkn = types.MustSymbol("2,TKN")
	sys = types.MustSymbol("4,SYS")
	now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

func stat(sym types.Symbol, supply, max int64) *currency.Stat {
	return &currency.Stat{
		Entity:    types.NewEntity(now),
		Supply:    types.NewAsset(supply, sym),
		MaxSupply: types.NewAsset(max, sym),
		Issuer:    "alice",
		Payer:     "eosio.token",
	}
}

func bal(owner types.Name, amount int64, sym types.Symbol, payer types.Name) *balance.Balance {
	return &balance.Balance{
		Entity:  types.NewEntity(now),
		Owner:   owner,
		Balance: types.NewAsset(amount, sym),
		Payer:   payer,
	}
}

func allow(owner, spender types.Name, amount int64, sym types.Symbol) *allowance.Allowance {
	return &allowance.Allowance{
		Entity:   types.NewEntity(now),
		Owner:    owner,
		Spender:  spender,
		Quantity: types.NewAsset(amount, sym),
		Payer:    owner,
	}
}

func commit(t testing.TB, s store.Store, fn func(cs *store.ChangeSet)) {
	t.Helper()
	cs := store.NewChangeSet()
	fn(cs)
	require.NoError(t, s.Commit(context.Background(), cs))
}

// TestNotFound verifies every table reports its not-found sentinel.
func TestNotFound(t *testing.T, open Opener) {
	ctx := context.Background()
	s := openStore(t, open)

	_, err := s.GetStat(ctx, "TKN")
	require.ErrorIs(t, err, tokenledger.ErrSymbolNotFound)

	_, err = s.GetBalance(ctx, balance.Key{Owner: "alice", Code: "TKN"})
	require.ErrorIs(t, err, tokenledger.ErrBalanceNotFound)

	_, err = s.GetAllowance(ctx, allowance.Key{Owner: "alice", Spender: "bob", Code: "TKN"})
	require.ErrorIs(t, err, tokenledger.ErrAllowanceNotFound)

	stats, err := s.ListStats(ctx)
	require.NoError(t, err)
	require.Empty(t, stats)

	bals, err := s.ListBalances(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, bals)
}

// TestCommitAndRead verifies a committed change set is readable field by field.
func TestCommitAndRead(t *testing.T, open Opener) {
	ctx := context.Background()
	s := openStore(t, open)

	commit(t, s, func(cs *store.ChangeSet) {
		cs.PutStat(stat(tkn, 10000, 100000))
		cs.PutBalance(bal("alice", 7500, tkn, "alice"))
		cs.PutBalance(bal("bob", 2500, tkn, "alice"))
		cs.PutAllowance(allow("alice", "carol", 100, tkn))
	})

	st, err := s.GetStat(ctx, "TKN")
	require.NoError(t, err)
	require.Equal(t, types.NewAsset(10000, tkn), st.Supply)
	require.Equal(t, types.NewAsset(100000, tkn), st.MaxSupply)
	require.Equal(t, types.Name("alice"), st.Issuer)
	require.Equal(t, types.Name("eosio.token"), st.Payer)
	require.True(t, st.CreatedAt.Equal(now), "created_at: %v", st.CreatedAt)

	b, err := s.GetBalance(ctx, balance.Key{Owner: "bob", Code: "TKN"})
	require.NoError(t, err)
	require.Equal(t, types.NewAsset(2500, tkn), b.Balance)
	require.Equal(t, types.Name("bob"), b.Owner)
	require.Equal(t, types.Name("alice"), b.Payer)

	a, err := s.GetAllowance(ctx, allowance.Key{Owner: "alice", Spender: "carol", Code: "TKN"})
	require.NoError(t, err)
	require.Equal(t, types.NewAsset(100, tkn), a.Quantity)
	require.Equal(t, types.Name("alice"), a.Payer)

	// Overwrite in a second commit
	commit(t, s, func(cs *store.ChangeSet) {
		st.Supply = types.NewAsset(20000, tkn)
		cs.PutStat(st)
		cs.PutBalance(bal("bob", 12500, tkn, "bob"))
	})

	st, err = s.GetStat(ctx, "TKN")
	require.NoError(t, err)
	require.Equal(t, int64(20000), st.Supply.Amount)

	b, err = s.GetBalance(ctx, balance.Key{Owner: "bob", Code: "TKN"})
	require.NoError(t, err)
	require.Equal(t, int64(12500), b.Balance.Amount)
	require.Equal(t, types.Name("bob"), b.Payer)
}

// TestDelete verifies nil entries remove rows.
func TestDelete(t *testing.T, open Opener) {
	ctx := context.Background()
	s := openStore(t, open)

	commit(t, s, func(cs *store.ChangeSet) {
		cs.PutStat(stat(tkn, 0, 100))
		cs.PutBalance(bal("alice", 0, tkn, "alice"))
		cs.PutAllowance(allow("alice", "bob", 5, tkn))
	})
	commit(t, s, func(cs *store.ChangeSet) {
		cs.DeleteBalance(balance.Key{Owner: "alice", Code: "TKN"})
		cs.DeleteAllowance(allowance.Key{Owner: "alice", Spender: "bob", Code: "TKN"})
		// Deleting a row that never existed is not an error.
		cs.DeleteBalance(balance.Key{Owner: "nobody", Code: "TKN"})
	})

	_, err := s.GetBalance(ctx, balance.Key{Owner: "alice", Code: "TKN"})
	require.ErrorIs(t, err, tokenledger.ErrBalanceNotFound)
	_, err = s.GetAllowance(ctx, allowance.Key{Owner: "alice", Spender: "bob", Code: "TKN"})
	require.ErrorIs(t, err, tokenledger.ErrAllowanceNotFound)

	_, err = s.GetStat(ctx, "TKN")
	require.NoError(t, err)
}

// TestListOrdering verifies list queries filter by owner and sort by key.
func TestListOrdering(t *testing.T, open Opener) {
	ctx := context.Background()
	s := openStore(t, open)

	commit(t, s, func(cs *store.ChangeSet) {
		cs.PutStat(stat(tkn, 0, 100))
		cs.PutStat(stat(sys, 0, 100))
		cs.PutBalance(bal("alice", 1, tkn, "alice"))
		cs.PutBalance(bal("alice", 2, sys, "alice"))
		cs.PutBalance(bal("alice1", 3, tkn, "alice1"))
		cs.PutAllowance(allow("alice", "dave", 1, tkn))
		cs.PutAllowance(allow("alice", "bob", 2, tkn))
		cs.PutAllowance(allow("alice", "bob", 3, sys))
		cs.PutAllowance(allow("bob", "alice", 4, tkn))
	})

	stats, err := s.ListStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	require.Equal(t, types.SymbolCode("SYS"), stats[0].Code())
	require.Equal(t, types.SymbolCode("TKN"), stats[1].Code())

	bals, err := s.ListBalances(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, bals, 2)
	require.Equal(t, types.SymbolCode("SYS"), bals[0].Balance.Symbol.Code)
	require.Equal(t, types.SymbolCode("TKN"), bals[1].Balance.Symbol.Code)

	allows, err := s.ListAllowances(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, allows, 3)
	require.Equal(t, allowance.Key{Owner: "alice", Spender: "bob", Code: "SYS"}, allows[0].Key())
	require.Equal(t, allowance.Key{Owner: "alice", Spender: "bob", Code: "TKN"}, allows[1].Key())
	require.Equal(t, allowance.Key{Owner: "alice", Spender: "dave", Code: "TKN"}, allows[2].Key())
}

// TestCompositeKeys verifies that keys whose concatenated components are
// equal still address distinct rows.
func TestCompositeKeys(t *testing.T, open Opener) {
	ctx := context.Background()
	s := openStore(t, open)

	ab := types.MustSymbol("0,AB")
	b := types.MustSymbol("0,B")
	commit(t, s, func(cs *store.ChangeSet) {
		cs.PutStat(stat(ab, 0, 100))
		cs.PutStat(stat(b, 0, 100))
		cs.PutAllowance(allow("a", "bc", 1, ab))
		cs.PutAllowance(allow("a", "bca", 2, b))
		cs.PutAllowance(allow("ab", "c", 3, ab))
		cs.PutBalance(bal("a", 4, ab, "a"))
		cs.PutBalance(bal("aa", 5, b, "aa"))
	})

	for _, tc := range []struct {
		key  allowance.Key
		want int64
	}{
		{allowance.Key{Owner: "a", Spender: "bc", Code: "AB"}, 1},
		{allowance.Key{Owner: "a", Spender: "bca", Code: "B"}, 2},
		{allowance.Key{Owner: "ab", Spender: "c", Code: "AB"}, 3},
	} {
		got, err := s.GetAllowance(ctx, tc.key)
		require.NoError(t, err, tc.key.String())
		require.Equal(t, tc.want, got.Quantity.Amount, tc.key.String())
	}

	_, err := s.GetAllowance(ctx, allowance.Key{Owner: "a", Spender: "b", Code: "CAB"})
	require.ErrorIs(t, err, tokenledger.ErrAllowanceNotFound)

	bals, err := s.ListBalances(ctx, "a")
	require.NoError(t, err)
	require.Len(t, bals, 1)
	require.Equal(t, int64(4), bals[0].Balance.Amount)
}

// TestReopen verifies committed rows are visible from a freshly opened store.
func TestReopen(t *testing.T, open Opener) {
	ctx := context.Background()
	s := openStore(t, open)

	commit(t, s, func(cs *store.ChangeSet) {
		cs.PutStat(stat(tkn, 50, 100))
		cs.PutBalance(bal("alice", 50, tkn, "alice"))
	})
	s.cleanup()

	s = openStore(t, open)
	st, err := s.GetStat(ctx, "TKN")
	if err != nil {
		// Volatile stores start empty on every open.
		require.ErrorIs(t, err, tokenledger.ErrSymbolNotFound)
		return
	}
	require.Equal(t, int64(50), st.Supply.Amount)

	b, err := s.GetBalance(ctx, balance.Key{Owner: "alice", Code: "TKN"})
	require.NoError(t, err)
	require.Equal(t, int64(50), b.Balance.Amount)
}

// TestPing verifies an open store answers Ping.
func TestPing(t *testing.T, open Opener) {
	s := openStore(t, open)
	require.NoError(t, s.Ping(context.Background()))
}
