package tokenledger_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/types"
)

// TestRandomOperationsPreserveInvariants drives a seeded random mix of
// operations and checks after each one that supply equals the sum of all
// balances, no balance or allowance is negative, and supply never exceeds
// its cap.
func TestRandomOperationsPreserveInvariants(t *testing.T) {
	accounts := []types.Name{"alice", "bob", "carol", "dave"}
	sym := types.MustSymbol("2,TKN")

	for seed := uint64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*7919))
		f := newFixture(t)
		f.ok(f.l.Create(as(contract), "alice", types.NewAsset(100000, sym)))

		pick := func() types.Name { return accounts[rng.IntN(len(accounts))] }
		qty := func() types.Asset { return types.NewAsset(rng.Int64N(5000)-100, sym) }

		for step := 0; step < 300; step++ {
			a, b, c := pick(), pick(), pick()
			var err error
			switch rng.IntN(7) {
			case 0:
				err = f.l.Issue(as("alice"), a, qty(), "")
			case 1:
				err = f.l.Retire(as("alice"), qty(), "")
			case 2:
				err = f.l.Transfer(as(a), a, b, qty(), "")
			case 3:
				err = f.l.Open(as(a), b, sym, a)
			case 4:
				err = f.l.Close(as(a), a, sym)
			case 5:
				err = f.l.Approve(as(a), a, b, qty())
			case 6:
				err = f.l.TransferFrom(as(c), a, b, c, qty(), "")
			}
			if err != nil && tokenledger.KindOf(err) == tokenledger.KindUnknown {
				t.Fatalf("seed %d step %d: unclassified error %v", seed, step, err)
			}
			checkInvariants(t, f, seed, step)
		}
	}
}

func checkInvariants(t *testing.T, f *fixture, seed uint64, step int) {
	t.Helper()
	snap := f.store.Snapshot()

	st, ok := snap.Stats["TKN"]
	if !ok {
		t.Fatalf("seed %d step %d: stat row missing", seed, step)
	}
	if st.Supply.Amount < 0 || st.Supply.Amount > st.MaxSupply.Amount {
		t.Fatalf("seed %d step %d: supply %s outside [0, %s]", seed, step, st.Supply, st.MaxSupply)
	}

	var sum int64
	for k, b := range snap.Balances {
		if b.Balance.Amount < 0 {
			t.Fatalf("seed %d step %d: negative balance %v: %s", seed, step, k, b.Balance)
		}
		if b.Balance.Symbol != st.Symbol() {
			t.Fatalf("seed %d step %d: balance %v has symbol %s", seed, step, k, b.Balance.Symbol)
		}
		sum += b.Balance.Amount
	}
	if sum != st.Supply.Amount {
		t.Fatalf("seed %d step %d: balances sum to %d, supply is %d", seed, step, sum, st.Supply.Amount)
	}

	for k, a := range snap.Allowances {
		if a.Quantity.Amount <= 0 {
			t.Fatalf("seed %d step %d: allowance %v holds %s", seed, step, k, a.Quantity)
		}
		if k.Owner == k.Spender {
			t.Fatalf("seed %d step %d: self allowance %v", seed, step, k)
		}
	}

	if _, err := f.l.Supply(context.Background(), "TKN"); err != nil {
		t.Fatalf("seed %d step %d: %v", seed, step, err)
	}
}
