package tokenledger_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/auth"
	"github.com/xraph/tokenledger/store/memory"
)

// TestDocumentationExamples verifies that the package documentation examples run.
func TestDocumentationExamples(t *testing.T) {
	t.Run("QuickStartExample", func(t *testing.T) {
		l := tokenledger.New("eosio.token", memory.New(),
			tokenledger.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		)

		ctx := context.Background()
		if err := l.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer l.Stop()

		ctx = auth.WithAuthority(ctx, "eosio.token")
		if err := l.Create(ctx, "alice", tokenledger.MustAsset("1000.00 TKN")); err != nil {
			t.Fatal(err)
		}

		alice := auth.WithAuthority(context.Background(), "alice")
		if err := l.Issue(alice, "bob", tokenledger.MustAsset("10.00 TKN"), "hello"); err != nil {
			t.Fatal(err)
		}

		got, err := l.Balance(ctx, "bob", "TKN")
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != "10.00 TKN" {
			t.Errorf("bob balance: got %s, want 10.00 TKN", got)
		}
	})

	t.Run("AssetExamples", func(t *testing.T) {
		a := tokenledger.MustAsset("1.50 TKN")
		b := tokenledger.NewAsset(250, a.Symbol)

		sum, err := a.Add(b)
		if err != nil {
			t.Fatal(err)
		}
		if sum.String() != "4.00 TKN" {
			t.Errorf("sum: got %s", sum)
		}

		if _, err := a.Add(tokenledger.MustAsset("1.500 TKN")); err == nil {
			t.Error("expected precision mismatch")
		}
	})
}
