package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/types"
)

func TestBuildCommit(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tkn := types.MustSymbol("2,TKN")

	cs := store.NewChangeSet()
	cs.PutStat(&currency.Stat{
		Entity:    types.NewEntity(now),
		Supply:    types.NewAsset(100, tkn),
		MaxSupply: types.NewAsset(1000, tkn),
		Issuer:    "alice",
		Payer:     "eosio.token",
	})
	cs.PutBalance(&balance.Balance{Entity: types.NewEntity(now), Owner: "bob", Balance: types.NewAsset(100, tkn), Payer: "alice"})
	cs.DeleteBalance(balance.Key{Owner: "alice", Code: "TKN"})
	cs.DeleteAllowance(allowance.Key{Owner: "alice", Spender: "carol", Code: "TKN"})

	st := buildCommit(cs)

	if got := len(st.ctes); got != 4 {
		t.Fatalf("ctes: got %d, want 4", got)
	}
	if got := len(st.args); got != 8+2+7+3 {
		t.Errorf("args: got %d, want 20", got)
	}

	sql := st.SQL()
	if !strings.HasPrefix(sql, "WITH c0 AS (INSERT INTO tokenledger_stats") {
		t.Errorf("unexpected statement start: %.60s", sql)
	}
	if !strings.HasSuffix(sql, " SELECT 1") {
		t.Errorf("unexpected statement end: %s", sql[len(sql)-20:])
	}
	if strings.Contains(sql, "?") {
		t.Error("statement still contains ? placeholders")
	}
	if !strings.Contains(sql, "$20") || strings.Contains(sql, "$21") {
		t.Error("placeholders are not numbered 1..20")
	}

	// Balances sort by owner, so alice's delete precedes bob's upsert.
	del := strings.Index(sql, "DELETE FROM tokenledger_balances")
	ins := strings.Index(sql, "INSERT INTO tokenledger_balances")
	if del < 0 || ins < 0 || del > ins {
		t.Errorf("balance changes out of key order: delete at %d, insert at %d", del, ins)
	}
	if st.args[8] != "alice" || st.args[9] != "TKN" {
		t.Errorf("delete args: got %v %v", st.args[8], st.args[9])
	}
}
