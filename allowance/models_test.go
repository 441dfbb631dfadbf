package allowance

import (
	"testing"

	"github.com/xraph/tokenledger/types"
)

func TestKeyCollisionFree(t *testing.T) {
	// Pairs that an additive or concatenating encoding would fold together.
	keys := []Key{
		{Owner: "alice", Spender: "ab", Code: "C"},
		{Owner: "alice", Spender: "a", Code: "BC"},
		{Owner: "alice", Spender: "abc", Code: "D"},
		{Owner: "alice", Spender: "ab", Code: "CD"},
		{Owner: "alicea", Spender: "b", Code: "C"},
		{Owner: "alice", Spender: "ab", Code: "C"},
	}

	seen := make(map[Key]int)
	for i, k := range keys {
		seen[k] = i
	}
	if len(seen) != len(keys)-1 {
		t.Fatalf("expected %d distinct keys, got %d", len(keys)-1, len(seen))
	}
	if seen[keys[0]] != 5 {
		t.Errorf("identical keys must map to the same row")
	}
}

func TestAllowanceKey(t *testing.T) {
	a := &Allowance{
		Owner:    "alice",
		Spender:  "bob",
		Quantity: types.MustAsset("1.00 TKN"),
	}
	want := Key{Owner: "alice", Spender: "bob", Code: "TKN"}
	if a.Key() != want {
		t.Errorf("Key: got %v, want %v", a.Key(), want)
	}
	if a.Key().String() != "alice/bob/TKN" {
		t.Errorf("String: got %s", a.Key().String())
	}

	c := a.Clone()
	c.Quantity.Amount = 5
	if a.Quantity.Amount != 100 {
		t.Error("Clone must not share state with the original")
	}
}
