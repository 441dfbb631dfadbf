package kv

import (
	"bytes"
	"testing"

	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/types"
)

func TestKeysAreInjective(t *testing.T) {
	keys := []allowance.Key{
		{Owner: "ab", Spender: "c", Code: "D"},
		{Owner: "a", Spender: "bc", Code: "D"},
		{Owner: "a", Spender: "b", Code: "CD"},
		{Owner: "abc", Spender: "", Code: "D"},
	}

	seen := make(map[string]allowance.Key)
	for _, k := range keys {
		enc := string(allowanceKey(k))
		if prev, ok := seen[enc]; ok {
			t.Fatalf("%s and %s encode to the same key %x", prev, k, enc)
		}
		seen[enc] = k
	}
}

func TestOwnerPrefix(t *testing.T) {
	tests := []struct {
		name  string
		owner types.Name
		key   balance.Key
		want  bool
	}{
		{"own row", "alice", balance.Key{Owner: "alice", Code: "TKN"}, true},
		{"longer owner", "alice", balance.Key{Owner: "alice1", Code: "TKN"}, false},
		{"shorter owner", "alice1", balance.Key{Owner: "alice", Code: "TKN"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bytes.HasPrefix(balanceKey(tt.key), balancePrefix(tt.owner))
			if got != tt.want {
				t.Errorf("prefix match: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTablesDoNotOverlap(t *testing.T) {
	if bytes.HasPrefix(allowanceKey(allowance.Key{Owner: "alice", Spender: "bob", Code: "TKN"}), balancePrefix("alice")) {
		t.Error("allowance key falls under the balance prefix")
	}
	if bytes.HasPrefix(balanceKey(balance.Key{Owner: "alice", Code: "TKN"}), statPrefix()) {
		t.Error("balance key falls under the stat prefix")
	}
}
