package auth

import (
	"context"
	"slices"
	"testing"

	"github.com/xraph/tokenledger/types"
)

func TestWithAuthority(t *testing.T) {
	ctx := context.Background()
	if (Context{}).HasAuth(ctx, "alice") {
		t.Fatal("empty context must not hold any authority")
	}

	ctx = WithAuthority(ctx, "alice")
	ctx2 := WithAuthority(ctx, "bob", "alice")

	tests := []struct {
		name    string
		ctx     context.Context
		account types.Name
		want    bool
	}{
		{"alice in first", ctx, "alice", true},
		{"bob not in first", ctx, "bob", false},
		{"alice inherited", ctx2, "alice", true},
		{"bob added", ctx2, "bob", true},
		{"carol never", ctx2, "carol", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Context{}).HasAuth(tt.ctx, tt.account); got != tt.want {
				t.Errorf("HasAuth(%s): got %v, want %v", tt.account, got, tt.want)
			}
		})
	}

	if got := Authorities(ctx2); !slices.Equal(got, []types.Name{"alice", "bob"}) {
		t.Errorf("Authorities: got %v", got)
	}
}

func TestStatic(t *testing.T) {
	s := Static{"issuer"}
	ctx := WithAuthority(context.Background(), "alice")
	if !s.HasAuth(ctx, "issuer") {
		t.Error("Static must grant its listed authority")
	}
	if s.HasAuth(ctx, "alice") {
		t.Error("Static must ignore context authority")
	}
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry("alice", "bob")

	if !r.IsAccount(ctx, "alice") || r.IsAccount(ctx, "carol") {
		t.Fatal("unexpected membership")
	}

	rejected := r.Add("carol", "Bad Name")
	if !slices.Equal(rejected, []types.Name{"Bad Name"}) {
		t.Errorf("Add rejected: got %v", rejected)
	}
	if !r.IsAccount(ctx, "carol") {
		t.Error("carol should be registered")
	}

	r.Remove("bob")
	if got := r.List(); !slices.Equal(got, []types.Name{"alice", "carol"}) {
		t.Errorf("List: got %v", got)
	}
}

func TestValidNames(t *testing.T) {
	ctx := context.Background()
	if !(ValidNames{}).IsAccount(ctx, "anyone") {
		t.Error("valid name should exist")
	}
	if (ValidNames{}).IsAccount(ctx, "NotValid") {
		t.Error("invalid name should not exist")
	}
}
