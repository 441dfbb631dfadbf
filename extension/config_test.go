package extension

import (
	"testing"
	"time"
)

func TestMergeWithDefaults(t *testing.T) {
	cfg := mergeWithDefaults(Config{})
	if cfg.Contract != "eosio.token" {
		t.Errorf("Contract: got %q", cfg.Contract)
	}
	if cfg.PluginTimeout != 5*time.Second {
		t.Errorf("PluginTimeout: got %v", cfg.PluginTimeout)
	}
}

func TestMergeConfigurations(t *testing.T) {
	tests := []struct {
		name        string
		file, prog  Config
		wantOwner   string
		wantTimeout time.Duration
		wantMigrate bool
		wantAccts   int
	}{
		{
			name:        "file wins",
			file:        Config{Contract: "tokens", PluginTimeout: time.Second, Accounts: []string{"alice"}},
			prog:        Config{Contract: "other", PluginTimeout: time.Minute, Accounts: []string{"bob", "carol"}},
			wantOwner:   "tokens",
			wantTimeout: time.Second,
			wantAccts:   1,
		},
		{
			name:        "programmatic fills gaps",
			file:        Config{},
			prog:        Config{Contract: "other", DisableMigrate: true, Accounts: []string{"bob", "carol"}},
			wantOwner:   "other",
			wantTimeout: 5 * time.Second,
			wantMigrate: true,
			wantAccts:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeConfigurations(tt.file, tt.prog)
			if got.Contract != tt.wantOwner {
				t.Errorf("Contract: got %q, want %q", got.Contract, tt.wantOwner)
			}
			if got.PluginTimeout != tt.wantTimeout {
				t.Errorf("PluginTimeout: got %v, want %v", got.PluginTimeout, tt.wantTimeout)
			}
			if got.DisableMigrate != tt.wantMigrate {
				t.Errorf("DisableMigrate: got %v", got.DisableMigrate)
			}
			if len(got.Accounts) != tt.wantAccts {
				t.Errorf("Accounts: got %v", got.Accounts)
			}
		})
	}
}

func TestBuildLedgerOpts(t *testing.T) {
	e := New(WithAccounts("alice", "bob"), WithPluginTimeout(time.Second))
	opts, err := e.buildLedgerOpts()
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 2 {
		t.Errorf("options: got %d, want 2", len(opts))
	}

	bad := New(WithAccounts("Not Valid"))
	if _, err := bad.buildLedgerOpts(); err == nil {
		t.Error("expected an error for an invalid account name")
	}
}
