package extension

import (
	"time"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/plugin"
	"github.com/xraph/tokenledger/store"
)

// Option configures the token ledger Forge extension.
type Option func(*Extension)

// WithStore sets the store for the ledger engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithLedgerOption passes a tokenledger.Option through to the underlying engine.
func WithLedgerOption(opt tokenledger.Option) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, opt)
	}
}

// WithPlugin registers a ledger plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, tokenledger.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithContract sets the account that owns the ledger.
func WithContract(account string) Option {
	return func(e *Extension) { e.config.Contract = account }
}

// WithAccounts restricts the ledger to a fixed set of accounts.
func WithAccounts(accounts ...string) Option {
	return func(e *Extension) { e.config.Accounts = append(e.config.Accounts, accounts...) }
}

// WithPluginTimeout bounds each plugin hook call.
func WithPluginTimeout(d time.Duration) Option {
	return func(e *Extension) { e.config.PluginTimeout = d }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
