package extension

import "time"

// Config holds the token ledger extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.tokenledger" or "tokenledger" keys).
type Config struct {
	// Contract is the account that owns the ledger and may create symbols
	// (default: "eosio.token").
	Contract string `json:"contract" mapstructure:"contract" yaml:"contract"`

	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// PluginTimeout bounds each plugin hook call (default: 5s).
	PluginTimeout time.Duration `json:"plugin_timeout" mapstructure:"plugin_timeout" yaml:"plugin_timeout"`

	// Accounts lists the accounts known to the ledger. When empty, every
	// well-formed name is treated as an existing account.
	Accounts []string `json:"accounts" mapstructure:"accounts" yaml:"accounts"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Contract:      "eosio.token",
		PluginTimeout: 5 * time.Second,
	}
}
