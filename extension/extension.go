// Package extension provides the Forge extension adapter for the token ledger.
//
// It implements the forge.Extension interface to integrate the ledger
// into a Forge application with DI registration and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.tokenledger" or
// "tokenledger" keys.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/auth"
	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/store/memory"
	"github.com/xraph/tokenledger/types"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "tokenledger"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Fungible token ledger with delegated allowances"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the token ledger as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *tokenledger.Ledger
	store      store.Store
	ledgerOpts []tokenledger.Option
}

// New creates a new token ledger Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Ledger instance.
// This is nil until Register is called.
func (e *Extension) Engine() *tokenledger.Ledger { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the ledger engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	self, err := types.ParseName(e.config.Contract)
	if err != nil {
		return fmt.Errorf("tokenledger: contract: %w", err)
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	opts, err := e.buildLedgerOpts()
	if err != nil {
		return err
	}

	e.engine = tokenledger.New(self, e.store, opts...)

	return vessel.Provide(fapp.Container(), func() (*tokenledger.Ledger, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("tokenledger: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("tokenledger: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildLedgerOpts constructs tokenledger.Option values from the resolved config.
func (e *Extension) buildLedgerOpts() ([]tokenledger.Option, error) {
	opts := make([]tokenledger.Option, 0, len(e.ledgerOpts)+2)

	if e.config.PluginTimeout > 0 {
		opts = append(opts, tokenledger.WithPluginTimeout(e.config.PluginTimeout))
	}

	if len(e.config.Accounts) > 0 {
		names := make([]types.Name, 0, len(e.config.Accounts))
		for _, a := range e.config.Accounts {
			n, err := types.ParseName(a)
			if err != nil {
				return nil, fmt.Errorf("tokenledger: accounts: %w", err)
			}
			names = append(names, n)
		}
		opts = append(opts, tokenledger.WithAccounts(auth.NewRegistry(names...)))
	}

	// Pass-through options come last so they win over config.
	opts = append(opts, e.ledgerOpts...)

	return opts, nil
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("tokenledger: configuration is required but not found in config files; " +
				"ensure 'extensions.tokenledger' or 'tokenledger' key exists in your config")
		}

		e.config = mergeWithDefaults(programmaticConfig)
	} else {
		e.config = mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("tokenledger: configuration loaded",
		forge.F("contract", e.config.Contract),
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("plugin_timeout", e.config.PluginTimeout),
		forge.F("accounts", len(e.config.Accounts)),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()

	for _, key := range []string{"extensions.tokenledger", "tokenledger"} {
		if !cm.IsSet(key) {
			continue
		}
		var cfg Config
		if err := cm.Bind(key, &cfg); err != nil {
			e.Logger().Warn("tokenledger: failed to bind config",
				forge.F("key", key),
				forge.F("error", err.Error()),
			)
			continue
		}
		e.Logger().Debug("tokenledger: loaded config from file",
			forge.F("key", key),
		)
		return cfg, true
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.Contract == "" {
		cfg.Contract = defaults.Contract
	}
	if cfg.PluginTimeout == 0 {
		cfg.PluginTimeout = defaults.PluginTimeout
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence; programmatic values fill gaps.
func mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}
	if yamlConfig.Contract == "" {
		yamlConfig.Contract = programmaticConfig.Contract
	}
	if yamlConfig.PluginTimeout == 0 {
		yamlConfig.PluginTimeout = programmaticConfig.PluginTimeout
	}
	if len(yamlConfig.Accounts) == 0 {
		yamlConfig.Accounts = programmaticConfig.Accounts
	}

	return mergeWithDefaults(yamlConfig)
}
