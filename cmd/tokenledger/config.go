package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/auth"
	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/store/kv"
	"github.com/xraph/tokenledger/store/kv/badger"
	"github.com/xraph/tokenledger/store/kv/bolt"
	"github.com/xraph/tokenledger/store/kv/leveldb"
	"github.com/xraph/tokenledger/store/memory"
	"github.com/xraph/tokenledger/types"
)

// Config is the TOML configuration of the command.
//
//	contract = "eosio.token"
//	accounts = ["alice", "bob"]
//
//	[database]
//	driver = "bolt"
//	path = "tokenledger.db"
type Config struct {
	Contract string   `toml:"contract"`
	Accounts []string `toml:"accounts"`
	Database Database `toml:"database"`
}

// Database selects the store backend.
type Database struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

func defaultConfig() *Config {
	return &Config{
		Contract: "eosio.token",
		Database: Database{Driver: "bolt", Path: "tokenledger.db"},
	}
}

// loadConfig reads the TOML file at path over the defaults. An empty path
// yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config %s does not exist", path)
		}
		return nil, err
	}

	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decode %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

func (c *Config) override(driver, path, contract string) {
	if driver != "" {
		c.Database.Driver = driver
	}
	if path != "" {
		c.Database.Path = path
	}
	if contract != "" {
		c.Contract = contract
	}
}

// open builds the ledger described by the config.
func (c *Config) open(log *slog.Logger) (*tokenledger.Ledger, error) {
	self, err := types.ParseName(c.Contract)
	if err != nil {
		return nil, fmt.Errorf("contract: %w", err)
	}

	opts := []tokenledger.Option{tokenledger.WithLogger(log)}
	if len(c.Accounts) > 0 {
		names, err := parseNames(c.Accounts)
		if err != nil {
			return nil, fmt.Errorf("accounts: %w", err)
		}
		opts = append(opts, tokenledger.WithAccounts(auth.NewRegistry(names...)))
	}

	s, err := c.Database.open(log)
	if err != nil {
		return nil, err
	}
	return tokenledger.New(self, s, opts...), nil
}

func (d Database) open(log *slog.Logger) (store.Store, error) {
	var backend kv.Backend
	var err error
	switch d.Driver {
	case "memory":
		return memory.New(), nil
	case "bolt":
		backend, err = bolt.Open(d.Path)
	case "badger":
		backend, err = badger.Open(d.Path, log)
	case "leveldb":
		backend, err = leveldb.OpenFile(d.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", d.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store at %s: %w", d.Driver, d.Path, err)
	}
	s, err := kv.New(backend, kv.WithLogger(log))
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return s, nil
}
