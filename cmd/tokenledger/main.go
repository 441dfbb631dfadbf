// Command tokenledger runs token ledger operations against a local store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/auth"
	"github.com/xraph/tokenledger/types"
)

var cmdMain = &cobra.Command{
	Use:           "tokenledger",
	Short:         "Fungible token ledger",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var flagMain struct {
	Config   string
	Driver   string
	Path     string
	Auth     []string
	Verbose  bool
	Contract string
}

func init() {
	cmdMain.PersistentFlags().StringVarP(&flagMain.Config, "config", "c", "", "Path to a TOML configuration file")
	cmdMain.PersistentFlags().StringVar(&flagMain.Driver, "driver", "", "Store driver: bolt, badger, leveldb or memory")
	cmdMain.PersistentFlags().StringVar(&flagMain.Path, "db", "", "Store location")
	cmdMain.PersistentFlags().StringVar(&flagMain.Contract, "contract", "", "Account that owns the ledger")
	cmdMain.PersistentFlags().StringSliceVarP(&flagMain.Auth, "auth", "a", nil, "Accounts whose authority the caller holds")
	cmdMain.PersistentFlags().BoolVarP(&flagMain.Verbose, "verbose", "v", false, "Log at debug level")
}

func main() {
	if err := cmdMain.Execute(); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(exitCode(args))
}

// exitCode distinguishes rejected operations from usage and store failures.
func exitCode(args []interface{}) int {
	for _, a := range args {
		err, ok := a.(error)
		if !ok {
			continue
		}
		switch tokenledger.KindOf(err) {
		case tokenledger.KindStore, tokenledger.KindUnknown:
			return 1
		default:
			return 2
		}
	}
	return 1
}

func logger() *slog.Logger {
	level := slog.LevelWarn
	if flagMain.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// run opens the configured ledger, calls fn with a context carrying the
// --auth authorities, and closes the ledger afterwards.
func run(fn func(ctx context.Context, l *tokenledger.Ledger) error) error {
	cfg, err := loadConfig(flagMain.Config)
	if err != nil {
		return err
	}
	cfg.override(flagMain.Driver, flagMain.Path, flagMain.Contract)

	log := logger()
	l, err := cfg.open(log)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := l.Start(ctx); err != nil {
		_ = l.Stop()
		return err
	}

	authorities, err := parseNames(flagMain.Auth)
	if err != nil {
		_ = l.Stop()
		return err
	}
	ctx = auth.WithAuthority(ctx, authorities...)

	err = fn(ctx, l)
	if stopErr := l.Stop(); err == nil {
		err = stopErr
	}
	return err
}

func parseNames(ss []string) ([]types.Name, error) {
	names := make([]types.Name, 0, len(ss))
	for _, s := range ss {
		n, err := types.ParseName(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, nil
}

// memoArg returns the optional memo positional argument at index i.
func memoArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}
