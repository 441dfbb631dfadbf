package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the token ledger store.
var Migrations = migrate.NewGroup("tokenledger")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_tokenledger_stats",
			Version: "20240301000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS tokenledger_stats (
    code             TEXT PRIMARY KEY,
    symbol_precision SMALLINT NOT NULL CHECK (symbol_precision BETWEEN 0 AND 18),
    supply           BIGINT NOT NULL DEFAULT 0 CHECK (supply >= 0),
    max_supply       BIGINT NOT NULL CHECK (max_supply > 0),
    issuer           TEXT NOT NULL,
    payer            TEXT NOT NULL,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (supply <= max_supply)
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS tokenledger_stats`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_tokenledger_balances",
			Version: "20240301000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS tokenledger_balances (
    owner            TEXT NOT NULL,
    code             TEXT NOT NULL,
    symbol_precision SMALLINT NOT NULL,
    amount           BIGINT NOT NULL DEFAULT 0 CHECK (amount >= 0),
    payer            TEXT NOT NULL,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (owner, code)
);

CREATE INDEX IF NOT EXISTS idx_tokenledger_balances_payer ON tokenledger_balances (payer);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS tokenledger_balances`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_tokenledger_allowances",
			Version: "20240301000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS tokenledger_allowances (
    owner            TEXT NOT NULL,
    spender          TEXT NOT NULL,
    code             TEXT NOT NULL,
    symbol_precision SMALLINT NOT NULL,
    amount           BIGINT NOT NULL CHECK (amount > 0),
    payer            TEXT NOT NULL,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (owner, spender, code)
);

CREATE INDEX IF NOT EXISTS idx_tokenledger_allowances_spender ON tokenledger_allowances (spender, code);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS tokenledger_allowances`)
				return err
			},
		},
	)
}
