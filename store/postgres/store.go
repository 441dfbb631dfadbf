// Package postgres implements store.Store on PostgreSQL through the grove ORM.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
	ledgerstore "github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/types"
)

// compile-time interface check
var _ ledgerstore.Store = (*Store)(nil)

// Store implements store.Store using PostgreSQL via Grove ORM.
type Store struct {
	db *grove.DB
	pg *pgdriver.PgDB
}

// New creates a new PostgreSQL store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db: db,
		pg: pgdriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pg)
	if err != nil {
		return fmt.Errorf("tokenledger/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("tokenledger/postgres: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Currency Store ====================

func (s *Store) GetStat(ctx context.Context, code types.SymbolCode) (*currency.Stat, error) {
	m := new(statModel)
	err := s.pg.NewSelect(m).
		Where("code = $1", string(code)).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, tokenledger.ErrSymbolNotFound
		}
		return nil, err
	}
	return fromStatModel(m), nil
}

func (s *Store) ListStats(ctx context.Context) ([]*currency.Stat, error) {
	var models []statModel
	err := s.pg.NewSelect(&models).
		OrderExpr("code ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*currency.Stat, len(models))
	for i := range models {
		result[i] = fromStatModel(&models[i])
	}
	return result, nil
}

// ==================== Balance Store ====================

func (s *Store) GetBalance(ctx context.Context, key balance.Key) (*balance.Balance, error) {
	m := new(balanceModel)
	err := s.pg.NewSelect(m).
		Where("owner = $1", string(key.Owner)).
		Where("code = $2", string(key.Code)).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, tokenledger.ErrBalanceNotFound
		}
		return nil, err
	}
	return fromBalanceModel(m), nil
}

func (s *Store) ListBalances(ctx context.Context, owner types.Name) ([]*balance.Balance, error) {
	var models []balanceModel
	err := s.pg.NewSelect(&models).
		Where("owner = $1", string(owner)).
		OrderExpr("code ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*balance.Balance, len(models))
	for i := range models {
		result[i] = fromBalanceModel(&models[i])
	}
	return result, nil
}

// ==================== Allowance Store ====================

func (s *Store) GetAllowance(ctx context.Context, key allowance.Key) (*allowance.Allowance, error) {
	m := new(allowanceModel)
	err := s.pg.NewSelect(m).
		Where("owner = $1", string(key.Owner)).
		Where("spender = $2", string(key.Spender)).
		Where("code = $3", string(key.Code)).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, tokenledger.ErrAllowanceNotFound
		}
		return nil, err
	}
	return fromAllowanceModel(m), nil
}

func (s *Store) ListAllowances(ctx context.Context, owner types.Name) ([]*allowance.Allowance, error) {
	var models []allowanceModel
	err := s.pg.NewSelect(&models).
		Where("owner = $1", string(owner)).
		OrderExpr("spender ASC, code ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*allowance.Allowance, len(models))
	for i := range models {
		result[i] = fromAllowanceModel(&models[i])
	}
	return result, nil
}

// ==================== Commit ====================

// Commit applies cs as a single statement of data-modifying CTEs, so either
// every row changes or none does.
func (s *Store) Commit(ctx context.Context, cs *ledgerstore.ChangeSet) error {
	if cs.IsEmpty() {
		return nil
	}

	st := buildCommit(cs)
	var one int
	if err := s.pg.NewRaw(st.SQL(), st.args...).Scan(ctx, &one); err != nil {
		return fmt.Errorf("tokenledger/postgres: commit %d changes: %w", len(st.ctes), err)
	}
	return nil
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
