// Package mongo implements store.Store on MongoDB through the grove ORM.
//
// Commit runs inside a multi-document transaction, so the deployment must be
// a replica set or a sharded cluster.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
	ledgerstore "github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/types"
)

// Collection name constants.
const (
	colStats      = "tokenledger_stats"
	colBalances   = "tokenledger_balances"
	colAllowances = "tokenledger_allowances"
)

// compile-time interface check
var _ ledgerstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all token ledger collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("tokenledger/mongo: migrate %s indexes: %w", col, err)
		}
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
	var m statModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": string(code)}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, tokenledger.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("tokenledger/mongo: get stat: %w", err)
	}
	return fromStatModel(&m), nil
}

func (s *Store) ListStats(ctx context.Context) ([]*currency.Stat, error) {
	var models []statModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{}).
		Sort(bson.D{{Key: "_id", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("tokenledger/mongo: list stats: %w", err)
	}

	result := make([]*currency.Stat, len(models))
	for i := range models {
		result[i] = fromStatModel(&models[i])
	}
	return result, nil
}

// ==================== Balance Store ====================

func (s *Store) GetBalance(ctx context.Context, key balance.Key) (*balance.Balance, error) {
	var m balanceModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": toBalanceID(key)}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, tokenledger.ErrBalanceNotFound
		}
		return nil, fmt.Errorf("tokenledger/mongo: get balance: %w", err)
	}
	return fromBalanceModel(&m), nil
}

func (s *Store) ListBalances(ctx context.Context, owner types.Name) ([]*balance.Balance, error) {
	var models []balanceModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{"_id.owner": string(owner)}).
		Sort(bson.D{{Key: "_id.code", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("tokenledger/mongo: list balances: %w", err)
	}

	result := make([]*balance.Balance, len(models))
	for i := range models {
		result[i] = fromBalanceModel(&models[i])
	}
	return result, nil
}

// ==================== Allowance Store ====================

func (s *Store) GetAllowance(ctx context.Context, key allowance.Key) (*allowance.Allowance, error) {
	var m allowanceModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": toAllowanceID(key)}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, tokenledger.ErrAllowanceNotFound
		}
		return nil, fmt.Errorf("tokenledger/mongo: get allowance: %w", err)
	}
	return fromAllowanceModel(&m), nil
}

func (s *Store) ListAllowances(ctx context.Context, owner types.Name) ([]*allowance.Allowance, error) {
	var models []allowanceModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{"_id.owner": string(owner)}).
		Sort(bson.D{{Key: "_id.spender", Value: 1}, {Key: "_id.code", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("tokenledger/mongo: list allowances: %w", err)
	}

	result := make([]*allowance.Allowance, len(models))
	for i := range models {
		result[i] = fromAllowanceModel(&models[i])
	}
	return result, nil
}

// ==================== Commit ====================

// Commit applies cs inside one multi-document transaction.
func (s *Store) Commit(ctx context.Context, cs *ledgerstore.ChangeSet) error {
	if cs.IsEmpty() {
		return nil
	}

	sess, err := s.mdb.Collection(colStats).Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("tokenledger/mongo: start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return nil, s.apply(ctx, cs)
	})
	if err != nil {
		return fmt.Errorf("tokenledger/mongo: commit: %w", err)
	}
	return nil
}

func (s *Store) apply(ctx context.Context, cs *ledgerstore.ChangeSet) error {
	stats := s.mdb.Collection(colStats)
	for _, code := range cs.StatCodes() {
		if st := cs.Stats[code]; st != nil {
			if err := replace(ctx, stats, string(code), toStatModel(st)); err != nil {
				return err
			}
		}
	}

	balances := s.mdb.Collection(colBalances)
	for _, k := range cs.BalanceKeys() {
		var err error
		if b := cs.Balances[k]; b != nil {
			err = replace(ctx, balances, toBalanceID(k), toBalanceModel(b))
		} else {
			_, err = balances.DeleteOne(ctx, bson.M{"_id": toBalanceID(k)})
		}
		if err != nil {
			return fmt.Errorf("balance %s: %w", k, err)
		}
	}

	allowances := s.mdb.Collection(colAllowances)
	for _, k := range cs.AllowanceKeys() {
		var err error
		if a := cs.Allowances[k]; a != nil {
			err = replace(ctx, allowances, toAllowanceID(k), toAllowanceModel(a))
		} else {
			_, err = allowances.DeleteOne(ctx, bson.M{"_id": toAllowanceID(k)})
		}
		if err != nil {
			return fmt.Errorf("allowance %s: %w", k, err)
		}
	}
	return nil
}

func replace(ctx context.Context, col *mongo.Collection, id, doc any) error {
	_, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all token ledger collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colStats: {
			{Keys: bson.D{{Key: "issuer", Value: 1}}},
		},
		colBalances: {
			{Keys: bson.D{{Key: "_id.owner", Value: 1}, {Key: "_id.code", Value: 1}}},
			{Keys: bson.D{{Key: "payer", Value: 1}}},
		},
		colAllowances: {
			{Keys: bson.D{{Key: "_id.owner", Value: 1}, {Key: "_id.spender", Value: 1}, {Key: "_id.code", Value: 1}}},
			{Keys: bson.D{{Key: "_id.spender", Value: 1}, {Key: "_id.code", Value: 1}}},
		},
	}
}
