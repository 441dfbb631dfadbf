// Package leveldb is a kv.Backend over a goleveldb directory.
package leveldb

import (
	"errors"
	"fmt"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/xraph/tokenledger/store/kv"
)

// Compile-time interface check.
var _ kv.Backend = (*DB)(nil)

// DB is a goleveldb-backed kv.Backend.
type DB struct {
	leveldb *leveldb.DB
}

// OpenFile opens or creates a database in dir.
func OpenFile(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("leveldb: create %q: %w", dir, err)
	}

	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("leveldb: open %q: %w", dir, err)
	}
	return &DB{leveldb: db}, nil
}

// Get implements kv.Backend.
func (d *DB) Get(key []byte) ([]byte, error) {
	v, err := d.leveldb.Get(key, nil)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, leveldb.ErrNotFound):
		return nil, kv.ErrNotFound
	default:
		return nil, err
	}
}

// Scan implements kv.Backend over a consistent snapshot.
func (d *DB) Scan(prefix []byte, fn func(key, value []byte) error) error {
	snap, err := d.leveldb.GetSnapshot()
	if err != nil {
		return err
	}
	defer snap.Release()

	it := snap.NewIterator(util.BytesPrefix(prefix), nil)
	defer it.Release()
	for it.Next() {
		if err := fn(it.Key(), it.Value()); err != nil {
			return err
		}
	}
	return it.Error()
}

// Apply implements kv.Backend with one synced write batch.
func (d *DB) Apply(ops []kv.Op) error {
	batch := new(leveldb.Batch)
	for _, op := range ops {
		if op.Delete {
			batch.Delete(op.Key)
		} else {
			batch.Put(op.Key, op.Value)
		}
	}
	return d.leveldb.Write(batch, &opt.WriteOptions{Sync: true})
}

// Close closes the database.
func (d *DB) Close() error {
	return d.leveldb.Close()
}
