// Package bolt is a kv.Backend over a bbolt file.
package bolt

import (
	"bytes"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/xraph/tokenledger/store/kv"
)

var bucket = []byte("tokenledger")

// Compile-time interface check.
var _ kv.Backend = (*DB)(nil)

// DB is a bbolt-backed kv.Backend. All rows live in one bucket.
type DB struct {
	bolt *bolt.DB
}

// Open opens or creates the database file at path.
func Open(path string) (*DB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: open %q: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt: create bucket: %w", err)
	}

	return &DB{bolt: db}, nil
}

// Get implements kv.Backend.
func (d *DB) Get(key []byte) ([]byte, error) {
	var out []byte
	err := d.bolt.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucket).Get(key)
		if v == nil {
			return kv.ErrNotFound
		}
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	return out, err
}

// Scan implements kv.Backend.
func (d *DB) Scan(prefix []byte, fn func(key, value []byte) error) error {
	return d.bolt.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucket).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			if err := fn(k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Apply implements kv.Backend in a single read-write transaction.
func (d *DB) Apply(ops []kv.Op) error {
	return d.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		for _, op := range ops {
			var err error
			if op.Delete {
				err = b.Delete(op.Key)
			} else {
				err = b.Put(op.Key, op.Value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the database file.
func (d *DB) Close() error {
	return d.bolt.Close()
}
