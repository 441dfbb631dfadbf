// Package badger is a kv.Backend over a badger directory.
package badger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger"

	"github.com/xraph/tokenledger/store/kv"
)

// Compile-time interface check.
var _ kv.Backend = (*DB)(nil)

// DB is a badger-backed kv.Backend.
type DB struct {
	badger *badger.DB
}

// Open opens or creates a database in dir. Badger's own log lines go to
// logger.
func Open(dir string, logger *slog.Logger) (*DB, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("badger: create %q: %w", dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(dir)
	opts = opts.WithLogger(slogger{logger: logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open %q: %w", dir, err)
	}
	return &DB{badger: db}, nil
}

// Get implements kv.Backend.
func (d *DB) Get(key []byte) ([]byte, error) {
	var out []byte
	err := d.badger.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return kv.ErrNotFound
		}
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	return out, err
}

// Scan implements kv.Backend.
func (d *DB) Scan(prefix []byte, fn func(key, value []byte) error) error {
	return d.badger.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(item.Key(), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Apply implements kv.Backend in a single update transaction.
func (d *DB) Apply(ops []kv.Op) error {
	return d.badger.Update(func(txn *badger.Txn) error {
		for _, op := range ops {
			var err error
			if op.Delete {
				err = txn.Delete(op.Key)
			} else {
				err = txn.Set(op.Key, op.Value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the database.
func (d *DB) Close() error {
	return d.badger.Close()
}

// slogger adapts badger's printf-style logger to slog.
type slogger struct {
	logger *slog.Logger
}

func (l slogger) format(format string, args ...interface{}) string {
	s := fmt.Sprintf(format, args...)
	return strings.TrimRight(s, "\n")
}

func (l slogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(l.format(format, args...), "module", "badger")
}

func (l slogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(l.format(format, args...), "module", "badger")
}

func (l slogger) Infof(format string, args ...interface{}) {
	l.logger.Info(l.format(format, args...), "module", "badger")
}

func (l slogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(l.format(format, args...), "module", "badger")
}
