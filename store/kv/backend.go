// Package kv implements store.Store on top of an ordered key-value engine.
//
// Rows are encoded with CBOR and addressed by composite keys: a one-byte
// table tag followed by each key component prefixed with its uvarint length.
// The engine only needs point reads, ordered prefix scans and an atomic
// batch write; adapters for bbolt, badger and goleveldb live in the
// subpackages.
package kv

import "errors"

// ErrNotFound is returned by Backend.Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

// Op is one write in a batch. A Delete op ignores Value.
type Op struct {
	Key    []byte
	Value  []byte
	Delete bool
}

// Backend is an ordered key-value engine.
type Backend interface {
	// Get returns a copy of the value stored at key, or ErrNotFound.
	Get(key []byte) ([]byte, error)

	// Scan calls fn for every key starting with prefix, in key order. The
	// slices passed to fn are only valid during the call.
	Scan(prefix []byte, fn func(key, value []byte) error) error

	// Apply writes every op or none of them.
	Apply(ops []Op) error

	Close() error
}
