package bolt_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/store/kv"
	"github.com/xraph/tokenledger/store/kv/bolt"
	"github.com/xraph/tokenledger/store/storetest"
)

func open(path string) storetest.Opener {
	return func() (store.Store, error) {
		db, err := bolt.Open(path)
		if err != nil {
			return nil, err
		}
		return kv.New(db)
	}
}

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t testing.TB) storetest.Opener {
		return open(filepath.Join(t.TempDir(), "ledger.db"))
	})
}

func TestBackend(t *testing.T) {
	db, err := bolt.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Get([]byte("missing"))
	require.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, db.Apply([]kv.Op{
		{Key: []byte("a1"), Value: []byte("x")},
		{Key: []byte("a2"), Value: []byte("y")},
		{Key: []byte("b1"), Value: []byte("z")},
	}))
	require.NoError(t, db.Apply([]kv.Op{{Key: []byte("a2"), Delete: true}}))

	var keys []string
	require.NoError(t, db.Scan([]byte("a"), func(k, _ []byte) error {
		keys = append(keys, string(k))
		return nil
	}))
	require.Equal(t, []string{"a1"}, keys)
}
