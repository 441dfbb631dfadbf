package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/store/memory"
)

var _ store.Store = (*closableStore)(nil)

func TestCleanupClosesOnce(t *testing.T) {
	mem := memory.New()
	c := openStore(t, func() (store.Store, error) { return mem, nil })

	c.cleanup()
	c.cleanup()

	require.ErrorIs(t, mem.Ping(context.Background()), tokenledger.ErrStoreClosed)
}
