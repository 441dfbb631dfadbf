package tokenledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/tokenledger/auth"
	"github.com/xraph/tokenledger/plugin"
	"github.com/xraph/tokenledger/receipt"
	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/types"
)

// MaxMemoBytes is the longest memo accepted by issue, retire and transfers.
const MaxMemoBytes = 256

// Ledger is the token ledger engine. Operations are serialized: each one
// reads, validates and stages its writes in isolation, then commits them to
// the store in a single atomic step or discards them all.
type Ledger struct {
	self     types.Name
	store    store.Store
	plugins  *plugin.Registry
	logger   *slog.Logger
	auth     Authorizer
	accounts AccountChecker
	clock    func() time.Time

	mu sync.RWMutex
}

// New creates a Ledger owned by the account self. Only self may register new
// symbols.
func New(self types.Name, s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		self:     self,
		store:    s,
		plugins:  plugin.NewRegistry(),
		logger:   slog.Default(),
		auth:     auth.Context{},
		accounts: auth.ValidNames{},
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithPluginTimeout bounds each plugin hook call.
func WithPluginTimeout(d time.Duration) Option {
	return func(l *Ledger) {
		l.plugins.WithTimeout(d)
	}
}

// WithAuthorizer sets the authority oracle. The default reads the
// authorities attached to the context with auth.WithAuthority.
func WithAuthorizer(a Authorizer) Option {
	return func(l *Ledger) {
		l.auth = a
	}
}

// WithAccounts sets the account existence oracle. The default treats every
// well-formed name as an existing account.
func WithAccounts(c AccountChecker) Option {
	return func(l *Ledger) {
		l.accounts = c
	}
}

// WithClock sets the time source used for row timestamps and receipts.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.clock = now
	}
}

// Self returns the account that owns the ledger.
func (l *Ledger) Self() types.Name { return l.self }

// Store returns the underlying store.
func (l *Ledger) Store() store.Store { return l.store }

// Plugins returns the plugin registry.
func (l *Ledger) Plugins() *plugin.Registry { return l.plugins }

// Start migrates the store and initializes plugins.
func (l *Ledger) Start(ctx context.Context) error {
	if err := l.store.Migrate(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrMigrationFailed, err)
	}

	l.plugins.EmitInit(ctx, l)

	l.logger.Info("tokenledger started",
		"self", l.self,
		"plugins", l.plugins.Count(),
	)

	return nil
}

// Stop shuts down plugins and closes the store.
func (l *Ledger) Stop() error {
	ctx := context.Background()
	l.plugins.EmitShutdown(ctx)

	return l.store.Close()
}

// execute runs one operation as an atomic unit and dispatches its receipt.
func (l *Ledger) execute(ctx context.Context, name receipt.ActionName, fn func(tx *txn) error) error {
	rc, err := l.commit(ctx, fn)
	if err != nil {
		l.logger.Debug("tokenledger: operation rejected",
			"action", name,
			"error", err,
		)
		l.plugins.EmitOperationFailed(ctx, name, err)
		return err
	}

	l.logger.Debug("tokenledger: operation committed",
		"action", name,
		"receipt", rc.ID.String(),
		"actions", len(rc.Actions),
		"changes", rc.Changes,
	)

	l.dispatch(ctx, rc)
	return nil
}

func (l *Ledger) commit(ctx context.Context, fn func(tx *txn) error) (*receipt.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := newTxn(l.store, l.clock())
	if err := fn(tx); err != nil {
		return nil, err
	}

	if !tx.changes.IsEmpty() {
		if err := l.store.Commit(ctx, tx.changes); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCommitFailed, err)
		}
	}

	return tx.receipt(), nil
}

// dispatch delivers a committed receipt to plugins: each action's hook, then
// its notifications, then the receipt itself.
func (l *Ledger) dispatch(ctx context.Context, rc *receipt.Receipt) {
	for _, a := range rc.Actions {
		l.plugins.EmitAction(ctx, a)
		for _, to := range a.Recipients {
			l.plugins.EmitRecipientNotified(ctx, to, a)
		}
	}
	l.plugins.EmitReceiptCommitted(ctx, rc)
}
