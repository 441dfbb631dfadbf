package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/tokenledger/receipt"
	"github.com/xraph/tokenledger/types"
)

// DefaultTimeout bounds a single plugin hook call.
const DefaultTimeout = 5 * time.Second

// Registry manages all registered plugins and provides efficient dispatch.
// Hook implementations are discovered once at registration time.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger
	timeout time.Duration

	// Type-cached plugin lists for efficient dispatch
	onInit              []OnInit
	onShutdown          []OnShutdown
	onCurrencyCreated   []OnCurrencyCreated
	onIssued            []OnIssued
	onRetired           []OnRetired
	onTransferred       []OnTransferred
	onBalanceOpened     []OnBalanceOpened
	onBalanceClosed     []OnBalanceClosed
	onApproved          []OnApproved
	onTransferredFrom   []OnTransferredFrom
	onRecipientNotified []OnRecipientNotified
	onReceiptCommitted  []OnReceiptCommitted
	onOperationFailed   []OnOperationFailed
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:  slog.Default(),
		timeout: DefaultTimeout,
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// WithTimeout sets how long a single hook call may run. Non-positive values
// restore DefaultTimeout.
func (r *Registry) WithTimeout(d time.Duration) *Registry {
	if d <= 0 {
		d = DefaultTimeout
	}
	r.timeout = d
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	var hooks []string
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
		hooks = append(hooks, "OnInit")
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
		hooks = append(hooks, "OnShutdown")
	}
	if v, ok := p.(OnCurrencyCreated); ok {
		r.onCurrencyCreated = append(r.onCurrencyCreated, v)
		hooks = append(hooks, "OnCurrencyCreated")
	}
	if v, ok := p.(OnIssued); ok {
		r.onIssued = append(r.onIssued, v)
		hooks = append(hooks, "OnIssued")
	}
	if v, ok := p.(OnRetired); ok {
		r.onRetired = append(r.onRetired, v)
		hooks = append(hooks, "OnRetired")
	}
	if v, ok := p.(OnTransferred); ok {
		r.onTransferred = append(r.onTransferred, v)
		hooks = append(hooks, "OnTransferred")
	}
	if v, ok := p.(OnBalanceOpened); ok {
		r.onBalanceOpened = append(r.onBalanceOpened, v)
		hooks = append(hooks, "OnBalanceOpened")
	}
	if v, ok := p.(OnBalanceClosed); ok {
		r.onBalanceClosed = append(r.onBalanceClosed, v)
		hooks = append(hooks, "OnBalanceClosed")
	}
	if v, ok := p.(OnApproved); ok {
		r.onApproved = append(r.onApproved, v)
		hooks = append(hooks, "OnApproved")
	}
	if v, ok := p.(OnTransferredFrom); ok {
		r.onTransferredFrom = append(r.onTransferredFrom, v)
		hooks = append(hooks, "OnTransferredFrom")
	}
	if v, ok := p.(OnRecipientNotified); ok {
		r.onRecipientNotified = append(r.onRecipientNotified, v)
		hooks = append(hooks, "OnRecipientNotified")
	}
	if v, ok := p.(OnReceiptCommitted); ok {
		r.onReceiptCommitted = append(r.onReceiptCommitted, v)
		hooks = append(hooks, "OnReceiptCommitted")
	}
	if v, ok := p.(OnOperationFailed); ok {
		r.onOperationFailed = append(r.onOperationFailed, v)
		hooks = append(hooks, "OnOperationFailed")
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", hooks,
	)

	return nil
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, l interface{}) {
	emit(ctx, r, "OnInit", snapshot(r, &r.onInit), func(p OnInit) error {
		return p.OnInit(ctx, l)
	})
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	emit(ctx, r, "OnShutdown", snapshot(r, &r.onShutdown), func(p OnShutdown) error {
		return p.OnShutdown(ctx)
	})
}

// EmitAction dispatches a committed action to the hook matching its name.
func (r *Registry) EmitAction(ctx context.Context, a *receipt.Action) {
	switch a.Name {
	case receipt.ActionCreate:
		emit(ctx, r, "OnCurrencyCreated", snapshot(r, &r.onCurrencyCreated), func(p OnCurrencyCreated) error {
			return p.OnCurrencyCreated(ctx, a)
		})
	case receipt.ActionIssue:
		emit(ctx, r, "OnIssued", snapshot(r, &r.onIssued), func(p OnIssued) error {
			return p.OnIssued(ctx, a)
		})
	case receipt.ActionRetire:
		emit(ctx, r, "OnRetired", snapshot(r, &r.onRetired), func(p OnRetired) error {
			return p.OnRetired(ctx, a)
		})
	case receipt.ActionTransfer:
		emit(ctx, r, "OnTransferred", snapshot(r, &r.onTransferred), func(p OnTransferred) error {
			return p.OnTransferred(ctx, a)
		})
	case receipt.ActionOpen:
		emit(ctx, r, "OnBalanceOpened", snapshot(r, &r.onBalanceOpened), func(p OnBalanceOpened) error {
			return p.OnBalanceOpened(ctx, a)
		})
	case receipt.ActionClose:
		emit(ctx, r, "OnBalanceClosed", snapshot(r, &r.onBalanceClosed), func(p OnBalanceClosed) error {
			return p.OnBalanceClosed(ctx, a)
		})
	case receipt.ActionApprove:
		emit(ctx, r, "OnApproved", snapshot(r, &r.onApproved), func(p OnApproved) error {
			return p.OnApproved(ctx, a)
		})
	case receipt.ActionTransferFrom:
		emit(ctx, r, "OnTransferredFrom", snapshot(r, &r.onTransferredFrom), func(p OnTransferredFrom) error {
			return p.OnTransferredFrom(ctx, a)
		})
	default:
		r.logger.Warn("plugin: unknown action", "action", a.Name)
	}
}

// EmitRecipientNotified delivers a to one notified account.
func (r *Registry) EmitRecipientNotified(ctx context.Context, recipient types.Name, a *receipt.Action) {
	emit(ctx, r, "OnRecipientNotified", snapshot(r, &r.onRecipientNotified), func(p OnRecipientNotified) error {
		return p.OnRecipientNotified(ctx, recipient, a)
	})
}

// EmitReceiptCommitted emits a committed receipt.
func (r *Registry) EmitReceiptCommitted(ctx context.Context, rc *receipt.Receipt) {
	emit(ctx, r, "OnReceiptCommitted", snapshot(r, &r.onReceiptCommitted), func(p OnReceiptCommitted) error {
		return p.OnReceiptCommitted(ctx, rc)
	})
}

// EmitOperationFailed emits a rejected or failed operation.
func (r *Registry) EmitOperationFailed(ctx context.Context, action receipt.ActionName, err error) {
	emit(ctx, r, "OnOperationFailed", snapshot(r, &r.onOperationFailed), func(p OnOperationFailed) error {
		return p.OnOperationFailed(ctx, action, err)
	})
}

// snapshot reads a cached hook list under the read lock.
func snapshot[T Plugin](r *Registry, list *[]T) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return *list
}

// emit calls fn for every plugin, logging failures instead of returning them.
func emit[T Plugin](ctx context.Context, r *Registry, hook string, plugins []T, fn func(T) error) {
	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return fn(p)
		}); err != nil {
			r.logger.Warn("plugin "+hook+" failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the ledger.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- fmt.Errorf("plugin panic: %s: %v", pluginName, rec)
			}
		}()
		done <- fn()
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
