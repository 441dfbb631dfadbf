// Package plugin provides an extensible plugin system for the token ledger.
// Plugins hook into lifecycle and action events. Every action hook runs after
// the action's changes are committed, so a plugin can never fail or roll back
// a ledger operation.
package plugin

import (
	"context"

	"github.com/xraph/tokenledger/receipt"
	"github.com/xraph/tokenledger/types"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the ledger starts.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the ledger stops.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Currency registry hooks
// ──────────────────────────────────────────────────

// OnCurrencyCreated is called after a new symbol is registered.
type OnCurrencyCreated interface {
	Plugin
	OnCurrencyCreated(ctx context.Context, a *receipt.Action) error
}

// OnIssued is called after new supply is issued to the issuer.
type OnIssued interface {
	Plugin
	OnIssued(ctx context.Context, a *receipt.Action) error
}

// OnRetired is called after supply is retired from the issuer.
type OnRetired interface {
	Plugin
	OnRetired(ctx context.Context, a *receipt.Action) error
}

// ──────────────────────────────────────────────────
// Balance ledger hooks
// ──────────────────────────────────────────────────

// OnTransferred is called after a transfer, including the inline transfer
// that forwards newly issued tokens.
type OnTransferred interface {
	Plugin
	OnTransferred(ctx context.Context, a *receipt.Action) error
}

// OnBalanceOpened is called after an open action.
type OnBalanceOpened interface {
	Plugin
	OnBalanceOpened(ctx context.Context, a *receipt.Action) error
}

// OnBalanceClosed is called after a zero balance row is removed.
type OnBalanceClosed interface {
	Plugin
	OnBalanceClosed(ctx context.Context, a *receipt.Action) error
}

// ──────────────────────────────────────────────────
// Allowance ledger hooks
// ──────────────────────────────────────────────────

// OnApproved is called after an allowance is set.
type OnApproved interface {
	Plugin
	OnApproved(ctx context.Context, a *receipt.Action) error
}

// OnTransferredFrom is called after a spender moves tokens on an owner's behalf.
type OnTransferredFrom interface {
	Plugin
	OnTransferredFrom(ctx context.Context, a *receipt.Action) error
}

// ──────────────────────────────────────────────────
// Notification and outcome hooks
// ──────────────────────────────────────────────────

// OnRecipientNotified delivers an action to each account it affected.
type OnRecipientNotified interface {
	Plugin
	OnRecipientNotified(ctx context.Context, recipient types.Name, a *receipt.Action) error
}

// OnReceiptCommitted is called once per committed invocation, after all
// action hooks and notifications.
type OnReceiptCommitted interface {
	Plugin
	OnReceiptCommitted(ctx context.Context, r *receipt.Receipt) error
}

// OnOperationFailed is called when an operation is rejected or its commit
// fails. Nothing was written.
type OnOperationFailed interface {
	Plugin
	OnOperationFailed(ctx context.Context, action receipt.ActionName, err error) error
}
