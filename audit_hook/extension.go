// Package audithook bridges token ledger actions to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import an
// audit backend directly. Callers inject a RecorderFunc adapter at wiring
// time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/plugin"
	"github.com/xraph/tokenledger/receipt"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin            = (*Extension)(nil)
	_ plugin.OnCurrencyCreated = (*Extension)(nil)
	_ plugin.OnIssued          = (*Extension)(nil)
	_ plugin.OnRetired         = (*Extension)(nil)
	_ plugin.OnTransferred     = (*Extension)(nil)
	_ plugin.OnBalanceOpened   = (*Extension)(nil)
	_ plugin.OnBalanceClosed   = (*Extension)(nil)
	_ plugin.OnApproved        = (*Extension)(nil)
	_ plugin.OnTransferredFrom = (*Extension)(nil)
	_ plugin.OnOperationFailed = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges token ledger actions to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Supply hooks
// ──────────────────────────────────────────────────

// OnCurrencyCreated implements plugin.OnCurrencyCreated.
func (e *Extension) OnCurrencyCreated(ctx context.Context, a *receipt.Action) error {
	return e.record(ctx, ActionCurrencyCreated, SeverityInfo, OutcomeSuccess,
		ResourceCurrency, string(a.Quantity.Symbol.Code), CategorySupply, nil,
		actionPairs(a, "issuer", a.Issuer, "max_supply", a.Quantity.String())...,
	)
}

// OnIssued implements plugin.OnIssued.
func (e *Extension) OnIssued(ctx context.Context, a *receipt.Action) error {
	return e.record(ctx, ActionTokensIssued, SeverityInfo, OutcomeSuccess,
		ResourceCurrency, string(a.Quantity.Symbol.Code), CategorySupply, nil,
		actionPairs(a, "issuer", a.Issuer, "to", a.To, "quantity", a.Quantity.String())...,
	)
}

// OnRetired implements plugin.OnRetired.
func (e *Extension) OnRetired(ctx context.Context, a *receipt.Action) error {
	return e.record(ctx, ActionTokensRetired, SeverityInfo, OutcomeSuccess,
		ResourceCurrency, string(a.Quantity.Symbol.Code), CategorySupply, nil,
		actionPairs(a, "issuer", a.Issuer, "quantity", a.Quantity.String())...,
	)
}

// ──────────────────────────────────────────────────
// Balance hooks
// ──────────────────────────────────────────────────

// OnTransferred implements plugin.OnTransferred.
func (e *Extension) OnTransferred(ctx context.Context, a *receipt.Action) error {
	return e.record(ctx, ActionTokensTransferred, SeverityInfo, OutcomeSuccess,
		ResourceBalance, string(a.From), CategoryTransfer, nil,
		actionPairs(a, "from", a.From, "to", a.To, "quantity", a.Quantity.String(), "payer", a.Payer)...,
	)
}

// OnBalanceOpened implements plugin.OnBalanceOpened.
func (e *Extension) OnBalanceOpened(ctx context.Context, a *receipt.Action) error {
	return e.record(ctx, ActionBalanceOpened, SeverityInfo, OutcomeSuccess,
		ResourceBalance, string(a.Owner), CategoryStorage, nil,
		actionPairs(a, "owner", a.Owner, "symbol", a.Quantity.Symbol.String(), "payer", a.Payer)...,
	)
}

// OnBalanceClosed implements plugin.OnBalanceClosed.
func (e *Extension) OnBalanceClosed(ctx context.Context, a *receipt.Action) error {
	return e.record(ctx, ActionBalanceClosed, SeverityInfo, OutcomeSuccess,
		ResourceBalance, string(a.Owner), CategoryStorage, nil,
		actionPairs(a, "owner", a.Owner, "symbol", a.Quantity.Symbol.String())...,
	)
}

// ──────────────────────────────────────────────────
// Allowance hooks
// ──────────────────────────────────────────────────

// OnApproved implements plugin.OnApproved.
func (e *Extension) OnApproved(ctx context.Context, a *receipt.Action) error {
	return e.record(ctx, ActionAllowanceApproved, SeverityInfo, OutcomeSuccess,
		ResourceAllowance, string(a.Owner), CategoryDelegation, nil,
		actionPairs(a, "owner", a.Owner, "spender", a.Spender, "quantity", a.Quantity.String())...,
	)
}

// OnTransferredFrom implements plugin.OnTransferredFrom.
func (e *Extension) OnTransferredFrom(ctx context.Context, a *receipt.Action) error {
	return e.record(ctx, ActionAllowanceSpent, SeverityInfo, OutcomeSuccess,
		ResourceAllowance, string(a.From), CategoryDelegation, nil,
		actionPairs(a, "spender", a.Spender, "from", a.From, "to", a.To, "quantity", a.Quantity.String())...,
	)
}

// ──────────────────────────────────────────────────
// Failure hooks
// ──────────────────────────────────────────────────

// OnOperationFailed implements plugin.OnOperationFailed. Authorization
// failures are raised to warning severity; store failures to critical.
func (e *Extension) OnOperationFailed(ctx context.Context, action receipt.ActionName, err error) error {
	severity := SeverityInfo
	switch {
	case tokenledger.IsUnauthorized(err):
		severity = SeverityWarning
	case tokenledger.KindOf(err) == tokenledger.KindStore:
		severity = SeverityCritical
	}

	return e.record(ctx, ActionOperationRejected, severity, OutcomeFailure,
		string(action), "", tokenledger.KindOf(err).String(), err,
		"operation", string(action),
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// actionPairs prefixes kv with the fields every action carries.
func actionPairs(a *receipt.Action, kv ...any) []any {
	pairs := append([]any{
		"action_id", a.ID.String(),
		"authorizer", a.Authorizer,
		"inline", a.Inline,
	}, kv...)
	if a.Memo != "" {
		pairs = append(pairs, "memo", a.Memo)
	}
	return pairs
}

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
