// Package observability provides a metrics extension for the token ledger
// that records action counts and amounts through a MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/plugin"
	"github.com/xraph/tokenledger/receipt"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin             = (*MetricsExtension)(nil)
	_ plugin.OnInit             = (*MetricsExtension)(nil)
	_ plugin.OnCurrencyCreated  = (*MetricsExtension)(nil)
	_ plugin.OnIssued           = (*MetricsExtension)(nil)
	_ plugin.OnRetired          = (*MetricsExtension)(nil)
	_ plugin.OnTransferred      = (*MetricsExtension)(nil)
	_ plugin.OnBalanceOpened    = (*MetricsExtension)(nil)
	_ plugin.OnBalanceClosed    = (*MetricsExtension)(nil)
	_ plugin.OnApproved         = (*MetricsExtension)(nil)
	_ plugin.OnTransferredFrom  = (*MetricsExtension)(nil)
	_ plugin.OnReceiptCommitted = (*MetricsExtension)(nil)
	_ plugin.OnOperationFailed  = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide ledger metrics.
// Register it as a ledger plugin to track token activity.
type MetricsExtension struct {
	factory MetricFactory

	// Supply metrics
	CurrencyCreated Counter
	Issued          Counter
	Retired         Counter

	// Balance metrics
	Transfers       Counter
	InlineTransfers Counter
	BalancesOpened  Counter
	BalancesClosed  Counter

	// Allowance metrics
	Approvals     Counter
	Revocations   Counter
	TransfersFrom Counter

	// Receipt metrics
	Receipts        Counter
	ReceiptActions  Histogram
	ReceiptChanges  Histogram
	TransferAmounts Histogram

	// Error metrics
	Rejected     Counter
	Unauthorized Counter
	StoreErrors  Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		CurrencyCreated: factory.Counter("tokenledger.currency.created"),
		Issued:          factory.Counter("tokenledger.issue"),
		Retired:         factory.Counter("tokenledger.retire"),

		Transfers:       factory.Counter("tokenledger.transfer"),
		InlineTransfers: factory.Counter("tokenledger.transfer.inline"),
		BalancesOpened:  factory.Counter("tokenledger.balance.opened"),
		BalancesClosed:  factory.Counter("tokenledger.balance.closed"),

		Approvals:     factory.Counter("tokenledger.allowance.approved"),
		Revocations:   factory.Counter("tokenledger.allowance.revoked"),
		TransfersFrom: factory.Counter("tokenledger.transferfrom"),

		Receipts:        factory.Counter("tokenledger.receipts"),
		ReceiptActions:  factory.Histogram("tokenledger.receipt.actions"),
		ReceiptChanges:  factory.Histogram("tokenledger.receipt.changes"),
		TransferAmounts: factory.Histogram("tokenledger.transfer.amount"),

		Rejected:     factory.Counter("tokenledger.rejected"),
		Unauthorized: factory.Counter("tokenledger.rejected.unauthorized"),
		StoreErrors:  factory.Counter("tokenledger.store.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	return nil
}

// ──────────────────────────────────────────────────
// Supply hooks
// ──────────────────────────────────────────────────

// OnCurrencyCreated implements plugin.OnCurrencyCreated.
func (m *MetricsExtension) OnCurrencyCreated(_ context.Context, _ *receipt.Action) error {
	m.CurrencyCreated.Inc()
	return nil
}

// OnIssued implements plugin.OnIssued.
func (m *MetricsExtension) OnIssued(_ context.Context, _ *receipt.Action) error {
	m.Issued.Inc()
	return nil
}

// OnRetired implements plugin.OnRetired.
func (m *MetricsExtension) OnRetired(_ context.Context, _ *receipt.Action) error {
	m.Retired.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Balance hooks
// ──────────────────────────────────────────────────

// OnTransferred implements plugin.OnTransferred.
func (m *MetricsExtension) OnTransferred(_ context.Context, a *receipt.Action) error {
	m.Transfers.Inc()
	if a.Inline {
		m.InlineTransfers.Inc()
	}
	m.TransferAmounts.Observe(a.Quantity.Decimal().InexactFloat64())
	return nil
}

// OnBalanceOpened implements plugin.OnBalanceOpened.
func (m *MetricsExtension) OnBalanceOpened(_ context.Context, _ *receipt.Action) error {
	m.BalancesOpened.Inc()
	return nil
}

// OnBalanceClosed implements plugin.OnBalanceClosed.
func (m *MetricsExtension) OnBalanceClosed(_ context.Context, _ *receipt.Action) error {
	m.BalancesClosed.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Allowance hooks
// ──────────────────────────────────────────────────

// OnApproved implements plugin.OnApproved.
func (m *MetricsExtension) OnApproved(_ context.Context, a *receipt.Action) error {
	if a.Quantity.IsZero() {
		m.Revocations.Inc()
		return nil
	}
	m.Approvals.Inc()
	return nil
}

// OnTransferredFrom implements plugin.OnTransferredFrom.
func (m *MetricsExtension) OnTransferredFrom(_ context.Context, a *receipt.Action) error {
	m.TransfersFrom.Inc()
	m.TransferAmounts.Observe(a.Quantity.Decimal().InexactFloat64())
	return nil
}

// ──────────────────────────────────────────────────
// Receipt hooks
// ──────────────────────────────────────────────────

// OnReceiptCommitted implements plugin.OnReceiptCommitted.
func (m *MetricsExtension) OnReceiptCommitted(_ context.Context, r *receipt.Receipt) error {
	m.Receipts.Inc()
	m.ReceiptActions.Observe(float64(len(r.Actions)))
	m.ReceiptChanges.Observe(float64(r.Changes))
	return nil
}

// OnOperationFailed implements plugin.OnOperationFailed.
func (m *MetricsExtension) OnOperationFailed(_ context.Context, _ receipt.ActionName, err error) error {
	m.Rejected.Inc()
	switch {
	case tokenledger.IsUnauthorized(err):
		m.Unauthorized.Inc()
	case tokenledger.KindOf(err) == tokenledger.KindStore:
		m.StoreErrors.Inc()
	}
	return nil
}
