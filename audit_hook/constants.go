package audithook

// Action constants for audit events.
const (
	// Currency actions
	ActionCurrencyCreated = "currency.created"
	ActionTokensIssued    = "tokens.issued"
	ActionTokensRetired   = "tokens.retired"

	// Balance actions
	ActionTokensTransferred = "tokens.transferred"
	ActionBalanceOpened     = "balance.opened"
	ActionBalanceClosed     = "balance.closed"

	// Allowance actions
	ActionAllowanceApproved = "allowance.approved"
	ActionAllowanceSpent    = "allowance.spent"

	// Failures
	ActionOperationRejected = "operation.rejected"
)

// Resource constants for audit events.
const (
	ResourceCurrency  = "currency"
	ResourceBalance   = "balance"
	ResourceAllowance = "allowance"
)

// Category constants for audit events.
const (
	CategorySupply     = "supply"
	CategoryTransfer   = "transfer"
	CategoryStorage    = "storage"
	CategoryDelegation = "delegation"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
