package tokenledger

import (
	"errors"
	"fmt"

	"github.com/xraph/tokenledger/types"
)

// Kind classifies ledger errors.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthorization
	KindNotFound
	KindConflict
	KindInvariant
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvariant:
		return "invariant"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is a classified ledger error. All sentinels below are *Error values,
// so callers can match them with errors.Is or classify with KindOf.
type Error struct {
	Kind Kind
	msg  string
}

func newError(kind Kind, msg string) *Error { return &Error{Kind: kind, msg: msg} }

func (e *Error) Error() string { return "tokenledger: " + e.msg }

// Sentinel errors.
var (
	// Validation errors
	ErrInvalidSymbol        = newError(KindValidation, "invalid symbol name")
	ErrInvalidSupply        = newError(KindValidation, "invalid supply")
	ErrNonPositiveMaxSupply = newError(KindValidation, "max-supply must be positive")
	ErrInvalidQuantity      = newError(KindValidation, "invalid quantity")
	ErrNonPositiveQuantity  = newError(KindValidation, "quantity must be positive")
	ErrNegativeQuantity     = newError(KindValidation, "must approve quantity of zero or more")
	ErrSymbolMismatch       = newError(KindValidation, "symbol precision mismatch")
	ErrMemoTooLong          = newError(KindValidation, "memo has more than 256 bytes")
	ErrSelfTransfer         = newError(KindValidation, "cannot transfer to self")
	ErrSelfAllowance        = newError(KindValidation, "cannot allow self")
	ErrInvalidAccount       = newError(KindValidation, "invalid account name")

	// Authorization errors
	ErrMissingAuthority = newError(KindAuthorization, "missing required authority")

	// Not found errors
	ErrSymbolNotFound    = newError(KindNotFound, "symbol does not exist")
	ErrBalanceNotFound   = newError(KindNotFound, "no balance object found")
	ErrAllowanceNotFound = newError(KindNotFound, "allowance not found")
	ErrSpenderNotAllowed = newError(KindNotFound, "spender not allowed")
	ErrAccountNotFound   = newError(KindNotFound, "account does not exist")

	// Conflict errors
	ErrSymbolExists = newError(KindConflict, "token with symbol already exists")

	// Invariant errors
	ErrOverdrawnBalance      = newError(KindInvariant, "overdrawn balance")
	ErrInsufficientAllowance = newError(KindInvariant, "allowed quantity < transfer quantity")
	ErrSupplyExceeded        = newError(KindInvariant, "quantity exceeds available supply")
	ErrNonZeroBalance        = newError(KindInvariant, "cannot close because the balance is not zero")
	ErrInvalidAllowance      = newError(KindInvariant, "invalid allowed quantity")
	ErrAmountOverflow        = newError(KindInvariant, "amount out of range")

	// Store errors
	ErrReadFailed      = newError(KindStore, "read failed")
	ErrCommitFailed    = newError(KindStore, "commit failed")
	ErrStoreClosed     = newError(KindStore, "store is closed")
	ErrMigrationFailed = newError(KindStore, "migration failed")
)

// AuthorizationError names the account whose authority was required but
// not held by the caller. It matches ErrMissingAuthority.
type AuthorizationError struct {
	Account types.Name
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("tokenledger: missing authority of %s", e.Account)
}

// Unwrap lets errors.Is(err, ErrMissingAuthority) succeed.
func (e *AuthorizationError) Unwrap() error { return ErrMissingAuthority }

// KindOf returns the classification of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsValidation returns true for malformed input.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsUnauthorized returns true when a required authority was missing.
func IsUnauthorized(err error) bool { return KindOf(err) == KindAuthorization }

// IsNotFound returns true for missing symbols, rows or accounts.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict returns true for duplicate registrations.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsInvariant returns true when an operation would break a ledger invariant.
func IsInvariant(err error) bool { return KindOf(err) == KindInvariant }

// IsRetryable returns true if the failure came from the store and the
// operation can be resubmitted unchanged.
func IsRetryable(err error) bool {
	return KindOf(err) == KindStore && !errors.Is(err, ErrStoreClosed)
}

// arithmeticError maps errors from types.Asset arithmetic onto ledger sentinels.
func arithmeticError(err error) error {
	switch {
	case errors.Is(err, types.ErrSymbolMismatch):
		return fmt.Errorf("%w: %w", ErrSymbolMismatch, err)
	case errors.Is(err, types.ErrOverflow):
		return fmt.Errorf("%w: %w", ErrAmountOverflow, err)
	default:
		return err
	}
}
