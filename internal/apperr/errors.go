package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the registry, store and orchestrator layers.
// Handlers map these onto HTTP status codes; everything else is a 500.
var (
	ErrDuplicateEmail      = errors.New("merchant with this email already exists")
	ErrMerchantNotFound    = errors.New("merchant not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrMerchantInactive    = errors.New("merchant account is inactive")
	ErrGatewayTimeout      = errors.New("gateway timed out")

	// ErrInvariantViolation marks a programming error, e.g. a second status
	// transition attempted for the same transaction. It is logged, never
	// surfaced as a business outcome, and leaves the store untouched.
	ErrInvariantViolation = errors.New("invariant violation")
)

// ValidationError reports malformed or semantically invalid input. It is
// surfaced verbatim to the caller and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for the given field.
func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
