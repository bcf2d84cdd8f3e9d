package domain

import (
	"errors"
	"fmt"
)

// Rejection kinds. A rejection is caused by the caller and never leads to a
// commit. Match them with errors.Is; the human-readable text is carried by
// the wrapping *RejectionError.
var (
	// ErrInvalidProduct indicates a product field failed validation.
	ErrInvalidProduct = errors.New("invalid product")

	// ErrProductNotFound indicates no product exists for the requested id.
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderTooLarge indicates the ordered quantity exceeds the configured maximum.
	ErrOrderTooLarge = errors.New("order too large")

	// ErrOutOfStock indicates stock stayed insufficient after restocking.
	ErrOutOfStock = errors.New("out of stock")
)

// Internal fault kinds. The collaborator's own error is wrapped alongside.
var (
	ErrSupplierFailed   = errors.New("supplier failed")
	ErrCommitFailed     = errors.New("commit failed")
	ErrRepositoryFailed = errors.New("repository failed")
)

// RejectionError is a caller-attributable failure with a stable message.
type RejectionError struct {
	Kind    error
	Message string
}

func (e *RejectionError) Error() string { return e.Message }

// Unwrap exposes Kind so errors.Is(err, ErrOutOfStock) works.
func (e *RejectionError) Unwrap() error { return e.Kind }

// Reject builds a RejectionError of the given kind.
func Reject(kind error, format string, args ...any) error {
	return &RejectionError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Fault wraps a collaborator error under an internal fault kind.
func Fault(kind, err error) error {
	return fmt.Errorf("%w: %w", kind, err)
}

// IsFault reports whether err was wrapped under an internal fault kind.
func IsFault(err error) bool {
	return errors.Is(err, ErrSupplierFailed) ||
		errors.Is(err, ErrCommitFailed) ||
		errors.Is(err, ErrRepositoryFailed)
}

// IsRejection reports whether err is a rejection. A fault that happens to
// wrap a rejection (a corrupt stored row, say) stays a fault. Anything else
// reaching the service boundary is treated as an internal fault.
func IsRejection(err error) bool {
	if IsFault(err) {
		return false
	}
	var re *RejectionError
	return errors.As(err, &re)
}

// NotFound returns the rejection for a missing product id.
func NotFound(id int) error {
	return Reject(ErrProductNotFound, "product with id %d was not found", id)
}
