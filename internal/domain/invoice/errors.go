package invoice

import (
	"errors"
)

var (
	// ErrInvoiceNotFound is returned when an invoice is not found
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrEmptyItems is returned when an invoice is computed or submitted without line items
	ErrEmptyItems = errors.New("at least one line item with description and price is required")

	// ErrInvalidTransition is returned when a lifecycle transition is not allowed
	// from the invoice's current state
	ErrInvalidTransition = errors.New("invalid invoice state transition")

	// ErrInvoiceImmutable is returned when a mutation is attempted on a paid or
	// cancelled invoice
	ErrInvoiceImmutable = errors.New("invoice is read-only")
)

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrInvoiceNotFound)
}
