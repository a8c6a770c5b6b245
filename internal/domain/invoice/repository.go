package invoice

import (
	"context"

	"github.com/gymflow/gymflow/internal/types"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create creates a new invoice together with its line items and payment modes
	Create(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID including line items and payment modes
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update updates an existing invoice. Implementations enforce optimistic
	// concurrency on the invoice's Version and return a version conflict
	// error when the snapshot is stale.
	Update(ctx context.Context, invoice *Invoice) error

	// List retrieves invoices based on filter criteria
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)

	// Count returns the total count of invoices based on filter criteria
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)
}
