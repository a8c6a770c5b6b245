package invoice

import (
	"context"
	"time"
)

// BranchSequence represents a branch's invoice number sequence for a specific month
type BranchSequence struct {
	ID        string    `db:"id"`
	BranchID  string    `db:"branch_id"`
	YearMonth string    `db:"year_month"`
	LastValue int64     `db:"last_value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SequenceProvider hands out unique, monotonically increasing invoice numbers
// scoped to a branch. Implementations must make the get-next-and-increment
// step atomic: two concurrent first submissions in the same branch can never
// receive the same value.
type SequenceProvider interface {
	NextInvoiceNumber(ctx context.Context, branchID string) (string, error)
}
