package member

import (
	"time"

	"github.com/gymflow/gymflow/internal/types"
)

// Member is the slice of the member directory the billing subsystem needs:
// enough to attribute an invoice and render a name and phone on it.
type Member struct {
	ID       string     `db:"id" json:"id"`
	BranchID string     `db:"branch_id" json:"branch_id"`
	Name     string     `db:"name" json:"name"`
	Phone    string     `db:"phone" json:"phone"`
	Email    string     `db:"email" json:"email,omitempty"`
	JoinedAt *time.Time `db:"joined_at" json:"joined_at,omitempty"`

	types.BaseModel
}
