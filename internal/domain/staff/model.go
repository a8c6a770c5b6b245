package staff

import (
	"github.com/gymflow/gymflow/internal/types"
)

// Staff is the slice of the staff directory needed for sales-rep attribution
// on invoices.
type Staff struct {
	ID       string `db:"id" json:"id"`
	BranchID string `db:"branch_id" json:"branch_id"`
	Name     string `db:"name" json:"name"`
	Role     string `db:"role" json:"role,omitempty"`

	types.BaseModel
}
