package branch

import (
	"github.com/gymflow/gymflow/internal/types"
)

// Branch is the studio branch profile used on printed invoices and for
// per-branch invoice numbering.
type Branch struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Code     string `db:"code" json:"code"`
	GSTState string `db:"gst_state" json:"gst_state,omitempty"`
	Address  string `db:"address" json:"address,omitempty"`

	types.BaseModel
}
