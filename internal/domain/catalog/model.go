package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/gymflow/gymflow/internal/types"
)

// Service is one entry in the service/plan catalog: a membership plan, a
// personal-training package or a retail product. It supplies the billing
// form's default price and tax rate and classifies line items for the sales
// report.
type Service struct {
	ID           string             `db:"id" json:"id"`
	Name         string             `db:"name" json:"name"`
	Category     types.ItemCategory `db:"category" json:"category"`
	DefaultPrice decimal.Decimal    `db:"default_price" json:"default_price"`
	TaxRate      decimal.Decimal    `db:"tax_rate" json:"tax_rate"`
	DurationDays int                `db:"duration_days" json:"duration_days,omitempty"`

	types.BaseModel
}
