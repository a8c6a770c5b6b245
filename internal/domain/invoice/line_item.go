package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
)

var oneHundred = decimal.NewFromInt(100)

// LineItem represents a single billable entry (service, package or deal)
// within an invoice. The raw fields come from the billing form; the derived
// fields are filled by Compute and are never accepted as input.
type LineItem struct {
	ID          string  `db:"id" json:"id"`
	InvoiceID   string  `db:"invoice_id" json:"invoice_id"`
	Description string  `db:"description" json:"description"`
	ServiceID   *string `db:"service_id" json:"service_id,omitempty"`

	Quantity      int64              `db:"quantity" json:"quantity"`
	UnitPrice     decimal.Decimal    `db:"unit_price" json:"unit_price"`
	DiscountType  types.DiscountType `db:"discount_type" json:"discount_type"`
	DiscountValue decimal.Decimal    `db:"discount_value" json:"discount_value"`
	TaxRate       decimal.Decimal    `db:"tax_rate" json:"tax_rate"`

	// Service validity window, shown on the printed invoice only
	StartDate  *time.Time `db:"start_date" json:"start_date,omitempty"`
	ExpiryDate *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`

	// Derived fields, computed from the raw fields above
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	TaxAmount      decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	Total          decimal.Decimal `db:"total" json:"total"`

	types.BaseModel
}

// Compute derives the amount, discount, tax and total for the line item.
// It is a pure function of the raw fields: calling it any number of times
// yields the same derived values.
//
// Negative quantity, unit price, discount value and tax rate are clamped to
// zero rather than rejected; the API boundary rejects them before they get
// here, the clamp keeps already-persisted bad data from producing negative
// money. An unrecognized discount type is treated as a percentage for the
// same reason. No rounding happens here; amounts stay exact until
// presentation.
func (li *LineItem) Compute() {
	quantity := li.Quantity
	if quantity < 0 {
		quantity = 0
	}
	unitPrice := clampNonNegative(li.UnitPrice)
	discountValue := clampNonNegative(li.DiscountValue)
	taxRate := clampNonNegative(li.TaxRate)

	amount := unitPrice.Mul(decimal.NewFromInt(quantity))

	var discountAmount decimal.Decimal
	switch li.DiscountType {
	case types.DiscountTypeFlat:
		discountAmount = discountValue
	default:
		discountAmount = amount.Mul(discountValue).Div(oneHundred)
	}
	// a discount can never push the line below zero
	if discountAmount.GreaterThan(amount) {
		discountAmount = amount
	}

	net := amount.Sub(discountAmount)
	taxAmount := net.Mul(taxRate).Div(oneHundred)

	li.Amount = amount
	li.DiscountAmount = discountAmount
	li.TaxAmount = taxAmount
	li.Total = net.Add(taxAmount)
}

// Net returns the pre-tax value of the line item after discount. The sales
// report accumulates this figure.
func (li *LineItem) Net() decimal.Decimal {
	return li.Amount.Sub(li.DiscountAmount)
}

// Validate validates the invoice line item
func (li *LineItem) Validate() error {
	if li.Description == "" {
		return ierr.NewError("invoice line item validation failed").
			WithHint("description is required").
			Mark(ierr.ErrValidation)
	}

	if li.UnitPrice.IsNegative() {
		return ierr.NewError("invoice line item validation failed").
			WithHint("unit_price must be non negative").
			Mark(ierr.ErrValidation)
	}

	if li.Quantity < 1 {
		return ierr.NewError("invoice line item validation failed").
			WithHint("quantity must be at least 1").
			Mark(ierr.ErrValidation)
	}

	if li.DiscountValue.IsNegative() {
		return ierr.NewError("invoice line item validation failed").
			WithHint("discount value must be non negative").
			Mark(ierr.ErrValidation)
	}

	if li.TaxRate.IsNegative() {
		return ierr.NewError("invoice line item validation failed").
			WithHint("tax rate must be non negative").
			Mark(ierr.ErrValidation)
	}

	if li.DiscountType != "" {
		if err := li.DiscountType.Validate(); err != nil {
			return err
		}
	}

	if li.StartDate != nil && li.ExpiryDate != nil {
		if li.ExpiryDate.Before(*li.StartDate) {
			return ierr.NewError("invoice line item validation failed").
				WithHint("expiry_date must be after start_date").
				Mark(ierr.ErrValidation)
		}
	}

	return nil
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
