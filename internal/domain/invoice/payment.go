package invoice

import (
	"github.com/shopspring/decimal"

	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
)

// PaymentMode is one payment entry against an invoice. An invoice holds an
// ordered list of them; a single visit to the front desk can split a bill
// across cash, card and UPI.
type PaymentMode struct {
	ID        string              `db:"id" json:"id"`
	InvoiceID string              `db:"invoice_id" json:"invoice_id"`
	Method    types.PaymentMethod `db:"method" json:"method"`
	Amount    decimal.Decimal     `db:"amount" json:"amount"`
	Position  int                 `db:"position" json:"position"`

	// ReceiptNumber is the short human-facing reference printed on the
	// member's receipt, assigned once when the payment is recorded
	ReceiptNumber string `db:"receipt_number" json:"receipt_number"`

	types.BaseModel
}

// Active reports whether the entry counts towards the paid total. Rows with
// an empty method or a non-positive amount are kept for the audit trail but
// excluded from reconciliation.
func (p *PaymentMode) Active() bool {
	return p.Method != "" && p.Amount.IsPositive()
}

// Validate validates the payment mode entry
func (p *PaymentMode) Validate() error {
	if p.Method != "" {
		if err := p.Method.Validate(); err != nil {
			return err
		}
	}
	if p.Amount.IsNegative() {
		return ierr.NewError("payment mode validation failed").
			WithHint("amount must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
