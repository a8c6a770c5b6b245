package invoice

import (
	"github.com/shopspring/decimal"

	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
)

// Totals is the aggregate of an invoice's line items reconciled against its
// payment entries.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxTotal  decimal.Decimal `json:"tax_total"`
	Total     decimal.Decimal `json:"total"`
	PaidTotal decimal.Decimal `json:"paid_total"`
	Pending   decimal.Decimal `json:"pending"`

	// Recommendation is the status the payment state implies: paid, partial
	// or draft. Cancellation and overdue are lifecycle concerns and are never
	// recommended here.
	Recommendation types.InvoiceStatus `json:"recommendation"`
}

// ComputeTotals derives invoice-level totals from the item list and the
// payment-mode list. Each item's derived fields are recomputed from its raw
// fields first, so the result is a pure function of the inputs: calling it
// again on the same data always yields identical totals.
//
// Payment entries may exceed the total; pending floors at zero and the excess
// is not tracked here.
func ComputeTotals(items []*LineItem, paymentModes []*PaymentMode) (*Totals, error) {
	if len(items) == 0 {
		return nil, ierr.WithError(ErrEmptyItems).
			WithHint("at least one line item with description and price is required").
			Mark(ierr.ErrValidation)
	}

	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	for _, item := range items {
		item.Compute()
		subtotal = subtotal.Add(item.Net())
		taxTotal = taxTotal.Add(item.TaxAmount)
	}
	total := subtotal.Add(taxTotal)

	paidTotal := decimal.Zero
	for _, pm := range paymentModes {
		if pm.Active() {
			paidTotal = paidTotal.Add(pm.Amount)
		}
	}

	pending := total.Sub(paidTotal)
	if pending.IsNegative() {
		pending = decimal.Zero
	}

	recommendation := types.InvoiceStatusDraft
	if total.IsPositive() && paidTotal.GreaterThanOrEqual(total) {
		recommendation = types.InvoiceStatusPaid
	} else if paidTotal.IsPositive() {
		recommendation = types.InvoiceStatusPartial
	}

	return &Totals{
		Subtotal:       subtotal,
		TaxTotal:       taxTotal,
		Total:          total,
		PaidTotal:      paidTotal,
		Pending:        pending,
		Recommendation: recommendation,
	}, nil
}
