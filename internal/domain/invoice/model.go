package invoice

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
)

// Invoice represents the invoice domain model
type Invoice struct {
	ID            string            `db:"id" json:"id"`
	InvoiceNumber *string           `db:"invoice_number" json:"invoice_number"`
	BranchID      string            `db:"branch_id" json:"branch_id"`
	MemberID      string            `db:"member_id" json:"member_id"`
	SalesRepID    *string           `db:"sales_rep_id" json:"sales_rep_id,omitempty"`
	Kind          types.InvoiceKind `db:"kind" json:"kind"`

	// IsProForma marks a draft as a preview invoice; it never carries an
	// assigned number until converted
	IsProForma bool `db:"is_pro_forma" json:"is_pro_forma"`

	InvoiceStatus types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`

	Items        []*LineItem    `json:"items,omitempty"`
	PaymentModes []*PaymentMode `json:"payment_modes,omitempty"`

	// Derived totals, recomputed from items and payment modes on every mutation
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxTotal  decimal.Decimal `db:"tax_total" json:"tax_total"`
	Total     decimal.Decimal `db:"total" json:"total"`
	PaidTotal decimal.Decimal `db:"paid_total" json:"paid_total"`
	Pending   decimal.Decimal `db:"pending" json:"pending"`

	// RoundingAdjustment is folded into Total when non-zero. The billing form
	// always writes zero today; the column exists for branches that round
	// cash totals to the nearest rupee.
	RoundingAdjustment decimal.Decimal `db:"rounding_adjustment" json:"rounding_adjustment"`

	DueDate        *time.Time     `db:"due_date" json:"due_date,omitempty"`
	SubmittedAt    *time.Time     `db:"submitted_at" json:"submitted_at,omitempty"`
	PaidAt         *time.Time     `db:"paid_at" json:"paid_at,omitempty"`
	Cancellation   *Cancellation  `json:"cancellation,omitempty"`
	CustomerNote   string         `db:"customer_note" json:"customer_note,omitempty"`
	InternalNote   string         `db:"internal_note" json:"internal_note,omitempty"`
	DiscountReason string         `db:"discount_reason" json:"discount_reason,omitempty"`
	Terms          string         `db:"terms" json:"terms,omitempty"`
	Metadata       types.Metadata `json:"metadata,omitempty"`

	// Version supports optimistic concurrency in the persistence layer
	Version int `db:"version" json:"version"`

	types.BaseModel
}

// Cancellation records who cancelled an invoice, when and why
type Cancellation struct {
	Reason      string    `db:"cancel_reason" json:"reason"`
	CancelledBy string    `db:"cancelled_by" json:"cancelled_by"`
	CancelledAt time.Time `db:"cancelled_at" json:"cancelled_at"`
}

// Recalculate recomputes every derived field from the item and payment lists,
// folding in the rounding adjustment. It returns the underlying totals so
// callers can act on the status recommendation.
func (i *Invoice) Recalculate() (*Totals, error) {
	totals, err := ComputeTotals(i.Items, i.PaymentModes)
	if err != nil {
		return nil, err
	}

	i.Subtotal = totals.Subtotal
	i.TaxTotal = totals.TaxTotal
	i.Total = totals.Total.Add(i.RoundingAdjustment)
	i.PaidTotal = totals.PaidTotal
	i.Pending = i.Total.Sub(i.PaidTotal)
	if i.Pending.IsNegative() {
		i.Pending = decimal.Zero
	}

	return totals, nil
}

// EffectiveStatus derives the status to show for the invoice at the given
// time. Overdue is never stored; a sent or partial invoice past its due date
// with money outstanding reads as overdue.
func (i *Invoice) EffectiveStatus(now time.Time) types.InvoiceStatus {
	overdueEligible := []types.InvoiceStatus{
		types.InvoiceStatusSent,
		types.InvoiceStatusPartial,
	}
	if lo.Contains(overdueEligible, i.InvoiceStatus) &&
		i.DueDate != nil && now.After(*i.DueDate) && i.Pending.IsPositive() {
		return types.InvoiceStatusOverdue
	}
	return i.InvoiceStatus
}

// IsNumbered reports whether a sequential invoice number has been assigned
func (i *Invoice) IsNumbered() bool {
	return i.InvoiceNumber != nil && *i.InvoiceNumber != ""
}

// IsCancelled reports whether the invoice has been cancelled
func (i *Invoice) IsCancelled() bool {
	return i.InvoiceStatus == types.InvoiceStatusCancelled
}

// IsTerminal reports whether the invoice is frozen: paid invoices only accept
// cancellation, cancelled invoices accept nothing.
func (i *Invoice) IsTerminal() bool {
	return lo.Contains([]types.InvoiceStatus{
		types.InvoiceStatusPaid,
		types.InvoiceStatusCancelled,
	}, i.InvoiceStatus)
}

// Editable reports whether item, payment and note edits are still allowed
func (i *Invoice) Editable() bool {
	return !i.IsTerminal()
}

// Validate checks the invoice-level invariants
func (i *Invoice) Validate() error {
	if err := i.Kind.Validate(); err != nil {
		return err
	}

	if err := i.InvoiceStatus.Validate(); err != nil {
		return err
	}

	if i.Total.IsNegative() {
		return ierr.NewError("invoice validation failed").
			WithHint("total must be non negative").
			Mark(ierr.ErrValidation)
	}

	if i.PaidTotal.IsNegative() {
		return ierr.NewError("invoice validation failed").
			WithHint("paid total must be non negative").
			Mark(ierr.ErrValidation)
	}

	if i.Pending.IsNegative() {
		return ierr.NewError("invoice validation failed").
			WithHint("pending must be non negative").
			Mark(ierr.ErrValidation)
	}

	if !i.Total.Equal(i.Subtotal.Add(i.TaxTotal).Add(i.RoundingAdjustment)) {
		return ierr.NewError("invoice validation failed").
			WithHint("total must equal subtotal + tax total + rounding adjustment").
			Mark(ierr.ErrValidation)
	}

	if len(i.CustomerNote) > types.NoteMaxLength || len(i.InternalNote) > types.NoteMaxLength {
		return ierr.NewError("invoice validation failed").
			WithHintf("notes must be at most %d characters", types.NoteMaxLength).
			Mark(ierr.ErrValidation)
	}

	for _, item := range i.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	for _, pm := range i.PaymentModes {
		if err := pm.Validate(); err != nil {
			return err
		}
	}

	return nil
}
