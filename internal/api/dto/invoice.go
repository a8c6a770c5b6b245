package dto

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymflow/gymflow/internal/domain/invoice"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/gymflow/gymflow/internal/validator"
)

// CreateInvoiceRequest represents the request payload for creating a new
// draft or pro-forma invoice from the billing form
type CreateInvoiceRequest struct {
	// member_id is the member this invoice bills
	MemberID string `json:"member_id" validate:"required"`

	// branch_id is the issuing studio branch
	BranchID string `json:"branch_id" validate:"required"`

	// sales_rep_id optionally attributes the sale to a staff member
	SalesRepID *string `json:"sales_rep_id,omitempty"`

	// kind indicates what the invoice bills (service, package, deal)
	Kind types.InvoiceKind `json:"kind" validate:"required"`

	// is_pro_forma creates the invoice as a numberless preview
	IsProForma bool `json:"is_pro_forma"`

	// items contains the billable entries; at least one is required
	Items []CreateLineItemRequest `json:"items" validate:"required,min=1,dive"`

	// payment_modes optionally records payments collected up front
	PaymentModes []PaymentModeRequest `json:"payment_modes,omitempty" validate:"omitempty,dive"`

	// due_date is the date by which payment is expected
	DueDate *time.Time `json:"due_date,omitempty"`

	CustomerNote   string `json:"customer_note,omitempty" validate:"omitempty,max=240"`
	InternalNote   string `json:"internal_note,omitempty" validate:"omitempty,max=240"`
	DiscountReason string `json:"discount_reason,omitempty"`
	Terms          string `json:"terms,omitempty"`

	// rounding_adjustment is folded into the invoice total; the billing form
	// always sends zero today
	RoundingAdjustment *decimal.Decimal `json:"rounding_adjustment,omitempty"`

	// metadata contains additional custom key-value pairs
	Metadata types.Metadata `json:"metadata,omitempty"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if err := r.Kind.Validate(); err != nil {
		return err
	}

	if len(r.Items) == 0 {
		return ierr.WithError(invoice.ErrEmptyItems).
			WithHint("at least one line item with description and price is required").
			Mark(ierr.ErrValidation)
	}

	for _, item := range r.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	for _, pm := range r.PaymentModes {
		if err := pm.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ToInvoice converts the request to a domain invoice in draft state. Derived
// totals are not filled here; the service recalculates them before persisting.
func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		BranchID:       r.BranchID,
		MemberID:       r.MemberID,
		SalesRepID:     r.SalesRepID,
		Kind:           r.Kind,
		IsProForma:     r.IsProForma,
		InvoiceStatus:  types.InvoiceStatusDraft,
		DueDate:        r.DueDate,
		CustomerNote:   r.CustomerNote,
		InternalNote:   r.InternalNote,
		DiscountReason: r.DiscountReason,
		Terms:          r.Terms,
		Metadata:       r.Metadata,
		Version:        1,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	if r.RoundingAdjustment != nil {
		inv.RoundingAdjustment = *r.RoundingAdjustment
	}

	inv.Items = make([]*invoice.LineItem, len(r.Items))
	for i, item := range r.Items {
		inv.Items[i] = item.ToLineItem(ctx)
	}

	inv.PaymentModes = make([]*invoice.PaymentMode, len(r.PaymentModes))
	for i, pm := range r.PaymentModes {
		inv.PaymentModes[i] = pm.ToPaymentMode(ctx, i)
	}

	return inv
}

// CreateLineItemRequest represents one billable entry in the request
type CreateLineItemRequest struct {
	// description of the billed service, package or product
	Description string `json:"description" validate:"required"`

	// service_id optionally references a catalog service/plan
	ServiceID *string `json:"service_id,omitempty"`

	// quantity defaults to 1 when omitted
	Quantity *int64 `json:"quantity,omitempty" validate:"omitempty,min=1"`

	// unit_price is the price per unit before discount and tax
	UnitPrice decimal.Decimal `json:"unit_price"`

	// discount_type must be one of the recognized types when present;
	// unrecognized values are rejected rather than silently defaulted
	DiscountType *types.DiscountType `json:"discount_type,omitempty"`

	// discount_value is a percentage or flat amount depending on discount_type
	DiscountValue *decimal.Decimal `json:"discount_value,omitempty"`

	// tax_rate is the tax percentage applied to the discounted amount
	TaxRate *decimal.Decimal `json:"tax_rate,omitempty"`

	// start_date and expiry_date delimit service validity for display only
	StartDate  *time.Time `json:"start_date,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

func (r *CreateLineItemRequest) Validate() error {
	if r.Description == "" {
		return ierr.NewError("line item description is required").
			WithHint("at least one line item with description and price is required").
			Mark(ierr.ErrValidation)
	}

	if r.UnitPrice.IsNegative() {
		return ierr.NewError("unit_price must be non-negative").
			WithHint("unit price cannot be negative").
			WithReportableDetails(map[string]any{
				"unit_price": r.UnitPrice.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	if r.DiscountType != nil {
		if err := r.DiscountType.Validate(); err != nil {
			return err
		}
	}

	if r.DiscountValue != nil && r.DiscountValue.IsNegative() {
		return ierr.NewError("discount value must be non-negative").
			WithHint("discount value cannot be negative").
			Mark(ierr.ErrValidation)
	}

	if r.TaxRate != nil && r.TaxRate.IsNegative() {
		return ierr.NewError("tax rate must be non-negative").
			WithHint("tax rate cannot be negative").
			Mark(ierr.ErrValidation)
	}

	if r.StartDate != nil && r.ExpiryDate != nil && r.ExpiryDate.Before(*r.StartDate) {
		return ierr.NewError("expiry_date must be after start_date").
			WithHint("service expiry must be after its start date").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToLineItem converts the request to a domain line item with defaults applied
func (r *CreateLineItemRequest) ToLineItem(ctx context.Context) *invoice.LineItem {
	item := &invoice.LineItem{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
		Description:  r.Description,
		ServiceID:    r.ServiceID,
		Quantity:     1,
		UnitPrice:    r.UnitPrice,
		DiscountType: types.DiscountTypePercentage,
		StartDate:    r.StartDate,
		ExpiryDate:   r.ExpiryDate,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
	if r.Quantity != nil {
		item.Quantity = *r.Quantity
	}
	if r.DiscountType != nil {
		item.DiscountType = *r.DiscountType
	}
	if r.DiscountValue != nil {
		item.DiscountValue = *r.DiscountValue
	}
	if r.TaxRate != nil {
		item.TaxRate = *r.TaxRate
	}
	return item
}

// PaymentModeRequest represents one payment entry against an invoice
type PaymentModeRequest struct {
	// method identifies how the payment was collected
	Method types.PaymentMethod `json:"method" validate:"required"`

	// amount paid via this method; zero-amount entries are accepted but
	// excluded from the paid total
	Amount decimal.Decimal `json:"amount"`
}

func (r *PaymentModeRequest) Validate() error {
	if err := r.Method.Validate(); err != nil {
		return err
	}
	if r.Amount.IsNegative() {
		return ierr.NewError("payment amount must be non-negative").
			WithHint("payment amount cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToPaymentMode converts the request to a domain payment mode entry
func (r *PaymentModeRequest) ToPaymentMode(ctx context.Context, position int) *invoice.PaymentMode {
	return &invoice.PaymentMode{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		Method:        r.Method,
		Amount:        r.Amount,
		Position:      position,
		ReceiptNumber: types.GenerateShortIDWithPrefix(types.UUID_PREFIX_RECEIPT),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

// CancelInvoiceRequest carries the mandatory cancellation reason
type CancelInvoiceRequest struct {
	Reason string `json:"reason" validate:"required,max=240"`
}

func (r *CancelInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// UpdateNotesRequest edits the free-text fields of a non-frozen invoice
type UpdateNotesRequest struct {
	CustomerNote   *string `json:"customer_note,omitempty" validate:"omitempty,max=240"`
	InternalNote   *string `json:"internal_note,omitempty" validate:"omitempty,max=240"`
	DiscountReason *string `json:"discount_reason,omitempty"`
	Terms          *string `json:"terms,omitempty"`
}

func (r *UpdateNotesRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// InvoiceResponse represents an invoice in API responses. Monetary fields are
// rounded to 2 decimal places here and nowhere earlier.
type InvoiceResponse struct {
	ID            string              `json:"id"`
	InvoiceNumber *string             `json:"invoice_number"`
	BranchID      string              `json:"branch_id"`
	MemberID      string              `json:"member_id"`
	SalesRepID    *string             `json:"sales_rep_id,omitempty"`
	Kind          types.InvoiceKind   `json:"kind"`
	IsProForma    bool                `json:"is_pro_forma"`
	InvoiceStatus types.InvoiceStatus `json:"invoice_status"`

	Items        []LineItemResponse    `json:"items"`
	PaymentModes []PaymentModeResponse `json:"payment_modes"`

	Subtotal           decimal.Decimal `json:"subtotal"`
	TaxTotal           decimal.Decimal `json:"tax_total"`
	Total              decimal.Decimal `json:"total"`
	PaidTotal          decimal.Decimal `json:"paid_total"`
	Pending            decimal.Decimal `json:"pending"`
	RoundingAdjustment decimal.Decimal `json:"rounding_adjustment"`

	DueDate        *time.Time            `json:"due_date,omitempty"`
	SubmittedAt    *time.Time            `json:"submitted_at,omitempty"`
	PaidAt         *time.Time            `json:"paid_at,omitempty"`
	Cancellation   *CancellationResponse `json:"cancellation,omitempty"`
	CustomerNote   string                `json:"customer_note,omitempty"`
	InternalNote   string                `json:"internal_note,omitempty"`
	DiscountReason string                `json:"discount_reason,omitempty"`
	Terms          string                `json:"terms,omitempty"`
	Metadata       types.Metadata        `json:"metadata,omitempty"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LineItemResponse represents one line item in API responses
type LineItemResponse struct {
	ID             string             `json:"id"`
	Description    string             `json:"description"`
	ServiceID      *string            `json:"service_id,omitempty"`
	Quantity       int64              `json:"quantity"`
	UnitPrice      decimal.Decimal    `json:"unit_price"`
	DiscountType   types.DiscountType `json:"discount_type"`
	DiscountValue  decimal.Decimal    `json:"discount_value"`
	TaxRate        decimal.Decimal    `json:"tax_rate"`
	StartDate      *time.Time         `json:"start_date,omitempty"`
	ExpiryDate     *time.Time         `json:"expiry_date,omitempty"`
	Amount         decimal.Decimal    `json:"amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	Total          decimal.Decimal    `json:"total"`
}

// PaymentModeResponse represents one payment entry in API responses
type PaymentModeResponse struct {
	ID            string              `json:"id"`
	Method        types.PaymentMethod `json:"method"`
	Amount        decimal.Decimal     `json:"amount"`
	ReceiptNumber string              `json:"receipt_number"`
}

// CancellationResponse represents the cancellation audit block
type CancellationResponse struct {
	Reason      string    `json:"reason"`
	CancelledBy string    `json:"cancelled_by"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// NewInvoiceResponse builds the response representation of a domain invoice.
// The effective status (overdue included) is evaluated at build time.
func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:                 inv.ID,
		InvoiceNumber:      inv.InvoiceNumber,
		BranchID:           inv.BranchID,
		MemberID:           inv.MemberID,
		SalesRepID:         inv.SalesRepID,
		Kind:               inv.Kind,
		IsProForma:         inv.IsProForma,
		InvoiceStatus:      inv.EffectiveStatus(time.Now().UTC()),
		Subtotal:           inv.Subtotal.Round(2),
		TaxTotal:           inv.TaxTotal.Round(2),
		Total:              inv.Total.Round(2),
		PaidTotal:          inv.PaidTotal.Round(2),
		Pending:            inv.Pending.Round(2),
		RoundingAdjustment: inv.RoundingAdjustment.Round(2),
		DueDate:            inv.DueDate,
		SubmittedAt:        inv.SubmittedAt,
		PaidAt:             inv.PaidAt,
		CustomerNote:       inv.CustomerNote,
		InternalNote:       inv.InternalNote,
		DiscountReason:     inv.DiscountReason,
		Terms:              inv.Terms,
		Metadata:           inv.Metadata,
		Version:            inv.Version,
		CreatedAt:          inv.CreatedAt,
		CreatedBy:          inv.CreatedBy,
		UpdatedAt:          inv.UpdatedAt,
	}

	if inv.Cancellation != nil {
		resp.Cancellation = &CancellationResponse{
			Reason:      inv.Cancellation.Reason,
			CancelledBy: inv.Cancellation.CancelledBy,
			CancelledAt: inv.Cancellation.CancelledAt,
		}
	}

	resp.Items = make([]LineItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		resp.Items[i] = LineItemResponse{
			ID:             item.ID,
			Description:    item.Description,
			ServiceID:      item.ServiceID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice.Round(2),
			DiscountType:   item.DiscountType,
			DiscountValue:  item.DiscountValue,
			TaxRate:        item.TaxRate,
			StartDate:      item.StartDate,
			ExpiryDate:     item.ExpiryDate,
			Amount:         item.Amount.Round(2),
			DiscountAmount: item.DiscountAmount.Round(2),
			TaxAmount:      item.TaxAmount.Round(2),
			Total:          item.Total.Round(2),
		}
	}

	resp.PaymentModes = make([]PaymentModeResponse, len(inv.PaymentModes))
	for i, pm := range inv.PaymentModes {
		resp.PaymentModes[i] = PaymentModeResponse{
			ID:            pm.ID,
			Method:        pm.Method,
			Amount:        pm.Amount.Round(2),
			ReceiptNumber: pm.ReceiptNumber,
		}
	}

	return resp
}

// ListInvoicesResponse represents a paginated list of invoices
type ListInvoicesResponse struct {
	Items      []*InvoiceResponse       `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}
