package types

import (
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/samber/lo"
)

// InvoiceKind categorizes what kind of billable entry an invoice covers
type InvoiceKind string

const (
	// InvoiceKindService indicates the invoice bills individual services or plans
	InvoiceKindService InvoiceKind = "service"
	// InvoiceKindPackage indicates the invoice bills a bundled package
	InvoiceKindPackage InvoiceKind = "package"
	// InvoiceKindDeal indicates the invoice bills a promotional deal
	InvoiceKindDeal InvoiceKind = "deal"
)

func (k InvoiceKind) String() string {
	return string(k)
}

func (k InvoiceKind) Validate() error {
	allowed := []InvoiceKind{
		InvoiceKindService,
		InvoiceKindPackage,
		InvoiceKindDeal,
	}
	if !lo.Contains(allowed, k) {
		return ierr.NewError("invalid invoice kind").
			WithHint("Please provide a valid invoice kind").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceStatus represents the current state of an invoice in its lifecycle
type InvoiceStatus string

const (
	// InvoiceStatusDraft indicates the invoice is editable and has no assigned number yet.
	// A pro-forma invoice is a draft flagged as such; it shares the draft sub-state.
	InvoiceStatusDraft InvoiceStatus = "draft"
	// InvoiceStatusSent indicates the invoice was issued with no payment recorded yet
	InvoiceStatusSent InvoiceStatus = "sent"
	// InvoiceStatusPartial indicates payments cover part of the total
	InvoiceStatusPartial InvoiceStatus = "partial"
	// InvoiceStatusPaid indicates payments cover the full total; the invoice is frozen
	InvoiceStatusPaid InvoiceStatus = "paid"
	// InvoiceStatusOverdue indicates the invoice is past due with an outstanding balance.
	// Never stored; derived on read from the due date.
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	// InvoiceStatusCancelled indicates the invoice was cancelled; terminal and read-only
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusSent,
		InvoiceStatusPartial,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
		InvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DiscountType is the closed union of supported line-item discount kinds
type DiscountType string

const (
	// DiscountTypePercentage discounts a percentage of the line amount
	DiscountTypePercentage DiscountType = "percentage"
	// DiscountTypeFlat discounts a fixed amount off the line amount
	DiscountTypeFlat DiscountType = "flat"
)

func (t DiscountType) String() string {
	return string(t)
}

func (t DiscountType) Validate() error {
	allowed := []DiscountType{
		DiscountTypePercentage,
		DiscountTypeFlat,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid discount type").
			WithHint("Please provide a valid discount type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentMethod identifies how a payment entry was collected. Gateway names
// (razorpay etc.) are folded into the opaque "online" label.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodOnline       PaymentMethod = "online"
	PaymentMethodOther        PaymentMethod = "other"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) Validate() error {
	allowed := []PaymentMethod{
		PaymentMethodCash,
		PaymentMethodCard,
		PaymentMethodUPI,
		PaymentMethodBankTransfer,
		PaymentMethodCheque,
		PaymentMethodOnline,
		PaymentMethodOther,
	}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid payment method").
			WithHint("Please provide a valid payment method").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ItemCategory classifies a line item for sales reporting
type ItemCategory string

const (
	ItemCategoryServicePT    ItemCategory = "service_pt"
	ItemCategoryServiceNonPT ItemCategory = "service_non_pt"
	ItemCategoryProduct      ItemCategory = "product"
)

func (c ItemCategory) String() string {
	return string(c)
}

func (c ItemCategory) Validate() error {
	allowed := []ItemCategory{
		ItemCategoryServicePT,
		ItemCategoryServiceNonPT,
		ItemCategoryProduct,
	}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid item category").
			WithHint("Please provide a valid item category").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

const (
	// NoteMaxLength is the maximum length of customer and internal invoice notes
	NoteMaxLength = 240
)

// InvoiceNumberConfig represents the configuration for automatic invoice
// number generation. Generated numbers follow the pattern
// {prefix}{separator}{branch_code}{separator}{formatted_date}{separator}{padded_sequence},
// e.g. "INV-HSR-202601-00042". Sequences are branch-scoped and reset monthly.
type InvoiceNumberConfig struct {
	Prefix        string `json:"prefix" mapstructure:"prefix"`
	DateFormat    string `json:"date_format" mapstructure:"date_format"`
	Timezone      string `json:"timezone" mapstructure:"timezone"`
	Separator     string `json:"separator" mapstructure:"separator"`
	SuffixLength  int    `json:"suffix_length" mapstructure:"suffix_length"`
	StartSequence int64  `json:"start_sequence" mapstructure:"start_sequence"`
}

// DefaultInvoiceNumberConfig returns the numbering format used when none is configured
func DefaultInvoiceNumberConfig() InvoiceNumberConfig {
	return InvoiceNumberConfig{
		Prefix:        "INV",
		DateFormat:    "200601",
		Timezone:      "UTC",
		Separator:     "-",
		SuffixLength:  5,
		StartSequence: 1,
	}
}

// InvoiceFilter represents the filter options for listing invoices
type InvoiceFilter struct {
	*QueryFilter
	*TimeRangeFilter

	// invoice_ids restricts results to invoices with the specified IDs
	InvoiceIDs []string `json:"invoice_ids,omitempty" form:"invoice_ids"`

	// member_id filters invoices for a specific member
	MemberID string `json:"member_id,omitempty" form:"member_id"`

	// branch_id filters invoices issued by a specific branch
	BranchID string `json:"branch_id,omitempty" form:"branch_id"`

	// invoice_kind filters by the nature of the invoice (service, package, deal)
	InvoiceKind InvoiceKind `json:"invoice_kind,omitempty" form:"invoice_kind"`

	// invoice_status filters by lifecycle state; multiple statuses match any
	InvoiceStatus []InvoiceStatus `json:"invoice_status,omitempty" form:"invoice_status"`

	// is_pro_forma filters draft invoices by their pro-forma flag
	IsProForma *bool `json:"is_pro_forma,omitempty" form:"is_pro_forma"`
}

// NewInvoiceFilter creates a new invoice filter with default options
func NewInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitInvoiceFilter creates a new invoice filter without pagination
func NewNoLimitInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f *InvoiceFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.TimeRangeFilter != nil {
		if err := f.TimeRangeFilter.Validate(); err != nil {
			return err
		}
	}
	if f.InvoiceKind != "" {
		if err := f.InvoiceKind.Validate(); err != nil {
			return err
		}
	}
	for _, status := range f.InvoiceStatus {
		if err := status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *InvoiceFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *InvoiceFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetSort implements BaseFilter interface
func (f *InvoiceFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *InvoiceFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// GetStatus implements BaseFilter interface
func (f *InvoiceFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

func (f *InvoiceFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
