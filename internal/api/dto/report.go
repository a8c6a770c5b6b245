package dto

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
)

// SalesReportRequest carries the query parameters of the sales breakdown
// report. The time range is half-open: start inclusive, end exclusive.
type SalesReportRequest struct {
	BranchID  string     `json:"branch_id" form:"branch_id"`
	StartTime *time.Time `json:"start_time" form:"start_time" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   *time.Time `json:"end_time" form:"end_time" time_format:"2006-01-02T15:04:05Z07:00"`
}

func (r *SalesReportRequest) Validate() error {
	if r.StartTime != nil && r.EndTime != nil && r.EndTime.Before(*r.StartTime) {
		return ierr.NewError("end_time must be after start_time").
			WithHint("the report window end must be after its start").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToFilter converts the request to an unpaginated invoice filter
func (r *SalesReportRequest) ToFilter() *types.InvoiceFilter {
	filter := types.NewNoLimitInvoiceFilter()
	filter.BranchID = r.BranchID
	if r.StartTime != nil || r.EndTime != nil {
		filter.TimeRangeFilter = &types.TimeRangeFilter{
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		}
	}
	return filter
}

// SalesReportResponse represents the sales breakdown over a reporting window.
// Buckets sum pre-tax line nets; amounts are rounded only here.
type SalesReportResponse struct {
	BranchID  string     `json:"branch_id,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// service_pt_sales is the pre-tax net of personal-training line items
	ServicePTSales decimal.Decimal `json:"service_pt_sales"`
	// service_non_pt_sales is the pre-tax net of all other service line items
	ServiceNonPTSales decimal.Decimal `json:"service_non_pt_sales"`
	// product_sales is the pre-tax net of retail product line items
	ProductSales decimal.Decimal `json:"product_sales"`

	// tax_collected is the tax total across the bucketed invoices
	TaxCollected decimal.Decimal `json:"tax_collected"`
	// collected is the sum of payments recorded on the bucketed invoices
	Collected decimal.Decimal `json:"collected"`
	// outstanding is the sum of pending balances on the bucketed invoices
	Outstanding decimal.Decimal `json:"outstanding"`

	// invoice_count is the number of invoices included in the breakdown
	InvoiceCount int `json:"invoice_count"`
}
