package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gymflow/gymflow/internal/api/dto"
	"github.com/gymflow/gymflow/internal/domain/catalog"
	"github.com/gymflow/gymflow/internal/domain/invoice"
	"github.com/gymflow/gymflow/internal/types"
)

// ReportService produces the sales breakdown shown on the owner dashboard
type ReportService interface {
	GetSalesBreakdown(ctx context.Context, req *dto.SalesReportRequest) (*dto.SalesReportResponse, error)
}

type reportService struct {
	ServiceParams
}

func NewReportService(params ServiceParams) ReportService {
	return &reportService{
		ServiceParams: params,
	}
}

// SalesAccumulator sums pre-tax line nets into the three reporting buckets.
// Accumulation is exact; rounding happens once, when the report is rendered.
type SalesAccumulator struct {
	ServicePT    decimal.Decimal
	ServiceNonPT decimal.Decimal
	Product      decimal.Decimal

	TaxCollected decimal.Decimal
	Collected    decimal.Decimal
	Outstanding  decimal.Decimal

	InvoiceCount int
}

// Add folds one invoice into the buckets. Cancelled invoices are skipped
// entirely; their collected money is an audit fact, not a sale.
func (a *SalesAccumulator) Add(inv *invoice.Invoice, classify catalog.Classifier) {
	if inv.IsCancelled() {
		return
	}

	for _, item := range inv.Items {
		net := item.Net()
		switch classify(item) {
		case types.ItemCategoryServicePT:
			a.ServicePT = a.ServicePT.Add(net)
		case types.ItemCategoryServiceNonPT:
			a.ServiceNonPT = a.ServiceNonPT.Add(net)
		default:
			a.Product = a.Product.Add(net)
		}
	}

	a.TaxCollected = a.TaxCollected.Add(inv.TaxTotal)
	a.Collected = a.Collected.Add(inv.PaidTotal)
	a.Outstanding = a.Outstanding.Add(inv.Pending)
	a.InvoiceCount++
}

// GetSalesBreakdown buckets every non-cancelled invoice in the window into
// personal-training, other-service and product sales by the catalog category
// of each line item.
func (s *reportService) GetSalesBreakdown(ctx context.Context, req *dto.SalesReportRequest) (*dto.SalesReportResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	classify, err := catalog.NewRepositoryClassifier(ctx, s.CatalogRepo)
	if err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, req.ToFilter())
	if err != nil {
		return nil, err
	}

	acc := &SalesAccumulator{}
	for _, inv := range invoices {
		acc.Add(inv, classify)
	}

	s.Logger.Debugw("computed sales breakdown",
		"branch_id", req.BranchID,
		"invoice_count", acc.InvoiceCount,
	)

	return &dto.SalesReportResponse{
		BranchID:          req.BranchID,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		ServicePTSales:    acc.ServicePT.Round(2),
		ServiceNonPTSales: acc.ServiceNonPT.Round(2),
		ProductSales:      acc.Product.Round(2),
		TaxCollected:      acc.TaxCollected.Round(2),
		Collected:         acc.Collected.Round(2),
		Outstanding:       acc.Outstanding.Round(2),
		InvoiceCount:      acc.InvoiceCount,
	}, nil
}
