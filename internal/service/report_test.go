package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/gymflow/gymflow/internal/api/dto"
	"github.com/gymflow/gymflow/internal/domain/branch"
	"github.com/gymflow/gymflow/internal/domain/catalog"
	"github.com/gymflow/gymflow/internal/domain/member"
	"github.com/gymflow/gymflow/internal/testutil"
	"github.com/gymflow/gymflow/internal/types"
)

type ReportServiceSuite struct {
	testutil.BaseServiceTestSuite
	invoices InvoiceService
	reports  ReportService
}

func TestReportService(t *testing.T) {
	suite.Run(t, new(ReportServiceSuite))
}

func (s *ReportServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	params := ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		DB:          s.GetDB(),
		InvoiceRepo: stores.InvoiceRepo,
		SeqProvider: stores.SeqProvider,
		MemberRepo:  stores.MemberRepo,
		StaffRepo:   stores.StaffRepo,
		CatalogRepo: stores.CatalogRepo,
		BranchRepo:  stores.BranchRepo,
	}
	s.invoices = NewInvoiceService(params)
	s.reports = NewReportService(params)

	s.seedData()
}

func (s *ReportServiceSuite) seedData() {
	stores := s.GetStores()
	ctx := s.GetContext()

	s.NoError(stores.BranchRepo.(*testutil.InMemoryBranchStore).Add(ctx, &branch.Branch{
		ID:   "branch_hsr",
		Name: "HSR Layout",
		Code: "HSR",
	}))
	s.NoError(stores.MemberRepo.(*testutil.InMemoryMemberStore).Add(ctx, &member.Member{
		ID:       "mem_ravi",
		BranchID: "branch_hsr",
		Name:     "Ravi Kumar",
	}))

	catalogStore := stores.CatalogRepo.(*testutil.InMemoryCatalogStore)
	s.NoError(catalogStore.Add(ctx, &catalog.Service{
		ID:       "svc_pt10",
		Name:     "PT 10 sessions",
		Category: types.ItemCategoryServicePT,
	}))
	s.NoError(catalogStore.Add(ctx, &catalog.Service{
		ID:       "svc_gym",
		Name:     "Gym membership",
		Category: types.ItemCategoryServiceNonPT,
	}))
}

func (s *ReportServiceSuite) createInvoice(items ...dto.CreateLineItemRequest) *dto.InvoiceResponse {
	resp, err := s.invoices.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		MemberID: "mem_ravi",
		BranchID: "branch_hsr",
		Kind:     types.InvoiceKindService,
		Items:    items,
	})
	s.NoError(err)
	return resp
}

func (s *ReportServiceSuite) TestSalesBreakdownBucketsByCatalogCategory() {
	// 5000 PT net after 10% discount = 4500, taxed at 18%
	s.createInvoice(dto.CreateLineItemRequest{
		Description:   "PT 10 sessions",
		ServiceID:     lo.ToPtr("svc_pt10"),
		UnitPrice:     decimal.NewFromInt(5000),
		DiscountType:  lo.ToPtr(types.DiscountTypePercentage),
		DiscountValue: lo.ToPtr(decimal.NewFromInt(10)),
		TaxRate:       lo.ToPtr(decimal.NewFromInt(18)),
	})

	// membership 1000 net, plus an ad-hoc retail line with no catalog reference
	s.createInvoice(
		dto.CreateLineItemRequest{
			Description: "Gym membership",
			ServiceID:   lo.ToPtr("svc_gym"),
			UnitPrice:   decimal.NewFromInt(1000),
			TaxRate:     lo.ToPtr(decimal.NewFromInt(18)),
		},
		dto.CreateLineItemRequest{
			Description: "Shaker bottle",
			UnitPrice:   decimal.RequireFromString("349.50"),
		},
	)

	report, err := s.reports.GetSalesBreakdown(s.GetContext(), &dto.SalesReportRequest{BranchID: "branch_hsr"})
	s.NoError(err)

	s.True(decimal.NewFromInt(4500).Equal(report.ServicePTSales), "pt = %s", report.ServicePTSales)
	s.True(decimal.NewFromInt(1000).Equal(report.ServiceNonPTSales))
	s.True(decimal.RequireFromString("349.50").Equal(report.ProductSales))
	s.Equal(2, report.InvoiceCount)

	// tax: 4500*18% + 1000*18% = 810 + 180
	s.True(decimal.NewFromInt(990).Equal(report.TaxCollected))
}

func (s *ReportServiceSuite) TestSalesBreakdownSkipsCancelledInvoices() {
	s.createInvoice(dto.CreateLineItemRequest{
		Description: "Gym membership",
		ServiceID:   lo.ToPtr("svc_gym"),
		UnitPrice:   decimal.NewFromInt(1000),
	})

	doomed := s.createInvoice(dto.CreateLineItemRequest{
		Description: "Gym membership",
		ServiceID:   lo.ToPtr("svc_gym"),
		UnitPrice:   decimal.NewFromInt(2000),
	})
	_, err := s.invoices.CancelInvoice(s.GetContext(), doomed.ID, &dto.CancelInvoiceRequest{Reason: "entered twice"})
	s.NoError(err)

	report, err := s.reports.GetSalesBreakdown(s.GetContext(), &dto.SalesReportRequest{})
	s.NoError(err)

	s.True(decimal.NewFromInt(1000).Equal(report.ServiceNonPTSales))
	s.Equal(1, report.InvoiceCount)
}

func (s *ReportServiceSuite) TestSalesBreakdownUnknownServiceCountsAsProduct() {
	s.createInvoice(dto.CreateLineItemRequest{
		Description: "Retired plan",
		ServiceID:   lo.ToPtr("svc_retired"),
		UnitPrice:   decimal.NewFromInt(750),
	})

	report, err := s.reports.GetSalesBreakdown(s.GetContext(), &dto.SalesReportRequest{})
	s.NoError(err)

	s.True(report.ServicePTSales.IsZero())
	s.True(report.ServiceNonPTSales.IsZero())
	s.True(decimal.NewFromInt(750).Equal(report.ProductSales))
}

func (s *ReportServiceSuite) TestSalesBreakdownRoundsOnlyAtDisplay() {
	// three lines of 33.335 net each accumulate to 100.005 exactly,
	// which rounds to 100.01 once at the edge; rounding each line first
	// would give 100.02
	for i := 0; i < 3; i++ {
		s.createInvoice(dto.CreateLineItemRequest{
			Description: "Locker rental",
			UnitPrice:   decimal.RequireFromString("33.335"),
		})
	}

	report, err := s.reports.GetSalesBreakdown(s.GetContext(), &dto.SalesReportRequest{})
	s.NoError(err)

	s.True(decimal.RequireFromString("100.01").Equal(report.ProductSales), "got %s", report.ProductSales)
}

func (s *ReportServiceSuite) TestSalesBreakdownWindowEndExclusive() {
	created := s.createInvoice(dto.CreateLineItemRequest{
		Description: "Gym membership",
		ServiceID:   lo.ToPtr("svc_gym"),
		UnitPrice:   decimal.NewFromInt(1000),
	})

	// pin the creation instant directly in the store
	cutoff := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	store := s.GetStores().InvoiceRepo.(*testutil.InMemoryInvoiceStore)
	inv, err := store.Get(s.GetContext(), created.ID)
	s.NoError(err)
	inv.CreatedAt = cutoff
	s.NoError(store.Update(s.GetContext(), inv))

	// an invoice created exactly at end_time falls outside the window
	report, err := s.reports.GetSalesBreakdown(s.GetContext(), &dto.SalesReportRequest{EndTime: &cutoff})
	s.NoError(err)
	s.Equal(0, report.InvoiceCount)

	// but exactly at start_time it falls inside
	report, err = s.reports.GetSalesBreakdown(s.GetContext(), &dto.SalesReportRequest{StartTime: &cutoff})
	s.NoError(err)
	s.Equal(1, report.InvoiceCount)
	s.True(decimal.NewFromInt(1000).Equal(report.ServiceNonPTSales))
}

func (s *ReportServiceSuite) TestSalesBreakdownCollectedAndOutstanding() {
	created := s.createInvoice(dto.CreateLineItemRequest{
		Description: "Gym membership",
		ServiceID:   lo.ToPtr("svc_gym"),
		UnitPrice:   decimal.NewFromInt(1000),
	})
	_, err := s.invoices.SubmitInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	_, err = s.invoices.AddPayment(s.GetContext(), created.ID, &dto.PaymentModeRequest{
		Method: types.PaymentMethodCash,
		Amount: decimal.NewFromInt(400),
	})
	s.NoError(err)

	report, err := s.reports.GetSalesBreakdown(s.GetContext(), &dto.SalesReportRequest{})
	s.NoError(err)

	s.True(decimal.NewFromInt(400).Equal(report.Collected))
	s.True(decimal.NewFromInt(600).Equal(report.Outstanding))
}
