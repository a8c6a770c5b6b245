package service

import (
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/gymflow/gymflow/internal/api/dto"
	"github.com/gymflow/gymflow/internal/domain/branch"
	"github.com/gymflow/gymflow/internal/domain/member"
	"github.com/gymflow/gymflow/internal/domain/staff"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/testutil"
	"github.com/gymflow/gymflow/internal/types"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.service = NewInvoiceService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		DB:          s.GetDB(),
		InvoiceRepo: stores.InvoiceRepo,
		SeqProvider: stores.SeqProvider,
		MemberRepo:  stores.MemberRepo,
		StaffRepo:   stores.StaffRepo,
		CatalogRepo: stores.CatalogRepo,
		BranchRepo:  stores.BranchRepo,
	})

	s.seedData()
}

func (s *InvoiceServiceSuite) seedData() {
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
		Phone:    "9876543210",
	}))
	s.NoError(stores.StaffRepo.(*testutil.InMemoryStaffStore).Add(ctx, &staff.Staff{
		ID:       "staff_priya",
		BranchID: "branch_hsr",
		Name:     "Priya Nair",
		Role:     "sales",
	}))
}

func (s *InvoiceServiceSuite) membershipRequest(payments ...dto.PaymentModeRequest) *dto.CreateInvoiceRequest {
	return &dto.CreateInvoiceRequest{
		MemberID: "mem_ravi",
		BranchID: "branch_hsr",
		Kind:     types.InvoiceKindService,
		Items: []dto.CreateLineItemRequest{
			{
				Description:   "Annual membership",
				UnitPrice:     decimal.NewFromInt(1000),
				DiscountType:  lo.ToPtr(types.DiscountTypePercentage),
				DiscountValue: lo.ToPtr(decimal.NewFromInt(10)),
				TaxRate:       lo.ToPtr(decimal.NewFromInt(18)),
			},
		},
		PaymentModes: payments,
	}
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest())
	s.NoError(err)
	s.NotNil(resp)

	s.Equal(types.InvoiceStatusDraft, resp.InvoiceStatus)
	s.Nil(resp.InvoiceNumber)
	s.True(decimal.NewFromInt(900).Equal(resp.Subtotal))
	s.True(decimal.NewFromInt(162).Equal(resp.TaxTotal))
	s.True(decimal.NewFromInt(1062).Equal(resp.Total))
	s.True(resp.PaidTotal.IsZero())
	s.True(decimal.NewFromInt(1062).Equal(resp.Pending))
	s.Len(resp.Items, 1)
	s.Equal(int64(1), resp.Items[0].Quantity, "quantity defaults to 1")
}

func (s *InvoiceServiceSuite) TestCreateInvoiceWithUpfrontPaymentStaysDraft() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest(
		dto.PaymentModeRequest{Method: types.PaymentMethodCash, Amount: decimal.NewFromInt(500)},
	))
	s.NoError(err)

	s.Equal(types.InvoiceStatusDraft, resp.InvoiceStatus, "payments before submission never change the state")
	s.True(decimal.NewFromInt(500).Equal(resp.PaidTotal))
	s.True(decimal.NewFromInt(562).Equal(resp.Pending))
}

func (s *InvoiceServiceSuite) TestPaymentsCarryReceiptReferences() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest(
		dto.PaymentModeRequest{Method: types.PaymentMethodCash, Amount: decimal.NewFromInt(500)},
	))
	s.NoError(err)

	resp, err := s.service.AddPayment(s.GetContext(), created.ID, &dto.PaymentModeRequest{
		Method: types.PaymentMethodUPI,
		Amount: decimal.NewFromInt(562),
	})
	s.NoError(err)

	s.Len(resp.PaymentModes, 2)
	for _, pm := range resp.PaymentModes {
		s.True(strings.HasPrefix(pm.ReceiptNumber, types.UUID_PREFIX_RECEIPT), "receipt = %s", pm.ReceiptNumber)
	}
	s.NotEqual(resp.PaymentModes[0].ReceiptNumber, resp.PaymentModes[1].ReceiptNumber)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceRejectsEmptyItems() {
	req := s.membershipRequest()
	req.Items = nil

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Nil(resp)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceRejectsUnknownDiscountType() {
	req := s.membershipRequest()
	req.Items[0].DiscountType = lo.ToPtr(types.DiscountType("promo"))

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Nil(resp)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceRejectsUnknownMember() {
	req := s.membershipRequest()
	req.MemberID = "mem_ghost"

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Nil(resp)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestSubmitInvoiceAssignsNumberOnce() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest())
	s.NoError(err)

	submitted, err := s.service.SubmitInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, submitted.InvoiceStatus)
	s.NotNil(submitted.InvoiceNumber)
	s.Contains(*submitted.InvoiceNumber, "INV-")
	s.NotNil(submitted.SubmittedAt)

	seq := s.GetStores().SeqProvider.(*testutil.InMemorySequenceProvider)
	s.Equal(1, seq.Calls())

	// a second submission is rejected and never burns another number
	again, err := s.service.SubmitInvoice(s.GetContext(), created.ID)
	s.Nil(again)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
	s.Equal(1, seq.Calls())

	reloaded, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(*submitted.InvoiceNumber, *reloaded.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestSubmitFullyPaidInvoiceGoesStraightToPaid() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest(
		dto.PaymentModeRequest{Method: types.PaymentMethodCash, Amount: decimal.NewFromInt(500)},
		dto.PaymentModeRequest{Method: types.PaymentMethodUPI, Amount: decimal.NewFromInt(562)},
	))
	s.NoError(err)

	submitted, err := s.service.SubmitInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, submitted.InvoiceStatus)
	s.NotNil(submitted.PaidAt)
	s.True(submitted.Pending.IsZero())
}

func (s *InvoiceServiceSuite) TestSubmitPartiallyPaidInvoiceGoesToPartial() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest(
		dto.PaymentModeRequest{Method: types.PaymentMethodCash, Amount: decimal.NewFromInt(500)},
	))
	s.NoError(err)

	submitted, err := s.service.SubmitInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPartial, submitted.InvoiceStatus)
	s.Nil(submitted.PaidAt)
}

func (s *InvoiceServiceSuite) TestSubmitConvertsProForma() {
	req := s.membershipRequest()
	req.IsProForma = true

	created, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.True(created.IsProForma)
	s.Nil(created.InvoiceNumber)

	submitted, err := s.service.SubmitInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.False(submitted.IsProForma)
	s.NotNil(submitted.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestAddPaymentMovesInvoiceThroughPartialToPaid() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest())
	s.NoError(err)
	_, err = s.service.SubmitInvoice(s.GetContext(), created.ID)
	s.NoError(err)

	partial, err := s.service.AddPayment(s.GetContext(), created.ID, &dto.PaymentModeRequest{
		Method: types.PaymentMethodCash,
		Amount: decimal.NewFromInt(500),
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPartial, partial.InvoiceStatus)
	s.True(decimal.NewFromInt(562).Equal(partial.Pending))

	paid, err := s.service.AddPayment(s.GetContext(), created.ID, &dto.PaymentModeRequest{
		Method: types.PaymentMethodUPI,
		Amount: decimal.NewFromInt(562),
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, paid.InvoiceStatus)
	s.NotNil(paid.PaidAt)
	s.True(paid.Pending.IsZero())
}

func (s *InvoiceServiceSuite) TestAddPaymentOnPaidInvoiceRejectedWithoutMutation() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest(
		dto.PaymentModeRequest{Method: types.PaymentMethodCash, Amount: decimal.NewFromInt(1062)},
	))
	s.NoError(err)
	_, err = s.service.SubmitInvoice(s.GetContext(), created.ID)
	s.NoError(err)

	resp, err := s.service.AddPayment(s.GetContext(), created.ID, &dto.PaymentModeRequest{
		Method: types.PaymentMethodCash,
		Amount: decimal.NewFromInt(100),
	})
	s.Nil(resp)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	reloaded, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.True(decimal.NewFromInt(1062).Equal(reloaded.PaidTotal), "failed operations mutate nothing")
	s.Len(reloaded.PaymentModes, 1)
}

func (s *InvoiceServiceSuite) TestCancelPaidInvoicePreservesPaidTotal() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest(
		dto.PaymentModeRequest{Method: types.PaymentMethodCash, Amount: decimal.NewFromInt(1062)},
	))
	s.NoError(err)
	_, err = s.service.SubmitInvoice(s.GetContext(), created.ID)
	s.NoError(err)

	cancelled, err := s.service.CancelInvoice(s.GetContext(), created.ID, &dto.CancelInvoiceRequest{
		Reason: "member requested refund via head office",
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusCancelled, cancelled.InvoiceStatus)
	s.NotNil(cancelled.Cancellation)
	s.Equal("member requested refund via head office", cancelled.Cancellation.Reason)
	s.True(decimal.NewFromInt(1062).Equal(cancelled.PaidTotal), "cancellation never reverses collected money")
}

func (s *InvoiceServiceSuite) TestCancelCancelledInvoiceRejected() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest())
	s.NoError(err)

	_, err = s.service.CancelInvoice(s.GetContext(), created.ID, &dto.CancelInvoiceRequest{Reason: "duplicate entry"})
	s.NoError(err)

	resp, err := s.service.CancelInvoice(s.GetContext(), created.ID, &dto.CancelInvoiceRequest{Reason: "again"})
	s.Nil(resp)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestCancelRequiresReason() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest())
	s.NoError(err)

	resp, err := s.service.CancelInvoice(s.GetContext(), created.ID, &dto.CancelInvoiceRequest{})
	s.Nil(resp)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestUpdateNotes() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest())
	s.NoError(err)

	updated, err := s.service.UpdateNotes(s.GetContext(), created.ID, &dto.UpdateNotesRequest{
		CustomerNote: lo.ToPtr("renews every January"),
	})
	s.NoError(err)
	s.Equal("renews every January", updated.CustomerNote)
}

func (s *InvoiceServiceSuite) TestUpdateNotesOnFrozenInvoiceRejected() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest(
		dto.PaymentModeRequest{Method: types.PaymentMethodCash, Amount: decimal.NewFromInt(1062)},
	))
	s.NoError(err)
	_, err = s.service.SubmitInvoice(s.GetContext(), created.ID)
	s.NoError(err)

	resp, err := s.service.UpdateNotes(s.GetContext(), created.ID, &dto.UpdateNotesRequest{
		InternalNote: lo.ToPtr("should not land"),
	})
	s.Nil(resp)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestListInvoicesFiltering() {
	ctx := s.GetContext()

	first, err := s.service.CreateInvoice(ctx, s.membershipRequest())
	s.NoError(err)
	_, err = s.service.SubmitInvoice(ctx, first.ID)
	s.NoError(err)

	_, err = s.service.CreateInvoice(ctx, s.membershipRequest())
	s.NoError(err)

	all, err := s.service.ListInvoices(ctx, types.NewInvoiceFilter())
	s.NoError(err)
	s.Len(all.Items, 2)
	s.Equal(2, all.Pagination.Total)

	drafts := types.NewInvoiceFilter()
	drafts.InvoiceStatus = []types.InvoiceStatus{types.InvoiceStatusDraft}
	draftList, err := s.service.ListInvoices(ctx, drafts)
	s.NoError(err)
	s.Len(draftList.Items, 1)
}

func (s *InvoiceServiceSuite) TestOverdueDerivedOnRead() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.membershipRequest())
	s.NoError(err)
	_, err = s.service.SubmitInvoice(s.GetContext(), created.ID)
	s.NoError(err)

	// backdate the due date directly in the store
	store := s.GetStores().InvoiceRepo.(*testutil.InMemoryInvoiceStore)
	inv, err := store.Get(s.GetContext(), created.ID)
	s.NoError(err)
	past := time.Now().UTC().Add(-72 * time.Hour)
	inv.DueDate = &past
	s.NoError(store.Update(s.GetContext(), inv))

	resp, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusOverdue, resp.InvoiceStatus, "overdue shows on read without being stored")

	stored, err := store.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, stored.InvoiceStatus)
}
