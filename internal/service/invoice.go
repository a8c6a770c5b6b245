package service

import (
	"context"
	"time"

	"github.com/gymflow/gymflow/internal/api/dto"
	"github.com/gymflow/gymflow/internal/domain/invoice"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
)

// InvoiceService drives the invoice lifecycle: creation, numbering on
// submission, payment recording, cancellation and note edits.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	SubmitInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	AddPayment(ctx context.Context, id string, req *dto.PaymentModeRequest) (*dto.InvoiceResponse, error)
	CancelInvoice(ctx context.Context, id string, req *dto.CancelInvoiceRequest) (*dto.InvoiceResponse, error)
	UpdateNotes(ctx context.Context, id string, req *dto.UpdateNotesRequest) (*dto.InvoiceResponse, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

// CreateInvoice creates a draft (or pro-forma) invoice with freshly computed
// totals. Payments recorded at creation time count toward the paid total but
// the invoice stays in draft until it is submitted.
func (s *invoiceService) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m, err := s.MemberRepo.Get(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	if _, err := s.BranchRepo.Get(ctx, req.BranchID); err != nil {
		return nil, err
	}

	if m.BranchID != req.BranchID {
		return nil, ierr.NewError("member does not belong to branch").
			WithHint("the member is registered at a different branch").
			WithReportableDetails(map[string]any{
				"member_id": req.MemberID,
				"branch_id": req.BranchID,
			}).
			Mark(ierr.ErrValidation)
	}

	if req.SalesRepID != nil {
		if _, err := s.StaffRepo.Get(ctx, *req.SalesRepID); err != nil {
			return nil, err
		}
	}

	inv := req.ToInvoice(ctx)
	if _, err := inv.Recalculate(); err != nil {
		return nil, err
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		return s.InvoiceRepo.Create(ctx, inv)
	}); err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"member_id", inv.MemberID,
		"branch_id", inv.BranchID,
		"total", inv.Total,
		"is_pro_forma", inv.IsProForma,
	)

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListInvoicesResponse{
		Items:      make([]*dto.InvoiceResponse, len(invoices)),
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}
	for i, inv := range invoices {
		resp.Items[i] = dto.NewInvoiceResponse(inv)
	}
	return resp, nil
}

// SubmitInvoice issues a draft: it assigns the branch-scoped invoice number
// (exactly once, resubmission never renumbers), stamps the submission time
// and moves the invoice to sent, partial or paid depending on how much has
// already been collected. Submitting a pro-forma converts it into a real
// invoice.
func (s *invoiceService) SubmitInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	var result *invoice.Invoice

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		inv, err := s.InvoiceRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if inv.InvoiceStatus != types.InvoiceStatusDraft {
			return ierr.WithError(invoice.ErrInvalidTransition).
				WithHintf("cannot submit an invoice in %s state", inv.InvoiceStatus).
				WithReportableDetails(map[string]any{
					"invoice_id": inv.ID,
					"status":     inv.InvoiceStatus,
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		if !inv.IsNumbered() {
			number, err := s.SeqProvider.NextInvoiceNumber(ctx, inv.BranchID)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = &number
		}

		totals, err := inv.Recalculate()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		inv.SubmittedAt = &now
		inv.IsProForma = false

		switch totals.Recommendation {
		case types.InvoiceStatusPaid:
			inv.InvoiceStatus = types.InvoiceStatusPaid
			inv.PaidAt = &now
		case types.InvoiceStatusPartial:
			inv.InvoiceStatus = types.InvoiceStatusPartial
		default:
			inv.InvoiceStatus = types.InvoiceStatusSent
		}

		inv.UpdatedAt = now
		inv.UpdatedBy = types.GetUserID(ctx)

		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return err
		}

		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("submitted invoice",
		"invoice_id", result.ID,
		"invoice_number", result.InvoiceNumber,
		"status", result.InvoiceStatus,
	)

	return dto.NewInvoiceResponse(result), nil
}

// AddPayment records one payment entry against the invoice and refreshes its
// totals. Issued invoices move to partial or paid as the paid total crosses
// the invoice total; drafts keep accumulating payments without changing state.
func (s *invoiceService) AddPayment(ctx context.Context, id string, req *dto.PaymentModeRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var result *invoice.Invoice

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		inv, err := s.InvoiceRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if !inv.Editable() {
			return ierr.WithError(invoice.ErrInvalidTransition).
				WithHintf("cannot record a payment on a %s invoice", inv.InvoiceStatus).
				WithReportableDetails(map[string]any{
					"invoice_id": inv.ID,
					"status":     inv.InvoiceStatus,
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		inv.PaymentModes = append(inv.PaymentModes, req.ToPaymentMode(ctx, len(inv.PaymentModes)))

		totals, err := inv.Recalculate()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if inv.InvoiceStatus != types.InvoiceStatusDraft {
			switch totals.Recommendation {
			case types.InvoiceStatusPaid:
				inv.InvoiceStatus = types.InvoiceStatusPaid
				inv.PaidAt = &now
			case types.InvoiceStatusPartial:
				inv.InvoiceStatus = types.InvoiceStatusPartial
			}
		}

		inv.UpdatedAt = now
		inv.UpdatedBy = types.GetUserID(ctx)

		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return err
		}

		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("recorded invoice payment",
		"invoice_id", result.ID,
		"method", req.Method,
		"amount", req.Amount,
		"paid_total", result.PaidTotal,
		"status", result.InvoiceStatus,
	)

	return dto.NewInvoiceResponse(result), nil
}

// CancelInvoice cancels the invoice from any non-cancelled state, paid
// included. Money already collected stays on record; cancellation is an audit
// event, not a refund.
func (s *invoiceService) CancelInvoice(ctx context.Context, id string, req *dto.CancelInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var result *invoice.Invoice

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		inv, err := s.InvoiceRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if inv.IsCancelled() {
			return ierr.WithError(invoice.ErrInvalidTransition).
				WithHint("the invoice is already cancelled").
				WithReportableDetails(map[string]any{
					"invoice_id": inv.ID,
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		now := time.Now().UTC()
		inv.InvoiceStatus = types.InvoiceStatusCancelled
		inv.Cancellation = &invoice.Cancellation{
			Reason:      req.Reason,
			CancelledBy: types.GetUserID(ctx),
			CancelledAt: now,
		}
		inv.UpdatedAt = now
		inv.UpdatedBy = types.GetUserID(ctx)

		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return err
		}

		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("cancelled invoice",
		"invoice_id", result.ID,
		"reason", req.Reason,
	)

	return dto.NewInvoiceResponse(result), nil
}

// UpdateNotes edits the free-text fields. Paid and cancelled invoices are
// frozen and reject edits.
func (s *invoiceService) UpdateNotes(ctx context.Context, id string, req *dto.UpdateNotesRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var result *invoice.Invoice

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		inv, err := s.InvoiceRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if !inv.Editable() {
			return ierr.WithError(invoice.ErrInvoiceImmutable).
				WithHintf("cannot edit a %s invoice", inv.InvoiceStatus).
				WithReportableDetails(map[string]any{
					"invoice_id": inv.ID,
					"status":     inv.InvoiceStatus,
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		if req.CustomerNote != nil {
			inv.CustomerNote = *req.CustomerNote
		}
		if req.InternalNote != nil {
			inv.InternalNote = *req.InternalNote
		}
		if req.DiscountReason != nil {
			inv.DiscountReason = *req.DiscountReason
		}
		if req.Terms != nil {
			inv.Terms = *req.Terms
		}

		if err := inv.Validate(); err != nil {
			return err
		}

		inv.UpdatedAt = time.Now().UTC()
		inv.UpdatedBy = types.GetUserID(ctx)

		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return err
		}

		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dto.NewInvoiceResponse(result), nil
}
