package testutil

import (
	"context"

	"github.com/samber/lo"

	"github.com/gymflow/gymflow/internal/domain/invoice"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if err := s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv)); err != nil {
		return ierr.WithError(err).
			WithHint("an invoice with this ID already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

// Get returns a copy so callers mutating the result cannot corrupt the store.
// Failed updates must leave the stored invoice untouched.
func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(invoice.ErrInvoiceNotFound).
			WithHintf("invoice with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	current, err := s.InMemoryStore.Get(ctx, inv.ID)
	if err != nil {
		return ierr.WithError(invoice.ErrInvoiceNotFound).
			WithHintf("invoice with ID %s was not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}

	if current.Version != inv.Version {
		return ierr.NewError("invoice was modified concurrently").
			WithHint("the invoice was updated by someone else, please reload and retry").
			Mark(ierr.ErrVersionConflict)
	}

	updated := copyInvoice(inv)
	updated.Version = inv.Version + 1
	if err := s.InMemoryStore.Update(ctx, inv.ID, updated); err != nil {
		return err
	}
	inv.Version = updated.Version
	return nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	invoices, err := s.InMemoryStore.List(ctx, filter, invoiceFilterFn, invoiceSortFn)
	if err != nil {
		return nil, err
	}

	result := make([]*invoice.Invoice, len(invoices))
	for i, inv := range invoices {
		result[i] = copyInvoice(inv)
	}
	return result, nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, invoiceFilterFn)
}

func invoiceFilterFn(ctx context.Context, inv *invoice.Invoice, filter interface{}) bool {
	f, ok := filter.(*types.InvoiceFilter)
	if !ok {
		return true
	}

	if inv.Status == types.StatusDeleted {
		return false
	}

	if len(f.InvoiceIDs) > 0 && !lo.Contains(f.InvoiceIDs, inv.ID) {
		return false
	}

	if f.MemberID != "" && inv.MemberID != f.MemberID {
		return false
	}

	if f.BranchID != "" && inv.BranchID != f.BranchID {
		return false
	}

	if f.InvoiceKind != "" && inv.Kind != f.InvoiceKind {
		return false
	}

	if len(f.InvoiceStatus) > 0 && !lo.Contains(f.InvoiceStatus, inv.InvoiceStatus) {
		return false
	}

	if f.IsProForma != nil && inv.IsProForma != *f.IsProForma {
		return false
	}

	if f.TimeRangeFilter != nil {
		if f.StartTime != nil && inv.CreatedAt.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && !inv.CreatedAt.Before(*f.EndTime) {
			return false
		}
	}

	return true
}

func invoiceSortFn(i, j *invoice.Invoice) bool {
	return i.CreatedAt.After(j.CreatedAt)
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	cp := *inv

	if inv.Cancellation != nil {
		c := *inv.Cancellation
		cp.Cancellation = &c
	}

	cp.Items = make([]*invoice.LineItem, len(inv.Items))
	for i, item := range inv.Items {
		it := *item
		cp.Items[i] = &it
	}

	cp.PaymentModes = make([]*invoice.PaymentMode, len(inv.PaymentModes))
	for i, pm := range inv.PaymentModes {
		p := *pm
		cp.PaymentModes[i] = &p
	}

	return &cp
}
