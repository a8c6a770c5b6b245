package dto

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
)

func validCreateRequest() *CreateInvoiceRequest {
	return &CreateInvoiceRequest{
		MemberID: "mem_test",
		BranchID: "branch_test",
		Kind:     types.InvoiceKindService,
		Items: []CreateLineItemRequest{
			{
				Description: "Annual membership",
				UnitPrice:   decimal.NewFromInt(1000),
			},
		},
	}
}

func TestCreateInvoiceRequestValidate(t *testing.T) {
	assert.NoError(t, validCreateRequest().Validate())
}

func TestCreateInvoiceRequestRejectsMissingItems(t *testing.T) {
	req := validCreateRequest()
	req.Items = nil
	assert.True(t, ierr.IsValidation(req.Validate()))
}

func TestCreateInvoiceRequestRejectsUnknownKind(t *testing.T) {
	req := validCreateRequest()
	req.Kind = types.InvoiceKind("subscription")
	assert.True(t, ierr.IsValidation(req.Validate()))
}

func TestCreateInvoiceRequestRejectsUnknownDiscountType(t *testing.T) {
	req := validCreateRequest()
	req.Items[0].DiscountType = lo.ToPtr(types.DiscountType("promo"))

	err := req.Validate()
	assert.Error(t, err, "the boundary rejects discount types outside the closed union")
	assert.True(t, ierr.IsValidation(err))
}

func TestCreateInvoiceRequestRejectsNegativeMoney(t *testing.T) {
	negPrice := validCreateRequest()
	negPrice.Items[0].UnitPrice = decimal.NewFromInt(-10)
	assert.True(t, ierr.IsValidation(negPrice.Validate()))

	negDiscount := validCreateRequest()
	negDiscount.Items[0].DiscountValue = lo.ToPtr(decimal.NewFromInt(-5))
	assert.True(t, ierr.IsValidation(negDiscount.Validate()))

	negTax := validCreateRequest()
	negTax.Items[0].TaxRate = lo.ToPtr(decimal.NewFromInt(-18))
	assert.True(t, ierr.IsValidation(negTax.Validate()))

	negPayment := validCreateRequest()
	negPayment.PaymentModes = []PaymentModeRequest{
		{Method: types.PaymentMethodCash, Amount: decimal.NewFromInt(-100)},
	}
	assert.True(t, ierr.IsValidation(negPayment.Validate()))
}

func TestCreateInvoiceRequestRejectsBadValidityWindow(t *testing.T) {
	start := time.Now().UTC()
	end := start.Add(-24 * time.Hour)

	req := validCreateRequest()
	req.Items[0].StartDate = &start
	req.Items[0].ExpiryDate = &end
	assert.True(t, ierr.IsValidation(req.Validate()))
}

func TestCreateInvoiceRequestRejectsOverlongNotes(t *testing.T) {
	req := validCreateRequest()
	note := make([]byte, types.NoteMaxLength+1)
	for i := range note {
		note[i] = 'x'
	}
	req.CustomerNote = string(note)
	assert.True(t, ierr.IsValidation(req.Validate()))
}

func TestPaymentModeRequestRejectsUnknownMethod(t *testing.T) {
	req := &PaymentModeRequest{Method: types.PaymentMethod("crypto"), Amount: decimal.NewFromInt(10)}
	assert.True(t, ierr.IsValidation(req.Validate()))
}

func TestToInvoiceDefaults(t *testing.T) {
	req := validCreateRequest()
	inv := req.ToInvoice(context.Background())

	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, types.InvoiceStatusDraft, inv.InvoiceStatus)
	assert.Nil(t, inv.InvoiceNumber)
	assert.Equal(t, 1, inv.Version)
	assert.Len(t, inv.Items, 1)
	assert.Equal(t, int64(1), inv.Items[0].Quantity)
	assert.Equal(t, types.DiscountTypePercentage, inv.Items[0].DiscountType, "discount type defaults to percentage")
}

func TestNewInvoiceResponseRoundsAmounts(t *testing.T) {
	req := validCreateRequest()
	req.Items[0].UnitPrice = decimal.RequireFromString("99.99")
	req.Items[0].Quantity = lo.ToPtr(int64(3))
	req.Items[0].DiscountType = lo.ToPtr(types.DiscountTypePercentage)
	req.Items[0].DiscountValue = lo.ToPtr(decimal.RequireFromString("12.5"))
	req.Items[0].TaxRate = lo.ToPtr(decimal.NewFromInt(18))

	inv := req.ToInvoice(context.Background())
	_, err := inv.Recalculate()
	assert.NoError(t, err)

	resp := NewInvoiceResponse(inv)

	// stored values stay exact; the response view rounds to 2 decimals
	assert.True(t, decimal.RequireFromString("262.47375").Equal(inv.Subtotal))
	assert.True(t, decimal.RequireFromString("262.47").Equal(resp.Subtotal))
	assert.True(t, decimal.RequireFromString("47.25").Equal(resp.TaxTotal))
	assert.True(t, decimal.RequireFromString("309.72").Equal(resp.Total))
}
