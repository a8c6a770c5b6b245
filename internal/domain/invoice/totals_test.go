package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
)

func membershipItem() *LineItem {
	return &LineItem{
		Description:   "Annual membership",
		Quantity:      1,
		UnitPrice:     decimal.NewFromInt(1000),
		DiscountType:  types.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		TaxRate:       decimal.NewFromInt(18),
	}
}

func TestComputeTotalsFullyPaid(t *testing.T) {
	items := []*LineItem{membershipItem()}
	payments := []*PaymentMode{
		{Method: types.PaymentMethodCash, Amount: decimal.NewFromInt(500)},
		{Method: types.PaymentMethodUPI, Amount: decimal.NewFromInt(562)},
	}

	totals, err := ComputeTotals(items, payments)
	assert.NoError(t, err)

	assert.True(t, decimal.NewFromInt(900).Equal(totals.Subtotal))
	assert.True(t, decimal.NewFromInt(162).Equal(totals.TaxTotal))
	assert.True(t, decimal.NewFromInt(1062).Equal(totals.Total))
	assert.True(t, decimal.NewFromInt(1062).Equal(totals.PaidTotal))
	assert.True(t, totals.Pending.IsZero())
	assert.Equal(t, types.InvoiceStatusPaid, totals.Recommendation)
}

func TestComputeTotalsPartiallyPaid(t *testing.T) {
	items := []*LineItem{membershipItem()}
	payments := []*PaymentMode{
		{Method: types.PaymentMethodCash, Amount: decimal.NewFromInt(500)},
	}

	totals, err := ComputeTotals(items, payments)
	assert.NoError(t, err)

	assert.True(t, decimal.NewFromInt(500).Equal(totals.PaidTotal))
	assert.True(t, decimal.NewFromInt(562).Equal(totals.Pending))
	assert.Equal(t, types.InvoiceStatusPartial, totals.Recommendation)
}

func TestComputeTotalsUnpaid(t *testing.T) {
	totals, err := ComputeTotals([]*LineItem{membershipItem()}, nil)
	assert.NoError(t, err)

	assert.True(t, totals.PaidTotal.IsZero())
	assert.True(t, decimal.NewFromInt(1062).Equal(totals.Pending))
	assert.Equal(t, types.InvoiceStatusDraft, totals.Recommendation)
}

func TestComputeTotalsOverpaymentFloorsPendingAtZero(t *testing.T) {
	items := []*LineItem{membershipItem()}
	payments := []*PaymentMode{
		{Method: types.PaymentMethodCash, Amount: decimal.NewFromInt(2000)},
	}

	totals, err := ComputeTotals(items, payments)
	assert.NoError(t, err)

	assert.True(t, decimal.NewFromInt(2000).Equal(totals.PaidTotal))
	assert.True(t, totals.Pending.IsZero(), "pending never goes negative")
	assert.Equal(t, types.InvoiceStatusPaid, totals.Recommendation)
}

func TestComputeTotalsSkipsInactivePaymentEntries(t *testing.T) {
	items := []*LineItem{membershipItem()}
	payments := []*PaymentMode{
		{Method: types.PaymentMethodCash, Amount: decimal.NewFromInt(500)},
		{Method: types.PaymentMethodCard, Amount: decimal.Zero},
		{Method: "", Amount: decimal.NewFromInt(100)},
	}

	totals, err := ComputeTotals(items, payments)
	assert.NoError(t, err)

	assert.True(t, decimal.NewFromInt(500).Equal(totals.PaidTotal), "blank and zero entries are excluded")
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	totals, err := ComputeTotals(nil, nil)
	assert.Nil(t, totals)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyItems)
	assert.True(t, ierr.IsValidation(err))
}

func TestComputeTotalsZeroTotalNeverRecommendsPaid(t *testing.T) {
	items := []*LineItem{
		{
			Description:   "Comped pass",
			Quantity:      1,
			UnitPrice:     decimal.NewFromInt(100),
			DiscountType:  types.DiscountTypeFlat,
			DiscountValue: decimal.NewFromInt(100),
		},
	}

	totals, err := ComputeTotals(items, nil)
	assert.NoError(t, err)

	assert.True(t, totals.Total.IsZero())
	assert.Equal(t, types.InvoiceStatusDraft, totals.Recommendation)
}

func TestComputeTotalsIsDeterministic(t *testing.T) {
	items := []*LineItem{
		membershipItem(),
		{
			Description:   "Protein shake",
			Quantity:      3,
			UnitPrice:     decimal.RequireFromString("99.99"),
			DiscountType:  types.DiscountTypePercentage,
			DiscountValue: decimal.RequireFromString("12.5"),
			TaxRate:       decimal.NewFromInt(18),
		},
	}
	payments := []*PaymentMode{
		{Method: types.PaymentMethodCash, Amount: decimal.NewFromInt(700)},
	}

	first, err := ComputeTotals(items, payments)
	assert.NoError(t, err)
	second, err := ComputeTotals(items, payments)
	assert.NoError(t, err)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.TaxTotal.Equal(second.TaxTotal))
	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.PaidTotal.Equal(second.PaidTotal))
	assert.True(t, first.Pending.Equal(second.Pending))
	assert.Equal(t, first.Recommendation, second.Recommendation)
}
