package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gymflow/gymflow/internal/types"
)

func TestLineItemComputePercentageDiscount(t *testing.T) {
	item := &LineItem{
		Description:   "Annual membership",
		Quantity:      1,
		UnitPrice:     decimal.NewFromInt(1000),
		DiscountType:  types.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		TaxRate:       decimal.NewFromInt(18),
	}

	item.Compute()

	assert.True(t, decimal.NewFromInt(1000).Equal(item.Amount), "amount = %s", item.Amount)
	assert.True(t, decimal.NewFromInt(100).Equal(item.DiscountAmount), "discount = %s", item.DiscountAmount)
	assert.True(t, decimal.NewFromInt(900).Equal(item.Net()), "net = %s", item.Net())
	assert.True(t, decimal.NewFromInt(162).Equal(item.TaxAmount), "tax = %s", item.TaxAmount)
	assert.True(t, decimal.NewFromInt(1062).Equal(item.Total), "total = %s", item.Total)
}

func TestLineItemComputeQuantityMultiplies(t *testing.T) {
	item := &LineItem{
		Description: "PT session",
		Quantity:    4,
		UnitPrice:   decimal.NewFromInt(250),
	}

	item.Compute()

	assert.True(t, decimal.NewFromInt(1000).Equal(item.Amount))
	assert.True(t, item.DiscountAmount.IsZero())
	assert.True(t, item.TaxAmount.IsZero())
	assert.True(t, decimal.NewFromInt(1000).Equal(item.Total))
}

func TestLineItemComputeFlatDiscountCappedAtAmount(t *testing.T) {
	item := &LineItem{
		Description:   "Day pass",
		Quantity:      1,
		UnitPrice:     decimal.NewFromInt(500),
		DiscountType:  types.DiscountTypeFlat,
		DiscountValue: decimal.NewFromInt(800),
		TaxRate:       decimal.NewFromInt(18),
	}

	item.Compute()

	assert.True(t, decimal.NewFromInt(500).Equal(item.DiscountAmount), "flat discount caps at the line amount")
	assert.True(t, item.Net().IsZero())
	assert.True(t, item.TaxAmount.IsZero(), "tax applies to the discounted amount, which is zero")
	assert.True(t, item.Total.IsZero())
}

func TestLineItemComputeClampsNegativeInputs(t *testing.T) {
	item := &LineItem{
		Description:   "Corrupted row",
		Quantity:      -2,
		UnitPrice:     decimal.NewFromInt(-100),
		DiscountType:  types.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(-10),
		TaxRate:       decimal.NewFromInt(-18),
	}

	item.Compute()

	assert.True(t, item.Amount.IsZero())
	assert.True(t, item.DiscountAmount.IsZero())
	assert.True(t, item.TaxAmount.IsZero())
	assert.True(t, item.Total.IsZero())
}

func TestLineItemComputeUnknownDiscountTypeActsAsPercentage(t *testing.T) {
	item := &LineItem{
		Description:   "Legacy row",
		Quantity:      1,
		UnitPrice:     decimal.NewFromInt(1000),
		DiscountType:  types.DiscountType("promo"),
		DiscountValue: decimal.NewFromInt(10),
	}

	item.Compute()

	assert.True(t, decimal.NewFromInt(100).Equal(item.DiscountAmount))
}

func TestLineItemComputeKeepsExactPrecision(t *testing.T) {
	item := &LineItem{
		Description:   "Protein shake",
		Quantity:      3,
		UnitPrice:     decimal.RequireFromString("99.99"),
		DiscountType:  types.DiscountTypePercentage,
		DiscountValue: decimal.RequireFromString("12.5"),
		TaxRate:       decimal.NewFromInt(18),
	}

	item.Compute()

	assert.True(t, decimal.RequireFromString("299.97").Equal(item.Amount))
	assert.True(t, decimal.RequireFromString("37.49625").Equal(item.DiscountAmount))
	assert.True(t, decimal.RequireFromString("262.47375").Equal(item.Net()))
	assert.True(t, decimal.RequireFromString("47.245275").Equal(item.TaxAmount))
	assert.True(t, decimal.RequireFromString("309.719025").Equal(item.Total))
}

func TestLineItemComputeIsIdempotent(t *testing.T) {
	item := &LineItem{
		Description:   "Membership",
		Quantity:      2,
		UnitPrice:     decimal.RequireFromString("1499.50"),
		DiscountType:  types.DiscountTypeFlat,
		DiscountValue: decimal.NewFromInt(200),
		TaxRate:       decimal.NewFromInt(18),
	}

	item.Compute()
	first := *item
	item.Compute()

	assert.True(t, first.Amount.Equal(item.Amount))
	assert.True(t, first.DiscountAmount.Equal(item.DiscountAmount))
	assert.True(t, first.TaxAmount.Equal(item.TaxAmount))
	assert.True(t, first.Total.Equal(item.Total))
}

func TestLineItemValidate(t *testing.T) {
	valid := &LineItem{
		Description: "Membership",
		Quantity:    1,
		UnitPrice:   decimal.NewFromInt(1000),
	}
	assert.NoError(t, valid.Validate())

	noDescription := &LineItem{Quantity: 1, UnitPrice: decimal.NewFromInt(10)}
	assert.Error(t, noDescription.Validate())

	zeroQuantity := &LineItem{Description: "x", Quantity: 0, UnitPrice: decimal.NewFromInt(10)}
	assert.Error(t, zeroQuantity.Validate())

	negativePrice := &LineItem{Description: "x", Quantity: 1, UnitPrice: decimal.NewFromInt(-10)}
	assert.Error(t, negativePrice.Validate())

	badDiscountType := &LineItem{
		Description:  "x",
		Quantity:     1,
		UnitPrice:    decimal.NewFromInt(10),
		DiscountType: types.DiscountType("promo"),
	}
	assert.Error(t, badDiscountType.Validate())
}
