package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/surfshop-backend/internal/pkg/daterange"
)

func TestLineTotal(t *testing.T) {
	rate := decimal.NewFromInt(45)

	sameDay := LineItem{Kind: KindRental, UnitPrice: rate, Quantity: 2, DateRange: rangeOf(t, "2024-06-01", "2024-06-01")}
	assert.True(t, decimal.NewFromInt(90).Equal(LineTotal(sameDay)), "same-day rental bills one day per unit")

	threeDays := LineItem{Kind: KindRental, UnitPrice: rate, Quantity: 1, DateRange: rangeOf(t, "2024-06-01", "2024-06-04")}
	assert.True(t, decimal.NewFromInt(135).Equal(LineTotal(threeDays)))

	noDates := LineItem{Kind: KindRental, UnitPrice: rate, Quantity: 1}
	assert.True(t, rate.Equal(LineTotal(noDates)))

	broken := LineItem{Kind: KindRental, UnitPrice: rate, Quantity: 1, DateRange: &daterange.DateRange{}}
	assert.True(t, rate.Equal(LineTotal(broken)))

	standard := LineItem{Kind: KindStandard, UnitPrice: decimal.RequireFromString("32.50"), Quantity: 2}
	assert.True(t, decimal.NewFromInt(65).Equal(LineTotal(standard)))

	unknown := LineItem{Kind: "gift", UnitPrice: rate, Quantity: 1}
	assert.True(t, LineTotal(unknown).IsZero())
}

func TestComputeID(t *testing.T) {
	assert.Equal(t, "product-p1-default", LineItem{ProductID: "p1", Kind: KindStandard}.ComputeID())
	assert.Equal(t, "product-p1-XL", LineItem{ProductID: "p1", Kind: KindStandard, Variant: "XL"}.ComputeID())
	assert.Equal(t, "rental-b1--", LineItem{ProductID: "b1", Kind: KindRental}.ComputeID())
	assert.Equal(t, "rental-b1-2024-06-01-2024-06-02",
		LineItem{ProductID: "b1", Kind: KindRental, DateRange: rangeOf(t, "2024-06-01", "2024-06-02")}.ComputeID())
}

func TestNewSnapshot_CopiesItems(t *testing.T) {
	items := []LineItem{tee(2)}
	snap := NewSnapshot(items)
	items[0].Quantity = 99

	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.Equal(t, 2, snap.TotalItemCount)
	assert.True(t, decimal.NewFromInt(64).Equal(snap.TotalPrice))
}
