// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/surfshop-backend/internal/pkg/daterange"
)

// Kind tags a line item as a standard product or a dated rental
type Kind string

const (
	KindStandard Kind = "standard"
	KindRental   Kind = "rental"
)

// DefaultVariant is used when a standard item has no selected variant
const DefaultVariant = "default"

// LineItem is one entry in a cart. DateRange is only meaningful for rentals.
type LineItem struct {
	LineItemID   string               `json:"line_item_id"`
	ProductID    string               `json:"product_id"`
	Kind         Kind                 `json:"kind"`
	Name         string               `json:"name,omitempty"`
	UnitPrice    decimal.Decimal      `json:"unit_price"`
	Quantity     int                  `json:"quantity"`
	Variant      string               `json:"variant,omitempty"`
	DateRange    *daterange.DateRange `json:"date_range,omitempty"`
	StockCeiling *int                 `json:"stock_ceiling,omitempty"`
	AddedAt      time.Time            `json:"added_at"`
}

// ComputeID derives the merge key: product + variant for standard items,
// product + dates for rentals.
func (li LineItem) ComputeID() string {
	if li.Kind == KindRental {
		key := "-"
		if li.DateRange != nil {
			key = li.DateRange.Key()
		}
		return fmt.Sprintf("rental-%s-%s", li.ProductID, key)
	}
	return fmt.Sprintf("product-%s-%s", li.ProductID, li.variantOrDefault())
}

func (li LineItem) variantOrDefault() string {
	if li.Variant == "" {
		return DefaultVariant
	}
	return li.Variant
}

// Days is the billable rental length; standard items always report 1
func (li LineItem) Days() int {
	if li.Kind != KindRental || li.DateRange == nil {
		return 1
	}
	return li.DateRange.Days()
}

// LineTotal prices a single line item.
// Rentals bill unitPrice x days x quantity with a one day minimum.
func LineTotal(li LineItem) decimal.Decimal {
	qty := decimal.NewFromInt(int64(quantityOrDefault(li.Quantity)))

	switch li.Kind {
	case KindRental:
		days := decimal.NewFromInt(int64(li.Days()))
		return li.UnitPrice.Mul(days).Mul(qty)
	case KindStandard:
		return li.UnitPrice.Mul(qty)
	default:
		return decimal.Zero
	}
}

func quantityOrDefault(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}

// Snapshot is the read model handed to views and checkout
type Snapshot struct {
	Items          []LineItem      `json:"items"`
	TotalItemCount int             `json:"total_item_count"`
	TotalPrice     decimal.Decimal `json:"total_price"`
}

// NewSnapshot computes derived totals over a copy of items
func NewSnapshot(items []LineItem) Snapshot {
	out := make([]LineItem, len(items))
	copy(out, items)

	snap := Snapshot{Items: out, TotalPrice: decimal.Zero}
	for _, item := range out {
		snap.TotalItemCount += quantityOrDefault(item.Quantity)
		snap.TotalPrice = snap.TotalPrice.Add(LineTotal(item))
	}
	return snap
}

// AddStatus is the outcome of an add-to-cart attempt
type AddStatus string

const (
	AddStatusAppended AddStatus = "appended"
	AddStatusMerged   AddStatus = "merged"
	AddStatusRejected AddStatus = "rejected" // stock ceiling exceeded
	AddStatusInvalid  AddStatus = "invalid"  // malformed candidate
)

// AddResult reports what AddItem did. Rejected and Invalid leave the cart
// untouched and carry a Warning for the caller to surface.
type AddResult struct {
	Status     AddStatus `json:"status"`
	LineItemID string    `json:"line_item_id,omitempty"`
	Quantity   int       `json:"quantity"`
	Warning    string    `json:"warning,omitempty"`
}

// OK reports whether the cart changed
func (r AddResult) OK() bool {
	return r.Status == AddStatusAppended || r.Status == AddStatusMerged
}
