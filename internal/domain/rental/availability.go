// internal/domain/rental/availability.go
package rental

import "github.com/your-org/surfshop-backend/internal/pkg/daterange"

// Reason explains why an asset is unavailable. Only the first matching
// reason is reported, in the order out_of_stock > repair/retired > booked.
type Reason string

const (
	ReasonOutOfStock Reason = "out_of_stock"
	ReasonRepair     Reason = "repair"
	ReasonRetired    Reason = "retired"
	ReasonBooked     Reason = "booked"
)

// Availability is the computed state of one asset for a date range
type Availability struct {
	AssetID        string `json:"asset_id"`
	IsAvailable    bool   `json:"is_available"`
	RemainingStock int    `json:"remaining_stock"`
	Reason         Reason `json:"reason,omitempty"`
}

// Resolve computes availability for every asset over want, in asset order
func Resolve(assets []Asset, bookings []Booking, want daterange.DateRange) []Availability {
	byAsset := make(map[string][]Booking, len(assets))
	for _, b := range bookings {
		byAsset[b.AssetID] = append(byAsset[b.AssetID], b)
	}

	results := make([]Availability, 0, len(assets))
	for _, asset := range assets {
		results = append(results, ResolveOne(asset, byAsset[asset.ID], want))
	}
	return results
}

// ResolveOne computes availability for a single asset. Bookings for other
// assets are ignored, so callers may pass an unfiltered list.
func ResolveOne(asset Asset, bookings []Booking, want daterange.DateRange) Availability {
	result := Availability{AssetID: asset.ID}

	if asset.Stock <= 0 {
		result.Reason = ReasonOutOfStock
		return result
	}
	if asset.Status != AssetStatusActive {
		result.Reason = ReasonRepair
		if asset.Status == AssetStatusRetired {
			result.Reason = ReasonRetired
		}
		return result
	}

	remaining := asset.Stock - CountOverlaps(asset.ID, bookings, want)
	if remaining <= 0 {
		result.Reason = ReasonBooked
		return result
	}

	result.IsAvailable = true
	result.RemainingStock = remaining
	return result
}

// CountOverlaps counts open bookings of assetID that conflict with want.
// Bookings with missing or malformed dates never conflict.
func CountOverlaps(assetID string, bookings []Booking, want daterange.DateRange) int {
	count := 0
	for _, b := range bookings {
		if b.AssetID != assetID || b.IsClosed() {
			continue
		}
		if want.Overlaps(b.DateRange) {
			count++
		}
	}
	return count
}
