package rental

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/surfshop-backend/internal/pkg/daterange"
)

func mustRange(t *testing.T, start, end string) daterange.DateRange {
	t.Helper()
	r, err := daterange.Parse(start, end)
	require.NoError(t, err)
	return r
}

func board(stock int, status AssetStatus) Asset {
	return Asset{ID: "board-1", Name: "7'2 Egg", Category: "surfboards", Stock: stock, Status: status}
}

func booking(t *testing.T, assetID, start, end string, status BookingStatus) Booking {
	return Booking{AssetID: assetID, DateRange: mustRange(t, start, end), Status: status}
}

func TestResolveOne_PartialOverlapLeavesRemainingStock(t *testing.T) {
	bookings := []Booking{booking(t, "board-1", "2024-06-01", "2024-06-03", BookingStatusConfirmed)}

	got := ResolveOne(board(2, AssetStatusActive), bookings, mustRange(t, "2024-06-02", "2024-06-04"))

	assert.True(t, got.IsAvailable)
	assert.Equal(t, 1, got.RemainingStock)
	assert.Empty(t, got.Reason)
}

func TestResolveOne_BoundaryTouchIsNotAConflict(t *testing.T) {
	bookings := []Booking{booking(t, "board-1", "2024-06-01", "2024-06-03", BookingStatusConfirmed)}

	got := ResolveOne(board(2, AssetStatusActive), bookings, mustRange(t, "2024-06-03", "2024-06-05"))

	assert.True(t, got.IsAvailable)
	assert.Equal(t, 2, got.RemainingStock)
}

func TestResolveOne_StatusShortCircuits(t *testing.T) {
	want := mustRange(t, "2024-06-02", "2024-06-04")

	repair := ResolveOne(board(3, AssetStatusRepair), nil, want)
	assert.False(t, repair.IsAvailable)
	assert.Equal(t, ReasonRepair, repair.Reason)
	assert.Zero(t, repair.RemainingStock)

	retired := ResolveOne(board(3, AssetStatusRetired), nil, want)
	assert.Equal(t, ReasonRetired, retired.Reason)
}

func TestResolveOne_StockCheckWinsOverStatus(t *testing.T) {
	got := ResolveOne(board(0, AssetStatusRepair), nil, mustRange(t, "2024-06-02", "2024-06-04"))

	assert.False(t, got.IsAvailable)
	assert.Equal(t, ReasonOutOfStock, got.Reason)
}

func TestResolveOne_FullyBooked(t *testing.T) {
	bookings := []Booking{
		booking(t, "board-1", "2024-06-01", "2024-06-03", BookingStatusConfirmed),
		booking(t, "board-1", "2024-06-02", "2024-06-06", BookingStatusConfirmed),
	}

	got := ResolveOne(board(2, AssetStatusActive), bookings, mustRange(t, "2024-06-02", "2024-06-03"))

	assert.False(t, got.IsAvailable)
	assert.Equal(t, ReasonBooked, got.Reason)
	assert.Zero(t, got.RemainingStock)
}

func TestResolveOne_IgnoresReturnedForeignAndMalformedBookings(t *testing.T) {
	bookings := []Booking{
		booking(t, "board-1", "2024-06-01", "2024-06-05", BookingStatusReturned),
		booking(t, "board-2", "2024-06-01", "2024-06-05", BookingStatusConfirmed),
		{AssetID: "board-1", Status: BookingStatusConfirmed},
	}

	got := ResolveOne(board(1, AssetStatusActive), bookings, mustRange(t, "2024-06-02", "2024-06-03"))

	assert.True(t, got.IsAvailable)
	assert.Equal(t, 1, got.RemainingStock)
}

func TestResolveOne_MissingQueryRangeUsesStockOnly(t *testing.T) {
	bookings := []Booking{booking(t, "board-1", "2024-06-01", "2024-06-05", BookingStatusConfirmed)}

	got := ResolveOne(board(1, AssetStatusActive), bookings, daterange.DateRange{})

	assert.True(t, got.IsAvailable)
	assert.Equal(t, 1, got.RemainingStock)
}

func TestResolve_PreservesAssetOrder(t *testing.T) {
	assets := []Asset{
		{ID: "a", Stock: 1, Status: AssetStatusActive},
		{ID: "b", Stock: 0, Status: AssetStatusActive},
		{ID: "c", Stock: 1, Status: AssetStatusActive},
	}
	bookings := []Booking{booking(t, "c", "2024-06-01", "2024-06-10", BookingStatusConfirmed)}

	got := Resolve(assets, bookings, mustRange(t, "2024-06-02", "2024-06-04"))

	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].AssetID)
	assert.True(t, got[0].IsAvailable)
	assert.Equal(t, ReasonOutOfStock, got[1].Reason)
	assert.Equal(t, ReasonBooked, got[2].Reason)
}

func TestAssetStatus_Next(t *testing.T) {
	assert.Equal(t, AssetStatusRepair, AssetStatusActive.Next())
	assert.Equal(t, AssetStatusRetired, AssetStatusRepair.Next())
	assert.Equal(t, AssetStatusActive, AssetStatusRetired.Next())
	assert.Equal(t, AssetStatusActive, AssetStatus("lost").Next())
}

func TestBooking_UnmarshalAcceptsRentalID(t *testing.T) {
	var b Booking
	require.NoError(t, b.UnmarshalJSON([]byte(`{"rental_id":"board-9","date_range":{"start":"2024-06-01","end":"2024-06-02"},"status":"confirmed"}`)))
	assert.Equal(t, "board-9", b.AssetID)
	assert.Equal(t, "2024-06-01", b.DateRange.Start.Format(daterange.Layout))

	var preferred Booking
	require.NoError(t, preferred.UnmarshalJSON([]byte(`{"asset_id":"a","rental_id":"b"}`)))
	assert.Equal(t, "a", preferred.AssetID)
}
