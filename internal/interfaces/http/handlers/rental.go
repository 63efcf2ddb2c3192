// internal/interfaces/http/handlers/rental.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/surfshop-backend/internal/domain/rental"
	"github.com/your-org/surfshop-backend/internal/pkg/daterange"
)

// FleetService is the rental fleet API behind the rental endpoints
type FleetService interface {
	ListAssets(ctx context.Context, filter rental.AssetFilter) ([]rental.Asset, error)
	GetAsset(ctx context.Context, id string) (*rental.Asset, error)
	CreateAsset(ctx context.Context, req *rental.AssetRequest) (*rental.Asset, error)
	UpdateAsset(ctx context.Context, id string, req *rental.AssetRequest) (*rental.Asset, error)
	CycleStatus(ctx context.Context, id string) (*rental.Asset, error)
	DeleteAsset(ctx context.Context, id string) error
	ListBookings(ctx context.Context, filter rental.BookingFilter) ([]rental.Booking, error)
	SetBookingStatus(ctx context.Context, id string, status rental.BookingStatus) error
	DeleteBookings(ctx context.Context, ids []string) (int64, error)
	Availability(ctx context.Context, want daterange.DateRange, category string) ([]rental.Listing, error)
	CheckAsset(ctx context.Context, id string, want daterange.DateRange) (*rental.Asset, rental.Availability, error)
}

// RentalHandler handles fleet, availability and booking endpoints
type RentalHandler struct {
	fleet  FleetService
	logger logrus.FieldLogger
}

// NewRentalHandler creates a new rental handler
func NewRentalHandler(fleet FleetService, logger logrus.FieldLogger) *RentalHandler {
	return &RentalHandler{
		fleet:  fleet,
		logger: logger,
	}
}

// rangeQuery reads start/end query parameters. Both absent yields the
// zero range; a half-given or malformed range is a client error.
func rangeQuery(c *gin.Context) (daterange.DateRange, bool) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" && end == "" {
		return daterange.DateRange{}, true
	}

	r, err := daterange.Parse(start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date range",
			"details": err.Error(),
		})
		return daterange.DateRange{}, false
	}
	return r, true
}

// GetRentals handles GET /rentals. Dates are optional; without them only
// stock and status decide availability.
func (h *RentalHandler) GetRentals(c *gin.Context) {
	want, ok := rangeQuery(c)
	if !ok {
		return
	}

	h.respondAvailability(c, want)
}

// GetAvailability handles GET /rentals/availability?start=&end=&category=
func (h *RentalHandler) GetAvailability(c *gin.Context) {
	want, ok := rangeQuery(c)
	if !ok {
		return
	}
	if want.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "start and end dates are required",
		})
		return
	}

	h.respondAvailability(c, want)
}

func (h *RentalHandler) respondAvailability(c *gin.Context, want daterange.DateRange) {
	listings, err := h.fleet.Availability(c.Request.Context(), want, c.Query("category"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to resolve availability")
		return
	}

	resp := gin.H{
		"message": "Rentals retrieved successfully",
		"data":    listings,
	}
	if !want.IsZero() {
		resp["date_range"] = want
	}
	c.JSON(http.StatusOK, resp)
}

// GetRental handles GET /rentals/:id
func (h *RentalHandler) GetRental(c *gin.Context) {
	want, ok := rangeQuery(c)
	if !ok {
		return
	}

	asset, availability, err := h.fleet.CheckAsset(c.Request.Context(), c.Param("id"), want)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve rental")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rental retrieved successfully",
		"data":    rental.Listing{Asset: *asset, Availability: availability},
	})
}

// AdminGetAssets handles GET /admin/rentals
func (h *RentalHandler) AdminGetAssets(c *gin.Context) {
	filter := rental.AssetFilter{
		Category: c.Query("category"),
		Status:   rental.AssetStatus(c.Query("status")),
	}

	assets, err := h.fleet.ListAssets(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve fleet")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Fleet retrieved successfully",
		"data":    assets,
	})
}

// CreateAsset handles POST /admin/rentals
func (h *RentalHandler) CreateAsset(c *gin.Context) {
	var req rental.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	asset, err := h.fleet.CreateAsset(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create rental")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Rental created successfully",
		"data":    asset,
	})
}

// UpdateAsset handles PUT /admin/rentals/:id
func (h *RentalHandler) UpdateAsset(c *gin.Context) {
	var req rental.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	asset, err := h.fleet.UpdateAsset(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update rental")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rental updated successfully",
		"data":    asset,
	})
}

// CycleStatus handles POST /admin/rentals/:id/cycle-status
func (h *RentalHandler) CycleStatus(c *gin.Context) {
	asset, err := h.fleet.CycleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to change rental status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rental status updated successfully",
		"data":    asset,
	})
}

// DeleteAsset handles DELETE /admin/rentals/:id
func (h *RentalHandler) DeleteAsset(c *gin.Context) {
	if err := h.fleet.DeleteAsset(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete rental")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rental deleted successfully",
	})
}

// GetBookings handles GET /admin/bookings?status=&asset_id=
func (h *RentalHandler) GetBookings(c *gin.Context) {
	filter := rental.BookingFilter{
		AssetID: c.Query("asset_id"),
		Status:  rental.BookingStatus(c.Query("status")),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be confirmed or returned"})
		return
	}

	bookings, err := h.fleet.ListBookings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bookings retrieved successfully",
		"data":    bookings,
	})
}

// bookingStatusRequest is the body of PATCH /admin/bookings/:id/status
type bookingStatusRequest struct {
	Status rental.BookingStatus `json:"status" binding:"required"`
}

// UpdateBookingStatus handles PATCH /admin/bookings/:id/status
func (h *RentalHandler) UpdateBookingStatus(c *gin.Context) {
	var req bookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.fleet.SetBookingStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, h.logger, err, "Failed to update booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking updated successfully",
		"data":    gin.H{"id": c.Param("id"), "status": req.Status},
	})
}

// DeleteBooking handles DELETE /admin/bookings/:id
func (h *RentalHandler) DeleteBooking(c *gin.Context) {
	if _, err := h.fleet.DeleteBookings(c.Request.Context(), []string{c.Param("id")}); err != nil {
		respondError(c, h.logger, err, "Failed to delete booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking deleted successfully",
	})
}

// BatchDeleteBookings handles POST /admin/bookings/batch-delete
func (h *RentalHandler) BatchDeleteBookings(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	deleted, err := h.fleet.DeleteBookings(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, h.logger, err, "Failed to delete bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bookings deleted successfully",
		"data":    gin.H{"deleted": deleted},
	})
}
