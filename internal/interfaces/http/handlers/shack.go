// internal/interfaces/http/handlers/shack.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/surfshop-backend/internal/domain/property"
)

// ShackService is the listing and inquiry API of the surf shack
type ShackService interface {
	GetListing(ctx context.Context) (*property.Property, error)
	UpdateListing(ctx context.Context, req *property.ListingRequest) (*property.Property, error)
	SubmitInquiry(ctx context.Context, req *property.InquiryRequest) (*property.Inquiry, error)
	ListInquiries(ctx context.Context, status property.InquiryStatus) ([]property.Inquiry, error)
	ToggleInquiryStatus(ctx context.Context, id string) (*property.Inquiry, error)
	DeleteInquiry(ctx context.Context, id string) error
}

// ShackHandler handles the vacation-rental listing endpoints
type ShackHandler struct {
	shack  ShackService
	logger logrus.FieldLogger
}

// NewShackHandler creates a new shack handler
func NewShackHandler(shack ShackService, logger logrus.FieldLogger) *ShackHandler {
	return &ShackHandler{
		shack:  shack,
		logger: logger,
	}
}

// GetListing handles GET /shack
func (h *ShackHandler) GetListing(c *gin.Context) {
	listing, err := h.shack.GetListing(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve listing")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Listing retrieved successfully",
		"data":    listing,
	})
}

// SubmitInquiry handles POST /shack/inquiries
func (h *ShackHandler) SubmitInquiry(c *gin.Context) {
	var req property.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	inquiry, err := h.shack.SubmitInquiry(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to submit inquiry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Inquiry received, we will be in touch soon",
		"data":    inquiry,
	})
}

// UpdateListing handles PUT /admin/shack
func (h *ShackHandler) UpdateListing(c *gin.Context) {
	var req property.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	listing, err := h.shack.UpdateListing(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update listing")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Listing updated successfully",
		"data":    listing,
	})
}

// GetInquiries handles GET /admin/inquiries?status=
func (h *ShackHandler) GetInquiries(c *gin.Context) {
	status := property.InquiryStatus(c.Query("status"))
	if status != "" && status != property.InquiryStatusNew && status != property.InquiryStatusContacted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be new or contacted"})
		return
	}

	inquiries, err := h.shack.ListInquiries(c.Request.Context(), status)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve inquiries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inquiries retrieved successfully",
		"data":    inquiries,
	})
}

// ToggleInquiry handles PATCH /admin/inquiries/:id/toggle
func (h *ShackHandler) ToggleInquiry(c *gin.Context) {
	inquiry, err := h.shack.ToggleInquiryStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to update inquiry")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inquiry updated successfully",
		"data":    inquiry,
	})
}

// DeleteInquiry handles DELETE /admin/inquiries/:id
func (h *ShackHandler) DeleteInquiry(c *gin.Context) {
	if err := h.shack.DeleteInquiry(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete inquiry")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inquiry deleted successfully",
	})
}
