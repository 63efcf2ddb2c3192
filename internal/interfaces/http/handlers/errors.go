// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/surfshop-backend/internal/domain/catalog"
	"github.com/your-org/surfshop-backend/internal/domain/order"
	"github.com/your-org/surfshop-backend/internal/domain/property"
	"github.com/your-org/surfshop-backend/internal/domain/rental"
)

// statusFor maps domain sentinels onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, rental.ErrAssetNotFound),
		errors.Is(err, rental.ErrBookingNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, property.ErrListingNotFound),
		errors.Is(err, property.ErrInquiryNotFound):
		return http.StatusNotFound

	case errors.Is(err, catalog.ErrInvalidProduct),
		errors.Is(err, catalog.ErrUnknownSize),
		errors.Is(err, rental.ErrInvalidAsset),
		errors.Is(err, rental.ErrInvalidStatus),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidCustomer),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, property.ErrInvalidInquiry),
		errors.Is(err, property.ErrInvalidListing):
		return http.StatusBadRequest

	case errors.Is(err, catalog.ErrInactive),
		errors.Is(err, catalog.ErrInsufficientStock),
		errors.Is(err, order.ErrRentalUnavailable):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes the error envelope. Unexpected errors are logged and
// hidden behind a generic message.
func respondError(c *gin.Context, logger logrus.FieldLogger, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error(fallback)
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}

// idsRequest is the body of batch delete endpoints
type idsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}
