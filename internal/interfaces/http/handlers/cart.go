// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/surfshop-backend/internal/config"
	"github.com/your-org/surfshop-backend/internal/domain/cart"
	"github.com/your-org/surfshop-backend/internal/domain/catalog"
	"github.com/your-org/surfshop-backend/internal/domain/rental"
	"github.com/your-org/surfshop-backend/internal/pkg/daterange"
)

// CartService is the session cart API the handler drives
type CartService interface {
	Snapshot(sessionID string) cart.Snapshot
	AddItem(sessionID string, candidate cart.LineItem) (cart.AddResult, cart.Snapshot)
	RemoveItem(sessionID, lineItemID string) cart.Snapshot
	SetQuantityDelta(sessionID, lineItemID string, delta int) cart.Snapshot
	Clear(sessionID string) cart.Snapshot
}

// ProductLookup prices and validates standard add-to-cart candidates
type ProductLookup interface {
	ForCart(ctx context.Context, id, size string) (*catalog.Product, error)
}

// RentalLookup prices and bounds rental add-to-cart candidates
type RentalLookup interface {
	CheckAsset(ctx context.Context, id string, want daterange.DateRange) (*rental.Asset, rental.Availability, error)
}

// CartHandler handles cart endpoints
type CartHandler struct {
	carts    CartService
	products ProductLookup
	rentals  RentalLookup
	config   *config.Config
	logger   logrus.FieldLogger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts CartService, products ProductLookup, rentals RentalLookup, cfg *config.Config, logger logrus.FieldLogger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
		rentals:  rentals,
		config:   cfg,
		logger:   logger,
	}
}

// AddItemRequest is the add-to-cart body. Prices and ceilings are looked
// up server side; the client only names what it wants.
type AddItemRequest struct {
	ProductID string    `json:"product_id" binding:"required"`
	Kind      cart.Kind `json:"kind"`
	Quantity  int       `json:"quantity"`
	Variant   string    `json:"variant"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
}

// UpdateItemRequest carries a signed quantity change
type UpdateItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.carts.Snapshot(sessionID),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity cannot be negative"})
		return
	}

	var (
		candidate cart.LineItem
		ok        bool
	)
	switch req.Kind {
	case cart.KindRental:
		candidate, ok = h.rentalCandidate(c, &req)
	case "", cart.KindStandard:
		candidate, ok = h.standardCandidate(c, &req)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be standard or rental"})
		return
	}
	if !ok {
		return
	}

	result, snapshot := h.carts.AddItem(sessionID, candidate)
	switch result.Status {
	case cart.AddStatusRejected:
		c.JSON(http.StatusConflict, gin.H{
			"error":  result.Warning,
			"result": result,
			"data":   snapshot,
		})
	case cart.AddStatusInvalid:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  result.Warning,
			"result": result,
			"data":   snapshot,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message": "Item added to cart successfully",
			"result":  result,
			"data":    snapshot,
		})
	}
}

func (h *CartHandler) standardCandidate(c *gin.Context, req *AddItemRequest) (cart.LineItem, bool) {
	product, err := h.products.ForCart(c.Request.Context(), req.ProductID, req.Variant)
	if err != nil {
		respondError(c, h.logger, err, "Failed to add item to cart")
		return cart.LineItem{}, false
	}

	ceiling := product.Stock
	return cart.LineItem{
		ProductID:    product.ID,
		Kind:         cart.KindStandard,
		Name:         product.Name,
		UnitPrice:    product.Price,
		Quantity:     req.Quantity,
		Variant:      req.Variant,
		StockCeiling: &ceiling,
	}, true
}

func (h *CartHandler) rentalCandidate(c *gin.Context, req *AddItemRequest) (cart.LineItem, bool) {
	var want *daterange.DateRange
	if req.StartDate != "" || req.EndDate != "" {
		r, err := daterange.Parse(req.StartDate, req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return cart.LineItem{}, false
		}
		want = &r
	}

	var query daterange.DateRange
	if want != nil {
		query = *want
	}
	asset, availability, err := h.rentals.CheckAsset(c.Request.Context(), req.ProductID, query)
	if err != nil {
		respondError(c, h.logger, err, "Failed to add item to cart")
		return cart.LineItem{}, false
	}
	if !availability.IsAvailable {
		c.JSON(http.StatusConflict, gin.H{
			"error":        "This rental is not available for the selected dates",
			"availability": availability,
		})
		return cart.LineItem{}, false
	}

	ceiling := availability.RemainingStock
	return cart.LineItem{
		ProductID:    asset.ID,
		Kind:         cart.KindRental,
		Name:         asset.Name,
		UnitPrice:    asset.Rates.Daily,
		Quantity:     req.Quantity,
		DateRange:    want,
		StockCeiling: &ceiling,
	}, true
}

// UpdateCartItem handles PATCH /cart/items/:lineItemId
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	snapshot := h.carts.SetQuantityDelta(sessionID, c.Param("lineItemId"), req.Delta)
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    snapshot,
	})
}

// RemoveFromCart handles DELETE /cart/items/:lineItemId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	snapshot := h.carts.RemoveItem(sessionID, c.Param("lineItemId"))
	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    snapshot,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	snapshot := h.carts.Clear(sessionID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    snapshot,
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": h.carts.Snapshot(sessionID).TotalItemCount,
		},
	})
}

// getOrCreateSessionID reads the cart cookie, issuing a fresh uuid when it
// is missing or malformed
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	return sessionID(c, h.config, true)
}

func sessionID(c *gin.Context, cfg *config.Config, create bool) string {
	if existing, err := c.Cookie(cfg.Cart.SessionCookie); err == nil {
		if _, err := uuid.Parse(existing); err == nil {
			return existing
		}
	}
	if !create {
		return ""
	}

	id := uuid.New().String()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Cart.SessionCookie, id, cfg.Cart.SessionMaxAge, "/", "", cfg.IsProduction(), true)
	return id
}
