// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/surfshop-backend/internal/config"
	"github.com/your-org/surfshop-backend/internal/domain/order"
)

// OrderService is the checkout and order administration API
type OrderService interface {
	Checkout(ctx context.Context, sessionID string, req *order.CheckoutRequest) (*order.Order, error)
	ListOrders(ctx context.Context, req *order.ListRequest) (*order.ListResponse, error)
	GetOrder(ctx context.Context, id string) (*order.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status order.OrderStatus) error
	DeleteOrders(ctx context.Context, ids []string) (int64, error)
}

// ReceiptGenerator renders an order as a PDF receipt
type ReceiptGenerator interface {
	GenerateReceipt(o *order.Order) (*bytes.Buffer, error)
}

// CheckoutHandler handles checkout, receipts and order administration
type CheckoutHandler struct {
	orders   OrderService
	receipts ReceiptGenerator
	config   *config.Config
	logger   logrus.FieldLogger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(orders OrderService, receipts ReceiptGenerator, cfg *config.Config, logger logrus.FieldLogger) *CheckoutHandler {
	return &CheckoutHandler{
		orders:   orders,
		receipts: receipts,
		config:   cfg,
		logger:   logger,
	}
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req order.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sessionID := sessionID(c, h.config, false)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": order.ErrEmptyCart.Error()})
		return
	}

	placed, err := h.orders.Checkout(c.Request.Context(), sessionID, &req)
	if err != nil {
		respondError(c, h.logger, err, "Checkout failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}

// GetReceipt handles GET /orders/:id/receipt
func (h *CheckoutHandler) GetReceipt(c *gin.Context) {
	o, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve order")
		return
	}

	pdfBuffer, err := h.receipts.GenerateReceipt(o)
	if err != nil {
		h.logger.WithError(err).WithField("order_id", o.ID).Error("Failed to generate receipt")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", o.OrderNumber))
	c.Header("Content-Length", strconv.Itoa(pdfBuffer.Len()))
	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}

// GetOrders handles GET /admin/orders
func (h *CheckoutHandler) GetOrders(c *gin.Context) {
	var req order.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	response, err := h.orders.ListOrders(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    response,
	})
}

// GetOrder handles GET /admin/orders/:id
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	o, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// orderStatusRequest is the body of PATCH /admin/orders/:id/status
type orderStatusRequest struct {
	Status order.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus handles PATCH /admin/orders/:id/status
func (h *CheckoutHandler) UpdateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.orders.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, h.logger, err, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    gin.H{"id": c.Param("id"), "status": req.Status},
	})
}

// DeleteOrder handles DELETE /admin/orders/:id
func (h *CheckoutHandler) DeleteOrder(c *gin.Context) {
	if _, err := h.orders.DeleteOrders(c.Request.Context(), []string{c.Param("id")}); err != nil {
		respondError(c, h.logger, err, "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted successfully",
	})
}

// BatchDeleteOrders handles POST /admin/orders/batch-delete
func (h *CheckoutHandler) BatchDeleteOrders(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	deleted, err := h.orders.DeleteOrders(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, h.logger, err, "Failed to delete orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders deleted successfully",
		"data":    gin.H{"deleted": deleted},
	})
}
