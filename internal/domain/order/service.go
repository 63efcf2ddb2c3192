// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/surfshop-backend/internal/domain/cart"
	"github.com/your-org/surfshop-backend/internal/domain/rental"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidCustomer   = errors.New("invalid customer details")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrRentalUnavailable = errors.New("rental no longer available for the selected dates")
)

// CartSource is the slice of the cart service checkout depends on
type CartSource interface {
	Snapshot(sessionID string) cart.Snapshot
	Discard(ctx context.Context, sessionID string) error
}

// Notifier is told about placed orders, e.g. to email a confirmation
type Notifier interface {
	OrderPlaced(ctx context.Context, order *Order) error
}

// Service handles checkout and order administration
type Service struct {
	repo     Repository
	tx       Transactor
	carts    CartSource
	notifier Notifier
	logger   logrus.FieldLogger
	now      func() time.Time
}

// NewService creates a new order service
func NewService(repo Repository, tx Transactor, carts CartSource, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:   repo,
		tx:     tx,
		carts:  carts,
		logger: logger,
		now:    time.Now,
	}
}

// SetNotifier registers a post-checkout notifier
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// CheckoutRequest represents the customer details captured at checkout
type CheckoutRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

// ListRequest represents order list query parameters
type ListRequest struct {
	Page   int         `form:"page,default=1"`
	Limit  int         `form:"limit,default=20"`
	Status OrderStatus `form:"status"`
	Email  string      `form:"email"`
}

// ListResponse represents a paginated order list
type ListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func (r *CheckoutRequest) customer() (Customer, error) {
	c := Customer{
		Email:   strings.TrimSpace(r.Email),
		Name:    strings.TrimSpace(r.Name),
		Address: strings.TrimSpace(r.Address),
		City:    strings.TrimSpace(r.City),
		Zip:     strings.TrimSpace(r.Zip),
	}
	if c.Name == "" {
		return c, fmt.Errorf("%w: name is required", ErrInvalidCustomer)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return c, fmt.Errorf("%w: email is invalid", ErrInvalidCustomer)
	}
	return c, nil
}

// Checkout turns the session cart into a paid order. The order, its
// bookings and the stock decrements are written in one transaction; the
// cart is discarded only after commit.
func (s *Service) Checkout(ctx context.Context, sessionID string, req *CheckoutRequest) (*Order, error) {
	customer, err := req.customer()
	if err != nil {
		return nil, err
	}

	snapshot := s.carts.Snapshot(sessionID)
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &Order{
		Customer: customer,
		Total:    snapshot.TotalPrice,
		Status:   OrderStatusPaid,
		Items:    make([]OrderItem, 0, len(snapshot.Items)),
	}
	for _, li := range snapshot.Items {
		order.Items = append(order.Items, NewItem(li))
	}

	err = s.tx.WithinTransaction(ctx, func(repos TxRepositories) error {
		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}

		for _, item := range order.Items {
			if item.IsRental() {
				if err := s.bookRental(ctx, repos.Rentals, order, item); err != nil {
					return err
				}
				continue
			}
			if err := repos.Catalog.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	if err := s.carts.Discard(ctx, sessionID); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("Failed to discard cart after checkout")
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total.StringFixed(2),
		"items":        len(order.Items),
	}).Info("Order placed")

	if s.notifier != nil {
		if err := s.notifier.OrderPlaced(ctx, order); err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID).Warn("Failed to send order confirmation")
		}
	}

	return order, nil
}

// bookRental re-checks availability under a row lock and writes one
// confirmed booking per unit of quantity
func (s *Service) bookRental(ctx context.Context, rentals rental.Repository, order *Order, item OrderItem) error {
	if !item.DateRange.Valid() {
		return fmt.Errorf("%w: %s has no valid dates", ErrRentalUnavailable, item.Name)
	}

	if err := rentals.LockAsset(ctx, item.ProductID); err != nil {
		if errors.Is(err, rental.ErrAssetNotFound) {
			return fmt.Errorf("%w: %s", ErrRentalUnavailable, item.Name)
		}
		return err
	}

	_, availability, err := rental.CheckAsset(ctx, rentals, item.ProductID, item.DateRange)
	if err != nil {
		return err
	}
	if availability.RemainingStock < item.Quantity {
		return fmt.Errorf("%w: %s (%s)", ErrRentalUnavailable, item.Name, item.DateRange)
	}

	orderID := order.ID
	bookings := make([]rental.Booking, 0, item.Quantity)
	for i := 0; i < item.Quantity; i++ {
		bookings = append(bookings, rental.Booking{
			AssetID:      item.ProductID,
			OrderID:      &orderID,
			ItemName:     item.Name,
			CustomerName: order.Customer.Name,
			DateRange:    item.DateRange,
			Status:       rental.BookingStatusConfirmed,
		})
	}
	return rentals.CreateBookings(ctx, bookings)
}

// ListOrders retrieves orders newest first
func (s *Service) ListOrders(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Status != "" && !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	orders, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// GetOrder retrieves a single order with its items
func (s *Service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.Get(ctx, id)
}

// UpdateOrderStatus sets any known status; fulfilment may be corrected
// backwards by an admin
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status, s.now().UTC()); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{"order_id": id, "status": status}).Info("Order status updated")
	return nil
}

// DeleteOrders removes orders. Stock and bookings are left untouched.
func (s *Service) DeleteOrders(ctx context.Context, ids []string) (int64, error) {
	deleted, err := s.repo.Delete(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(ids) == 1 && deleted == 0 {
		return 0, ErrOrderNotFound
	}
	return deleted, nil
}
