// internal/domain/order/repository.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/surfshop-backend/internal/domain/catalog"
	"github.com/your-org/surfshop-backend/internal/domain/rental"
	"gorm.io/gorm"
)

// Repository is the persistence port for orders
type Repository interface {
	Create(ctx context.Context, order *Order) error
	List(ctx context.Context, req *ListRequest) ([]Order, int64, error)
	Get(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus, at time.Time) error
	Delete(ctx context.Context, ids []string) (int64, error)
}

// TxRepositories are the repositories checkout writes through, all bound
// to the same transaction
type TxRepositories struct {
	Orders  Repository
	Rentals rental.Repository
	Catalog catalog.Repository
}

// Transactor runs fn inside a single database transaction. A non-nil error
// from fn rolls back every write made through the supplied repositories.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repos TxRepositories) error) error
}

// GormRepository implements Repository on gorm
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new gorm-backed order repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, order *Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *GormRepository) List(ctx context.Context, req *ListRequest) ([]Order, int64, error) {
	var orders []Order
	var total int64

	query := r.db.WithContext(ctx).Model(&Order{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Email != "" {
		query = query.Where("customer_email = ?", req.Email)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	err := query.Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(req.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return orders, total, nil
}

func (r *GormRepository) Get(ctx context.Context, id string) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &order, nil
}

func (r *GormRepository) UpdateStatus(ctx context.Context, id string, status OrderStatus, at time.Time) error {
	updates := map[string]interface{}{
		"status": status,
	}

	switch status {
	case OrderStatusShipped:
		updates["shipped_at"] = at
	case OrderStatusCompleted:
		updates["completed_at"] = at
	}

	result := r.db.WithContext(ctx).Model(&Order{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&Order{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete orders: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// GormTransactor implements Transactor with gorm's managed transactions
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a new transactor
func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(repos TxRepositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(TxRepositories{
			Orders:  NewGormRepository(tx),
			Rentals: rental.NewGormRepository(tx),
			Catalog: catalog.NewGormRepository(tx),
		})
	})
}
