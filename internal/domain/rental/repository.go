// internal/domain/rental/repository.go
package rental

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAssetNotFound   = errors.New("rental asset not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// AssetFilter narrows asset listings
type AssetFilter struct {
	Category string
	Status   AssetStatus
}

// BookingFilter narrows booking listings
type BookingFilter struct {
	AssetID  string
	Status   BookingStatus
	OpenOnly bool // exclude returned bookings
}

// Repository is the persistence port of the rental domain
type Repository interface {
	ListAssets(ctx context.Context, filter AssetFilter) ([]Asset, error)
	GetAsset(ctx context.Context, id string) (*Asset, error)
	LockAsset(ctx context.Context, id string) error
	CreateAsset(ctx context.Context, asset *Asset) error
	SaveAsset(ctx context.Context, asset *Asset) error
	DeleteAsset(ctx context.Context, id string) error

	ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error)
	CreateBookings(ctx context.Context, bookings []Booking) error
	UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) error
	DeleteBookings(ctx context.Context, ids []string) (int64, error)
}

// GormRepository implements Repository on gorm
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a repository; pass a transaction handle to run
// its queries inside that transaction.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) ListAssets(ctx context.Context, filter AssetFilter) ([]Asset, error) {
	query := r.db.WithContext(ctx).Model(&Asset{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var assets []Asset
	if err := query.Order("category ASC, name ASC").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to list rental assets: %w", err)
	}
	return assets, nil
}

func (r *GormRepository) GetAsset(ctx context.Context, id string) (*Asset, error) {
	var asset Asset
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rental asset: %w", err)
	}
	return &asset, nil
}

// LockAsset takes a row lock on the asset for the rest of the transaction.
// Checkout holds it while re-checking availability and inserting bookings.
func (r *GormRepository) LockAsset(ctx context.Context, id string) error {
	var asset Asset
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", id).
		First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAssetNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock rental asset: %w", err)
	}
	return nil
}

func (r *GormRepository) CreateAsset(ctx context.Context, asset *Asset) error {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return fmt.Errorf("failed to create rental asset: %w", err)
	}
	return nil
}

func (r *GormRepository) SaveAsset(ctx context.Context, asset *Asset) error {
	if err := r.db.WithContext(ctx).Save(asset).Error; err != nil {
		return fmt.Errorf("failed to save rental asset: %w", err)
	}
	return nil
}

func (r *GormRepository) DeleteAsset(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Asset{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete rental asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAssetNotFound
	}
	return nil
}

func (r *GormRepository) ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error) {
	query := r.db.WithContext(ctx).Model(&Booking{})
	if filter.AssetID != "" {
		query = query.Where("asset_id = ?", filter.AssetID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OpenOnly {
		query = query.Where("status <> ?", BookingStatusReturned)
	}

	var bookings []Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *GormRepository) CreateBookings(ctx context.Context, bookings []Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&bookings).Error; err != nil {
		return fmt.Errorf("failed to create bookings: %w", err)
	}
	return nil
}

func (r *GormRepository) UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) error {
	result := r.db.WithContext(ctx).Model(&Booking{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *GormRepository) DeleteBookings(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&Booking{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete bookings: %w", result.Error)
	}
	return result.RowsAffected, nil
}
