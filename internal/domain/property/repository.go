// internal/domain/property/repository.go
package property

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrInquiryNotFound = errors.New("inquiry not found")
)

// Repository is the persistence port for the listing and its inquiries
type Repository interface {
	GetProperty(ctx context.Context, id string) (*Property, error)
	SaveProperty(ctx context.Context, property *Property) error
	CreateInquiry(ctx context.Context, inquiry *Inquiry) error
	GetInquiry(ctx context.Context, id string) (*Inquiry, error)
	ListInquiries(ctx context.Context, status InquiryStatus) ([]Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id string, status InquiryStatus) error
	DeleteInquiry(ctx context.Context, id string) error
}

// GormRepository implements Repository on gorm
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new gorm-backed property repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) GetProperty(ctx context.Context, id string) (*Property, error) {
	var property Property
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve listing: %w", err)
	}
	return &property, nil
}

// SaveProperty upserts the listing by primary key
func (r *GormRepository) SaveProperty(ctx context.Context, property *Property) error {
	if err := r.db.WithContext(ctx).Save(property).Error; err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return nil
}

func (r *GormRepository) CreateInquiry(ctx context.Context, inquiry *Inquiry) error {
	if err := r.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

func (r *GormRepository) GetInquiry(ctx context.Context, id string) (*Inquiry, error) {
	var inquiry Inquiry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&inquiry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInquiryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve inquiry: %w", err)
	}
	return &inquiry, nil
}

func (r *GormRepository) ListInquiries(ctx context.Context, status InquiryStatus) ([]Inquiry, error) {
	query := r.db.WithContext(ctx).Model(&Inquiry{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var inquiries []Inquiry
	if err := query.Order("created_at DESC").Find(&inquiries).Error; err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	return inquiries, nil
}

func (r *GormRepository) UpdateInquiryStatus(ctx context.Context, id string, status InquiryStatus) error {
	result := r.db.WithContext(ctx).Model(&Inquiry{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update inquiry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInquiryNotFound
	}
	return nil
}

func (r *GormRepository) DeleteInquiry(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Inquiry{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete inquiry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInquiryNotFound
	}
	return nil
}
