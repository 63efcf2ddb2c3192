// internal/domain/catalog/entity.go
package catalog

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a standard (non-rental) catalog item
type Product struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"not null;size:255" json:"name"`
	Slug        string          `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Category    string          `gorm:"size:100;index" json:"category"`
	SubCategory string          `gorm:"size:100" json:"sub_category"`
	Type        string          `gorm:"size:50" json:"type"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	MemberPrice decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"member_price"`
	Badge       string          `gorm:"size:50" json:"badge,omitempty"`
	Description string          `gorm:"type:text" json:"description"`
	ImageURL    string          `gorm:"size:500" json:"image_url"`
	Sizes       []string        `gorm:"serializer:json" json:"sizes,omitempty"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Product) TableName() string { return "products" }

// BeforeCreate assigns a UUID when none is set
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// HasSize reports whether size is one of the product's sizes.
// Products without sizes accept only the empty variant.
func (p *Product) HasSize(size string) bool {
	if len(p.Sizes) == 0 {
		return size == ""
	}
	return slices.Contains(p.Sizes, size)
}
