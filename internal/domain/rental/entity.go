// internal/domain/rental/entity.go
package rental

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/surfshop-backend/internal/pkg/daterange"
	"gorm.io/gorm"
)

// AssetStatus is the maintenance state of a rental asset
type AssetStatus string

const (
	AssetStatusActive  AssetStatus = "active"
	AssetStatusRepair  AssetStatus = "repair"
	AssetStatusRetired AssetStatus = "retired"
)

// Next returns the following status in the admin cycle
// active -> repair -> retired -> active. Unknown statuses reset to active.
func (s AssetStatus) Next() AssetStatus {
	switch s {
	case AssetStatusActive:
		return AssetStatusRepair
	case AssetStatusRepair:
		return AssetStatusRetired
	default:
		return AssetStatusActive
	}
}

// IsValid checks the status against the known set
func (s AssetStatus) IsValid() bool {
	switch s {
	case AssetStatusActive, AssetStatusRepair, AssetStatusRetired:
		return true
	}
	return false
}

// BookingStatus represents the lifecycle of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusReturned  BookingStatus = "returned"
)

// IsValid checks the status against the known set
func (s BookingStatus) IsValid() bool {
	return s == BookingStatusConfirmed || s == BookingStatusReturned
}

// Rates holds per-day prices
type Rates struct {
	Daily  decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"daily"`
	Member decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"member"`
}

// Asset is a rentable item in the fleet (board, wetsuit, lesson slot)
type Asset struct {
	ID           string            `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string            `gorm:"not null;size:255" json:"name"`
	Make         string            `gorm:"size:100" json:"make"`
	Category     string            `gorm:"size:100;index" json:"category"`
	Type         string            `gorm:"size:50" json:"type"`
	Specs        map[string]string `gorm:"serializer:json" json:"specs,omitempty"`
	Rates        Rates             `gorm:"embedded;embeddedPrefix:rate_" json:"rates"`
	Stock        int               `gorm:"not null;default:0" json:"stock"`
	Status       AssetStatus       `gorm:"not null;size:20;default:'active';index" json:"status"`
	IsDemoQuiver bool              `gorm:"default:false" json:"is_demo_quiver"`
	ImageURL     string            `gorm:"size:500" json:"image_url"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`
}

// Booking blocks one unit of an asset for a date range
type Booking struct {
	ID           string              `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID      string              `gorm:"type:uuid;not null;index" json:"asset_id"`
	OrderID      *string             `gorm:"type:uuid;index" json:"order_id,omitempty"`
	ItemName     string              `gorm:"size:255" json:"item_name"`
	CustomerName string              `gorm:"size:255" json:"customer_name"`
	DateRange    daterange.DateRange `gorm:"embedded;embeddedPrefix:date_" json:"date_range"`
	Status       BookingStatus       `gorm:"not null;size:20;default:'confirmed';index" json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	DeletedAt    gorm.DeletedAt      `gorm:"index" json:"-"`
}

// TableName overrides
func (Asset) TableName() string   { return "rental_assets" }
func (Booking) TableName() string { return "bookings" }

// BeforeCreate assigns a UUID when none is set
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// BeforeCreate assigns a UUID when none is set
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// IsClosed reports whether the booking no longer holds stock
func (b Booking) IsClosed() bool {
	return b.Status == BookingStatusReturned
}

// UnmarshalJSON accepts the legacy "rental_id" field as an alias for asset_id
func (b *Booking) UnmarshalJSON(data []byte) error {
	type plain Booking
	aux := struct {
		*plain
		RentalID string `json:"rental_id"`
	}{plain: (*plain)(b)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if b.AssetID == "" {
		b.AssetID = aux.RentalID
	}
	return nil
}
