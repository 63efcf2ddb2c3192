// internal/domain/order/entity.go
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/surfshop-backend/internal/domain/cart"
	"github.com/your-org/surfshop-backend/internal/pkg/daterange"
	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
)

// IsValid checks the status against the known set
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPaid, OrderStatusShipped, OrderStatusCompleted:
		return true
	}
	return false
}

// Customer holds the buyer's contact and shipping details (embedded in Order)
type Customer struct {
	Email   string `gorm:"not null;size:255" json:"email"`
	Name    string `gorm:"not null;size:255" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:100" json:"city"`
	Zip     string `gorm:"size:20" json:"zip"`
}

// Order represents a completed checkout
type Order struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber string          `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	Customer    Customer        `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Total       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	Status      OrderStatus     `gorm:"not null;size:20;default:'paid';index" json:"status"`
	ShippedAt   *time.Time      `json:"shipped_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is a cart line item frozen at checkout
type OrderItem struct {
	ID         string              `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID    string              `gorm:"type:uuid;not null;index" json:"order_id"`
	LineItemID string              `gorm:"size:255" json:"line_item_id"`
	ProductID  string              `gorm:"not null;size:64;index" json:"product_id"`
	Kind       cart.Kind           `gorm:"not null;size:20" json:"kind"`
	Name       string              `gorm:"size:255" json:"name"`
	Variant    string              `gorm:"size:50" json:"variant,omitempty"`
	DateRange  daterange.DateRange `gorm:"embedded;embeddedPrefix:date_" json:"date_range"`
	Days       int                 `gorm:"not null;default:1" json:"days"`
	UnitPrice  decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Quantity   int                 `gorm:"not null" json:"quantity"`
	LineTotal  decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"line_total"`
	CreatedAt  time.Time           `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// BeforeCreate assigns the id and order number
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.OrderNumber == "" {
		o.OrderNumber = GenerateOrderNumber(o.ID, time.Now())
	}
	return nil
}

// BeforeCreate assigns a UUID when none is set
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// GenerateOrderNumber formats ORD-YYYYMMDD-XXXXXXXX from the order id
func GenerateOrderNumber(id string, at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("ORD-%s-%s", at.Format("20060102"), suffix)
}

// IsRental reports whether the item booked a rental asset
func (i OrderItem) IsRental() bool {
	return i.Kind == cart.KindRental
}

// NewItem freezes a cart line item into an order item
func NewItem(li cart.LineItem) OrderItem {
	item := OrderItem{
		LineItemID: li.LineItemID,
		ProductID:  li.ProductID,
		Kind:       li.Kind,
		Name:       li.Name,
		Variant:    li.Variant,
		Days:       1,
		UnitPrice:  li.UnitPrice,
		Quantity:   li.Quantity,
		LineTotal:  cart.LineTotal(li),
	}
	if li.Kind == cart.KindRental {
		item.Days = li.Days()
		if li.DateRange != nil {
			item.DateRange = *li.DateRange
		}
	}
	return item
}
