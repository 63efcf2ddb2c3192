// internal/domain/property/entity.go
package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/surfshop-backend/internal/pkg/daterange"
	"gorm.io/gorm"
)

// MainListingID is the id of the single vacation-rental listing
const MainListingID = "main_shack"

// Property is the surf shack listing shown to guests
type Property struct {
	ID          string          `gorm:"primaryKey;size:64" json:"id"`
	Name        string          `gorm:"not null;size:255" json:"name"`
	Tagline     string          `gorm:"size:255" json:"tagline"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price"` // per night
	MaxGuests   int             `gorm:"not null;default:1" json:"max_guests"`
	Images      []string        `gorm:"serializer:json" json:"images"`
	Amenities   []string        `gorm:"serializer:json" json:"amenities"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ContactMethod is how the guest wants to be reached
type ContactMethod string

const (
	ContactEmail ContactMethod = "email"
	ContactPhone ContactMethod = "phone"
	ContactText  ContactMethod = "text"
)

// IsValid checks the method against the known set
func (m ContactMethod) IsValid() bool {
	return m == ContactEmail || m == ContactPhone || m == ContactText
}

// InquiryStatus tracks whether the shop has replied
type InquiryStatus string

const (
	InquiryStatusNew       InquiryStatus = "new"
	InquiryStatusContacted InquiryStatus = "contacted"
)

// Toggle flips new <-> contacted
func (s InquiryStatus) Toggle() InquiryStatus {
	if s == InquiryStatusNew {
		return InquiryStatusContacted
	}
	return InquiryStatusNew
}

// Inquiry is a guest's booking request for the shack
type Inquiry struct {
	ID            string              `gorm:"type:uuid;primaryKey" json:"id"`
	GuestName     string              `gorm:"not null;size:255" json:"guest_name"`
	ContactMethod ContactMethod       `gorm:"not null;size:20" json:"contact_method"`
	ContactValue  string              `gorm:"not null;size:255" json:"contact_value"`
	Stay          daterange.DateRange `gorm:"embedded;embeddedPrefix:stay_" json:"stay"`
	Guests        int                 `gorm:"not null" json:"guests"`
	Message       string              `gorm:"type:text" json:"message"`
	Status        InquiryStatus       `gorm:"not null;size:20;default:'new';index" json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// TableName overrides
func (Property) TableName() string { return "properties" }
func (Inquiry) TableName() string  { return "inquiries" }

// BeforeCreate assigns a UUID when none is set
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// Nights is the length of the requested stay
func (i *Inquiry) Nights() int {
	return i.Stay.Days()
}

// EstimatedTotal prices the stay at the listing's nightly rate
func (p *Property) EstimatedTotal(stay daterange.DateRange) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(stay.Days())))
}
