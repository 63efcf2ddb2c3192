// internal/domain/property/service.go
package property

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/surfshop-backend/internal/pkg/daterange"
)

var (
	ErrInvalidInquiry = errors.New("invalid inquiry")
	ErrInvalidListing = errors.New("invalid listing")
)

// Notifier is told about new inquiries so the shop can reply
type Notifier interface {
	InquiryReceived(ctx context.Context, inquiry *Inquiry, listing *Property) error
}

// Service manages the surf shack listing and guest inquiries
type Service struct {
	repo     Repository
	notifier Notifier
	logger   logrus.FieldLogger
}

// NewService creates a new property service. notifier may be nil.
func NewService(repo Repository, notifier Notifier, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// ListingRequest represents the admin-editable listing fields
type ListingRequest struct {
	Name        string          `json:"name" binding:"required"`
	Tagline     string          `json:"tagline"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	MaxGuests   int             `json:"max_guests"`
	Images      []string        `json:"images"`
	Amenities   []string        `json:"amenities"`
}

// InquiryRequest represents a guest's inquiry form
type InquiryRequest struct {
	GuestName     string        `json:"guest_name" binding:"required"`
	ContactMethod ContactMethod `json:"contact_method" binding:"required"`
	ContactValue  string        `json:"contact_value" binding:"required"`
	CheckIn       string        `json:"check_in" binding:"required"`
	CheckOut      string        `json:"check_out" binding:"required"`
	Guests        int           `json:"guests"`
	Message       string        `json:"message"`
}

// GetListing returns the shack listing
func (s *Service) GetListing(ctx context.Context) (*Property, error) {
	return s.repo.GetProperty(ctx, MainListingID)
}

// UpdateListing creates or replaces the shack listing
func (s *Service) UpdateListing(ctx context.Context, req *ListingRequest) (*Property, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidListing)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidListing)
	}
	if req.MaxGuests < 1 {
		return nil, fmt.Errorf("%w: max guests must be at least 1", ErrInvalidListing)
	}

	listing := &Property{
		ID:          MainListingID,
		Name:        strings.TrimSpace(req.Name),
		Tagline:     req.Tagline,
		Description: req.Description,
		Price:       req.Price,
		MaxGuests:   req.MaxGuests,
		Images:      nonNil(req.Images),
		Amenities:   nonNil(req.Amenities),
	}
	if err := s.repo.SaveProperty(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.Info("Shack listing updated")
	return listing, nil
}

// SubmitInquiry validates and stores a guest inquiry with status new
func (s *Service) SubmitInquiry(ctx context.Context, req *InquiryRequest) (*Inquiry, error) {
	listing, err := s.repo.GetProperty(ctx, MainListingID)
	if err != nil {
		return nil, err
	}

	inquiry, err := req.build(listing)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateInquiry(ctx, inquiry); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"inquiry_id": inquiry.ID,
		"nights":     inquiry.Nights(),
		"guests":     inquiry.Guests,
	}).Info("Shack inquiry received")

	if s.notifier != nil {
		if err := s.notifier.InquiryReceived(ctx, inquiry, listing); err != nil {
			s.logger.WithError(err).WithField("inquiry_id", inquiry.ID).Warn("Failed to send inquiry notification")
		}
	}

	return inquiry, nil
}

func (r *InquiryRequest) build(listing *Property) (*Inquiry, error) {
	name := strings.TrimSpace(r.GuestName)
	if name == "" {
		return nil, fmt.Errorf("%w: guest name is required", ErrInvalidInquiry)
	}
	if !r.ContactMethod.IsValid() {
		return nil, fmt.Errorf("%w: contact method must be email, phone or text", ErrInvalidInquiry)
	}
	contact := strings.TrimSpace(r.ContactValue)
	if contact == "" {
		return nil, fmt.Errorf("%w: contact details are required", ErrInvalidInquiry)
	}
	if r.ContactMethod == ContactEmail {
		if _, err := mail.ParseAddress(contact); err != nil {
			return nil, fmt.Errorf("%w: email address is invalid", ErrInvalidInquiry)
		}
	}

	stay, err := daterange.Parse(r.CheckIn, r.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInquiry, err)
	}
	if !stay.End.After(stay.Start) {
		return nil, fmt.Errorf("%w: check-out must be after check-in", ErrInvalidInquiry)
	}

	guests := r.Guests
	if guests == 0 {
		guests = 1
	}
	if guests < 1 || guests > listing.MaxGuests {
		return nil, fmt.Errorf("%w: the shack sleeps up to %d guests", ErrInvalidInquiry, listing.MaxGuests)
	}

	return &Inquiry{
		GuestName:     name,
		ContactMethod: r.ContactMethod,
		ContactValue:  contact,
		Stay:          stay,
		Guests:        guests,
		Message:       strings.TrimSpace(r.Message),
		Status:        InquiryStatusNew,
	}, nil
}

// ListInquiries returns inquiries newest first, optionally by status
func (s *Service) ListInquiries(ctx context.Context, status InquiryStatus) ([]Inquiry, error) {
	return s.repo.ListInquiries(ctx, status)
}

// ToggleInquiryStatus flips an inquiry between new and contacted
func (s *Service) ToggleInquiryStatus(ctx context.Context, id string) (*Inquiry, error) {
	inquiry, err := s.repo.GetInquiry(ctx, id)
	if err != nil {
		return nil, err
	}

	inquiry.Status = inquiry.Status.Toggle()
	if err := s.repo.UpdateInquiryStatus(ctx, id, inquiry.Status); err != nil {
		return nil, err
	}
	return inquiry, nil
}

// DeleteInquiry removes an inquiry
func (s *Service) DeleteInquiry(ctx context.Context, id string) error {
	return s.repo.DeleteInquiry(ctx, id)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
