// internal/domain/rental/service.go
package rental

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/surfshop-backend/internal/pkg/daterange"
)

var (
	ErrInvalidAsset  = errors.New("invalid rental asset")
	ErrInvalidStatus = errors.New("invalid status")
)

// Service manages the rental fleet, its bookings and availability queries
type Service struct {
	repo   Repository
	logger logrus.FieldLogger
}

// NewService creates a new rental service
func NewService(repo Repository, logger logrus.FieldLogger) *Service {
	return &Service{repo: repo, logger: logger}
}

// AssetRequest carries the admin-editable fields of an asset
type AssetRequest struct {
	Name         string            `json:"name" binding:"required"`
	Make         string            `json:"make"`
	Category     string            `json:"category" binding:"required"`
	Type         string            `json:"type"`
	Specs        map[string]string `json:"specs"`
	DailyRate    decimal.Decimal   `json:"daily_rate"`
	MemberRate   decimal.Decimal   `json:"member_rate"`
	Stock        int               `json:"stock"`
	Status       AssetStatus       `json:"status"`
	IsDemoQuiver bool              `json:"is_demo_quiver"`
	ImageURL     string            `json:"image_url"`
}

// Listing pairs an asset with its availability for list rendering
type Listing struct {
	Asset        Asset        `json:"asset"`
	Availability Availability `json:"availability"`
}

func (r *AssetRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidAsset)
	}
	if r.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidAsset)
	}
	if r.DailyRate.IsNegative() || r.MemberRate.IsNegative() {
		return fmt.Errorf("%w: rates cannot be negative", ErrInvalidAsset)
	}
	if r.Status == "" {
		r.Status = AssetStatusActive
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, r.Status)
	}
	return nil
}

func (r *AssetRequest) apply(asset *Asset) {
	asset.Name = strings.TrimSpace(r.Name)
	asset.Make = r.Make
	asset.Category = r.Category
	asset.Type = r.Type
	asset.Specs = r.Specs
	asset.Rates = Rates{Daily: r.DailyRate, Member: r.MemberRate}
	asset.Stock = r.Stock
	asset.Status = r.Status
	asset.IsDemoQuiver = r.IsDemoQuiver
	asset.ImageURL = r.ImageURL
}

// ListAssets returns the fleet, optionally filtered
func (s *Service) ListAssets(ctx context.Context, filter AssetFilter) ([]Asset, error) {
	return s.repo.ListAssets(ctx, filter)
}

// GetAsset returns one asset by id
func (s *Service) GetAsset(ctx context.Context, id string) (*Asset, error) {
	return s.repo.GetAsset(ctx, id)
}

// CreateAsset validates and stores a new asset
func (s *Service) CreateAsset(ctx context.Context, req *AssetRequest) (*Asset, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	asset := &Asset{}
	req.apply(asset)
	if err := s.repo.CreateAsset(ctx, asset); err != nil {
		return nil, err
	}

	s.logger.WithField("asset_id", asset.ID).Info("Rental asset created")
	return asset, nil
}

// UpdateAsset replaces the editable fields of an asset
func (s *Service) UpdateAsset(ctx context.Context, id string, req *AssetRequest) (*Asset, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	asset, err := s.repo.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	req.apply(asset)
	if err := s.repo.SaveAsset(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// CycleStatus advances an asset through active -> repair -> retired -> active
func (s *Service) CycleStatus(ctx context.Context, id string) (*Asset, error) {
	asset, err := s.repo.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := asset.Status
	asset.Status = asset.Status.Next()
	if err := s.repo.SaveAsset(ctx, asset); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"asset_id": id,
		"from":     previous,
		"to":       asset.Status,
	}).Info("Rental asset status changed")
	return asset, nil
}

// DeleteAsset removes an asset from the fleet
func (s *Service) DeleteAsset(ctx context.Context, id string) error {
	return s.repo.DeleteAsset(ctx, id)
}

// ListBookings returns bookings newest first
func (s *Service) ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error) {
	return s.repo.ListBookings(ctx, filter)
}

// SetBookingStatus marks a booking confirmed or returned
func (s *Service) SetBookingStatus(ctx context.Context, id string, status BookingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.repo.UpdateBookingStatus(ctx, id, status)
}

// DeleteBookings removes bookings and frees their dates
func (s *Service) DeleteBookings(ctx context.Context, ids []string) (int64, error) {
	deleted, err := s.repo.DeleteBookings(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(ids) == 1 && deleted == 0 {
		return 0, ErrBookingNotFound
	}
	return deleted, nil
}

// Availability resolves every asset in category (all when empty) for want
func (s *Service) Availability(ctx context.Context, want daterange.DateRange, category string) ([]Listing, error) {
	assets, err := s.repo.ListAssets(ctx, AssetFilter{Category: category})
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListBookings(ctx, BookingFilter{OpenOnly: true})
	if err != nil {
		return nil, err
	}

	results := Resolve(assets, bookings, want)
	listings := make([]Listing, len(assets))
	for i := range assets {
		listings[i] = Listing{Asset: assets[i], Availability: results[i]}
	}
	return listings, nil
}

// CheckAsset resolves a single asset for want. The asset is returned so
// callers can price the rental from its rates.
func (s *Service) CheckAsset(ctx context.Context, id string, want daterange.DateRange) (*Asset, Availability, error) {
	return CheckAsset(ctx, s.repo, id, want)
}

// CheckAsset resolves one asset against repo. It is shared with checkout,
// which runs it on a transaction-scoped repository.
func CheckAsset(ctx context.Context, repo Repository, id string, want daterange.DateRange) (*Asset, Availability, error) {
	asset, err := repo.GetAsset(ctx, id)
	if err != nil {
		return nil, Availability{}, err
	}

	bookings, err := repo.ListBookings(ctx, BookingFilter{AssetID: id, OpenOnly: true})
	if err != nil {
		return nil, Availability{}, err
	}

	return asset, ResolveOne(*asset, bookings, want), nil
}
