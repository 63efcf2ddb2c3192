// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidProduct = errors.New("invalid product")
	ErrUnknownSize    = errors.New("size not offered for this product")
	ErrInactive       = errors.New("product is not available")
)

// Service handles catalog business logic
type Service struct {
	repo   Repository
	logger logrus.FieldLogger
}

// NewService creates a new catalog service
func NewService(repo Repository, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListRequest represents product list query parameters
type ListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Category  string `form:"category"`
	Search    string `form:"search"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
	IsActive  *bool  `form:"is_active"`
}

// CreateRequest represents product creation data
type CreateRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	SubCategory string          `json:"sub_category"`
	Type        string          `json:"type"`
	Price       decimal.Decimal `json:"price"`
	MemberPrice decimal.Decimal `json:"member_price"`
	Badge       string          `json:"badge"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Sizes       []string        `json:"sizes"`
	Stock       int             `json:"stock"`
	IsActive    *bool           `json:"is_active"`
}

// UpdateRequest represents product update data
type UpdateRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	SubCategory *string          `json:"sub_category"`
	Type        *string          `json:"type"`
	Price       *decimal.Decimal `json:"price"`
	MemberPrice *decimal.Decimal `json:"member_price"`
	Badge       *string          `json:"badge"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"image_url"`
	Sizes       []string         `json:"sizes"`
	Stock       *int             `json:"stock"`
	IsActive    *bool            `json:"is_active"`
}

// ListResponse represents a paginated product list
type ListResponse struct {
	Products   []Product  `json:"products"`
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

// ListProducts retrieves products with filtering and pagination
func (s *Service) ListProducts(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	products, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Products: products,
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

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.Get(ctx, id)
}

// GetProductBySlug retrieves a single active product by slug
func (s *Service) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(ctx context.Context, req *CreateRequest) (*Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if req.Price.IsNegative() || req.MemberPrice.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	}

	slug, err := s.uniqueSlug(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	product := &Product{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Type:        req.Type,
		Price:       req.Price,
		MemberPrice: req.MemberPrice,
		Badge:       req.Badge,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Sizes:       req.Sizes,
		Stock:       req.Stock,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.WithField("product_id", product.ID).Info("Product created")
	return product, nil
}

// UpdateProduct applies the non-nil fields of req
func (s *Service) UpdateProduct(ctx context.Context, id string, req *UpdateRequest) (*Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var fields []string
	set := func(column string) { fields = append(fields, column) }

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
		}
		product.Name = strings.TrimSpace(*req.Name)
		set("name")
	}
	if req.Category != nil {
		product.Category = *req.Category
		set("category")
	}
	if req.SubCategory != nil {
		product.SubCategory = *req.SubCategory
		set("sub_category")
	}
	if req.Type != nil {
		product.Type = *req.Type
		set("type")
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
		}
		product.Price = *req.Price
		set("price")
	}
	if req.MemberPrice != nil {
		if req.MemberPrice.IsNegative() {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
		}
		product.MemberPrice = *req.MemberPrice
		set("member_price")
	}
	if req.Badge != nil {
		product.Badge = *req.Badge
		set("badge")
	}
	if req.Description != nil {
		product.Description = *req.Description
		set("description")
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
		set("image_url")
	}
	if req.Sizes != nil {
		product.Sizes = req.Sizes
		set("sizes")
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
		}
		product.Stock = *req.Stock
		set("stock")
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
		set("is_active")
	}

	if len(fields) > 0 {
		if err := s.repo.Update(ctx, product, fields); err != nil {
			return nil, err
		}
	}

	return product, nil
}

// DeleteProduct soft deletes a product
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ForCart loads a product for add-to-cart and checks the requested size
func (s *Service) ForCart(ctx context.Context, id, size string) (*Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrInactive
	}
	if !product.HasSize(size) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSize, size)
	}
	return product, nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify generates a URL-friendly slug from name
func Slugify(name string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func (s *Service) uniqueSlug(ctx context.Context, name string) (string, error) {
	slug := Slugify(name)
	if slug == "" {
		slug = "product"
	}

	exists, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return "", err
	}
	if exists {
		slug = slug + "-" + uuid.New().String()[:8]
	}
	return slug, nil
}
