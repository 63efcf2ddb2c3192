package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/surfshop-backend/internal/pkg/logger"
)

type repoMock struct {
	listFn       func(ctx context.Context, req *ListRequest) ([]Product, int64, error)
	getFn        func(ctx context.Context, id string) (*Product, error)
	slugExistsFn func(ctx context.Context, slug string) (bool, error)
	createFn     func(ctx context.Context, product *Product) error
	updateFn     func(ctx context.Context, product *Product, fields []string) error
}

func (m *repoMock) List(ctx context.Context, req *ListRequest) ([]Product, int64, error) {
	return m.listFn(ctx, req)
}
func (m *repoMock) Get(ctx context.Context, id string) (*Product, error) { return m.getFn(ctx, id) }
func (m *repoMock) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	return nil, ErrProductNotFound
}
func (m *repoMock) SlugExists(ctx context.Context, slug string) (bool, error) {
	return m.slugExistsFn(ctx, slug)
}
func (m *repoMock) Create(ctx context.Context, product *Product) error { return m.createFn(ctx, product) }
func (m *repoMock) Update(ctx context.Context, product *Product, fields []string) error {
	return m.updateFn(ctx, product, fields)
}
func (m *repoMock) Delete(ctx context.Context, id string) error { return nil }
func (m *repoMock) DecrementStock(ctx context.Context, id string, qty int) error {
	return nil
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "bird-rock-logo-tee", Slugify("Bird Rock Logo Tee"))
	assert.Equal(t, "7-2-egg", Slugify("  7'2\" Egg!! "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := NewService(&repoMock{}, logger.Discard())
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, &CreateRequest{Name: "", Category: "apparel"})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = svc.CreateProduct(ctx, &CreateRequest{Name: "Tee", Category: "apparel", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = svc.CreateProduct(ctx, &CreateRequest{Name: "Tee", Category: "apparel", Stock: -3})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestCreateProduct_DeduplicatesSlug(t *testing.T) {
	var created *Product
	m := &repoMock{
		slugExistsFn: func(ctx context.Context, slug string) (bool, error) { return slug == "logo-tee", nil },
		createFn: func(ctx context.Context, product *Product) error {
			created = product
			return nil
		},
	}
	svc := NewService(m, logger.Discard())

	product, err := svc.CreateProduct(context.Background(), &CreateRequest{
		Name:     "Logo Tee",
		Category: "apparel",
		Price:    decimal.NewFromInt(32),
		Sizes:    []string{"S", "M", "L"},
		Stock:    10,
	})
	require.NoError(t, err)
	assert.Same(t, created, product)
	assert.Regexp(t, `^logo-tee-[0-9a-f]{8}$`, product.Slug)
	assert.True(t, product.IsActive)
}

func TestUpdateProduct_WritesOnlyChangedColumns(t *testing.T) {
	var gotFields []string
	m := &repoMock{
		getFn: func(ctx context.Context, id string) (*Product, error) {
			return &Product{ID: id, Name: "Tee", Stock: 5, IsActive: true}, nil
		},
		updateFn: func(ctx context.Context, product *Product, fields []string) error {
			gotFields = fields
			return nil
		},
	}
	svc := NewService(m, logger.Discard())

	stock := 0
	inactive := false
	product, err := svc.UpdateProduct(context.Background(), "p1", &UpdateRequest{Stock: &stock, IsActive: &inactive})
	require.NoError(t, err)

	assert.Equal(t, []string{"stock", "is_active"}, gotFields)
	assert.Zero(t, product.Stock)
	assert.False(t, product.IsActive)

	negative := -1
	_, err = svc.UpdateProduct(context.Background(), "p1", &UpdateRequest{Stock: &negative})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestListProducts_Pagination(t *testing.T) {
	m := &repoMock{
		listFn: func(ctx context.Context, req *ListRequest) ([]Product, int64, error) {
			assert.Equal(t, 20, req.Limit)
			return []Product{{ID: "p1"}}, 45, nil
		},
	}
	svc := NewService(m, logger.Discard())

	resp, err := svc.ListProducts(context.Background(), &ListRequest{Page: 2, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrev)
}

func TestForCart(t *testing.T) {
	products := map[string]*Product{
		"tee":    {ID: "tee", IsActive: true, Sizes: []string{"S", "M"}},
		"wax":    {ID: "wax", IsActive: true},
		"hidden": {ID: "hidden", IsActive: false},
	}
	m := &repoMock{
		getFn: func(ctx context.Context, id string) (*Product, error) {
			if p, ok := products[id]; ok {
				return p, nil
			}
			return nil, ErrProductNotFound
		},
	}
	svc := NewService(m, logger.Discard())
	ctx := context.Background()

	_, err := svc.ForCart(ctx, "tee", "M")
	assert.NoError(t, err)
	_, err = svc.ForCart(ctx, "tee", "XXL")
	assert.ErrorIs(t, err, ErrUnknownSize)
	_, err = svc.ForCart(ctx, "tee", "")
	assert.ErrorIs(t, err, ErrUnknownSize)
	_, err = svc.ForCart(ctx, "wax", "")
	assert.NoError(t, err)
	_, err = svc.ForCart(ctx, "hidden", "")
	assert.ErrorIs(t, err, ErrInactive)
	_, err = svc.ForCart(ctx, "nope", "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
