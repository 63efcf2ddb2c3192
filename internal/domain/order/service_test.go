package order

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/surfshop-backend/internal/domain/cart"
	"github.com/your-org/surfshop-backend/internal/domain/catalog"
	"github.com/your-org/surfshop-backend/internal/domain/rental"
	"github.com/your-org/surfshop-backend/internal/pkg/daterange"
	"github.com/your-org/surfshop-backend/internal/pkg/logger"
)

type orderRepoMock struct {
	created      []*Order
	statusCalls  map[string]OrderStatus
	deleteResult int64
}

func (m *orderRepoMock) Create(_ context.Context, order *Order) error {
	order.ID = fmt.Sprintf("order-%d", len(m.created)+1)
	order.OrderNumber = GenerateOrderNumber(order.ID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	m.created = append(m.created, order)
	return nil
}
func (m *orderRepoMock) List(_ context.Context, req *ListRequest) ([]Order, int64, error) {
	return nil, 0, nil
}
func (m *orderRepoMock) Get(_ context.Context, id string) (*Order, error) {
	return nil, ErrOrderNotFound
}
func (m *orderRepoMock) UpdateStatus(_ context.Context, id string, status OrderStatus, _ time.Time) error {
	if m.statusCalls == nil {
		m.statusCalls = map[string]OrderStatus{}
	}
	m.statusCalls[id] = status
	return nil
}
func (m *orderRepoMock) Delete(_ context.Context, ids []string) (int64, error) {
	return m.deleteResult, nil
}

type rentalRepoFake struct {
	rental.Repository
	assets   map[string]rental.Asset
	bookings []rental.Booking
}

func (f *rentalRepoFake) LockAsset(_ context.Context, id string) error {
	if _, ok := f.assets[id]; !ok {
		return rental.ErrAssetNotFound
	}
	return nil
}
func (f *rentalRepoFake) GetAsset(_ context.Context, id string) (*rental.Asset, error) {
	a, ok := f.assets[id]
	if !ok {
		return nil, rental.ErrAssetNotFound
	}
	return &a, nil
}
func (f *rentalRepoFake) ListBookings(_ context.Context, filter rental.BookingFilter) ([]rental.Booking, error) {
	return f.bookings, nil
}
func (f *rentalRepoFake) CreateBookings(_ context.Context, bookings []rental.Booking) error {
	f.bookings = append(f.bookings, bookings...)
	return nil
}

type catalogRepoFake struct {
	catalog.Repository
	stock map[string]int
}

func (f *catalogRepoFake) DecrementStock(_ context.Context, id string, qty int) error {
	if f.stock[id] < qty {
		return fmt.Errorf("%w: product %s", catalog.ErrInsufficientStock, id)
	}
	f.stock[id] -= qty
	return nil
}

type transactorFake struct {
	repos TxRepositories
}

func (t *transactorFake) WithinTransaction(_ context.Context, fn func(repos TxRepositories) error) error {
	return fn(t.repos)
}

type fixture struct {
	svc     *Service
	carts   *cart.Service
	orders  *orderRepoMock
	rentals *rentalRepoFake
	catalog *catalogRepoFake
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		carts:  cart.NewService(cart.NewMemoryStorage(), "storefrontCart", logger.Discard()),
		orders: &orderRepoMock{},
		rentals: &rentalRepoFake{assets: map[string]rental.Asset{
			"egg": {ID: "egg", Name: "7'2 Egg", Stock: 2, Status: rental.AssetStatusActive},
		}},
		catalog: &catalogRepoFake{stock: map[string]int{"tee": 5}},
	}
	tx := &transactorFake{repos: TxRepositories{Orders: f.orders, Rentals: f.rentals, Catalog: f.catalog}}
	f.svc = NewService(f.orders, tx, f.carts, logger.Discard())
	return f
}

func (f *fixture) addTee(qty int) {
	f.carts.AddItem("sess", cart.LineItem{
		ProductID: "tee",
		Kind:      cart.KindStandard,
		Name:      "Logo Tee",
		UnitPrice: decimal.NewFromInt(32),
		Quantity:  qty,
		Variant:   "M",
	})
}

func (f *fixture) addEgg(t *testing.T, qty int, start, end string) {
	r, err := daterange.Parse(start, end)
	require.NoError(t, err)
	f.carts.AddItem("sess", cart.LineItem{
		ProductID: "egg",
		Kind:      cart.KindRental,
		Name:      "7'2 Egg",
		UnitPrice: decimal.NewFromInt(45),
		Quantity:  qty,
		DateRange: &r,
	})
}

var buyer = &CheckoutRequest{Email: "kai@example.com", Name: "Kai"}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Checkout(context.Background(), "sess", buyer)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.orders.created)
}

func TestCheckout_InvalidCustomer(t *testing.T) {
	f := newFixture(t)
	f.addTee(1)

	_, err := f.svc.Checkout(context.Background(), "sess", &CheckoutRequest{Email: "not-an-email", Name: "Kai"})
	assert.ErrorIs(t, err, ErrInvalidCustomer)

	_, err = f.svc.Checkout(context.Background(), "sess", &CheckoutRequest{Email: "kai@example.com", Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidCustomer)
}

func TestCheckout_WritesOrderBookingsAndStock(t *testing.T) {
	f := newFixture(t)
	f.addTee(2)
	f.addEgg(t, 2, "2024-06-01", "2024-06-04")

	order, err := f.svc.Checkout(context.Background(), "sess", buyer)
	require.NoError(t, err)

	assert.Equal(t, OrderStatusPaid, order.Status)
	assert.True(t, decimal.NewFromInt(334).Equal(order.Total), "64 for tees + 45 x 3 days x 2 boards")
	require.Len(t, order.Items, 2)
	assert.Equal(t, 3, order.Items[1].Days)
	assert.Equal(t, "ORD-20240601-ORDER1", order.OrderNumber)

	require.Len(t, f.rentals.bookings, 2, "one booking per unit of quantity")
	for _, b := range f.rentals.bookings {
		assert.Equal(t, "egg", b.AssetID)
		assert.Equal(t, "Kai", b.CustomerName)
		assert.Equal(t, rental.BookingStatusConfirmed, b.Status)
		require.NotNil(t, b.OrderID)
		assert.Equal(t, order.ID, *b.OrderID)
	}

	assert.Equal(t, 3, f.catalog.stock["tee"])
	assert.Empty(t, f.carts.Snapshot("sess").Items, "cart discarded after commit")
}

type notifierMock struct {
	placed []*Order
}

func (n *notifierMock) OrderPlaced(_ context.Context, order *Order) error {
	n.placed = append(n.placed, order)
	return fmt.Errorf("mailbox full")
}

func TestCheckout_NotifiesAfterCommit(t *testing.T) {
	f := newFixture(t)
	notifier := &notifierMock{}
	f.svc.SetNotifier(notifier)
	f.addTee(1)

	order, err := f.svc.Checkout(context.Background(), "sess", buyer)
	require.NoError(t, err, "notification failures do not fail checkout")
	require.Len(t, notifier.placed, 1)
	assert.Same(t, order, notifier.placed[0])
}

func TestCheckout_RentalBookedMeanwhile(t *testing.T) {
	f := newFixture(t)
	f.addEgg(t, 2, "2024-06-01", "2024-06-04")
	f.rentals.bookings = []rental.Booking{{
		AssetID:   "egg",
		DateRange: daterange.New(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)),
		Status:    rental.BookingStatusConfirmed,
	}}

	_, err := f.svc.Checkout(context.Background(), "sess", buyer)
	assert.ErrorIs(t, err, ErrRentalUnavailable)
	assert.Equal(t, 2, f.carts.Snapshot("sess").TotalItemCount, "cart kept for retry")
}

func TestCheckout_RentalWithoutDates(t *testing.T) {
	f := newFixture(t)
	f.carts.AddItem("sess", cart.LineItem{ProductID: "egg", Kind: cart.KindRental, UnitPrice: decimal.NewFromInt(45)})

	_, err := f.svc.Checkout(context.Background(), "sess", buyer)
	assert.ErrorIs(t, err, ErrRentalUnavailable)
	assert.Empty(t, f.rentals.bookings)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	f.addTee(6)

	_, err := f.svc.Checkout(context.Background(), "sess", buyer)
	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)
	assert.Equal(t, 6, f.carts.Snapshot("sess").TotalItemCount)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.UpdateOrderStatus(ctx, "o1", "lost"), ErrInvalidStatus)
	require.NoError(t, f.svc.UpdateOrderStatus(ctx, "o1", OrderStatusShipped))
	assert.Equal(t, OrderStatusShipped, f.orders.statusCalls["o1"])
}

func TestDeleteOrders(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.DeleteOrders(context.Background(), []string{"missing"})
	assert.ErrorIs(t, err, ErrOrderNotFound)

	f.orders.deleteResult = 2
	n, err := f.svc.DeleteOrders(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestGenerateOrderNumber(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD-20240601-1B4E28BA", GenerateOrderNumber("1b4e28ba-2fa1-11d2-883f-0016d3cca427", at))
}
