package property

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/surfshop-backend/internal/pkg/logger"
)

type repoMock struct {
	listing   *Property
	inquiries map[string]*Inquiry
}

func newRepoMock() *repoMock {
	return &repoMock{
		listing: &Property{
			ID:        MainListingID,
			Name:      "The Surf Shack",
			Price:     decimal.NewFromInt(250),
			MaxGuests: 4,
		},
		inquiries: map[string]*Inquiry{},
	}
}

func (m *repoMock) GetProperty(_ context.Context, id string) (*Property, error) {
	if m.listing == nil || id != m.listing.ID {
		return nil, ErrListingNotFound
	}
	cp := *m.listing
	return &cp, nil
}
func (m *repoMock) SaveProperty(_ context.Context, property *Property) error {
	cp := *property
	m.listing = &cp
	return nil
}
func (m *repoMock) CreateInquiry(_ context.Context, inquiry *Inquiry) error {
	inquiry.ID = "inq-1"
	m.inquiries[inquiry.ID] = inquiry
	return nil
}
func (m *repoMock) GetInquiry(_ context.Context, id string) (*Inquiry, error) {
	inq, ok := m.inquiries[id]
	if !ok {
		return nil, ErrInquiryNotFound
	}
	cp := *inq
	return &cp, nil
}
func (m *repoMock) ListInquiries(_ context.Context, status InquiryStatus) ([]Inquiry, error) {
	var out []Inquiry
	for _, inq := range m.inquiries {
		if status == "" || inq.Status == status {
			out = append(out, *inq)
		}
	}
	return out, nil
}
func (m *repoMock) UpdateInquiryStatus(_ context.Context, id string, status InquiryStatus) error {
	inq, ok := m.inquiries[id]
	if !ok {
		return ErrInquiryNotFound
	}
	inq.Status = status
	return nil
}
func (m *repoMock) DeleteInquiry(_ context.Context, id string) error {
	if _, ok := m.inquiries[id]; !ok {
		return ErrInquiryNotFound
	}
	delete(m.inquiries, id)
	return nil
}

type notifierMock struct {
	calls int
	err   error
}

func (n *notifierMock) InquiryReceived(context.Context, *Inquiry, *Property) error {
	n.calls++
	return n.err
}

func validInquiry() *InquiryRequest {
	return &InquiryRequest{
		GuestName:     "Kai",
		ContactMethod: ContactEmail,
		ContactValue:  "kai@example.com",
		CheckIn:       "2024-07-01",
		CheckOut:      "2024-07-04",
		Guests:        2,
		Message:       " Bringing boards ",
	}
}

func TestSubmitInquiry_Valid(t *testing.T) {
	repo := newRepoMock()
	notifier := &notifierMock{}
	svc := NewService(repo, notifier, logger.Discard())

	inquiry, err := svc.SubmitInquiry(context.Background(), validInquiry())
	require.NoError(t, err)

	assert.Equal(t, InquiryStatusNew, inquiry.Status)
	assert.Equal(t, 3, inquiry.Nights())
	assert.Equal(t, "Bringing boards", inquiry.Message)
	assert.Equal(t, 1, notifier.calls)
	assert.True(t, decimal.NewFromInt(750).Equal(repo.listing.EstimatedTotal(inquiry.Stay)))
}

func TestSubmitInquiry_NotifierFailureIsNotFatal(t *testing.T) {
	svc := NewService(newRepoMock(), &notifierMock{err: errors.New("smtp down")}, logger.Discard())

	_, err := svc.SubmitInquiry(context.Background(), validInquiry())
	assert.NoError(t, err)
}

func TestSubmitInquiry_Validation(t *testing.T) {
	svc := NewService(newRepoMock(), nil, logger.Discard())
	ctx := context.Background()

	cases := map[string]func(r *InquiryRequest){
		"too many guests":        func(r *InquiryRequest) { r.Guests = 5 },
		"negative guests":        func(r *InquiryRequest) { r.Guests = -1 },
		"check-out before":       func(r *InquiryRequest) { r.CheckOut = "2024-06-30" },
		"same-day stay":          func(r *InquiryRequest) { r.CheckOut = r.CheckIn },
		"bad date":               func(r *InquiryRequest) { r.CheckIn = "July 1st" },
		"unknown contact method": func(r *InquiryRequest) { r.ContactMethod = "pigeon" },
		"bad email":              func(r *InquiryRequest) { r.ContactValue = "kai-at-example" },
		"missing name":           func(r *InquiryRequest) { r.GuestName = "  " },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validInquiry()
			mutate(req)
			_, err := svc.SubmitInquiry(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInquiry)
		})
	}
}

func TestSubmitInquiry_PhoneSkipsEmailCheck(t *testing.T) {
	svc := NewService(newRepoMock(), nil, logger.Discard())
	req := validInquiry()
	req.ContactMethod = ContactText
	req.ContactValue = "+1 858 555 0100"
	req.Guests = 0

	inquiry, err := svc.SubmitInquiry(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, inquiry.Guests)
}

func TestSubmitInquiry_NoListing(t *testing.T) {
	repo := newRepoMock()
	repo.listing = nil
	svc := NewService(repo, nil, logger.Discard())

	_, err := svc.SubmitInquiry(context.Background(), validInquiry())
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestToggleAndDeleteInquiry(t *testing.T) {
	repo := newRepoMock()
	svc := NewService(repo, nil, logger.Discard())
	ctx := context.Background()

	inquiry, err := svc.SubmitInquiry(ctx, validInquiry())
	require.NoError(t, err)

	toggled, err := svc.ToggleInquiryStatus(ctx, inquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, InquiryStatusContacted, toggled.Status)

	toggled, err = svc.ToggleInquiryStatus(ctx, inquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, InquiryStatusNew, toggled.Status)

	require.NoError(t, svc.DeleteInquiry(ctx, inquiry.ID))
	assert.ErrorIs(t, svc.DeleteInquiry(ctx, inquiry.ID), ErrInquiryNotFound)
}

func TestUpdateListing(t *testing.T) {
	repo := newRepoMock()
	svc := NewService(repo, nil, logger.Discard())
	ctx := context.Background()

	_, err := svc.UpdateListing(ctx, &ListingRequest{Name: "Shack", MaxGuests: 0})
	assert.ErrorIs(t, err, ErrInvalidListing)

	listing, err := svc.UpdateListing(ctx, &ListingRequest{Name: " Shack ", Price: decimal.NewFromInt(300), MaxGuests: 6})
	require.NoError(t, err)
	assert.Equal(t, MainListingID, listing.ID)
	assert.Equal(t, "Shack", listing.Name)
	assert.NotNil(t, listing.Amenities)
	assert.Equal(t, 6, repo.listing.MaxGuests)
}
