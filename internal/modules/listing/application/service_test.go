package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arjunm29/nestfind/internal/modules/listing/domain"
)

type mockPropertyRepo struct {
	mock.Mock
}

func (m *mockPropertyRepo) Create(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *mockPropertyRepo) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *mockPropertyRepo) Latest(ctx context.Context, n int) ([]domain.Property, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *mockPropertyRepo) ListUnsold(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *mockPropertyRepo) UpdatePrice(ctx context.Context, id uuid.UUID, newPrice string) error {
	args := m.Called(ctx, id, newPrice)
	return args.Error(0)
}

func (m *mockPropertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPropertyRepo) MarkSold(ctx context.Context, id uuid.UUID, owner domain.Owner) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

func (m *mockPropertyRepo) MarkUnsold(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Add(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) Approve(ctx context.Context, propertyID, reviewID uuid.UUID) error {
	args := m.Called(ctx, propertyID, reviewID)
	return args.Error(0)
}

func (m *mockReviewRepo) ListPublic(ctx context.Context, propertyID uuid.UUID) ([]domain.Review, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

type mockFavoriteRepo struct {
	mock.Mock
}

func (m *mockFavoriteRepo) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	args := m.Called(ctx, userID, propertyID)
	return args.Error(0)
}

func (m *mockFavoriteRepo) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	args := m.Called(ctx, userID, propertyID)
	return args.Error(0)
}

func (m *mockFavoriteRepo) IsFavorited(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Property, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

type mockHistoryRepo struct {
	mock.Mock
}

func (m *mockHistoryRepo) Record(ctx context.Context, change *domain.PriceChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *mockHistoryRepo) DropsSince(ctx context.Context, since time.Time) ([]domain.PriceChange, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceChange), args.Error(1)
}

type serviceMocks struct {
	properties *mockPropertyRepo
	reviews    *mockReviewRepo
	favorites  *mockFavoriteRepo
	history    *mockHistoryRepo
}

func newServiceUnderTest() (ListingService, *serviceMocks) {
	m := &serviceMocks{
		properties: new(mockPropertyRepo),
		reviews:    new(mockReviewRepo),
		favorites:  new(mockFavoriteRepo),
		history:    new(mockHistoryRepo),
	}
	return NewListingService(m.properties, m.reviews, m.favorites, m.history), m
}

func ownedProperty(id, agentID uuid.UUID, price string) *domain.Property {
	return &domain.Property{
		ID:      id,
		AgentID: agentID,
		Name:    "Skyline Heights",
		Address: "12 Downtown Avenue",
		Price:   price,
		Type:    "Apartment",
	}
}

func TestCreateProperty(t *testing.T) {
	ctx := context.Background()

	t.Run("valid price", func(t *testing.T) {
		svc, m := newServiceUnderTest()
		property := &domain.Property{Name: "Skyline Heights", Price: "$450,000"}
		m.properties.On("Create", ctx, property).Return(nil).Once()

		assert.NoError(t, svc.CreateProperty(ctx, property))
		m.properties.AssertExpectations(t)
	})

	t.Run("malformed price is rejected up front", func(t *testing.T) {
		svc, m := newServiceUnderTest()
		property := &domain.Property{Name: "Skyline Heights", Price: "Contact agent"}

		err := svc.CreateProperty(ctx, property)
		assert.ErrorIs(t, err, domain.ErrMalformedPrice)
		m.properties.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestChangePrice(t *testing.T) {
	ctx := context.Background()
	propertyID := uuid.New()
	agentID := uuid.New()

	t.Run("records a history row on change", func(t *testing.T) {
		svc, m := newServiceUnderTest()
		m.properties.On("GetByID", ctx, propertyID).
			Return(ownedProperty(propertyID, agentID, "$500,000"), nil).Once()
		m.properties.On("UpdatePrice", ctx, propertyID, "$450,000").Return(nil).Once()
		m.history.On("Record", ctx, mock.MatchedBy(func(c *domain.PriceChange) bool {
			return c.PropertyID == propertyID && c.OldPrice == 500000 && c.NewPrice == 450000
		})).Return(nil).Once()

		require.NoError(t, svc.ChangePrice(ctx, propertyID, agentID, "$450,000"))
		m.history.AssertExpectations(t)
	})

	t.Run("same numeric price records nothing", func(t *testing.T) {
		svc, m := newServiceUnderTest()
		m.properties.On("GetByID", ctx, propertyID).
			Return(ownedProperty(propertyID, agentID, "$450,000"), nil).Once()
		m.properties.On("UpdatePrice", ctx, propertyID, "450000").Return(nil).Once()

		require.NoError(t, svc.ChangePrice(ctx, propertyID, agentID, "450000"))
		m.history.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("malformed old price skips history but updates the listing", func(t *testing.T) {
		svc, m := newServiceUnderTest()
		m.properties.On("GetByID", ctx, propertyID).
			Return(ownedProperty(propertyID, agentID, "Contact agent"), nil).Once()
		m.properties.On("UpdatePrice", ctx, propertyID, "$450,000").Return(nil).Once()

		require.NoError(t, svc.ChangePrice(ctx, propertyID, agentID, "$450,000"))
		m.history.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("malformed new price is rejected", func(t *testing.T) {
		svc, m := newServiceUnderTest()
		m.properties.On("GetByID", ctx, propertyID).
			Return(ownedProperty(propertyID, agentID, "$500,000"), nil).Once()

		err := svc.ChangePrice(ctx, propertyID, agentID, "whatever")
		assert.ErrorIs(t, err, domain.ErrMalformedPrice)
		m.properties.AssertNotCalled(t, "UpdatePrice", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("another agent's listing", func(t *testing.T) {
		svc, m := newServiceUnderTest()
		m.properties.On("GetByID", ctx, propertyID).
			Return(ownedProperty(propertyID, uuid.New(), "$500,000"), nil).Once()

		err := svc.ChangePrice(ctx, propertyID, agentID, "$450,000")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestDeleteProperty_OwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	propertyID := uuid.New()
	agentID := uuid.New()

	svc, m := newServiceUnderTest()
	m.properties.On("GetByID", ctx, propertyID).
		Return(ownedProperty(propertyID, agentID, "$450,000"), nil).Once()
	m.properties.On("Delete", ctx, propertyID).Return(nil).Once()

	require.NoError(t, svc.DeleteProperty(ctx, propertyID, agentID))

	m.properties.On("GetByID", ctx, propertyID).
		Return(ownedProperty(propertyID, uuid.New(), "$450,000"), nil).Once()
	err := svc.DeleteProperty(ctx, propertyID, agentID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMarkSoldAndUnsold(t *testing.T) {
	ctx := context.Background()
	propertyID := uuid.New()
	agentID := uuid.New()
	owner := domain.Owner{Name: "Happy Buyer", Email: "buyer@example.com"}

	svc, m := newServiceUnderTest()
	m.properties.On("GetByID", ctx, propertyID).
		Return(ownedProperty(propertyID, agentID, "$450,000"), nil).Twice()
	m.properties.On("MarkSold", ctx, propertyID, owner).Return(nil).Once()
	m.properties.On("MarkUnsold", ctx, propertyID).Return(nil).Once()

	require.NoError(t, svc.MarkSold(ctx, propertyID, agentID, owner))
	require.NoError(t, svc.MarkUnsold(ctx, propertyID, agentID))
	m.properties.AssertExpectations(t)
}

func TestAddReview(t *testing.T) {
	ctx := context.Background()
	propertyID := uuid.New()

	t.Run("valid review", func(t *testing.T) {
		svc, m := newServiceUnderTest()
		review := &domain.Review{PropertyID: propertyID, Rating: 4, Comment: "Great view"}
		m.properties.On("GetByID", ctx, propertyID).
			Return(ownedProperty(propertyID, uuid.New(), "$450,000"), nil).Once()
		m.reviews.On("Add", ctx, review).Return(nil).Once()

		assert.NoError(t, svc.AddReview(ctx, review))
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc, m := newServiceUnderTest()
		err := svc.AddReview(ctx, &domain.Review{PropertyID: propertyID, Rating: 6})
		assert.ErrorIs(t, err, domain.ErrInvalidRating)

		err = svc.AddReview(ctx, &domain.Review{PropertyID: propertyID, Rating: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
		m.reviews.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("unknown property", func(t *testing.T) {
		svc, m := newServiceUnderTest()
		m.properties.On("GetByID", ctx, propertyID).
			Return(nil, domain.ErrPropertyNotFound).Once()

		err := svc.AddReview(ctx, &domain.Review{PropertyID: propertyID, Rating: 3})
		assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
	})
}

func TestPublicReviews_AverageRating(t *testing.T) {
	ctx := context.Background()
	propertyID := uuid.New()

	svc, m := newServiceUnderTest()
	m.reviews.On("ListPublic", ctx, propertyID).Return([]domain.Review{
		{Rating: 5}, {Rating: 4}, {Rating: 3},
	}, nil).Once()

	reviews, avg, err := svc.PublicReviews(ctx, propertyID)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)
	assert.InDelta(t, 4.0, avg, 0.001)
}

func TestToggleFavorite(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	propertyID := uuid.New()

	t.Run("adds when not favorited", func(t *testing.T) {
		svc, m := newServiceUnderTest()
		m.favorites.On("IsFavorited", ctx, userID, propertyID).Return(false, nil).Once()
		m.favorites.On("Add", ctx, userID, propertyID).Return(nil).Once()

		favorited, err := svc.ToggleFavorite(ctx, userID, propertyID)
		require.NoError(t, err)
		assert.True(t, favorited)
	})

	t.Run("removes when already favorited", func(t *testing.T) {
		svc, m := newServiceUnderTest()
		m.favorites.On("IsFavorited", ctx, userID, propertyID).Return(true, nil).Once()
		m.favorites.On("Remove", ctx, userID, propertyID).Return(nil).Once()

		favorited, err := svc.ToggleFavorite(ctx, userID, propertyID)
		require.NoError(t, err)
		assert.False(t, favorited)
	})
}

func TestLatestProperties(t *testing.T) {
	ctx := context.Background()
	svc, m := newServiceUnderTest()
	m.properties.On("Latest", ctx, 3).Return([]domain.Property{{}, {}, {}}, nil).Once()

	latest, err := svc.LatestProperties(ctx)
	require.NoError(t, err)
	assert.Len(t, latest, 3)
	m.properties.AssertExpectations(t)
}
