package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/arjunm29/nestfind/internal/modules/listing/domain"
)

type ListingService interface {
	CreateProperty(ctx context.Context, property *domain.Property) error
	GetProperty(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	ListProperties(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	LatestProperties(ctx context.Context) ([]domain.Property, error)
	DeleteProperty(ctx context.Context, id, agentID uuid.UUID) error
	ChangePrice(ctx context.Context, id, agentID uuid.UUID, newPrice string) error
	MarkSold(ctx context.Context, id, agentID uuid.UUID, owner domain.Owner) error
	MarkUnsold(ctx context.Context, id, agentID uuid.UUID) error

	AddReview(ctx context.Context, review *domain.Review) error
	ApproveReview(ctx context.Context, propertyID, reviewID, agentID uuid.UUID) error
	PublicReviews(ctx context.Context, propertyID uuid.UUID) ([]domain.Review, float64, error)

	ToggleFavorite(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]domain.Property, error)
}

// latestCount matches the "latest listings" carousel on the home screen
const latestCount = 3

type listingService struct {
	properties domain.PropertyRepository
	reviews    domain.ReviewRepository
	favorites  domain.FavoriteRepository
	history    domain.PriceHistoryRepository
}

func NewListingService(
	properties domain.PropertyRepository,
	reviews domain.ReviewRepository,
	favorites domain.FavoriteRepository,
	history domain.PriceHistoryRepository,
) ListingService {
	return &listingService{
		properties: properties,
		reviews:    reviews,
		favorites:  favorites,
		history:    history,
	}
}

func (s *listingService) CreateProperty(ctx context.Context, property *domain.Property) error {
	if _, err := domain.ParsePrice(property.Price); err != nil {
		return err
	}
	return s.properties.Create(ctx, property)
}

func (s *listingService) GetProperty(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	return s.properties.GetByID(ctx, id)
}

func (s *listingService) ListProperties(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	return s.properties.List(ctx, filter)
}

func (s *listingService) LatestProperties(ctx context.Context) ([]domain.Property, error) {
	return s.properties.Latest(ctx, latestCount)
}

// requireOwnership loads the property and verifies the acting agent created it
func (s *listingService) requireOwnership(ctx context.Context, id, agentID uuid.UUID) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.AgentID != agentID {
		return nil, domain.ErrUnauthorized
	}
	return property, nil
}

func (s *listingService) DeleteProperty(ctx context.Context, id, agentID uuid.UUID) error {
	if _, err := s.requireOwnership(ctx, id, agentID); err != nil {
		return err
	}
	return s.properties.Delete(ctx, id)
}

// ChangePrice updates the listed price and appends a price_history row when
// both the old and new price parse. The history row is what the price-drop
// sweep reads, so a malformed price simply produces no drop event.
func (s *listingService) ChangePrice(ctx context.Context, id, agentID uuid.UUID, newPrice string) error {
	property, err := s.requireOwnership(ctx, id, agentID)
	if err != nil {
		return err
	}

	newValue, err := domain.ParsePrice(newPrice)
	if err != nil {
		return err
	}

	if err := s.properties.UpdatePrice(ctx, id, newPrice); err != nil {
		return err
	}

	if oldValue, err := domain.ParsePrice(property.Price); err == nil && oldValue != newValue {
		change := &domain.PriceChange{
			PropertyID: id,
			OldPrice:   oldValue,
			NewPrice:   newValue,
		}
		if err := s.history.Record(ctx, change); err != nil {
			return err
		}
	}
	return nil
}

func (s *listingService) MarkSold(ctx context.Context, id, agentID uuid.UUID, owner domain.Owner) error {
	if _, err := s.requireOwnership(ctx, id, agentID); err != nil {
		return err
	}
	return s.properties.MarkSold(ctx, id, owner)
}

func (s *listingService) MarkUnsold(ctx context.Context, id, agentID uuid.UUID) error {
	if _, err := s.requireOwnership(ctx, id, agentID); err != nil {
		return err
	}
	return s.properties.MarkUnsold(ctx, id)
}

func (s *listingService) AddReview(ctx context.Context, review *domain.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return domain.ErrInvalidRating
	}
	if _, err := s.properties.GetByID(ctx, review.PropertyID); err != nil {
		return err
	}
	return s.reviews.Add(ctx, review)
}

func (s *listingService) ApproveReview(ctx context.Context, propertyID, reviewID, agentID uuid.UUID) error {
	if _, err := s.requireOwnership(ctx, propertyID, agentID); err != nil {
		return err
	}
	return s.reviews.Approve(ctx, propertyID, reviewID)
}

func (s *listingService) PublicReviews(ctx context.Context, propertyID uuid.UUID) ([]domain.Review, float64, error) {
	reviews, err := s.reviews.ListPublic(ctx, propertyID)
	if err != nil {
		return nil, 0, err
	}
	return reviews, domain.AverageRating(reviews), nil
}

func (s *listingService) ToggleFavorite(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	favorited, err := s.favorites.IsFavorited(ctx, userID, propertyID)
	if err != nil {
		return false, err
	}

	if favorited {
		if err := s.favorites.Remove(ctx, userID, propertyID); err != nil {
			return true, err // still favorited if remove failed
		}
		return false, nil
	}

	if err := s.favorites.Add(ctx, userID, propertyID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *listingService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]domain.Property, error) {
	return s.favorites.ListByUser(ctx, userID)
}
