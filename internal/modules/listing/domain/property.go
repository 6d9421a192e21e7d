package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Property is a real-estate listing. Price is stored the way agents enter it,
// as a formatted display string ("$450,000"); ParsePrice recovers the numeric
// value for filtering and price-history bookkeeping.
type Property struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	AgentID     uuid.UUID      `json:"agent_id" db:"agent_id"`
	Name        string         `json:"name" db:"name"`
	Address     string         `json:"address" db:"address"`
	Price       string         `json:"price" db:"price"`
	Type        string         `json:"type" db:"type"` // e.g. Apartment, House, Villa, Condo
	Bedrooms    int            `json:"bedrooms" db:"bedrooms"`
	Bathrooms   int            `json:"bathrooms" db:"bathrooms"`
	Area        float64        `json:"area" db:"area"`
	Image       string         `json:"image" db:"image"`
	Thumbnail   string         `json:"thumbnail,omitempty" db:"thumbnail"`
	Description string         `json:"description" db:"description"`
	Facilities  pq.StringArray `json:"facilities" db:"facilities"`
	AgentName   string         `json:"agent_name" db:"agent_name"`
	AgentEmail  string         `json:"agent_email" db:"agent_email"`
	AgentAvatar string         `json:"agent_avatar" db:"agent_avatar"`
	Sold        bool           `json:"sold" db:"sold"`
	OwnerName   *string        `json:"owner_name,omitempty" db:"owner_name"`
	OwnerEmail  *string        `json:"owner_email,omitempty" db:"owner_email"`
	OwnerAvatar *string        `json:"owner_avatar,omitempty" db:"owner_avatar"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`

	// Relations
	Gallery []GalleryImage `json:"gallery,omitempty"`
}

// GalleryImage is an additional photo attached to a listing
type GalleryImage struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	Image      string    `json:"image" db:"image"`
}

// Owner identifies the buyer recorded when a listing is marked sold
type Owner struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar,omitempty"`
}

// Review is a user review attached to a property. Reviews are created
// non-public and become visible once an agent approves them.
type Review struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    string    `json:"comment" db:"comment"`
	Public     bool      `json:"public" db:"public"`
	UserName   string    `json:"user_name" db:"user_name"`
	UserEmail  string    `json:"user_email" db:"user_email"`
	UserAvatar string    `json:"user_avatar" db:"user_avatar"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// PriceChange records one price edit on a property
type PriceChange struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	OldPrice   float64   `json:"old_price" db:"old_price"`
	NewPrice   float64   `json:"new_price" db:"new_price"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}

// IsDrop reports whether the change lowered the price
func (c PriceChange) IsDrop() bool {
	return c.NewPrice < c.OldPrice
}

// PropertyFilter contains all possible filters for listing properties
type PropertyFilter struct {
	Type        string // exact type match; "" or "All" means no constraint
	Search      string // free-text over name, address and type
	Limit       int    // ignored when Search is set
	IncludeSold bool
}

// PropertyRepository defines the contract for property data access
type PropertyRepository interface {
	Create(ctx context.Context, property *Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]Property, error)
	Latest(ctx context.Context, n int) ([]Property, error)
	ListUnsold(ctx context.Context) ([]Property, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, newPrice string) error
	Delete(ctx context.Context, id uuid.UUID) error
	MarkSold(ctx context.Context, id uuid.UUID, owner Owner) error
	MarkUnsold(ctx context.Context, id uuid.UUID) error
}

// ReviewRepository defines the contract for review data access
type ReviewRepository interface {
	Add(ctx context.Context, review *Review) error
	Approve(ctx context.Context, propertyID, reviewID uuid.UUID) error
	ListPublic(ctx context.Context, propertyID uuid.UUID) ([]Review, error)
}

// FavoriteRepository defines the contract for per-user property favorites
type FavoriteRepository interface {
	Add(ctx context.Context, userID, propertyID uuid.UUID) error
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error
	IsFavorited(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Property, error)
}

// PriceHistoryRepository records price edits and serves the drop sweep
type PriceHistoryRepository interface {
	Record(ctx context.Context, change *PriceChange) error
	DropsSince(ctx context.Context, since time.Time) ([]PriceChange, error)
}

// AverageRating computes the mean rating over a set of reviews.
// Returns 0 when there are no reviews.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
