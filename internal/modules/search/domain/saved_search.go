package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SearchCriteria is the filter set a user wants monitored. Every field is
// optional; an unset field imposes no constraint.
type SearchCriteria struct {
	Location     *string  `json:"location,omitempty" db:"location"`
	PropertyType *string  `json:"property_type,omitempty" db:"property_type"`
	MinPrice     *float64 `json:"min_price,omitempty" db:"min_price"`
	MaxPrice     *float64 `json:"max_price,omitempty" db:"max_price"`
	Bedrooms     *int     `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms    *int     `json:"bathrooms,omitempty" db:"bathrooms"`
}

// SavedSearch is a persisted set of criteria monitored for new matches.
// LastChecked is the checkpoint separating already-seen from new listings;
// it only ever moves forward and is the sole de-duplication mechanism.
type SavedSearch struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	UserID      uuid.UUID      `json:"user_id" db:"user_id"`
	Name        string         `json:"name" db:"name"`
	Criteria    SearchCriteria `json:"criteria" db:"-"`
	IsActive    bool           `json:"is_active" db:"is_active"`
	LastChecked time.Time      `json:"last_checked" db:"last_checked"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

var (
	ErrSearchNotFound       = errors.New("saved search not found")
	ErrEvaluationInProgress = errors.New("search evaluation already in progress")
)

// SavedSearchRepository defines the contract for saved-search data access
type SavedSearchRepository interface {
	Create(ctx context.Context, search *SavedSearch) error
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]SavedSearch, error)
	ListUserIDsWithActiveSearches(ctx context.Context) ([]uuid.UUID, error)
	UpdateLastChecked(ctx context.Context, searchID uuid.UUID, checked time.Time) error
	Deactivate(ctx context.Context, searchID, userID uuid.UUID) error
}
