package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/arjunm29/nestfind/internal/modules/search/domain"
)

type PgSavedSearchRepository struct {
	db *sqlx.DB
}

func NewSavedSearchRepository(db *sqlx.DB) *PgSavedSearchRepository {
	return &PgSavedSearchRepository{db: db}
}

// savedSearchRow flattens the criteria columns for sqlx scanning
type savedSearchRow struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	Name         string    `db:"name"`
	Location     *string   `db:"location"`
	PropertyType *string   `db:"property_type"`
	MinPrice     *float64  `db:"min_price"`
	MaxPrice     *float64  `db:"max_price"`
	Bedrooms     *int      `db:"bedrooms"`
	Bathrooms    *int      `db:"bathrooms"`
	IsActive     bool      `db:"is_active"`
	LastChecked  time.Time `db:"last_checked"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r savedSearchRow) toDomain() domain.SavedSearch {
	return domain.SavedSearch{
		ID:     r.ID,
		UserID: r.UserID,
		Name:   r.Name,
		Criteria: domain.SearchCriteria{
			Location:     r.Location,
			PropertyType: r.PropertyType,
			MinPrice:     r.MinPrice,
			MaxPrice:     r.MaxPrice,
			Bedrooms:     r.Bedrooms,
			Bathrooms:    r.Bathrooms,
		},
		IsActive:    r.IsActive,
		LastChecked: r.LastChecked,
		CreatedAt:   r.CreatedAt,
	}
}

func (r *PgSavedSearchRepository) Create(ctx context.Context, search *domain.SavedSearch) error {
	if search.ID == uuid.Nil {
		search.ID = uuid.New()
	}
	now := time.Now()
	if search.CreatedAt.IsZero() {
		search.CreatedAt = now
	}
	// A fresh search only watches properties created from now on
	if search.LastChecked.IsZero() {
		search.LastChecked = now
	}

	row := savedSearchRow{
		ID:           search.ID,
		UserID:       search.UserID,
		Name:         search.Name,
		Location:     search.Criteria.Location,
		PropertyType: search.Criteria.PropertyType,
		MinPrice:     search.Criteria.MinPrice,
		MaxPrice:     search.Criteria.MaxPrice,
		Bedrooms:     search.Criteria.Bedrooms,
		Bathrooms:    search.Criteria.Bathrooms,
		IsActive:     search.IsActive,
		LastChecked:  search.LastChecked,
		CreatedAt:    search.CreatedAt,
	}

	query := `
		INSERT INTO saved_searches (
			id, user_id, name, location, property_type, min_price, max_price,
			bedrooms, bathrooms, is_active, last_checked, created_at
		) VALUES (
			:id, :user_id, :name, :location, :property_type, :min_price, :max_price,
			:bedrooms, :bathrooms, :is_active, :last_checked, :created_at
		)`
	_, err := r.db.NamedExecContext(ctx, query, row)
	return err
}

func (r *PgSavedSearchRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedSearch, error) {
	var rows []savedSearchRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM saved_searches
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}

	searches := make([]domain.SavedSearch, 0, len(rows))
	for _, row := range rows {
		searches = append(searches, row.toDomain())
	}
	return searches, nil
}

func (r *PgSavedSearchRepository) ListUserIDsWithActiveSearches(ctx context.Context) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	err := r.db.SelectContext(ctx, &userIDs,
		`SELECT DISTINCT user_id FROM saved_searches WHERE is_active = TRUE`)
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

// UpdateLastChecked advances the checkpoint. The WHERE guard keeps it
// forward-only even if two instances race; a zero row count means the
// checkpoint was already ahead (or the search is gone) and is not an error.
func (r *PgSavedSearchRepository) UpdateLastChecked(ctx context.Context, searchID uuid.UUID, checked time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE saved_searches SET last_checked = $1 WHERE id = $2 AND last_checked < $1`,
		checked, searchID)
	return err
}

func (r *PgSavedSearchRepository) Deactivate(ctx context.Context, searchID, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE saved_searches SET is_active = FALSE WHERE id = $1 AND user_id = $2`,
		searchID, userID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrSearchNotFound
	}
	return nil
}
