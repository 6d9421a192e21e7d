package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/arjunm29/nestfind/internal/modules/listing/domain"
)

type PgReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *PgReviewRepository {
	return &PgReviewRepository{db: db}
}

func (r *PgReviewRepository) Add(ctx context.Context, review *domain.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	// Reviews start hidden until an agent approves them
	review.Public = false

	query := `
		INSERT INTO property_reviews (id, property_id, rating, comment, public, user_name, user_email, user_avatar, created_at)
		VALUES (:id, :property_id, :rating, :comment, :public, :user_name, :user_email, :user_avatar, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, review)
	return err
}

func (r *PgReviewRepository) Approve(ctx context.Context, propertyID, reviewID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE property_reviews SET public = TRUE WHERE id = $1 AND property_id = $2`,
		reviewID, propertyID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *PgReviewRepository) ListPublic(ctx context.Context, propertyID uuid.UUID) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.SelectContext(ctx, &reviews, `
		SELECT * FROM property_reviews
		WHERE property_id = $1 AND public = TRUE
		ORDER BY created_at DESC`, propertyID)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
