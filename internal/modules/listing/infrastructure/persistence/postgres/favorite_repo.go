package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/arjunm29/nestfind/internal/modules/listing/domain"
)

type PgFavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *PgFavoriteRepository {
	return &PgFavoriteRepository{db: db}
}

func (r *PgFavoriteRepository) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO property_favorites (user_id, property_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, userID, propertyID)
	return err
}

func (r *PgFavoriteRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM property_favorites WHERE user_id = $1 AND property_id = $2`,
		userID, propertyID)
	return err
}

func (r *PgFavoriteRepository) IsFavorited(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM property_favorites WHERE user_id = $1 AND property_id = $2`,
		userID, propertyID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PgFavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Property, error) {
	var properties []domain.Property
	err := r.db.SelectContext(ctx, &properties, `
		SELECT p.* FROM properties p
		JOIN property_favorites f ON f.property_id = p.id
		WHERE f.user_id = $1
		ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return properties, nil
}
