package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/arjunm29/nestfind/internal/modules/listing/domain"
)

type PgPriceHistoryRepository struct {
	db *sqlx.DB
}

func NewPriceHistoryRepository(db *sqlx.DB) *PgPriceHistoryRepository {
	return &PgPriceHistoryRepository{db: db}
}

func (r *PgPriceHistoryRepository) Record(ctx context.Context, change *domain.PriceChange) error {
	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}
	if change.RecordedAt.IsZero() {
		change.RecordedAt = time.Now()
	}

	query := `
		INSERT INTO price_history (id, property_id, old_price, new_price, recorded_at)
		VALUES (:id, :property_id, :old_price, :new_price, :recorded_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, change)
	return err
}

func (r *PgPriceHistoryRepository) DropsSince(ctx context.Context, since time.Time) ([]domain.PriceChange, error) {
	var changes []domain.PriceChange
	err := r.db.SelectContext(ctx, &changes, `
		SELECT * FROM price_history
		WHERE recorded_at > $1 AND new_price < old_price
		ORDER BY recorded_at ASC`, since)
	if err != nil {
		return nil, err
	}
	return changes, nil
}
