package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/arjunm29/nestfind/internal/modules/listing/domain"
)

type PgPropertyRepository struct {
	db *sqlx.DB
}

func NewPropertyRepository(db *sqlx.DB) *PgPropertyRepository {
	return &PgPropertyRepository{db: db}
}

func (r *PgPropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO properties (
            id, agent_id, name, address, price, type, bedrooms, bathrooms,
            area, image, thumbnail, description, facilities,
            agent_name, agent_email, agent_avatar, sold, created_at, updated_at
        ) VALUES (
            :id, :agent_id, :name, :address, :price, :type, :bedrooms, :bathrooms,
            :area, :image, :thumbnail, :description, :facilities,
            :agent_name, :agent_email, :agent_avatar, :sold, :created_at, :updated_at
        )`

	if _, err = tx.NamedExecContext(ctx, query, p); err != nil {
		return err
	}

	for i := range p.Gallery {
		img := &p.Gallery[i]
		if img.ID == uuid.Nil {
			img.ID = uuid.New()
		}
		img.PropertyID = p.ID

		galleryQuery := `INSERT INTO property_gallery (id, property_id, image) VALUES ($1, $2, $3)`
		if _, err = tx.ExecContext(ctx, galleryQuery, img.ID, img.PropertyID, img.Image); err != nil {
			return fmt.Errorf("failed to insert gallery image: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PgPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	p := &domain.Property{}
	err := r.db.GetContext(ctx, p, `SELECT * FROM properties WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.db.SelectContext(ctx, &p.Gallery,
		`SELECT * FROM property_gallery WHERE property_id = $1`, id); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns properties newest first. The type filter and free-text search
// are applied in SQL; the limit is skipped while searching, mirroring how the
// mobile client expects search to scan the full inventory.
func (r *PgPropertyRepository) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	var conditions []string
	var args []interface{}

	if filter.Type != "" && !strings.EqualFold(filter.Type, "all") {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(name ILIKE $%d OR address ILIKE $%d OR type ILIKE $%d)", n, n, n))
	}
	if !filter.IncludeSold {
		conditions = append(conditions, "sold = FALSE")
	}

	query := `SELECT * FROM properties`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Search == "" && filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var properties []domain.Property
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PgPropertyRepository) Latest(ctx context.Context, n int) ([]domain.Property, error) {
	var properties []domain.Property
	err := r.db.SelectContext(ctx, &properties,
		`SELECT * FROM properties ORDER BY created_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PgPropertyRepository) ListUnsold(ctx context.Context) ([]domain.Property, error) {
	var properties []domain.Property
	err := r.db.SelectContext(ctx, &properties,
		`SELECT * FROM properties WHERE sold = FALSE ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PgPropertyRepository) UpdatePrice(ctx context.Context, id uuid.UUID, newPrice string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE properties SET price = $1, updated_at = $2 WHERE id = $3`,
		newPrice, time.Now(), id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PgPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PgPropertyRepository) MarkSold(ctx context.Context, id uuid.UUID, owner domain.Owner) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE properties
		SET sold = TRUE, owner_name = $1, owner_email = $2, owner_avatar = $3, updated_at = $4
		WHERE id = $5`,
		owner.Name, owner.Email, owner.Avatar, time.Now(), id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PgPropertyRepository) MarkUnsold(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE properties
		SET sold = FALSE, owner_name = NULL, owner_email = NULL, owner_avatar = NULL, updated_at = $1
		WHERE id = $2`,
		time.Now(), id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}
