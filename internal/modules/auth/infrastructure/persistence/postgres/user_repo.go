package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/arjunm29/nestfind/internal/modules/auth/domain"
)

type PgUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates and returns a new PostgreSQL-based user repository.
func NewUserRepository(db *sqlx.DB) *PgUserRepository {
	return &PgUserRepository{db: db}
}

// userRow flattens the notification preference columns for sqlx scanning
type userRow struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Role         string    `db:"role"`
	Phone        *string   `db:"phone"`
	AvatarUrl    *string   `db:"avatar_url"`
	PushToken    *string   `db:"push_token"`

	NotifyNewProperty  bool `db:"notify_new_property"`
	NotifyPriceDrop    bool `db:"notify_price_drop"`
	NotifyOpenHouse    bool `db:"notify_open_house"`
	NotifyMarketUpdate bool `db:"notify_market_update"`
	NotifyAgentMessage bool `db:"notify_agent_message"`
	NotifySavedSearch  bool `db:"notify_saved_search"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		Role:         domain.UserRole(r.Role),
		Phone:        r.Phone,
		AvatarUrl:    r.AvatarUrl,
		PushToken:    r.PushToken,
		Preferences: domain.NotificationPreferences{
			NewProperty:  r.NotifyNewProperty,
			PriceDrop:    r.NotifyPriceDrop,
			OpenHouse:    r.NotifyOpenHouse,
			MarketUpdate: r.NotifyMarketUpdate,
			AgentMessage: r.NotifyAgentMessage,
			SavedSearch:  r.NotifySavedSearch,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Create inserts a new user record into the database. If the user's CreatedAt
// or UpdatedAt timestamps are zero values they are set to the current time.
func (r *PgUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}

	row := userRow{
		ID:                 user.ID,
		Email:              user.Email,
		PasswordHash:       user.PasswordHash,
		Name:               user.Name,
		Role:               string(user.Role),
		Phone:              user.Phone,
		AvatarUrl:          user.AvatarUrl,
		PushToken:          user.PushToken,
		NotifyNewProperty:  user.Preferences.NewProperty,
		NotifyPriceDrop:    user.Preferences.PriceDrop,
		NotifyOpenHouse:    user.Preferences.OpenHouse,
		NotifyMarketUpdate: user.Preferences.MarketUpdate,
		NotifyAgentMessage: user.Preferences.AgentMessage,
		NotifySavedSearch:  user.Preferences.SavedSearch,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}

	query := `
		INSERT INTO users (
			id, email, password_hash, name, role, phone, avatar_url, push_token,
			notify_new_property, notify_price_drop, notify_open_house,
			notify_market_update, notify_agent_message, notify_saved_search,
			created_at, updated_at
		) VALUES (
			:id, :email, :password_hash, :name, :role, :phone, :avatar_url, :push_token,
			:notify_new_property, :notify_price_drop, :notify_open_house,
			:notify_market_update, :notify_agent_message, :notify_saved_search,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // Unique violation
				return domain.ErrUserAlreadyExists
			}
		}
		return err
	}
	return nil
}

// GetByEmail retrieves a user by their email address
func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM users WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// GetByID retrieves a user by their unique identifier
func (r *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM users WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// FindByID implements domain.UserFinder for exposing to other modules
func (r *PgUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.GetByID(ctx, id)
}

// Exists implements domain.UserFinder
func (r *PgUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`
	err := r.db.GetContext(ctx, &exists, query, id)
	return exists, err
}

// UpdateProfile updates a user's profile fields. Only the provided non-nil
// fields are written.
func (r *PgUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone, avatarUrl *string) error {
	setClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	if name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, name)
		argIndex++
	}
	if phone != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone = $%d", argIndex))
		args = append(args, phone)
		argIndex++
	}
	if avatarUrl != nil {
		setClauses = append(setClauses, fmt.Sprintf("avatar_url = $%d", argIndex))
		args = append(args, avatarUrl)
		argIndex++
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now())
	argIndex++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), argIndex)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePushToken stores or clears the device push token
func (r *PgUserRepository) UpdatePushToken(ctx context.Context, id uuid.UUID, token *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET push_token = $1, updated_at = $2 WHERE id = $3`,
		token, time.Now(), id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePreferences overwrites the user's notification preferences
func (r *PgUserRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs domain.NotificationPreferences) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			notify_new_property = $1,
			notify_price_drop = $2,
			notify_open_house = $3,
			notify_market_update = $4,
			notify_agent_message = $5,
			notify_saved_search = $6,
			updated_at = $7
		WHERE id = $8`,
		prefs.NewProperty, prefs.PriceDrop, prefs.OpenHouse,
		prefs.MarketUpdate, prefs.AgentMessage, prefs.SavedSearch,
		time.Now(), id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
