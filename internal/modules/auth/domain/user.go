package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	// RoleUser is a regular home buyer or renter
	RoleUser UserRole = "user"
	// RoleAgent can create and manage listings
	RoleAgent UserRole = "agent"
)

// NotificationPreferences is the per-kind opt-in state for a user's alerts.
// Everything defaults to on for new accounts.
type NotificationPreferences struct {
	NewProperty  bool `json:"newProperty" db:"notify_new_property"`
	PriceDrop    bool `json:"priceDrop" db:"notify_price_drop"`
	OpenHouse    bool `json:"openHouse" db:"notify_open_house"`
	MarketUpdate bool `json:"marketUpdate" db:"notify_market_update"`
	AgentMessage bool `json:"agentMessage" db:"notify_agent_message"`
	SavedSearch  bool `json:"savedSearch" db:"notify_saved_search"`
}

// DefaultNotificationPreferences enables every alert kind
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		NewProperty:  true,
		PriceDrop:    true,
		OpenHouse:    true,
		MarketUpdate: true,
		AgentMessage: true,
		SavedSearch:  true,
	}
}

// User represents a user in the system
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Role         UserRole  `json:"role" db:"role"`
	Phone        *string   `json:"phone" db:"phone"`
	AvatarUrl    *string   `json:"avatar_url" db:"avatar_url"`
	PushToken    *string   `json:"-" db:"push_token"`

	Preferences NotificationPreferences `json:"preferences" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, phone, avatarUrl *string) error
	UpdatePushToken(ctx context.Context, id uuid.UUID, token *string) error
	UpdatePreferences(ctx context.Context, id uuid.UUID, prefs NotificationPreferences) error
}

// UserFinder is the read-only surface other modules use to resolve users
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
