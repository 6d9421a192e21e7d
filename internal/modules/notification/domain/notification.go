package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/arjunm29/nestfind/internal/shared/types"
)

type NotificationType string

const (
	NotificationTypeNewProperty  NotificationType = "newProperty"
	NotificationTypePriceDrop    NotificationType = "priceDrop"
	NotificationTypeOpenHouse    NotificationType = "openHouse"
	NotificationTypeMarketUpdate NotificationType = "marketUpdate"
	NotificationTypeAgentMessage NotificationType = "agentMessage"
	NotificationTypeSavedSearch  NotificationType = "savedSearch"
)

type Notification struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	UserID     uuid.UUID        `json:"user_id" db:"user_id"`
	Title      string           `json:"title" db:"title"`
	Message    string           `json:"message" db:"message"`
	Type       NotificationType `json:"type" db:"type"`
	PropertyID *uuid.UUID       `json:"property_id,omitempty" db:"property_id"`
	Data       types.JSONMap    `json:"data,omitempty" db:"data"`
	IsRead     bool             `json:"is_read" db:"is_read"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
}

var (
	ErrNotificationNotFound = errors.New("notification not found")
)
