package application

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/arjunm29/nestfind/internal/modules/notification/domain"
	searchapp "github.com/arjunm29/nestfind/internal/modules/search/application"
	"github.com/arjunm29/nestfind/internal/shared/types"
)

// PreferenceSource answers whether a user wants alerts of a given kind.
// Implemented by the user module; lookups that fail default to enabled so a
// profile outage never silently drops alerts.
type PreferenceSource interface {
	NotificationsEnabled(ctx context.Context, userID uuid.UUID, kind domain.NotificationType) (bool, error)
}

// MatcherSink adapts the notification service to the matcher's delivery
// interface and applies the user's per-kind notification preferences.
type MatcherSink struct {
	service     *NotificationService
	preferences PreferenceSource
}

func NewMatcherSink(service *NotificationService, preferences PreferenceSource) *MatcherSink {
	return &MatcherSink{service: service, preferences: preferences}
}

func (s *MatcherSink) allows(ctx context.Context, userID uuid.UUID, kind domain.NotificationType) bool {
	if s.preferences == nil {
		return true
	}
	enabled, err := s.preferences.NotificationsEnabled(ctx, userID, kind)
	if err != nil {
		log.Printf("[notification sink] preference lookup for user %s: %v", userID, err)
		return true
	}
	return enabled
}

func kindFromPayload(payload map[string]interface{}) domain.NotificationType {
	if t, ok := payload["type"].(string); ok {
		return domain.NotificationType(t)
	}
	return domain.NotificationTypeSavedSearch
}

// DeliverLocal pushes the alert over the user's websocket connections. A user
// who disabled this kind of alert gets a silent no-op, not an error, so the
// matcher still advances its checkpoint.
func (s *MatcherSink) DeliverLocal(ctx context.Context, userID uuid.UUID, title, body string, payload map[string]interface{}) error {
	if !s.allows(ctx, userID, kindFromPayload(payload)) {
		return nil
	}
	push := map[string]interface{}{
		"title":   title,
		"message": body,
		"data":    payload,
	}
	msgBytes, err := json.Marshal(push)
	if err != nil {
		return err
	}
	s.service.hub.SendToUser(userID, msgBytes)
	return nil
}

// Persist writes the alert into the user's notification center
func (s *MatcherSink) Persist(ctx context.Context, record searchapp.NotificationRecord) error {
	kind := domain.NotificationType(record.Type)
	if !s.allows(ctx, record.UserID, kind) {
		return nil
	}
	notification := &domain.Notification{
		ID:         uuid.New(),
		UserID:     record.UserID,
		Title:      record.Title,
		Message:    record.Body,
		Type:       kind,
		PropertyID: record.PropertyID,
		Data:       types.JSONMap(record.Payload),
		CreatedAt:  time.Now(),
	}
	return s.service.repo.Create(ctx, notification)
}
