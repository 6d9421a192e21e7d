package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/arjunm29/nestfind/internal/modules/notification/domain"
	"github.com/arjunm29/nestfind/internal/modules/notification/infrastructure/websocket"
	"github.com/arjunm29/nestfind/internal/shared/types"
)

type NotificationService struct {
	repo domain.NotificationRepository
	hub  *websocket.Hub
}

func NewNotificationService(repo domain.NotificationRepository, hub *websocket.Hub) *NotificationService {
	return &NotificationService{repo: repo, hub: hub}
}

// Create persists a notification and pushes it to the user's open websocket
// connections. The websocket push is best-effort; a user with no open
// connection still sees the notification in the center.
func (s *NotificationService) Create(ctx context.Context, userID uuid.UUID, title, message string, kind domain.NotificationType, propertyID *uuid.UUID, data types.JSONMap) (*domain.Notification, error) {
	notification := &domain.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		Message:    message,
		Type:       kind,
		PropertyID: propertyID,
		Data:       data,
		IsRead:     false,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	if msgBytes, err := json.Marshal(notification); err == nil {
		s.hub.SendToUser(userID, msgBytes)
	}
	return notification, nil
}

// Broadcast pushes a message to every connected client without persisting it.
// Used for market updates.
func (s *NotificationService) Broadcast(title, message string) {
	payload := map[string]string{
		"title":   title,
		"message": message,
		"type":    string(domain.NotificationTypeMarketUpdate),
	}
	if msgBytes, err := json.Marshal(payload); err == nil {
		s.hub.BroadcastMessage(msgBytes)
	}
}

func (s *NotificationService) GetHub() *websocket.Hub {
	return s.hub
}

func (s *NotificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Notification, error) {
	return s.repo.GetByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}
