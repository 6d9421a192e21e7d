package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunm29/nestfind/internal/modules/notification/domain"
	"github.com/arjunm29/nestfind/internal/modules/notification/infrastructure/websocket"
	"github.com/arjunm29/nestfind/internal/shared/types"
)

func newServiceUnderTest(t *testing.T, repo *fakeNotificationRepo) *NotificationService {
	t.Helper()
	hub := websocket.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	return NewNotificationService(repo, hub)
}

func TestNotificationService_Create(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := newServiceUnderTest(t, repo)
	userID := uuid.New()

	n, err := svc.Create(context.Background(), userID, "Open House This Weekend",
		"Saturday 2-4pm at Skyline Heights", domain.NotificationTypeOpenHouse, nil,
		types.JSONMap{"day": "saturday"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, n.ID)
	assert.Equal(t, userID, n.UserID)
	assert.Equal(t, domain.NotificationTypeOpenHouse, n.Type)
	assert.False(t, n.IsRead)
	assert.False(t, n.CreatedAt.IsZero())
	require.Len(t, repo.created, 1)
}

func TestNotificationService_CreateFailsWhenRepositoryFails(t *testing.T) {
	repo := &fakeNotificationRepo{err: errors.New("insert failed")}
	svc := newServiceUnderTest(t, repo)

	_, err := svc.Create(context.Background(), uuid.New(), "t", "m",
		domain.NotificationTypeAgentMessage, nil, nil)
	assert.Error(t, err)
}

func TestNotificationService_GetUserNotifications(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := newServiceUnderTest(t, repo)
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, "a", "m", domain.NotificationTypeSavedSearch, nil, nil)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), uuid.New(), "b", "m", domain.NotificationTypeSavedSearch, nil, nil)
	require.NoError(t, err)

	notifications, err := svc.GetUserNotifications(context.Background(), userID, 20, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "a", notifications[0].Title)
}

func TestNotificationService_BroadcastDoesNotPersist(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := newServiceUnderTest(t, repo)

	svc.Broadcast("Market Update", "Median prices rose 2% this quarter")
	assert.Empty(t, repo.created)
}
