package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunm29/nestfind/internal/modules/notification/domain"
	"github.com/arjunm29/nestfind/internal/modules/notification/infrastructure/persistence/postgres"
	"github.com/arjunm29/nestfind/internal/shared/types"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(sqlDB, "sqlmock"), mock, func() { _ = sqlDB.Close() }
}

func TestNotificationRepository_Create(t *testing.T) {
	db, mock, closeDB := newMockDB(t)
	defer closeDB()
	repo := postgres.NewPgNotificationRepository(db)

	propertyID := uuid.New()
	n := &domain.Notification{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Title:      "Price Drop Alert! 💰",
		Message:    "A property you're watching dropped by $50000 (10.0%)",
		Type:       domain.NotificationTypePriceDrop,
		PropertyID: &propertyID,
		Data:       types.JSONMap{"newPrice": 450000.0},
		CreatedAt:  time.Now(),
	}

	mock.ExpectExec(`INSERT INTO notifications`).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), n))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_GetByUserID(t *testing.T) {
	db, mock, closeDB := newMockDB(t)
	defer closeDB()
	repo := postgres.NewPgNotificationRepository(db)

	userID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "message", "type", "property_id", "data", "is_read", "created_at"}).
		AddRow(uuid.New(), userID, "New Property Found! 🏠", "New property found: Skyline Heights - $450,000",
			"savedSearch", nil, []byte(`{"propertyCount":1}`), false, time.Now())
	mock.ExpectQuery(`SELECT \* FROM notifications WHERE user_id = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(userID, 20, 0).WillReturnRows(rows)

	notifications, err := repo.GetByUserID(context.Background(), userID, 20, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationTypeSavedSearch, notifications[0].Type)
	assert.Equal(t, float64(1), notifications[0].Data["propertyCount"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	db, mock, closeDB := newMockDB(t)
	defer closeDB()
	repo := postgres.NewPgNotificationRepository(db)

	notificationID := uuid.New()
	userID := uuid.New()

	mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE id = \$1 AND user_id = \$2`).
		WithArgs(notificationID, userID).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkAsRead(context.Background(), notificationID, userID))

	// Another user's notification looks like it does not exist
	mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE id = \$1 AND user_id = \$2`).
		WithArgs(notificationID, userID).WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.MarkAsRead(context.Background(), notificationID, userID)
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}

func TestNotificationRepository_UnreadCount(t *testing.T) {
	db, mock, closeDB := newMockDB(t)
	defer closeDB()
	repo := postgres.NewPgNotificationRepository(db)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications WHERE user_id = \$1 AND is_read = FALSE`).
		WithArgs(userID).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
