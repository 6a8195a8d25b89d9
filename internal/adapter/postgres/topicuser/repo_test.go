package topicuser_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/forum-backend/internal/adapter/postgres/topicuser"
	"github.com/heartmarshall/forum-backend/internal/domain"
)

func newRepo(t *testing.T) (*topicuser.Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return topicuser.New(mock), mock
}

func TestRepo_ChangeNotificationLevel(t *testing.T) {
	repo, mock := newRepo(t)
	userID, topicID := uuid.New(), uuid.New()

	mock.ExpectExec(`INSERT INTO topic_users .+ VALUES \(\$1,\$2,\$3,\$4,now\(\)\) ON CONFLICT \(user_id, topic_id\) DO UPDATE`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), 3, 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.ChangeNotificationLevel(context.Background(), userID, topicID,
		domain.NotificationLevelWatching, domain.NotificationReasonCreatedTopic)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ChangeNotificationLevel_TopicGone(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`INSERT INTO topic_users`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), 3, 1).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.ChangeNotificationLevel(context.Background(), uuid.New(), uuid.New(),
		domain.NotificationLevelWatching, domain.NotificationReasonCreatedTopic)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Get(t *testing.T) {
	repo, mock := newRepo(t)
	userID, topicID := uuid.New(), uuid.New()
	reason := 1

	mock.ExpectQuery(`SELECT .+ FROM topic_users WHERE topic_id = \$1 AND user_id = \$2`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "topic_id", "notification_level", "notifications_reason", "updated_at"}).
			AddRow(userID, topicID, 3, &reason, time.Now()))

	got, err := repo.Get(context.Background(), userID, topicID)
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationLevelWatching, got.NotificationLevel)
	assert.Equal(t, domain.NotificationReasonCreatedTopic, got.NotificationReason)
	require.NoError(t, mock.ExpectationsWereMet())
}
