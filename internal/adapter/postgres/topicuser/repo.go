// Package topicuser implements per-user topic state (notification level)
// using PostgreSQL.
package topicuser

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/forum-backend/internal/adapter/postgres"
	"github.com/heartmarshall/forum-backend/internal/domain"
)

const table = "topic_users"

type row struct {
	UserID              uuid.UUID `db:"user_id"`
	TopicID             uuid.UUID `db:"topic_id"`
	NotificationLevel   int       `db:"notification_level"`
	NotificationsReason *int      `db:"notifications_reason"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// Repo provides topic_users persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new topic user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ChangeNotificationLevel sets the user's notification level for a topic,
// creating the row on first use.
func (r *Repo) ChangeNotificationLevel(
	ctx context.Context,
	userID, topicID uuid.UUID,
	level domain.NotificationLevel,
	reason domain.NotificationReason,
) error {
	q := postgres.Builder.Insert(table).
		Columns("user_id", "topic_id", "notification_level", "notifications_reason", "updated_at").
		Values(userID, topicID, int(level), int(reason), sq.Expr("now()")).
		Suffix("ON CONFLICT (user_id, topic_id) DO UPDATE SET " +
			"notification_level = EXCLUDED.notification_level, " +
			"notifications_reason = EXCLUDED.notifications_reason, " +
			"updated_at = EXCLUDED.updated_at")

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q); err != nil {
		return postgres.MapError(err, "topic_user", topicID)
	}
	return nil
}

// Get returns the user's state for a topic or ErrNotFound.
func (r *Repo) Get(ctx context.Context, userID, topicID uuid.UUID) (*domain.TopicUser, error) {
	q := postgres.Builder.
		Select("user_id", "topic_id", "notification_level", "notifications_reason", "updated_at").
		From(table).
		Where(sq.Eq{"user_id": userID, "topic_id": topicID})

	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, q); err != nil {
		return nil, postgres.MapError(err, "topic_user", topicID)
	}

	tu := &domain.TopicUser{
		UserID:            dst.UserID,
		TopicID:           dst.TopicID,
		NotificationLevel: domain.NotificationLevel(dst.NotificationLevel),
		UpdatedAt:         dst.UpdatedAt,
	}
	if dst.NotificationsReason != nil {
		tu.NotificationReason = domain.NotificationReason(*dst.NotificationsReason)
	}
	return tu, nil
}
