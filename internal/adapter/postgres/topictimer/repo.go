// Package topictimer implements the topic timer repository using PostgreSQL.
// A topic has at most one public timer.
package topictimer

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/forum-backend/internal/adapter/postgres"
	"github.com/heartmarshall/forum-backend/internal/domain"
)

const table = "topic_timers"

var columns = []string{"id", "topic_id", "user_id", "status_type", "execute_at", "created_at"}

type row struct {
	ID         uuid.UUID `db:"id"`
	TopicID    uuid.UUID `db:"topic_id"`
	UserID     uuid.UUID `db:"user_id"`
	StatusType string    `db:"status_type"`
	ExecuteAt  time.Time `db:"execute_at"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r row) toDomain() *domain.TopicTimer {
	return &domain.TopicTimer{
		ID:         r.ID,
		TopicID:    r.TopicID,
		UserID:     r.UserID,
		StatusType: domain.TimerStatusType(r.StatusType),
		ExecuteAt:  r.ExecuteAt,
		CreatedAt:  r.CreatedAt,
	}
}

// Repo provides topic timer persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new topic timer repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Upsert sets the public timer of a topic, replacing any existing one.
func (r *Repo) Upsert(ctx context.Context, t *domain.TopicTimer) (*domain.TopicTimer, error) {
	q := postgres.Builder.Insert(table).
		Columns(columns...).
		Values(t.ID, t.TopicID, t.UserID, string(t.StatusType), t.ExecuteAt, t.CreatedAt).
		Suffix("ON CONFLICT (topic_id) DO UPDATE SET user_id = EXCLUDED.user_id, " +
			"status_type = EXCLUDED.status_type, execute_at = EXCLUDED.execute_at " +
			"RETURNING " + strings.Join(columns, ", "))

	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, q); err != nil {
		return nil, postgres.MapError(err, "topic_timer", t.TopicID)
	}
	return dst.toDomain(), nil
}

// GetByTopic returns the public timer of a topic or ErrNotFound.
func (r *Repo) GetByTopic(ctx context.Context, topicID uuid.UUID) (*domain.TopicTimer, error) {
	q := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"topic_id": topicID})

	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, q); err != nil {
		return nil, postgres.MapError(err, "topic_timer", topicID)
	}
	return dst.toDomain(), nil
}
