// Package post implements the Post repository using PostgreSQL.
package post

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/forum-backend/internal/adapter/postgres"
	"github.com/heartmarshall/forum-backend/internal/domain"
)

const table = "posts"

var columns = []string{"id", "topic_id", "user_id", "post_number", "raw", "created_at", "updated_at"}

type row struct {
	ID         uuid.UUID `db:"id"`
	TopicID    uuid.UUID `db:"topic_id"`
	UserID     uuid.UUID `db:"user_id"`
	PostNumber int       `db:"post_number"`
	Raw        string    `db:"raw"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.Post {
	return &domain.Post{
		ID:         r.ID,
		TopicID:    r.TopicID,
		UserID:     r.UserID,
		PostNumber: r.PostNumber,
		Raw:        r.Raw,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// Repo provides post persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new post repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a post.
func (r *Repo) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	q := postgres.Builder.Insert(table).
		Columns(columns...).
		Values(p.ID, p.TopicID, p.UserID, p.PostNumber, p.Raw, p.CreatedAt, p.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, q); err != nil {
		return nil, postgres.MapError(err, "post", p.ID)
	}
	return dst.toDomain(), nil
}

// GetByNumber returns the post with the given number inside a topic.
func (r *Repo) GetByNumber(ctx context.Context, topicID uuid.UUID, number int) (*domain.Post, error) {
	q := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"topic_id": topicID, "post_number": number})

	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, q); err != nil {
		return nil, postgres.MapError(err, "post", topicID)
	}
	return dst.toDomain(), nil
}
