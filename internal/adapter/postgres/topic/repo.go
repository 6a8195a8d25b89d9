// Package topic implements the Topic repository using PostgreSQL.
// Besides topic rows it manages the topic_allowed_users join table that
// lists private message participants.
package topic

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/forum-backend/internal/adapter/postgres"
	"github.com/heartmarshall/forum-backend/internal/domain"
)

const (
	table        = "topics"
	allowedTable = "topic_allowed_users"
)

var columns = []string{
	"id", "title", "slug", "archetype", "user_id", "category_id",
	"posts_count", "visible", "created_at", "updated_at",
}

var insertColumns = append(append([]string{}, columns...), "normalized_title")

type row struct {
	ID         uuid.UUID  `db:"id"`
	Title      string     `db:"title"`
	Slug       string     `db:"slug"`
	Archetype  string     `db:"archetype"`
	UserID     uuid.UUID  `db:"user_id"`
	CategoryID *uuid.UUID `db:"category_id"`
	PostsCount int        `db:"posts_count"`
	Visible    bool       `db:"visible"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

func (r row) toDomain() domain.Topic {
	return domain.Topic{
		ID:         r.ID,
		Title:      r.Title,
		Slug:       r.Slug,
		Archetype:  domain.Archetype(r.Archetype),
		UserID:     r.UserID,
		CategoryID: r.CategoryID,
		PostsCount: r.PostsCount,
		Visible:    r.Visible,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// Repo provides topic persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new topic repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a topic row. The normalized title is stored alongside for
// duplicate detection.
func (r *Repo) Create(ctx context.Context, t *domain.Topic) (*domain.Topic, error) {
	q := postgres.Builder.Insert(table).
		Columns(insertColumns...).
		Values(
			t.ID, t.Title, t.Slug, string(t.Archetype), t.UserID, t.CategoryID,
			t.PostsCount, t.Visible, t.CreatedAt, t.UpdatedAt, domain.NormalizeText(t.Title),
		).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, q); err != nil {
		return nil, postgres.MapError(err, "topic", t.ID)
	}
	created := dst.toDomain()
	return &created, nil
}

// GetByID returns a topic by primary key (without related entities).
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	q := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id})

	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, q); err != nil {
		return nil, postgres.MapError(err, "topic", id)
	}
	t := dst.toDomain()
	return &t, nil
}

// TitleExists reports whether a visible regular topic already uses title,
// compared after normalization.
func (r *Repo) TitleExists(ctx context.Context, title string) (bool, error) {
	q := postgres.Builder.Select("1").From(table).
		Where(sq.Eq{
			"normalized_title": domain.NormalizeText(title),
			"archetype":        string(domain.ArchetypeRegular),
			"visible":          true,
		}).
		Prefix("SELECT EXISTS (").
		Suffix(")")

	var exists bool
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &exists, q); err != nil {
		return false, fmt.Errorf("check topic title: %w", err)
	}
	return exists, nil
}

// LockTitle takes a transaction-scoped advisory lock on the normalized title,
// so concurrent creations with the same title run their duplicate check one
// after the other. It must be called inside RunInTx.
func (r *Repo) LockTitle(ctx context.Context, title string) error {
	q := postgres.Builder.Select().
		Column(sq.Expr("pg_advisory_xact_lock(hashtextextended(?, 0))", domain.NormalizeText(title)))

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q); err != nil {
		return fmt.Errorf("lock topic title: %w", err)
	}
	return nil
}

// AddAllowedUsers grants the users access to a private message.
// Repeated ids are ignored.
func (r *Repo) AddAllowedUsers(ctx context.Context, topicID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}

	q := postgres.Builder.Insert(allowedTable).Columns("topic_id", "user_id")
	for _, id := range userIDs {
		q = q.Values(topicID, id)
	}
	q = q.Suffix("ON CONFLICT (topic_id, user_id) DO NOTHING")

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q); err != nil {
		return postgres.MapError(err, "topic_allowed_users", topicID)
	}
	return nil
}

// AllowedUserIDs returns the participants of a private message.
func (r *Repo) AllowedUserIDs(ctx context.Context, topicID uuid.UUID) ([]uuid.UUID, error) {
	q := postgres.Builder.Select("user_id").From(allowedTable).
		Where(sq.Eq{"topic_id": topicID}).
		OrderBy("created_at", "user_id")

	var ids []uuid.UUID
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &ids, q); err != nil {
		return nil, fmt.Errorf("list allowed users of topic %s: %w", topicID, err)
	}
	return ids, nil
}
