// Package category implements the Category repository using PostgreSQL.
package category

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

const table = "categories"

var columns = []string{"id", "name", "slug", "description", "read_restricted", "created_at", "updated_at"}

type row struct {
	ID             uuid.UUID `db:"id"`
	Name           string    `db:"name"`
	Slug           string    `db:"slug"`
	Description    *string   `db:"description"`
	ReadRestricted bool      `db:"read_restricted"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Category {
	return domain.Category{
		ID:             r.ID,
		Name:           r.Name,
		Slug:           r.Slug,
		Description:    r.Description,
		ReadRestricted: r.ReadRestricted,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Repo provides category persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new category repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) getOne(ctx context.Context, q sq.Sqlizer, key any) (*domain.Category, error) {
	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, q); err != nil {
		return nil, postgres.MapError(err, "category", key)
	}
	c := dst.toDomain()
	return &c, nil
}

// GetByID returns a category by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	q := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id})
	return r.getOne(ctx, q, id)
}

// GetByName returns a category by name, ignoring case and surrounding whitespace.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	key := domain.NormalizeText(name)
	q := postgres.Builder.Select(columns...).From(table).
		Where(sq.Expr("lower(name) = ?", key))
	return r.getOne(ctx, q, key)
}

// List returns all categories ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.Category, error) {
	q := postgres.Builder.Select(columns...).From(table).OrderBy("lower(name)")

	var rows []row
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, q); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]domain.Category, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// Create inserts a category. A name clash (case-insensitive) yields ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	q := postgres.Builder.Insert(table).
		Columns(columns...).
		Values(c.ID, c.Name, c.Slug, c.Description, c.ReadRestricted, c.CreatedAt, c.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", "))
	return r.getOne(ctx, q, c.Name)
}
