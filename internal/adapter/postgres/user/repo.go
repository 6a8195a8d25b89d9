// Package user implements the User repository using PostgreSQL.
package user

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

const table = "users"

var columns = []string{
	"id", "username", "email", "name", "password_hash", "trust_level",
	"admin", "moderator", "staged", "silenced", "active", "created_at", "updated_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

type row struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash *string   `db:"password_hash"`
	TrustLevel   int       `db:"trust_level"`
	Admin        bool      `db:"admin"`
	Moderator    bool      `db:"moderator"`
	Staged       bool      `db:"staged"`
	Silenced     bool      `db:"silenced"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		Name:         r.Name,
		PasswordHash: r.PasswordHash,
		TrustLevel:   domain.TrustLevel(r.TrustLevel),
		Admin:        r.Admin,
		Moderator:    r.Moderator,
		Staged:       r.Staged,
		Silenced:     r.Silenced,
		Active:       r.Active,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func selectUsers() sq.SelectBuilder {
	return postgres.Builder.Select(columns...).From(table)
}

func (r *Repo) getOne(ctx context.Context, q sq.Sqlizer, key any) (*domain.User, error) {
	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, q); err != nil {
		return nil, postgres.MapError(err, "user", key)
	}
	u := dst.toDomain()
	return &u, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, selectUsers().Where(sq.Eq{"id": id}), id)
}

// GetByEmail returns a user by email address, ignoring case.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := selectUsers().Where(sq.Expr("lower(email) = ?", strings.ToLower(email)))
	return r.getOne(ctx, q, email)
}

// GetByUsername returns a user by username, ignoring case.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	q := selectUsers().Where(sq.Expr("lower(username) = ?", strings.ToLower(username)))
	return r.getOne(ctx, q, username)
}

// GetByUsernames returns the users whose usernames match, ignoring case.
// Unknown names are simply absent from the result.
func (r *Repo) GetByUsernames(ctx context.Context, usernames []string) ([]domain.User, error) {
	return r.listByLower(ctx, "username", usernames)
}

// GetByEmails returns the users whose emails match, ignoring case.
func (r *Repo) GetByEmails(ctx context.Context, emails []string) ([]domain.User, error) {
	return r.listByLower(ctx, "email", emails)
}

func (r *Repo) listByLower(ctx context.Context, column string, values []string) ([]domain.User, error) {
	if len(values) == 0 {
		return nil, nil
	}
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}

	q := selectUsers().
		Where(sq.Expr("lower("+column+") = ANY(?)", lowered)).
		OrderBy("created_at")

	var rows []row
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, q); err != nil {
		return nil, fmt.Errorf("list users by %s: %w", column, err)
	}

	users := make([]domain.User, len(rows))
	for i, rw := range rows {
		users[i] = rw.toDomain()
	}
	return users, nil
}

// Create inserts a new user and returns the persisted row.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.Builder.Insert(table).
		Columns(columns...).
		Values(
			u.ID, u.Username, u.Email, u.Name, u.PasswordHash, int(u.TrustLevel),
			u.Admin, u.Moderator, u.Staged, u.Silenced, u.Active, u.CreatedAt, u.UpdatedAt,
		).
		Suffix(returning)
	return r.getOne(ctx, q, u.ID)
}

// UpdateRole sets the admin and moderator flags from role.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	q := postgres.Builder.Update(table).
		Set("admin", role == domain.UserRoleAdmin).
		Set("moderator", role == domain.UserRoleModerator).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix(returning)
	return r.getOne(ctx, q, id)
}

// UpdateTrustLevel sets the user's trust level.
func (r *Repo) UpdateTrustLevel(ctx context.Context, id uuid.UUID, level domain.TrustLevel) (*domain.User, error) {
	q := postgres.Builder.Update(table).
		Set("trust_level", int(level)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix(returning)
	return r.getOne(ctx, q, id)
}
