package category_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/forum-backend/internal/adapter/postgres/category"
	"github.com/heartmarshall/forum-backend/internal/domain"
)

var categoryColumns = []string{"id", "name", "slug", "description", "read_restricted", "created_at", "updated_at"}

func newRepo(t *testing.T) (*category.Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return category.New(mock), mock
}

func TestRepo_GetByName(t *testing.T) {
	id := uuid.New()
	now := time.Now()

	tests := []struct {
		name    string
		input   string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name:  "matches ignoring case",
			input: "  Site FEEDBACK ",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .+ FROM categories WHERE lower\(name\) = \$1`).
					WithArgs("site feedback").
					WillReturnRows(pgxmock.NewRows(categoryColumns).
						AddRow(id, "Site Feedback", "site-feedback", (*string)(nil), false, now, now))
			},
		},
		{
			name:  "unknown name",
			input: "nope",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM categories`).
					WithArgs("nope").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)
			tt.setup(mock)

			got, err := repo.GetByName(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, id, got.ID)
				assert.Equal(t, "Site Feedback", got.Name)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepo_GetByID(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	now := time.Now()
	desc := "staff only"

	mock.ExpectQuery(`SELECT .+ FROM categories WHERE id = \$1`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(categoryColumns).AddRow(id, "Staff", "staff", &desc, true, now, now))

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, got.ReadRestricted)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_List(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM categories ORDER BY lower\(name\)`).
		WillReturnRows(pgxmock.NewRows(categoryColumns).
			AddRow(uuid.New(), "Announcements", "announcements", (*string)(nil), false, now, now).
			AddRow(uuid.New(), "General", "general", (*string)(nil), false, now, now))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "General", got[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Create_NameTaken(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	c := &domain.Category{ID: uuid.New(), Name: "General", Slug: "general", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs(pgxmock.AnyArg(), c.Name, c.Slug, pgxmock.AnyArg(), false, now, now).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), c)
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}
