package post_test

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

	"github.com/heartmarshall/forum-backend/internal/adapter/postgres/post"
	"github.com/heartmarshall/forum-backend/internal/domain"
)

var postColumns = []string{"id", "topic_id", "user_id", "post_number", "raw", "created_at", "updated_at"}

func newRepo(t *testing.T) (*post.Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return post.New(mock), mock
}

func TestRepo_Create(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now().UTC()
	p := &domain.Post{ID: uuid.New(), TopicID: uuid.New(), UserID: uuid.New(), PostNumber: 1, Raw: "hello world body", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery(`INSERT INTO posts \(id,topic_id,user_id,post_number,raw,created_at,updated_at\)`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), 1, p.Raw, now, now).
		WillReturnRows(pgxmock.NewRows(postColumns).AddRow(p.ID, p.TopicID, p.UserID, 1, p.Raw, now, now))

	got, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 1, got.PostNumber)
	assert.Equal(t, p.Raw, got.Raw)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Create_DuplicateNumber(t *testing.T) {
	repo, mock := newRepo(t)
	p := &domain.Post{ID: uuid.New(), TopicID: uuid.New(), PostNumber: 1}

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), 1, "", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), p)
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByNumber(t *testing.T) {
	repo, mock := newRepo(t)
	topicID, id, author := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM posts WHERE post_number = \$1 AND topic_id = \$2`).
		WithArgs(1, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(postColumns).AddRow(id, topicID, author, 1, "first", now, now))

	got, err := repo.GetByNumber(context.Background(), topicID, 1)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByNumber_Missing(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM posts`).
		WithArgs(1, pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByNumber(context.Background(), uuid.New(), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
