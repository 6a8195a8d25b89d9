//go:build integration

package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts an active user with the given trust level.
func SeedUser(t *testing.T, pool *pgxpool.Pool, level domain.TrustLevel) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := domain.User{
		ID:         uuid.New(),
		Username:   "user_" + suffix,
		Email:      "user-" + suffix + "@example.com",
		Name:       "Test User " + suffix,
		TrustLevel: level,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, username, email, name, trust_level, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7)`,
		u.ID, u.Username, u.Email, u.Name, int(u.TrustLevel), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return u
}

// SeedCategory inserts a category with a unique name.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name string) domain.Category {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	c := domain.Category{
		ID:        uuid.New(),
		Name:      name + " " + uniqueSuffix(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.Slug = domain.Slugify(c.Name)

	_, err := pool.Exec(context.Background(),
		`INSERT INTO categories (id, name, slug, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Slug, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory: %v", err)
	}
	return c
}

// CountRows returns the row count of table filtered by a topic id column.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string, topicID uuid.UUID) int {
	t.Helper()

	column := "topic_id"
	if table == "topics" {
		column = "id"
	}

	var n int
	err := pool.QueryRow(context.Background(),
		"SELECT count(*) FROM "+table+" WHERE "+column+" = $1", topicID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}
	return n
}
