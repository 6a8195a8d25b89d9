// Package audit implements the append-only audit log using PostgreSQL.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/forum-backend/internal/adapter/postgres"
	"github.com/heartmarshall/forum-backend/internal/domain"
)

const table = "audit_log"

var columns = []string{"id", "user_id", "entity_type", "entity_id", "action", "changes", "created_at"}

type row struct {
	ID         uuid.UUID  `db:"id"`
	UserID     uuid.UUID  `db:"user_id"`
	EntityType string     `db:"entity_type"`
	EntityID   *uuid.UUID `db:"entity_id"`
	Action     string     `db:"action"`
	Changes    []byte     `db:"changes"`
	CreatedAt  time.Time  `db:"created_at"`
}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Log appends an audit record.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	changes := record.Changes
	if changes == nil {
		changes = map[string]any{}
	}
	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("audit_record marshal changes: %w", err)
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	q := postgres.Builder.Insert(table).
		Columns(columns...).
		Values(record.ID, record.UserID, string(record.EntityType), record.EntityID,
			string(record.Action), changesJSON, record.CreatedAt)

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q); err != nil {
		return postgres.MapError(err, "audit_record", record.ID)
	}
	return nil
}

// GetByEntity returns the change history of an entity, newest first.
func (r *Repo) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	q := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"entity_type": string(entityType), "entity_id": entityID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	var rows []row
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, q); err != nil {
		return nil, fmt.Errorf("get audit records of %s %s: %w", strings.ToLower(string(entityType)), entityID, err)
	}

	records := make([]domain.AuditRecord, len(rows))
	for i, rw := range rows {
		rec := domain.AuditRecord{
			ID:         rw.ID,
			UserID:     rw.UserID,
			EntityType: domain.EntityType(rw.EntityType),
			EntityID:   rw.EntityID,
			Action:     domain.AuditAction(rw.Action),
			CreatedAt:  rw.CreatedAt,
		}
		if len(rw.Changes) > 0 {
			if err := json.Unmarshal(rw.Changes, &rec.Changes); err != nil {
				return nil, fmt.Errorf("audit_record %s unmarshal changes: %w", rw.ID, err)
			}
		}
		records[i] = rec
	}
	return records, nil
}
