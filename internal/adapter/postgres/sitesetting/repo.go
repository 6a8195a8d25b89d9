// Package sitesetting stores the single site settings row using PostgreSQL.
package sitesetting

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/forum-backend/internal/adapter/postgres"
	"github.com/heartmarshall/forum-backend/internal/domain"
)

const (
	table = "site_settings"
	rowID = 1
)

var columns = []string{
	"min_trust_to_create_topic",
	"min_trust_to_send_messages",
	"min_trust_to_send_email_messages",
	"allow_duplicate_topic_titles",
	"enable_staged_users",
	"enable_private_email_messages",
	"min_topic_title_length",
	"max_topic_title_length",
	"min_personal_message_title_length",
	"min_post_length",
	"min_personal_message_post_length",
	"max_target_recipients",
	"updated_at",
}

type row struct {
	MinTrustToCreateTopic         int       `db:"min_trust_to_create_topic"`
	MinTrustToSendMessages        int       `db:"min_trust_to_send_messages"`
	MinTrustToSendEmailMessages   int       `db:"min_trust_to_send_email_messages"`
	AllowDuplicateTopicTitles     bool      `db:"allow_duplicate_topic_titles"`
	EnableStagedUsers             bool      `db:"enable_staged_users"`
	EnablePrivateEmailMessages    bool      `db:"enable_private_email_messages"`
	MinTopicTitleLength           int       `db:"min_topic_title_length"`
	MaxTopicTitleLength           int       `db:"max_topic_title_length"`
	MinPersonalMessageTitleLength int       `db:"min_personal_message_title_length"`
	MinPostLength                 int       `db:"min_post_length"`
	MinPersonalMessagePostLength  int       `db:"min_personal_message_post_length"`
	MaxTargetRecipients           int       `db:"max_target_recipients"`
	UpdatedAt                     time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.SiteSettings {
	return &domain.SiteSettings{
		MinTrustToCreateTopic:         domain.TrustLevel(r.MinTrustToCreateTopic),
		MinTrustToSendMessages:        domain.TrustLevel(r.MinTrustToSendMessages),
		MinTrustToSendEmailMessages:   domain.TrustLevel(r.MinTrustToSendEmailMessages),
		AllowDuplicateTopicTitles:     r.AllowDuplicateTopicTitles,
		EnableStagedUsers:             r.EnableStagedUsers,
		EnablePrivateEmailMessages:    r.EnablePrivateEmailMessages,
		MinTopicTitleLength:           r.MinTopicTitleLength,
		MaxTopicTitleLength:           r.MaxTopicTitleLength,
		MinPersonalMessageTitleLength: r.MinPersonalMessageTitleLength,
		MinPostLength:                 r.MinPostLength,
		MinPersonalMessagePostLength:  r.MinPersonalMessagePostLength,
		MaxTargetRecipients:           r.MaxTargetRecipients,
		UpdatedAt:                     r.UpdatedAt,
	}
}

// Repo provides site settings persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new site settings repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Get returns the stored settings or ErrNotFound when none were saved yet.
func (r *Repo) Get(ctx context.Context) (*domain.SiteSettings, error) {
	q := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": rowID})

	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, q); err != nil {
		return nil, postgres.MapError(err, "site_settings", rowID)
	}
	return dst.toDomain(), nil
}

// Save writes the settings row, inserting it on first use.
func (r *Repo) Save(ctx context.Context, s domain.SiteSettings) (*domain.SiteSettings, error) {
	updates := make([]string, 0, len(columns))
	for _, c := range columns {
		updates = append(updates, c+" = EXCLUDED."+c)
	}

	q := postgres.Builder.Insert(table).
		Columns(append([]string{"id"}, columns...)...).
		Values(
			rowID,
			int(s.MinTrustToCreateTopic),
			int(s.MinTrustToSendMessages),
			int(s.MinTrustToSendEmailMessages),
			s.AllowDuplicateTopicTitles,
			s.EnableStagedUsers,
			s.EnablePrivateEmailMessages,
			s.MinTopicTitleLength,
			s.MaxTopicTitleLength,
			s.MinPersonalMessageTitleLength,
			s.MinPostLength,
			s.MinPersonalMessagePostLength,
			s.MaxTargetRecipients,
			sq.Expr("now()"),
		).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + strings.Join(updates, ", ") +
			" RETURNING " + strings.Join(columns, ", "))

	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, q); err != nil {
		return nil, postgres.MapError(err, "site_settings", rowID)
	}
	return dst.toDomain(), nil
}
