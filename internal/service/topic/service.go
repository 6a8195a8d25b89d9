package topic

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

type topicRepo interface {
	Create(ctx context.Context, t *domain.Topic) (*domain.Topic, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error)
	LockTitle(ctx context.Context, title string) error
	TitleExists(ctx context.Context, title string) (bool, error)
	AddAllowedUsers(ctx context.Context, topicID uuid.UUID, userIDs []uuid.UUID) error
	AllowedUserIDs(ctx context.Context, topicID uuid.UUID) ([]uuid.UUID, error)
}

type postRepo interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	GetByNumber(ctx context.Context, topicID uuid.UUID, number int) (*domain.Post, error)
}

type categoryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernames(ctx context.Context, usernames []string) ([]domain.User, error)
	GetByEmails(ctx context.Context, emails []string) ([]domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
}

type timerRepo interface {
	Upsert(ctx context.Context, t *domain.TopicTimer) (*domain.TopicTimer, error)
	GetByTopic(ctx context.Context, topicID uuid.UUID) (*domain.TopicTimer, error)
}

type watchRepo interface {
	ChangeNotificationLevel(ctx context.Context, userID, topicID uuid.UUID, level domain.NotificationLevel, reason domain.NotificationReason) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type settingsProvider interface {
	Get(ctx context.Context) (domain.SiteSettings, error)
}

type mailer interface {
	Send(ctx context.Context, msg domain.Email) error
}

// Service creates and reads topics and private messages.
type Service struct {
	topics     topicRepo
	posts      postRepo
	categories categoryRepo
	users      userRepo
	timers     timerRepo
	watches    watchRepo
	audit      auditLogger
	tx         txManager
	settings   settingsProvider
	mail       mailer
	log        *slog.Logger
	now        func() time.Time
}

// NewService creates a new Topic service.
func NewService(
	log *slog.Logger,
	topics topicRepo,
	posts postRepo,
	categories categoryRepo,
	users userRepo,
	timers timerRepo,
	watches watchRepo,
	audit auditLogger,
	tx txManager,
	settings settingsProvider,
	mail mailer,
) *Service {
	return &Service{
		topics:     topics,
		posts:      posts,
		categories: categories,
		users:      users,
		timers:     timers,
		watches:    watches,
		audit:      audit,
		tx:         tx,
		settings:   settings,
		mail:       mail,
		log:        log.With("service", "topic"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}
