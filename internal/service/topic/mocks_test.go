package topic

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

// memDB is an in-memory stand-in for the tables the service writes.
// memTx snapshots it before a transaction and restores it on error, so tests
// can assert that an aborted attempt leaves nothing behind.
type memDB struct {
	mu         sync.Mutex
	users      map[uuid.UUID]domain.User
	categories map[uuid.UUID]domain.Category
	topics     map[uuid.UUID]domain.Topic
	posts      map[uuid.UUID]domain.Post
	allowed    map[uuid.UUID][]uuid.UUID
	timers     map[uuid.UUID]domain.TopicTimer
	watches    map[[2]uuid.UUID]domain.NotificationLevel
	audit      []domain.AuditRecord
	titleLocks []string
}

func newMemDB() *memDB {
	return &memDB{
		users:      make(map[uuid.UUID]domain.User),
		categories: make(map[uuid.UUID]domain.Category),
		topics:     make(map[uuid.UUID]domain.Topic),
		posts:      make(map[uuid.UUID]domain.Post),
		allowed:    make(map[uuid.UUID][]uuid.UUID),
		timers:     make(map[uuid.UUID]domain.TopicTimer),
		watches:    make(map[[2]uuid.UUID]domain.NotificationLevel),
	}
}

type memSnapshot struct {
	users      map[uuid.UUID]domain.User
	categories map[uuid.UUID]domain.Category
	topics     map[uuid.UUID]domain.Topic
	posts      map[uuid.UUID]domain.Post
	allowed    map[uuid.UUID][]uuid.UUID
	timers     map[uuid.UUID]domain.TopicTimer
	audit      []domain.AuditRecord
}

func (db *memDB) snapshot() memSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	return memSnapshot{
		users:      maps.Clone(db.users),
		categories: maps.Clone(db.categories),
		topics:     maps.Clone(db.topics),
		posts:      maps.Clone(db.posts),
		allowed:    maps.Clone(db.allowed),
		timers:     maps.Clone(db.timers),
		audit:      slices.Clone(db.audit),
	}
}

func (db *memDB) restore(s memSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users = s.users
	db.categories = s.categories
	db.topics = s.topics
	db.posts = s.posts
	db.allowed = s.allowed
	db.timers = s.timers
	db.audit = s.audit
}

func (db *memDB) addUser(u domain.User) *domain.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	db.users[u.ID] = u
	return &u
}

func (db *memDB) addCategory(c domain.Category) *domain.Category {
	db.mu.Lock()
	defer db.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	db.categories[c.ID] = c
	return &c
}

func (db *memDB) counts() (topics, posts, timers, audit int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.topics), len(db.posts), len(db.timers), len(db.audit)
}

func (db *memDB) stagedUsers() []domain.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []domain.User
	for _, u := range db.users {
		if u.Staged {
			out = append(out, u)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// repositories
// ---------------------------------------------------------------------------

type memTopics struct{ db *memDB }

func (m memTopics) Create(_ context.Context, t *domain.Topic) (*domain.Topic, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.topics[t.ID] = *t
	out := *t
	return &out, nil
}

func (m memTopics) GetByID(_ context.Context, id uuid.UUID) (*domain.Topic, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	t, ok := m.db.topics[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m memTopics) LockTitle(_ context.Context, title string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.titleLocks = append(m.db.titleLocks, title)
	return nil
}

func (db *memDB) lockedTitles() []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	return slices.Clone(db.titleLocks)
}

func (m memTopics) TitleExists(_ context.Context, title string) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	key := domain.NormalizeText(title)
	for _, t := range m.db.topics {
		if t.Visible && !t.IsPrivateMessage() && domain.NormalizeText(t.Title) == key {
			return true, nil
		}
	}
	return false, nil
}

func (m memTopics) AddAllowedUsers(_ context.Context, topicID uuid.UUID, userIDs []uuid.UUID) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.allowed[topicID] = append(slices.Clone(m.db.allowed[topicID]), userIDs...)
	return nil
}

func (m memTopics) AllowedUserIDs(_ context.Context, topicID uuid.UUID) ([]uuid.UUID, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return slices.Clone(m.db.allowed[topicID]), nil
}

type memPosts struct{ db *memDB }

func (m memPosts) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.posts[p.ID] = *p
	out := *p
	return &out, nil
}

func (m memPosts) GetByNumber(_ context.Context, topicID uuid.UUID, number int) (*domain.Post, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, p := range m.db.posts {
		if p.TopicID == topicID && p.PostNumber == number {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memCategories struct{ db *memDB }

func (m memCategories) GetByID(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c, ok := m.db.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m memCategories) GetByName(_ context.Context, name string) (*domain.Category, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	key := domain.NormalizeText(name)
	for _, c := range m.db.categories {
		if domain.NormalizeText(c.Name) == key {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memUsers struct{ db *memDB }

func (m memUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	u, ok := m.db.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m memUsers) GetByUsernames(_ context.Context, usernames []string) ([]domain.User, error) {
	return m.match(usernames, func(u domain.User) string { return u.Username }), nil
}

func (m memUsers) GetByEmails(_ context.Context, emails []string) ([]domain.User, error) {
	return m.match(emails, func(u domain.User) string { return u.Email }), nil
}

func (m memUsers) match(values []string, field func(domain.User) string) []domain.User {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var out []domain.User
	for _, u := range m.db.users {
		for _, v := range values {
			if strings.EqualFold(field(u), v) {
				out = append(out, u)
				break
			}
		}
	}
	return out
}

func (m memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, existing := range m.db.users {
		if strings.EqualFold(existing.Email, u.Email) || strings.EqualFold(existing.Username, u.Username) {
			return nil, domain.ErrAlreadyExists
		}
	}
	m.db.users[u.ID] = *u
	out := *u
	return &out, nil
}

type memTimers struct{ db *memDB }

func (m memTimers) Upsert(_ context.Context, t *domain.TopicTimer) (*domain.TopicTimer, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.timers[t.TopicID] = *t
	out := *t
	return &out, nil
}

func (m memTimers) GetByTopic(_ context.Context, topicID uuid.UUID) (*domain.TopicTimer, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	t, ok := m.db.timers[topicID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

type memAudit struct{ db *memDB }

func (m memAudit) Log(_ context.Context, record domain.AuditRecord) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.audit = append(m.db.audit, record)
	return nil
}

// memTx runs fn directly and rolls memDB back when fn fails.
type memTx struct {
	db    *memDB
	calls int
}

func (m *memTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	snap := m.db.snapshot()
	if err := fn(ctx); err != nil {
		m.db.restore(snap)
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// moq-style mocks for side effects
// ---------------------------------------------------------------------------

type watchRepoMock struct {
	mu                          sync.Mutex
	ChangeNotificationLevelFunc func(ctx context.Context, userID, topicID uuid.UUID, level domain.NotificationLevel, reason domain.NotificationReason) error
	calls                       []watchCall
}

type watchCall struct {
	UserID  uuid.UUID
	TopicID uuid.UUID
	Level   domain.NotificationLevel
	Reason  domain.NotificationReason
}

func (m *watchRepoMock) ChangeNotificationLevel(ctx context.Context, userID, topicID uuid.UUID, level domain.NotificationLevel, reason domain.NotificationReason) error {
	m.mu.Lock()
	m.calls = append(m.calls, watchCall{UserID: userID, TopicID: topicID, Level: level, Reason: reason})
	m.mu.Unlock()
	if m.ChangeNotificationLevelFunc == nil {
		return nil
	}
	return m.ChangeNotificationLevelFunc(ctx, userID, topicID, level, reason)
}

func (m *watchRepoMock) ChangeNotificationLevelCalls() []watchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

type mailerMock struct {
	mu       sync.Mutex
	SendFunc func(ctx context.Context, msg domain.Email) error
	sent     []domain.Email
}

func (m *mailerMock) Send(ctx context.Context, msg domain.Email) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	if m.SendFunc == nil {
		return nil
	}
	return m.SendFunc(ctx, msg)
}

func (m *mailerMock) SendCalls() []domain.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.sent)
}

type settingsProviderMock struct {
	GetFunc func(ctx context.Context) (domain.SiteSettings, error)
}

func (m *settingsProviderMock) Get(ctx context.Context) (domain.SiteSettings, error) {
	if m.GetFunc == nil {
		return domain.DefaultSiteSettings(), nil
	}
	return m.GetFunc(ctx)
}
