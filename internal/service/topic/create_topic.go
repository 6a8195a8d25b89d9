package topic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
	"github.com/heartmarshall/forum-backend/internal/guardian"
	"github.com/heartmarshall/forum-backend/pkg/ctxutil"
)

// CreateTopic creates a topic or private message for the authenticated user,
// using a fresh settings snapshot.
func (s *Service) CreateTopic(ctx context.Context, input CreateTopicInput) (*domain.Topic, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	actor, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get site settings: %w", err)
	}

	return s.Create(ctx, actor, guardian.New(actor, settings), settings, input)
}

// Create runs the whole creation attempt in one transaction. Any failed check
// returns a *domain.AbortError and nothing written during the attempt survives.
func (s *Service) Create(
	ctx context.Context,
	actor *domain.User,
	g *guardian.Guardian,
	settings domain.SiteSettings,
	input CreateTopicInput,
) (*domain.Topic, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if input.Archetype != "" && !input.Archetype.IsValid() {
		return nil, domain.NewAbort(domain.AbortMalformedInput, "archetype", "unknown archetype")
	}

	archetype := input.archetype()
	usernames := input.usernames()
	var emails []string
	if archetype.IsPrivateMessage() {
		emails = input.emails()
	}

	var (
		topic   *domain.Topic
		targets []domain.User
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := checkPermissions(g, archetype, emails); err != nil {
			return err
		}
		if err := validateContent(input, settings, len(usernames)+len(emails)); err != nil {
			return err
		}

		var category *domain.Category
		if !archetype.IsPrivateMessage() {
			var err error
			category, err = s.resolveCategory(txCtx, input.Category)
			if err != nil {
				return err
			}
			if !g.CanCreateTopicOn(category) {
				return domain.NewAbort(domain.AbortPermissionDenied, "category", "not allowed to create topics in this category")
			}
		}

		title := domain.CleanTitle(input.Title)
		if !settings.AllowDuplicateTopicTitles && !archetype.IsPrivateMessage() {
			if err := s.topics.LockTitle(txCtx, title); err != nil {
				return err
			}
			exists, err := s.topics.TitleExists(txCtx, title)
			if err != nil {
				return fmt.Errorf("check title: %w", err)
			}
			if exists {
				return domain.NewAbort(domain.AbortDuplicateTitle, "title", "a topic with this title already exists")
			}
		}

		if archetype.IsPrivateMessage() {
			var err error
			targets, err = s.resolveTargets(txCtx, settings, actor, usernames, emails)
			if err != nil {
				return err
			}
		}

		now := s.now()
		t := &domain.Topic{
			ID:         uuid.New(),
			Title:      title,
			Slug:       domain.Slugify(title),
			Archetype:  archetype,
			UserID:     actor.ID,
			PostsCount: 1,
			Visible:    true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if category != nil {
			t.CategoryID = &category.ID
		}

		created, err := s.topics.Create(txCtx, t)
		if err != nil {
			return fmt.Errorf("create topic: %w", err)
		}
		created.Category = category

		first, err := s.posts.Create(txCtx, &domain.Post{
			ID:         uuid.New(),
			TopicID:    created.ID,
			UserID:     actor.ID,
			PostNumber: 1,
			Raw:        strings.TrimSpace(input.Raw),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("create first post: %w", err)
		}
		created.FirstPost = first

		if archetype.IsPrivateMessage() {
			allowed := make([]uuid.UUID, 0, len(targets)+1)
			allowed = append(allowed, actor.ID)
			for _, u := range targets {
				if u.ID != actor.ID {
					allowed = append(allowed, u.ID)
				}
			}
			if err := s.topics.AddAllowedUsers(txCtx, created.ID, allowed); err != nil {
				return fmt.Errorf("add allowed users: %w", err)
			}
			created.AllowedUserIDs = allowed
		}

		if d, ok := parseAutoClose(input.AutoCloseTime); ok && g.CanCreateTopicTimer() {
			timer, err := s.timers.Upsert(txCtx, &domain.TopicTimer{
				ID:         uuid.New(),
				TopicID:    created.ID,
				UserID:     actor.ID,
				StatusType: domain.TimerStatusClose,
				ExecuteAt:  now.Add(d),
				CreatedAt:  now,
			})
			if err != nil {
				return fmt.Errorf("create topic timer: %w", err)
			}
			created.PublicTimer = timer
		}

		changes := map[string]any{
			"title":     map[string]any{"new": title},
			"archetype": map[string]any{"new": archetype.String()},
		}
		if category != nil {
			changes["category_id"] = map[string]any{"new": category.ID.String()}
		}
		if err := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     actor.ID,
			EntityType: domain.EntityTypeTopic,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes:    changes,
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}

		topic = created
		return nil
	})
	if err != nil {
		if reason, ok := domain.AbortReasonOf(err); ok {
			s.log.InfoContext(ctx, "topic creation aborted",
				slog.String("user_id", actor.ID.String()),
				slog.String("reason", reason.String()),
			)
		}
		return nil, err
	}

	s.afterCreate(ctx, actor, topic, targets, input.ViaEmail)

	s.log.InfoContext(ctx, "topic created",
		slog.String("user_id", actor.ID.String()),
		slog.String("topic_id", topic.ID.String()),
		slog.String("archetype", topic.Archetype.String()),
	)

	return topic, nil
}

// checkPermissions evaluates the guardian preconditions in order and
// short-circuits on the first failure.
func checkPermissions(g *guardian.Guardian, archetype domain.Archetype, emails []string) error {
	if archetype.IsPrivateMessage() {
		if !g.CanSendPrivateMessages() {
			return domain.NewAbort(domain.AbortPermissionDenied, "archetype", "trust level too low to send private messages")
		}
		if len(emails) > 0 {
			if !g.Settings().EnablePrivateEmailMessages {
				return domain.NewAbort(domain.AbortFeatureDisabled, "target_emails", "private email messages are disabled")
			}
			if !g.CanSendPrivateEmailMessages() {
				return domain.NewAbort(domain.AbortPermissionDenied, "target_emails", "trust level too low to send email messages")
			}
		}
	} else if !g.CanCreateTopic() {
		return domain.NewAbort(domain.AbortPermissionDenied, "archetype", "trust level too low to create topics")
	}

	return validateEmails(emails)
}

// resolveCategory looks the reference up by id or case-insensitive name.
// An unknown reference leaves the topic uncategorized.
func (s *Service) resolveCategory(ctx context.Context, ref string) (*domain.Category, error) {
	id, name, ok := parseCategoryRef(ref)
	if !ok {
		return nil, nil
	}

	var (
		c   *domain.Category
		err error
	)
	if name == "" {
		c, err = s.categories.GetByID(ctx, id)
	} else {
		c, err = s.categories.GetByName(ctx, name)
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	return c, nil
}

// resolveTargets loads private message recipients. Every username must exist;
// unknown emails become staged users when the site allows it.
func (s *Service) resolveTargets(
	ctx context.Context,
	settings domain.SiteSettings,
	actor *domain.User,
	usernames, emails []string,
) ([]domain.User, error) {
	var targets []domain.User

	if len(usernames) > 0 {
		found, err := s.users.GetByUsernames(ctx, usernames)
		if err != nil {
			return nil, fmt.Errorf("resolve usernames: %w", err)
		}
		byName := make(map[string]struct{}, len(found))
		for _, u := range found {
			byName[strings.ToLower(u.Username)] = struct{}{}
		}
		for _, name := range usernames {
			if _, ok := byName[strings.ToLower(name)]; !ok {
				return nil, domain.NewAbort(domain.AbortMalformedInput, "target_usernames", "unknown user: "+name)
			}
		}
		targets = append(targets, found...)
	}

	if len(emails) > 0 {
		found, err := s.users.GetByEmails(ctx, emails)
		if err != nil {
			return nil, fmt.Errorf("resolve emails: %w", err)
		}
		byEmail := make(map[string]struct{}, len(found))
		for _, u := range found {
			byEmail[strings.ToLower(u.Email)] = struct{}{}
		}
		targets = append(targets, found...)

		for _, email := range emails {
			if _, ok := byEmail[strings.ToLower(email)]; ok {
				continue
			}
			if !settings.EnableStagedUsers {
				return nil, domain.NewAbort(domain.AbortFeatureDisabled, "target_emails", "staged users are disabled: "+email)
			}
			staged, err := s.createStagedUser(ctx, email)
			if err != nil {
				return nil, err
			}
			targets = append(targets, *staged)
		}
	}

	return dedupeUsers(targets, actor.ID), nil
}

func (s *Service) createStagedUser(ctx context.Context, email string) (*domain.User, error) {
	now := s.now()
	id := uuid.New()
	u, err := s.users.Create(ctx, &domain.User{
		ID:         id,
		Username:   stagedUsername(email, id),
		Email:      strings.ToLower(email),
		TrustLevel: domain.TrustLevelNewUser,
		Staged:     true,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("create staged user: %w", err)
	}
	return u, nil
}

// stagedUsername derives a placeholder username from the email local part.
func stagedUsername(email string, id uuid.UUID) string {
	local, _, _ := strings.Cut(email, "@")
	local = domain.Slugify(local)
	if len(local) > 20 {
		local = local[:20]
	}
	return local + "_" + id.String()[:8]
}

func dedupeUsers(users []domain.User, skip uuid.UUID) []domain.User {
	seen := map[uuid.UUID]struct{}{skip: {}}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}
	return out
}

// afterCreate runs the post-commit side effects. Their failures are logged
// and never undo the topic.
func (s *Service) afterCreate(ctx context.Context, actor *domain.User, topic *domain.Topic, targets []domain.User, viaEmail bool) {
	if err := s.watches.ChangeNotificationLevel(ctx, actor.ID, topic.ID,
		domain.NotificationLevelWatching, domain.NotificationReasonCreatedTopic); err != nil {
		s.log.WarnContext(ctx, "auto-watch failed",
			slog.String("topic_id", topic.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	if viaEmail || !topic.IsPrivateMessage() {
		return
	}
	for _, u := range targets {
		if !u.Staged {
			continue
		}
		msg := domain.Email{
			To:      u.Email,
			Subject: topic.Title,
			Body:    emailBody(actor, topic),
		}
		if err := s.mail.Send(ctx, msg); err != nil {
			s.log.WarnContext(ctx, "message email failed",
				slog.String("topic_id", topic.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

func emailBody(actor *domain.User, topic *domain.Topic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s sent you a message: %s\n\n", actor.Username, topic.Title)
	if topic.FirstPost != nil {
		b.WriteString(topic.FirstPost.Raw)
		b.WriteString("\n")
	}
	return b.String()
}
