package topic

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
	"github.com/heartmarshall/forum-backend/internal/guardian"
	"github.com/heartmarshall/forum-backend/pkg/ctxutil"
)

// GetTopic returns a topic with its category, first post, timer and
// participants. Topics the caller may not see are reported as not found.
func (s *Service) GetTopic(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	if topicID == uuid.Nil {
		return nil, domain.NewValidationError("topic_id", "required")
	}

	var actor *domain.User
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get actor: %w", err)
		}
		actor = u
	}

	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}

	if topic.CategoryID != nil {
		c, err := s.categories.GetByID(ctx, *topic.CategoryID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get category: %w", err)
		}
		topic.Category = c
	}

	if topic.IsPrivateMessage() {
		ids, err := s.topics.AllowedUserIDs(ctx, topic.ID)
		if err != nil {
			return nil, fmt.Errorf("get allowed users: %w", err)
		}
		topic.AllowedUserIDs = ids
	}

	// Visibility only needs the snapshot-independent rules.
	if !guardian.New(actor, domain.SiteSettings{}).CanSeeTopic(topic) {
		return nil, fmt.Errorf("get topic: %w", domain.ErrNotFound)
	}

	first, err := s.posts.GetByNumber(ctx, topic.ID, 1)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get first post: %w", err)
	}
	topic.FirstPost = first

	timer, err := s.timers.GetByTopic(ctx, topic.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get topic timer: %w", err)
	}
	topic.PublicTimer = timer

	return topic, nil
}
