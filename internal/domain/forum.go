package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups regular topics. Private messages never have a category.
type Category struct {
	ID             uuid.UUID
	Name           string
	Slug           string
	Description    *string
	ReadRestricted bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Topic is a discussion thread or a private message conversation.
type Topic struct {
	ID         uuid.UUID
	Title      string
	Slug       string
	Archetype  Archetype
	UserID     uuid.UUID
	CategoryID *uuid.UUID
	PostsCount int
	Visible    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Loaded alongside the topic, not stored on the row.
	Category       *Category
	FirstPost      *Post
	PublicTimer    *TopicTimer
	AllowedUserIDs []uuid.UUID
}

// IsPrivateMessage reports whether the topic is a private message.
func (t *Topic) IsPrivateMessage() bool {
	return t.Archetype.IsPrivateMessage()
}

// Post is a single message inside a topic. The first post carries the topic body.
type Post struct {
	ID         uuid.UUID
	TopicID    uuid.UUID
	UserID     uuid.UUID
	PostNumber int
	Raw        string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TopicTimer schedules a status change on a topic.
type TopicTimer struct {
	ID         uuid.UUID
	TopicID    uuid.UUID
	UserID     uuid.UUID
	StatusType TimerStatusType
	ExecuteAt  time.Time
	CreatedAt  time.Time
}

// TopicUser holds a user's per-topic notification state.
type TopicUser struct {
	UserID             uuid.UUID
	TopicID            uuid.UUID
	NotificationLevel  NotificationLevel
	NotificationReason NotificationReason
	UpdatedAt          time.Time
}

// AuditRecord logs a mutation event on a domain entity.
type AuditRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}
