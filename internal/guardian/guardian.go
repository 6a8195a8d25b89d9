// Package guardian answers "may this actor do X" questions for mutating
// forum actions. A Guardian is built per request from the acting user and the
// site settings snapshot taken for that request.
package guardian

import (
	"github.com/heartmarshall/forum-backend/internal/domain"
)

// Guardian is the authorization context of a single actor.
// A nil actor represents an anonymous visitor, who may not create anything.
type Guardian struct {
	actor    *domain.User
	settings domain.SiteSettings
}

// New creates a Guardian for actor under the given settings snapshot.
func New(actor *domain.User, settings domain.SiteSettings) *Guardian {
	return &Guardian{actor: actor, settings: settings}
}

// Actor returns the user the guardian speaks for (nil when anonymous).
func (g *Guardian) Actor() *domain.User { return g.actor }

// Settings returns the settings snapshot the guardian was built with.
func (g *Guardian) Settings() domain.SiteSettings { return g.settings }

func (g *Guardian) authenticated() bool {
	return g.actor != nil
}

// IsStaff reports whether the actor is a moderator or admin.
func (g *Guardian) IsStaff() bool {
	return g.authenticated() && g.actor.IsStaff()
}

// IsAdmin reports whether the actor is an admin.
func (g *Guardian) IsAdmin() bool {
	return g.authenticated() && g.actor.Admin
}

// canPost is the baseline for every creation action: a real, unrestricted account.
func (g *Guardian) canPost() bool {
	return g.authenticated() && !g.actor.Staged && !g.actor.Silenced
}

// CanCreateTopic reports whether the actor may start a regular topic.
// Staff bypass the trust level requirement.
func (g *Guardian) CanCreateTopic() bool {
	if !g.canPost() {
		return false
	}
	return g.actor.IsStaff() || g.actor.HasTrustLevel(g.settings.MinTrustToCreateTopic)
}

// CanCreateTopicOn reports whether the actor may start a topic in category.
// A nil category means uncategorized.
func (g *Guardian) CanCreateTopicOn(category *domain.Category) bool {
	if !g.CanCreateTopic() {
		return false
	}
	if category == nil || !category.ReadRestricted {
		return true
	}
	return g.actor.IsStaff()
}

// CanSendPrivateMessages reports whether the actor may start private messages.
func (g *Guardian) CanSendPrivateMessages() bool {
	if !g.canPost() {
		return false
	}
	return g.actor.IsStaff() || g.actor.HasTrustLevel(g.settings.MinTrustToSendMessages)
}

// CanSendPrivateEmailMessages reports whether the actor may address private
// messages to raw email addresses. The feature must be enabled site-wide.
func (g *Guardian) CanSendPrivateEmailMessages() bool {
	if !g.settings.EnablePrivateEmailMessages || !g.canPost() {
		return false
	}
	return g.actor.IsStaff() || g.actor.HasTrustLevel(g.settings.MinTrustToSendEmailMessages)
}

// CanCreateTopicTimer reports whether the actor may schedule topic timers.
func (g *Guardian) CanCreateTopicTimer() bool {
	return g.IsStaff()
}

// CanSeeTopic reports whether the actor may read topic. Private messages are
// visible to participants and staff only.
func (g *Guardian) CanSeeTopic(topic *domain.Topic) bool {
	if !topic.IsPrivateMessage() {
		if topic.Category != nil && topic.Category.ReadRestricted {
			return g.IsStaff()
		}
		return true
	}
	if !g.authenticated() {
		return false
	}
	if g.actor.IsStaff() || topic.UserID == g.actor.ID {
		return true
	}
	for _, id := range topic.AllowedUserIDs {
		if id == g.actor.ID {
			return true
		}
	}
	return false
}

// CanManageCategories reports whether the actor may create categories.
func (g *Guardian) CanManageCategories() bool {
	return g.IsStaff()
}

// CanChangeSiteSettings reports whether the actor may update site settings.
func (g *Guardian) CanChangeSiteSettings() bool {
	return g.IsAdmin()
}
