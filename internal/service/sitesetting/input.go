package sitesetting

import "github.com/heartmarshall/forum-backend/internal/domain"

// UpdateInput carries a partial settings update. Nil fields keep their
// current value.
type UpdateInput struct {
	MinTrustToCreateTopic         *int
	MinTrustToSendMessages        *int
	MinTrustToSendEmailMessages   *int
	AllowDuplicateTopicTitles     *bool
	EnableStagedUsers             *bool
	EnablePrivateEmailMessages    *bool
	MinTopicTitleLength           *int
	MaxTopicTitleLength           *int
	MinPersonalMessageTitleLength *int
	MinPostLength                 *int
	MinPersonalMessagePostLength  *int
	MaxTargetRecipients           *int
}

// apply returns cur with the set fields replaced, plus an audit diff of the
// fields whose value actually changed.
func (in UpdateInput) apply(cur domain.SiteSettings) (domain.SiteSettings, map[string]any) {
	next := cur
	changes := make(map[string]any)

	setLevel := func(name string, dst *domain.TrustLevel, v *int) {
		if v == nil || domain.TrustLevel(*v) == *dst {
			return
		}
		changes[name] = map[string]any{"old": int(*dst), "new": *v}
		*dst = domain.TrustLevel(*v)
	}
	setInt := func(name string, dst *int, v *int) {
		if v == nil || *v == *dst {
			return
		}
		changes[name] = map[string]any{"old": *dst, "new": *v}
		*dst = *v
	}
	setBool := func(name string, dst *bool, v *bool) {
		if v == nil || *v == *dst {
			return
		}
		changes[name] = map[string]any{"old": *dst, "new": *v}
		*dst = *v
	}

	setLevel("min_trust_to_create_topic", &next.MinTrustToCreateTopic, in.MinTrustToCreateTopic)
	setLevel("min_trust_to_send_messages", &next.MinTrustToSendMessages, in.MinTrustToSendMessages)
	setLevel("min_trust_to_send_email_messages", &next.MinTrustToSendEmailMessages, in.MinTrustToSendEmailMessages)
	setBool("allow_duplicate_topic_titles", &next.AllowDuplicateTopicTitles, in.AllowDuplicateTopicTitles)
	setBool("enable_staged_users", &next.EnableStagedUsers, in.EnableStagedUsers)
	setBool("enable_private_email_messages", &next.EnablePrivateEmailMessages, in.EnablePrivateEmailMessages)
	setInt("min_topic_title_length", &next.MinTopicTitleLength, in.MinTopicTitleLength)
	setInt("max_topic_title_length", &next.MaxTopicTitleLength, in.MaxTopicTitleLength)
	setInt("min_personal_message_title_length", &next.MinPersonalMessageTitleLength, in.MinPersonalMessageTitleLength)
	setInt("min_post_length", &next.MinPostLength, in.MinPostLength)
	setInt("min_personal_message_post_length", &next.MinPersonalMessagePostLength, in.MinPersonalMessagePostLength)
	setInt("max_target_recipients", &next.MaxTargetRecipients, in.MaxTargetRecipients)

	return next, changes
}
