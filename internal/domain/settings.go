package domain

import "time"

// SiteSettings is a read-only snapshot of the site-wide configuration that
// gates topic and message creation. Callers take one snapshot per request.
type SiteSettings struct {
	MinTrustToCreateTopic         TrustLevel
	MinTrustToSendMessages        TrustLevel
	MinTrustToSendEmailMessages   TrustLevel
	AllowDuplicateTopicTitles     bool
	EnableStagedUsers             bool
	EnablePrivateEmailMessages    bool
	MinTopicTitleLength           int
	MaxTopicTitleLength           int
	MinPersonalMessageTitleLength int
	MinPostLength                 int
	MinPersonalMessagePostLength  int
	MaxTargetRecipients           int
	UpdatedAt                     time.Time
}

// DefaultSiteSettings returns the out-of-the-box forum settings.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		MinTrustToCreateTopic:         TrustLevelNewUser,
		MinTrustToSendMessages:        TrustLevelBasic,
		MinTrustToSendEmailMessages:   TrustLevelLeader,
		AllowDuplicateTopicTitles:     false,
		EnableStagedUsers:             false,
		EnablePrivateEmailMessages:    false,
		MinTopicTitleLength:           15,
		MaxTopicTitleLength:           255,
		MinPersonalMessageTitleLength: 2,
		MinPostLength:                 20,
		MinPersonalMessagePostLength:  10,
		MaxTargetRecipients:           20,
	}
}

// MinTitleLength returns the minimum title length for the archetype.
func (s SiteSettings) MinTitleLength(a Archetype) int {
	if a.IsPrivateMessage() {
		return s.MinPersonalMessageTitleLength
	}
	return s.MinTopicTitleLength
}

// MinRawLength returns the minimum first-post length for the archetype.
func (s SiteSettings) MinRawLength(a Archetype) int {
	if a.IsPrivateMessage() {
		return s.MinPersonalMessagePostLength
	}
	return s.MinPostLength
}

// Validate checks that the snapshot is internally consistent.
func (s SiteSettings) Validate() error {
	var errs []FieldError

	levels := []struct {
		field string
		level TrustLevel
	}{
		{"min_trust_to_create_topic", s.MinTrustToCreateTopic},
		{"min_trust_to_send_messages", s.MinTrustToSendMessages},
		{"min_trust_to_send_email_messages", s.MinTrustToSendEmailMessages},
	}
	for _, l := range levels {
		if !l.level.IsValid() {
			errs = append(errs, FieldError{Field: l.field, Message: "must be a trust level 0..4"})
		}
	}

	if s.MinTopicTitleLength < 1 {
		errs = append(errs, FieldError{Field: "min_topic_title_length", Message: "must be positive"})
	}
	if s.MinPersonalMessageTitleLength < 1 {
		errs = append(errs, FieldError{Field: "min_personal_message_title_length", Message: "must be positive"})
	}
	if s.MaxTopicTitleLength < s.MinTopicTitleLength || s.MaxTopicTitleLength < s.MinPersonalMessageTitleLength {
		errs = append(errs, FieldError{Field: "max_topic_title_length", Message: "must not be below the minimum title lengths"})
	}
	if s.MinPostLength < 1 {
		errs = append(errs, FieldError{Field: "min_post_length", Message: "must be positive"})
	}
	if s.MinPersonalMessagePostLength < 1 {
		errs = append(errs, FieldError{Field: "min_personal_message_post_length", Message: "must be positive"})
	}
	if s.MaxTargetRecipients < 1 {
		errs = append(errs, FieldError{Field: "max_target_recipients", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
