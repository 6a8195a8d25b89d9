package domain

// TrustLevel is the ordinal rank that gates feature access.
type TrustLevel int

const (
	TrustLevelNewUser TrustLevel = 0
	TrustLevelBasic   TrustLevel = 1
	TrustLevelMember  TrustLevel = 2
	TrustLevelRegular TrustLevel = 3
	TrustLevelLeader  TrustLevel = 4
)

func (l TrustLevel) IsValid() bool {
	return l >= TrustLevelNewUser && l <= TrustLevelLeader
}

func (l TrustLevel) String() string {
	switch l {
	case TrustLevelNewUser:
		return "newuser"
	case TrustLevelBasic:
		return "basic"
	case TrustLevelMember:
		return "member"
	case TrustLevelRegular:
		return "regular"
	case TrustLevelLeader:
		return "leader"
	}
	return "unknown"
}

// Archetype is the kind of topic being created.
type Archetype string

const (
	ArchetypeRegular        Archetype = "regular"
	ArchetypePrivateMessage Archetype = "private_message"
)

func (a Archetype) String() string { return string(a) }

func (a Archetype) IsValid() bool {
	switch a {
	case ArchetypeRegular, ArchetypePrivateMessage:
		return true
	}
	return false
}

// OrDefault maps the empty archetype to ArchetypeRegular.
func (a Archetype) OrDefault() Archetype {
	if a == "" {
		return ArchetypeRegular
	}
	return a
}

func (a Archetype) IsPrivateMessage() bool { return a == ArchetypePrivateMessage }

// NotificationLevel controls how a user is notified about a topic.
type NotificationLevel int

const (
	NotificationLevelMuted    NotificationLevel = 0
	NotificationLevelRegular  NotificationLevel = 1
	NotificationLevelTracking NotificationLevel = 2
	NotificationLevelWatching NotificationLevel = 3
)

// NotificationReason records why a notification level was set.
type NotificationReason int

const (
	NotificationReasonCreatedTopic NotificationReason = 1
	NotificationReasonUserChanged  NotificationReason = 2
)

// TimerStatusType is the action a topic timer performs when it fires.
type TimerStatusType string

const (
	TimerStatusClose TimerStatusType = "close"
	TimerStatusOpen  TimerStatusType = "open"
)

func (s TimerStatusType) String() string { return string(s) }

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeTopic        EntityType = "TOPIC"
	EntityTypePost         EntityType = "POST"
	EntityTypeCategory     EntityType = "CATEGORY"
	EntityTypeUser         EntityType = "USER"
	EntityTypeSiteSettings EntityType = "SITE_SETTINGS"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeTopic, EntityTypePost, EntityTypeCategory, EntityTypeUser, EntityTypeSiteSettings:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

// UserRole is the elevated role of a user, if any.
type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleModerator UserRole = "moderator"
	UserRoleAdmin     UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleModerator, UserRoleAdmin:
		return true
	}
	return false
}
