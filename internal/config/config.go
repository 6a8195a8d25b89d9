package config

import (
	"net"
	"strconv"
	"time"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Site     SiteConfig     `yaml:"site"`
	SMTP     SMTPConfig     `yaml:"smtp"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// Requests per minute per client IP on write endpoints. 0 disables limiting.
	WriteRateLimit int `yaml:"write_rate_limit" env:"SERVER_WRITE_RATE_LIMIT" env-default:"30"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"forum"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"1h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"12"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SiteConfig holds the site setting defaults used until an admin saves
// settings to the database.
type SiteConfig struct {
	MinTrustToCreateTopic         int  `yaml:"min_trust_to_create_topic"          env:"SITE_MIN_TRUST_TO_CREATE_TOPIC"          env-default:"0"`
	MinTrustToSendMessages        int  `yaml:"min_trust_to_send_messages"         env:"SITE_MIN_TRUST_TO_SEND_MESSAGES"         env-default:"1"`
	MinTrustToSendEmailMessages   int  `yaml:"min_trust_to_send_email_messages"   env:"SITE_MIN_TRUST_TO_SEND_EMAIL_MESSAGES"   env-default:"4"`
	AllowDuplicateTopicTitles     bool `yaml:"allow_duplicate_topic_titles"       env:"SITE_ALLOW_DUPLICATE_TOPIC_TITLES"       env-default:"false"`
	EnableStagedUsers             bool `yaml:"enable_staged_users"                env:"SITE_ENABLE_STAGED_USERS"                env-default:"false"`
	EnablePrivateEmailMessages    bool `yaml:"enable_private_email_messages"      env:"SITE_ENABLE_PRIVATE_EMAIL_MESSAGES"      env-default:"false"`
	MinTopicTitleLength           int  `yaml:"min_topic_title_length"             env:"SITE_MIN_TOPIC_TITLE_LENGTH"             env-default:"15"`
	MaxTopicTitleLength           int  `yaml:"max_topic_title_length"             env:"SITE_MAX_TOPIC_TITLE_LENGTH"             env-default:"255"`
	MinPersonalMessageTitleLength int  `yaml:"min_personal_message_title_length"  env:"SITE_MIN_PERSONAL_MESSAGE_TITLE_LENGTH"  env-default:"2"`
	MinPostLength                 int  `yaml:"min_post_length"                    env:"SITE_MIN_POST_LENGTH"                    env-default:"20"`
	MinPersonalMessagePostLength  int  `yaml:"min_personal_message_post_length"   env:"SITE_MIN_PERSONAL_MESSAGE_POST_LENGTH"   env-default:"10"`
	MaxTargetRecipients           int  `yaml:"max_target_recipients"              env:"SITE_MAX_TARGET_RECIPIENTS"              env-default:"20"`
}

// SMTPConfig holds outgoing mail settings. An empty Host switches
// notifications to the log-only sender.
type SMTPConfig struct {
	Host     string `yaml:"host"     env:"SMTP_HOST"`
	Port     int    `yaml:"port"     env:"SMTP_PORT"     env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	TLSMode  string `yaml:"tls_mode" env:"SMTP_TLS_MODE" env-default:"starttls"`
	From     string `yaml:"from"     env:"SMTP_FROM"     env-default:"forum@localhost"`
	BaseURL  string `yaml:"base_url" env:"SMTP_BASE_URL" env-default:"http://localhost:8080"`
}

// Enabled reports whether a real SMTP server is configured.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// Defaults converts the configured defaults into a settings snapshot.
func (c SiteConfig) Defaults() domain.SiteSettings {
	return domain.SiteSettings{
		MinTrustToCreateTopic:         domain.TrustLevel(c.MinTrustToCreateTopic),
		MinTrustToSendMessages:        domain.TrustLevel(c.MinTrustToSendMessages),
		MinTrustToSendEmailMessages:   domain.TrustLevel(c.MinTrustToSendEmailMessages),
		AllowDuplicateTopicTitles:     c.AllowDuplicateTopicTitles,
		EnableStagedUsers:             c.EnableStagedUsers,
		EnablePrivateEmailMessages:    c.EnablePrivateEmailMessages,
		MinTopicTitleLength:           c.MinTopicTitleLength,
		MaxTopicTitleLength:           c.MaxTopicTitleLength,
		MinPersonalMessageTitleLength: c.MinPersonalMessageTitleLength,
		MinPostLength:                 c.MinPostLength,
		MinPersonalMessagePostLength:  c.MinPersonalMessagePostLength,
		MaxTargetRecipients:           c.MaxTargetRecipients,
	}
}
