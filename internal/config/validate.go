package config

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be in [%d, %d] (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if c.Server.WriteRateLimit < 0 {
		return fmt.Errorf("server.write_rate_limit must be >= 0 (got %d)", c.Server.WriteRateLimit)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if err := c.Site.validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}

	if c.SMTP.Enabled() && c.SMTP.From == "" {
		return fmt.Errorf("smtp.from is required when smtp.host is set")
	}
	switch c.SMTP.TLSMode {
	case "starttls", "tls", "none":
	default:
		return fmt.Errorf("smtp.tls_mode must be starttls, tls or none (got %q)", c.SMTP.TLSMode)
	}

	return nil
}

func (s *SiteConfig) validate() error {
	var ve *domain.ValidationError
	if err := s.Defaults().Validate(); errors.As(err, &ve) {
		fe := ve.Errors[0]
		return fmt.Errorf("%s %s", fe.Field, fe.Message)
	}
	return nil
}
