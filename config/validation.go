package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "\n")
}

var supportedDrivers = map[string]bool{"sqlite": true, "postgres": true}

// ValidateConfig checks cfg for the current environment and reports all
// problems at once.
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.ServerPort == "" {
		add("server_port", "is required")
	}
	if !supportedDrivers[cfg.DatabaseDriver] {
		add("database_driver", fmt.Sprintf("unsupported driver %q (use sqlite or postgres)", cfg.DatabaseDriver))
	}
	if cfg.DatabaseURL == "" {
		add("database_url", "is required")
	}
	if cfg.CompletionTimeout <= 0 {
		add("completion_timeout", "must be positive")
	}
	if cfg.SessionTTL <= 0 {
		add("session_ttl", "must be positive")
	}
	if cfg.RateLimit < 0 {
		add("rate_limit", "must not be negative")
	}
	if cfg.RateLimit > 0 && cfg.RateLimitWindow <= 0 {
		add("rate_limit_window", "must be positive when rate_limit is set")
	}
	if cfg.JWTSecret == "" {
		add("jwt_secret", "is required")
	}

	if cfg.Environment == Production {
		if cfg.JWTSecret == DefaultJWTSecret {
			add("jwt_secret", "the development default must not be used in production")
		}
		if cfg.DatabaseDriver != "postgres" {
			add("database_driver", "production requires postgres")
		}
		if cfg.RedisURL == "" {
			add("redis_url", "is required in production")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
