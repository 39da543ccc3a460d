package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "dev-secret-change-me"

// Config holds all configuration for the application
type Config struct {
	Environment Environment `mapstructure:"-"`

	// Server configuration
	ServerHost     string   `mapstructure:"server_host"`
	ServerPort     string   `mapstructure:"server_port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogPretty bool   `mapstructure:"log_pretty"`

	// Completion endpoint
	OpenAIAPIKey      string        `mapstructure:"openai_api_key"`
	OpenAIBaseURL     string        `mapstructure:"openai_base_url"`
	OpenAIModel       string        `mapstructure:"openai_model"`
	CompletionTimeout time.Duration `mapstructure:"completion_timeout"`

	// Redis backs sessions, preferences and rate limits. Empty means in-memory.
	RedisURL string `mapstructure:"redis_url"`

	// Database keeps the generated recipe history
	DatabaseDriver string `mapstructure:"database_driver"`
	DatabaseURL    string `mapstructure:"database_url"`
	MigrationsDir  string `mapstructure:"migrations_dir"`

	// Wizard sessions
	JWTSecret  string        `mapstructure:"jwt_secret"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`

	// Generation rate limit per session or client IP; 0 disables it
	RateLimit       int           `mapstructure:"rate_limit"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// bareEnv lists keys that may also be set through the unprefixed variable
// names used by docker-compose files and the OpenAI tooling.
var bareEnv = map[string]string{
	"server_host":    "SERVER_HOST",
	"server_port":    "SERVER_PORT",
	"openai_api_key": "OPENAI_API_KEY",
	"redis_url":      "REDIS_URL",
	"database_url":   "DATABASE_URL",
	"jwt_secret":     "JWT_SECRET",
}

// secretKeys are read from the Docker secrets directory in production when
// no environment value is set.
var secretKeys = []string{"openai_api_key", "jwt_secret", "database_url", "redis_url"}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "")
	v.SetDefault("server_port", "8080")
	v.SetDefault("allowed_origins", []string{"http://localhost:5173", "http://frontend:5173"})
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("openai_model", "gpt-3.5-turbo")
	v.SetDefault("completion_timeout", 30*time.Second)
	v.SetDefault("redis_url", "")
	v.SetDefault("database_driver", "sqlite")
	v.SetDefault("database_url", "recipewizard.db")
	v.SetDefault("migrations_dir", "migrations")
	v.SetDefault("jwt_secret", DefaultJWTSecret)
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("rate_limit", 20)
	v.SetDefault("rate_limit_window", time.Hour)
}

// LoadConfig creates a new Config from defaults, an optional config file,
// environment variables and, in production, Docker secrets.
func LoadConfig() (*Config, error) {
	return Load(viper.New())
}

// Load reads configuration through v. Callers may have bound command-line
// flags on v beforehand.
func Load(v *viper.Viper) (*Config, error) {
	env := GetEnvironment()

	SetDefaults(v)
	v.SetEnvPrefix("RECIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, name := range bareEnv {
		if err := v.BindEnv(key, "RECIPE_"+strings.ToUpper(key), name); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", name, err)
		}
	}

	if file := os.Getenv("RECIPE_CONFIG"); file != "" {
		v.SetConfigFile(file)
	} else if v.ConfigFileUsed() == "" {
		v.SetConfigName("recipewizard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/recipewizard")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env == Production {
		for _, key := range secretKeys {
			if os.Getenv(bareEnv[key]) != "" || os.Getenv("RECIPE_"+strings.ToUpper(key)) != "" {
				continue
			}
			if secret := readSecret(key); secret != "" {
				v.Set(key, secret)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.Environment = env

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
