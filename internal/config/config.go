package config

import "strings"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Task     TaskConfig     `mapstructure:"task" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost" validate:"omitempty,gte=4,lte=31"`
}

// LLMConfig contains settings for the remote text generation backend.
// All fields are optional; without a usable API key the application falls
// back to local heuristic generation.
type LLMConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url" validate:"omitempty,url"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"omitempty,gt=0"`
	Temperature float32 `mapstructure:"temperature" validate:"omitempty,gte=0,lte=2"`
}

// placeholderKeys are values commonly left in sample env files. They are
// treated the same as an unset key.
var placeholderKeys = map[string]struct{}{
	"your-api-key":      {},
	"your-api-key-here": {},
	"changeme":          {},
}

// Configured reports whether a remote LLM backend is usable, i.e. an API key
// is present and is not a sample placeholder.
func (c LLMConfig) Configured() bool {
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		return false
	}
	_, placeholder := placeholderKeys[strings.ToLower(key)]
	return !placeholder
}

// TaskConfig contains settings for the background task runner.
type TaskConfig struct {
	WorkerCount               int `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize                 int `mapstructure:"queue_size" validate:"required,gt=0"`
	StuckTaskAgeMinutes       int `mapstructure:"stuck_task_age_minutes" validate:"required,gt=0"`
	StuckCheckIntervalMinutes int `mapstructure:"stuck_check_interval_minutes" validate:"required,gt=0"`
}
