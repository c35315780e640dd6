// Package config loads, defaults and validates the A1 Zero configuration.
// Values come from a YAML file overlaid by BOT_* environment variables.
package config

import (
	"errors"
	"time"
)

// ErrConfiguration wraps every failure to load or validate the configuration.
var ErrConfiguration = errors.New("configuration error")

// Config is the root configuration for the bot.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Owner     OwnerConfig     `mapstructure:"owner"`
	Models    ModelsConfig    `mapstructure:"models"`
	AI        AIConfig        `mapstructure:"ai"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Usage     UsageConfig     `mapstructure:"usage"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig selects the slog level and handler.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token and, at runtime, the bot identity.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`

	// BotInfo is filled from getMe after startup, never from the file.
	BotInfo BotInfo `mapstructure:"-"`
}

// BotInfo is the identity Telegram reports for the bot account.
type BotInfo struct {
	ID        int64
	Username  string
	FirstName string
}

// OwnerConfig identifies the bot owner. ID is kept as a string so numeric
// and quoted values in the file compare the same way.
type OwnerConfig struct {
	ID       string `mapstructure:"id"       validate:"required"`
	Name     string `mapstructure:"name"`
	Username string `mapstructure:"username"`
}

// Provider names accepted in an endpoint definition.
const (
	ProviderHTTP   = "http"
	ProviderGemini = "gemini"
)

// MaxModelNameBytes caps endpoint names so a "MODEL_<name>" button payload
// fits the 64 byte callback data Telegram accepts.
const MaxModelNameBytes = 64 - len("MODEL_")

// ModelsConfig is the model registry definition.
type ModelsConfig struct {
	Default   string                    `mapstructure:"default"   validate:"required"`
	Endpoints map[string]EndpointConfig `mapstructure:"endpoints" validate:"required,min=1,dive"`
}

// EndpointConfig describes one AI backend.
type EndpointConfig struct {
	Provider string `mapstructure:"provider" validate:"oneof=http gemini"`
	// URL is the template the percent-encoded message text is appended to.
	URL   string `mapstructure:"url"   validate:"required_if=Provider http,omitempty,url"`
	Model string `mapstructure:"model" validate:"required_if=Provider gemini"`
	// Label is the inline button text; defaults to the endpoint name.
	Label string `mapstructure:"label"`
}

// AIConfig controls outbound calls to AI endpoints.
type AIConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"        validate:"min=1s,max=10m"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes" validate:"min=1024"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
}

// DatabaseConfig locates the usage database. An empty path disables it.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UsageConfig controls how long dispatch records are kept.
type UsageConfig struct {
	Retention time.Duration `mapstructure:"retention" validate:"min=1h"`
}

// SchedulerConfig lists scheduled tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a task and sets its cron schedule (seconds field allowed).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// MessagesConfig holds every user-facing text. Placeholders use fmt verbs
// in the order documented on each default.
type MessagesConfig struct {
	Welcome       string `mapstructure:"welcome"        validate:"required"`
	NotAuthorized string `mapstructure:"not_authorized" validate:"required"`
	PromptControl string `mapstructure:"prompt_control" validate:"required"`
	Working       string `mapstructure:"working"        validate:"required"`
	AIFailure     string `mapstructure:"ai_failure"     validate:"required"`
	ModelSwitched string `mapstructure:"model_switched" validate:"required"`
	OwnerInfo     string `mapstructure:"owner_info"     validate:"required"`
	PingStart     string `mapstructure:"ping_start"     validate:"required"`
	Pong          string `mapstructure:"pong"           validate:"required"`
	Profile       string `mapstructure:"profile"        validate:"required"`
	MemberJoined  string `mapstructure:"member_joined"  validate:"required"`
	MemberLeft    string `mapstructure:"member_left"    validate:"required"`
	StatsHeader   string `mapstructure:"stats_header"   validate:"required"`
	StatsEmpty    string `mapstructure:"stats_empty"    validate:"required"`
	StatsDisabled string `mapstructure:"stats_disabled" validate:"required"`
}
