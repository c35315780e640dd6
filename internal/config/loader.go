package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration in this order:
//  1. default values
//  2. the YAML file at path (optional)
//  3. BOT_* environment variables
//
// The result is normalized and validated before it is returned. Keys are
// nested with "::" so that model names such as "gpt-4.1" stay whole map keys.
func LoadConfig(path string) (*Config, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: failed to read %s: %w", ErrConfiguration, path, err)
		}
		slog.Warn("Configuration file not found, using defaults and environment", "path", path)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %w", ErrConfiguration, err)
	}

	normalize(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return cfg, nil
}

const keyDelimiter = "::"

// key joins config path segments with keyDelimiter.
func key(parts ...string) string {
	return strings.Join(parts, keyDelimiter)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(key("logger", "level"), DefaultLogLevel)
	v.SetDefault(key("logger", "json"), DefaultLogJSON)

	v.SetDefault(key("telegram", "token"), "")
	v.SetDefault(key("owner", "id"), "")
	v.SetDefault(key("owner", "name"), "")
	v.SetDefault(key("owner", "username"), "")

	v.SetDefault(key("models", "default"), "")

	v.SetDefault(key("ai", "timeout"), DefaultAITimeout)
	v.SetDefault(key("ai", "max_body_bytes"), DefaultAIMaxBodyBytes)
	v.SetDefault(key("ai", "gemini_api_key"), "")

	v.SetDefault(key("database", "path"), DefaultDBPath)
	v.SetDefault(key("usage", "retention"), DefaultUsageRetention)

	v.SetDefault(key("scheduler", "tasks"), map[string]any{
		TaskUsageRetention: map[string]any{"enabled": true, "schedule": DefaultUsageRetentionSchedule},
		TaskSQLMaintenance: map[string]any{"enabled": true, "schedule": DefaultSQLMaintenanceSchedule},
	})

	m := DefaultMessages
	v.SetDefault(key("messages", "welcome"), m.Welcome)
	v.SetDefault(key("messages", "not_authorized"), m.NotAuthorized)
	v.SetDefault(key("messages", "prompt_control"), m.PromptControl)
	v.SetDefault(key("messages", "working"), m.Working)
	v.SetDefault(key("messages", "ai_failure"), m.AIFailure)
	v.SetDefault(key("messages", "model_switched"), m.ModelSwitched)
	v.SetDefault(key("messages", "owner_info"), m.OwnerInfo)
	v.SetDefault(key("messages", "ping_start"), m.PingStart)
	v.SetDefault(key("messages", "pong"), m.Pong)
	v.SetDefault(key("messages", "profile"), m.Profile)
	v.SetDefault(key("messages", "member_joined"), m.MemberJoined)
	v.SetDefault(key("messages", "member_left"), m.MemberLeft)
	v.SetDefault(key("messages", "stats_header"), m.StatsHeader)
	v.SetDefault(key("messages", "stats_empty"), m.StatsEmpty)
	v.SetDefault(key("messages", "stats_disabled"), m.StatsDisabled)
}

// normalize lower-cases model names and fills endpoint defaults.
func normalize(cfg *Config) {
	cfg.Owner.ID = strings.TrimSpace(cfg.Owner.ID)
	cfg.Models.Default = strings.ToLower(strings.TrimSpace(cfg.Models.Default))

	endpoints := make(map[string]EndpointConfig, len(cfg.Models.Endpoints))
	for name, ep := range cfg.Models.Endpoints {
		name = strings.ToLower(strings.TrimSpace(name))
		ep.Provider = strings.ToLower(strings.TrimSpace(ep.Provider))
		if ep.Provider == "" {
			ep.Provider = ProviderHTTP
		}
		if ep.Label == "" {
			ep.Label = name
		}
		endpoints[name] = ep
	}
	cfg.Models.Endpoints = endpoints
}

// Validate checks struct tags and the cross-field rules tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	if _, ok := cfg.Models.Endpoints[cfg.Models.Default]; !ok {
		return fmt.Errorf("default model %q is not a configured endpoint", cfg.Models.Default)
	}

	for name, ep := range cfg.Models.Endpoints {
		if len(name) > MaxModelNameBytes {
			return fmt.Errorf("endpoint name %q is longer than %d bytes", name, MaxModelNameBytes)
		}
		if ep.Provider == ProviderGemini && cfg.AI.GeminiAPIKey == "" {
			return fmt.Errorf("endpoint %q uses the gemini provider but ai.gemini_api_key is empty", name)
		}
	}
	return nil
}
