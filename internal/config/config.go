package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/timetable/internal/common"
	"github.com/Veraticus/timetable/internal/llm"
)

// Viper keys.
const (
	KeyDatabasePath   = "database.path"
	KeyUserHandle     = "user.handle"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyLLMProvider    = "llm.provider"
	KeyLLMAPIKey      = "llm.api_key"
	KeyLLMModel       = "llm.model"
	KeyLLMBaseURL     = "llm.base_url"
	KeyLLMMaxRetries  = "llm.max_retries"
	KeyLLMRetryDelay  = "llm.retry_delay"
	KeyLLMCacheTTL    = "llm.cache_ttl"
	KeyLLMRateLimit   = "llm.rate_limit"
	KeyLLMTemperature = "llm.temperature"
	KeyLLMMaxTokens   = "llm.max_tokens"
	KeyLLMTimeout     = "llm.timeout"
)

// DefaultDatabasePath is where the schedule database lives unless configured.
const DefaultDatabasePath = "~/.local/share/timetable/timetable.db"

// Config is the resolved application configuration.
type Config struct {
	DatabasePath string
	UserHandle   string
	LogLevel     string
	LogFormat    string
	LLM          llm.Config
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyUserHandle, "default")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLLMProvider, "gemini")
	v.SetDefault(KeyLLMMaxRetries, 3)
	v.SetDefault(KeyLLMRetryDelay, 2*time.Second)
	v.SetDefault(KeyLLMCacheTTL, time.Hour)
	v.SetDefault(KeyLLMRateLimit, 15)
	v.SetDefault(KeyLLMTemperature, 0.1)
	v.SetDefault(KeyLLMMaxTokens, 4096)
	v.SetDefault(KeyLLMTimeout, 60*time.Second)
}

// EnvPrefix prefixes environment overrides, e.g. TIMETABLE_LLM_PROVIDER.
const EnvPrefix = "TIMETABLE"

// BindEnv lets environment variables override any key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load resolves the configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabasePath: ExpandPath(v.GetString(KeyDatabasePath)),
		UserHandle:   strings.TrimSpace(v.GetString(KeyUserHandle)),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		LLM: llm.Config{
			Provider:    strings.ToLower(v.GetString(KeyLLMProvider)),
			APIKey:      v.GetString(KeyLLMAPIKey),
			Model:       v.GetString(KeyLLMModel),
			BaseURL:     v.GetString(KeyLLMBaseURL),
			MaxRetries:  v.GetInt(KeyLLMMaxRetries),
			RetryDelay:  v.GetDuration(KeyLLMRetryDelay),
			CacheTTL:    v.GetDuration(KeyLLMCacheTTL),
			Timeout:     v.GetDuration(KeyLLMTimeout),
			RateLimit:   v.GetInt(KeyLLMRateLimit),
			Temperature: v.GetFloat64(KeyLLMTemperature),
			MaxTokens:   v.GetInt(KeyLLMMaxTokens),
		},
	}

	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath)
	}
	if cfg.UserHandle == "" {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyUserHandle)
	}
	switch cfg.LLM.Provider {
	case "gemini", "openai", "anthropic":
	default:
		return nil, fmt.Errorf("%w: unknown %s %q", common.ErrInvalidConfig, KeyLLMProvider, cfg.LLM.Provider)
	}

	return cfg, nil
}

// APIKeyEnv names the conventional environment variable holding the key
// for provider, consulted when llm.api_key is unset.
func APIKeyEnv(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

// RequireAPIKey fills LLM.APIKey from the provider's conventional
// environment variable when needed, and fails when no key is available.
func (c *Config) RequireAPIKey(getenv func(string) string) error {
	if c.LLM.APIKey != "" {
		return nil
	}
	env := APIKeyEnv(c.LLM.Provider)
	c.LLM.APIKey = getenv(env)
	if c.LLM.APIKey == "" {
		return common.NewUserError(
			fmt.Sprintf("No API key for %s: set %s or %s", c.LLM.Provider, KeyLLMAPIKey, env),
			common.ErrMissingConfig)
	}
	return nil
}
