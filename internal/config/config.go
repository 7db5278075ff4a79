// Package config provides configuration loading and validation for the CLI and API server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/cvgen/internal/storage"
)

// EnvPrefix prefixes every environment override, e.g. CVGEN_LOG_LEVEL
const EnvPrefix = "CVGEN"

// Config is the merged configuration from defaults, an optional cvgen.yaml
// or cvgen.json file, and the environment.
type Config struct {
	// Workspace
	Root     string `mapstructure:"root"`
	Template string `mapstructure:"template"`
	Sector   string `mapstructure:"sector" validate:"omitempty,oneof=federal state private academic modern minimal basic"`

	// Rendering
	Engine     string `mapstructure:"engine" validate:"omitempty,oneof=auto chrome basic"`
	Paper      string `mapstructure:"paper" validate:"omitempty,oneof=Letter A4 Legal"`
	FontFamily string `mapstructure:"font_family"`

	// Candidate info used by ai-generate when no input is given
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email" validate:"omitempty,email"`
	Phone string `mapstructure:"phone"`

	// AI provider
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`

	Verbose bool `mapstructure:"verbose"`

	Fetch   FetchConfig    `mapstructure:"fetch"`
	Server  ServerConfig   `mapstructure:"server"`
	Log     LogConfig      `mapstructure:"log"`
	Storage storage.Config `mapstructure:"storage" validate:"-"`
}

// FetchConfig tunes job posting retrieval
type FetchConfig struct {
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0"`
	UserAgent   string        `mapstructure:"user_agent"`
	UseBrowser  bool          `mapstructure:"use_browser"`
	RatePerHost float64       `mapstructure:"rate_per_host" validate:"gte=0"`
	Concurrency int           `mapstructure:"concurrency" validate:"gte=0,lte=64"`
}

// ServerConfig tunes the HTTP API
type ServerConfig struct {
	Port            int      `mapstructure:"port" validate:"gte=1,lte=65535"`
	RateLimit       float64  `mapstructure:"rate_limit" validate:"gte=0"`
	Burst           int      `mapstructure:"burst" validate:"gte=0"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	RateLimitExempt []string `mapstructure:"rate_limit_exempt"`
	// JWTSecret turns on bearer token auth for everything but /health
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours" validate:"gte=0"`
}

// LogConfig selects the logger level and encoding
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=console json"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Root:       ".",
		Template:   "",
		Sector:     "",
		Engine:     "auto",
		Paper:      "Letter",
		FontFamily: "Arial, sans-serif",
		Model:      "gemini-1.5-flash",
		Fetch: FetchConfig{
			Timeout:     10 * time.Second,
			UserAgent:   "Mozilla/5.0 (compatible; cvgen/1.0)",
			RatePerHost: 1,
			Concurrency: 4,
		},
		Server: ServerConfig{
			Port:               8080,
			RateLimit:          5,
			Burst:              10,
			AllowedOrigins:     []string{"*"},
			JWTExpirationHours: DefaultJWTExpirationHours,
		},
		Log: LogConfig{Level: "info", Format: "console"},
		Storage: storage.Config{
			Backend: storage.BackendFS,
			Dir:     "data/store",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("root", d.Root)
	v.SetDefault("template", d.Template)
	v.SetDefault("sector", d.Sector)
	v.SetDefault("engine", d.Engine)
	v.SetDefault("paper", d.Paper)
	v.SetDefault("font_family", d.FontFamily)
	v.SetDefault("name", "")
	v.SetDefault("email", "")
	v.SetDefault("phone", "")
	v.SetDefault("api_key", "")
	v.SetDefault("model", d.Model)
	v.SetDefault("verbose", false)

	v.SetDefault("fetch.timeout", d.Fetch.Timeout)
	v.SetDefault("fetch.user_agent", d.Fetch.UserAgent)
	v.SetDefault("fetch.use_browser", false)
	v.SetDefault("fetch.rate_per_host", d.Fetch.RatePerHost)
	v.SetDefault("fetch.concurrency", d.Fetch.Concurrency)

	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.rate_limit", d.Server.RateLimit)
	v.SetDefault("server.burst", d.Server.Burst)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("server.rate_limit_exempt", []string{})
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.jwt_expiration_hours", DefaultJWTExpirationHours)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("storage.database_url", "")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.prefix", "")
	v.SetDefault("storage.s3.region", "")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key", "")
	v.SetDefault("storage.s3.secret_key", "")
	v.SetDefault("storage.s3.path_style", false)
	v.SetDefault("storage.redis.addr", "")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "")
	v.SetDefault("storage.redis.ttl", time.Duration(0))
}

// Load reads configuration. With an empty path it looks for cvgen.yaml,
// cvgen.yml or cvgen.json in . and ./configs and carries on without one.
// An explicit path must exist. Environment variables override the file:
// CVGEN_<KEY> with dots as underscores, plus GEMINI_API_KEY, DATABASE_URL,
// REDIS_ADDR and JWT_SECRET fallbacks.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cvgen")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("api_key", EnvPrefix+"_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("storage.database_url", EnvPrefix+"_STORAGE_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("storage.redis.addr", EnvPrefix+"_STORAGE_REDIS_ADDR", "REDIS_ADDR")
	_ = v.BindEnv("server.jwt_secret", EnvPrefix+"_SERVER_JWT_SECRET", "JWT_SECRET")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are left to the commands that need them.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Storage.Backend != "" {
		if err := c.Storage.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// CLI flags are merged this way so explicit flags win over the config file.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&result.Root, defaults.Root)
	fill(&result.Template, defaults.Template)
	fill(&result.Sector, defaults.Sector)
	fill(&result.Engine, defaults.Engine)
	fill(&result.Paper, defaults.Paper)
	fill(&result.FontFamily, defaults.FontFamily)
	fill(&result.Name, defaults.Name)
	fill(&result.Email, defaults.Email)
	fill(&result.Phone, defaults.Phone)
	fill(&result.APIKey, defaults.APIKey)
	fill(&result.Model, defaults.Model)
	fill(&result.Fetch.UserAgent, defaults.Fetch.UserAgent)
	fill(&result.Log.Level, defaults.Log.Level)
	fill(&result.Log.Format, defaults.Log.Format)

	if result.Fetch.Timeout == 0 {
		result.Fetch.Timeout = defaults.Fetch.Timeout
	}
	if result.Fetch.RatePerHost == 0 {
		result.Fetch.RatePerHost = defaults.Fetch.RatePerHost
	}
	if result.Fetch.Concurrency == 0 {
		result.Fetch.Concurrency = defaults.Fetch.Concurrency
	}
	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Storage.Backend == "" {
		result.Storage = defaults.Storage
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	return result
}
