package storage

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Backend names accepted by Open
const (
	BackendMemory   = "memory"
	BackendFS       = "fs"
	BackendS3       = "s3"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config selects and configures a backend
type Config struct {
	Backend     string      `mapstructure:"backend" validate:"omitempty,oneof=memory fs s3 postgres redis"`
	Dir         string      `mapstructure:"dir"`
	DatabaseURL string      `mapstructure:"database_url"`
	S3          S3Config    `mapstructure:"s3"`
	Redis       RedisConfig `mapstructure:"redis"`
}

// Validate checks the fields the selected backend needs
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Var(c.Backend, "omitempty,oneof=memory fs s3 postgres redis"); err != nil {
		return fmt.Errorf("unknown storage backend %q", c.Backend)
	}
	switch c.Backend {
	case "", BackendFS:
		if c.Dir == "" {
			return fmt.Errorf("storage backend fs requires a directory")
		}
	case BackendS3:
		if err := validate.Struct(c.S3); err != nil {
			return fmt.Errorf("invalid s3 storage config: %w", err)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("storage backend postgres requires database_url")
		}
	case BackendRedis:
		if err := validate.Struct(c.Redis); err != nil {
			return fmt.Errorf("invalid redis storage config: %w", err)
		}
	}
	return nil
}

// Open returns the backend named by cfg.Backend. An empty backend means fs.
func Open(ctx context.Context, cfg Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendS3:
		return NewS3(ctx, cfg.S3)
	case BackendPostgres:
		return NewPostgres(ctx, cfg.DatabaseURL)
	case BackendRedis:
		return NewRedis(ctx, cfg.Redis)
	default:
		return NewFS(cfg.Dir)
	}
}
