package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vigorhq/vigor-backend/internal/platform/envutil"
)

// Config is assembled once in main and passed by reference. There is no
// package-level mutable configuration state anywhere in the service.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Generator GeneratorConfig `yaml:"generator"`
	Auth      AuthConfig      `yaml:"auth"`
}

type ServerConfig struct {
	Port    string `yaml:"port"`
	LogMode string `yaml:"log_mode"`
}

type PostgresConfig struct {
	Driver   string `yaml:"driver"` // "postgres" or "sqlite"
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"-"`
	Name     string `yaml:"name"`
	// SQLitePath is only consulted when Driver is "sqlite".
	SQLitePath string `yaml:"sqlite_path"`
}

type RedisConfig struct {
	Addr    string `yaml:"addr"`
	Channel string `yaml:"channel"`
}

// GeneratorConfig bounds every call to the generative text service. The
// explanation path must never block a score write, so both the per-call
// timeout and the retry budget are mandatory.
type GeneratorConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"-"`
	Model      string        `yaml:"model"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"-"`
}

// Load reads environment variables and, when CONFIG_FILE points at a yaml
// file, overlays the non-secret settings from it. Secrets only come from env.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    envutil.String("PORT", "8080"),
			LogMode: envutil.String("LOG_MODE", "development"),
		},
		Postgres: PostgresConfig{
			Driver:     envutil.String("DB_DRIVER", "postgres"),
			Host:       envutil.String("POSTGRES_HOST", "localhost"),
			Port:       envutil.String("POSTGRES_PORT", "5432"),
			User:       envutil.String("POSTGRES_USER", "postgres"),
			Password:   envutil.String("POSTGRES_PASSWORD", ""),
			Name:       envutil.String("POSTGRES_NAME", "vigor"),
			SQLitePath: envutil.String("SQLITE_PATH", "vigor.db"),
		},
		Redis: RedisConfig{
			Addr:    envutil.String("REDIS_ADDR", ""),
			Channel: envutil.String("REDIS_CHANNEL", "score_events"),
		},
		Generator: GeneratorConfig{
			BaseURL:    envutil.String("OPENAI_BASE_URL", "https://api.openai.com"),
			APIKey:     envutil.String("OPENAI_API_KEY", ""),
			Model:      envutil.String("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout:    envutil.Duration("GENERATOR_TIMEOUT", 20*time.Second),
			MaxRetries: envutil.Int("GENERATOR_MAX_RETRIES", 2),
		},
		Auth: AuthConfig{
			JWTSecret: envutil.String("JWT_SECRET_KEY", ""),
		},
	}

	if path := envutil.String("CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if cfg.Generator.MaxRetries < 0 {
		cfg.Generator.MaxRetries = 0
	}
	if cfg.Generator.Timeout <= 0 {
		cfg.Generator.Timeout = 20 * time.Second
	}
	return cfg, nil
}
