package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses YAML duration strings like "10m" or "1h"
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all application configuration
type Config struct {
	App struct {
		Env  string `yaml:"env"`
		Port int    `yaml:"port"`
	} `yaml:"app"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		Params   string `yaml:"params"`
	} `yaml:"database"`

	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`

	JWT struct {
		Secret    string   `yaml:"secret"`
		ExpiresIn Duration `yaml:"expires_in"`
		RefreshIn Duration `yaml:"refresh_in"`
	} `yaml:"jwt"`

	CORS struct {
		AllowOrigins string `yaml:"allow_origins"`
	} `yaml:"cors"`

	Trending struct {
		HalfLifeHours   float64  `yaml:"half_life_hours"`
		WindowDays      int      `yaml:"window_days"`
		RefreshInterval Duration `yaml:"refresh_interval"`
	} `yaml:"trending"`

	RateLimit struct {
		SubmissionsPerMinute int `yaml:"submissions_per_minute"`
	} `yaml:"rate_limit"`
}

// Load reads a YAML config file and applies environment overrides.
// Secrets (DB password, JWT secret, Redis password) always come from the
// environment when set, so config files can be committed without them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.App.Env = "local"
	cfg.App.Port = 8080
	cfg.Database.Port = 3306
	cfg.Database.Params = "charset=utf8mb4&parseTime=True&loc=Local"
	cfg.Redis.Port = 6379
	cfg.Redis.PoolSize = 10
	cfg.JWT.ExpiresIn = Duration(time.Hour)
	cfg.JWT.RefreshIn = Duration(7 * 24 * time.Hour)
	cfg.Trending.HalfLifeHours = 24
	cfg.Trending.WindowDays = 7
	cfg.Trending.RefreshInterval = Duration(10 * time.Minute)
	cfg.RateLimit.SubmissionsPerMinute = 20
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
}

// DSN builds the MySQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.Params,
	)
}
