package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RequestIPHeader string  `yaml:"request_ip_header"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "sqlite" (default) or "postgres"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// AuthConfig holds the account-security knobs.
type AuthConfig struct {
	MaxFailedAttempts int           `yaml:"max_failed_attempts"`
	InactivityDays    int           `yaml:"inactivity_lockout_days"`
	InactivityLockout time.Duration `yaml:"-"` // Ignored by YAML parser
	MinPasswordLength int           `yaml:"min_password_length"`
	BcryptCost        int           `yaml:"bcrypt_cost"`
	TokenSecret       string        `yaml:"token_secret"`
	TokenTTLMinutes   int           `yaml:"token_ttl_minutes"`
	TokenTTL          time.Duration `yaml:"-"` // Ignored by YAML parser
	BootstrapLogin    string        `yaml:"bootstrap_login"`
	BootstrapPassword string        `yaml:"bootstrap_password"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "hotel.db"
	}

	if cfg.Auth.MaxFailedAttempts <= 0 {
		cfg.Auth.MaxFailedAttempts = 3
	}
	if cfg.Auth.InactivityDays <= 0 {
		cfg.Auth.InactivityDays = 30
	}
	cfg.Auth.InactivityLockout = time.Duration(cfg.Auth.InactivityDays) * 24 * time.Hour

	if cfg.Auth.MinPasswordLength <= 0 {
		cfg.Auth.MinPasswordLength = 4
	}
	if cfg.Auth.TokenTTLMinutes <= 0 {
		cfg.Auth.TokenTTLMinutes = 60
	}
	cfg.Auth.TokenTTL = time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute

	if cfg.Auth.BootstrapLogin == "" {
		cfg.Auth.BootstrapLogin = "admin"
	}
	if cfg.Auth.BootstrapPassword == "" {
		cfg.Auth.BootstrapPassword = "admin"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
