// Package config loads application configuration from defaults, an
// optional config file, and CRM_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	HTTP     HTTPConfig
	JWT      JWTConfig
	Store    StoreConfig
	Notify   NotifyConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Tenants  []TenantEntry
}

// TenantEntry is one row of the externally maintained tenant registry
type TenantEntry struct {
	ID     string `mapstructure:"id"`
	Name   string `mapstructure:"name"`
	Kind   string `mapstructure:"kind"` // head or franchise
	Active bool   `mapstructure:"active"`
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server settings
type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// JWTConfig holds token validation settings for the identity context
type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

// StoreConfig selects the partition persistence backend
type StoreConfig struct {
	// Backend is one of "memory", "redis", "database"
	Backend string
}

// NotifyConfig selects the cross-view change notifier
type NotifyConfig struct {
	// Backend is one of "inproc", "redis"
	Backend string
}

// DatabaseConfig holds relational database settings. Driver "sqlite" uses
// DSN as a file path; "postgres" builds a DSN from the remaining fields.
type DatabaseConfig struct {
	Driver   string
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// PostgresDSN builds the connection string for the postgres driver
func (c DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Addr returns the host:port address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration with the following priority (highest first):
// CRM_-prefixed environment variables, config.toml, built-in defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine; defaults and env vars apply
	}

	v.SetEnvPrefix("CRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			Issuer:     v.GetString("jwt.issuer"),
			Expiration: v.GetDuration("jwt.expiration"),
		},
		Store: StoreConfig{
			Backend: v.GetString("store.backend"),
		},
		Notify: NotifyConfig{
			Backend: v.GetString("notify.backend"),
		},
		Database: DatabaseConfig{
			Driver:   v.GetString("database.driver"),
			DSN:      v.GetString("database.dsn"),
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.dbname"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
	}

	if err := v.UnmarshalKey("tenants", &cfg.Tenants); err != nil {
		return nil, fmt.Errorf("error reading tenant registry: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "crm")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)

	v.SetDefault("jwt.issuer", "crm")
	v.SetDefault("jwt.expiration", 12*time.Hour)

	v.SetDefault("store.backend", "memory")
	v.SetDefault("notify.backend", "inproc")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "crm.db")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case "memory", "redis", "database":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	switch c.Notify.Backend {
	case "inproc", "redis":
	default:
		return fmt.Errorf("unknown notify backend %q", c.Notify.Backend)
	}
	if c.App.Env == "production" && c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required in production")
	}
	return nil
}
