// Package config wraps viper with the StampCatalog defaults and a typed,
// validated view of the settings.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// STAMPCAT_CATALOG_PATH.
const EnvPrefix = "STAMPCAT"

// Config is a read-only view over a viper instance. The zero value and a
// Config built from a nil viper return zero values for every key.
type Config struct {
	v *viper.Viper
}

// New wraps v. A nil v is replaced with an empty instance.
func New(v *viper.Viper) *Config {
	if v == nil {
		v = viper.New()
	}
	return &Config{v: v}
}

// Load builds a Config from defaults, an optional YAML file at path and
// STAMPCAT_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}
	return New(v), nil
}

// SetDefaults installs the default value of every known key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.development", false)
	v.SetDefault("catalog.source", SourceCSV)
	v.SetDefault("catalog.path", "inventory.csv")
	v.SetDefault("catalog.table", "inventory")
	v.SetDefault("catalog.dsn", "")
	v.SetDefault("pagination.increment", 20)
	v.SetDefault("search.mode", "fuzzy")
	v.SetDefault("search.threshold", 0.7)
	v.SetDefault("images.base_origin", "")
	v.SetDefault("session.backend", SessionMemory)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.redis.addr", "localhost:6379")
	v.SetDefault("session.redis.password", "")
	v.SetDefault("session.redis.db", 0)
}

// GetString returns the value associated with the key as a string.
func (c *Config) GetString(key string) string { return c.v.GetString(key) }

// GetInt returns the value associated with the key as an int.
func (c *Config) GetInt(key string) int { return c.v.GetInt(key) }

// GetBool returns the value associated with the key as a bool.
func (c *Config) GetBool(key string) bool { return c.v.GetBool(key) }

// GetFloat64 returns the value associated with the key as a float64.
func (c *Config) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }

// GetDuration returns the value associated with the key as a time.Duration.
func (c *Config) GetDuration(key string) time.Duration { return c.v.GetDuration(key) }

// IsSet reports whether the key has a value from any source.
func (c *Config) IsSet(key string) bool { return c.v.IsSet(key) }

// Sub returns the subtree at key. A missing key yields an empty Config,
// never nil.
func (c *Config) Sub(key string) *Config {
	return New(c.v.Sub(key))
}

// Unmarshal decodes the whole configuration into target.
func (c *Config) Unmarshal(target any) error {
	return c.v.Unmarshal(target)
}

// Catalog source kinds.
const (
	SourceCSV      = "csv"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Session backends.
const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

// ErrInvalid is wrapped by every validation failure from Settings.
var ErrInvalid = errors.New("invalid configuration")

// Settings is the typed form of the configuration.
type Settings struct {
	Server struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Development bool `mapstructure:"development"`
	} `mapstructure:"log"`
	Catalog struct {
		Source string `mapstructure:"source"`
		Path   string `mapstructure:"path"`
		Table  string `mapstructure:"table"`
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"catalog"`
	Pagination struct {
		Increment int `mapstructure:"increment"`
	} `mapstructure:"pagination"`
	Search struct {
		Mode      string  `mapstructure:"mode"`
		Threshold float64 `mapstructure:"threshold"`
	} `mapstructure:"search"`
	Images struct {
		BaseOrigin string `mapstructure:"base_origin"`
	} `mapstructure:"images"`
	Session struct {
		Backend string        `mapstructure:"backend"`
		TTL     time.Duration `mapstructure:"ttl"`
		Redis   struct {
			Addr     string `mapstructure:"addr"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"session"`
}

// Addr returns host:port for the HTTP listener.
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Server.Host, s.Server.Port)
}

// Settings decodes and validates the configuration.
func (c *Config) Settings() (*Settings, error) {
	var s Settings
	if err := c.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate reports the first setting that cannot be used.
func (s *Settings) Validate() error {
	switch s.Catalog.Source {
	case SourceCSV, SourceSQLite:
		if s.Catalog.Path == "" {
			return fmt.Errorf("%w: catalog.path is required for source %q", ErrInvalid, s.Catalog.Source)
		}
	case SourcePostgres:
		if s.Catalog.DSN == "" {
			return fmt.Errorf("%w: catalog.dsn is required for source %q", ErrInvalid, s.Catalog.Source)
		}
	default:
		return fmt.Errorf("%w: unknown catalog.source %q", ErrInvalid, s.Catalog.Source)
	}
	if s.Catalog.Source != SourceCSV && s.Catalog.Table == "" {
		return fmt.Errorf("%w: catalog.table is required for source %q", ErrInvalid, s.Catalog.Source)
	}
	if s.Pagination.Increment <= 0 {
		return fmt.Errorf("%w: pagination.increment must be positive, got %d", ErrInvalid, s.Pagination.Increment)
	}
	switch s.Search.Mode {
	case "fuzzy", "exact":
	default:
		return fmt.Errorf("%w: unknown search.mode %q", ErrInvalid, s.Search.Mode)
	}
	if s.Search.Threshold <= 0 || s.Search.Threshold > 1 {
		return fmt.Errorf("%w: search.threshold must be in (0, 1], got %g", ErrInvalid, s.Search.Threshold)
	}
	switch s.Session.Backend {
	case SessionMemory, SessionRedis:
	default:
		return fmt.Errorf("%w: unknown session.backend %q", ErrInvalid, s.Session.Backend)
	}
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port out of range: %d", ErrInvalid, s.Server.Port)
	}
	return nil
}
