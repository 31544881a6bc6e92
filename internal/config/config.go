// Package config loads application settings from a JSON file and lets
// environment variables override any key.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks the environment variables that override the config file.
// Nested keys are separated by a double underscore, e.g. DEVCONNECTOR_SERVER__PORT.
const EnvPrefix = "DEVCONNECTOR_"

var ErrMissingKey = errors.New("config: required key is missing")

type App struct {
	Env      string `koanf:"env"`
	LogLevel string `koanf:"log_level"`
	Key      string `koanf:"key"`
}

type Server struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes"`
	AllowedOrigins  []string      `koanf:"allowed_origins"`
}

type DB struct {
	Driver          string        `koanf:"driver"`
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	SSLMode         string        `koanf:"sslmode"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	PingTimeout     time.Duration `koanf:"ping_timeout"`
}

// JWT configures credential issuance. Header is the request header that
// carries the credential on protected routes.
type JWT struct {
	TTL    time.Duration `koanf:"ttl"`
	Header string        `koanf:"header"`
}

type Argon2 struct {
	Memory     uint32 `koanf:"memory"`
	Iterations uint32 `koanf:"iterations"`
	Threads    uint8  `koanf:"threads"`
	SaltLength uint32 `koanf:"salt_length"`
	KeyLength  uint32 `koanf:"key_length"`
}

type Config struct {
	App    *App    `koanf:"app"`
	Server *Server `koanf:"server"`
	DB     *DB     `koanf:"db"`
	JWT    *JWT    `koanf:"jwt"`
	Argon2 *Argon2 `koanf:"argon2"`
}

// LogValue keeps secrets out of the logs.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("env", c.App.Env),
		slog.String("log_level", c.App.LogLevel),
		slog.Any("server", c.Server),
		slog.Group("db",
			slog.String("host", c.DB.Host),
			slog.Int("port", c.DB.Port),
			slog.String("name", c.DB.Name),
			slog.String("sslmode", c.DB.SSLMode),
		),
		slog.Any("jwt", c.JWT),
		slog.Any("argon2", c.Argon2),
	)
}

func defaults() *Config {
	return &Config{
		App: &App{
			Env:      "development",
			LogLevel: "info",
		},
		Server: &Server{
			Port:            5000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     time.Minute,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
			AllowedOrigins:  []string{"http://localhost:5173", "http://localhost:3000"},
		},
		DB: &DB{
			Driver:          "pgx",
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxIdleTime: 5 * time.Minute,
			ConnMaxLifetime: time.Hour,
			PingTimeout:     5 * time.Second,
		},
		JWT: &JWT{
			TTL:    5 * 24 * time.Hour,
			Header: "x-auth-token",
		},
		Argon2: &Argon2{
			Memory:     64 * 1024,
			Iterations: 3,
			Threads:    2,
			SaltLength: 16,
			KeyLength:  32,
		},
	}
}

// Load reads cfgFile on top of the compiled defaults and then applies
// DEVCONNECTOR_* environment overrides.
func Load(cfgFile string) (*Config, error) {
	slog.Info("Loading config...", "config_file", cfgFile)

	k := koanf.New(".")

	if err := k.Load(file.Provider(cfgFile), json.Parser()); err != nil {
		return nil, fmt.Errorf("load config file %s: %w", cfgFile, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Info("Config loaded.", slog.Any("config", cfg))
	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func (c *Config) validate() error {
	if c.App.Key == "" {
		return fmt.Errorf("%w: app.key", ErrMissingKey)
	}

	if c.JWT.Header == "" {
		return fmt.Errorf("%w: jwt.header", ErrMissingKey)
	}

	if c.JWT.TTL <= 0 {
		return fmt.Errorf("config: jwt.ttl must be positive, got %s", c.JWT.TTL)
	}

	return nil
}
