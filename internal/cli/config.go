package cli

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ferdiebergado/devconnector/internal/client"
)

// Config is read from DEVCONNECTOR_* environment variables.
type Config struct {
	APIURL        string        `env:"DEVCONNECTOR_API_URL"        envDefault:"http://localhost:5000"`
	Header        string        `env:"DEVCONNECTOR_AUTH_HEADER"    envDefault:"x-auth-token"`
	TokenFile     string        `env:"DEVCONNECTOR_TOKEN_FILE"`
	ReloadTimeout time.Duration `env:"DEVCONNECTOR_RELOAD_TIMEOUT" envDefault:"10s"`
	HTTPTimeout   time.Duration `env:"DEVCONNECTOR_HTTP_TIMEOUT"   envDefault:"30s"`
	LogLevel      string        `env:"DEVCONNECTOR_LOG_LEVEL"      envDefault:"warn"`
}

// LoadConfig parses environ, a KEY=value map such as env.ToMap(os.Environ()).
func LoadConfig(environ map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.TokenFile == "" {
		path, err := client.DefaultTokenPath()
		if err != nil {
			return nil, fmt.Errorf("resolve token file: %w", err)
		}
		cfg.TokenFile = path
	}

	return &cfg, nil
}
