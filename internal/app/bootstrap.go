package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ferdiebergado/gopherkit/env"

	"github.com/ferdiebergado/devconnector/internal/config"
	"github.com/ferdiebergado/devconnector/internal/pkg/logging"
	"github.com/ferdiebergado/devconnector/internal/platform/db"
	"github.com/ferdiebergado/devconnector/internal/provider"
)

// Run loads configuration, connects to the database and serves the API
// until ctx is canceled.
func Run(ctx context.Context, cfgFile string) error {
	slog.Info("Initializing...")

	if os.Getenv(config.EnvPrefix+"APP__ENV") != "production" {
		if err := env.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env: %w", err)
		}
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.SetupLogger(cfg.App.Env, cfg.App.LogLevel, os.Stdout)
	slog.Debug("Configuration loaded.", "config", cfg)

	dbConn, err := db.NewPostgresDB(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer dbConn.Close()

	p, err := provider.New(cfg, dbConn)
	if err != nil {
		return fmt.Errorf("build providers: %w", err)
	}

	return New(p).Run(ctx)
}
