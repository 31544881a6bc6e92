package provider

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/devconnector/internal/config"
	"github.com/ferdiebergado/devconnector/internal/pkg/clock"
	"github.com/ferdiebergado/devconnector/internal/platform/db"
	"github.com/ferdiebergado/devconnector/internal/platform/hash"
	"github.com/ferdiebergado/devconnector/internal/platform/jwt"
	"github.com/ferdiebergado/devconnector/internal/platform/router"
	"github.com/ferdiebergado/devconnector/internal/platform/validation"
)

// Provider holds the shared dependencies handed to every module.
type Provider struct {
	Cfg       *config.Config
	DB        *sql.DB
	Clock     clock.Clock
	Signer    jwt.Signer
	Hasher    hash.Hasher
	Validator validation.Validator
	Router    router.Router
	TxMgr     db.TxManager
}

func New(cfg *config.Config, dbConn *sql.DB) (*Provider, error) {
	if cfg == nil || dbConn == nil {
		return nil, errors.New("config and dbconn should not be nil")
	}

	clk := clock.Real{}
	securityKey := cfg.App.Key
	signer, err := jwt.NewGolangJWTSigner(securityKey, clk)
	if err != nil {
		return nil, fmt.Errorf("new jwt signer: %w", err)
	}

	hasher, err := hash.NewArgon2Hasher(cfg.Argon2, securityKey)
	if err != nil {
		return nil, fmt.Errorf("new hasher: %w", err)
	}

	provider := &Provider{
		Cfg:       cfg,
		DB:        dbConn,
		Clock:     clk,
		Signer:    signer,
		Hasher:    hasher,
		Validator: validation.NewGoPlaygroundValidator(),
		Router:    router.NewGoexpressRouter(),
		TxMgr:     db.NewSQLTxManager(dbConn),
	}

	return provider, nil
}
