// Package bootstrap assembles the database, keyring and services shared by
// the desktop shell and the headless CLI.
package bootstrap

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bhindi/internal/config"
	"bhindi/internal/database"
	"bhindi/internal/dispatch"
	"bhindi/internal/services"
)

type Runtime struct {
	Config   config.Config
	Logger   *slog.Logger
	DB       *gorm.DB
	Services *services.Services
}

// Open initialises storage and builds the service container. An unavailable
// keyring is logged and tolerated; API keys then live in memory only.
func Open(cfg config.Config, log *slog.Logger) (*Runtime, error) {
	if log == nil {
		log = cfg.NewLogger()
	}

	dbLevel := logger.Warn
	if cfg.SlogLevel() <= slog.LevelDebug {
		dbLevel = logger.Info
	}
	db, err := database.Init(database.Config{Path: cfg.DBPath, LogLevel: dbLevel})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	opts := services.Options{
		Dispatch: dispatch.Config{
			Provider: cfg.AIProvider,
			Model:    cfg.AIModel,
			APIKey:   cfg.APIKey,
		},
		Endpoints: cfg.Endpoints(),
		Logger:    log,
	}
	ring, err := services.OpenKeyring(services.KeyringConfig{
		Backend:  cfg.KeyringBackend,
		Dir:      cfg.KeyringDir,
		Password: cfg.KeyringPassword,
	})
	if err != nil {
		log.Warn("keyring unavailable, API keys will not persist", "err", err)
	} else {
		opts.Keyring = ring
	}

	return &Runtime{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Services: services.NewServices(db, opts),
	}, nil
}

func (r *Runtime) Close() error {
	return database.Close(r.DB)
}
