// Package app wires configuration, logging, storage, and services into a
// running process.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raulfrk/tappy/internal/adapter/postgres"
	grouprepo "github.com/raulfrk/tappy/internal/adapter/postgres/group"
	taprepo "github.com/raulfrk/tappy/internal/adapter/postgres/tap"
	userrepo "github.com/raulfrk/tappy/internal/adapter/postgres/user"
	"github.com/raulfrk/tappy/internal/config"
	"github.com/raulfrk/tappy/internal/service/directory"
	"github.com/raulfrk/tappy/internal/service/membership"
	tapservice "github.com/raulfrk/tappy/internal/service/tap"
)

// Services bundles the constructed service layer for a frontend (a chat
// transport, a CLI, tests) to drive.
type Services struct {
	Directory  *directory.Service
	Membership *membership.Service
	Tap        *tapservice.Service
}

// Build connects to the database and constructs the full service layer.
// The caller owns the returned cleanup and must invoke it on shutdown.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Services, func(), error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	txManager := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	groups := grouprepo.New(pool)
	taps := taprepo.New(pool)

	services := &Services{
		Directory:  directory.NewService(logger, users, txManager),
		Membership: membership.NewService(logger, users, groups, txManager),
		Tap:        tapservice.NewService(logger, taps, users, txManager),
	}

	return services, pool.Close, nil
}

// Run is the application entry point. It loads configuration, initializes
// the logger, builds the service layer, and blocks until the context is
// cancelled. The chat transport that would drive the services attaches
// here; for now the process only holds the pool open.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("app", cfg.App.Name),
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	_, cleanup, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("application ready")

	<-ctx.Done()

	logger.Info("shutting down")

	return nil
}
