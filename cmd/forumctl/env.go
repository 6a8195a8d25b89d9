package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/forum-backend/internal/adapter/postgres"
	"github.com/heartmarshall/forum-backend/internal/app"
	"github.com/heartmarshall/forum-backend/internal/config"
)

// env is what every subcommand needs: config, a logger on stderr and a pool.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg.Log, os.Stderr)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &env{cfg: cfg, logger: logger, pool: pool}, nil
}

func (e *env) Close() {
	e.pool.Close()
}
