package cli

import (
	"context"
	"fmt"

	"catalogadmin/internal/config"
	"catalogadmin/pkg/database"
	"catalogadmin/pkg/log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// bootstrap loads configuration and opens the logger and database pool
// every command needs.
func bootstrap(ctx context.Context, name string) (*config.Config, log.LoggerService, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := log.NewLoggerService(name, cfg.Log)

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, logger, pool, nil
}
