package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/csvmigrate/internal/config"
	"github.com/Rana718/csvmigrate/internal/database"
)

// connect opens and pings the adapter for the configured provider. The
// caller closes it.
func connect(ctx context.Context, cfg *config.Config) (database.DatabaseAdapter, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	adapter, err := database.NewAdapter(cfg.Database.Provider, cfg.CSV.BatchSize)
	if err != nil {
		return nil, err
	}

	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return adapter, nil
}
