// Command migrate applies the product schema with goose.
// MIGRATION_COMMAND selects the command (default up).
package main

import (
	"context"
	"log/slog"
	"os"

	productMigrations "github.com/ghuser/supermarket/migrations/product"
	"github.com/ghuser/supermarket/pkg/config"
	"github.com/ghuser/supermarket/pkg/logger"
	"github.com/ghuser/supermarket/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg).With("component", "migrate")

	if err := migrator.Run(context.Background(), cfg.DatabaseURL, productMigrations.FS, cfg.MigrationCommand, log); err != nil {
		log.Error("migration failed", "command", cfg.MigrationCommand, "error", err)
		os.Exit(1)
	}
}
