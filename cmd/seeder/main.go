// cmd/seeder/main.go
package main

import (
	"context"
	"os"

	"github.com/unclebandit/tailorbook-backend/internal/config"
	"github.com/unclebandit/tailorbook-backend/internal/db"
	"github.com/unclebandit/tailorbook-backend/internal/logging"
)

func main() {
	logger := logging.New("seeder")

	cfg, _, err := config.Load()
	if err != nil {
		logger.Fatal("❌ Invalid configuration", "err", err)
	}

	database, err := db.Open(context.Background(), cfg.DB, logger)
	if err != nil {
		logger.Fatal("❌ Failed to connect to database", "err", err)
	}
	defer database.Close()

	version, err := db.Migrate(database.DB)
	if err != nil {
		logger.Fatal("❌ Failed to run migrations", "err", err)
	}
	logger.Info("Schema migrated", "version", version)

	seedFiles := []string{
		"seed/customers.sql",
		"seed/bills.sql",
	}

	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Fatal("failed to read seed file", "file", file, "err", err)
		}

		if _, err := database.Exec(string(content)); err != nil {
			logger.Fatal("failed to execute seed file", "file", file, "err", err)
		}
		logger.Info("Seeded", "file", file)
	}

	logger.Info("Database seeding completed successfully!")
}
