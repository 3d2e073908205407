// internal/db/db.go
package db

import (
	"context"
	"time"

	CharmLog "github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/unclebandit/tailorbook-backend/internal/config"
)

// Open connects to Postgres and pings it.
func Open(ctx context.Context, cfg config.DBConfig, logger *CharmLog.Logger) (*sqlx.DB, error) {
	logger.Info("connecting to database", "host", cfg.Host, "name", cfg.Name, "user", cfg.User)

	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(3 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("✅ Connected to database")
	return db, nil
}
