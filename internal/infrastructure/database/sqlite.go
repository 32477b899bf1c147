package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/bluemanta7/MantaMind/internal/infrastructure/config"
)

// NewSQLite opens the SQLite database named by the store DSN and migrates it.
func NewSQLite(cfg *config.Config) (*sqlx.DB, func(), error) {
	db, err := sqlx.Open("sqlite3", cfg.Store.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := RunMigrations(ctx, db.DB, "sqlite3"); err != nil {
		db.Close()
		return nil, nil, err
	}

	return db, func() {
		_ = db.Close()
	}, nil
}
