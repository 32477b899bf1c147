package database

import (
	"fmt"

	"github.com/sirupsen/logrus"

	adapterrepo "github.com/bluemanta7/MantaMind/internal/adapter/repository"
	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/infrastructure/config"
	"github.com/bluemanta7/MantaMind/internal/repository"
)

// NewStore constructs the key-value store configured for the application.
func NewStore(cfg *config.Config, logger logrus.FieldLogger) (repository.KeyValueStore, func(), error) {
	switch cfg.Store.Driver {
	case "memory":
		return adapterrepo.NewMemoryStore(), func() {}, nil
	case "sqlite3":
		db, cleanup, err := NewSQLite(cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.WithField("dsn", cfg.Store.DSN).Debug("sqlite store ready")
		return adapterrepo.NewSQLiteStore(db), cleanup, nil
	case "postgres":
		pool, cleanup, err := NewConnection(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("postgres store ready")
		return adapterrepo.NewPostgresStore(pool), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", entity.ErrUnsupportedDriver, cfg.Store.Driver)
	}
}
