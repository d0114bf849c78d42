package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-ledger/internal/config"
	"github.com/MKhiriev/go-sync-ledger/internal/logger"
)

// Storages groups all server-side repositories.
type Storages struct {
	Entities EntityRepository
}

// NewStorages connects to PostgreSQL, runs pending migrations, and returns
// the server storage layer.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Entities: NewEntityRepository(db, logger),
	}, nil
}
