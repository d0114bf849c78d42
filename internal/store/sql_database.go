package store

import (
	"database/sql"

	"github.com/MKhiriev/go-sync-ledger/internal/logger"
)

// DB wraps *sql.DB with the error classifier and migration set chosen by the
// connecting constructor (SQLite on the client, PostgreSQL on the server).
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	migrate            func(*sql.DB) error
}

func (db *DB) Migrate() error {
	return db.migrate(db.DB)
}
