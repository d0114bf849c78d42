// Package migrations embeds the goose SQL migrations for both halves of the
// system: the client's local SQLite store and the reference server's
// PostgreSQL store.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql
var clientMigrations embed.FS

//go:embed server/*.sql
var serverMigrations embed.FS

// MigrateClient applies all pending client-side migrations to the local
// SQLite database.
func MigrateClient(db *sql.DB) error {
	goose.SetBaseFS(clientMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "client"); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// MigrateServer applies all pending server-side migrations to the PostgreSQL
// database.
func MigrateServer(db *sql.DB) error {
	goose.SetBaseFS(serverMigrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "server"); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
