package db

import (
	"fmt"

	"arkfleet/opsboard/internal/constants"
	gormModels "arkfleet/opsboard/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Migrate creates the blob-store tables and the API key table if they do not
// exist, and auto-migrates the GORM-managed audit entities. Every blob table
// shares the same physical layout; the payload stays opaque jsonb.
func Migrate(sqlxDB *sqlx.DB, ormDB *gorm.DB) error {
	for table := range constants.KnownTables {
		stmt := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         TEXT PRIMARY KEY,
				payload    JSONB NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, table)
		if _, err := sqlxDB.Exec(stmt); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
	}

	if _, err := sqlxDB.Exec(`
		CREATE TABLE IF NOT EXISTS api_keys (
			key       TEXT PRIMARY KEY,
			label     TEXT NOT NULL DEFAULT '',
				role      TEXT NOT NULL DEFAULT 'VIEWER',
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`); err != nil {
		return fmt.Errorf("create table api_keys: %w", err)
	}

	return ormDB.AutoMigrate(&gormModels.Upload{})
}
