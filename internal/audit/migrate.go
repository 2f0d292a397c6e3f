package audit

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/openradius/raddecode/internal/audit/migrations"
	"github.com/openradius/raddecode/internal/logger"
)

// runMigrations applies every pending migration in internal/audit/migrations
// to the SQLite database at dsn.
func runMigrations(dsn string) error {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("audit: open %s for migration: %w", dsn, err)
	}
	defer db.Close()

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("audit: create sqlite migration driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("audit: load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("audit: create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("audit: apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("audit: read migration version: %w", err)
	}
	if dirty {
		logger.Warn("audit: database schema is in a dirty migration state", logger.DictPath(dsn))
	}
	if err == nil {
		logger.Info("audit: schema migrated", logger.Operation(fmt.Sprintf("version=%d", version)))
	}

	return nil
}
