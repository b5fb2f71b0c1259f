// Package storage opens the bun database selected by runtime configuration
// and keeps its schema current.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-sitebuilder/internal/persistence"
	"github.com/goliatone/go-sitebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-sitebuilder/internal/sites"
)

// MigrationsDir is the directory of the embedded SQL migrations.
const MigrationsDir = "data/sql/migrations"

var ErrMemoryDriver = errors.New("storage: memory driver has no database")

// Open returns a bun handle for the sqlite3 and postgres drivers. The memory
// driver yields ErrMemoryDriver.
func Open(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	switch driver := runtimeconfig.NormalizeDriver(cfg.Driver); driver {
	case runtimeconfig.DriverMemory:
		return nil, ErrMemoryDriver
	case runtimeconfig.DriverSQLite:
		sqlDB, err := sql.Open("sqlite3", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case runtimeconfig.DriverPostgres:
		sqlDB, err := sql.Open("pgx", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageDriverUnknown, cfg.Driver)
	}
}

func models() []any {
	return []any{
		(*persistence.StateRecord)(nil),
		(*sites.Site)(nil),
		(*sites.SitePage)(nil),
	}
}

// EnsureSchema creates any missing table from the bun models.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table: %w", err)
		}
	}
	_, err := db.NewCreateIndex().
		Model((*sites.SitePage)(nil)).
		Index("site_pages_site_id_idx").
		IfNotExists().
		Column("site_id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("storage: create index: %w", err)
	}
	return nil
}

// Migrate applies the SQL migrations under dir in source. Down rolls every
// migration back instead. It reports whether anything changed.
func Migrate(db *sql.DB, driver string, source fs.FS, dir string, down bool) (bool, error) {
	src, err := iofs.New(source, dir)
	if err != nil {
		return false, fmt.Errorf("storage: migration source: %w", err)
	}

	driver = runtimeconfig.NormalizeDriver(driver)
	var m *migrate.Migrate
	switch driver {
	case runtimeconfig.DriverSQLite:
		instance, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		if err != nil {
			return false, fmt.Errorf("storage: migrate sqlite: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, driver, instance)
		if err != nil {
			return false, fmt.Errorf("storage: migrate: %w", err)
		}
	case runtimeconfig.DriverPostgres:
		instance, err := migratepg.WithInstance(db, &migratepg.Config{})
		if err != nil {
			return false, fmt.Errorf("storage: migrate postgres: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, driver, instance)
		if err != nil {
			return false, fmt.Errorf("storage: migrate: %w", err)
		}
	default:
		return false, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageDriverUnknown, driver)
	}

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: apply migrations: %w", err)
	}
	return true, nil
}
