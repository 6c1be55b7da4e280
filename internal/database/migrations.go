// File: internal/database/migrations.go
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

type migrateInstance interface {
	Up() error
	Down() error
}

var (
	sqlite3WithInstanceFn  = sqlite3.WithInstance
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn              = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver source.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
)

// RunMigrations 套用所有尚未執行的 migration (up all)
func RunMigrations(driver, dsn string) error {
	m, sqlDB, err := newMigrator(driver, dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// RollbackAll 退回所有 migration (down to version 0)
func RollbackAll(driver, dsn string) error {
	m, sqlDB, err := newMigrator(driver, dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// newMigrator opens a dedicated connection for migrate; the caller closes it.
func newMigrator(driver, dsn string) (migrateInstance, *sql.DB, error) {
	var dir, name string
	openDSN := dsn
	switch driver {
	case DriverSQLite:
		dir, name, openDSN = "migrations/sqlite3", "sqlite3", SQLiteDSN(dsn)
	case DriverPostgres:
		dir, name = "migrations/postgres", "postgres"
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	sqlDB, err := sqlOpenDB(driver, openDSN)
	if err != nil {
		return nil, nil, err
	}

	var dbDriver dbdriver.Driver
	if driver == DriverSQLite {
		dbDriver, err = sqlite3WithInstanceFn(sqlDB, &sqlite3.Config{})
	} else {
		dbDriver, err = postgresWithInstanceFn(sqlDB, &postgres.Config{})
	}
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	sourceDriver, err := iofsNewFn(migrationsFS, dir)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	m, err := migrateNewWithInstance("iofs", sourceDriver, name, dbDriver)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	return m, sqlDB, nil
}
