package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

var sqlOpenDB = sql.Open

// SQLiteDSN turns a database file path into a go-sqlite3 DSN with WAL
// journaling and full fsync, so every committed write is on disk.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_journal_mode=WAL&_synchronous=FULL&_busy_timeout=5000"
}

// Open connects to the configured backend and pings it.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	switch driver {
	case DriverSQLite:
		db, err = sqlOpenDB(DriverSQLite, SQLiteDSN(dsn))
		if err != nil {
			return nil, err
		}
		// a single connection makes the file single-writer
		db.SetMaxOpenConns(1)
	case DriverPostgres:
		db, err = sqlOpenDB(DriverPostgres, dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
