//go:build !cgo

package store

// go-sqlite3 cannot run without cgo, so no SQLite error can reach here.
func isSQLiteUniqueViolation(error) bool { return false }
