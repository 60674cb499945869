package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/umakantv/go-utils/db/migrations"
)

// DefaultMigrationsDir is where the schema migrations live relative to the repo root
const DefaultMigrationsDir = "./database/migrations"

// DSN builds the go-sqlite3 connection string for a database file.
// Writers wait on the file lock for up to five seconds before failing.
func DSN(path string) string {
	return "file:" + path + "?_busy_timeout=5000"
}

// Open connects to the SQLite file at path and applies the migrations in migrationsDir
func Open(path, migrationsDir string) (*sqlx.DB, error) {
	dbConn, err := sqlx.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbConn.PingContext(ctx); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := migrations.Migrate(dbConn, migrationsDir); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return dbConn, nil
}

// IsUniqueViolation reports whether err comes from a UNIQUE or PRIMARY KEY constraint
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
