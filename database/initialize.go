package database

import (
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeDatabase opens the SQLite store at path and runs the pending migrations
func InitializeDatabase(path, migrationsDir string) *sqlx.DB {
	config := db.DatabaseConfig{
		DRIVER: "sqlite3",
		DB:     DSN(path),
	}

	dbConn := db.GetDBConnection(config)

	err := migrations.Migrate(dbConn, migrationsDir)
	if err != nil {
		logger.Error("Error while running migration", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Connected to SQLite database", zap.String("path", path))
	return dbConn
}
