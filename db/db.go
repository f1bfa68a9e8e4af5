package db

import (
	"database/sql"
	"fmt"

	"go-bank-ledger/config"
	"go-bank-ledger/logger"

	_ "github.com/lib/pq"
)

// Connect opens and pings the postgres database that backs the document
// stores when storage.driver is "postgres".
func Connect(cfg config.Database) (*sql.DB, error) {
	logger.Log.WithField("connection", cfg.RedactedDSN()).Info("Attempting to connect to the database")

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		logger.Log.WithError(err).Error("Failed to open database connection")
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		logger.Log.WithError(err).Error("Failed to ping database")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Log.Info("Database connection established successfully")
	return db, nil
}
