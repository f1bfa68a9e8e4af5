package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"go-bank-ledger/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the documents schema up to date. Running it against an
// up-to-date database is a no-op.
func Migrate(db *sql.DB) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migrate driver: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("cannot create migrate instance: %w", err)
	}

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrate up: %w", err)
	}

	logVersion(mig)
	return nil
}

type versioner interface {
	Version() (version uint, dirty bool, err error)
}

func logVersion(v versioner) {
	version, dirty, err := v.Version()
	if err != nil {
		logger.Log.WithError(err).Warn("Database migrations applied, version unknown")
		return
	}
	logger.Log.WithField("version", version).WithField("dirty", dirty).Info("Database migrations applied")
}
