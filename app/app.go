// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-bank-ledger/config"
	"go-bank-ledger/db"
	"go-bank-ledger/handler"
	"go-bank-ledger/logger"
	"go-bank-ledger/metrics"
	"go-bank-ledger/repository"
	"go-bank-ledger/router"
	"go-bank-ledger/service"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// App owns the bank, the credential store and everything built on them.
// Nothing is global: each App has its own state, loaded once in New.
type App struct {
	Config *config.Config
	DB     *sql.DB

	Metrics      *metrics.Metrics
	Auth         *service.AuthService
	Bank         *service.BankService
	Users        *service.UserService
	Registration *service.RegistrationService
	Sessions     *service.SessionService

	Router http.Handler
}

// New wires all layers for cfg and loads the persisted bank and credential
// documents.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, Metrics: metrics.New()}

	bankStore, usersStore, err := a.openStores()
	if err != nil {
		return nil, err
	}

	hasher, err := service.NewPasswordHasher(cfg.Auth.Hasher)
	if err != nil {
		a.Close()
		return nil, err
	}

	// --- Wiring All Layers Together ---
	a.Auth = service.NewAuthService(hasher, cfg.JWT.SecretKey, cfg.JWT.TTL)
	a.Bank = service.NewBankService(repository.NewBankRepository(bankStore), a.Metrics)
	a.Users = service.NewUserService(repository.NewUserRepository(usersStore), a.Auth, a.Metrics)
	a.Registration = service.NewRegistrationService(a.Bank, a.Users)
	a.Sessions = service.NewSessionService(a.Bank, a.Users, a.Auth)

	if err := a.Bank.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.Users.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.Router = router.NewRouter(router.Handlers{
		Users:        handler.NewUserHandler(a.Registration, a.Sessions, a.Bank),
		Accounts:     handler.NewAccountHandler(a.Bank),
		Transactions: handler.NewTransactionHandler(a.Bank),
		Auth:         a.Auth,
		Metrics:      a.Metrics,
	})
	return a, nil
}

func (a *App) openStores() (bank, users repository.IDocumentStore, err error) {
	switch a.Config.Storage.Driver {
	case config.DriverPostgres:
		database, err := db.Connect(a.Config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("error connecting to the database: %w", err)
		}
		if err := db.Migrate(database); err != nil {
			database.Close()
			return nil, nil, err
		}
		a.DB = database
		return repository.NewPostgresDocumentStore(database, repository.BankDocumentName),
			repository.NewPostgresDocumentStore(database, repository.UsersDocumentName), nil
	default:
		logger.Log.WithField("bank_file", a.Config.Storage.BankFile).
			WithField("users_file", a.Config.Storage.UsersFile).
			Info("Using file storage")
		return repository.NewFileDocumentStore(a.Config.Storage.BankFile),
			repository.NewFileDocumentStore(a.Config.Storage.UsersFile), nil
	}
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down
// gracefully.
func (a *App) Serve(ctx context.Context) error {
	port := a.Config.Server.Port
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		logger.Log.Info("Server exited properly")
		return nil
	})

	return g.Wait()
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
