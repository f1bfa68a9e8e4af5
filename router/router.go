package router

import (
	"net/http"

	"go-bank-ledger/handler"
	"go-bank-ledger/metrics"
	"go-bank-ledger/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything NewRouter mounts.
type Handlers struct {
	Users        *handler.UserHandler
	Accounts     *handler.AccountHandler
	Transactions *handler.TransactionHandler
	Auth         *service.AuthService
	Metrics      *metrics.Metrics
}

func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()
	auth := handler.AuthMiddleware(h.Auth)

	handle := func(pattern string, next http.Handler) {
		mux.Handle(pattern, handler.MetricsMiddleware(h.Metrics, pattern, next))
	}

	handle("GET /health", http.HandlerFunc(handler.HealthCheck))
	if h.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(h.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	// Public
	handle("POST /register", handler.ErrorHandlingMiddleware(h.Users.Register))
	handle("POST /login", handler.ErrorHandlingMiddleware(h.Users.Login))

	// Protected
	handle("POST /api/logout", auth(handler.ErrorHandlingMiddleware(h.Users.Logout)))
	handle("POST /api/accounts", auth(handler.ErrorHandlingMiddleware(h.Accounts.CreateAccount)))
	handle("GET /api/accounts", auth(handler.ErrorHandlingMiddleware(h.Accounts.ListAccounts)))
	handle("POST /api/accounts/{accountNumber}/deposits", auth(handler.ErrorHandlingMiddleware(h.Accounts.Deposit)))
	handle("POST /api/accounts/{accountNumber}/withdrawals", auth(handler.ErrorHandlingMiddleware(h.Accounts.Withdraw)))
	handle("POST /api/accounts/{accountNumber}/transfers", auth(handler.ErrorHandlingMiddleware(h.Transactions.CreateTransfer)))
	handle("GET /api/accounts/{accountNumber}/transactions", auth(handler.ErrorHandlingMiddleware(h.Transactions.ListTransactionsForAccount)))

	return mux
}
