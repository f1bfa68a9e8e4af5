// handler/main_test.go
package handler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/repository"
	"go-bank-ledger/service"

	"github.com/stretchr/testify/require"
)

// TestMain sets up logging for the handler package.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type testServices struct {
	bank     *service.BankService
	users    *service.UserService
	auth     *service.AuthService
	register *service.RegistrationService
	sessions *service.SessionService
}

// newTestServices wires services onto JSON documents in a temp dir.
func newTestServices(t *testing.T) *testServices {
	t.Helper()
	dir := t.TempDir()
	auth := service.NewAuthService(service.SHA256Hasher{}, "handler-test-secret", time.Hour)
	bank := service.NewBankService(repository.NewBankRepository(repository.NewFileDocumentStore(filepath.Join(dir, "bank_data.json"))), nil)
	users := service.NewUserService(repository.NewUserRepository(repository.NewFileDocumentStore(filepath.Join(dir, "users.json"))), auth, nil)
	require.NoError(t, bank.Load(context.Background()))
	require.NoError(t, users.Load(context.Background()))
	return &testServices{
		bank:     bank,
		users:    users,
		auth:     auth,
		register: service.NewRegistrationService(bank, users),
		sessions: service.NewSessionService(bank, users, auth),
	}
}

// registerAndLogin creates customer id with username id+"-user" and returns
// a bearer token for it.
func (s *testServices) registerAndLogin(t *testing.T, id string) string {
	t.Helper()
	_, err := s.register.Register(context.Background(), model.RegisterRequest{
		Username:   id + "-user",
		Password:   "password",
		CustomerID: id,
		Name:       "Customer " + id,
		Email:      id + "@example.com",
		Phone:      "555-0100",
	})
	require.NoError(t, err)
	session, err := s.sessions.Login(id+"-user", "password")
	require.NoError(t, err)
	return session.Token
}
