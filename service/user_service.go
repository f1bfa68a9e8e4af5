package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-bank-ledger/logger"
	"go-bank-ledger/metrics"
	"go-bank-ledger/model"
	"go-bank-ledger/repository"

	"github.com/sirupsen/logrus"
)

// UserService is the credential store: username → password digest →
// customer ID. Every change rewrites the whole credential document.
type UserService struct {
	mu      sync.Mutex
	repo    repository.IUserRepository
	auth    *AuthService
	metrics *metrics.Metrics
	users   map[string]model.Credential
}

func NewUserService(repo repository.IUserRepository, auth *AuthService, m *metrics.Metrics) *UserService {
	return &UserService{
		repo:    repo,
		auth:    auth,
		metrics: m,
		users:   make(map[string]model.Credential),
	}
}

// Load follows the same policy as BankService.Load: missing or malformed
// documents leave an empty store.
func (s *UserService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]model.Credential)

	users, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrDocumentNotFound):
		logger.Log.Info("No credential document found, starting with no users")
		return nil
	case errors.Is(err, repository.ErrMalformedDocument):
		logger.Log.WithError(err).Error("Error loading users, starting with no users")
		return nil
	case err != nil:
		return fmt.Errorf("load users: %w", err)
	}

	s.users = users
	return nil
}

// Exists reports whether username is registered.
func (s *UserService) Exists(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok
}

// RegisterUser stores a new credential and saves. An existing username is
// left untouched and ErrUsernameTaken is returned.
func (s *UserService) RegisterUser(ctx context.Context, username, password, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.registerUser(ctx, username, password, customerID)
	s.metrics.RecordOperation("register_user", err)
	return err
}

func (s *UserService) registerUser(ctx context.Context, username, password, customerID string) error {
	log := logger.Log.WithFields(logrus.Fields{
		"username":    username,
		"customer_id": customerID,
	})

	if _, exists := s.users[username]; exists {
		log.Info("Registration rejected, username already exists")
		return model.ErrUsernameTaken
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	s.users[username] = model.Credential{
		Username:     username,
		PasswordHash: hash,
		CustomerID:   customerID,
	}

	if err := s.repo.Save(ctx, s.users); err != nil {
		s.metrics.IncrPersistFailure(repository.UsersDocumentName)
		log.WithError(err).Error("Failed to save users")
		return fmt.Errorf("save users: %w", err)
	}
	log.Info("User registered")
	return nil
}

// removeUser drops a credential from memory. Nothing is saved.
func (s *UserService) removeUser(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, username)
}

// Authenticate returns the customer ID for a matching username and password.
func (s *UserService) Authenticate(username, password string) (string, bool) {
	s.mu.Lock()
	cred, ok := s.users[username]
	s.mu.Unlock()

	if !ok || !s.auth.CheckPasswordHash(password, cred.PasswordHash) {
		s.metrics.RecordOperation("authenticate", model.ErrInvalidCredentials)
		return "", false
	}
	s.metrics.RecordOperation("authenticate", nil)
	return cred.CustomerID, true
}
