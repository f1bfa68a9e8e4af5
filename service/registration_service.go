// file: service/registration_service.go

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-bank-ledger/common"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RegistrationService creates a customer with its default account and the
// login that points at it.
type RegistrationService struct {
	mu    sync.Mutex
	bank  *BankService
	users *UserService
}

func NewRegistrationService(bank *BankService, users *UserService) *RegistrationService {
	return &RegistrationService{bank: bank, users: users}
}

// Register validates the request, rejects a known customer ID or username,
// then adds the customer (with account ACC-<customerID>, balance 0) to the
// bank and registers the credential.
func (s *RegistrationService) Register(ctx context.Context, req model.RegisterRequest) (*model.Customer, error) {
	if err := common.Validate(&req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.Log.WithFields(logrus.Fields{
		"username":    req.Username,
		"customer_id": req.CustomerID,
	})

	if _, exists := s.bank.FindCustomer(req.CustomerID); exists {
		log.Info("Registration rejected, customer already exists")
		return nil, model.ErrDuplicateCustomer
	}
	// Checked up front so a taken username never leaves a customer behind.
	if s.users.Exists(req.Username) {
		log.Info("Registration rejected, username already exists")
		return nil, model.ErrUsernameTaken
	}

	customer := model.NewCustomer(req.CustomerID, req.Name, req.Email, req.Phone)
	account := model.NewAccount(model.DefaultAccountNumber(req.CustomerID), req.CustomerID, decimal.Zero, model.DefaultAccountType)
	customer.AddAccount(account)

	if err := s.bank.AddCustomer(ctx, customer); err != nil {
		if !errors.Is(err, model.ErrDuplicateCustomer) && !errors.Is(err, model.ErrDuplicateAccount) {
			s.bank.removeCustomer(customer.ID)
			log.WithError(err).Warn("Registration rolled back, bank data not saved")
		}
		return nil, fmt.Errorf("add customer: %w", err)
	}
	if err := s.users.RegisterUser(ctx, req.Username, req.Password, req.CustomerID); err != nil {
		s.rollback(ctx, log, req.CustomerID, req.Username, err)
		return nil, fmt.Errorf("register user: %w", err)
	}

	log.Info("Registration completed")
	return customer, nil
}

// rollback removes a customer whose credential could not be stored and
// rewrites the bank document without it.
func (s *RegistrationService) rollback(ctx context.Context, log *logrus.Entry, customerID, username string, cause error) {
	if !errors.Is(cause, model.ErrUsernameTaken) {
		s.users.removeUser(username)
	}
	s.bank.removeCustomer(customerID)
	if err := s.bank.Save(ctx); err != nil {
		log.WithError(err).Error("Registration rollback could not save bank data")
		return
	}
	log.WithError(cause).Warn("Registration rolled back, credentials not saved")
}
