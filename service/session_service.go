package service

import (
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
)

// SessionService turns a username and password into a session for the
// presentation layers.
type SessionService struct {
	bank  *BankService
	users *UserService
	auth  *AuthService
}

func NewSessionService(bank *BankService, users *UserService, auth *AuthService) *SessionService {
	return &SessionService{bank: bank, users: users, auth: auth}
}

// Authenticate checks credentials and resolves the customer they belong to.
func (s *SessionService) Authenticate(username, password string) (*model.Customer, error) {
	customerID, ok := s.users.Authenticate(username, password)
	if !ok {
		logger.Log.WithField("username", username).Info("Login failed")
		return nil, model.ErrInvalidCredentials
	}
	customer, ok := s.bank.FindCustomer(customerID)
	if !ok {
		logger.Log.WithField("customer_id", customerID).Warn("Credential points at an unknown customer")
		return nil, model.ErrCustomerNotFound
	}
	return customer, nil
}

// Login authenticates and issues a signed session token.
func (s *SessionService) Login(username, password string) (*model.Session, error) {
	customer, err := s.Authenticate(username, password)
	if err != nil {
		return nil, err
	}
	accounts, err := s.bank.AccountsForCustomer(customer.ID)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.auth.GenerateJWT(username, customer.ID)
	if err != nil {
		return nil, err
	}
	logger.Log.WithField("username", username).Info("Login succeeded")
	return &model.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Customer:  customer,
		Accounts:  accounts,
	}, nil
}

// Logout revokes the session's token.
func (s *SessionService) Logout(claims *model.AppClaims) {
	s.auth.Revoke(claims)
}
