// file: service/bank_service.go

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go-bank-ledger/logger"
	"go-bank-ledger/metrics"
	"go-bank-ledger/model"
	"go-bank-ledger/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// BankService is the aggregate root: it owns every customer, keeps an index
// of all accounts by number and writes the whole graph back to the
// repository after each change.
//
// mu serializes every operation together with its save. This is the only
// boundary around a transfer's debit and credit; the file write itself is
// still a plain overwrite.
type BankService struct {
	mu        sync.Mutex
	repo      repository.IBankRepository
	metrics   *metrics.Metrics
	customers []*model.Customer
	byID      map[string]*model.Customer
	accounts  map[string]*model.Account
}

func NewBankService(repo repository.IBankRepository, m *metrics.Metrics) *BankService {
	return &BankService{
		repo:     repo,
		metrics:  m,
		byID:     make(map[string]*model.Customer),
		accounts: make(map[string]*model.Account),
	}
}

// Load replaces the in-memory state with what the repository holds. A
// missing document means a fresh bank. A malformed one is logged and the
// bank starts empty; Load only fails on infrastructure errors.
func (s *BankService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()

	customers, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrDocumentNotFound):
		logger.Log.Info("No bank document found, starting with an empty bank")
		return nil
	case errors.Is(err, repository.ErrMalformedDocument):
		logger.Log.WithError(err).Error("Error loading bank data, starting with an empty bank")
		return nil
	case err != nil:
		return fmt.Errorf("load bank data: %w", err)
	}

	for _, c := range customers {
		if err := s.addCustomer(c); err != nil {
			logger.Log.WithError(err).WithField("customer_id", c.ID).
				Error("Error loading bank data, starting with an empty bank")
			s.reset()
			return nil
		}
	}
	logger.Log.WithFields(logrus.Fields{
		"customers": len(s.customers),
		"accounts":  len(s.accounts),
	}).Info("Bank data loaded")
	return nil
}

func (s *BankService) reset() {
	s.customers = nil
	s.byID = make(map[string]*model.Customer)
	s.accounts = make(map[string]*model.Account)
}

// Save writes the full bank document.
func (s *BankService) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx)
}

func (s *BankService) save(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.customers); err != nil {
		s.metrics.IncrPersistFailure(repository.BankDocumentName)
		logger.Log.WithError(err).Error("Failed to save bank data")
		return fmt.Errorf("save bank data: %w", err)
	}
	return nil
}

// AddCustomer registers a customer together with the accounts already
// attached to it, then saves. Accounts attached to the customer afterwards
// are only indexed when added through OpenAccount.
func (s *BankService) AddCustomer(ctx context.Context, c *model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addCustomer(c); err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"customer_id": c.ID,
		"accounts":    len(c.GetAllAccounts()),
	}).Info("Customer added")
	return s.save(ctx)
}

func (s *BankService) addCustomer(c *model.Customer) error {
	if _, exists := s.byID[c.ID]; exists {
		return fmt.Errorf("%w: %s", model.ErrDuplicateCustomer, c.ID)
	}
	seen := make(map[string]bool)
	for _, a := range c.GetAllAccounts() {
		if _, exists := s.accounts[a.Number]; exists || seen[a.Number] {
			return fmt.Errorf("%w: %s", model.ErrDuplicateAccount, a.Number)
		}
		seen[a.Number] = true
	}

	s.customers = append(s.customers, c)
	s.byID[c.ID] = c
	for _, a := range c.GetAllAccounts() {
		a.CustomerID = c.ID
		s.accounts[a.Number] = a
	}
	return nil
}

// removeCustomer drops a customer and its accounts from memory. Nothing is
// saved.
func (s *BankService) removeCustomer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[id]
	if !ok {
		return
	}
	for _, a := range c.GetAllAccounts() {
		delete(s.accounts, a.Number)
	}
	delete(s.byID, id)
	s.customers = slices.DeleteFunc(s.customers, func(existing *model.Customer) bool {
		return existing == c
	})
}

// OpenAccount attaches a new account to a registered customer and to the
// account index in one step, then saves.
func (s *BankService) OpenAccount(ctx context.Context, customerID string, a *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.openAccount(ctx, customerID, a)
	s.metrics.RecordOperation("open_account", err)
	return err
}

func (s *BankService) openAccount(ctx context.Context, customerID string, a *model.Account) error {
	c, ok := s.byID[customerID]
	if !ok {
		return model.ErrCustomerNotFound
	}
	if _, exists := s.accounts[a.Number]; exists {
		return fmt.Errorf("%w: %s", model.ErrDuplicateAccount, a.Number)
	}
	a.CustomerID = c.ID
	c.AddAccount(a)
	s.accounts[a.Number] = a

	logger.Log.WithFields(logrus.Fields{
		"customer_id":    customerID,
		"account_number": a.Number,
	}).Info("Account opened")
	return s.save(ctx)
}

func (s *BankService) FindCustomer(id string) (*model.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	return c, ok
}

func (s *BankService) FindAccount(number string) (*model.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[number]
	return a, ok
}

// CheckOwnership reports whether the account exists and belongs to the
// customer.
func (s *BankService) CheckOwnership(customerID, accountNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[accountNumber]
	if !ok {
		return model.ErrAccountNotFound
	}
	if a.CustomerID != customerID {
		return model.ErrPermissionDenied
	}
	return nil
}

// Customers returns the registered customers in registration order.
func (s *BankService) Customers() []*model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// AccountsForCustomer returns copies of a customer's accounts.
func (s *BankService) AccountsForCustomer(customerID string) ([]*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[customerID]
	if !ok {
		return nil, model.ErrCustomerNotFound
	}
	out := make([]*model.Account, 0, len(c.GetAllAccounts()))
	for _, a := range c.GetAllAccounts() {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

// Deposit credits an account and saves.
func (s *BankService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.deposit(ctx, accountNumber, amount)
	s.metrics.RecordOperation("deposit", err)
	return t, err
}

func (s *BankService) deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (model.Transaction, error) {
	a, ok := s.accounts[accountNumber]
	if !ok {
		return model.Transaction{}, model.ErrAccountNotFound
	}
	t, err := a.Deposit(amount)
	if err != nil {
		return model.Transaction{}, err
	}
	logger.Log.WithFields(logrus.Fields{
		"account_number": accountNumber,
		"amount":         amount.String(),
	}).Info("Deposit completed")
	return t, s.save(ctx)
}

// Withdraw debits an account and saves.
func (s *BankService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.withdraw(ctx, accountNumber, amount)
	s.metrics.RecordOperation("withdraw", err)
	return t, err
}

func (s *BankService) withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (model.Transaction, error) {
	a, ok := s.accounts[accountNumber]
	if !ok {
		return model.Transaction{}, model.ErrAccountNotFound
	}
	t, err := a.Withdraw(amount)
	if err != nil {
		return model.Transaction{}, err
	}
	logger.Log.WithFields(logrus.Fields{
		"account_number": accountNumber,
		"amount":         amount.String(),
	}).Info("Withdrawal completed")
	return t, s.save(ctx)
}

// Transfer moves money between two different accounts and saves. If the
// save fails the in-memory balances stay moved and the error is returned.
func (s *BankService) Transfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal) (*model.TransferResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.transfer(ctx, fromNumber, toNumber, amount)
	s.metrics.RecordOperation("transfer", err)
	return res, err
}

func (s *BankService) transfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal) (*model.TransferResult, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"from_account": fromNumber,
		"to_account":   toNumber,
		"amount":       amount.String(),
	})

	from, ok := s.accounts[fromNumber]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	to, ok := s.accounts[toNumber]
	if !ok {
		return nil, model.ErrReceiverAccountNotFound
	}
	if from.Number == to.Number {
		return nil, model.ErrSameAccountTransfer
	}

	out, in, err := from.Transfer(amount, to)
	if err != nil {
		log.WithError(err).Info("Transfer rejected")
		return nil, err
	}
	log.Info("Transfer completed")

	res := &model.TransferResult{Out: out, In: in}
	if err := s.save(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// TransactionHistory returns an account's full ordered history.
func (s *BankService) TransactionHistory(accountNumber string) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[accountNumber]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return a.TransactionHistory(), nil
}
