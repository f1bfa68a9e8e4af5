// file: repository/bank_repository.go

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-bank-ledger/logger"
	"go-bank-ledger/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// IBankRepository persists the whole customer → account → transaction graph
// as one document.
type IBankRepository interface {
	Load(ctx context.Context) ([]*model.Customer, error)
	Save(ctx context.Context, customers []*model.Customer) error
}

type bankDocument struct {
	Customers []customerRecord `json:"customers"`
}

type customerRecord struct {
	CustomerID string          `json:"customer_id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Accounts   []accountRecord `json:"accounts"`
}

type accountRecord struct {
	AccountNumber string              `json:"account_number"`
	Balance       decimal.NullDecimal `json:"balance"`
	AccountType   string              `json:"account_type,omitempty"`
	Transactions  []transactionRecord `json:"transactions"`
}

type transactionRecord struct {
	Amount          decimal.NullDecimal `json:"amount"`
	TransactionType string              `json:"transaction_type"`
	Timestamp       string              `json:"timestamp"`
	AccountNumber   string              `json:"account_number"`
	RelatedAccount  *string             `json:"related_account"`
}

// Timestamps are written as RFC 3339 with nanoseconds. The zone-less layout
// is what older documents contain; it is read as local time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

type BankRepository struct {
	store IDocumentStore
}

func NewBankRepository(store IDocumentStore) *BankRepository {
	return &BankRepository{store: store}
}

// Load rebuilds customers with their accounts and transaction histories.
// It returns ErrDocumentNotFound when nothing was saved yet and wraps
// ErrMalformedDocument when the document cannot be decoded or rebuilt.
func (r *BankRepository) Load(ctx context.Context) ([]*model.Customer, error) {
	data, err := r.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	var doc bankDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	customers := make([]*model.Customer, 0, len(doc.Customers))
	for i, cr := range doc.Customers {
		c, err := cr.toModel()
		if err != nil {
			return nil, fmt.Errorf("%w: customer %d: %v", ErrMalformedDocument, i, err)
		}
		customers = append(customers, c)
	}

	logger.Log.WithField("customers", len(customers)).Info("Bank document loaded")
	return customers, nil
}

// Save overwrites the stored document with the given customers.
func (r *BankRepository) Save(ctx context.Context, customers []*model.Customer) error {
	doc := bankDocument{Customers: make([]customerRecord, 0, len(customers))}
	accounts, transactions := 0, 0
	for _, c := range customers {
		cr := newCustomerRecord(c)
		for _, ar := range cr.Accounts {
			accounts++
			transactions += len(ar.Transactions)
		}
		doc.Customers = append(doc.Customers, cr)
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode bank document: %w", err)
	}
	if err := r.store.Write(ctx, data); err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"customers":    len(customers),
		"accounts":     accounts,
		"transactions": transactions,
	}).Debug("Bank document saved")
	return nil
}

func newCustomerRecord(c *model.Customer) customerRecord {
	cr := customerRecord{
		CustomerID: c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Accounts:   []accountRecord{},
	}
	for _, a := range c.GetAllAccounts() {
		ar := accountRecord{
			AccountNumber: a.Number,
			Balance:       decimal.NewNullDecimal(a.Balance),
			AccountType:   a.Type,
			Transactions:  []transactionRecord{},
		}
		for _, t := range a.TransactionHistory() {
			tr := transactionRecord{
				Amount:          decimal.NewNullDecimal(t.Amount),
				TransactionType: string(t.Kind),
				Timestamp:       formatTimestamp(t.Timestamp),
				AccountNumber:   t.AccountNumber,
			}
			if t.RelatedAccount != "" {
				related := t.RelatedAccount
				tr.RelatedAccount = &related
			}
			ar.Transactions = append(ar.Transactions, tr)
		}
		cr.Accounts = append(cr.Accounts, ar)
	}
	return cr
}

func (cr customerRecord) toModel() (*model.Customer, error) {
	if cr.CustomerID == "" {
		return nil, fmt.Errorf("missing customer_id")
	}
	c := model.NewCustomer(cr.CustomerID, cr.Name, cr.Email, cr.Phone)
	for _, ar := range cr.Accounts {
		a, err := ar.toModel(c.ID)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", ar.AccountNumber, err)
		}
		c.AddAccount(a)
	}
	return c, nil
}

func (ar accountRecord) toModel(customerID string) (*model.Account, error) {
	if ar.AccountNumber == "" {
		return nil, fmt.Errorf("missing account_number")
	}
	if !ar.Balance.Valid {
		return nil, fmt.Errorf("missing balance")
	}
	a := model.NewAccount(ar.AccountNumber, customerID, ar.Balance.Decimal, ar.AccountType)

	txs := make([]model.Transaction, 0, len(ar.Transactions))
	for i, tr := range ar.Transactions {
		t, err := tr.toModel()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs = append(txs, t)
	}
	a.RestoreTransactions(txs...)
	return a, nil
}

func (tr transactionRecord) toModel() (model.Transaction, error) {
	if !tr.Amount.Valid {
		return model.Transaction{}, fmt.Errorf("missing amount")
	}
	kind, err := model.ParseTransactionKind(tr.TransactionType)
	if err != nil {
		return model.Transaction{}, err
	}
	ts, err := parseTimestamp(tr.Timestamp)
	if err != nil {
		return model.Transaction{}, err
	}
	t := model.Transaction{
		Amount:        tr.Amount.Decimal,
		Kind:          kind,
		Timestamp:     ts,
		AccountNumber: tr.AccountNumber,
	}
	if tr.RelatedAccount != nil {
		t.RelatedAccount = *tr.RelatedAccount
	}
	return t, nil
}
