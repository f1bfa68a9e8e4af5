package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const DefaultAccountType = "Savings"

// Account holds a balance and its transaction history. CustomerID refers to
// the owning customer; the customer owns the account, not the other way round.
type Account struct {
	Number       string          `json:"account_number"`
	CustomerID   string          `json:"customer_id"`
	Balance      decimal.Decimal `json:"balance"`
	Type         string          `json:"account_type"`
	transactions []Transaction
}

func NewAccount(number, customerID string, balance decimal.Decimal, accountType string) *Account {
	if accountType == "" {
		accountType = DefaultAccountType
	}
	return &Account{
		Number:     number,
		CustomerID: customerID,
		Balance:    balance,
		Type:       accountType,
	}
}

// DefaultAccountNumber is the number given to the account opened at registration.
func DefaultAccountNumber(customerID string) string {
	return "ACC-" + customerID
}

func (a *Account) Deposit(amount decimal.Decimal) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	t := newTransaction(amount, KindDeposit, a.Number, "")
	a.transactions = append(a.transactions, t)
	return t, nil
}

func (a *Account) Withdraw(amount decimal.Decimal) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, ErrInvalidAmount
	}
	if a.Balance.LessThan(amount) {
		return Transaction{}, ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	t := newTransaction(amount, KindWithdrawal, a.Number, "")
	a.transactions = append(a.transactions, t)
	return t, nil
}

// Transfer moves amount from a to recipient and records a Transfer Out on a
// and a Transfer In on recipient. The debit and the credit are two separate
// mutations with nothing to undo the first if the second never happens;
// callers that need a boundary around both hold their own lock.
func (a *Account) Transfer(amount decimal.Decimal, recipient *Account) (out, in Transaction, err error) {
	if !amount.IsPositive() {
		return Transaction{}, Transaction{}, ErrInvalidAmount
	}
	if a.Balance.LessThan(amount) {
		return Transaction{}, Transaction{}, ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	recipient.Balance = recipient.Balance.Add(amount)

	out = newTransaction(amount, KindTransferOut, a.Number, recipient.Number)
	in = newTransaction(amount, KindTransferIn, recipient.Number, a.Number)
	a.transactions = append(a.transactions, out)
	recipient.transactions = append(recipient.transactions, in)
	return out, in, nil
}

// TransactionHistory returns the account's transactions in the order they
// happened.
func (a *Account) TransactionHistory() []Transaction {
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// RestoreTransactions appends already-recorded transactions, used when an
// account is rebuilt from a persisted document. Balance is not touched.
func (a *Account) RestoreTransactions(ts ...Transaction) {
	a.transactions = append(a.transactions, ts...)
}

func (a *Account) GetBalance() decimal.Decimal {
	return a.Balance
}

func (a *Account) String() string {
	return fmt.Sprintf("Account %s (Balance: $%s)", a.Number, a.Balance.StringFixed(2))
}
