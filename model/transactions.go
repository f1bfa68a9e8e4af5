package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindDeposit     TransactionKind = "Deposit"
	KindWithdrawal  TransactionKind = "Withdrawal"
	KindTransferOut TransactionKind = "Transfer Out"
	KindTransferIn  TransactionKind = "Transfer In"
)

// ParseTransactionKind maps a persisted label back to its kind.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch k := TransactionKind(s); k {
	case KindDeposit, KindWithdrawal, KindTransferOut, KindTransferIn:
		return k, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Transaction is one balance change on an account. Values are never
// modified after creation.
type Transaction struct {
	Amount         decimal.Decimal `json:"amount"`
	Kind           TransactionKind `json:"transaction_type"`
	Timestamp      time.Time       `json:"timestamp"`
	AccountNumber  string          `json:"account_number"`
	RelatedAccount string          `json:"related_account,omitempty"`
}

func newTransaction(amount decimal.Decimal, kind TransactionKind, account, related string) Transaction {
	return Transaction{
		Amount:         amount,
		Kind:           kind,
		Timestamp:      Now(),
		AccountNumber:  account,
		RelatedAccount: related,
	}
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s - %s: $%s (Account: %s)",
		t.Timestamp.Format(time.DateTime), t.Kind, t.Amount.StringFixed(2), t.AccountNumber)
}

// Now stamps new transactions. Tests replace it to get stable timestamps.
var Now = func() time.Time {
	return time.Now().UTC()
}
