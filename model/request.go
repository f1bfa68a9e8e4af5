// file: model/request.go

package model

import "github.com/shopspring/decimal"

// RegisterRequest carries everything the registration screen collects.
// Every field is required.
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,max=50"`
	Password   string `json:"password" validate:"required"`
	CustomerID string `json:"customer_id" validate:"required,max=64"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
}

// OpenAccountRequest opens another account for the logged-in customer. An
// empty type means a savings account.
type OpenAccountRequest struct {
	AccountNumber string `json:"account_number" validate:"required,max=64"`
	Type          string `json:"account_type" validate:"max=32"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AmountRequest is the body of deposit and withdrawal requests. The sign
// of the amount is checked by the account itself.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransferRequest defines a transfer; the source account comes from the URL.
type TransferRequest struct {
	ToAccountNumber string          `json:"to_account_number" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
}
