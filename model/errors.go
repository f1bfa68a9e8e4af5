package model

import "errors"

var (
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrSameAccountTransfer     = errors.New("cannot transfer money to the same account")
	ErrAccountNotFound         = errors.New("account not found")
	ErrReceiverAccountNotFound = errors.New("recipient account not found")
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrDuplicateCustomer       = errors.New("customer ID already exists")
	ErrDuplicateAccount        = errors.New("account number already exists")
	ErrUsernameTaken           = errors.New("username already exists")
	ErrInvalidCredentials      = errors.New("invalid username or password")
	ErrPermissionDenied        = errors.New("account does not belong to the logged in customer")
)
