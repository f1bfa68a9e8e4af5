// file: model/token.go

package model

import "time"

// Session is returned on a successful login.
type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	Customer  *Customer  `json:"customer"`
	Accounts  []*Account `json:"accounts"`
}

// TransferResult holds both sides of a completed transfer.
type TransferResult struct {
	Out Transaction `json:"out"`
	In  Transaction `json:"in"`
}
