package model

// Credential maps a login name to a password digest and the customer it
// signs in as.
type Credential struct {
	Username     string
	PasswordHash string
	CustomerID   string
}
