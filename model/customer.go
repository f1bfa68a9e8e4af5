package model

// Customer is a registered identity owning one or more accounts.
type Customer struct {
	ID       string `json:"customer_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	accounts []*Account
}

func NewCustomer(id, name, email, phone string) *Customer {
	return &Customer{ID: id, Name: name, Email: email, Phone: phone}
}

// AddAccount appends account without checking for duplicate numbers.
func (c *Customer) AddAccount(account *Account) {
	c.accounts = append(c.accounts, account)
}

func (c *Customer) GetAccount(number string) (*Account, bool) {
	for _, a := range c.accounts {
		if a.Number == number {
			return a, true
		}
	}
	return nil, false
}

// GetAllAccounts returns the owned accounts. The slice is shared; callers
// must not modify it.
func (c *Customer) GetAllAccounts() []*Account {
	return c.accounts
}
