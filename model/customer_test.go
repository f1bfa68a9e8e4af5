package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCustomer_Accounts(t *testing.T) {
	c := NewCustomer("C1", "Ada", "ada@example.com", "555-0100")
	assert.Empty(t, c.GetAllAccounts())

	a1 := NewAccount("ACC-C1", c.ID, decimal.Zero, "")
	a2 := NewAccount("CHK-C1", c.ID, decimal.Zero, "Checking")
	c.AddAccount(a1)
	c.AddAccount(a2)

	got, ok := c.GetAccount("CHK-C1")
	assert.True(t, ok)
	assert.Same(t, a2, got)

	_, ok = c.GetAccount("missing")
	assert.False(t, ok)

	assert.Equal(t, []*Account{a1, a2}, c.GetAllAccounts())
}
