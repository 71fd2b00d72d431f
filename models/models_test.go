package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountType(t *testing.T) {
	got, err := ParseAccountType(" checking ")
	require.NoError(t, err)
	assert.Equal(t, Checking, got)

	_, err = ParseAccountType("Crypto")
	assert.Error(t, err)
	assert.False(t, AccountType("Crypto").Valid())
	assert.True(t, Investment.Valid())
}

func TestTransactionSigned(t *testing.T) {
	amt := decimal.NewFromInt(25)
	assert.True(t, Transaction{Direction: Credit, Amount: amt}.Signed().Equal(amt))
	assert.True(t, Transaction{Direction: Debit, Amount: amt}.Signed().Equal(amt.Neg()))
}

func TestCustomerAge(t *testing.T) {
	c := Customer{FirstName: "Jane", LastName: "Smith", DateOfBirth: time.Date(1990, 8, 22, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Jane Smith", c.FullName())
	assert.Equal(t, 34, c.Age(time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 35, c.Age(time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC)))
}
