package seed

import (
	"testing"

	"go-bankledger/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample(t *testing.T) {
	s := store.New()
	require.NoError(t, Sample(s))

	snap := s.Snapshot()
	require.Len(t, snap.Customers, 2)
	require.Len(t, snap.Accounts, 3)
	assert.Equal(t, 3, snap.NextCustomerID)
	assert.Equal(t, 1003, snap.NextAccountNumber)
	assert.Equal(t, int64(5), snap.NextTransactionID)

	checking, ok := s.Account("1000")
	require.True(t, ok)
	assert.True(t, checking.Balance.Equal(decimal.NewFromInt(1500)))
	require.Len(t, checking.Transactions, 2)
	assert.Equal(t, "Salary deposit", checking.Transactions[1].Description)

	assert.True(t, s.TotalBalance().Equal(decimal.NewFromInt(9000)))
	assert.Len(t, s.AccountsByCustomer(1), 2)
}
