package console

import (
	"bytes"
	"strings"
	"testing"

	"go-bankledger/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, s *store.Store, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, New(s, in, &out, "Test Bank").Run())
	return out.String()
}

func TestDemo(t *testing.T) {
	s := store.New()
	var out bytes.Buffer
	require.NoError(t, New(s, strings.NewReader(""), &out, "First National Bank").Demo())

	balances := map[string]int64{"1000": 1150, "1001": 5950, "1002": 3150, "1003": 8500}
	for number, want := range balances {
		a, ok := s.Account(number)
		require.True(t, ok, number)
		assert.Truef(t, a.Balance.Equal(decimal.NewFromInt(want)), "%s: %s", number, a.Balance)
	}
	assert.True(t, s.TotalBalance().Equal(decimal.NewFromInt(18750)))

	text := out.String()
	assert.Contains(t, text, "Successfully transferred $250.00 to account 1001")
	assert.Contains(t, text, "- Transfer to 1001\n")
	assert.NotContains(t, text, "(Transfer to savings)")
	assert.Contains(t, text, "=== Transaction History for Account 1001 ===")
	assert.Contains(t, text, "Total Customers: 3")
	assert.Contains(t, text, "Total Bank Balance: $18750.00")
}

func TestRunMenu(t *testing.T) {
	s := store.New()
	out := run(t, s,
		"1", "Ada", "Lovelace", "ada@example.com", "555-0100", "1 Analytical Way", "1815-12-10",
		"2", "1", "2", "300",
		"2", "1", "1", "0",
		"3", "1000", "$50.25", "",
		"4", "1000", "1000", "Rent",
		"5", "1000", "1001", "100", "",
		"6", "1000",
		"7", "1001",
		"8",
		"9",
		"10",
		"0",
	)

	assert.Contains(t, out, "Customer created successfully: Customer ID: 1, Name: Ada Lovelace")
	assert.Contains(t, out, "Account created successfully: Account: 1000, Type: Checking, Balance: $300.00")
	assert.Contains(t, out, "Successfully deposited $50.25. New balance: $350.25")
	assert.Contains(t, out, "Withdrawal failed: Insufficient funds.")
	assert.Contains(t, out, "Successfully transferred $100.00 to account 1001")
	assert.Contains(t, out, "Account Holder: Ada Lovelace")
	assert.Contains(t, out, "Transfer from 1000")
	assert.Contains(t, out, "Active Accounts: 2")
	assert.Contains(t, out, "Total Bank Balance: $350.25")
	assert.True(t, strings.HasSuffix(out, "Thank you for banking with Test Bank!\n"))

	a, _ := s.Account("1000")
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("250.25")))
}

func TestRunRejectsBadInput(t *testing.T) {
	s := store.New()
	out := run(t, s,
		"42",
		"1", "A", "B", "", "", "", "15/05/1985",
		"2", "x",
		"2", "1", "9",
		"2", "7", "1", "10",
		"3", "1000", "ten", "",
		"5", "1000", "1000", "1", "",
		"6", "5555",
		"7", "5555",
	)

	assert.Contains(t, out, "Invalid choice. Please try again.")
	assert.Contains(t, out, "Invalid date format.")
	assert.Contains(t, out, "Invalid customer ID.")
	assert.Contains(t, out, "Invalid account type.")
	assert.Contains(t, out, "Customer not found.")
	assert.Contains(t, out, "Invalid amount.")
	assert.Contains(t, out, "Transfer failed: Account not found.")
	assert.Equal(t, 3, strings.Count(out, "Account not found.\n"))
	assert.Empty(t, s.Customers())
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	s := store.New()
	out := run(t, s, "1", "Half")
	assert.Empty(t, s.Customers())
	assert.NotContains(t, out, "Thank you")
}

func TestRunRefusesHugeAmounts(t *testing.T) {
	s := store.New()
	out := run(t, s,
		"1", "A", "B", "", "", "", "1990-01-01",
		"2", "1", "2", "100",
		"3", "1000", "1e50000000", "",
		"2", "1", "1", "1e-50000000",
		"0",
	)
	assert.Equal(t, 2, strings.Count(out, "Amount must be positive, with at most 8 decimal places and 18 whole digits."))
	a, _ := s.Account("1000")
	assert.True(t, a.Balance.Equal(decimal.NewFromInt(100)))
	assert.Len(t, s.Accounts(), 1)
}
