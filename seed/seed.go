// Package seed loads the sample customers and accounts the dashboard starts with.
package seed

import (
	"fmt"
	"time"

	"go-bankledger/models"
	"go-bankledger/store"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Sample adds two customers and three accounts to an empty store:
// John Doe with a checking account (1000 opening plus a 500 salary deposit)
// and a 5000 savings account, and Jane Smith with a 2500 checking account.
func Sample(s *store.Store) error {
	john := s.CreateCustomer(store.NewCustomer{
		FirstName:   "John",
		LastName:    "Doe",
		Email:       "john.doe@email.com",
		Phone:       "555-0123",
		Address:     "123 Main St",
		DateOfBirth: date(1985, time.May, 15),
	})
	jane := s.CreateCustomer(store.NewCustomer{
		FirstName:   "Jane",
		LastName:    "Smith",
		Email:       "jane.smith@email.com",
		Phone:       "555-0456",
		Address:     "456 Oak Ave",
		DateOfBirth: date(1990, time.August, 22),
	})

	checking, err := s.CreateAccount(john.ID, models.Checking, decimal.NewFromInt(1000))
	if err != nil {
		return fmt.Errorf("seed checking account: %w", err)
	}
	if _, err := s.Deposit(checking.Number, decimal.NewFromInt(500), "Salary deposit"); err != nil {
		return fmt.Errorf("seed salary deposit: %w", err)
	}
	if _, err := s.CreateAccount(john.ID, models.Savings, decimal.NewFromInt(5000)); err != nil {
		return fmt.Errorf("seed savings account: %w", err)
	}
	if _, err := s.CreateAccount(jane.ID, models.Checking, decimal.NewFromInt(2500)); err != nil {
		return fmt.Errorf("seed second checking account: %w", err)
	}
	return nil
}
