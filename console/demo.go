package console

import (
	"fmt"
	"strings"
	"time"

	"go-bankledger/models"
	"go-bankledger/store"

	"github.com/shopspring/decimal"
)

var rule = strings.Repeat("=", 50)

func dob(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Demo runs the scripted walkthrough: three customers, four accounts, a
// round of deposits, withdrawals and transfers, then every report.
func (c *Console) Demo() error {
	c.printf("=== Welcome to %s ===\n\n", c.bankName)

	john := c.createCustomer(store.NewCustomer{
		FirstName: "John", LastName: "Doe", Email: "john.doe@email.com",
		Phone: "555-0123", Address: "123 Main St", DateOfBirth: dob(1985, time.May, 15),
	})
	jane := c.createCustomer(store.NewCustomer{
		FirstName: "Jane", LastName: "Smith", Email: "jane.smith@email.com",
		Phone: "555-0456", Address: "456 Oak Ave", DateOfBirth: dob(1990, time.August, 22),
	})
	bob := c.createCustomer(store.NewCustomer{
		FirstName: "Bob", LastName: "Johnson", Email: "bob.johnson@email.com",
		Phone: "555-0789", Address: "789 Pine Rd", DateOfBirth: dob(1978, time.December, 3),
	})
	c.printf("\n%s\n", rule)

	opening := []struct {
		owner   models.Customer
		kind    models.AccountType
		balance int64
	}{
		{john, models.Checking, 1000},
		{john, models.Savings, 5000},
		{jane, models.Checking, 2500},
		{bob, models.Business, 10000},
	}
	numbers := make([]string, 0, len(opening))
	for _, o := range opening {
		account, ok := c.createAccount(o.owner.ID, o.kind, decimal.NewFromInt(o.balance))
		if !ok {
			return fmt.Errorf("demo: open %s account for customer %d", o.kind, o.owner.ID)
		}
		numbers = append(numbers, account.Number)
	}
	acc1, acc2, acc3, acc4 := numbers[0], numbers[1], numbers[2], numbers[3]
	c.printf("\n%s\n", rule)

	c.printf("\n=== Banking Operations Demo ===\n")
	c.deposit(acc1, decimal.NewFromInt(500), "Salary deposit")
	c.deposit(acc2, decimal.NewFromInt(1000), "Bonus deposit")
	c.deposit(acc3, decimal.NewFromInt(750), "Freelance payment")
	c.printf("\n")

	c.withdraw(acc1, decimal.NewFromInt(200), "ATM withdrawal")
	c.withdraw(acc2, decimal.NewFromInt(300), "Online purchase")
	c.withdraw(acc4, decimal.NewFromInt(1500), "Business expense")
	c.printf("\n")

	c.transfer(acc1, acc2, decimal.NewFromInt(250), "Transfer to savings")
	c.transfer(acc3, acc1, decimal.NewFromInt(100), "Payment to John")
	c.printf("\n%s\n", rule)

	c.showHistory(acc1)
	c.showHistory(acc2)
	c.printf("\n%s\n", rule)

	c.showCustomers()
	c.showAccounts()
	c.showSummary()
	c.printf("\n%s\n", rule)
	return nil
}
