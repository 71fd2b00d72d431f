// Package console is the text front end: a scripted demo and an interactive
// menu that read free-form input and print results as plain lines.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go-bankledger/models"
	"go-bankledger/store"

	"github.com/shopspring/decimal"
)

type Console struct {
	store    *store.Store
	in       *bufio.Scanner
	out      io.Writer
	bankName string
}

func New(s *store.Store, in io.Reader, out io.Writer, bankName string) *Console {
	return &Console{
		store:    s,
		in:       bufio.NewScanner(in),
		out:      out,
		bankName: bankName,
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func money(v decimal.Decimal) string {
	return "$" + v.StringFixed(2)
}

// describe turns a ledger refusal into a sentence for the operator
func describe(err error) string {
	switch {
	case errors.Is(err, store.ErrCustomerNotFound):
		return "Customer not found."
	case errors.Is(err, store.ErrAccountNotFound):
		return "Account not found."
	case errors.Is(err, store.ErrAccountInactive):
		return "Account is inactive."
	case errors.Is(err, store.ErrInvalidAmount):
		return "Amount must be positive, with at most 8 decimal places and 18 whole digits."
	case errors.Is(err, store.ErrInsufficientFunds):
		return "Insufficient funds."
	case errors.Is(err, store.ErrInvalidDestination):
		return "Invalid destination account."
	case errors.Is(err, store.ErrInvalidAccountType):
		return "Invalid account type."
	}
	return "Operation failed: " + err.Error()
}

func (c *Console) createCustomer(in store.NewCustomer) models.Customer {
	customer := c.store.CreateCustomer(in)
	c.printf("Customer created successfully: Customer ID: %d, Name: %s, Email: %s, Phone: %s\n",
		customer.ID, customer.FullName(), customer.Email, customer.Phone)
	return customer
}

func (c *Console) createAccount(customerID int, t models.AccountType, initial decimal.Decimal) (models.Account, bool) {
	account, err := c.store.CreateAccount(customerID, t, initial)
	if err != nil {
		c.printf("%s\n", describe(err))
		return models.Account{}, false
	}
	c.printf("Account created successfully: %s\n", accountLine(account))
	return account, true
}

func (c *Console) deposit(number string, amount decimal.Decimal, description string) {
	tx, err := c.store.Deposit(number, amount, description)
	if err != nil {
		c.printf("Deposit failed: %s\n", describe(err))
		return
	}
	c.printf("Successfully deposited %s. New balance: %s\n", money(tx.Amount), money(*tx.BalanceAfter))
}

func (c *Console) withdraw(number string, amount decimal.Decimal, description string) {
	tx, err := c.store.Withdraw(number, amount, description)
	if err != nil {
		c.printf("Withdrawal failed: %s\n", describe(err))
		return
	}
	c.printf("Successfully withdrew %s. New balance: %s\n", money(tx.Amount), money(*tx.BalanceAfter))
}

func (c *Console) transfer(from, to string, amount decimal.Decimal, description string) {
	if _, err := c.store.Transfer(from, to, amount, description); err != nil {
		c.printf("Transfer failed: %s\n", describe(err))
		return
	}
	c.printf("Successfully transferred %s to account %s\n", money(amount), to)
}

func accountLine(a models.Account) string {
	return fmt.Sprintf("Account: %s, Type: %s, Balance: %s, Status: %s", a.Number, a.Type, money(a.Balance), a.Status())
}

func transactionLine(tx models.Transaction) string {
	sign := "+"
	if tx.Direction == models.Debit {
		sign = "-"
	}
	return fmt.Sprintf("[%s] %s: %s%s - %s", tx.Timestamp.Format("2006-01-02 15:04:05"), tx.Type, sign, money(tx.Amount), tx.Description)
}

func (c *Console) showBalance(number string) {
	account, ok := c.store.Account(number)
	if !ok {
		c.printf("Account not found.\n")
		return
	}
	owner, _ := c.store.Customer(account.CustomerID)
	c.printf("\nAccount Details:\n")
	c.printf("Account Number: %s\n", account.Number)
	c.printf("Account Holder: %s\n", owner.FullName())
	c.printf("Account Type: %s\n", account.Type)
	c.printf("Current Balance: %s\n", money(account.Balance))
	c.printf("Status: %s\n", account.Status())
}

func (c *Console) showHistory(number string) {
	if _, ok := c.store.Account(number); !ok {
		c.printf("Account not found.\n")
		return
	}
	c.printf("\n=== Transaction History for Account %s ===\n", number)
	txs := c.store.Transactions(number)
	if len(txs) == 0 {
		c.printf("No transactions found.\n")
		return
	}
	for _, tx := range txs {
		c.printf("%s\n", transactionLine(tx))
	}
}

func (c *Console) showCustomers() {
	c.printf("\n=== All Customers in %s ===\n", c.bankName)
	customers := c.store.Customers()
	if len(customers) == 0 {
		c.printf("No customers found.\n")
		return
	}
	for _, customer := range customers {
		c.printf("Customer ID: %d, Name: %s, Email: %s, Phone: %s\n",
			customer.ID, customer.FullName(), customer.Email, customer.Phone)
		accounts := c.store.AccountsByCustomer(customer.ID)
		if len(accounts) > 0 {
			c.printf("  Accounts:\n")
			for _, a := range accounts {
				c.printf("    %s\n", accountLine(a))
			}
		}
		c.printf("\n")
	}
}

func (c *Console) showAccounts() {
	c.printf("\n=== All Accounts in %s ===\n", c.bankName)
	accounts := c.store.Accounts()
	if len(accounts) == 0 {
		c.printf("No accounts found.\n")
		return
	}
	for _, a := range accounts {
		owner, _ := c.store.Customer(a.CustomerID)
		c.printf("%s - Owner: %s\n", accountLine(a), owner.FullName())
	}
}

func (c *Console) showSummary() {
	s := c.store.Summary()
	c.printf("\n=== %s Summary ===\n", c.bankName)
	c.printf("Total Customers: %d\n", s.Customers)
	c.printf("Total Accounts: %d\n", s.Accounts)
	c.printf("Active Accounts: %d\n", s.ActiveAccounts)
	c.printf("Total Bank Balance: %s\n", money(s.TotalBalance))
}

// prompt prints label and reads one trimmed line; ok is false at end of input
func (c *Console) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "$"))
}
