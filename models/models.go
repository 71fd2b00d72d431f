package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the closed set of account categories
type AccountType string

const (
	Savings    AccountType = "Savings"
	Checking   AccountType = "Checking"
	Business   AccountType = "Business"
	Investment AccountType = "Investment"
)

// AccountTypes lists every account type in menu order
var AccountTypes = []AccountType{Savings, Checking, Business, Investment}

// Valid reports whether t is one of the known account types
func (t AccountType) Valid() bool {
	switch t {
	case Savings, Checking, Business, Investment:
		return true
	}
	return false
}

// ParseAccountType matches s case-insensitively against the known account types
func ParseAccountType(s string) (AccountType, error) {
	for _, t := range AccountTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// TransactionType is the closed set of transaction categories
type TransactionType string

const (
	Deposit    TransactionType = "Deposit"
	Withdrawal TransactionType = "Withdrawal"
	Transfer   TransactionType = "Transfer"
)

// ParseTransactionType matches s case-insensitively against the known transaction types
func ParseTransactionType(s string) (TransactionType, error) {
	for _, t := range []TransactionType{Deposit, Withdrawal, Transfer} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Direction tells which way a transaction moved its account's balance
type Direction string

const (
	Credit Direction = "credit"
	Debit  Direction = "debit"
)

// Customer represents a bank customer
type Customer struct {
	ID          int       `json:"customerId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	CreatedAt   time.Time `json:"createdDate"`
}

// FullName joins first and last name
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Age returns the customer's age in whole years at now
func (c Customer) Age(now time.Time) int {
	age := now.Year() - c.DateOfBirth.Year()
	if now.Month() < c.DateOfBirth.Month() ||
		(now.Month() == c.DateOfBirth.Month() && now.Day() < c.DateOfBirth.Day()) {
		age--
	}
	return age
}

// Account represents a bank account owned by a customer
type Account struct {
	Number       string          `json:"accountNumber"`
	CustomerID   int             `json:"customerId"`
	Type         AccountType     `json:"accountType"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"createdDate"`
	Active       bool            `json:"isActive"`
	Transactions []Transaction   `json:"transactions"`
}

// Status is the human-readable lifecycle label
func (a Account) Status() string {
	if a.Active {
		return "Active"
	}
	return "Inactive"
}

// Transaction represents a single immutable entry in an account's history.
// Amount is always positive; Direction carries the sign.
type Transaction struct {
	ID           int64            `json:"transactionId"`
	Type         TransactionType  `json:"type"`
	Direction    Direction        `json:"direction"`
	Amount       decimal.Decimal  `json:"amount"`
	Description  string           `json:"description"`
	Memo         string           `json:"memo,omitempty"`
	Counterparty string           `json:"counterparty,omitempty"`
	Rollback     bool             `json:"rollback,omitempty"`
	Timestamp    time.Time        `json:"transactionDate"`
	BalanceAfter *decimal.Decimal `json:"balanceAfter,omitempty"`
}

// Signed returns the amount with the sign of its effect on the balance
func (t Transaction) Signed() decimal.Decimal {
	if t.Direction == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransferReceipt holds both legs of a completed transfer
type TransferReceipt struct {
	Debit  Transaction `json:"debit"`
	Credit Transaction `json:"credit"`
}

// Summary aggregates bank-wide counts and balances
type Summary struct {
	BankName       string          `json:"bankName,omitempty"`
	Customers      int             `json:"totalCustomers"`
	Accounts       int             `json:"totalAccounts"`
	ActiveAccounts int             `json:"activeAccounts"`
	TotalBalance   decimal.Decimal `json:"totalBalance"`
}

// Bank is a point-in-time copy of the whole ledger
type Bank struct {
	Customers         []Customer `json:"customers"`
	Accounts          []Account  `json:"accounts"`
	NextCustomerID    int        `json:"nextCustomerId"`
	NextAccountNumber int        `json:"nextAccountNumber"`
	NextTransactionID int64      `json:"nextTransactionId"`
}
