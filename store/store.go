package store

import (
	"strconv"
	"sync"
	"time"

	"go-bankledger/models"

	"github.com/shopspring/decimal"
)

// DefaultAccountStart is the number given to the first account opened
const DefaultAccountStart = 1000

// Store holds in-memory data for customers, accounts, and transactions.
// A single RWMutex guards everything, so a transfer's two legs are never
// observed half-applied.
type Store struct {
	customers    []models.Customer
	accounts     map[string]*models.Account
	accountOrder []string
	mutex        sync.RWMutex

	nextCustomerID    int
	nextAccountNumber int
	nextTransactionID int64

	now func() time.Time

	// called between the debit and credit legs of a transfer, under the lock; tests only
	onDebited func(from, to string)
}

// Option configures a Store
type Option func(*Store)

// WithAccountStart sets the number assigned to the first account
func WithAccountStart(start int) Option {
	return func(s *Store) {
		s.nextAccountNumber = start
	}
}

// WithClock replaces time.Now as the source of timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty ledger
func New(opts ...Option) *Store {
	s := &Store{
		accounts:          make(map[string]*models.Account),
		nextCustomerID:    1,
		nextAccountNumber: DefaultAccountStart,
		nextTransactionID: 1,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewCustomer carries the attributes supplied when registering a customer
type NewCustomer struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Address     string
	DateOfBirth time.Time
}

// CreateCustomer registers a customer under the next sequential ID
func (s *Store) CreateCustomer(in NewCustomer) models.Customer {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.createCustomerLocked(in)
}

func (s *Store) createCustomerLocked(in NewCustomer) models.Customer {
	customer := models.Customer{
		ID:          s.nextCustomerID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		DateOfBirth: in.DateOfBirth,
		CreatedAt:   s.now(),
	}
	s.nextCustomerID++
	s.customers = append(s.customers, customer)
	return customer
}

// Customer retrieves a customer by ID
func (s *Store) Customer(id int) (models.Customer, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.customerLocked(id)
}

func (s *Store) customerLocked(id int) (models.Customer, bool) {
	// IDs are dense and start at 1
	if id < 1 || id > len(s.customers) {
		return models.Customer{}, false
	}
	return s.customers[id-1], true
}

// Customers returns every customer in creation order
func (s *Store) Customers() []models.Customer {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// Account retrieves an account by number
func (s *Store) Account(number string) (models.Account, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	account, exists := s.accounts[number]
	if !exists {
		return models.Account{}, false
	}
	return cloneAccount(account), true
}

// Accounts returns every account in creation order
func (s *Store) Accounts() []models.Account {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]models.Account, 0, len(s.accountOrder))
	for _, number := range s.accountOrder {
		out = append(out, cloneAccount(s.accounts[number]))
	}
	return out
}

// AccountsByCustomer retrieves all accounts for a customer in creation order
func (s *Store) AccountsByCustomer(customerID int) []models.Account {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	var accounts []models.Account
	for _, number := range s.accountOrder {
		if account := s.accounts[number]; account.CustomerID == customerID {
			accounts = append(accounts, cloneAccount(account))
		}
	}
	return accounts
}

// Transactions returns an account's history oldest first. Unknown accounts yield nil.
func (s *Store) Transactions(number string) []models.Transaction {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	account, exists := s.accounts[number]
	if !exists {
		return nil
	}
	return cloneTransactions(account.Transactions)
}

// TotalBalance sums the balances of active accounts
func (s *Store) TotalBalance() decimal.Decimal {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.totalBalanceLocked()
}

func (s *Store) totalBalanceLocked() decimal.Decimal {
	total := decimal.Zero
	for _, account := range s.accounts {
		if account.Active {
			total = total.Add(account.Balance)
		}
	}
	return total
}

// Summary reports bank-wide counts and the active balance total
func (s *Store) Summary() models.Summary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	active := 0
	for _, account := range s.accounts {
		if account.Active {
			active++
		}
	}
	return models.Summary{
		Customers:      len(s.customers),
		Accounts:       len(s.accounts),
		ActiveAccounts: active,
		TotalBalance:   s.totalBalanceLocked(),
	}
}

// Snapshot copies the whole ledger, counters included
func (s *Store) Snapshot() models.Bank {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() models.Bank {
	bank := models.Bank{
		Customers:         make([]models.Customer, len(s.customers)),
		Accounts:          make([]models.Account, 0, len(s.accountOrder)),
		NextCustomerID:    s.nextCustomerID,
		NextAccountNumber: s.nextAccountNumber,
		NextTransactionID: s.nextTransactionID,
	}
	copy(bank.Customers, s.customers)
	for _, number := range s.accountOrder {
		bank.Accounts = append(bank.Accounts, cloneAccount(s.accounts[number]))
	}
	return bank
}

func (s *Store) allocateAccountNumber() string {
	number := strconv.Itoa(s.nextAccountNumber)
	s.nextAccountNumber++
	return number
}

func (s *Store) allocateTransactionID() int64 {
	id := s.nextTransactionID
	s.nextTransactionID++
	return id
}

func cloneAccount(a *models.Account) models.Account {
	cp := *a
	cp.Transactions = cloneTransactions(a.Transactions)
	return cp
}

func cloneTransactions(in []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(in))
	copy(out, in)
	for i := range out {
		if out[i].BalanceAfter != nil {
			after := *out[i].BalanceAfter
			out[i].BalanceAfter = &after
		}
	}
	return out
}
