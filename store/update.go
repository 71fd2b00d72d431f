package store

import (
	"go-bankledger/models"

	"github.com/shopspring/decimal"
)

// Ledger is the store seen from inside a write lock held by Update. Its
// methods behave like the Store methods of the same name.
type Ledger struct {
	s *Store
}

// Update runs fn under the store's write lock and, if fn succeeds, returns
// a snapshot taken before the lock is released. Callers get the state their
// own mutation produced, never a later one.
func (s *Store) Update(fn func(l Ledger) error) (models.Bank, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := fn(Ledger{s: s}); err != nil {
		return models.Bank{}, err
	}
	return s.snapshotLocked(), nil
}

func (l Ledger) CreateCustomer(in NewCustomer) models.Customer {
	return l.s.createCustomerLocked(in)
}

func (l Ledger) CreateAccount(customerID int, accountType models.AccountType, initialBalance decimal.Decimal) (models.Account, error) {
	if err := checkOpening(accountType, initialBalance); err != nil {
		return models.Account{}, err
	}
	return l.s.createAccountLocked(customerID, accountType, initialBalance)
}

func (l Ledger) Deposit(number string, amount decimal.Decimal, description string) (models.Transaction, error) {
	if err := validAmount(amount); err != nil {
		return models.Transaction{}, err
	}
	return l.s.depositLocked(number, amount, description)
}

func (l Ledger) Withdraw(number string, amount decimal.Decimal, description string) (models.Transaction, error) {
	if err := validAmount(amount); err != nil {
		return models.Transaction{}, err
	}
	return l.s.withdrawLocked(number, amount, description)
}

func (l Ledger) Transfer(from, to string, amount decimal.Decimal, description string) (models.TransferReceipt, error) {
	if err := validAmount(amount); err != nil {
		return models.TransferReceipt{}, err
	}
	return l.s.transferLocked(from, to, amount, description)
}

// Deactivate returns the account as it stands after deactivation
func (l Ledger) Deactivate(number string) (models.Account, error) {
	account, err := l.s.deactivateLocked(number)
	if err != nil {
		return models.Account{}, err
	}
	return cloneAccount(account), nil
}

// Account reads an account inside the same critical section
func (l Ledger) Account(number string) (models.Account, bool) {
	account, exists := l.s.accounts[number]
	if !exists {
		return models.Account{}, false
	}
	return cloneAccount(account), true
}
