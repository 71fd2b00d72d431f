package store

import (
	"fmt"

	"go-bankledger/models"

	"github.com/shopspring/decimal"
)

const (
	initialDepositDescription = "Initial deposit"
	rollbackDescription       = "Transfer rollback"

	// amounts finer than a hundred-millionth or with more than 18 integer
	// digits are refused before any arithmetic touches a balance
	maxAmountScale         = 8
	maxAmountIntegerDigits = 18
)

// validAmount rejects amounts whose scale would make balance arithmetic
// unbounded. Sign is checked separately, in the order each operation needs.
func validAmount(amount decimal.Decimal) error {
	exp := int(amount.Exponent())
	if exp < -maxAmountScale {
		return fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, maxAmountScale)
	}
	if exp > maxAmountIntegerDigits || amount.NumDigits()+exp > maxAmountIntegerDigits {
		return fmt.Errorf("%w: amount exceeds %d integer digits", ErrInvalidAmount, maxAmountIntegerDigits)
	}
	return nil
}

// CreateAccount opens an account for an existing customer. A positive
// initial balance is recorded as an "Initial deposit" transaction.
func (s *Store) CreateAccount(customerID int, accountType models.AccountType, initialBalance decimal.Decimal) (models.Account, error) {
	if err := checkOpening(accountType, initialBalance); err != nil {
		return models.Account{}, err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.createAccountLocked(customerID, accountType, initialBalance)
}

// Deposit credits amount to an active account
func (s *Store) Deposit(number string, amount decimal.Decimal, description string) (models.Transaction, error) {
	if err := validAmount(amount); err != nil {
		return models.Transaction{}, err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.depositLocked(number, amount, description)
}

// Withdraw debits amount from an active account that can cover it
func (s *Store) Withdraw(number string, amount decimal.Decimal, description string) (models.Transaction, error) {
	if err := validAmount(amount); err != nil {
		return models.Transaction{}, err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.withdrawLocked(number, amount, description)
}

// Transfer moves amount between two active accounts. The debit and credit
// legs run inside one critical section; if the credit leg is refused after
// the debit, the source is credited back with a rollback entry and the
// transfer fails.
func (s *Store) Transfer(from, to string, amount decimal.Decimal, description string) (models.TransferReceipt, error) {
	if err := validAmount(amount); err != nil {
		return models.TransferReceipt{}, err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.transferLocked(from, to, amount, description)
}

// Deactivate closes an account for good. Deactivating twice is a no-op.
func (s *Store) Deactivate(number string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, err := s.deactivateLocked(number)
	return err
}

func checkOpening(accountType models.AccountType, initialBalance decimal.Decimal) error {
	if !accountType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAccountType, accountType)
	}
	if err := validAmount(initialBalance); err != nil {
		return err
	}
	if initialBalance.IsNegative() {
		return fmt.Errorf("%w: initial balance %s is negative", ErrInvalidAmount, initialBalance)
	}
	return nil
}

func (s *Store) createAccountLocked(customerID int, accountType models.AccountType, initialBalance decimal.Decimal) (models.Account, error) {
	if _, exists := s.customerLocked(customerID); !exists {
		return models.Account{}, fmt.Errorf("%w: %d", ErrCustomerNotFound, customerID)
	}

	now := s.now()
	account := &models.Account{
		Number:     s.allocateAccountNumber(),
		CustomerID: customerID,
		Type:       accountType,
		Balance:    decimal.Zero,
		CreatedAt:  now,
		Active:     true,
	}
	if initialBalance.IsPositive() {
		s.appendLocked(account, models.Transaction{
			Type:        models.Deposit,
			Direction:   models.Credit,
			Amount:      initialBalance,
			Description: initialDepositDescription,
			Timestamp:   now,
		})
	}

	s.accounts[account.Number] = account
	s.accountOrder = append(s.accountOrder, account.Number)
	return cloneAccount(account), nil
}

func (s *Store) depositLocked(number string, amount decimal.Decimal, description string) (models.Transaction, error) {
	account, err := s.activeAccountLocked(number)
	if err != nil {
		return models.Transaction{}, err
	}
	if !amount.IsPositive() {
		return models.Transaction{}, fmt.Errorf("%w: deposit of %s", ErrInvalidAmount, amount)
	}
	if description == "" {
		description = "Deposit"
	}
	return s.appendLocked(account, models.Transaction{
		Type:        models.Deposit,
		Direction:   models.Credit,
		Amount:      amount,
		Description: description,
		Timestamp:   s.now(),
	}), nil
}

func (s *Store) withdrawLocked(number string, amount decimal.Decimal, description string) (models.Transaction, error) {
	account, err := s.activeAccountLocked(number)
	if err != nil {
		return models.Transaction{}, err
	}
	if !amount.IsPositive() {
		return models.Transaction{}, fmt.Errorf("%w: withdrawal of %s", ErrInvalidAmount, amount)
	}
	if account.Balance.LessThan(amount) {
		return models.Transaction{}, fmt.Errorf("%w: account %s holds %s, requested %s",
			ErrInsufficientFunds, number, account.Balance, amount)
	}
	if description == "" {
		description = "Withdrawal"
	}
	return s.appendLocked(account, models.Transaction{
		Type:        models.Withdrawal,
		Direction:   models.Debit,
		Amount:      amount,
		Description: description,
		Timestamp:   s.now(),
	}), nil
}

func (s *Store) transferLocked(from, to string, amount decimal.Decimal, description string) (models.TransferReceipt, error) {
	source, err := s.activeAccountLocked(from)
	if err != nil {
		return models.TransferReceipt{}, fmt.Errorf("source: %w", err)
	}
	if to == "" || to == from {
		return models.TransferReceipt{}, fmt.Errorf("%w: %q", ErrInvalidDestination, to)
	}
	if _, err := s.activeAccountLocked(to); err != nil {
		return models.TransferReceipt{}, fmt.Errorf("destination: %w", err)
	}
	if !amount.IsPositive() {
		return models.TransferReceipt{}, fmt.Errorf("%w: transfer of %s", ErrInvalidAmount, amount)
	}
	if source.Balance.LessThan(amount) {
		return models.TransferReceipt{}, fmt.Errorf("%w: account %s holds %s, requested %s",
			ErrInsufficientFunds, from, source.Balance, amount)
	}

	now := s.now()
	memo := transferMemo(description)
	debit := s.appendLocked(source, models.Transaction{
		Type:         models.Transfer,
		Direction:    models.Debit,
		Amount:       amount,
		Description:  "Transfer to " + to,
		Memo:         memo,
		Counterparty: to,
		Timestamp:    now,
	})

	if s.onDebited != nil {
		s.onDebited(from, to)
	}

	destination, err := s.activeAccountLocked(to)
	if err != nil {
		s.appendLocked(source, models.Transaction{
			Type:         models.Deposit,
			Direction:    models.Credit,
			Amount:       amount,
			Description:  rollbackDescription,
			Memo:         memo,
			Counterparty: to,
			Rollback:     true,
			Timestamp:    now,
		})
		return models.TransferReceipt{}, fmt.Errorf("destination: %w", err)
	}
	credit := s.appendLocked(destination, models.Transaction{
		Type:         models.Transfer,
		Direction:    models.Credit,
		Amount:       amount,
		Description:  "Transfer from " + from,
		Memo:         memo,
		Counterparty: from,
		Timestamp:    now,
	})

	return models.TransferReceipt{Debit: debit, Credit: credit}, nil
}

func (s *Store) deactivateLocked(number string) (*models.Account, error) {
	account, exists := s.accounts[number]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, number)
	}
	account.Active = false
	return account, nil
}

func (s *Store) activeAccountLocked(number string) (*models.Account, error) {
	account, exists := s.accounts[number]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, number)
	}
	if !account.Active {
		return nil, fmt.Errorf("%w: %s", ErrAccountInactive, number)
	}
	return account, nil
}

// appendLocked assigns the next transaction ID and applies tx to the balance
// and history together. Callers have already checked that a debit is covered.
func (s *Store) appendLocked(account *models.Account, tx models.Transaction) models.Transaction {
	tx.ID = s.allocateTransactionID()
	account.Balance = account.Balance.Add(tx.Signed())
	after := account.Balance
	tx.BalanceAfter = &after
	account.Transactions = append(account.Transactions, tx)
	return cloneTransactions([]models.Transaction{tx})[0]
}

// transferMemo keeps the caller's note apart from the leg descriptions;
// the bare word "Transfer" carries nothing and is dropped.
func transferMemo(description string) string {
	if description == "Transfer" {
		return ""
	}
	return description
}
