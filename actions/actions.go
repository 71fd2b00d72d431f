// Package actions is the dispatch-style front door to the ledger: typed
// actions in, resulting state snapshot out.
package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-bankledger/models"

	"github.com/shopspring/decimal"
)

// ErrUnknownAction is returned for an action type the dispatcher does not handle.
var ErrUnknownAction = errors.New("unknown action")

// Type names an action on the wire
type Type string

const (
	TypeCreateCustomer    Type = "CREATE_CUSTOMER"
	TypeCreateAccount     Type = "CREATE_ACCOUNT"
	TypeDeposit           Type = "DEPOSIT"
	TypeWithdraw          Type = "WITHDRAW"
	TypeTransfer          Type = "TRANSFER"
	TypeDeactivateAccount Type = "DEACTIVATE_ACCOUNT"
)

// Action is implemented by every payload type below
type Action interface {
	Type() Type
}

type CreateCustomer struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

// DateLayout is the wire format of dates of birth
const DateLayout = "2006-01-02"

// UnmarshalJSON accepts dateOfBirth as YYYY-MM-DD or RFC 3339.
func (a *CreateCustomer) UnmarshalJSON(data []byte) error {
	type plain CreateCustomer
	var raw struct {
		plain
		DateOfBirth string `json:"dateOfBirth"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = CreateCustomer(raw.plain)
	if raw.DateOfBirth == "" {
		return nil
	}
	dob, err := ParseDate(raw.DateOfBirth)
	if err != nil {
		return err
	}
	a.DateOfBirth = dob
	return nil
}

// ParseDate reads a date of birth in either supported layout
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", s)
	}
	return t, nil
}

type CreateAccount struct {
	CustomerID     int                `json:"customerId"`
	AccountType    models.AccountType `json:"accountType"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
}

type Deposit struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}

type Withdraw struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}

type Transfer struct {
	FromAccountNumber string          `json:"fromAccountNumber"`
	ToAccountNumber   string          `json:"toAccountNumber"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
}

type DeactivateAccount struct {
	AccountNumber string `json:"accountNumber"`
}

func (CreateCustomer) Type() Type    { return TypeCreateCustomer }
func (CreateAccount) Type() Type     { return TypeCreateAccount }
func (Deposit) Type() Type           { return TypeDeposit }
func (Withdraw) Type() Type          { return TypeWithdraw }
func (Transfer) Type() Type          { return TypeTransfer }
func (DeactivateAccount) Type() Type { return TypeDeactivateAccount }

type envelope struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Decode parses a {"type": ..., "payload": {...}} envelope into its typed action.
func Decode(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}
	if len(env.Payload) == 0 {
		env.Payload = json.RawMessage("{}")
	}

	var action Action
	var err error
	switch env.Type {
	case TypeCreateCustomer:
		var a CreateCustomer
		err = json.Unmarshal(env.Payload, &a)
		action = a
	case TypeCreateAccount:
		var a CreateAccount
		err = json.Unmarshal(env.Payload, &a)
		if t, perr := models.ParseAccountType(string(a.AccountType)); perr == nil {
			a.AccountType = t
		}
		action = a
	case TypeDeposit:
		var a Deposit
		err = json.Unmarshal(env.Payload, &a)
		action = a
	case TypeWithdraw:
		var a Withdraw
		err = json.Unmarshal(env.Payload, &a)
		action = a
	case TypeTransfer:
		var a Transfer
		err = json.Unmarshal(env.Payload, &a)
		action = a
	case TypeDeactivateAccount:
		var a DeactivateAccount
		err = json.Unmarshal(env.Payload, &a)
		action = a
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return action, nil
}
