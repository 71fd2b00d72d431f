package store

import "errors"

// Failure taxonomy of the ledger. Every refused operation wraps exactly one of these.
var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidDestination = errors.New("invalid destination account")
	ErrInvalidAccountType = errors.New("invalid account type")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrCustomerNotFound, "CustomerNotFound"},
	{ErrAccountNotFound, "AccountNotFound"},
	{ErrAccountInactive, "AccountInactive"},
	{ErrInvalidAmount, "InvalidAmount"},
	{ErrInsufficientFunds, "InsufficientFunds"},
	{ErrInvalidDestination, "InvalidDestination"},
	{ErrInvalidAccountType, "InvalidAccountType"},
}

// Code names the taxonomy entry err wraps, or "" if it wraps none of them.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
