package console

import (
	"strconv"
	"strings"

	"go-bankledger/actions"
	"go-bankledger/models"
	"go-bankledger/store"

	"github.com/shopspring/decimal"
)

// Run drives the interactive menu until the operator picks 0 or input ends.
func (c *Console) Run() error {
	c.printf("=== Welcome to %s ===\n", c.bankName)
	for {
		c.printMenu()
		choice, ok := c.prompt("\nEnter your choice: ")
		if !ok {
			return c.in.Err()
		}

		var more bool
		switch choice {
		case "1":
			more = c.menuCreateCustomer()
		case "2":
			more = c.menuCreateAccount()
		case "3":
			more = c.menuMoney("Deposit Money", "Deposit amount: $", c.deposit)
		case "4":
			more = c.menuMoney("Withdraw Money", "Withdrawal amount: $", c.withdraw)
		case "5":
			more = c.menuTransfer()
		case "6":
			more = c.menuAccount("View Account Balance", c.showBalance)
		case "7":
			more = c.menuAccount("View Transaction History", c.showHistory)
		case "8":
			c.showCustomers()
			more = true
		case "9":
			c.showAccounts()
			more = true
		case "10":
			c.showSummary()
			more = true
		case "0":
			c.printf("Thank you for banking with %s!\n", c.bankName)
			return nil
		default:
			c.printf("Invalid choice. Please try again.\n")
			more = true
		}
		if !more {
			return c.in.Err()
		}
	}
}

func (c *Console) printMenu() {
	c.printf("\n=== Main Menu ===\n")
	c.printf("1. Create Customer\n")
	c.printf("2. Create Account\n")
	c.printf("3. Deposit Money\n")
	c.printf("4. Withdraw Money\n")
	c.printf("5. Transfer Money\n")
	c.printf("6. View Account Balance\n")
	c.printf("7. View Transaction History\n")
	c.printf("8. View All Customers\n")
	c.printf("9. View All Accounts\n")
	c.printf("10. Bank Summary\n")
	c.printf("0. Exit\n")
}

// ask reads each label in turn; ok is false if input ran out part way
func (c *Console) ask(labels ...string) ([]string, bool) {
	answers := make([]string, 0, len(labels))
	for _, label := range labels {
		v, ok := c.prompt(label)
		if !ok {
			return nil, false
		}
		answers = append(answers, v)
	}
	return answers, true
}

func (c *Console) menuCreateCustomer() bool {
	c.printf("\n=== Create New Customer ===\n")
	a, ok := c.ask("First Name: ", "Last Name: ", "Email: ", "Phone: ", "Address: ", "Date of Birth (yyyy-mm-dd): ")
	if !ok {
		return false
	}
	dob, err := actions.ParseDate(a[5])
	if err != nil {
		c.printf("Invalid date format.\n")
		return true
	}
	c.createCustomer(store.NewCustomer{
		FirstName:   a[0],
		LastName:    a[1],
		Email:       a[2],
		Phone:       a[3],
		Address:     a[4],
		DateOfBirth: dob,
	})
	return true
}

func (c *Console) menuCreateAccount() bool {
	c.printf("\n=== Create New Account ===\n")
	raw, ok := c.prompt("Customer ID: ")
	if !ok {
		return false
	}
	customerID, err := strconv.Atoi(raw)
	if err != nil {
		c.printf("Invalid customer ID.\n")
		return true
	}

	c.printf("Account Types:\n")
	for i, t := range models.AccountTypes {
		c.printf("%d. %s\n", i+1, t)
	}
	raw, ok = c.prompt("Choose account type (1-4): ")
	if !ok {
		return false
	}
	choice, err := strconv.Atoi(raw)
	if err != nil || choice < 1 || choice > len(models.AccountTypes) {
		c.printf("Invalid account type.\n")
		return true
	}

	raw, ok = c.prompt("Initial deposit amount: $")
	if !ok {
		return false
	}
	initial, err := parseAmount(raw)
	if err != nil {
		c.printf("Invalid amount.\n")
		return true
	}
	c.createAccount(customerID, models.AccountTypes[choice-1], initial)
	return true
}

func (c *Console) menuMoney(title, amountLabel string, apply func(number string, amount decimal.Decimal, description string)) bool {
	c.printf("\n=== %s ===\n", title)
	a, ok := c.ask("Account Number: ", amountLabel, "Description (optional): ")
	if !ok {
		return false
	}
	amount, err := parseAmount(a[1])
	if err != nil {
		c.printf("Invalid amount.\n")
		return true
	}
	apply(a[0], amount, a[2])
	return true
}

func (c *Console) menuTransfer() bool {
	c.printf("\n=== Transfer Money ===\n")
	a, ok := c.ask("From Account Number: ", "To Account Number: ", "Transfer amount: $", "Description (optional): ")
	if !ok {
		return false
	}
	amount, err := parseAmount(a[2])
	if err != nil {
		c.printf("Invalid amount.\n")
		return true
	}
	c.transfer(a[0], a[1], amount, a[3])
	return true
}

func (c *Console) menuAccount(title string, show func(number string)) bool {
	c.printf("\n=== %s ===\n", title)
	number, ok := c.prompt("Account Number: ")
	if !ok {
		return false
	}
	show(strings.TrimSpace(number))
	return true
}
