// Package customer models a bank customer and the accounts they own. An
// account belongs to exactly one customer for its lifetime.
package customer

import (
	"fmt"
	"strings"

	"bank-ledger/internal/domain/account"
)

type Customer struct {
	FirstName      string
	LastName       string
	personalNumber string
	accounts       []account.Account
}

// New creates a customer with no accounts. The personal number is immutable
// afterwards; it is the lookup key across the whole bank.
func New(firstName, lastName, personalNumber string) *Customer {
	return &Customer{
		FirstName:      firstName,
		LastName:       lastName,
		personalNumber: personalNumber,
	}
}

func (c *Customer) PersonalNumber() string {
	return c.personalNumber
}

// Rename updates each name only when the replacement is non-blank and
// reports whether anything changed.
func (c *Customer) Rename(firstName, lastName string) bool {
	updated := false
	if strings.TrimSpace(firstName) != "" {
		c.FirstName = firstName
		updated = true
	}
	if strings.TrimSpace(lastName) != "" {
		c.LastName = lastName
		updated = true
	}
	return updated
}

// Accounts returns the live owned collection. Privileged registry access
// only; the registry copies anything it exposes past its boundary.
func (c *Customer) Accounts() []account.Account {
	return c.accounts
}

func (c *Customer) AddAccount(a account.Account) {
	c.accounts = append(c.accounts, a)
}

// RemoveAccount detaches the account with the given number and reports
// whether it was present.
func (c *Customer) RemoveAccount(number int) bool {
	for i, a := range c.accounts {
		if a.Number() == number {
			c.accounts = append(c.accounts[:i], c.accounts[i+1:]...)
			return true
		}
	}
	return false
}

// FindAccount returns the owned account with the given number, or nil.
func (c *Customer) FindAccount(number int) account.Account {
	for _, a := range c.accounts {
		if a.Number() == number {
			return a
		}
	}
	return nil
}

// ClearAccounts empties the owned collection. The caller has already purged
// each account's transaction log and captured any needed summary.
func (c *Customer) ClearAccounts() {
	c.accounts = nil
}

// Summary renders "<personalNumber> <firstName> <lastName>".
func (c *Customer) Summary() string {
	return fmt.Sprintf("%s %s %s", c.personalNumber, c.FirstName, c.LastName)
}
