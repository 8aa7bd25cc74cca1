// Package bank holds the customer/account registry. Ledger is the pure,
// single-threaded core; Service wraps it with the serialization, logging and
// event publishing the surrounding layers need.
package bank

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/domain/customer"
	"bank-ledger/internal/pkg/apperrors"
)

// Ledger is the customer directory plus the shared account-number sequence.
// It performs no I/O and no locking; callers serialize access.
type Ledger struct {
	customers []*customer.Customer
	seq       *account.Sequence
}

func NewLedger() *Ledger {
	return &Ledger{seq: account.NewSequence()}
}

// findCustomer scans in insertion order; a blank personal number never
// matches. Uniqueness is enforced at registration, so first match wins.
func (l *Ledger) findCustomer(personalNumber string) *customer.Customer {
	if strings.TrimSpace(personalNumber) == "" {
		return nil
	}
	for _, c := range l.customers {
		if c.PersonalNumber() == personalNumber {
			return c
		}
	}
	return nil
}

func (l *Ledger) findAccount(personalNumber string, accountNumber int) (account.Account, error) {
	c := l.findCustomer(personalNumber)
	if c == nil {
		return nil, fmt.Errorf("%w: customer %q", apperrors.ErrNotFound, personalNumber)
	}
	a := c.FindAccount(accountNumber)
	if a == nil {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountNumber)
	}
	return a, nil
}

// RegisterCustomer appends a new customer unless the personal number is
// blank or already taken.
func (l *Ledger) RegisterCustomer(firstName, lastName, personalNumber string) error {
	if strings.TrimSpace(personalNumber) == "" {
		return fmt.Errorf("%w: personal number cannot be blank", apperrors.ErrInvalidArgument)
	}
	if l.findCustomer(personalNumber) != nil {
		return fmt.Errorf("%w: customer %q", apperrors.ErrAlreadyExists, personalNumber)
	}
	l.customers = append(l.customers, customer.New(firstName, lastName, personalNumber))
	return nil
}

// RenameCustomer requires at least one non-blank name before it even looks
// the customer up.
func (l *Ledger) RenameCustomer(firstName, lastName, personalNumber string) error {
	if strings.TrimSpace(firstName) == "" && strings.TrimSpace(lastName) == "" {
		return fmt.Errorf("%w: both names are blank", apperrors.ErrInvalidArgument)
	}
	c := l.findCustomer(personalNumber)
	if c == nil {
		return fmt.Errorf("%w: customer %q", apperrors.ErrNotFound, personalNumber)
	}
	c.Rename(firstName, lastName)
	return nil
}

// OpenSavingsAccount creates a savings account with the default terms for an
// existing customer and returns the consumed account number.
func (l *Ledger) OpenSavingsAccount(personalNumber string) (int, error) {
	c := l.findCustomer(personalNumber)
	if c == nil {
		return 0, fmt.Errorf("%w: customer %q", apperrors.ErrNotFound, personalNumber)
	}
	a := account.NewSavings(l.seq)
	c.AddAccount(a)
	return a.Number(), nil
}

// OpenCreditAccount creates a credit account with the default terms for an
// existing customer and returns the consumed account number.
func (l *Ledger) OpenCreditAccount(personalNumber string) (int, error) {
	c := l.findCustomer(personalNumber)
	if c == nil {
		return 0, fmt.Errorf("%w: customer %q", apperrors.ErrNotFound, personalNumber)
	}
	a := account.NewCredit(l.seq)
	c.AddAccount(a)
	return a.Number(), nil
}

// Deposit rejects non-positive amounts before any lookup.
func (l *Ledger) Deposit(personalNumber string, accountNumber int, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrInvalidArgument)
	}
	a, err := l.findAccount(personalNumber, accountNumber)
	if err != nil {
		return err
	}
	a.Deposit(amount)
	return nil
}

// Withdraw rejects non-positive amounts before any lookup, then delegates to
// the account's own policy.
func (l *Ledger) Withdraw(personalNumber string, accountNumber int, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrInvalidArgument)
	}
	a, err := l.findAccount(personalNumber, accountNumber)
	if err != nil {
		return err
	}
	return a.Withdraw(amount)
}

// CloseAccount captures "<summary> <interest>", purges the transaction log
// and detaches the account.
func (l *Ledger) CloseAccount(personalNumber string, accountNumber int) (string, error) {
	c := l.findCustomer(personalNumber)
	if c == nil {
		return "", fmt.Errorf("%w: customer %q", apperrors.ErrNotFound, personalNumber)
	}
	a := c.FindAccount(accountNumber)
	if a == nil {
		return "", fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountNumber)
	}

	result := a.Summary() + " " + a.Interest()
	a.ClearTransactions()
	c.RemoveAccount(accountNumber)
	return result, nil
}

// DeleteCustomer removes the customer and every owned account. The returned
// report starts with the customer summary followed by one closing line per
// account; each account's transaction log is purged on the way out.
func (l *Ledger) DeleteCustomer(personalNumber string) ([]string, error) {
	c := l.findCustomer(personalNumber)
	if c == nil {
		return nil, fmt.Errorf("%w: customer %q", apperrors.ErrNotFound, personalNumber)
	}

	report := []string{c.Summary()}
	for _, a := range c.Accounts() {
		report = append(report, a.Summary()+" "+a.Interest())
		a.ClearTransactions()
	}
	c.ClearAccounts()

	for i, cand := range l.customers {
		if cand == c {
			l.customers = append(l.customers[:i], l.customers[i+1:]...)
			break
		}
	}
	return report, nil
}

// AccountSummary returns the account's summary line.
func (l *Ledger) AccountSummary(personalNumber string, accountNumber int) (string, error) {
	a, err := l.findAccount(personalNumber, accountNumber)
	if err != nil {
		return "", err
	}
	return a.Summary(), nil
}

// AccountNumbers lists a customer's account numbers as strings. An unknown
// customer yields an empty list, never an error.
func (l *Ledger) AccountNumbers(personalNumber string) []string {
	c := l.findCustomer(personalNumber)
	if c == nil {
		return []string{}
	}
	numbers := make([]string, 0, len(c.Accounts()))
	for _, a := range c.Accounts() {
		numbers = append(numbers, strconv.Itoa(a.Number()))
	}
	return numbers
}

// Customers returns every customer summary in insertion order as an
// independent copy.
func (l *Ledger) Customers() []string {
	summaries := make([]string, 0, len(l.customers))
	for _, c := range l.customers {
		summaries = append(summaries, c.Summary())
	}
	return summaries
}

// CustomerDetail returns the customer summary followed by every owned
// account's summary.
func (l *Ledger) CustomerDetail(personalNumber string) ([]string, error) {
	c := l.findCustomer(personalNumber)
	if c == nil {
		return nil, fmt.Errorf("%w: customer %q", apperrors.ErrNotFound, personalNumber)
	}
	detail := []string{c.Summary()}
	for _, a := range c.Accounts() {
		detail = append(detail, a.Summary())
	}
	return detail, nil
}

// Transactions returns an independent copy of the account's log.
func (l *Ledger) Transactions(personalNumber string, accountNumber int) ([]string, error) {
	a, err := l.findAccount(personalNumber, accountNumber)
	if err != nil {
		return nil, err
	}
	return append([]string{}, a.Transactions()...), nil
}
