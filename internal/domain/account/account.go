// Package account models the two bank account variants and the shared
// account-number sequence. The set of variants is closed: savings and credit
// accounts differ only in their withdrawal policy and in which interest rate
// applies to the current balance.
package account

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain/money"
)

const (
	TypeSavings = "Sparkonto"
	TypeCredit  = "Kreditkonto"

	timestampLayout = "2006-01-02 15:04:05"
)

// Account is the closed polymorphic surface the registry operates on.
// Exactly two implementations exist: SavingsAccount and CreditAccount.
type Account interface {
	Number() int
	Type() string
	Balance() decimal.Decimal
	InterestRate() decimal.Decimal

	// Deposit adds any decimal to the balance and records it. Positivity is
	// the caller's responsibility; the report value exists for parity with
	// the withdrawal path and is always true for a present amount.
	Deposit(amount decimal.Decimal) bool

	// Withdraw applies the variant's feasibility policy before debiting.
	// Non-positive amounts are rejected outright.
	Withdraw(amount decimal.Decimal) error

	// Interest returns the currency-formatted interest on the current
	// balance, half-up rounded to 2 decimals before formatting.
	Interest() string

	// Summary renders "<number> <balance> <type> <percent>" using the
	// currently applicable rate.
	Summary() string

	// Transactions returns the internal log slice. Privileged registry
	// access only; the registry copies before exposing it past its boundary.
	Transactions() []string

	// ClearTransactions purges the log. Only the close/delete paths call it.
	ClearTransactions()
}

// base carries the state and primitives shared by both variants.
type base struct {
	number       int
	accountType  string
	balance      decimal.Decimal
	interestRate decimal.Decimal
	transactions []string
}

// newBase consumes the next number from seq. Restored accounts go through
// restoreBase instead and never advance the sequence.
func newBase(seq *Sequence, accountType string, interestRate decimal.Decimal) base {
	return base{
		number:       seq.Next(),
		accountType:  accountType,
		balance:      decimal.Zero,
		interestRate: interestRate,
	}
}

func restoreBase(number int, accountType string, balance, interestRate decimal.Decimal, transactions []string) base {
	return base{
		number:       number,
		accountType:  accountType,
		balance:      balance,
		interestRate: interestRate,
		transactions: append([]string(nil), transactions...),
	}
}

func (b *base) Number() int                    { return b.number }
func (b *base) Type() string                   { return b.accountType }
func (b *base) Balance() decimal.Decimal       { return b.balance }
func (b *base) InterestRate() decimal.Decimal  { return b.interestRate }
func (b *base) Transactions() []string         { return b.transactions }

func (b *base) ClearTransactions() {
	b.transactions = nil
}

func (b *base) Deposit(amount decimal.Decimal) bool {
	b.balance = b.balance.Add(amount)
	b.record(amount)
	return true
}

// subtract is the debit primitive used after a withdrawal policy passes.
// It always applies and logs the amount as a negative entry.
func (b *base) subtract(amount decimal.Decimal) {
	b.balance = b.balance.Sub(amount)
	b.record(amount.Neg())
}

// record appends "<timestamp> <signed amount> Saldo: <balance>".
func (b *base) record(amount decimal.Decimal) {
	entry := fmt.Sprintf("%s %s Saldo: %s",
		time.Now().Format(timestampLayout),
		money.FormatCurrency(amount),
		money.FormatCurrency(b.balance))
	b.transactions = append(b.transactions, entry)
}

func (b *base) summaryWith(rate decimal.Decimal) string {
	return fmt.Sprintf("%d %s %s %s",
		b.number,
		money.FormatCurrency(b.balance),
		b.accountType,
		money.FormatPercent(rate))
}

// interestOn computes balance*rate/100, half-up to 2 decimals, formatted.
func (b *base) interestOn(rate decimal.Decimal) string {
	interest := money.RoundHalfUp2(b.balance.Mul(rate).Div(money.Hundred))
	return money.FormatCurrency(interest)
}
