package account

import (
	"fmt"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/pkg/apperrors"
)

// Default credit terms: 1.1 % interest on deposits, 5000 kr credit limit,
// 5.0 % debt interest while the balance is negative.
var (
	DefaultCreditRate  = decimal.RequireFromString("1.1")
	DefaultCreditLimit = decimal.NewFromInt(5000)
	DefaultDebtRate    = decimal.RequireFromString("5.0")
)

var _ Account = (*CreditAccount)(nil)

// CreditAccount may run a negative balance down to -creditLimit. The rate
// that applies depends on the sign of the balance.
type CreditAccount struct {
	base
	creditLimit  decimal.Decimal
	debtInterest decimal.Decimal
}

// NewCredit opens a credit account with the default terms, consuming the
// next account number.
func NewCredit(seq *Sequence) *CreditAccount {
	return &CreditAccount{
		base:         newBase(seq, TypeCredit, DefaultCreditRate),
		creditLimit:  DefaultCreditLimit,
		debtInterest: DefaultDebtRate,
	}
}

// RestoreCredit rebuilds a credit account from persisted state without
// consuming an account number.
func RestoreCredit(number int, balance, interestRate, creditLimit, debtInterest decimal.Decimal, transactions []string) *CreditAccount {
	return &CreditAccount{
		base:         restoreBase(number, TypeCredit, balance, interestRate, transactions),
		creditLimit:  creditLimit,
		debtInterest: debtInterest,
	}
}

func (a *CreditAccount) CreditLimit() decimal.Decimal  { return a.creditLimit }
func (a *CreditAccount) DebtInterest() decimal.Decimal { return a.debtInterest }

// applicableRate is interestRate for non-negative balances, debtInterest
// while in debt.
func (a *CreditAccount) applicableRate() decimal.Decimal {
	if a.balance.Sign() >= 0 {
		return a.interestRate
	}
	return a.debtInterest
}

func (a *CreditAccount) Interest() string {
	return a.interestOn(a.applicableRate())
}

func (a *CreditAccount) Summary() string {
	return a.summaryWith(a.applicableRate())
}

// Withdraw allows going into debt as long as the new balance stays at or
// above -creditLimit.
func (a *CreditAccount) Withdraw(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrInvalidArgument)
	}

	if a.balance.Sub(amount).LessThan(a.creditLimit.Neg()) {
		return apperrors.ErrCreditLimitExceeded
	}

	a.subtract(amount)
	return nil
}
