package account

import (
	"fmt"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain/money"
	"bank-ledger/internal/pkg/apperrors"
)

// Default savings terms: 2.4 % interest, 2.0 % fee on withdrawals after the
// first.
var (
	DefaultSavingsRate  = decimal.RequireFromString("2.4")
	DefaultWithdrawRate = decimal.RequireFromString("2.0")
)

var _ Account = (*SavingsAccount)(nil)

// SavingsAccount grants one free withdrawal; every later withdrawal costs a
// fee of withdrawRate percent on top of the requested amount.
type SavingsAccount struct {
	base
	withdrawRate      decimal.Decimal
	hasMadeWithdrawal bool
}

// NewSavings opens a savings account with the default terms, consuming the
// next account number.
func NewSavings(seq *Sequence) *SavingsAccount {
	return &SavingsAccount{
		base:         newBase(seq, TypeSavings, DefaultSavingsRate),
		withdrawRate: DefaultWithdrawRate,
	}
}

// RestoreSavings rebuilds a savings account from persisted state without
// consuming an account number.
func RestoreSavings(number int, balance, interestRate, withdrawRate decimal.Decimal, hasMadeWithdrawal bool, transactions []string) *SavingsAccount {
	return &SavingsAccount{
		base:              restoreBase(number, TypeSavings, balance, interestRate, transactions),
		withdrawRate:      withdrawRate,
		hasMadeWithdrawal: hasMadeWithdrawal,
	}
}

func (a *SavingsAccount) WithdrawRate() decimal.Decimal { return a.withdrawRate }
func (a *SavingsAccount) HasMadeWithdrawal() bool       { return a.hasMadeWithdrawal }

func (a *SavingsAccount) Interest() string {
	return a.interestOn(a.interestRate)
}

func (a *SavingsAccount) Summary() string {
	return a.summaryWith(a.interestRate)
}

// Withdraw debits the amount, plus the fee once the free first withdrawal is
// spent. The funds check covers amount and fee together; a rejected
// withdrawal leaves the account untouched, including the free-first flag.
func (a *SavingsAccount) Withdraw(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrInvalidArgument)
	}

	total := amount
	if a.hasMadeWithdrawal {
		fee := money.RoundHalfUp2(amount.Mul(a.withdrawRate).Div(money.Hundred))
		total = amount.Add(fee)
	}

	if a.balance.LessThan(total) {
		return apperrors.ErrInsufficientFunds
	}

	a.hasMadeWithdrawal = true
	a.subtract(total)
	return nil
}
