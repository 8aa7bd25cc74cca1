package bank

import (
	"fmt"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/domain/customer"
	"bank-ledger/internal/storage"
)

// Snapshot exports the counter and the full registry graph. The graph is a
// strict tree (ledger -> customers -> accounts), so a field-by-field record
// conversion is all that is needed.
func (l *Ledger) Snapshot() storage.Snapshot {
	snap := storage.Snapshot{
		LastAccountNumber: l.seq.Last(),
		Customers:         make([]storage.CustomerRecord, 0, len(l.customers)),
	}
	for _, c := range l.customers {
		rec := storage.CustomerRecord{
			FirstName:      c.FirstName,
			LastName:       c.LastName,
			PersonalNumber: c.PersonalNumber(),
		}
		for _, a := range c.Accounts() {
			ar := storage.AccountRecord{
				Number:       a.Number(),
				Type:         a.Type(),
				Balance:      a.Balance().String(),
				InterestRate: a.InterestRate().String(),
				Transactions: append([]string{}, a.Transactions()...),
			}
			switch acct := a.(type) {
			case *account.SavingsAccount:
				ar.WithdrawRate = acct.WithdrawRate().String()
				ar.HasMadeWithdrawal = acct.HasMadeWithdrawal()
			case *account.CreditAccount:
				ar.CreditLimit = acct.CreditLimit().String()
				ar.DebtInterest = acct.DebtInterest().String()
			}
			rec.Accounts = append(rec.Accounts, ar)
		}
		snap.Customers = append(snap.Customers, rec)
	}
	return snap
}

// RestoreLedger rebuilds a ledger from a snapshot, counter first, fully
// replacing any previous state. Restored accounts never consume new numbers.
func RestoreLedger(snap storage.Snapshot) (*Ledger, error) {
	l := NewLedger()
	l.seq.Reset(snap.LastAccountNumber)

	for _, rec := range snap.Customers {
		c := customer.New(rec.FirstName, rec.LastName, rec.PersonalNumber)
		for _, ar := range rec.Accounts {
			a, err := restoreAccount(ar)
			if err != nil {
				return nil, fmt.Errorf("customer %q: %w", rec.PersonalNumber, err)
			}
			c.AddAccount(a)
		}
		l.customers = append(l.customers, c)
	}
	return l, nil
}

func restoreAccount(ar storage.AccountRecord) (account.Account, error) {
	balance, err := decimal.NewFromString(ar.Balance)
	if err != nil {
		return nil, fmt.Errorf("account %d: bad balance %q: %w", ar.Number, ar.Balance, err)
	}
	rate, err := decimal.NewFromString(ar.InterestRate)
	if err != nil {
		return nil, fmt.Errorf("account %d: bad interest rate %q: %w", ar.Number, ar.InterestRate, err)
	}

	switch ar.Type {
	case account.TypeSavings:
		withdrawRate, err := decimal.NewFromString(ar.WithdrawRate)
		if err != nil {
			return nil, fmt.Errorf("account %d: bad withdraw rate %q: %w", ar.Number, ar.WithdrawRate, err)
		}
		return account.RestoreSavings(ar.Number, balance, rate, withdrawRate, ar.HasMadeWithdrawal, ar.Transactions), nil
	case account.TypeCredit:
		creditLimit, err := decimal.NewFromString(ar.CreditLimit)
		if err != nil {
			return nil, fmt.Errorf("account %d: bad credit limit %q: %w", ar.Number, ar.CreditLimit, err)
		}
		debtInterest, err := decimal.NewFromString(ar.DebtInterest)
		if err != nil {
			return nil, fmt.Errorf("account %d: bad debt interest %q: %w", ar.Number, ar.DebtInterest, err)
		}
		return account.RestoreCredit(ar.Number, balance, rate, creditLimit, debtInterest, ar.Transactions), nil
	default:
		return nil, fmt.Errorf("account %d: unknown account type %q", ar.Number, ar.Type)
	}
}
