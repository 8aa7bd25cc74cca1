package bank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-ledger/internal/pkg/apperrors"
)

const (
	annaPno = "19850101-1234"
	erikPno = "19900202-5678"
)

func newLedgerWithAnna(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger()
	require.NoError(t, l.RegisterCustomer("Anna", "Svensson", annaPno))
	return l
}

func TestRegisterCustomer(t *testing.T) {
	t.Run("Registers a new customer", func(t *testing.T) {
		l := NewLedger()
		require.NoError(t, l.RegisterCustomer("Anna", "Svensson", annaPno))
		assert.Equal(t, []string{"19850101-1234 Anna Svensson"}, l.Customers())
	})

	t.Run("Rejects a blank personal number", func(t *testing.T) {
		l := NewLedger()
		err := l.RegisterCustomer("Anna", "Svensson", "  ")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("Rejects a duplicate personal number", func(t *testing.T) {
		l := newLedgerWithAnna(t)
		err := l.RegisterCustomer("Annika", "Svensson", annaPno)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
		assert.Len(t, l.Customers(), 1)
	})
}

func TestRenameCustomer(t *testing.T) {
	t.Run("Renames an existing customer", func(t *testing.T) {
		l := newLedgerWithAnna(t)
		require.NoError(t, l.RenameCustomer("Karin", "", annaPno))
		assert.Equal(t, []string{"19850101-1234 Karin Svensson"}, l.Customers())
	})

	t.Run("Rejects when both names are blank", func(t *testing.T) {
		l := newLedgerWithAnna(t)
		err := l.RenameCustomer(" ", "", annaPno)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("Unknown customer", func(t *testing.T) {
		l := newLedgerWithAnna(t)
		err := l.RenameCustomer("Karin", "Berg", erikPno)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestOpenAccounts(t *testing.T) {
	t.Run("Numbers come from one shared counter", func(t *testing.T) {
		l := newLedgerWithAnna(t)
		require.NoError(t, l.RegisterCustomer("Erik", "Lund", erikPno))

		first, err := l.OpenSavingsAccount(annaPno)
		require.NoError(t, err)
		second, err := l.OpenCreditAccount(erikPno)
		require.NoError(t, err)
		third, err := l.OpenSavingsAccount(annaPno)
		require.NoError(t, err)

		assert.Equal(t, 1001, first)
		assert.Equal(t, 1002, second)
		assert.Equal(t, 1003, third)
	})

	t.Run("Unknown customer consumes no number", func(t *testing.T) {
		l := newLedgerWithAnna(t)
		_, err := l.OpenSavingsAccount(erikPno)
		require.ErrorIs(t, err, apperrors.ErrNotFound)

		number, err := l.OpenSavingsAccount(annaPno)
		require.NoError(t, err)
		assert.Equal(t, 1001, number)
	})
}

func TestDeposit(t *testing.T) {
	l := newLedgerWithAnna(t)
	number, err := l.OpenSavingsAccount(annaPno)
	require.NoError(t, err)

	t.Run("Rejects non-positive amounts before lookup", func(t *testing.T) {
		err := l.Deposit(erikPno, 9999, decimal.Zero)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("Unknown account", func(t *testing.T) {
		err := l.Deposit(annaPno, 9999, decimal.NewFromInt(100))
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Adds to the balance", func(t *testing.T) {
		require.NoError(t, l.Deposit(annaPno, number, decimal.NewFromInt(500)))
		summary, err := l.AccountSummary(annaPno, number)
		require.NoError(t, err)
		assert.Equal(t, "1001 500.00 kr Sparkonto 2.4 %", summary)
	})
}

func TestWithdraw(t *testing.T) {
	l := newLedgerWithAnna(t)
	number, err := l.OpenSavingsAccount(annaPno)
	require.NoError(t, err)
	require.NoError(t, l.Deposit(annaPno, number, decimal.NewFromInt(500)))

	t.Run("Rejects non-positive amounts before lookup", func(t *testing.T) {
		err := l.Withdraw(erikPno, 9999, decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("Delegates the policy to the account", func(t *testing.T) {
		require.NoError(t, l.Withdraw(annaPno, number, decimal.NewFromInt(100)))
		err := l.Withdraw(annaPno, number, decimal.NewFromInt(400))
		assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	})
}

func TestCloseAccount(t *testing.T) {
	t.Run("Returns the closing line and detaches the account", func(t *testing.T) {
		l := newLedgerWithAnna(t)
		number, err := l.OpenSavingsAccount(annaPno)
		require.NoError(t, err)
		require.NoError(t, l.Deposit(annaPno, number, decimal.NewFromInt(500)))

		line, err := l.CloseAccount(annaPno, number)
		require.NoError(t, err)
		assert.Equal(t, "1001 500.00 kr Sparkonto 2.4 % 12.00 kr", line)

		_, err = l.AccountSummary(annaPno, number)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Closing never reuses the number", func(t *testing.T) {
		l := newLedgerWithAnna(t)
		number, err := l.OpenSavingsAccount(annaPno)
		require.NoError(t, err)
		_, err = l.CloseAccount(annaPno, number)
		require.NoError(t, err)

		next, err := l.OpenCreditAccount(annaPno)
		require.NoError(t, err)
		assert.Equal(t, 1002, next)
	})

	t.Run("Unknown account", func(t *testing.T) {
		l := newLedgerWithAnna(t)
		_, err := l.CloseAccount(annaPno, 9999)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestDeleteCustomer(t *testing.T) {
	t.Run("Report covers the customer and every account", func(t *testing.T) {
		l := newLedgerWithAnna(t)
		savings, err := l.OpenSavingsAccount(annaPno)
		require.NoError(t, err)
		credit, err := l.OpenCreditAccount(annaPno)
		require.NoError(t, err)
		require.NoError(t, l.Deposit(annaPno, savings, decimal.NewFromInt(500)))
		require.NoError(t, l.Withdraw(annaPno, credit, decimal.NewFromInt(100)))

		report, err := l.DeleteCustomer(annaPno)
		require.NoError(t, err)
		require.Len(t, report, 3)
		assert.Equal(t, "19850101-1234 Anna Svensson", report[0])
		assert.Equal(t, "1001 500.00 kr Sparkonto 2.4 % 12.00 kr", report[1])
		assert.Equal(t, "1002 -100.00 kr Kreditkonto 5 % -5.00 kr", report[2])

		assert.Empty(t, l.Customers())
	})

	t.Run("Unknown customer", func(t *testing.T) {
		l := NewLedger()
		_, err := l.DeleteCustomer(annaPno)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Deletion never rewinds the counter", func(t *testing.T) {
		l := newLedgerWithAnna(t)
		_, err := l.OpenSavingsAccount(annaPno)
		require.NoError(t, err)
		_, err = l.DeleteCustomer(annaPno)
		require.NoError(t, err)

		require.NoError(t, l.RegisterCustomer("Erik", "Lund", erikPno))
		number, err := l.OpenSavingsAccount(erikPno)
		require.NoError(t, err)
		assert.Equal(t, 1002, number)
	})
}

func TestAccountNumbers(t *testing.T) {
	l := newLedgerWithAnna(t)

	t.Run("Unknown customer yields an empty list", func(t *testing.T) {
		numbers := l.AccountNumbers(erikPno)
		assert.NotNil(t, numbers)
		assert.Empty(t, numbers)
	})

	t.Run("Numbers in opening order", func(t *testing.T) {
		_, err := l.OpenSavingsAccount(annaPno)
		require.NoError(t, err)
		_, err = l.OpenCreditAccount(annaPno)
		require.NoError(t, err)

		assert.Equal(t, []string{"1001", "1002"}, l.AccountNumbers(annaPno))
	})
}

func TestCustomerDetail(t *testing.T) {
	l := newLedgerWithAnna(t)
	number, err := l.OpenSavingsAccount(annaPno)
	require.NoError(t, err)
	require.NoError(t, l.Deposit(annaPno, number, decimal.NewFromInt(250)))

	detail, err := l.CustomerDetail(annaPno)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"19850101-1234 Anna Svensson",
		"1001 250.00 kr Sparkonto 2.4 %",
	}, detail)

	_, err = l.CustomerDetail(erikPno)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransactions(t *testing.T) {
	l := newLedgerWithAnna(t)
	number, err := l.OpenSavingsAccount(annaPno)
	require.NoError(t, err)
	require.NoError(t, l.Deposit(annaPno, number, decimal.NewFromInt(250)))

	lines, err := l.Transactions(annaPno, number)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "250.00 kr Saldo: 250.00 kr")

	t.Run("Returned log is an independent copy", func(t *testing.T) {
		lines[0] = "mutated"
		again, err := l.Transactions(annaPno, number)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again[0])
	})

	t.Run("Unknown account", func(t *testing.T) {
		_, err := l.Transactions(annaPno, 9999)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	l := newLedgerWithAnna(t)
	savings, err := l.OpenSavingsAccount(annaPno)
	require.NoError(t, err)
	credit, err := l.OpenCreditAccount(annaPno)
	require.NoError(t, err)
	require.NoError(t, l.Deposit(annaPno, savings, decimal.NewFromInt(500)))
	require.NoError(t, l.Withdraw(annaPno, savings, decimal.NewFromInt(100)))
	require.NoError(t, l.Withdraw(annaPno, credit, decimal.NewFromInt(200)))

	snap := l.Snapshot()
	assert.Equal(t, 1002, snap.LastAccountNumber)

	restored, err := RestoreLedger(snap)
	require.NoError(t, err)

	assert.Equal(t, l.Customers(), restored.Customers())
	for _, number := range []int{savings, credit} {
		want, err := l.AccountSummary(annaPno, number)
		require.NoError(t, err)
		got, err := restored.AccountSummary(annaPno, number)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		wantLog, err := l.Transactions(annaPno, number)
		require.NoError(t, err)
		gotLog, err := restored.Transactions(annaPno, number)
		require.NoError(t, err)
		assert.Equal(t, wantLog, gotLog)
	}

	t.Run("Numbering resumes after the restored counter", func(t *testing.T) {
		next, err := restored.OpenSavingsAccount(annaPno)
		require.NoError(t, err)
		assert.Equal(t, 1003, next)
	})

	t.Run("Restored savings keeps the spent free withdrawal", func(t *testing.T) {
		// 100 + 2 % fee on the second withdrawal.
		require.NoError(t, restored.Withdraw(annaPno, savings, decimal.NewFromInt(100)))
		summary, err := restored.AccountSummary(annaPno, savings)
		require.NoError(t, err)
		assert.Equal(t, "1001 298.00 kr Sparkonto 2.4 %", summary)
	})

	t.Run("Unknown account type fails the restore", func(t *testing.T) {
		bad := l.Snapshot()
		bad.Customers[0].Accounts[0].Type = "Lonekonto"
		_, err := RestoreLedger(bad)
		assert.Error(t, err)
	})
}
