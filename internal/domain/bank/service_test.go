package bank

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-ledger/internal/event"
	"bank-ledger/internal/pkg/apperrors"
)

type capturingPublisher struct {
	registered []event.CustomerEvent
	deleted    []event.CustomerEvent
	opened     []event.AccountEvent
	closed     []event.AccountEvent
}

func (p *capturingPublisher) PublishCustomerRegistered(_ context.Context, e event.CustomerEvent) error {
	p.registered = append(p.registered, e)
	return nil
}

func (p *capturingPublisher) PublishCustomerDeleted(_ context.Context, e event.CustomerEvent) error {
	p.deleted = append(p.deleted, e)
	return nil
}

func (p *capturingPublisher) PublishAccountOpened(_ context.Context, e event.AccountEvent) error {
	p.opened = append(p.opened, e)
	return nil
}

func (p *capturingPublisher) PublishAccountClosed(_ context.Context, e event.AccountEvent) error {
	p.closed = append(p.closed, e)
	return nil
}

func newTestService(t *testing.T) (Service, *capturingPublisher) {
	t.Helper()
	pub := &capturingPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(NewLedger(), pub, logger), pub
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)

	require.NoError(t, svc.RegisterCustomer(ctx, "Anna", "Svensson", annaPno))
	number, err := svc.OpenSavingsAccount(ctx, annaPno)
	require.NoError(t, err)
	require.NoError(t, svc.Deposit(ctx, annaPno, number, decimal.NewFromInt(500)))
	require.NoError(t, svc.Withdraw(ctx, annaPno, number, decimal.NewFromInt(100)))

	summary, err := svc.AccountSummary(ctx, annaPno, number)
	require.NoError(t, err)
	assert.Equal(t, "1001 400.00 kr Sparkonto 2.4 %", summary)

	line, err := svc.CloseAccount(ctx, annaPno, number)
	require.NoError(t, err)
	assert.Equal(t, "1001 400.00 kr Sparkonto 2.4 % 9.60 kr", line)

	report, err := svc.DeleteCustomer(ctx, annaPno)
	require.NoError(t, err)
	assert.Equal(t, []string{"19850101-1234 Anna Svensson"}, report)

	t.Run("Events published per mutation", func(t *testing.T) {
		require.Len(t, pub.registered, 1)
		assert.Equal(t, annaPno, pub.registered[0].PersonalNumber)

		require.Len(t, pub.opened, 1)
		assert.Equal(t, 1001, pub.opened[0].AccountNumber)
		assert.Equal(t, "Sparkonto", pub.opened[0].AccountType)

		require.Len(t, pub.closed, 1)
		require.Len(t, pub.deleted, 1)
	})
}

func TestServiceErrorPassThrough(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)

	err := svc.RegisterCustomer(ctx, "Anna", "Svensson", " ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Empty(t, pub.registered, "failed registrations must not publish events")

	_, err = svc.OpenCreditAccount(ctx, annaPno)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, pub.opened)
}

func TestServiceSnapshotRestore(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.RegisterCustomer(ctx, "Anna", "Svensson", annaPno))
	number, err := svc.OpenCreditAccount(ctx, annaPno)
	require.NoError(t, err)
	require.NoError(t, svc.Withdraw(ctx, annaPno, number, decimal.NewFromInt(250)))

	snap := svc.Snapshot(ctx)
	require.Equal(t, 1001, snap.LastAccountNumber)

	fresh, _ := newTestService(t)
	require.NoError(t, fresh.Restore(ctx, snap))

	summary, err := fresh.AccountSummary(ctx, annaPno, number)
	require.NoError(t, err)
	assert.Equal(t, "1001 -250.00 kr Kreditkonto 5 %", summary)

	t.Run("Corrupt snapshot leaves current state untouched", func(t *testing.T) {
		bad := snap
		bad.Customers[0].Accounts[0].Balance = "not-a-number"
		err := fresh.Restore(ctx, bad)
		require.Error(t, err)

		summary, err := fresh.AccountSummary(ctx, annaPno, number)
		require.NoError(t, err)
		assert.Equal(t, "1001 -250.00 kr Kreditkonto 5 %", summary)
	})
}
