package bank

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/event"
	"bank-ledger/internal/storage"
)

// Service is the boundary the API, batch and persistence layers talk to. It
// serializes every registry call behind one mutex; the ledger core itself is
// single-threaded by contract.
type Service interface {
	RegisterCustomer(ctx context.Context, firstName, lastName, personalNumber string) error
	RenameCustomer(ctx context.Context, firstName, lastName, personalNumber string) error
	DeleteCustomer(ctx context.Context, personalNumber string) ([]string, error)
	Customers(ctx context.Context) []string
	CustomerDetail(ctx context.Context, personalNumber string) ([]string, error)

	OpenSavingsAccount(ctx context.Context, personalNumber string) (int, error)
	OpenCreditAccount(ctx context.Context, personalNumber string) (int, error)
	CloseAccount(ctx context.Context, personalNumber string, accountNumber int) (string, error)
	AccountSummary(ctx context.Context, personalNumber string, accountNumber int) (string, error)
	AccountNumbers(ctx context.Context, personalNumber string) []string

	Deposit(ctx context.Context, personalNumber string, accountNumber int, amount decimal.Decimal) error
	Withdraw(ctx context.Context, personalNumber string, accountNumber int, amount decimal.Decimal) error
	Transactions(ctx context.Context, personalNumber string, accountNumber int) ([]string, error)

	Snapshot(ctx context.Context) storage.Snapshot
	Restore(ctx context.Context, snap storage.Snapshot) error
}

var _ Service = (*bankService)(nil)

type bankService struct {
	mu     sync.Mutex
	ledger *Ledger
	pub    event.Publisher
	logger *slog.Logger
}

func NewService(ledger *Ledger, pub event.Publisher, logger *slog.Logger) Service {
	if ledger == nil {
		panic("ledger cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("No logger provided to NewService, using default stderr handler")
	}
	if pub == nil {
		pub = event.NopPublisher{}
	}
	return &bankService{
		ledger: ledger,
		pub:    pub,
		logger: logger.With(slog.String("component", "bankService")),
	}
}

func (s *bankService) RegisterCustomer(ctx context.Context, firstName, lastName, personalNumber string) error {
	s.mu.Lock()
	err := s.ledger.RegisterCustomer(firstName, lastName, personalNumber)
	s.mu.Unlock()
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to register customer", slog.Any("error", err))
		return err
	}

	s.logger.InfoContext(ctx, "Customer registered", slog.String("personalNumber", personalNumber))
	if pubErr := s.pub.PublishCustomerRegistered(ctx, event.CustomerEvent{
		PersonalNumber: personalNumber,
		FirstName:      firstName,
		LastName:       lastName,
		Timestamp:      time.Now(),
	}); pubErr != nil {
		s.logger.ErrorContext(ctx, "Customer registered, but failed to publish event", slog.Any("error", pubErr))
	}
	return nil
}

func (s *bankService) RenameCustomer(ctx context.Context, firstName, lastName, personalNumber string) error {
	s.mu.Lock()
	err := s.ledger.RenameCustomer(firstName, lastName, personalNumber)
	s.mu.Unlock()
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to rename customer", slog.Any("error", err))
		return err
	}
	s.logger.InfoContext(ctx, "Customer renamed", slog.String("personalNumber", personalNumber))
	return nil
}

func (s *bankService) DeleteCustomer(ctx context.Context, personalNumber string) ([]string, error) {
	s.mu.Lock()
	report, err := s.ledger.DeleteCustomer(personalNumber)
	s.mu.Unlock()
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to delete customer", slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Customer deleted",
		slog.String("personalNumber", personalNumber),
		slog.Int("closedAccounts", len(report)-1))
	if pubErr := s.pub.PublishCustomerDeleted(ctx, event.CustomerEvent{
		PersonalNumber: personalNumber,
		Timestamp:      time.Now(),
	}); pubErr != nil {
		s.logger.ErrorContext(ctx, "Customer deleted, but failed to publish event", slog.Any("error", pubErr))
	}
	return report, nil
}

func (s *bankService) Customers(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Customers()
}

func (s *bankService) CustomerDetail(ctx context.Context, personalNumber string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.CustomerDetail(personalNumber)
}

func (s *bankService) OpenSavingsAccount(ctx context.Context, personalNumber string) (int, error) {
	return s.openAccount(ctx, personalNumber, account.TypeSavings, s.ledger.OpenSavingsAccount)
}

func (s *bankService) OpenCreditAccount(ctx context.Context, personalNumber string) (int, error) {
	return s.openAccount(ctx, personalNumber, account.TypeCredit, s.ledger.OpenCreditAccount)
}

func (s *bankService) openAccount(ctx context.Context, personalNumber, accountType string, open func(string) (int, error)) (int, error) {
	s.mu.Lock()
	number, err := open(personalNumber)
	s.mu.Unlock()
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to open account",
			slog.String("accountType", accountType), slog.Any("error", err))
		return 0, err
	}

	s.logger.InfoContext(ctx, "Account opened",
		slog.String("personalNumber", personalNumber),
		slog.String("accountType", accountType),
		slog.Int("accountNumber", number))
	if pubErr := s.pub.PublishAccountOpened(ctx, event.AccountEvent{
		PersonalNumber: personalNumber,
		AccountNumber:  number,
		AccountType:    accountType,
		Timestamp:      time.Now(),
	}); pubErr != nil {
		s.logger.ErrorContext(ctx, "Account opened, but failed to publish event", slog.Any("error", pubErr))
	}
	return number, nil
}

func (s *bankService) CloseAccount(ctx context.Context, personalNumber string, accountNumber int) (string, error) {
	s.mu.Lock()
	result, err := s.ledger.CloseAccount(personalNumber, accountNumber)
	s.mu.Unlock()
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to close account",
			slog.Int("accountNumber", accountNumber), slog.Any("error", err))
		return "", err
	}

	s.logger.InfoContext(ctx, "Account closed",
		slog.String("personalNumber", personalNumber),
		slog.Int("accountNumber", accountNumber))
	if pubErr := s.pub.PublishAccountClosed(ctx, event.AccountEvent{
		PersonalNumber: personalNumber,
		AccountNumber:  accountNumber,
		Timestamp:      time.Now(),
	}); pubErr != nil {
		s.logger.ErrorContext(ctx, "Account closed, but failed to publish event", slog.Any("error", pubErr))
	}
	return result, nil
}

func (s *bankService) AccountSummary(ctx context.Context, personalNumber string, accountNumber int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.AccountSummary(personalNumber, accountNumber)
}

func (s *bankService) AccountNumbers(ctx context.Context, personalNumber string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.AccountNumbers(personalNumber)
}

func (s *bankService) Deposit(ctx context.Context, personalNumber string, accountNumber int, amount decimal.Decimal) error {
	s.mu.Lock()
	err := s.ledger.Deposit(personalNumber, accountNumber, amount)
	s.mu.Unlock()
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to deposit",
			slog.Int("accountNumber", accountNumber), slog.Any("error", err))
		return err
	}
	s.logger.InfoContext(ctx, "Deposit applied",
		slog.Int("accountNumber", accountNumber), slog.String("amount", amount.String()))
	return nil
}

func (s *bankService) Withdraw(ctx context.Context, personalNumber string, accountNumber int, amount decimal.Decimal) error {
	s.mu.Lock()
	err := s.ledger.Withdraw(personalNumber, accountNumber, amount)
	s.mu.Unlock()
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to withdraw",
			slog.Int("accountNumber", accountNumber), slog.Any("error", err))
		return err
	}
	s.logger.InfoContext(ctx, "Withdrawal applied",
		slog.Int("accountNumber", accountNumber), slog.String("amount", amount.String()))
	return nil
}

func (s *bankService) Transactions(ctx context.Context, personalNumber string, accountNumber int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Transactions(personalNumber, accountNumber)
}

func (s *bankService) Snapshot(ctx context.Context) storage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot()
}

// Restore swaps in a ledger rebuilt from the snapshot, replacing all
// in-memory state. The counter is restored before the registry graph.
func (s *bankService) Restore(ctx context.Context, snap storage.Snapshot) error {
	restored, err := RestoreLedger(snap)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to restore ledger from snapshot", slog.Any("error", err))
		return err
	}

	s.mu.Lock()
	s.ledger = restored
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Ledger restored from snapshot",
		slog.Int("customers", len(snap.Customers)),
		slog.Int("lastAccountNumber", snap.LastAccountNumber))
	return nil
}
