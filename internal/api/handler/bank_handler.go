package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"bank-ledger/internal/api/handler/dto"
	"bank-ledger/internal/domain/bank"
	"bank-ledger/internal/pkg/apperrors"
	"bank-ledger/internal/storage"
)

type BankHandler struct {
	service     bank.Service
	snapshotDir string
	logger      *slog.Logger
}

func NewBankHandler(s bank.Service, snapshotDir string, l *slog.Logger) *BankHandler {
	return &BankHandler{
		service:     s,
		snapshotDir: snapshotDir,
		logger:      l.With("component", "BankHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInsufficientFunds), errors.Is(err, apperrors.ErrCreditLimitExceeded):
		status, message = http.StatusUnprocessableEntity, err.Error()
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func personalNumberFromURL(r *http.Request) string {
	return chi.URLParam(r, "personalNumber")
}

func accountNumberFromURL(r *http.Request) (int, error) {
	numberStr := chi.URLParam(r, "accountNumber")
	if numberStr == "" {
		return 0, fmt.Errorf("accountNumber not found in URL path")
	}
	return strconv.Atoi(numberStr)
}

func (h *BankHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.RegisterCustomer(r.Context(), req.FirstName, req.LastName, req.PersonalNumber); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "Customer registered"})
}

func (h *BankHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers := h.service.Customers(r.Context())
	respondJSON(w, http.StatusOK, dto.CustomerListResponse{Customers: customers})
}

func (h *BankHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.CustomerDetail(r.Context(), personalNumberFromURL(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.CustomerDetailResponse{Lines: lines})
}

func (h *BankHandler) RenameCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.RenameCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.RenameCustomer(r.Context(), req.FirstName, req.LastName, personalNumberFromURL(r)); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Customer renamed"})
}

func (h *BankHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.DeleteCustomer(r.Context(), personalNumberFromURL(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.DeleteCustomerResponse{Report: report})
}

func (h *BankHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	personalNumber := personalNumberFromURL(r)
	var number int
	var err error
	if req.Type == "credit" {
		number, err = h.service.OpenCreditAccount(r.Context(), personalNumber)
	} else {
		number, err = h.service.OpenSavingsAccount(r.Context(), personalNumber)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.OpenAccountResponse{AccountNumber: number})
}

func (h *BankHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	numbers := h.service.AccountNumbers(r.Context(), personalNumberFromURL(r))
	respondJSON(w, http.StatusOK, dto.AccountNumbersResponse{AccountNumbers: numbers})
}

func (h *BankHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	number, err := accountNumberFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	summary, err := h.service.AccountSummary(r.Context(), personalNumberFromURL(r), number)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.AccountSummaryResponse{Summary: summary})
}

func (h *BankHandler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	number, err := accountNumberFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	line, err := h.service.CloseAccount(r.Context(), personalNumberFromURL(r), number)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.CloseAccountResponse{ClosingLine: line})
}

func (h *BankHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, h.service.Deposit, "Deposit successful")
}

func (h *BankHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, h.service.Withdraw, "Withdrawal successful")
}

func (h *BankHandler) applyAmount(w http.ResponseWriter, r *http.Request,
	apply func(ctx context.Context, personalNumber string, accountNumber int, amount decimal.Decimal) error,
	successMessage string) {

	number, err := accountNumberFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	var req dto.AmountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(w, fmt.Errorf("%w: invalid numeric format for amount", apperrors.ErrInvalidArgument))
		return
	}

	if err := apply(r.Context(), personalNumberFromURL(r), number, amount); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": successMessage})
}

func (h *BankHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	number, err := accountNumberFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	transactions, err := h.service.Transactions(r.Context(), personalNumberFromURL(r), number)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.TransactionsResponse{Transactions: transactions})
}

func (h *BankHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	number, err := accountNumberFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	transactions, err := h.service.Transactions(r.Context(), personalNumberFromURL(r), number)
	if err != nil {
		respondError(w, err)
		return
	}

	now := time.Now()
	fileName := storage.ExportFileName(now)
	path := filepath.Join(h.snapshotDir, fileName)
	if err := storage.ExportTransactions(path, transactions, now); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to export transaction log", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInternalServer, err))
		return
	}

	h.logger.InfoContext(r.Context(), "Transaction log exported",
		slog.Int("accountNumber", number), slog.String("file", fileName))
	respondJSON(w, http.StatusOK, dto.ExportResponse{File: fileName})
}

func (h *BankHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Snapshot(r.Context())
	fileName := storage.FileName(time.Now())
	path := filepath.Join(h.snapshotDir, fileName)

	if err := storage.Save(path, snap); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to save snapshot", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInternalServer, err))
		return
	}

	h.logger.InfoContext(r.Context(), "Snapshot saved", slog.String("file", fileName))
	respondJSON(w, http.StatusCreated, dto.SnapshotResponse{File: fileName})
}

func (h *BankHandler) LoadSnapshot(w http.ResponseWriter, r *http.Request) {
	var req dto.LoadSnapshotRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	path := filepath.Join(h.snapshotDir, filepath.Base(req.File))
	snap, err := storage.Load(path)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrNotFound, err))
		return
	}

	if err := h.service.Restore(r.Context(), snap); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	h.logger.InfoContext(r.Context(), "Ledger restored from snapshot file", slog.String("file", req.File))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Snapshot loaded"})
}
