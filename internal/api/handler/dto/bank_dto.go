package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type RegisterCustomerRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	PersonalNumber string `json:"personalNumber"`
}

func (r *RegisterCustomerRequest) Validate() error {
	if strings.TrimSpace(r.PersonalNumber) == "" {
		return fmt.Errorf("personalNumber must not be blank")
	}
	return nil
}

type RenameCustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r *RenameCustomerRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" && strings.TrimSpace(r.LastName) == "" {
		return fmt.Errorf("at least one of firstName or lastName must be non-blank")
	}
	return nil
}

type OpenAccountRequest struct {
	Type string `json:"type"`
}

func (r *OpenAccountRequest) Validate() error {
	switch r.Type {
	case "savings", "credit":
		return nil
	}
	return fmt.Errorf("type must be 'savings' or 'credit'")
}

type AmountRequest struct {
	Amount string `json:"amount"`
}

func (r *AmountRequest) Validate() error {
	if _, err := decimal.NewFromString(r.Amount); err != nil || r.Amount == "" {
		return fmt.Errorf("invalid amount: %v", err)
	}
	return nil
}

type LoadSnapshotRequest struct {
	File string `json:"file"`
}

func (r *LoadSnapshotRequest) Validate() error {
	if strings.TrimSpace(r.File) == "" {
		return fmt.Errorf("file must not be blank")
	}
	return nil
}

type CustomerListResponse struct {
	Customers []string `json:"customers"`
}

type CustomerDetailResponse struct {
	Lines []string `json:"lines"`
}

type DeleteCustomerResponse struct {
	Report []string `json:"report"`
}

type OpenAccountResponse struct {
	AccountNumber int `json:"accountNumber"`
}

type AccountNumbersResponse struct {
	AccountNumbers []string `json:"accountNumbers"`
}

type AccountSummaryResponse struct {
	Summary string `json:"summary"`
}

type CloseAccountResponse struct {
	ClosingLine string `json:"closingLine"`
}

type TransactionsResponse struct {
	Transactions []string `json:"transactions"`
}

type ExportResponse struct {
	File string `json:"file"`
}

type SnapshotResponse struct {
	File string `json:"file"`
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
