package apperrors

import (
	"errors"
	"testing"
)

func TestValidationErrorError(t *testing.T) {
	tests := []struct {
		name     string
		valError *ValidationError
		expected string
	}{
		{
			name: "With Field",
			valError: &ValidationError{
				Field:   "personalNumber",
				Message: "cannot be blank",
			},
			expected: "validation failed for field 'personalNumber': cannot be blank",
		},
		{
			name: "Without Field",
			valError: &ValidationError{
				Message: "something is off",
			},
			expected: "validation failed: something is off",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.valError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("amount", "must be positive")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected error to wrap ErrValidation, got %v", err)
	}

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected error chain to contain *ValidationError, got %v", err)
	}
	if valErr.Field != "amount" {
		t.Errorf("expected field %q, got %q", "amount", valErr.Field)
	}
}
