package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "session not found",
			},
			expected: "NOT_FOUND: session not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "lead write failed",
				Err:     errors.New("broker unreachable"),
			},
			expected: "INTERNAL_ERROR: lead write failed (caused by: broker unreachable)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Internal("wrapped", originalErr)

	if unwrapped := errors.Unwrap(appErr); unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestCapacityExceeded(t *testing.T) {
	err := CapacityExceeded(1, 4)

	if err.Code != CodeCapacityExceeded {
		t.Errorf("expected code %s, got %s", CodeCapacityExceeded, err.Code)
	}
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, err.HTTPStatus)
	}
	if err.Details["remaining"] != 1 || err.Details["capacity"] != 4 {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestIsCode(t *testing.T) {
	err := CapacityExceeded(0, 4)

	if !IsCode(err, CodeCapacityExceeded) {
		t.Error("IsCode should match CAPACITY_EXCEEDED")
	}
	if IsCode(err, CodeValidation) {
		t.Error("IsCode should not match a different code")
	}
	if IsCode(errors.New("plain"), CodeValidation) {
		t.Error("IsCode should be false for non-AppError")
	}
}

func TestAsAppError_WrapsUnknown(t *testing.T) {
	plain := errors.New("boom")
	appErr := AsAppError(plain)

	if appErr.Code != CodeInternal {
		t.Errorf("expected %s, got %s", CodeInternal, appErr.Code)
	}
	if !errors.Is(appErr, plain) {
		t.Error("wrapped error should unwrap to the original")
	}
}
