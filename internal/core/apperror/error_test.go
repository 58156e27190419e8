package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFactories(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"item not found", NewItemNotFound("A1"), CodeItemNotFound, http.StatusNotFound},
		{"invalid quantity", NewInvalidQuantity(-1), CodeInvalidQuantity, http.StatusBadRequest},
		{"index out of range", NewIndexOutOfRange(5, 2), CodeIndexOutOfRange, http.StatusBadRequest},
		{"empty cart", NewEmptyCart(), CodeEmptyCart, http.StatusUnprocessableEntity},
		{"invalid payment method", NewInvalidPaymentMethod("bitcoin"), CodeInvalidPaymentMethod, http.StatusBadRequest},
		{"commit failed", NewCommitFailed(errors.New("boom")), CodeCommitFailed, http.StatusInternalServerError},
		{"not found", NewNotFound("bill", 9), CodeNotFound, http.StatusNotFound},
		{"duplicate", NewDuplicate("item", "item_code", "A1"), CodeDuplicate, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.HTTPStatus, tt.wantStatus)
			}
		})
	}
}

func TestCommitFailed_WrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewCommitFailed(fmt.Errorf("create bill: %w", cause))

	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through the chain")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(NewNotFound("bill", 1)) {
		t.Error("NewNotFound must satisfy IsNotFound")
	}
	if !IsNotFound(NewItemNotFound("A1")) {
		t.Error("NewItemNotFound must satisfy IsNotFound")
	}
	if IsNotFound(NewEmptyCart()) {
		t.Error("EmptyCart is not a not-found error")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("plain errors are not not-found")
	}
}

func TestIsCallerError(t *testing.T) {
	callerErrs := []*AppError{
		NewValidation("bad"),
		NewInvalidQuantity(0),
		NewIndexOutOfRange(1, 0),
		NewEmptyCart(),
		NewInvalidPaymentMethod("x"),
	}
	for _, err := range callerErrs {
		if !IsCallerError(err) {
			t.Errorf("%s must be a caller error", err.Code)
		}
	}

	if IsCallerError(NewCommitFailed(errors.New("boom"))) {
		t.Error("commit failure is a storage fault, not a caller error")
	}
	if IsCallerError(NewItemNotFound("A1")) {
		t.Error("item-not-found is not classified as a caller error")
	}
}

func TestGetHTTPStatus(t *testing.T) {
	if got := GetHTTPStatus(NewEmptyCart()); got != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", got)
	}
	// wrapped AppError is still recognized
	wrapped := fmt.Errorf("handler: %w", NewItemNotFound("A1"))
	if got := GetHTTPStatus(wrapped); got != http.StatusNotFound {
		t.Errorf("expected 404 for wrapped error, got %d", got)
	}
	if got := GetHTTPStatus(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("expected 500 for plain error, got %d", got)
	}
}

func TestWithDetail(t *testing.T) {
	err := NewValidation("bad input").WithDetail("field", "price")
	if err.Details["field"] != "price" {
		t.Errorf("detail not recorded: %v", err.Details)
	}
}
