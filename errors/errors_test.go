package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCherikiError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *CherikiError
		want string
	}{
		{
			name: "without wrapped error",
			err: &CherikiError{
				Type:    ValidationError,
				Message: "invalid input",
			},
			want: "validation_error: invalid input",
		},
		{
			name: "with wrapped error",
			err: &CherikiError{
				Type:    ProviderError,
				Message: "generation failed",
				err:     errors.New("connection refused"),
			},
			want: "provider_error: generation failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("CherikiError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCherikiError_Is(t *testing.T) {
	err1 := &CherikiError{Type: RateLimitError, Message: "test1"}
	err2 := &CherikiError{Type: RateLimitError, Message: "test2"}
	err3 := &CherikiError{Type: ValidationError, Message: "test3"}

	if !err1.Is(err2) {
		t.Error("Expected err1.Is(err2) to be true for same error type")
	}
	if err1.Is(err3) {
		t.Error("Expected err1.Is(err3) to be false for different error types")
	}

	wrapped := fmt.Errorf("handler: %w", err1)
	if !Is(wrapped, &CherikiError{Type: RateLimitError}) {
		t.Error("Expected Is to see through wrapping")
	}
}

func TestCherikiError_Unwrap(t *testing.T) {
	inner := errors.New("inner error")
	err := NewTimeoutError("req", inner)

	if !errors.Is(err, inner) {
		t.Errorf("Unwrap() chain does not reach %v", inner)
	}

	var target *CherikiError
	if !As(fmt.Errorf("wrap: %w", err), &target) || target.Type != TimeoutError {
		t.Errorf("As() did not extract the CherikiError, got %v", target)
	}
}
